// Package consensus decides whether a discussion round reached agreement.
package consensus

import (
	"context"

	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
)

// Verdict is the outcome of one consensus check.
type Verdict struct {
	Reached bool
	Summary string
}

// Detector inspects an in-progress transcript after a completed round. It
// never mutates the transcript and is never called on an empty one.
type Detector interface {
	Evaluate(ctx context.Context, topic string, transcript []meeting.Contribution, round int) (Verdict, error)
}
