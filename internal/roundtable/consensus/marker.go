package consensus

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/louisbranch/roundtable/internal/roundtable/generator"
	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
)

const (
	// MarkerConsensus prefixes a judge reply that found agreement; the
	// summary follows the prefix.
	MarkerConsensus = "CONSENSUS:"
	// MarkerNoConsensus marks a judge reply that found none.
	MarkerNoConsensus = "NO CONSENSUS"
)

const judgeSystem = "You are an impartial judge of a group discussion. " +
	"Decide whether the latest round of contributions agrees on a shared position. " +
	"Reply with exactly one line: either 'CONSENSUS: <one sentence summary>' " +
	"or 'NO CONSENSUS'."

// MarkerJudge asks the generation capability once per round whether the
// round's contributions agree, and parses a fixed marker out of the reply.
// A reply carrying neither marker counts as no consensus, never an error.
type MarkerJudge struct {
	Invoker generator.Invoker
	Logger  *log.Logger
}

// NewMarkerJudge builds a marker-based consensus detector.
func NewMarkerJudge(invoker generator.Invoker, logger *log.Logger) *MarkerJudge {
	if logger == nil {
		logger = log.Default()
	}
	return &MarkerJudge{Invoker: invoker, Logger: logger}
}

// Evaluate issues one judge invocation over the round's contributions.
func (j *MarkerJudge) Evaluate(ctx context.Context, topic string, transcript []meeting.Contribution, round int) (Verdict, error) {
	if len(transcript) == 0 {
		return Verdict{}, fmt.Errorf("transcript is empty")
	}

	reply, err := j.Invoker.Invoke(ctx, generator.Request{
		System: judgeSystem,
		Prompt: judgePrompt(topic, transcript, round),
	})
	if err != nil {
		return Verdict{}, fmt.Errorf("judge invocation: %w", err)
	}

	return parseVerdict(reply, j.Logger, round), nil
}

func judgePrompt(topic string, transcript []meeting.Contribution, round int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n\nRound %d contributions:\n", topic, round)
	for _, c := range transcript {
		if c.Round != round {
			continue
		}
		fmt.Fprintf(&b, "\n[%s]\n%s\n", c.RoleID, strings.TrimSpace(c.Text))
	}
	b.WriteString("\nDid this round reach consensus?")
	return b.String()
}

func parseVerdict(reply string, logger *log.Logger, round int) Verdict {
	trimmed := strings.TrimSpace(reply)

	if strings.HasPrefix(trimmed, MarkerConsensus) {
		summary := strings.TrimSpace(strings.TrimPrefix(trimmed, MarkerConsensus))
		return Verdict{Reached: true, Summary: summary}
	}
	if strings.HasPrefix(trimmed, MarkerNoConsensus) {
		return Verdict{}
	}

	logger.Printf("consensus judge reply for round %d carried no marker; treating as no consensus", round)
	return Verdict{}
}
