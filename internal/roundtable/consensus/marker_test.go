package consensus

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/louisbranch/roundtable/internal/roundtable/generator"
	"github.com/louisbranch/roundtable/internal/roundtable/meeting"
)

func transcriptFixture() []meeting.Contribution {
	return []meeting.Contribution{
		{Round: 1, RoleID: "a", Text: "raise prices"},
		{Round: 1, RoleID: "b", Text: "lower prices"},
		{Round: 2, RoleID: "a", Text: "tiered pricing works"},
		{Round: 2, RoleID: "b", Text: "agreed, tiered pricing"},
	}
}

func staticInvoker(reply string) generator.Invoker {
	return generator.InvokerFunc(func(ctx context.Context, req generator.Request) (string, error) {
		return reply, nil
	})
}

func TestEvaluateConsensusMarker(t *testing.T) {
	judge := NewMarkerJudge(staticInvoker("CONSENSUS: adopt tiered pricing"), nil)

	verdict, err := judge.Evaluate(context.Background(), "pricing", transcriptFixture(), 2)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !verdict.Reached || verdict.Summary != "adopt tiered pricing" {
		t.Fatalf("unexpected verdict %+v", verdict)
	}
}

func TestEvaluateNoConsensusMarker(t *testing.T) {
	judge := NewMarkerJudge(staticInvoker("NO CONSENSUS"), nil)

	verdict, err := judge.Evaluate(context.Background(), "pricing", transcriptFixture(), 1)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if verdict.Reached || verdict.Summary != "" {
		t.Fatalf("unexpected verdict %+v", verdict)
	}
}

func TestEvaluateMarkerlessReplyCountsAsNoConsensus(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	judge := NewMarkerJudge(staticInvoker("everyone sounded friendly"), logger)

	verdict, err := judge.Evaluate(context.Background(), "pricing", transcriptFixture(), 1)
	if err != nil {
		t.Fatalf("markerless reply must not be an error: %v", err)
	}
	if verdict.Reached {
		t.Fatalf("unexpected verdict %+v", verdict)
	}
	if !strings.Contains(buf.String(), "no marker") {
		t.Fatalf("expected diagnostic log, got %q", buf.String())
	}
}

func TestEvaluatePromptOnlyIncludesRequestedRound(t *testing.T) {
	var gotPrompt string
	invoker := generator.InvokerFunc(func(ctx context.Context, req generator.Request) (string, error) {
		gotPrompt = req.Prompt
		return "NO CONSENSUS", nil
	})
	judge := NewMarkerJudge(invoker, nil)

	if _, err := judge.Evaluate(context.Background(), "pricing", transcriptFixture(), 2); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !strings.Contains(gotPrompt, "tiered pricing works") {
		t.Fatalf("round 2 contribution missing from prompt:\n%s", gotPrompt)
	}
	if strings.Contains(gotPrompt, "raise prices") {
		t.Fatalf("round 1 contribution leaked into round 2 prompt:\n%s", gotPrompt)
	}
}

func TestEvaluateEmptyTranscriptRejected(t *testing.T) {
	judge := NewMarkerJudge(staticInvoker("NO CONSENSUS"), nil)

	if _, err := judge.Evaluate(context.Background(), "pricing", nil, 1); err == nil {
		t.Fatal("expected error for empty transcript")
	}
}

func TestEvaluateInvokerFailureSurfaces(t *testing.T) {
	invoker := generator.InvokerFunc(func(ctx context.Context, req generator.Request) (string, error) {
		return "", errors.New("capability down")
	})
	judge := NewMarkerJudge(invoker, nil)

	if _, err := judge.Evaluate(context.Background(), "pricing", transcriptFixture(), 1); err == nil {
		t.Fatal("expected judge invocation error")
	}
}
