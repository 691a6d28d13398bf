package workflow

import (
	"context"
	"strings"
	"testing"
)

func TestSummaryFixedFormat(t *testing.T) {
	engine, _ := newTestEngine(t)
	ctx := context.Background()

	commitStep(t, engine, 1)
	if _, err := engine.UpdateLinks(ctx, LinksPatch{DeployedLink: strPtr("https://app.example")}); err != nil {
		t.Fatalf("update links: %v", err)
	}

	summary, err := engine.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	lines := strings.Split(strings.TrimRight(summary, "\n"), "\n")
	if len(lines) != StepCount+3 {
		t.Fatalf("summary has %d lines, want %d", len(lines), StepCount+3)
	}
	if lines[0] != "Stage 1 (Kickoff): Complete" {
		t.Fatalf("unexpected first line: %q", lines[0])
	}
	if lines[1] != "Stage 2 (Summary Draft): Pending" {
		t.Fatalf("unexpected second line: %q", lines[1])
	}
	if lines[StepCount] != "Primary Build Link: N/A" {
		t.Fatalf("empty link must render N/A, got %q", lines[StepCount])
	}
	if lines[StepCount+2] != "Deployed Link: https://app.example" {
		t.Fatalf("unexpected deployed link line: %q", lines[StepCount+2])
	}
}
