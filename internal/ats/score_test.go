package ats

import (
	"reflect"
	"testing"

	"stepResume/internal/draft"
)

func TestChecklistWeightsSumToHundred(t *testing.T) {
	total := 0
	for _, item := range checklist {
		total += item.weight
	}
	if total != 100 {
		t.Fatalf("checklist weights sum to %d, want 100", total)
	}
}

func TestScoreBlankDraft(t *testing.T) {
	result := Score(draft.NewBlank())
	if result.Score != 0 {
		t.Fatalf("blank draft score = %d, want 0", result.Score)
	}
	if len(result.Suggestions) != len(checklist) {
		t.Fatalf("blank draft should fail every check: got %d suggestions, want %d",
			len(result.Suggestions), len(checklist))
	}
}

func TestScoreSampleDraftIsPerfect(t *testing.T) {
	result := Score(draft.Sample())
	if result.Score != 100 {
		t.Fatalf("sample draft score = %d, want 100 (suggestions: %v)", result.Score, result.Suggestions)
	}
	if len(result.Suggestions) != 0 {
		t.Fatalf("sample draft should have no suggestions, got %v", result.Suggestions)
	}
}

func TestScoreAndSuggestionsAreDual(t *testing.T) {
	d := draft.NewBlank()
	d.Name = "Ada"
	d.Email = "ada@example.io"
	d.Phone = "+44 123"

	result := Score(d)

	failed := 0
	for _, item := range checklist {
		if !item.passed(d) {
			failed += item.weight
		}
	}
	if result.Score+failed != 100 {
		t.Fatalf("score %d plus failed weight %d must equal 100", result.Score, failed)
	}
	if result.Score != 25 {
		t.Fatalf("name+email+phone should score 25, got %d", result.Score)
	}
}

func TestScoreIsMonotoneOnFillingFields(t *testing.T) {
	d := draft.NewBlank()
	previous := Score(d).Score

	d.Name = "Ada"
	if next := Score(d).Score; next <= previous {
		t.Fatalf("adding a name must raise the score: %d -> %d", previous, next)
	} else {
		previous = next
	}

	d.Email = "ada@example.io"
	if next := Score(d).Score; next <= previous {
		t.Fatalf("adding an email must raise the score: %d -> %d", previous, next)
	}
}

func TestSuggestionsFollowChecklistOrder(t *testing.T) {
	result := Score(draft.NewBlank())

	want := make([]string, 0, len(checklist))
	for _, item := range checklist {
		want = append(want, item.suggestion)
	}
	if !reflect.DeepEqual(result.Suggestions, want) {
		t.Fatalf("suggestions out of order:\ngot  %v\nwant %v", result.Suggestions, want)
	}
}

func TestTopImprovementsTruncatesToThree(t *testing.T) {
	result := Score(draft.NewBlank())
	top := TopImprovements(result)
	if len(top) != topImprovementCount {
		t.Fatalf("expected %d top improvements, got %d", topImprovementCount, len(top))
	}
	if !reflect.DeepEqual(top, result.Suggestions[:topImprovementCount]) {
		t.Fatalf("top improvements must be a prefix of the suggestion list")
	}

	short := Result{Suggestions: []string{"only one"}}
	if got := TopImprovements(short); len(got) != 1 {
		t.Fatalf("short lists pass through unchanged, got %v", got)
	}
}

func TestActionVerbCheckNeedsNonEmptySummary(t *testing.T) {
	// 空概述不得白拿动词开头的分：该项要求概述非空且以强动词开头。
	d := draft.NewBlank()
	blank := Score(d)
	if len(blank.Suggestions) != len(checklist) {
		t.Fatalf("blank summary must fail the action-verb check too")
	}

	d.Summary = "Built a data platform"
	withVerb := Score(d)
	if withVerb.Score != blank.Score+5 {
		t.Fatalf("short action-verb summary should add exactly the verb weight: %d -> %d",
			blank.Score, withVerb.Score)
	}
}
