package ai

import (
	"strings"
	"testing"

	"github.com/friendlens/friendlens/internal/analysis"
	"github.com/friendlens/friendlens/internal/models"
)

func TestBuildQueryPrompt_Deterministic(t *testing.T) {
	t.Parallel()

	events := testEvents()
	activities := []models.Activity{{Name: "Hiking", Type: "outdoor sport", Outdoor: true}}
	people := []models.Person{{Name: "Alice"}, {Name: "Bob"}}
	summary := analysis.Summarize(events)

	first, err := BuildQueryPrompt(events, activities, people, summary, "who hikes?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := BuildQueryPrompt(events, activities, people, summary, "who hikes?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Error("identical inputs must produce an identical prompt")
	}
}

func TestBuildQueryPrompt_Contents(t *testing.T) {
	t.Parallel()

	events := testEvents()
	summary := analysis.Summarize(events)
	question := "Which activity is most popular?"

	prompt, err := BuildQueryPrompt(events, nil, nil, summary, question)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The question is embedded verbatim, after the serialized data and the
	// summary block.
	if !strings.Contains(prompt, "Question: "+question) {
		t.Errorf("prompt missing verbatim question:\n%s", prompt)
	}
	if !strings.Contains(prompt, `"activity_name":"Hiking"`) {
		t.Errorf("prompt missing serialized event data:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Total events: 3") {
		t.Errorf("prompt missing summary block:\n%s", prompt)
	}
	if strings.Index(prompt, "Data (JSON):") > strings.Index(prompt, "Question:") {
		t.Error("data context must precede the question")
	}
}
