package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/friendlens/friendlens/internal/analysis"
	"github.com/friendlens/friendlens/internal/models"
)

// groundingContext is the structured data serialized into the prompt so the
// model's answer is constrained to known facts.
type groundingContext struct {
	Events     []models.Event    `json:"events"`
	Activities []models.Activity `json:"activities"`
	People     []models.Person   `json:"people"`
}

// BuildQueryPrompt builds the deterministic grounding prompt: the
// serialized collections, the summary block, then the verbatim question and
// response-style instructions. Identical inputs produce an identical
// prompt.
func BuildQueryPrompt(events []models.Event, activities []models.Activity, people []models.Person, summary analysis.Summary, question string) (string, error) {
	data, err := json.Marshal(groundingContext{
		Events:     events,
		Activities: activities,
		People:     people,
	})
	if err != nil {
		return "", fmt.Errorf("failed to serialize grounding context: %w", err)
	}

	var b strings.Builder
	b.WriteString("Answer the question below using only the following social events data.\n\n")
	b.WriteString("Data (JSON):\n")
	b.Write(data)
	b.WriteString("\n\nSummary:\n")
	b.WriteString(summary.Text())
	b.WriteString("\nQuestion: ")
	b.WriteString(question)
	b.WriteString("\n\nAnswer conversationally and be specific: name the people, activities and counts involved. ")
	b.WriteString("Every claim must be grounded in the data above. If the data cannot answer the question, say so.")
	return b.String(), nil
}
