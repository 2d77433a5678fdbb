// Package aiclass is the boundary to the external AI classifier. The
// core treats it as an opaque function that may be slow or unavailable:
// every call runs under a bounded timeout and any failure degrades to
// "no categorization" rather than blocking an import.
package aiclass

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

// Classifier maps a batch of descriptions to category NAMES. A missing
// key means the classifier had no opinion. Implementations must never
// block past their timeout.
type Classifier interface {
	Categorize(ctx context.Context, descriptions []string, categories []model.Category) (map[string]string, error)
}

const defaultModel = "claude-sonnet-4-5-20250929"

// Anthropic classifies descriptions with a single Claude message.
type Anthropic struct {
	client  anthropic.Client
	model   string
	timeout time.Duration
}

// NewAnthropic creates a Claude-backed classifier. Empty model selects
// the default; a non-positive timeout gets 30 seconds.
func NewAnthropic(apiKey, modelName string, timeout time.Duration) *Anthropic {
	if modelName == "" {
		modelName = defaultModel
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Anthropic{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   modelName,
		timeout: timeout,
	}
}

// Categorize implements Classifier.
func (a *Anthropic) Categorize(ctx context.Context, descriptions []string, categories []model.Category) (map[string]string, error) {
	if len(descriptions) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := buildPrompt(descriptions, categories)
	message, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: 2048,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("claude API call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return parseResponse(text.String())
}

func buildPrompt(descriptions []string, categories []model.Category) string {
	var b strings.Builder
	b.WriteString("You categorize bank and credit-card statement lines for an Israeli household.\n")
	b.WriteString("Descriptions mix Hebrew and Latin merchant names.\n\n")
	b.WriteString("Available categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s (%s)\n", c.Name, c.Type)
	}
	b.WriteString("\nReturn ONLY a JSON object mapping each description to exactly one category name from the list above. ")
	b.WriteString("Omit descriptions you cannot categorize confidently. Use the category names verbatim.\n\n")
	b.WriteString("Descriptions:\n")
	data, _ := json.MarshalIndent(descriptions, "", "  ")
	b.Write(data)
	return b.String()
}

// parseResponse extracts the JSON object from the model output, which
// may be wrapped in markdown fences or prose.
func parseResponse(text string) (map[string]string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var out map[string]string
	if err := json.Unmarshal([]byte(text[start:end+1]), &out); err != nil {
		return nil, fmt.Errorf("parsing classifier response: %w", err)
	}
	return out, nil
}

// Resolve maps classifier output to category IDs via exact
// case-sensitive name match. Unresolved names are dropped.
func Resolve(names map[string]string, byName func(string) (model.Category, bool)) map[string]string {
	out := make(map[string]string, len(names))
	for desc, name := range names {
		if c, ok := byName(name); ok {
			out[desc] = c.ID
		}
	}
	return out
}
