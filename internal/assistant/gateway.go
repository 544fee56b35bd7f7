// Package assistant forwards note text to a generative model and relays its answer.
package assistant

import (
	"context"
	"fmt"

	"github.com/starford/jotter/internal/apperr"
	"github.com/starford/jotter/internal/markup"
)

const (
	summarizePrompt   = "Summarize the following note in a few short bullet points:\n\n\"%s\""
	actionItemsPrompt = "Analyze the following text and extract a numbered list of any tasks, deadlines, or action items. " +
		"If no action items are found, respond with \"No action items found.\":\n\n\"%s\""
)

// Completer sends a prompt to a model and returns its text response.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Gateway builds prompts from note content.
type Gateway struct {
	model Completer
}

// NewGateway creates a new gateway over model.
func NewGateway(model Completer) *Gateway {
	return &Gateway{model: model}
}

// Summarize returns a short bullet-point summary of content.
func (g *Gateway) Summarize(ctx context.Context, content string) (string, error) {
	return g.ask(ctx, summarizePrompt, content)
}

// ExtractActionItems returns a numbered list of tasks found in content.
func (g *Gateway) ExtractActionItems(ctx context.Context, content string) (string, error) {
	return g.ask(ctx, actionItemsPrompt, content)
}

func (g *Gateway) ask(ctx context.Context, template, content string) (string, error) {
	if content == "" {
		return "", fmt.Errorf("%w: no content provided", apperr.ErrValidation)
	}
	out, err := g.model.Complete(ctx, fmt.Sprintf(template, markup.Strip(content)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperr.ErrService, err)
	}
	return out, nil
}
