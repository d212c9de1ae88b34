package prompt

import (
	"bytes"
	"fmt"

	"github.com/easeaico/maitri/internal/emotion"
	"github.com/easeaico/maitri/internal/types"
)

// feelingThreshold is the score an emotion must exceed to be mentioned.
const feelingThreshold = 3

// BuildContext contains all inputs for prompt assembly.
type BuildContext struct {
	Persona  types.PersonaProfile
	Message  string
	State    types.EmotionalState
	Language string
	History  []types.ConversationTurn
}

// Builder assembles the generation prompt.
type Builder struct {
	historyLimit int
}

// NewBuilder creates a prompt Builder keeping at most historyLimit turns.
func NewBuilder(historyLimit int) *Builder {
	if historyLimit <= 0 {
		historyLimit = 5
	}
	return &Builder{historyLimit: historyLimit}
}

// Build renders the prompt. It is deterministic and has no side effects.
func (b *Builder) Build(ctx BuildContext) (string, error) {
	if ctx.Persona.Key == "" {
		return "", fmt.Errorf("persona is required")
	}

	history := ctx.History
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}

	language := ctx.Language
	if language == "" {
		language = emotion.LanguageEnglish
	}

	data := struct {
		Persona             types.PersonaProfile
		Feelings            []string
		Language            string
		LanguageInstruction string
		History             []types.ConversationTurn
		Message             string
	}{
		Persona:             ctx.Persona,
		Feelings:            feelings(ctx.State),
		Language:            language,
		LanguageInstruction: emotion.LanguageInstruction(language),
		History:             history,
		Message:             ctx.Message,
	}

	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to build prompt: %w", err)
	}
	return buf.String(), nil
}

func feelings(state types.EmotionalState) []string {
	var out []string
	for _, e := range types.Emotions {
		if state[e] > feelingThreshold {
			out = append(out, string(e))
		}
	}
	return out
}
