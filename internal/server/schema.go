package server

import (
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
)

const maxMessageLength = 4000

// sendMessageRequest is the body of POST /api/send_message.
type sendMessageRequest struct {
	AstronautID string             `json:"astronaut_id,omitempty" jsonschema:"astronaut id, defaults to ASTRO001"`
	Persona     string             `json:"persona,omitempty" jsonschema:"persona key, defaults to best_friend"`
	Message     string             `json:"message,omitempty" jsonschema:"what the astronaut said"`
	Tone        map[string]float64 `json:"tone,omitempty" jsonschema:"optional tone intensity per emotion, 0 to 10"`
}

// sendMessageSchema builds the resolved schema for sendMessageRequest.
func sendMessageSchema() (*jsonschema.Resolved, error) {
	schema, err := jsonschema.For[sendMessageRequest](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to infer request schema: %w", err)
	}

	// Unknown fields are ignored rather than rejected.
	schema.AdditionalProperties = nil
	if msg, ok := schema.Properties["message"]; ok {
		msg.MaxLength = ptr(maxMessageLength)
	}
	if tone, ok := schema.Properties["tone"]; ok {
		tone.AdditionalProperties = &jsonschema.Schema{
			Type:    "number",
			Minimum: ptr(0.0),
			Maximum: ptr(10.0),
		}
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve request schema: %w", err)
	}
	return resolved, nil
}

func ptr[T any](v T) *T {
	return &v
}
