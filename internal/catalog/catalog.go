// Package catalog lists the models advertised to chat clients.
package catalog

import "context"

// Model describes one advertised model.
type Model struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Provider      string   `json:"provider"`
	ContextLength int      `json:"context_length"`
	Capabilities  []string `json:"capabilities"`
}

// Catalog is a read-only model list.
type Catalog struct {
	models []Model
}

// NewCatalog returns the built-in catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		models: []Model{
			{
				ID:            "gpt-4",
				Name:          "GPT-4",
				Provider:      "OpenAI",
				ContextLength: 8192,
				Capabilities:  []string{"chat", "code", "analysis"},
			},
			{
				ID:            "gpt-4-turbo",
				Name:          "GPT-4 Turbo",
				Provider:      "OpenAI",
				ContextLength: 128000,
				Capabilities:  []string{"chat", "code", "analysis", "vision"},
			},
			{
				ID:            "claude-3-opus",
				Name:          "Claude 3 Opus",
				Provider:      "Anthropic",
				ContextLength: 200000,
				Capabilities:  []string{"chat", "code", "analysis", "vision"},
			},
			{
				ID:            "claude-3-sonnet",
				Name:          "Claude 3 Sonnet",
				Provider:      "Anthropic",
				ContextLength: 200000,
				Capabilities:  []string{"chat", "code", "analysis"},
			},
		},
	}
}

// List returns a copy of the advertised models.
func (c *Catalog) List(_ context.Context) []Model {
	out := make([]Model, len(c.models))
	for i, m := range c.models {
		m.Capabilities = append([]string(nil), m.Capabilities...)
		out[i] = m
	}
	return out
}

// Find looks a model up by id.
func (c *Catalog) Find(_ context.Context, id string) (Model, bool) {
	for _, m := range c.models {
		if m.ID == id {
			return m, true
		}
	}
	return Model{}, false
}
