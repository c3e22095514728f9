package canned

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/davidbz/howl/internal/domain"
)

//go:embed responses.yaml
var defaultResponses []byte

// Route maps a keyword set to a canned reply.
type Route struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Response string   `yaml:"response"`

	fragments []string
}

// Fragments returns the precomputed fragment texts of the reply.
func (r *Route) Fragments() []string {
	return r.fragments
}

// Matches reports whether any keyword occurs in the lowercased text.
func (r *Route) Matches(lowered string) bool {
	for _, keyword := range r.Keywords {
		if keyword != "" && strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// Table is the immutable routing table, loaded once at startup.
type Table struct {
	Routes   []Route `yaml:"routes"`
	Fallback Route   `yaml:"fallback"`
}

// Select picks the route for a message. Matching is case-insensitive.
func (t *Table) Select(message string) *Route {
	lowered := strings.ToLower(message)
	for i := range t.Routes {
		if t.Routes[i].Matches(lowered) {
			return &t.Routes[i]
		}
	}
	return &t.Fallback
}

// Parse decodes a YAML table and precomputes fragments for every route.
func Parse(data []byte) (*Table, error) {
	var table Table
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse response table: %w", err)
	}

	if table.Fallback.Response == "" {
		return nil, errors.New("response table has no fallback response")
	}

	for i := range table.Routes {
		route := &table.Routes[i]
		if route.Name == "" {
			return nil, fmt.Errorf("route %d has no name", i)
		}
		if len(route.Keywords) == 0 {
			return nil, fmt.Errorf("route %s has no keywords", route.Name)
		}
		for j, keyword := range route.Keywords {
			route.Keywords[j] = strings.ToLower(keyword)
		}
		route.fragments = domain.SplitFragments(route.Response)
	}
	table.Fallback.fragments = domain.SplitFragments(table.Fallback.Response)

	return &table, nil
}

// LoadFile reads a table from path.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read response table %s: %w", path, err)
	}
	return Parse(data)
}

// DefaultTable returns the built-in table.
func DefaultTable() (*Table, error) {
	return Parse(defaultResponses)
}

// Load returns the table at path, or the built-in one when path is empty.
func Load(cfg *Config) (*Table, error) {
	if cfg == nil || cfg.ResponsesFile == "" {
		return DefaultTable()
	}
	return LoadFile(cfg.ResponsesFile)
}
