// Package careers serves the read-only career path catalog bundled with the binary.
package careers

import (
	"careerpath-backend/internal/models"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed careers.yaml
var bundled []byte

var ErrCareerNotFound = errors.New("career not found")

// Catalog is an ordered, immutable set of career paths keyed by slug.
type Catalog struct {
	careers []models.CareerDetail
	bySlug  map[string]int
}

// Parse decodes a YAML list of careers. Slugs must be present and unique.
func Parse(data []byte) (*Catalog, error) {
	var careers []models.CareerDetail
	if err := yaml.Unmarshal(data, &careers); err != nil {
		return nil, fmt.Errorf("failed to parse career catalog: %w", err)
	}
	c := &Catalog{careers: careers, bySlug: make(map[string]int, len(careers))}
	for i, career := range careers {
		if career.Slug == "" {
			return nil, fmt.Errorf("career %d (%q) has no slug", i, career.Title)
		}
		if _, dup := c.bySlug[career.Slug]; dup {
			return nil, fmt.Errorf("duplicate career slug %q", career.Slug)
		}
		c.bySlug[career.Slug] = i
	}
	return c, nil
}

// Default loads the bundled catalog.
func Default() (*Catalog, error) {
	return Parse(bundled)
}

// List returns career summaries in catalog order. A non-empty query keeps
// careers whose title, description or skills contain it, case-insensitively.
func (c *Catalog) List(query string) []models.CareerSummary {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]models.CareerSummary, 0, len(c.careers))
	for _, career := range c.careers {
		if query == "" || matches(career.CareerSummary, query) {
			out = append(out, career.CareerSummary)
		}
	}
	return out
}

func matches(s models.CareerSummary, query string) bool {
	if strings.Contains(strings.ToLower(s.Title), query) || strings.Contains(strings.ToLower(s.Description), query) {
		return true
	}
	for _, skill := range s.Skills {
		if strings.Contains(strings.ToLower(skill), query) {
			return true
		}
	}
	return false
}

// Get returns the full career page for slug.
func (c *Catalog) Get(slug string) (*models.CareerDetail, error) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, ErrCareerNotFound
	}
	career := c.careers[i]
	return &career, nil
}

func (c *Catalog) Len() int { return len(c.careers) }

// Load reads a catalog from a YAML file, or the bundled one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read career catalog %s: %w", path, err)
	}
	return Parse(data)
}
