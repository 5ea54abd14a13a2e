// Package catalog loads the project catalog and derives the browser views over
// it (filter, sort, paginate, featured strip, location sync).
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"broadcast-mode/internal/model"
	"broadcast-mode/internal/statusutil"

	"gopkg.in/yaml.v3"
)

//go:embed projects.yaml
var defaultCatalog []byte

var ErrNotFound = errors.New("project not found")

// Catalog is an immutable, validated project list.
type Catalog struct {
	projects []model.Project
	byID     map[string]int
}

// Load reads a catalog from path, or the embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultCatalog)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default is the embedded catalog. It is validated by tests, so a failure here
// is a build defect.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(err)
	}
	return c
}

// Parse decodes and validates a YAML catalog.
func Parse(b []byte) (*Catalog, error) {
	var projects []model.Project
	if err := yaml.Unmarshal(b, &projects); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(projects)
}

// New validates projects: ids are unique and non-empty, statuses are
// normalised, and an images list (when given) has at least one usable entry.
func New(projects []model.Project) (*Catalog, error) {
	c := &Catalog{
		projects: make([]model.Project, 0, len(projects)),
		byID:     make(map[string]int, len(projects)),
	}
	for i, p := range projects {
		p.ID = strings.TrimSpace(p.ID)
		if p.ID == "" {
			return nil, fmt.Errorf("project #%d: missing id", i+1)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("project %q: duplicate id", p.ID)
		}
		if strings.TrimSpace(p.Title) == "" {
			return nil, fmt.Errorf("project %q: missing title", p.ID)
		}
		st, err := statusutil.NormalizeStatus(string(p.Status))
		if err != nil {
			return nil, fmt.Errorf("project %q: %w", p.ID, err)
		}
		p.Status = st
		if p.Images != nil {
			if len(p.Images) == 0 {
				return nil, fmt.Errorf("project %q: images is empty", p.ID)
			}
			for j, img := range p.Images {
				if strings.TrimSpace(img.Src) == "" {
					return nil, fmt.Errorf("project %q: image #%d has no src", p.ID, j+1)
				}
			}
		}
		if p.Format == "" {
			p.Format = model.FormatCassette
		}
		c.byID[p.ID] = len(c.projects)
		c.projects = append(c.projects, p)
	}
	return c, nil
}

// Projects returns a copy of the catalog in file order.
func (c *Catalog) Projects() []model.Project {
	if c == nil {
		return nil
	}
	return append([]model.Project(nil), c.projects...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.projects)
}

func (c *Catalog) Find(id string) (model.Project, error) {
	if c != nil {
		if i, ok := c.byID[strings.TrimSpace(id)]; ok {
			return c.projects[i], nil
		}
	}
	return model.Project{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, ok := c.byID[id]
	return ok
}
