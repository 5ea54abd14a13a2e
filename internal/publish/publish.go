package publish

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"broadcast-mode/internal/catalog"
)

type WriteOptions struct {
	IncludeArchived       bool
	IncludeBehindTheBuild bool
	HTML                  bool
	Overwrite             bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteCatalog exports the catalog as a press kit:
//
//	<dir>/index.md
//	<dir>/projects/<id>.md
//
// With HTML set every page also gets an .html sibling.
func WriteCatalog(cat *catalog.Catalog, toDir string, opt WriteOptions) (WriteResult, error) {
	if cat == nil {
		return WriteResult{}, errors.New("missing catalog")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	projectsDir := filepath.Join(toDir, "projects")
	if err := os.MkdirAll(projectsDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	ropt := RenderOptions{
		IncludeArchived:       opt.IncludeArchived,
		IncludeBehindTheBuild: opt.IncludeBehindTheBuild,
	}
	var written []string
	emit := func(path, title, md string) error {
		if err := writeFile(path, []byte(md), opt.Overwrite); err != nil {
			return err
		}
		written = append(written, path)
		if !opt.HTML {
			return nil
		}
		page, err := RenderHTML(title, md)
		if err != nil {
			return err
		}
		htmlPath := strings.TrimSuffix(path, ".md") + ".html"
		if err := writeFile(htmlPath, page, opt.Overwrite); err != nil {
			return err
		}
		written = append(written, htmlPath)
		return nil
	}

	if err := emit(filepath.Join(toDir, "index.md"), "Projects", RenderIndexMarkdown(cat, ropt)); err != nil {
		return WriteResult{}, err
	}

	// Stop on first error; files already written stay on disk.
	for _, p := range exported(cat, opt.IncludeArchived) {
		md := renderProject(p, ropt)
		if err := emit(filepath.Join(projectsDir, p.ID+".md"), p.Title, md); err != nil {
			return WriteResult{}, err
		}
	}

	return WriteResult{Written: written}, nil
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
