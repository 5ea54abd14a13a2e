package publish

import (
	"bytes"
	"fmt"
	"strings"

	"broadcast-mode/internal/catalog"
	"broadcast-mode/internal/model"
	"broadcast-mode/internal/statusutil"
)

type RenderOptions struct {
	IncludeArchived       bool
	IncludeBehindTheBuild bool
}

// RenderProjectMarkdown renders one catalog entry as a standalone press-kit page.
func RenderProjectMarkdown(cat *catalog.Catalog, id string, opt RenderOptions) (string, error) {
	p, err := cat.Find(id)
	if err != nil {
		return "", err
	}
	if p.Status == model.StatusArchived && !opt.IncludeArchived {
		return "", fmt.Errorf("project archived (use --include-archived): %s", p.ID)
	}
	return renderProject(p, opt), nil
}

func renderProject(p model.Project, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}
	list := func(title string, items []string) {
		items = nonEmpty(items)
		if len(items) == 0 {
			return
		}
		writeLn("")
		writeLn("## " + title)
		writeLn("")
		for _, it := range items {
			writeLn("- " + it)
		}
	}

	writeLn("# " + strings.TrimSpace(p.Title))
	writeLn("")
	if s := strings.TrimSpace(p.Summary); s != "" {
		writeLn(s)
		writeLn("")
	}

	writeLn("## Meta")
	writeLn("")
	writeLn("- ID: " + p.ID)
	writeLn("- Status: " + statusutil.Label(p.Status))
	if c := strings.TrimSpace(p.Client); c != "" {
		writeLn("- Client: " + c)
	}
	if y := strings.TrimSpace(p.Year); y != "" {
		writeLn("- Year: " + y)
	}
	if r := strings.TrimSpace(p.Role); r != "" {
		writeLn("- Role: " + r)
	}
	if tags := nonEmpty(p.Type); len(tags) > 0 {
		writeLn("- Type: " + strings.Join(tags, ", "))
	}
	if stack := nonEmpty(p.Stack); len(stack) > 0 {
		writeLn("- Stack: " + strings.Join(stack, ", "))
	}
	if p.Featured {
		writeLn("- Featured: true")
	}
	if h := strings.TrimSpace(p.Href); h != "" {
		label := strings.TrimSpace(p.CTALabel)
		if label == "" {
			label = "Visit"
		}
		writeLn("- " + label + ": <" + h + ">")
	}
	if h := strings.TrimSpace(p.SecondaryHref); h != "" {
		label := strings.TrimSpace(p.SecondaryLabel)
		if label == "" {
			label = "More"
		}
		writeLn("- " + label + ": <" + h + ">")
	}

	if c := strings.TrimSpace(p.Context); c != "" {
		writeLn("")
		writeLn("## Context")
		writeLn("")
		writeLn(c)
	}
	list("Highlights", p.Highlights)
	list("Constraints", p.Constraints)
	list("Outcomes", p.Outcomes)

	if imgs := p.Gallery(); len(imgs) > 0 {
		writeLn("")
		writeLn("## Gallery")
		writeLn("")
		for _, img := range imgs {
			alt := strings.TrimSpace(img.Alt)
			if alt == "" {
				alt = p.Title
			}
			writeLn("![" + alt + "](" + img.Src + ")")
		}
	}

	if opt.IncludeBehindTheBuild && p.BehindTheBuild != nil {
		btb := p.BehindTheBuild
		title := strings.TrimSpace(btb.Title)
		if title == "" {
			title = "Behind the build"
		}
		writeLn("")
		writeLn("## " + title)
		if body := strings.TrimSpace(btb.Body); body != "" {
			writeLn("")
			writeLn(body)
		}
		if notes := nonEmpty(btb.Notes); len(notes) > 0 {
			writeLn("")
			for _, n := range notes {
				writeLn("- " + n)
			}
		}
	}

	return buf.String()
}

// RenderIndexMarkdown lists the exported projects in display order.
func RenderIndexMarkdown(cat *catalog.Catalog, opt RenderOptions) string {
	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# Projects")
	writeLn("")
	n := 0
	for _, p := range exported(cat, opt.IncludeArchived) {
		line := "- [" + strings.TrimSpace(p.Title) + "](projects/" + p.ID + ".md)"
		line += " · " + statusutil.Label(p.Status)
		if y := strings.TrimSpace(p.Year); y != "" {
			line += " · " + y
		}
		writeLn(line)
		n++
	}
	if n == 0 {
		writeLn("_No projects._")
	}
	return buf.String()
}

func exported(cat *catalog.Catalog, includeArchived bool) []model.Project {
	all := catalog.Sorted(cat.Projects())
	out := all[:0]
	for _, p := range all {
		if p.Status == model.StatusArchived && !includeArchived {
			continue
		}
		out = append(out, p)
	}
	return out
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
