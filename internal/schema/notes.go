package schema

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

var (
	notesHeading    = regexp.MustCompile(`(?m)^[ \t]*Notes[ \t]*\r?\n[ \t]*-{3,}[ \t]*\r?\n`)
	examplesHeading = regexp.MustCompile(`(?m)^[ \t]*Examples[ \t]*\r?\n[ \t]*-{3,}[ \t]*$`)
	mathDirective   = regexp.MustCompile(`\.\. math::[ \t]*(\r?\n[ \t]*\r?\n)?`)
)

// ExtractNotes returns the text between the "Notes" and "Examples" sections of a
// reference docstring with reStructuredText math markup removed. A docstring
// without both sections yields "".
func ExtractNotes(doc string) string {
	start := notesHeading.FindStringIndex(doc)
	if start == nil {
		return ""
	}
	rest := doc[start[1]:]

	end := examplesHeading.FindStringIndex(rest)
	if end == nil {
		return ""
	}

	notes := rest[:end[0]]
	notes = mathDirective.ReplaceAllString(notes, "")
	notes = strings.ReplaceAll(notes, ":math:", "")
	notes = dedent(notes)
	return strings.Trim(notes, "\r\n\t ")
}

// RenderNotes converts extracted notes to HTML. Raw HTML in the notes is dropped.
func RenderNotes(notes string) template.HTML {
	if notes == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.SkipHTML})
	return template.HTML(markdown.ToHTML([]byte(notes), p, r))
}

// dedent removes the indentation common to every non-blank line
func dedent(s string) string {
	lines := strings.Split(s, "\n")

	common := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		if common < 0 || indent < common {
			common = indent
		}
	}
	if common <= 0 {
		return s
	}

	for i, line := range lines {
		if len(line) >= common {
			lines[i] = line[common:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}
