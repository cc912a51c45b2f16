package export

import (
	"context"
	"fmt"
	"html"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wireframe_ai_server/internal/utils"
)

// Page is one page to write: its display name and HTML fragment.
type Page struct {
	ID      string
	Name    string
	Content string
}

// Result lists what an export wrote.
type Result struct {
	Dir   string   `json:"dir"`
	Files []string `json:"files"`
}

type Exporter struct {
	rootDir string
	now     func() time.Time
}

func NewExporter(rootDir string) *Exporter {
	return &Exporter{rootDir: rootDir, now: time.Now}
}

// ExportPages writes every page as a standalone HTML document plus an index.html
// linking them, into <root>/<name>-<timestamp>. Files are staged in a temporary
// directory and moved into place once all writes succeeded.
func (e *Exporter) ExportPages(ctx context.Context, name string, pages []Page) (*Result, error) {
	if len(pages) == 0 {
		return nil, fmt.Errorf("nothing to export")
	}
	if err := os.MkdirAll(e.rootDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create export root: %w", err)
	}

	tempDir, err := os.MkdirTemp(e.rootDir, ".export-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	used := make(map[string]bool, len(pages))
	var files []string
	var links strings.Builder
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		filename := uniqueName(used, utils.Slugify(p.Name, "page")) + ".html"
		doc := document(p.Name, p.Content)
		if err := os.WriteFile(filepath.Join(tempDir, filename), []byte(doc), 0644); err != nil {
			return nil, fmt.Errorf("failed to write file %s: %w", filename, err)
		}
		files = append(files, filename)
		fmt.Fprintf(&links, "    <li><a href=\"%s\">%s</a></li>\n", filename, html.EscapeString(p.Name))
	}

	index := document(name, "<ul>\n"+links.String()+"</ul>")
	if err := os.WriteFile(filepath.Join(tempDir, "index.html"), []byte(index), 0644); err != nil {
		return nil, fmt.Errorf("failed to write index: %w", err)
	}
	files = append(files, "index.html")

	finalDir := filepath.Join(e.rootDir, fmt.Sprintf("%s-%s", utils.Slugify(name, "wireframe"), e.now().UTC().Format("20060102-150405")))
	finalDir = uniqueDir(finalDir)
	if err := os.Rename(tempDir, finalDir); err != nil {
		return nil, fmt.Errorf("failed to move export into place: %w", err)
	}

	log.Printf("Exported %d pages to %s", len(pages), finalDir)
	return &Result{Dir: finalDir, Files: files}, nil
}

func document(title, body string) string {
	return "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n  <meta charset=\"utf-8\">\n  <title>" +
		html.EscapeString(title) + "</title>\n</head>\n<body>\n" + body + "\n</body>\n</html>\n"
}

func uniqueName(used map[string]bool, stem string) string {
	if stem == "index" {
		stem = "index-page"
	}
	name := stem
	for i := 2; used[name]; i++ {
		name = fmt.Sprintf("%s-%d", stem, i)
	}
	used[name] = true
	return name
}

func uniqueDir(dir string) string {
	candidate := dir
	for i := 2; ; i++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", dir, i)
	}
}
