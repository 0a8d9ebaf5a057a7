package dashboard

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed content/*.md
var contentFS embed.FS

// loadCopy renders every embedded markdown file once, keyed by file name
// without extension.
func loadCopy() (map[string]template.HTML, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Typographer),
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)

	entries, err := fs.ReadDir(contentFS, "content")
	if err != nil {
		return nil, fmt.Errorf("error reading page copy: %w", err)
	}

	out := make(map[string]template.HTML, len(entries))
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".md" {
			continue
		}
		src, err := contentFS.ReadFile(path.Join("content", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("error reading %s: %w", e.Name(), err)
		}
		var buf bytes.Buffer
		if err := md.Convert(src, &buf); err != nil {
			return nil, fmt.Errorf("error rendering %s: %w", e.Name(), err)
		}
		out[strings.TrimSuffix(e.Name(), ".md")] = template.HTML(buf.String())
	}
	return out, nil
}
