// Package markdown renders post and page bodies and parses seed documents
// with YAML frontmatter.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown to HTML. It is stateless; one instance serves
// all requests.
type Renderer struct {
	engine goldmark.Markdown
}

func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render returns the HTML for one markdown document.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}

// DocumentMeta is the YAML frontmatter shape of a seed document.
type DocumentMeta struct {
	Title           string `yaml:"title"`
	Slug            string `yaml:"slug"`
	Excerpt         string `yaml:"excerpt"`
	MetaTitle       string `yaml:"meta_title"`
	MetaDescription string `yaml:"meta_description"`
	Published       bool   `yaml:"published"`
	Featured        bool   `yaml:"featured"`
}

// Document is a parsed seed file: metadata plus the markdown body.
type Document struct {
	Meta DocumentMeta
	Body string
}

// ParseDocument splits a seed file into frontmatter and body.
func ParseDocument(source []byte) (*Document, error) {
	var meta DocumentMeta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return &Document{Meta: meta, Body: string(body)}, nil
}
