package markdown_test

import (
	"strings"
	"testing"

	"github.com/fullsco/fullsco/internal/markdown"
)

func TestRenderBasicMarkdown(t *testing.T) {
	r := markdown.NewRenderer()

	out, err := r.Render("# Heading\n\nSome **bold** text.")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h1") || !strings.Contains(out, "<strong>bold</strong>") {
		t.Fatalf("unexpected html: %s", out)
	}
}

func TestRenderGFMTable(t *testing.T) {
	r := markdown.NewRenderer()

	out, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<table>") {
		t.Fatalf("table not rendered: %s", out)
	}
}

func TestParseDocument(t *testing.T) {
	source := []byte(`---
title: About Us
slug: about
published: true
---

Body text here.
`)
	doc, err := markdown.ParseDocument(source)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Meta.Title != "About Us" || doc.Meta.Slug != "about" || !doc.Meta.Published {
		t.Fatalf("meta = %+v", doc.Meta)
	}
	if strings.TrimSpace(doc.Body) != "Body text here." {
		t.Fatalf("body = %q", doc.Body)
	}
}

func TestParseDocumentWithoutFrontmatter(t *testing.T) {
	doc, err := markdown.ParseDocument([]byte("just a body"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Meta.Title != "" || strings.TrimSpace(doc.Body) != "just a body" {
		t.Fatalf("doc = %+v", doc)
	}
}
