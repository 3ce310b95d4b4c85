// Command import seeds pages or posts from markdown files with YAML
// frontmatter.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fullsco/fullsco/internal/config"
	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
	"github.com/fullsco/fullsco/internal/markdown"
	"github.com/fullsco/fullsco/internal/pages"
	"github.com/fullsco/fullsco/internal/posts"
	"github.com/fullsco/fullsco/internal/storage"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("import: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dir := fs.String("dir", "content", "Directory holding the markdown files")
	kind := fs.String("kind", "pages", "What to import: pages or posts")
	pattern := fs.String("pattern", "*.md", "Glob applied inside the directory")
	dryRun := fs.Bool("dry-run", false, "Parse and report without writing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *kind != "pages" && *kind != "posts" {
		return fmt.Errorf("unknown kind %q", *kind)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	provider, err := logging.NewProvider(logging.Config{Level: cfg.LogLevel, Format: "console"})
	if err != nil {
		return err
	}
	logger := provider.GetLogger("import")

	db, err := storage.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	var models []any
	models = append(models, pages.Models()...)
	models = append(models, posts.Models()...)
	if err := storage.InitSchema(ctx, db, models...); err != nil {
		return err
	}

	matches, err := filepath.Glob(filepath.Join(*dir, *pattern))
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		logger.Warn("no files matched", "dir", *dir, "pattern", *pattern)
		return nil
	}

	pageSvc := pages.NewBunService(db, logger)
	postSvc := posts.NewBunService(db, logger)

	imported := 0
	for _, path := range matches {
		source, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		doc, err := markdown.ParseDocument(source)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		slug := doc.Meta.Slug
		if slug == "" {
			slug = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		title := doc.Meta.Title
		if title == "" {
			title = slug
		}

		if *dryRun {
			logger.Info("would import", "file", path, "slug", slug)
			continue
		}

		switch *kind {
		case "pages":
			err = importPage(ctx, pageSvc, doc, title, slug)
		case "posts":
			err = importPost(ctx, postSvc, doc, title, slug)
		}
		if err != nil {
			if crud.IsConflict(err) {
				logger.Warn("skipping existing slug", "file", path, "slug", slug)
				continue
			}
			return fmt.Errorf("%s: %w", path, err)
		}
		imported++
		logger.Info("imported", "file", path, "slug", slug)
	}

	logger.Info("done", "imported", imported, "total", len(matches))
	return nil
}

func importPage(ctx context.Context, svc *pages.Service, doc *markdown.Document, title, slug string) error {
	page := &pages.Page{
		Title:       title,
		Slug:        slug,
		Content:     doc.Body,
		IsPublished: doc.Meta.Published,
	}
	if doc.Meta.MetaTitle != "" {
		page.MetaTitle = &doc.Meta.MetaTitle
	}
	if doc.Meta.MetaDescription != "" {
		page.MetaDescription = &doc.Meta.MetaDescription
	}
	_, err := svc.Create(ctx, page)
	return err
}

func importPost(ctx context.Context, svc *posts.Service, doc *markdown.Document, title, slug string) error {
	post := &posts.Post{
		Title:      title,
		Slug:       slug,
		Content:    doc.Body,
		Status:     posts.StatusDraft,
		IsFeatured: doc.Meta.Featured,
	}
	if doc.Meta.Published {
		post.Status = posts.StatusPublished
	}
	if doc.Meta.Excerpt != "" {
		post.Excerpt = &doc.Meta.Excerpt
	}
	_, err := svc.Posts.Create(ctx, post)
	return err
}
