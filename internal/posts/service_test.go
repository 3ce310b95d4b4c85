package posts_test

import (
	"context"
	"testing"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
	"github.com/fullsco/fullsco/internal/posts"
)

func newService() (*posts.Service, *posts.MemoryTagLinkStore) {
	postRepo := crud.NewMemoryRepository("post", posts.PostHandlers())
	tagRepo := crud.NewMemoryRepository("tag", posts.TagHandlers())
	links := posts.NewMemoryTagLinkStore(postRepo)
	return posts.NewService(postRepo, tagRepo, links, logging.NoOp()), links
}

func seedPost(t *testing.T, svc *posts.Service, slug string) *posts.Post {
	t.Helper()
	p, err := svc.Posts.Create(context.Background(), &posts.Post{
		Title:   "Post " + slug,
		Slug:    slug,
		Content: "# body",
	})
	if err != nil {
		t.Fatalf("seed post %s: %v", slug, err)
	}
	return p
}

func seedTag(t *testing.T, svc *posts.Service, slug string) *posts.Tag {
	t.Helper()
	tag, err := svc.Tags.Create(context.Background(), &posts.Tag{Name: slug, Slug: slug})
	if err != nil {
		t.Fatalf("seed tag %s: %v", slug, err)
	}
	return tag
}

func TestSetTagsReplaces(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	post := seedPost(t, svc, "funding-guide")
	a := seedTag(t, svc, "funding")
	b := seedTag(t, svc, "guides")
	c := seedTag(t, svc, "europe")

	if err := svc.SetTags(ctx, post.ID, []int64{a.ID, b.ID}); err != nil {
		t.Fatalf("set tags: %v", err)
	}
	if err := svc.SetTags(ctx, post.ID, []int64{c.ID}); err != nil {
		t.Fatalf("replace tags: %v", err)
	}

	tags, err := svc.TagsFor(ctx, post.ID)
	if err != nil {
		t.Fatalf("tags for: %v", err)
	}
	if len(tags) != 1 || tags[0].ID != c.ID {
		t.Fatalf("tags = %v, want only %d", tags, c.ID)
	}
}

func TestSetTagsRejectsUnknownAndDuplicate(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	post := seedPost(t, svc, "p")
	tag := seedTag(t, svc, "t")

	if err := svc.SetTags(ctx, post.ID, []int64{tag.ID, 9999}); !crud.IsNotFound(err) {
		t.Fatalf("unknown tag err = %v, want not found", err)
	}
	if err := svc.SetTags(ctx, post.ID, []int64{tag.ID, tag.ID}); !crud.IsValidation(err) {
		t.Fatalf("duplicate tag err = %v, want validation", err)
	}
	if err := svc.SetTags(ctx, 9999, []int64{tag.ID}); !crud.IsNotFound(err) {
		t.Fatalf("unknown post err = %v, want not found", err)
	}
}

func TestDeleteRemovesJoinRows(t *testing.T) {
	svc, links := newService()
	ctx := context.Background()

	post := seedPost(t, svc, "to-delete")
	tag := seedTag(t, svc, "tag")
	if err := svc.SetTags(ctx, post.ID, []int64{tag.ID}); err != nil {
		t.Fatalf("set tags: %v", err)
	}

	if err := svc.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Posts.Get(ctx, post.ID); !crud.IsNotFound(err) {
		t.Fatalf("post still present: %v", err)
	}
	ids, err := links.TagIDs(ctx, post.ID)
	if err != nil {
		t.Fatalf("tag ids: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("join rows remain: %v", ids)
	}
}

func TestCreateDefaultsStatusToDraft(t *testing.T) {
	svc, _ := newService()
	p, err := svc.Posts.Create(context.Background(), &posts.Post{
		Title: "Untitled", Slug: "untitled", Content: "# body",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Status != posts.StatusDraft {
		t.Fatalf("status = %q, want %q", p.Status, posts.StatusDraft)
	}
}

func TestPostStatusValidated(t *testing.T) {
	svc, _ := newService()
	_, err := svc.Posts.Create(context.Background(), &posts.Post{
		Title: "x", Slug: "x", Content: "y", Status: "archived",
	})
	if !crud.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
}
