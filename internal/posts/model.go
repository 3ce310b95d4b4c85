// Package posts manages blog posts and their tags.
package posts

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

type Post struct {
	bun.BaseModel `bun:"table:posts,alias:p"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	Title      string    `bun:"title,notnull" json:"title"`
	Slug       string    `bun:"slug,notnull,unique" json:"slug"`
	Content    string    `bun:"content,notnull" json:"content"`
	Excerpt    *string   `bun:"excerpt" json:"excerpt,omitempty"`
	AuthorID   *int64    `bun:"author_id" json:"authorId,omitempty"`
	Status     string    `bun:"status,notnull,default:'draft'" json:"status"`
	IsFeatured bool      `bun:"is_featured,notnull,default:false" json:"isFeatured"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt  time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// PostTag is the join row between posts and tags.
type PostTag struct {
	bun.BaseModel `bun:"table:post_tags,alias:pt"`

	PostID int64 `bun:"post_id,pk" json:"postId"`
	TagID  int64 `bun:"tag_id,pk" json:"tagId"`
}

func Models() []any {
	return []any{(*Post)(nil), (*Tag)(nil), (*PostTag)(nil)}
}

func PostHandlers() crud.ModelHandlers[*Post] {
	return crud.ModelHandlers[*Post]{
		NewRecord:          func() *Post { return &Post{} },
		GetID:              func(p *Post) int64 { return p.ID },
		SetID:              func(p *Post, id int64) { p.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(p *Post) string { return p.Slug },
		SetIdentifierValue: func(p *Post, slug string) { p.Slug = slug },
		Stamp: func(p *Post, now time.Time, created bool) {
			if created {
				p.CreatedAt = now
			}
			p.UpdatedAt = now
		},
		Clone: func(p *Post) *Post {
			out := *p
			if p.Excerpt != nil {
				e := *p.Excerpt
				out.Excerpt = &e
			}
			if p.AuthorID != nil {
				a := *p.AuthorID
				out.AuthorID = &a
			}
			return &out
		},
	}
}

func TagHandlers() crud.ModelHandlers[*Tag] {
	return crud.ModelHandlers[*Tag]{
		NewRecord:          func() *Tag { return &Tag{} },
		GetID:              func(t *Tag) int64 { return t.ID },
		SetID:              func(t *Tag, id int64) { t.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(t *Tag) string { return t.Slug },
		SetIdentifierValue: func(t *Tag, slug string) { t.Slug = slug },
		Stamp: func(t *Tag, now time.Time, created bool) {
			if created {
				t.CreatedAt = now
			}
			t.UpdatedAt = now
		},
		Clone: func(t *Tag) *Tag {
			out := *t
			return &out
		},
	}
}

func validatePost(p *Post) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&p.Slug, validation.Required, validation.Length(1, 512)),
		validation.Field(&p.Content, validation.Required),
		validation.Field(&p.Status, validation.Required, validation.In(StatusDraft, StatusPublished)),
	)
}

func validateTag(t *Tag) error {
	return validation.ValidateStruct(t,
		validation.Field(&t.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&t.Slug, validation.Required, validation.Length(1, 255)),
	)
}
