// Package pages manages static site pages (about, contact, terms).
package pages

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

type Page struct {
	bun.BaseModel `bun:"table:pages,alias:pg"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	Title           string    `bun:"title,notnull" json:"title"`
	Slug            string    `bun:"slug,notnull,unique" json:"slug"`
	Content         string    `bun:"content,notnull" json:"content"`
	MetaTitle       *string   `bun:"meta_title" json:"metaTitle,omitempty"`
	MetaDescription *string   `bun:"meta_description" json:"metaDescription,omitempty"`
	IsPublished     bool      `bun:"is_published,notnull,default:false" json:"isPublished"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt       time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func Models() []any {
	return []any{(*Page)(nil)}
}

func Handlers() crud.ModelHandlers[*Page] {
	return crud.ModelHandlers[*Page]{
		NewRecord:          func() *Page { return &Page{} },
		GetID:              func(p *Page) int64 { return p.ID },
		SetID:              func(p *Page, id int64) { p.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(p *Page) string { return p.Slug },
		SetIdentifierValue: func(p *Page, slug string) { p.Slug = slug },
		Stamp: func(p *Page, now time.Time, created bool) {
			if created {
				p.CreatedAt = now
			}
			p.UpdatedAt = now
		},
		Clone: func(p *Page) *Page {
			out := *p
			if p.MetaTitle != nil {
				v := *p.MetaTitle
				out.MetaTitle = &v
			}
			if p.MetaDescription != nil {
				v := *p.MetaDescription
				out.MetaDescription = &v
			}
			return &out
		},
	}
}

func validate(p *Page) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&p.Slug, validation.Required, validation.Length(1, 512)),
		validation.Field(&p.Content, validation.Required),
	)
}

type Service = crud.Service[*Page]

func NewService(repo crud.Repository[*Page], log logging.Logger) *Service {
	return crud.NewService(repo, "page", Handlers(),
		crud.WithLogger[*Page](log),
		crud.WithValidator(validate),
	)
}

func NewBunService(db *bun.DB, log logging.Logger) *Service {
	return NewService(crud.NewBunRepository(db, "page", Handlers()), log)
}
