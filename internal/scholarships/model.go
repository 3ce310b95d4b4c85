// Package scholarships manages the scholarship listings at the center of
// the platform.
package scholarships

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
)

type Scholarship struct {
	bun.BaseModel `bun:"table:scholarships,alias:sch"`

	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	Title       string     `bun:"title,notnull" json:"title"`
	Slug        string     `bun:"slug,notnull,unique" json:"slug"`
	Description *string    `bun:"description" json:"description,omitempty"`
	Content     *string    `bun:"content" json:"content,omitempty"`
	CategoryID  *int64     `bun:"category_id" json:"categoryId,omitempty"`
	LevelID     *int64     `bun:"level_id" json:"levelId,omitempty"`
	CountryID   *int64     `bun:"country_id" json:"countryId,omitempty"`
	Amount      *string    `bun:"amount" json:"amount,omitempty"`
	Deadline    *time.Time `bun:"deadline" json:"deadline,omitempty"`
	Link        *string    `bun:"link" json:"link,omitempty"`
	IsFeatured  bool       `bun:"is_featured,notnull,default:false" json:"isFeatured"`
	IsPublished bool       `bun:"is_published,notnull,default:false" json:"isPublished"`
	CreatedAt   time.Time  `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull" json:"updatedAt"`
}

func Models() []any {
	return []any{(*Scholarship)(nil)}
}

func Handlers() crud.ModelHandlers[*Scholarship] {
	return crud.ModelHandlers[*Scholarship]{
		NewRecord:          func() *Scholarship { return &Scholarship{} },
		GetID:              func(s *Scholarship) int64 { return s.ID },
		SetID:              func(s *Scholarship, id int64) { s.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(s *Scholarship) string { return s.Slug },
		SetIdentifierValue: func(s *Scholarship, slug string) { s.Slug = slug },
		Stamp: func(s *Scholarship, now time.Time, created bool) {
			if created {
				s.CreatedAt = now
			}
			s.UpdatedAt = now
		},
		Clone: func(s *Scholarship) *Scholarship {
			out := *s
			out.Description = cloneString(s.Description)
			out.Content = cloneString(s.Content)
			out.Amount = cloneString(s.Amount)
			out.Link = cloneString(s.Link)
			out.CategoryID = cloneInt64(s.CategoryID)
			out.LevelID = cloneInt64(s.LevelID)
			out.CountryID = cloneInt64(s.CountryID)
			if s.Deadline != nil {
				d := *s.Deadline
				out.Deadline = &d
			}
			return &out
		},
	}
}

func validate(s *Scholarship) error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&s.Slug, validation.Required, validation.Length(1, 512)),
		validation.Field(&s.Link, is.URL),
	)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
