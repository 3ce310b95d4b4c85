// Package catalog holds the taxonomy entities scholarships are filed
// under: categories, study levels, and countries.
package catalog

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
)

type Category struct {
	bun.BaseModel `bun:"table:categories,alias:cat"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Description *string   `bun:"description" json:"description,omitempty"`
	IsActive    bool      `bun:"is_active,notnull,default:true" json:"isActive"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

type Level struct {
	bun.BaseModel `bun:"table:levels,alias:lvl"`

	ID          int64     `bun:"id,pk,autoincrement" json:"id"`
	Name        string    `bun:"name,notnull" json:"name"`
	Slug        string    `bun:"slug,notnull,unique" json:"slug"`
	Description *string   `bun:"description" json:"description,omitempty"`
	SortOrder   int       `bun:"sort_order,notnull,default:0" json:"sortOrder"`
	IsActive    bool      `bun:"is_active,notnull,default:true" json:"isActive"`
	CreatedAt   time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt   time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

type Country struct {
	bun.BaseModel `bun:"table:countries,alias:cty"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Slug      string    `bun:"slug,notnull,unique" json:"slug"`
	FlagURL   *string   `bun:"flag_url" json:"flagUrl,omitempty"`
	IsActive  bool      `bun:"is_active,notnull,default:true" json:"isActive"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// Models lists the package's tables in creation order.
func Models() []any {
	return []any{(*Category)(nil), (*Level)(nil), (*Country)(nil)}
}

func CategoryHandlers() crud.ModelHandlers[*Category] {
	return crud.ModelHandlers[*Category]{
		NewRecord:          func() *Category { return &Category{} },
		GetID:              func(c *Category) int64 { return c.ID },
		SetID:              func(c *Category, id int64) { c.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(c *Category) string { return c.Slug },
		SetIdentifierValue: func(c *Category, slug string) { c.Slug = slug },
		Stamp: func(c *Category, now time.Time, created bool) {
			if created {
				c.CreatedAt = now
			}
			c.UpdatedAt = now
		},
		Clone: func(c *Category) *Category {
			out := *c
			out.Description = cloneString(c.Description)
			return &out
		},
	}
}

func LevelHandlers() crud.ModelHandlers[*Level] {
	return crud.ModelHandlers[*Level]{
		NewRecord:          func() *Level { return &Level{} },
		GetID:              func(l *Level) int64 { return l.ID },
		SetID:              func(l *Level, id int64) { l.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(l *Level) string { return l.Slug },
		SetIdentifierValue: func(l *Level, slug string) { l.Slug = slug },
		Stamp: func(l *Level, now time.Time, created bool) {
			if created {
				l.CreatedAt = now
			}
			l.UpdatedAt = now
		},
		Clone: func(l *Level) *Level {
			out := *l
			out.Description = cloneString(l.Description)
			return &out
		},
	}
}

func CountryHandlers() crud.ModelHandlers[*Country] {
	return crud.ModelHandlers[*Country]{
		NewRecord:          func() *Country { return &Country{} },
		GetID:              func(c *Country) int64 { return c.ID },
		SetID:              func(c *Country, id int64) { c.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(c *Country) string { return c.Slug },
		SetIdentifierValue: func(c *Country, slug string) { c.Slug = slug },
		Stamp: func(c *Country, now time.Time, created bool) {
			if created {
				c.CreatedAt = now
			}
			c.UpdatedAt = now
		},
		Clone: func(c *Country) *Country {
			out := *c
			out.FlagURL = cloneString(c.FlagURL)
			return &out
		},
	}
}

func validateCategory(c *Category) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.Slug, validation.Required, validation.Length(1, 255)),
	)
}

func validateLevel(l *Level) error {
	return validation.ValidateStruct(l,
		validation.Field(&l.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&l.Slug, validation.Required, validation.Length(1, 255)),
		validation.Field(&l.SortOrder, validation.Min(0)),
	)
}

func validateCountry(c *Country) error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&c.Slug, validation.Required, validation.Length(1, 255)),
	)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
