// Package partners manages partner organizations shown on the site.
package partners

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

type Partner struct {
	bun.BaseModel `bun:"table:partners,alias:ptn"`

	ID         int64     `bun:"id,pk,autoincrement" json:"id"`
	Name       string    `bun:"name,notnull" json:"name"`
	LogoURL    *string   `bun:"logo_url" json:"logoUrl,omitempty"`
	WebsiteURL *string   `bun:"website_url" json:"websiteUrl,omitempty"`
	IsActive   bool      `bun:"is_active,notnull,default:true" json:"isActive"`
	CreatedAt  time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt  time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func Models() []any {
	return []any{(*Partner)(nil)}
}

func Handlers() crud.ModelHandlers[*Partner] {
	return crud.ModelHandlers[*Partner]{
		NewRecord: func() *Partner { return &Partner{} },
		GetID:     func(p *Partner) int64 { return p.ID },
		SetID:     func(p *Partner, id int64) { p.ID = id },
		Stamp: func(p *Partner, now time.Time, created bool) {
			if created {
				p.CreatedAt = now
			}
			p.UpdatedAt = now
		},
		Clone: func(p *Partner) *Partner {
			out := *p
			if p.LogoURL != nil {
				v := *p.LogoURL
				out.LogoURL = &v
			}
			if p.WebsiteURL != nil {
				v := *p.WebsiteURL
				out.WebsiteURL = &v
			}
			return &out
		},
	}
}

func validate(p *Partner) error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.WebsiteURL, is.URL),
	)
}

type Service = crud.Service[*Partner]

func NewService(repo crud.Repository[*Partner], log logging.Logger) *Service {
	return crud.NewService(repo, "partner", Handlers(),
		crud.WithLogger[*Partner](log),
		crud.WithValidator(validate),
	)
}

func NewBunService(db *bun.DB, log logging.Logger) *Service {
	return NewService(crud.NewBunRepository(db, "partner", Handlers()), log)
}
