// Package stories manages success stories from past scholarship winners.
package stories

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

type SuccessStory struct {
	bun.BaseModel `bun:"table:success_stories,alias:ss"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	Name            string    `bun:"name,notnull" json:"name"`
	Title           string    `bun:"title,notnull" json:"title"`
	Slug            string    `bun:"slug,notnull,unique" json:"slug"`
	Content         string    `bun:"content,notnull" json:"content"`
	ImageURL        *string   `bun:"image_url" json:"imageUrl,omitempty"`
	ScholarshipName *string   `bun:"scholarship_name" json:"scholarshipName,omitempty"`
	IsPublished     bool      `bun:"is_published,notnull,default:false" json:"isPublished"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt       time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func Models() []any {
	return []any{(*SuccessStory)(nil)}
}

func Handlers() crud.ModelHandlers[*SuccessStory] {
	return crud.ModelHandlers[*SuccessStory]{
		NewRecord:          func() *SuccessStory { return &SuccessStory{} },
		GetID:              func(s *SuccessStory) int64 { return s.ID },
		SetID:              func(s *SuccessStory, id int64) { s.ID = id },
		GetIdentifier:      func() string { return "slug" },
		GetIdentifierValue: func(s *SuccessStory) string { return s.Slug },
		SetIdentifierValue: func(s *SuccessStory, slug string) { s.Slug = slug },
		Stamp: func(s *SuccessStory, now time.Time, created bool) {
			if created {
				s.CreatedAt = now
			}
			s.UpdatedAt = now
		},
		Clone: func(s *SuccessStory) *SuccessStory {
			out := *s
			if s.ImageURL != nil {
				v := *s.ImageURL
				out.ImageURL = &v
			}
			if s.ScholarshipName != nil {
				v := *s.ScholarshipName
				out.ScholarshipName = &v
			}
			return &out
		},
	}
}

func validate(s *SuccessStory) error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&s.Title, validation.Required, validation.Length(1, 512)),
		validation.Field(&s.Slug, validation.Required, validation.Length(1, 512)),
		validation.Field(&s.Content, validation.Required),
	)
}

type Service = crud.Service[*SuccessStory]

func NewService(repo crud.Repository[*SuccessStory], log logging.Logger) *Service {
	return crud.NewService(repo, "success story", Handlers(),
		crud.WithLogger[*SuccessStory](log),
		crud.WithValidator(validate),
	)
}

func NewBunService(db *bun.DB, log logging.Logger) *Service {
	return NewService(crud.NewBunRepository(db, "success story", Handlers()), log)
}
