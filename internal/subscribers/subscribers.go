// Package subscribers manages the newsletter subscriber list.
package subscribers

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

type Subscriber struct {
	bun.BaseModel `bun:"table:subscribers,alias:sub"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	Name         *string   `bun:"name" json:"name,omitempty"`
	SubscribedAt time.Time `bun:"subscribed_at,notnull" json:"subscribedAt"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func Models() []any {
	return []any{(*Subscriber)(nil)}
}

func Handlers() crud.ModelHandlers[*Subscriber] {
	return crud.ModelHandlers[*Subscriber]{
		NewRecord:          func() *Subscriber { return &Subscriber{} },
		GetID:              func(s *Subscriber) int64 { return s.ID },
		SetID:              func(s *Subscriber, id int64) { s.ID = id },
		GetIdentifier:      func() string { return "email" },
		GetIdentifierValue: func(s *Subscriber) string { return s.Email },
		SetIdentifierValue: func(s *Subscriber, email string) { s.Email = email },
		Stamp: func(s *Subscriber, now time.Time, created bool) {
			if created {
				s.CreatedAt = now
				if s.SubscribedAt.IsZero() {
					s.SubscribedAt = now
				}
			}
			s.UpdatedAt = now
		},
		Clone: func(s *Subscriber) *Subscriber {
			out := *s
			if s.Name != nil {
				v := *s.Name
				out.Name = &v
			}
			return &out
		},
	}
}

func validate(s *Subscriber) error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Email, validation.Required, crud.EmailRule),
	)
}

type Service = crud.Service[*Subscriber]

func NewService(repo crud.Repository[*Subscriber], log logging.Logger) *Service {
	return crud.NewService(repo, "subscriber", Handlers(),
		crud.WithLogger[*Subscriber](log),
		crud.WithValidator(func(s *Subscriber) error {
			s.Email = strings.ToLower(strings.TrimSpace(s.Email))
			return validate(s)
		}),
	)
}

func NewBunService(db *bun.DB, log logging.Logger) *Service {
	return NewService(crud.NewBunRepository(db, "subscriber", Handlers()), log)
}
