// Package users manages admin accounts, authentication, and sessions.
package users

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
)

const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID           int64     `bun:"id,pk,autoincrement" json:"id"`
	Username     string    `bun:"username,notnull,unique" json:"username"`
	Email        string    `bun:"email,notnull,unique" json:"email"`
	PasswordHash string    `bun:"password_hash,notnull" json:"-"`
	Role         string    `bun:"role,notnull,default:'editor'" json:"role"`
	DisplayName  *string   `bun:"display_name" json:"displayName,omitempty"`
	IsActive     bool      `bun:"is_active,notnull,default:true" json:"isActive"`
	CreatedAt    time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt    time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// Session is an opaque server-side login token.
type Session struct {
	bun.BaseModel `bun:"table:sessions,alias:ses"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Token     string    `bun:"token,notnull,unique" json:"-"`
	UserID    int64     `bun:"user_id,notnull" json:"userId"`
	ExpiresAt time.Time `bun:"expires_at,notnull" json:"expiresAt"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func Models() []any {
	return []any{(*User)(nil), (*Session)(nil)}
}

func UserHandlers() crud.ModelHandlers[*User] {
	return crud.ModelHandlers[*User]{
		NewRecord:          func() *User { return &User{} },
		GetID:              func(u *User) int64 { return u.ID },
		SetID:              func(u *User, id int64) { u.ID = id },
		GetIdentifier:      func() string { return "username" },
		GetIdentifierValue: func(u *User) string { return u.Username },
		SetIdentifierValue: func(u *User, username string) { u.Username = username },
		Stamp: func(u *User, now time.Time, created bool) {
			if created {
				u.CreatedAt = now
			}
			u.UpdatedAt = now
		},
		Clone: func(u *User) *User {
			out := *u
			if u.DisplayName != nil {
				v := *u.DisplayName
				out.DisplayName = &v
			}
			return &out
		},
	}
}

func SessionHandlers() crud.ModelHandlers[*Session] {
	return crud.ModelHandlers[*Session]{
		NewRecord:          func() *Session { return &Session{} },
		GetID:              func(s *Session) int64 { return s.ID },
		SetID:              func(s *Session, id int64) { s.ID = id },
		GetIdentifier:      func() string { return "token" },
		GetIdentifierValue: func(s *Session) string { return s.Token },
		SetIdentifierValue: func(s *Session, token string) { s.Token = token },
		Stamp: func(s *Session, now time.Time, created bool) {
			if created {
				s.CreatedAt = now
			}
			s.UpdatedAt = now
		},
		Clone: func(s *Session) *Session {
			out := *s
			return &out
		},
	}
}

func validateUser(u *User) error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Username, validation.Required, validation.Length(3, 64)),
		validation.Field(&u.Email, validation.Required, crud.EmailRule),
		validation.Field(&u.PasswordHash, validation.Required),
		validation.Field(&u.Role, validation.Required, validation.In(RoleAdmin, RoleEditor)),
	)
}
