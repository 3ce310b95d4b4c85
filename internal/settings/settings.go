// Package settings manages per-path SEO metadata and keyed site settings.
package settings

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
)

type SeoSetting struct {
	bun.BaseModel `bun:"table:seo_settings,alias:seo"`

	ID              int64     `bun:"id,pk,autoincrement" json:"id"`
	PagePath        string    `bun:"page_path,notnull,unique" json:"pagePath"`
	MetaTitle       *string   `bun:"meta_title" json:"metaTitle,omitempty"`
	MetaDescription *string   `bun:"meta_description" json:"metaDescription,omitempty"`
	MetaKeywords    *string   `bun:"meta_keywords" json:"metaKeywords,omitempty"`
	OGImage         *string   `bun:"og_image" json:"ogImage,omitempty"`
	CreatedAt       time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt       time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

// SiteSetting is one keyed JSON document, e.g. social links or contact info.
type SiteSetting struct {
	bun.BaseModel `bun:"table:site_settings,alias:set"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	Key       string    `bun:"key,notnull,unique" json:"key"`
	Value     string    `bun:"value,notnull" json:"value"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updatedAt"`
}

func Models() []any {
	return []any{(*SeoSetting)(nil), (*SiteSetting)(nil)}
}

func SeoHandlers() crud.ModelHandlers[*SeoSetting] {
	return crud.ModelHandlers[*SeoSetting]{
		NewRecord:          func() *SeoSetting { return &SeoSetting{} },
		GetID:              func(s *SeoSetting) int64 { return s.ID },
		SetID:              func(s *SeoSetting, id int64) { s.ID = id },
		GetIdentifier:      func() string { return "page_path" },
		GetIdentifierValue: func(s *SeoSetting) string { return s.PagePath },
		SetIdentifierValue: func(s *SeoSetting, path string) { s.PagePath = path },
		Stamp: func(s *SeoSetting, now time.Time, created bool) {
			if created {
				s.CreatedAt = now
			}
			s.UpdatedAt = now
		},
		Clone: func(s *SeoSetting) *SeoSetting {
			out := *s
			out.MetaTitle = cloneString(s.MetaTitle)
			out.MetaDescription = cloneString(s.MetaDescription)
			out.MetaKeywords = cloneString(s.MetaKeywords)
			out.OGImage = cloneString(s.OGImage)
			return &out
		},
	}
}

func SiteHandlers() crud.ModelHandlers[*SiteSetting] {
	return crud.ModelHandlers[*SiteSetting]{
		NewRecord:          func() *SiteSetting { return &SiteSetting{} },
		GetID:              func(s *SiteSetting) int64 { return s.ID },
		SetID:              func(s *SiteSetting, id int64) { s.ID = id },
		GetIdentifier:      func() string { return "key" },
		GetIdentifierValue: func(s *SiteSetting) string { return s.Key },
		SetIdentifierValue: func(s *SiteSetting, key string) { s.Key = key },
		Stamp: func(s *SiteSetting, now time.Time, created bool) {
			if created {
				s.CreatedAt = now
			}
			s.UpdatedAt = now
		},
		Clone: func(s *SiteSetting) *SiteSetting {
			out := *s
			return &out
		},
	}
}

func validateSeo(s *SeoSetting) error {
	return validation.ValidateStruct(s,
		validation.Field(&s.PagePath, validation.Required, validation.Length(1, 512),
			validation.Match(pagePathPattern)),
	)
}

func validateSite(s *SiteSetting) error {
	return validation.ValidateStruct(s,
		validation.Field(&s.Key, validation.Required, validation.Length(1, 255)),
		validation.Field(&s.Value, validation.Required),
	)
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	out := *s
	return &out
}
