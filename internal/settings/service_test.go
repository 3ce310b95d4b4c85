package settings_test

import (
	"context"
	"testing"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
	"github.com/fullsco/fullsco/internal/settings"
)

const socialSchema = `{
	"type": "object",
	"properties": {
		"facebook": {"type": "string"},
		"twitter": {"type": "string"}
	},
	"additionalProperties": false
}`

func newService(t *testing.T, opts ...settings.Option) *settings.Service {
	t.Helper()
	svc, err := settings.NewService(
		crud.NewMemoryRepository("seo setting", settings.SeoHandlers()),
		crud.NewMemoryRepository("site setting", settings.SiteHandlers()),
		logging.NoOp(),
		opts...,
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestSeoPathUnique(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	title := "Scholarships"
	if _, err := svc.Seo.Create(ctx, &settings.SeoSetting{PagePath: "/scholarships", MetaTitle: &title}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Seo.Create(ctx, &settings.SeoSetting{PagePath: "/scholarships"})
	if !crud.IsConflict(err) {
		t.Fatalf("err = %v, want conflict", err)
	}

	got, err := svc.Seo.GetByIdentifier(ctx, "/scholarships")
	if err != nil {
		t.Fatalf("get by path: %v", err)
	}
	if got.MetaTitle == nil || *got.MetaTitle != "Scholarships" {
		t.Fatalf("meta title = %v", got.MetaTitle)
	}
}

func TestSeoPathShape(t *testing.T) {
	svc := newService(t)
	_, err := svc.Seo.Create(context.Background(), &settings.SeoSetting{PagePath: "no-leading-slash"})
	if !crud.IsValidation(err) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestSiteSettingSchemaValidation(t *testing.T) {
	svc := newService(t, settings.WithSchema("social_links", socialSchema))
	ctx := context.Background()

	if _, err := svc.Site.Create(ctx, &settings.SiteSetting{
		Key:   "social_links",
		Value: `{"facebook": "https://facebook.com/fullsco"}`,
	}); err != nil {
		t.Fatalf("valid value rejected: %v", err)
	}

	_, err := svc.Site.Create(ctx, &settings.SiteSetting{
		Key:   "social_links2",
		Value: `not json`,
	})
	if !crud.IsValidation(err) {
		t.Fatalf("invalid json err = %v, want validation", err)
	}

	_, err = svc.Site.Update(ctx, 1, func(s *settings.SiteSetting) error {
		s.Value = `{"unexpected": true}`
		return nil
	})
	if !crud.IsValidation(err) {
		t.Fatalf("schema-violating value err = %v, want validation", err)
	}
}

func TestSiteSettingGetDecodes(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.Site.Create(ctx, &settings.SiteSetting{
		Key:   "contact",
		Value: `{"email": "info@fullsco.local"}`,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var contact struct {
		Email string `json:"email"`
	}
	if err := svc.Get(ctx, "contact", &contact); err != nil {
		t.Fatalf("get: %v", err)
	}
	if contact.Email != "info@fullsco.local" {
		t.Fatalf("email = %q", contact.Email)
	}
}
