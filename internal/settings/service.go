package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/uptrace/bun"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

var pagePathPattern = regexp.MustCompile(`^/[a-zA-Z0-9\-._~/]*$`)

// Service manages both setting kinds. Site setting values are JSON
// documents; keys with a registered schema are validated against it on
// every write.
type Service struct {
	Seo     *crud.Service[*SeoSetting]
	Site    *crud.Service[*SiteSetting]
	schemas map[string]*jsonschema.Schema
	log     logging.Logger
}

type Option func(*Service) error

// WithSchema registers a JSON schema for one site-setting key.
func WithSchema(key, schemaJSON string) Option {
	return func(s *Service) error {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(key+".json", strings.NewReader(schemaJSON)); err != nil {
			return fmt.Errorf("settings: schema for %q: %w", key, err)
		}
		schema, err := compiler.Compile(key + ".json")
		if err != nil {
			return fmt.Errorf("settings: schema for %q: %w", key, err)
		}
		s.schemas[key] = schema
		return nil
	}
}

func NewService(seoRepo crud.Repository[*SeoSetting], siteRepo crud.Repository[*SiteSetting], log logging.Logger, opts ...Option) (*Service, error) {
	s := &Service{
		Seo: crud.NewService(seoRepo, "seo setting", SeoHandlers(),
			crud.WithLogger[*SeoSetting](log),
			crud.WithValidator(validateSeo),
		),
		schemas: make(map[string]*jsonschema.Schema),
		log:     log,
	}
	s.Site = crud.NewService(siteRepo, "site setting", SiteHandlers(),
		crud.WithLogger[*SiteSetting](log),
		crud.WithValidator(s.validateSiteSetting),
	)
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func NewBunService(db *bun.DB, log logging.Logger, opts ...Option) (*Service, error) {
	return NewService(
		crud.NewBunRepository(db, "seo setting", SeoHandlers()),
		crud.NewBunRepository(db, "site setting", SiteHandlers()),
		log, opts...)
}

func (s *Service) validateSiteSetting(setting *SiteSetting) error {
	if err := validateSite(setting); err != nil {
		return err
	}
	var doc any
	if err := json.Unmarshal([]byte(setting.Value), &doc); err != nil {
		return fmt.Errorf("settings: value for %q is not valid JSON: %w", setting.Key, err)
	}
	if schema, ok := s.schemas[setting.Key]; ok {
		if err := schema.Validate(doc); err != nil {
			return fmt.Errorf("settings: value for %q rejected by schema: %w", setting.Key, err)
		}
	}
	return nil
}

// Get returns the setting value for key, decoded into out.
func (s *Service) Get(ctx context.Context, key string, out any) error {
	setting, err := s.Site.GetByIdentifier(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(setting.Value), out)
}
