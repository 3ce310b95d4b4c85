package httpapi

import (
	"net/http"
	"strings"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/settings"
)

type seoPayload struct {
	PagePath        *string `json:"pagePath"`
	MetaTitle       *string `json:"metaTitle"`
	MetaDescription *string `json:"metaDescription"`
	MetaKeywords    *string `json:"metaKeywords"`
	OGImage         *string `json:"ogImage"`
}

func (p seoPayload) apply(s *settings.SeoSetting) {
	if p.PagePath != nil {
		s.PagePath = *p.PagePath
	}
	if p.MetaTitle != nil {
		s.MetaTitle = p.MetaTitle
	}
	if p.MetaDescription != nil {
		s.MetaDescription = p.MetaDescription
	}
	if p.MetaKeywords != nil {
		s.MetaKeywords = p.MetaKeywords
	}
	if p.OGImage != nil {
		s.OGImage = p.OGImage
	}
}

type sitePayload struct {
	Key   *string `json:"key"`
	Value *string `json:"value"`
}

func (p sitePayload) apply(s *settings.SiteSetting) {
	if p.Key != nil {
		s.Key = *p.Key
	}
	if p.Value != nil {
		s.Value = *p.Value
	}
}

func (api *API) registerSettingRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/seo-settings", api.handleSeoList)
	mux.HandleFunc("GET /api/seo-settings/{id}", handleGet(api.settings.Seo))
	mux.HandleFunc("POST /api/seo-settings", api.requireAdmin(handleCreate(api.settings.Seo, decodeSeo)))
	mux.HandleFunc("PUT /api/seo-settings/{id}", api.requireAdmin(handleUpdate(api.settings.Seo, patchSeo)))
	mux.HandleFunc("DELETE /api/seo-settings/{id}", api.requireAdmin(handleDelete(api.settings.Seo)))

	mux.HandleFunc("GET /api/site-settings", handleList(api.settings.Site, nil))
	mux.HandleFunc("GET /api/site-settings/{key}", handleByIdentifier(api.settings.Site, "key"))
	mux.HandleFunc("POST /api/site-settings", api.requireAdmin(handleCreate(api.settings.Site, decodeSite)))
	mux.HandleFunc("PUT /api/site-settings/{id}", api.requireAdmin(handleUpdate(api.settings.Site, patchSite)))
	mux.HandleFunc("DELETE /api/site-settings/{id}", api.requireAdmin(handleDelete(api.settings.Site)))
}

// handleSeoList lists all SEO settings, or resolves a single page path
// when ?path= is present.
func (api *API) handleSeoList(w http.ResponseWriter, r *http.Request) {
	if path := strings.TrimSpace(r.URL.Query().Get("path")); path != "" {
		setting, err := api.settings.Seo.GetByIdentifier(r.Context(), path)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, setting)
		return
	}
	records, err := api.settings.Seo.List(r.Context(), crud.ListQuery{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func decodeSeo(r *http.Request) (*settings.SeoSetting, error) {
	var payload seoPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	setting := &settings.SeoSetting{}
	payload.apply(setting)
	return setting, nil
}

func patchSeo(r *http.Request) (func(*settings.SeoSetting) error, error) {
	var payload seoPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(s *settings.SeoSetting) error {
		payload.apply(s)
		return nil
	}, nil
}

func decodeSite(r *http.Request) (*settings.SiteSetting, error) {
	var payload sitePayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	setting := &settings.SiteSetting{}
	payload.apply(setting)
	return setting, nil
}

func patchSite(r *http.Request) (func(*settings.SiteSetting) error, error) {
	var payload sitePayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(s *settings.SiteSetting) error {
		payload.apply(s)
		return nil
	}, nil
}
