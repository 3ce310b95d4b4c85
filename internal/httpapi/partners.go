package httpapi

import (
	"net/http"

	"github.com/fullsco/fullsco/internal/partners"
)

type partnerPayload struct {
	Name       *string `json:"name"`
	LogoURL    *string `json:"logoUrl"`
	WebsiteURL *string `json:"websiteUrl"`
	IsActive   *bool   `json:"isActive"`
}

func (p partnerPayload) apply(partner *partners.Partner) {
	if p.Name != nil {
		partner.Name = *p.Name
	}
	if p.LogoURL != nil {
		partner.LogoURL = p.LogoURL
	}
	if p.WebsiteURL != nil {
		partner.WebsiteURL = p.WebsiteURL
	}
	if p.IsActive != nil {
		partner.IsActive = *p.IsActive
	}
}

func (api *API) registerPartnerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/partners", handleList(api.partners, activeListQuery))
	mux.HandleFunc("GET /api/partners/{id}", handleGet(api.partners))
	mux.HandleFunc("POST /api/partners", api.requireAdmin(handleCreate(api.partners, decodePartner)))
	mux.HandleFunc("PUT /api/partners/{id}", api.requireAdmin(handleUpdate(api.partners, patchPartner)))
	mux.HandleFunc("DELETE /api/partners/{id}", api.requireAdmin(handleDelete(api.partners)))
}

func decodePartner(r *http.Request) (*partners.Partner, error) {
	var payload partnerPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	partner := &partners.Partner{IsActive: true}
	payload.apply(partner)
	return partner, nil
}

func patchPartner(r *http.Request) (func(*partners.Partner) error, error) {
	var payload partnerPayload
	if err := decodeJSON(r, &payload); err != nil {
		return nil, err
	}
	return func(p *partners.Partner) error {
		payload.apply(p)
		return nil
	}, nil
}
