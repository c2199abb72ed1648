package handlers

import (
	"net/http"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/provider"
)

// ProvidersHandler exposes backend availability: per configured provider,
// whether its credential is present. No side effects.
type ProvidersHandler struct {
	registry *provider.Registry
}

func NewProvidersHandler(registry *provider.Registry) *ProvidersHandler {
	return &ProvidersHandler{registry: registry}
}

func (h *ProvidersHandler) GetProviders(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, map[string]interface{}{
		"providers": h.registry.Availability(),
		"default":   h.registry.Default(),
	}, http.StatusOK)
}
