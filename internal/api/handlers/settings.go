package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/CodeWithDevelopers/yt-summarizer-II/internal/db"
)

// settingsKeys defines which keys are allowed and their display metadata
var settingsKeys = []SettingDef{
	{Key: "gemini_model", Label: "Gemini Model", Group: "providers", Placeholder: "gemini-2.0-flash"},
	{Key: "openai_model", Label: "OpenAI Model", Group: "providers", Placeholder: "gpt-4o-mini"},
	{Key: "claude_model", Label: "Claude Model", Group: "providers", Placeholder: "claude-3-5-haiku-latest"},
}

type SettingDef struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Group       string `json:"group"`
	Placeholder string `json:"placeholder"`
}

type SettingsHandler struct {
	database *db.Database
}

func NewSettingsHandler(database *db.Database) *SettingsHandler {
	return &SettingsHandler{database: database}
}

// GetSettings returns all known settings with their current values.
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	all, err := h.database.GetAllSettings()
	if err != nil {
		jsonError(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	type SettingResponse struct {
		SettingDef
		Value string `json:"value"`
	}

	result := make([]SettingResponse, 0, len(settingsKeys))
	for _, def := range settingsKeys {
		result = append(result, SettingResponse{SettingDef: def, Value: all[def.Key]})
	}

	jsonResponse(w, result, http.StatusOK)
}

// UpdateSettings saves settings from the request body. Unknown keys are
// ignored.
func (h *SettingsHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var updates map[string]string
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	allowed := make(map[string]bool)
	for _, def := range settingsKeys {
		allowed[def.Key] = true
	}

	for key, value := range updates {
		if !allowed[key] {
			continue
		}
		if err := h.database.SetSetting(key, value); err != nil {
			jsonError(w, "failed to save setting: "+key, http.StatusInternalServerError)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}
