package server

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
)

// Messages shown to the creator when a step fails
const (
	msgIdeasFailed         = "Failed to generate ideas. Please check your API key."
	msgScriptFailed        = "Error generating script"
	msgMetadataFailed      = "Error generating metadata"
	msgThumbnailFailed     = "Failed to generate thumbnail"
	msgInvalidPrompt       = "Invalid request. Please try a different prompt."
	msgQuotaExceeded       = "API Quota exceeded. Please try again later."
	msgInvalidToken        = "Invalid Access Token or API Error. Please check your credentials."
	msgExchangeFailed      = "Failed to exchange authorization code."
	msgUploadInProgress    = "An upload is already in progress."
	msgOAuthNotConfigured  = "TikTok login is not configured."
	msgDigestNotConfigured = "Slack notifications are not configured."
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("❌ Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// decode reads a JSON body; an empty body leaves dst untouched
func decode(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
