package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/shubh-37/content-commander/internal/agents"
	"github.com/shubh-37/content-commander/internal/models"
	"github.com/shubh-37/content-commander/internal/session"
)

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleNextStep(w http.ResponseWriter, r *http.Request) {
	s.session.Next()
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleSetStep(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Step string `json:"step"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	step, ok := models.ParseStep(req.Step)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown step")
		return
	}
	if err := s.session.GoTo(step); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleGenerateIdeas(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	ideas, err := s.generator.GenerateIdeas(r.Context(), req.Topic)
	if errors.Is(err, agents.ErrEmptyInput) {
		writeJSON(w, http.StatusOK, s.session.Snapshot())
		return
	}
	if err != nil {
		log.Printf("❌ Error generating ideas: %v", err)
		writeError(w, http.StatusBadGateway, msgIdeasFailed)
		return
	}

	s.session.SetIdeas(r.Context(), ideas)
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleSelectIdea(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := s.session.SelectIdea(r.Context(), id); err != nil {
		if errors.Is(err, session.ErrIdeaNotFound) {
			writeError(w, http.StatusNotFound, "idea not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleGenerateScript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Duration string `json:"duration"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	content := s.session.Content()
	if content.SelectedIdea == nil {
		writeJSON(w, http.StatusOK, s.session.Snapshot())
		return
	}

	script, err := s.generator.GenerateScript(r.Context(), content.SelectedIdea.Hook, req.Duration)
	switch {
	case errors.Is(err, agents.ErrEmptyInput):
		writeJSON(w, http.StatusOK, s.session.Snapshot())
		return
	case errors.Is(err, agents.ErrInvalidDuration):
		writeError(w, http.StatusBadRequest, "duration must be 15, 30 or 60 seconds")
		return
	case err != nil:
		log.Printf("❌ Error generating script: %v", err)
		writeError(w, http.StatusBadGateway, msgScriptFailed)
		return
	}

	s.session.SetScript(r.Context(), script)
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleEditScript(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Script string `json:"script"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	s.session.SetScript(r.Context(), req.Script)
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleGenerateMetadata(w http.ResponseWriter, r *http.Request) {
	script := s.session.Content().Script

	caption, hashtags, err := s.generator.GenerateMetadata(r.Context(), script)
	if errors.Is(err, agents.ErrEmptyInput) {
		writeJSON(w, http.StatusOK, s.session.Snapshot())
		return
	}
	if err != nil {
		log.Printf("❌ Error generating metadata: %v", err)
		writeError(w, http.StatusBadGateway, msgMetadataFailed)
		return
	}

	s.session.SetMetadata(r.Context(), caption, hashtags)
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleEditMetadata(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Caption  *string  `json:"caption"`
		Hashtags []string `json:"hashtags"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Caption != nil {
		s.session.SetCaption(r.Context(), *req.Caption)
	}
	if req.Hashtags != nil {
		s.session.SetHashtags(r.Context(), req.Hashtags)
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleGenerateThumbnail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		if idea := s.session.Content().SelectedIdea; idea != nil {
			prompt = idea.Hook
		}
	}

	url, err := s.generator.GenerateThumbnail(r.Context(), prompt)
	switch {
	case errors.Is(err, agents.ErrEmptyInput):
		writeJSON(w, http.StatusOK, s.session.Snapshot())
		return
	case errors.Is(err, agents.ErrQuotaExceeded):
		writeError(w, http.StatusTooManyRequests, msgQuotaExceeded)
		return
	case errors.Is(err, agents.ErrInvalidPrompt):
		writeError(w, http.StatusBadRequest, msgInvalidPrompt)
		return
	case err != nil:
		log.Printf("❌ Error generating thumbnail: %v", err)
		writeError(w, http.StatusBadGateway, msgThumbnailFailed)
		return
	}

	// no image means nothing changes
	if url != "" {
		s.session.SetThumbnail(r.Context(), url)
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

func (s *Server) handleSetThumbnail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ThumbnailURL string `json:"thumbnailUrl"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	s.session.SetThumbnail(r.Context(), req.ThumbnailURL)
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}
