package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/shubh-37/content-commander/internal/agents"
	"github.com/shubh-37/content-commander/internal/session"
)

const maxUploadMemory = 32 << 20

func (s *Server) handleUploadConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TargetAccountID string  `json:"targetAccountId"`
		ScheduledTime   *string `json:"scheduledTime"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if err := s.session.UpdateUploadConfig(r.Context(), req.TargetAccountID, req.ScheduledTime); err != nil {
		log.Printf("❌ Error saving upload config: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save upload config")
		return
	}
	writeJSON(w, http.StatusOK, s.session.Snapshot())
}

// handleUpload stages the video, claims the upload slot and runs the job in the background.
// Clients poll /upload/status for progress.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		writeError(w, http.StatusBadRequest, "invalid upload form")
		return
	}

	schedule, _ := strconv.ParseBool(r.FormValue("schedule"))
	req := agents.UploadRequest{
		TargetAccountID: r.FormValue("targetAccountId"),
		Schedule:        schedule,
		ScheduledTime:   r.FormValue("scheduledTime"),
	}

	file, err := s.stageVideo(r)
	if err != nil {
		log.Printf("❌ Error staging upload: %v", err)
		writeError(w, http.StatusInternalServerError, "unable to save file")
		return
	}
	req.File = file

	job, err := s.scheduler.Prepare(r.Context(), req)
	if err != nil {
		if file != nil {
			os.Remove(file.Path)
		}
		switch {
		case errors.Is(err, agents.ErrNoFile), errors.Is(err, agents.ErrScheduleTimeRequired):
			writeJSON(w, http.StatusOK, s.session.Snapshot())
		case errors.Is(err, session.ErrUploadInProgress):
			writeError(w, http.StatusConflict, msgUploadInProgress)
		default:
			log.Printf("❌ Error preparing upload: %v", err)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	go func() {
		defer os.Remove(file.Path)
		job.Run(context.Background())
	}()

	writeJSON(w, http.StatusAccepted, s.session.Snapshot())
}

// stageVideo copies the multipart "video" field to the upload dir. A missing field yields nil.
func (s *Server) stageVideo(r *http.Request) (*agents.VideoFile, error) {
	src, header, err := r.FormFile("video")
	if err != nil {
		return nil, nil
	}
	defer src.Close()

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	path := filepath.Join(s.uploadDir, uuid.New().String()+filepath.Ext(header.Filename))
	dst, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return nil, err
	}

	return &agents.VideoFile{Path: path, Name: header.Filename, Size: size}, nil
}

func (s *Server) handleUploadStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.UploadStatus())
}

func (s *Server) handleScheduledPosts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.ScheduledPosts())
}

func (s *Server) handleScheduleDigest(w http.ResponseWriter, r *http.Request) {
	if s.digester == nil {
		writeError(w, http.StatusServiceUnavailable, msgDigestNotConfigured)
		return
	}

	posts := s.session.ScheduledPosts()
	if err := s.digester.SendScheduleDigest(r.Context(), posts); err != nil {
		log.Printf("❌ Error sending schedule digest: %v", err)
		writeError(w, http.StatusBadGateway, "failed to send schedule digest")
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"sent": len(posts)})
}
