package server

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/shubh-37/content-commander/internal/session"
)

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.session.Accounts())
}

func (s *Server) handleLinkAccount(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Method string `json:"method"`
		Handle string `json:"handle"`
		Token  string `json:"token"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	var method session.LinkMethod
	switch strings.ToLower(req.Method) {
	case "simulated", "handle", "":
		method = session.Simulated{Handle: req.Handle}
	case "token", "api":
		method = session.TokenBacked{Token: req.Token}
	default:
		writeError(w, http.StatusBadRequest, "method must be simulated or token")
		return
	}

	s.link(w, r, method)
}

func (s *Server) handleAuthExchange(w http.ResponseWriter, r *http.Request) {
	if !s.oauth.enabled() || s.auth == nil {
		writeError(w, http.StatusServiceUnavailable, msgOAuthNotConfigured)
		return
	}

	var req struct {
		Code string `json:"code"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		writeJSON(w, http.StatusOK, s.session.Snapshot())
		return
	}

	token, err := s.auth.ExchangeAuthCode(r.Context(), s.oauth.ClientKey, s.oauth.ClientSecret, code, s.oauth.RedirectURI)
	if err != nil {
		log.Printf("❌ Token exchange failed: %v", err)
		writeError(w, http.StatusUnprocessableEntity, msgExchangeFailed)
		return
	}

	s.link(w, r, session.TokenBacked{Token: token})
}

func (s *Server) link(w http.ResponseWriter, r *http.Request, method session.LinkMethod) {
	_, err := s.linker.Link(r.Context(), s.session, method)
	switch {
	case errors.Is(err, session.ErrEmptyInput):
		writeJSON(w, http.StatusOK, s.session.Snapshot())
	case errors.Is(err, session.ErrLinkFailed):
		log.Printf("❌ Account link failed: %v", err)
		writeError(w, http.StatusUnprocessableEntity, msgInvalidToken)
	case err != nil:
		log.Printf("❌ Account link failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, s.session.Snapshot())
	}
}

func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if !s.oauth.enabled() || s.auth == nil {
		writeError(w, http.StatusServiceUnavailable, msgOAuthNotConfigured)
		return
	}

	state := uuid.New().String()
	http.Redirect(w, r, s.auth.AuthCodeURL(s.oauth.ClientKey, s.oauth.RedirectURI, state), http.StatusFound)
}
