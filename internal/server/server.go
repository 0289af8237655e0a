package server

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/shubh-37/content-commander/internal/agents"
	"github.com/shubh-37/content-commander/internal/models"
	"github.com/shubh-37/content-commander/internal/session"
)

// Generator produces the creative content for each wizard step
type Generator interface {
	GenerateIdeas(ctx context.Context, topic string) ([]models.VideoIdea, error)
	GenerateScript(ctx context.Context, hook, duration string) (string, error)
	GenerateMetadata(ctx context.Context, script string) (string, []string, error)
	GenerateThumbnail(ctx context.Context, prompt string) (string, error)
}

// AuthClient runs the TikTok authorization-code flow
type AuthClient interface {
	AuthCodeURL(clientKey, redirectURI, state string) string
	ExchangeAuthCode(ctx context.Context, clientKey, clientSecret, code, redirectURI string) (string, error)
}

// Digester posts the scheduled queue somewhere people read it
type Digester interface {
	SendScheduleDigest(ctx context.Context, posts []models.ScheduledPost) error
}

// OAuthSettings are the app credentials for the login flow
type OAuthSettings struct {
	ClientKey    string
	ClientSecret string
	RedirectURI  string
}

func (o OAuthSettings) enabled() bool {
	return o.ClientKey != "" && o.ClientSecret != ""
}

type Options struct {
	Session   *session.Session
	Generator Generator
	Linker    *session.Linker
	Scheduler *agents.SchedulerAgent
	Auth      AuthClient
	OAuth     OAuthSettings
	Digester  Digester
	UploadDir string
	// Health is checked by /health when set, e.g. a database ping
	Health func(ctx context.Context) error
}

type Server struct {
	session   *session.Session
	generator Generator
	linker    *session.Linker
	scheduler *agents.SchedulerAgent
	auth      AuthClient
	oauth     OAuthSettings
	digester  Digester
	uploadDir string
	health    func(ctx context.Context) error
	router    *mux.Router
}

func New(opts Options) *Server {
	s := &Server{
		session:   opts.Session,
		generator: opts.Generator,
		linker:    opts.Linker,
		scheduler: opts.Scheduler,
		auth:      opts.Auth,
		oauth:     opts.OAuth,
		digester:  opts.Digester,
		uploadDir: opts.UploadDir,
		health:    opts.Health,
		router:    mux.NewRouter(),
	}
	if s.uploadDir == "" {
		s.uploadDir = os.TempDir()
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router

	r.HandleFunc("/health", s.handleHealth).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/session", s.handleGetSession).Methods("GET")
	api.HandleFunc("/session/next", s.handleNextStep).Methods("POST")
	api.HandleFunc("/session/step", s.handleSetStep).Methods("PUT")

	api.HandleFunc("/ideas", s.handleGenerateIdeas).Methods("POST")
	api.HandleFunc("/ideas/{id}/select", s.handleSelectIdea).Methods("POST")
	api.HandleFunc("/script", s.handleGenerateScript).Methods("POST")
	api.HandleFunc("/script", s.handleEditScript).Methods("PUT")
	api.HandleFunc("/metadata", s.handleGenerateMetadata).Methods("POST")
	api.HandleFunc("/metadata", s.handleEditMetadata).Methods("PUT")
	api.HandleFunc("/thumbnail", s.handleGenerateThumbnail).Methods("POST")
	api.HandleFunc("/thumbnail", s.handleSetThumbnail).Methods("PUT")

	api.HandleFunc("/accounts", s.handleListAccounts).Methods("GET")
	api.HandleFunc("/accounts", s.handleLinkAccount).Methods("POST")
	api.HandleFunc("/auth/exchange", s.handleAuthExchange).Methods("POST")

	api.HandleFunc("/upload/config", s.handleUploadConfig).Methods("PUT")
	api.HandleFunc("/upload", s.handleUpload).Methods("POST")
	api.HandleFunc("/upload/status", s.handleUploadStatus).Methods("GET")
	api.HandleFunc("/scheduled-posts", s.handleScheduledPosts).Methods("GET")
	api.HandleFunc("/scheduled-posts/digest", s.handleScheduleDigest).Methods("POST")

	r.HandleFunc("/auth/login", s.handleAuthLogin).Methods("GET")
	r.HandleFunc("/auth/callback", s.handleAuthCallback).Methods("GET")
	r.HandleFunc("/privacy-policy", s.handlePrivacyPolicy).Methods("GET")
	r.HandleFunc("/terms-of-service", s.handleTermsOfService).Methods("GET")
}

// Router exposes the bare router, without middleware
func (s *Server) Router() *mux.Router {
	return s.router
}

// Handler wraps the router with CORS, panic recovery and access logging
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)
	recovery := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))

	return handlers.CombinedLoggingHandler(os.Stdout, recovery(cors(s.router)))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unhealthy"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
