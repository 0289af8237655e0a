package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shubh-37/content-commander/config"
	"github.com/shubh-37/content-commander/internal/agents"
	"github.com/shubh-37/content-commander/internal/database"
	"github.com/shubh-37/content-commander/internal/server"
	"github.com/shubh-37/content-commander/internal/session"
	slackpkg "github.com/shubh-37/content-commander/internal/slack"
	"github.com/shubh-37/content-commander/internal/store"
	"github.com/shubh-37/content-commander/internal/tiktok"
)

func main() {
	log.Println("🚀 TikTok Content Commander Starting...")

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	ctx := context.Background()

	// Postgres when configured, JSON files otherwise
	var kv store.KV
	var health func(ctx context.Context) error
	if cfg.DatabaseURL != "" {
		db, err := database.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.CreateTables(ctx); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		kv = database.NewKVRepository(db)
		health = db.Health
		log.Println("✅ Database connected and ready")
	} else {
		fileKV, err := store.NewFileKV(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to open data dir: %v", err)
		}
		kv = fileKV
		log.Printf("📁 Using file store at %s", cfg.DataDir)
	}

	sess, err := session.Open(ctx, store.New(kv))
	if err != nil {
		log.Fatalf("Failed to load saved state: %v", err)
	}

	generator, err := agents.NewContentGeneratorAgent(agents.GeminiConfig{
		APIKey:     cfg.Gemini.APIKey,
		BaseURL:    cfg.Gemini.BaseURL,
		TextModel:  cfg.Gemini.TextModel,
		ImageModel: cfg.Gemini.ImageModel,
	})
	if err != nil {
		log.Fatalf("Failed to create content generator: %v", err)
	}

	tiktokClient := tiktok.NewClient(cfg.TikTok.APIBase, cfg.TikTok.AuthURL)

	// Slack is optional; a nil notifier just skips notifications
	var notifier agents.Notifier
	var digester server.Digester
	if cfg.SlackEnabled() {
		slackClient, err := slackpkg.NewClient(ctx, cfg.Slack.Token)
		if err != nil {
			log.Printf("⚠️ Slack disabled: %v", err)
		} else {
			n := slackpkg.NewNotifier(slackClient, cfg.Slack.ChannelID)
			notifier = n
			digester = n
			log.Printf("💬 Slack: notifications enabled (bot %s)", slackClient.GetBotID())
		}
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	scheduler := agents.NewSchedulerAgent(sess, tiktokClient, notifier, agents.SimulationConfig{
		Interval: cfg.Simulation.Interval,
		MaxStep:  cfg.Simulation.MaxStep,
		Seed:     seed,
	})

	srv := server.New(server.Options{
		Session:   sess,
		Generator: generator,
		Linker:    session.NewLinker(tiktokClient, seed),
		Scheduler: scheduler,
		Auth:      tiktokClient,
		OAuth: server.OAuthSettings{
			ClientKey:    cfg.TikTok.ClientKey,
			ClientSecret: cfg.TikTok.ClientSecret,
			RedirectURI:  cfg.TikTok.RedirectURI,
		},
		Digester:  digester,
		UploadDir: cfg.UploadDir,
		Health:    health,
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv.Handler(cfg.AllowedOrigins),
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🌐 Listening on :%s", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	log.Println("✅ System initialized successfully")
	log.Printf("🤖 Gemini: %s / %s", cfg.Gemini.TextModel, cfg.Gemini.ImageModel)
	log.Printf("🔑 TikTok login: %v", cfg.TikTokOAuthEnabled())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped cleanly")
}
