package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/nijanthan/portfolio-cms/internal/cms"
	"github.com/nijanthan/portfolio-cms/internal/config"
	"github.com/nijanthan/portfolio-cms/internal/content"
	"github.com/nijanthan/portfolio-cms/internal/editor"
	"github.com/nijanthan/portfolio-cms/internal/github"
	"github.com/nijanthan/portfolio-cms/internal/render"
	"github.com/nijanthan/portfolio-cms/internal/server/middleware"
	"github.com/nijanthan/portfolio-cms/internal/server/ratelimit"
	"github.com/nijanthan/portfolio-cms/internal/store"
)

// overlayFetchTimeout bounds the startup CMS fetch; the bundled
// document is the fallback on any failure.
const overlayFetchTimeout = 10 * time.Second

// Server represents the HTTP server.
type Server struct {
	httpServer     *http.Server
	store          *store.Store
	editor         *editor.Editor
	renderer       *render.Renderer
	sessionService *SessionService
	rateLimiter    *ratelimit.Limiter
	validator      *validator.Validate
	verbose        bool
}

// New creates a server instance from the merged application config: it
// loads the bundled document, applies the CMS overlay when one is
// configured, and wires the editing session over it.
func New(cfg *config.Config) (*Server, error) {
	doc, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	cmsClient := cms.NewClient(cfg.CMSURL, cfg.CMSToken)
	if cmsClient.Configured() {
		ctx, cancel := context.WithTimeout(context.Background(), overlayFetchTimeout)
		doc = cmsClient.FetchAll(ctx).Apply(doc)
		cancel()
	}

	st := store.New(doc)

	factory := func(token string) editor.RepoClient {
		var opts []github.Option
		if cfg.GitHubBaseURL != "" {
			opts = append(opts, github.WithBaseURL(cfg.GitHubBaseURL))
		}
		return github.NewClient(cfg.GitHubOwner, cfg.GitHubRepo, token, opts...)
	}

	creds := editor.NewFileCredentialStore(cfg.CredentialPath)
	ed := editor.New(st, factory, creds, cfg.RepoPath, cfg.ContentPath)

	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}

	sessionCfg, err := cfg.SessionConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create session config: %w", err)
	}

	s := &Server{
		store:          st,
		editor:         ed,
		renderer:       renderer,
		sessionService: NewSessionService(sessionCfg),
		rateLimiter:    ratelimit.NewLimiter(ratelimit.LoadConfig()),
		validator:      validator.New(),
		verbose:        cfg.Verbose,
	}

	mux := http.NewServeMux()

	// Public read path
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /theme/toggle", s.handleThemeToggle)
	mux.HandleFunc("GET /content", s.handleContent)
	mux.HandleFunc("GET /content/{section}", s.handleSection)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(render.StaticFS())))

	// Admin editing path
	mux.HandleFunc("POST /admin/login", s.handleLogin)

	authMW := middleware.AuthMiddleware(s.sessionService.AsTokenValidator())
	protected := func(h http.HandlerFunc) http.Handler { return authMW(h) }
	mux.Handle("POST /admin/logout", protected(s.handleLogout))
	mux.Handle("GET /admin/state", protected(s.handleState))
	mux.Handle("GET /admin/content", protected(s.handleWorkingCopy))
	mux.Handle("PUT /admin/{section}", protected(s.handleSetSection))
	mux.Handle("POST /admin/{section}", protected(s.handleAppendEntry))
	mux.Handle("PUT /admin/{section}/{index}", protected(s.handleSetEntry))
	mux.Handle("DELETE /admin/{section}/{index}", protected(s.handleRemoveEntry))
	mux.Handle("POST /admin/publish", protected(s.handlePublish))
	mux.Handle("GET /admin/unfurl", protected(s.handleUnfurl))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the full middleware-wrapped handler (for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Editor returns the editing session (for the CLI commands that share it).
func (s *Server) Editor() *editor.Editor {
	return s.editor
}

// Start begins listening for requests and blocks until shutdown.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging with a per-request ID.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)
		if s.verbose {
			log.Printf("[%s] %s %s %s", requestID, r.Method, r.URL.Path, r.RemoteAddr)
		}
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s %s completed in %v", requestID, r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// Uses the IP address from RemoteAddr; X-Forwarded-For is deliberately
// ignored since there is no trusted-proxy configuration.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
