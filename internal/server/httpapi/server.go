// Package httpapi exposes the REST surface of the server: authentication,
// file operations and the embedded single-page client.
package httpapi

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/filevault/internal/logging"
	"github.com/dmitrijs2005/filevault/internal/server/config"
	"github.com/dmitrijs2005/filevault/internal/server/services"
)

// Server wires the HTTP router to the service layer.
type Server struct {
	cfg    *config.Config
	logger logging.Logger
	users  *services.UserService
	files  *services.FileService
	// webFS holds the built SPA; nil disables static serving.
	webFS fs.FS

	httpServer *http.Server
}

func NewServer(cfg *config.Config, logger logging.Logger, users *services.UserService, files *services.FileService, webFS fs.FS) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger.With("module", "httpapi"),
		users:  users,
		files:  files,
		webFS:  webFS,
	}
}

// Router assembles all routes. Split out of Run so tests can drive the
// handler tree through httptest without binding a socket.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.Use(s.requestIDMiddleware, s.accessLogMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)

	files := api.PathPrefix("/files").Subrouter()
	files.Use(s.authMiddleware)
	files.HandleFunc("", s.handleListFiles).Methods(http.MethodGet)
	files.HandleFunc("/upload", s.handleUpload).Methods(http.MethodPost)
	files.HandleFunc("/{id:[0-9]+}/download", s.handleDownload).Methods(http.MethodGet)
	files.HandleFunc("/{id:[0-9]+}", s.handleDeleteFile).Methods(http.MethodDelete)

	if s.webFS != nil {
		r.PathPrefix("/").Handler(s.spaHandler())
	}

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Authorization", "Content-Type"}),
	)(r)
}

// spaHandler serves the embedded client bundle. Unknown paths fall back to
// index.html so client-side routing keeps working after a page reload.
func (s *Server) spaHandler() http.Handler {
	fileServer := http.FileServerFS(s.webFS)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/")
		if name == "" {
			name = "index.html"
		}
		if _, err := fs.Stat(s.webFS, name); err != nil {
			http.ServeFileFS(w, r, s.webFS, "index.html")
			return
		}
		fileServer.ServeHTTP(w, r)
	})
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.EndpointAddr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info(ctx, "http server listening", "addr", s.cfg.EndpointAddr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
