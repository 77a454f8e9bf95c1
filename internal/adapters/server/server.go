// Package server exposes the import map over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.trai.ch/federate/internal/core/domain"
	"go.trai.ch/federate/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Service is the application side of the HTTP API.
type Service interface {
	// ImportMap returns the import map exposed last.
	ImportMap() (*domain.ImportMap, bool)
	// Remotes returns the committed remote infos.
	Remotes() (domain.RemoteInfos, error)
	// Refresh reruns the federation pipeline.
	Refresh(ctx context.Context) (*domain.ImportMap, error)
}

// NewRouter returns the HTTP API routes backed by svc.
func NewRouter(svc Service, logger ports.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/importmap.json", func(w http.ResponseWriter, _ *http.Request) {
		m, ok := svc.ImportMap()
		if !ok {
			writeError(w, http.StatusServiceUnavailable, domain.ErrNotExposed)
			return
		}
		w.Header().Set("Content-Type", "application/importmap+json")
		writeJSON(w, http.StatusOK, m)
	})

	r.Get("/remotes", func(w http.ResponseWriter, _ *http.Request) {
		remotes, err := svc.Remotes()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, remotes)
	})

	r.Post("/refresh", func(w http.ResponseWriter, req *http.Request) {
		m, err := svc.Refresh(req.Context())
		if err != nil {
			logger.Error(err)
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, m)
	})

	return r
}

// Serve listens on addr and serves handler until ctx is done.
func Serve(ctx context.Context, addr string, handler http.Handler, logger ports.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to listen"), "addr", addr)
	}
	return ServeListener(ctx, ln, handler, logger)
}

// ServeListener serves handler on ln until ctx is done, then shuts down gracefully.
func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler, logger ports.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	logger.Info(fmt.Sprintf("Serving import map on http://%s/importmap.json", ln.Addr()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return zerr.Wrap(err, "server failed")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return zerr.Wrap(err, "server shutdown failed")
	}
	<-errCh
	return nil
}

func requestLogger(logger ports.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug(fmt.Sprintf("%s %s %d %s", r.Method, r.URL.Path, ww.Status(), time.Since(start).Round(time.Microsecond)))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
