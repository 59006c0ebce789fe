package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/specialistvlad/circuitgo/internal/ctxlog"
	"github.com/specialistvlad/circuitgo/internal/engine"
)

const shutdownTimeout = 5 * time.Second

// graphSummary is one entry of GET /graphs.
type graphSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Nodes       int    `json:"nodes"`
	Connections int    `json:"connections"`
}

// Handler returns the HTTP inspection API over the loaded graphs.
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(a.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", a.healthHandler)
	r.Get("/blocks", a.blocksHandler)
	r.Route("/graphs", func(r chi.Router) {
		r.Get("/", a.listGraphsHandler)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", a.getGraphHandler)
			r.Get("/dot", a.dotHandler)
			r.Post("/execute", a.executeHandler)
		})
	})
	return r
}

// requestLogger logs every request through the app logger.
func (a *App) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		logger := a.logger.With("request_id", middleware.GetReqID(r.Context()))
		next.ServeHTTP(ww, r.WithContext(ctxlog.WithLogger(r.Context(), logger)))
		logger.Debug("Handled request.",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) blocksHandler(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, a.BlockCatalog())
}

func (a *App) listGraphsHandler(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	ids := a.engine.ListGraphs()
	out := make([]graphSummary, 0, len(ids))
	for _, id := range ids {
		g, _ := a.engine.Graph(id)
		out = append(out, graphSummary{
			ID:          g.ID,
			Name:        g.Name,
			Description: g.Description,
			Nodes:       g.Len(),
			Connections: len(g.Connections()),
		})
	}
	a.mu.Unlock()
	respondJSON(w, r, http.StatusOK, out)
}

func (a *App) getGraphHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a.mu.Lock()
	g, ok := a.engine.Graph(id)
	a.mu.Unlock()
	if !ok {
		respondError(w, r, http.StatusNotFound, fmt.Errorf("graph '%s': %w", id, engine.ErrGraphNotFound))
		return
	}
	respondJSON(w, r, http.StatusOK, g)
}

func (a *App) dotHandler(w http.ResponseWriter, r *http.Request) {
	dot, err := a.DOT(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusNotFound, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(dot))
}

func (a *App) executeHandler(w http.ResponseWriter, r *http.Request) {
	bestEffort := false
	if raw := r.URL.Query().Get("best_effort"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, fmt.Errorf("invalid best_effort %q", raw))
			return
		}
		bestEffort = v
	}

	res := a.Execute(r.Context(), chi.URLParam(r, "id"), bestEffort)
	switch {
	case errors.Is(res.Err, engine.ErrGraphNotFound):
		respondError(w, r, http.StatusNotFound, res.Err)
	case res.Err != nil:
		respondJSON(w, r, http.StatusUnprocessableEntity, toJSON(res))
	default:
		respondJSON(w, r, http.StatusOK, toJSON(res))
	}
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := writeJSON(w, v); err != nil {
		ctxlog.FromContext(r.Context()).Error("Failed to write response.", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, err error) {
	respondJSON(w, r, status, map[string]string{"error": err.Error()})
}

// Serve loads the configured paths and serves the inspection API until ctx
// is cancelled, then shuts the server down gracefully.
func (a *App) Serve(ctx context.Context) error {
	ctx = a.Context(ctx)
	if err := a.Load(ctx); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", a.config.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.config.Addr, err)
	}
	return a.serve(ctx, ln)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Inspection server starting.", "address", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("inspection server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	a.logger.Info("Shutting down inspection server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("inspection server shutdown failed: %w", err)
	}
	a.logger.Debug("Inspection server shut down gracefully.")
	return nil
}
