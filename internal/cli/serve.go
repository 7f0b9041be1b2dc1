package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hyprtile/pkg/buildinfo"
	"github.com/matzehuels/hyprtile/pkg/config"
	hterrors "github.com/matzehuels/hyprtile/pkg/errors"
	"github.com/matzehuels/hyprtile/pkg/observability"
	"github.com/matzehuels/hyprtile/pkg/pipeline"
	"github.com/matzehuels/hyprtile/pkg/scene"
	"github.com/matzehuels/hyprtile/pkg/store"
)

const (
	defaultAddr     = "127.0.0.1:8080"
	maxSceneBytes   = 4 << 20
	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout pipeline over HTTP",
		Long: `Serve the layout pipeline over HTTP.

Endpoints:
  POST /v1/layout                         lay out a JSON scene (query: passes, workspace, refresh)
  GET  /v1/snapshots/{workspace}          snapshot history, newest first (query: limit)
  GET  /v1/snapshots/{workspace}/latest   most recent snapshot
  GET  /healthz                           liveness and version

Use --redis to share the result cache between instances and --mongo to
keep snapshots in MongoDB.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	runner, err := c.newRunner(ctx, false, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(runner, cfg, c.Logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	c.Logger.Info("listening", "addr", addr, "build", buildinfo.String())

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	c.Logger.Info("server stopped")
	return ctx.Err()
}

type server struct {
	runner *pipeline.Runner
	cfg    *config.Config
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, cfg *config.Config, logger *log.Logger) *server {
	return &server{runner: runner, cfg: cfg, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Get("/snapshots/{workspace}", s.handleSnapshots)
		r.Get("/snapshots/{workspace}/latest", s.handleLatest)
	})
	return r
}

// logRequests attaches a request-scoped logger and reports each response
// to the HTTP hooks.
func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		logger := s.logger.With("request_id", middleware.GetReqID(ctx))
		ctx = withLogger(ctx, logger)

		observability.HTTP().OnRequest(ctx, r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		d := time.Since(start)
		observability.HTTP().OnResponse(ctx, r.Method, r.URL.Path, ww.Status(), d)
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", d)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts := pipeline.Options{
		Config:    s.cfg,
		Workspace: r.URL.Query().Get("workspace"),
		Logger:    loggerFromContext(r.Context()),
	}
	if v := r.URL.Query().Get("passes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, hterrors.New(hterrors.ErrCodeInvalidInput, "passes must be an integer"))
			return
		}
		opts.Passes = n
	}
	opts.Refresh, _ = strconv.ParseBool(r.URL.Query().Get("refresh"))

	sc, err := scene.Read(http.MaxBytesReader(w, r.Body, maxSceneBytes))
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := s.runner.Execute(r.Context(), sc, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *server) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	st, ok := s.snapshotStore(w)
	if !ok {
		return
	}
	limit := store.DefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > store.DefaultLimit {
			writeError(w, hterrors.New(hterrors.ErrCodeInvalidInput, "limit must be between 1 and %d", store.DefaultLimit))
			return
		}
		limit = n
	}
	snaps, err := st.List(r.Context(), chi.URLParam(r, "workspace"), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if snaps == nil {
		snaps = []*store.Snapshot{}
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *server) handleLatest(w http.ResponseWriter, r *http.Request) {
	st, ok := s.snapshotStore(w)
	if !ok {
		return
	}
	snap, err := st.Latest(r.Context(), chi.URLParam(r, "workspace"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *server) snapshotStore(w http.ResponseWriter) (store.Store, bool) {
	if s.runner.Store == nil {
		writeError(w, hterrors.New(hterrors.ErrCodeUnsupported, "snapshots are disabled"))
		return nil, false
	}
	return s.runner.Store, true
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	code := hterrors.GetCode(err)
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Code: string(hterrors.ErrCodeInvalidInput), Message: "scene too large"})
		return
	case store.IsNotFound(err):
		code = hterrors.ErrCodeNotFound
	case code == "":
		code = hterrors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorBody{Code: string(code), Message: hterrors.UserMessage(err)})
}

func statusFor(code hterrors.Code) int {
	switch code {
	case hterrors.ErrCodeInvalidInput, hterrors.ErrCodeInvalidConfig, hterrors.ErrCodeInvalidScene, hterrors.ErrCodeInvalidName:
		return http.StatusBadRequest
	case hterrors.ErrCodeNotFound:
		return http.StatusNotFound
	case hterrors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case hterrors.ErrCodeGeometry, hterrors.ErrCodeWindowGone:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
