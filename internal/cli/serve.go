package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weave/pkg/buildinfo"
	"github.com/matzehuels/weave/pkg/config"
	werrors "github.com/matzehuels/weave/pkg/errors"
	"github.com/matzehuels/weave/pkg/httputil"
	"github.com/matzehuels/weave/pkg/render/sink"
	"github.com/matzehuels/weave/pkg/session"
)

const (
	defaultAddr       = "localhost:8080"
	maxRequestBody    = 1 << 16
	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// serveCommand runs the HTTP session server.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve live animation sessions over HTTP",
		Long: `Serve live animation sessions over HTTP.

  POST   /sessions                  create a session {"preset", "seed", "width", "height"}
  GET    /sessions                  list sessions
  GET    /sessions/{id}             session state
  GET    /sessions/{id}/frame.svg   advance to ?t= seconds and return the frame (svg, png, json)
                                     without t, return the last frame again
  DELETE /sessions/{id}             tear a session down
  GET    /presets                   list presets
  GET    /healthz                   liveness`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, ttl)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().DurationVar(&ttl, "ttl", session.DefaultTTL, "idle time before a session is dropped")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, ttl time.Duration) error {
	base, err := c.loadConfig()
	if err != nil {
		return err
	}

	store := session.NewStore(ttl, c.Logger)
	defer store.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go store.Janitor(ctx, session.DefaultCleanupInterval)

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(store, base, c.seed, c.Logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	printSuccess("Listening on %s", StyleLink.Render("http://"+addr))
	printDetail("preset %s · session ttl %s", base.Preset, ttl)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down", "sessions", store.Len())
	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// =============================================================================
// Handlers
// =============================================================================

// server holds the handler state.
type server struct {
	store  *session.Store
	base   config.Config
	seed   uint64
	logger *log.Logger
}

// newServer builds the router. base is the config for sessions that do not
// name a preset; seed, when non-zero, is used for sessions that do not
// name a seed.
func newServer(store *session.Store, base config.Config, seed uint64, logger *log.Logger) http.Handler {
	s := &server{store: store, base: base, seed: seed, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httputil.Instrument(logger))

	r.Get("/healthz", s.health)
	r.Get("/presets", s.presets)
	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.create)
		r.Get("/", s.list)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.get)
			r.Delete("/", s.delete)
			r.Get("/frame.{format}", s.frame)
		})
	})
	return r
}

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  buildinfo.Version,
		"sessions": s.store.Len(),
	})
}

type presetInfo struct {
	Name    string        `json:"name"`
	Default bool          `json:"default"`
	Config  config.Config `json:"config"`
}

func (s *server) presets(w http.ResponseWriter, r *http.Request) {
	var out []presetInfo
	for _, name := range config.PresetNames() {
		cfg, _ := config.FromPreset(name)
		out = append(out, presetInfo{Name: name, Default: name == config.DefaultPreset, Config: cfg})
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// createRequest is the optional body of POST /sessions.
type createRequest struct {
	Preset     string  `json:"preset"`
	Seed       uint64  `json:"seed"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	PixelRatio float64 `json:"pixel_ratio"`
}

func (s *server) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		httputil.WriteError(w, werrors.Wrap(werrors.ErrCodeInvalidInput, err, "read body"))
		return
	}
	if len(body) > 0 {
		if err := json.Unmarshal(body, &req); err != nil {
			httputil.WriteError(w, werrors.Wrap(werrors.ErrCodeInvalidInput, err, "decode body"))
			return
		}
	}

	cfg := s.base
	if req.Preset != "" {
		if cfg, err = config.FromPreset(req.Preset); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	if req.Seed == 0 {
		req.Seed = s.seed
	}
	if req.Width < 0 || req.Height < 0 || req.PixelRatio < 0 {
		httputil.WriteError(w, werrors.New(werrors.ErrCodeInvalidInput, "width, height and pixel_ratio must not be negative"))
		return
	}

	sess, err := s.store.Create(session.Params{
		Config:     cfg,
		Seed:       req.Seed,
		Width:      req.Width,
		Height:     req.Height,
		PixelRatio: req.PixelRatio,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Location", "/sessions/"+sess.ID)
	httputil.WriteJSON(w, http.StatusCreated, sess.Info())
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, s.store.List())
}

func (s *server) get(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sess.Info())
}

func (s *server) delete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(chi.URLParam(r, "id")); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

var contentTypes = map[string]string{
	sink.FormatSVG:  "image/svg+xml",
	sink.FormatPNG:  "image/png",
	sink.FormatJSON: "application/json",
}

// frame advances the session to ?t= and encodes the frame. Without t the
// last frame is returned as is; a session with no frames yet starts at 0.
func (s *server) frame(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := werrors.ValidateFormats([]string{format}, sink.Formats...); err != nil {
		httputil.WriteError(w, err)
		return
	}
	sess, err := s.store.Get(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	f, ok := sess.LastFrame()
	if !ok || r.URL.Query().Get("t") != "" {
		t, err := httputil.QueryFloat(r, "t", 0)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		if f, err = sess.Frame(t); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	data, err := sink.Render(f, format)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}
