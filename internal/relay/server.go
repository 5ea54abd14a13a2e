package relay

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"broadcast-mode/internal/ticker"

	"go.uber.org/zap"
)

//go:embed templates/*.html static/*.js
var assetsFS embed.FS

type Config struct {
	Addr        string
	Dir         string
	CatalogPath string

	// TickInterval overrides ticker.CycleInterval for the /ticker stream.
	TickInterval time.Duration
	// Executable overrides os.Executable() for PTY sessions.
	Executable string
}

type Server struct {
	cfg  Config
	tmpl *template.Template
	log  *zap.Logger
}

func NewServer(cfg Config, log *zap.Logger) (*Server, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("relay: missing addr")
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = ticker.CycleInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	tmpl, err := template.ParseFS(assetsFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, tmpl: tmpl, log: log}, nil
}

func (s *Server) Addr() string {
	return strings.TrimSpace(s.cfg.Addr)
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/tv", http.StatusFound)
	})
	mux.HandleFunc("GET /tv", s.handleTV)
	mux.HandleFunc("GET /ws", s.handleWS)
	mux.HandleFunc("GET /ticker", s.handleTicker)
	mux.HandleFunc("GET /static/relay.js", s.handleStatic("static/relay.js", "text/javascript; charset=utf-8"))

	return mux
}

func (s *Server) handleStatic(path, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := assetsFS.ReadFile(path)
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(b)
	}
}

type tvVM struct {
	Route   string
	Ticker  string
	Catalog string
}

func (s *Server) handleTV(w http.ResponseWriter, r *http.Request) {
	route, err := routeParam(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	vm := tvVM{
		Route:   route,
		Ticker:  ticker.Fallback.Text,
		Catalog: strings.TrimSpace(s.cfg.CatalogPath),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, "tv.html", vm); err != nil {
		s.log.Warn("render tv page", zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
