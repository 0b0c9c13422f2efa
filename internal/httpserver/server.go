// internal/httpserver/server.go
//
// HTTP server wiring for the vine-riddle page.
// Responsibilities:
//   - Router + middleware (request IDs, panic recovery, timeouts, gzip,
//     access log, CORS for the JSON API).
//   - Page endpoints: "/" (server-rendered puzzle) and POST /verify (form).
//   - JSON API under /api, glyph and vine images, /daily, /stats.
//   - Visitor cookie so each browser gets its own guess records.
//
// Notes:
//   - Every visitor is anonymous; identity is a random id in a signed cookie.
//   - Rendering is stateless; the only shared mutable state is the Store.

package httpserver

import (
	"encoding/json"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vine-riddle/assets"
	"github.com/robalobadob/vine-riddle/internal/match"
	"github.com/robalobadob/vine-riddle/internal/puzzle"
	"github.com/robalobadob/vine-riddle/internal/store"
	"github.com/robalobadob/vine-riddle/internal/verifier"
)

// Options configures a Server. Puzzle and Store are required.
type Options struct {
	Puzzle        *puzzle.Puzzle
	Store         store.Store
	Mode          match.Mode       // overrides the puzzle's mode when set
	Clues         fs.FS            // clue image directory; nil renders placeholders
	VisitorSecret string           // HMAC key for visitor and admin tokens
	DailySalt     string           // seeds the featured clue
	ClientOrigin  string           // CORS origin for /api; empty disables CORS
	AdminHash     string           // bcrypt hash for POST /admin/login; empty disables it
	AdminTTL      time.Duration    // admin token lifetime; default 12h
	Now           func() time.Time // defaults to time.Now
}

// Server bundles router, puzzle content and guess store.
type Server struct {
	r        *chi.Mux
	puzzle   *puzzle.Puzzle
	store    store.Store
	verifier *verifier.Verifier
	clues    fs.FS
	secret   []byte
	salt     string
	admin    string
	adminTTL time.Duration
	now      func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	mode := opts.Puzzle.Mode
	if opts.Mode != "" {
		mode = opts.Mode
	}
	s := &Server{
		r:        chi.NewRouter(),
		puzzle:   opts.Puzzle,
		store:    opts.Store,
		verifier: verifier.New(opts.Puzzle, match.New(mode, opts.Puzzle.Aliases)),
		clues:    opts.Clues,
		secret:   []byte(opts.VisitorSecret),
		salt:     opts.DailySalt,
		admin:    opts.AdminHash,
		adminTTL: opts.AdminTTL,
		now:      opts.Now,
	}
	if len(s.secret) == 0 {
		s.secret = []byte("dev_secret_change_me")
	}
	if s.salt == "" {
		s.salt = "local_dev_salt"
	}
	if s.adminTTL <= 0 {
		s.adminTTL = 12 * time.Hour
	}
	if s.now == nil {
		s.now = time.Now
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(gzipResponses)                   // compress text responses

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	// --- static ---
	s.r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(assets.Static()))))
	if s.clues != nil {
		s.r.Handle("/clues/*", http.StripPrefix("/clues/", http.FileServer(http.FS(s.clues))))
	}

	// --- rendered glyphs (no visitor state) ---
	s.r.Get("/glyphs/{file}", s.handleGlyph)
	s.r.Get("/vines/{file}", s.handleVine)
	s.r.Get("/daily", s.handleDaily)
	s.r.Get("/stats", s.handleStats)
	s.r.With(s.requireAdmin()).Get("/stats/export.xlsx", s.handleExport)
	s.r.Post("/admin/login", s.handleAdminLogin)

	// --- page + verifier (per visitor) ---
	s.r.Group(func(r chi.Router) {
		r.Use(s.withVisitor)
		r.Get("/", s.handlePage)
		r.Post("/verify", s.handleVerifyForm)
	})

	// --- JSON API ---
	s.r.Route("/api", func(r chi.Router) {
		r.Use(corsFor(opts.ClientOrigin))
		r.Get("/layout/{word}", s.handleLayout)
		r.With(s.withVisitor).Post("/verify", s.handleVerifyJSON)
		r.With(s.withVisitor).Get("/guesses", s.handleGuesses)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// accessLog writes one structured log line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// gzipResponses compresses responses for clients that accept gzip.
func gzipResponses(next http.Handler) http.Handler {
	return gzhttp.GzipHandler(next)
}

// corsFor enables credentialed CORS for a single origin.
// An empty origin falls back to CLIENT_ORIGIN; if that is empty too, CORS
// headers are not sent.
func corsFor(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = os.Getenv("CLIENT_ORIGIN")
	}
	return func(next http.Handler) http.Handler {
		if origin == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ------------------------------- helpers -----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}
