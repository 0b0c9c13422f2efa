package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	visitorCookieName = "vine_visitor"
	visitorLifetime   = 180 * 24 * time.Hour
)

// ctxVisitorKey is the context key type for the visitor id.
type ctxVisitorKey struct{}

// visitorID returns the id placed in the request context by withVisitor.
func visitorID(r *http.Request) string {
	id, _ := r.Context().Value(ctxVisitorKey{}).(string)
	return id
}

// withVisitor resolves the visitor cookie, issuing a fresh signed one when it
// is missing, expired or forged. It never rejects a request.
func (s *Server) withVisitor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := ""
		if c, err := r.Cookie(visitorCookieName); err == nil && c.Value != "" {
			id = s.parseToken(c.Value, "vid")
		}
		if id == "" {
			id = genID()
			if err := s.setVisitorCookie(w, id); err != nil {
				log.Error().Err(err).Msg("sign visitor token")
				writeError(w, http.StatusInternalServerError, "visitor_failed")
				return
			}
		}
		ctx := context.WithValue(r.Context(), ctxVisitorKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin enforces a bearer token carrying {"admin": true}.
func (s *Server) requireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(a), "bearer ") {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			if s.parseToken(strings.TrimSpace(a[7:]), "admin") != "true" {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// parseToken validates an HS256 token and returns claim as a string, or ""
// if the token is invalid or the claim is missing.
func (s *Server) parseToken(tok, claim string) string {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return ""
	}
	switch v := claims[claim].(type) {
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
	}
	return ""
}

// SignVisitor creates an HS256 visitor token for id.
func SignVisitor(secret []byte, id string, exp time.Time) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"vid": id,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	}).SignedString(secret)
}

// SignAdmin creates an HS256 admin token valid for ttl.
func SignAdmin(secret []byte, ttl time.Duration) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"admin": true,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
	}).SignedString(secret)
}

// setVisitorCookie writes the visitor cookie with appropriate security attributes.
func (s *Server) setVisitorCookie(w http.ResponseWriter, id string) error {
	exp := time.Now().Add(visitorLifetime)
	tok, err := SignVisitor(s.secret, id, exp)
	if err != nil {
		return err
	}
	secure := os.Getenv("APP_ENV") == "production"
	http.SetCookie(w, &http.Cookie{
		Name:     visitorCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
	return nil
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	s := base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
	if len(s) > 22 {
		return s[:22]
	}
	return s
}
