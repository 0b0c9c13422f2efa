package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type loginReq struct {
	Password string `json:"password"`
}

type loginRes struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost) // cost=10
	return string(b), err
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// handleAdminLogin exchanges the admin password for a bearer token that
// unlocks the export.
func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	if s.admin == "" {
		writeError(w, http.StatusNotFound, "admin_disabled")
		return
	}
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if len(req.Password) < 8 || len(req.Password) > 100 || !checkPassword(s.admin, req.Password) {
		log.Warn().Str("ip", r.RemoteAddr).Msg("admin login failed")
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	tok, err := SignAdmin(s.secret, s.adminTTL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, http.StatusOK, loginRes{Token: tok, ExpiresAt: time.Now().Add(s.adminTTL).UTC()})
}
