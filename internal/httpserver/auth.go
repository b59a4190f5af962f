// internal/httpserver/auth.go
//
// Session tokens.
//   - POST /sessions returns an HS256 JWT whose "sid" claim is the session ID.
//   - requireSession checks "Authorization: Bearer <token>" against {id} in the
//     path and loads the session entry into the request context.

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/robalobadob/wordle-solver/internal/store"
)

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// signSessionToken returns a token for session id and its expiry.
func (s *Server) signSessionToken(id string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.opts.TTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		SessionID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	ss, err := t.SignedString([]byte(s.opts.Secret))
	return ss, exp, err
}

// parseSessionToken validates tok and returns its session ID.
func (s *Server) parseSessionToken(tok string) (string, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session token")
	}
	return claims.SessionID, nil
}

// bearer extracts a bearer token from the Authorization header.
func bearer(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

// ctxEntryKey is the context key type for the session entry.
type ctxEntryKey struct{}

// requireSession enforces a valid token for the session in the path.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := bearer(r)
		if tok == "" {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		sid, err := s.parseSessionToken(tok)
		if err != nil || sid != chi.URLParam(r, "id") {
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}
		e, err := s.store.Get(r.Context(), sid)
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "session_not_found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "store_failed")
			return
		}
		ctx := context.WithValue(r.Context(), ctxEntryKey{}, e)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// entryFrom returns the entry loaded by requireSession.
func entryFrom(r *http.Request) *store.Entry {
	e, _ := r.Context().Value(ctxEntryKey{}).(*store.Entry)
	return e
}
