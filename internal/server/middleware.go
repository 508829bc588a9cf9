package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/athleteunknown/internal/athlete"
)

type ctxKey int

const (
	ctxKeySport ctxKey = iota
	ctxKeySession
	ctxKeyAdmin
)

func sportMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sport, err := athlete.ParseSport(chi.URLParam(r, "sport"))
		if err != nil {
			writeError(w, http.StatusNotFound, "sport not found")
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeySport, sport)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionMiddleware resolves the bearer token to a player session. The
// websocket route may pass the token as a query parameter instead.
func sessionMiddleware(sessions *Sessions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !found || token == "" {
				token = r.URL.Query().Get("token")
			}
			if token == "" {
				writeError(w, http.StatusUnauthorized, "session token required")
				return
			}

			sess, err := sessions.Resume(token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid session token")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeySession, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func adminAuthMiddleware(admin AdminStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := adminFromRequest(r, admin)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyAdmin, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sportFrom(r *http.Request) athlete.Sport {
	return r.Context().Value(ctxKeySport).(athlete.Sport)
}

func sessionFrom(r *http.Request) *Session {
	return r.Context().Value(ctxKeySession).(*Session)
}

func adminFrom(r *http.Request) adminSession {
	return r.Context().Value(ctxKeyAdmin).(adminSession)
}
