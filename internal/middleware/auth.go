package middleware

import (
	"net/http"
	"strings"

	"hearth/internal/auth"
	"hearth/internal/store"
)

// RequireAuth validates the bearer token against the session table and
// populates AuthContext with the caller's persona and active family.
func RequireAuth(issuer *auth.TokenIssuer, sessions *store.SessionStore, users *store.UserStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if _, err := issuer.Verify(token); err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// A verified signature is not enough: logout revokes the
			// session row, so the token must still be on file.
			sess, err := sessions.GetByToken(token)
			if err != nil || sess == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := users.GetByID(sess.UserID)
			if err != nil || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ac := auth.AuthContext{
				UserID:  user.ID,
				Persona: user.Persona(),
				Token:   token,
			}
			if user.ActiveFamilyID != nil {
				ac.ActiveFamilyID = *user.ActiveFamilyID
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireFamily rejects requests from callers without an active family.
func RequireFamily(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.FamilyID(r.Context()) == "" {
			http.Error(w, "No active family", http.StatusConflict)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
