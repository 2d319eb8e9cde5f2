package middleware

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/shamsitray/shamsitray/internal/config"
)

// BasicAuth guards requests with HTTP Basic Authentication. The configured
// password is a bcrypt hash, never a plaintext secret. A nil config
// disables the check entirely.
func BasicAuth(cfg *config.BasicAuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || !credentialsMatch(cfg, user, pass) {
				w.Header().Set("WWW-Authenticate", `Basic realm="shamsitray"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func credentialsMatch(cfg *config.BasicAuthConfig, user, pass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(cfg.Username)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(cfg.PasswordHash), []byte(pass)) == nil
	return userOK && passOK
}
