package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okazarin/taskboard/internal/logger"
	"github.com/okazarin/taskboard/internal/model"
)

// TokenVerifier resolves identities from bearer tokens.
type TokenVerifier interface {
	Parse(token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the identity into the
// request context.
type Authenticate struct {
	verifier       TokenVerifier
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(verifier TokenVerifier, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{verifier: verifier, contextManager: contextManager, logger: logger}
}

// Handle extracts the Authorization header ("Bearer <token>"), verifies the
// token and passes the request on with the identity in its context. A
// request without a token is rejected as anonymous (401); a request whose
// token fails verification is rejected as forbidden (403), signalling the
// client to drop its stored token.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := bearerToken(r.Header.Get("Authorization"))
		if tokenString == "" {
			m.reject(w, http.StatusUnauthorized, "Access denied. No token provided.")
			return
		}

		identity, err := m.verifier.Parse(tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: token rejected",
				"path", r.URL.Path,
				"error", err.Error())
			m.reject(w, http.StatusForbidden, "Invalid or expired token.")
			return
		}

		ctx := m.contextManager.SetIdentityToContext(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken returns the token material of a "Bearer <token>" header value,
// or "" when the header is absent or malformed.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return token
}

func (m *Authenticate) reject(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(map[string]string{"message": message}); err != nil {
		m.logger.Error("Authenticate middleware: failed to write response",
			"error", err.Error())
	}
}
