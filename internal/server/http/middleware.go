package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/courseboard/server/internal/common"
	"github.com/courseboard/server/internal/server/auth"
)

type ctxKey int

const identityKey ctxKey = iota

// IdentityFromContext returns the identity attached by the authenticate
// middleware, or nil outside the authenticated group.
func IdentityFromContext(ctx context.Context) *auth.Identity {
	ident, _ := ctx.Value(identityKey).(*auth.Identity)
	return ident
}

// authenticate requires a valid "Authorization: Bearer <token>" header and
// attaches the verified identity to the request context. The header value
// itself is never logged.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.verifier == nil {
			s.writeError(r.Context(), w, common.ErrServerMisconfigured)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			s.writeError(r.Context(), w, common.ErrMissingToken)
			return
		}

		ident, err := s.verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			s.writeError(r.Context(), w, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, ident)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
