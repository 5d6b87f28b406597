package guard

import (
	"errors"
	"net/http"

	"github.com/nayanishant/vegetable-wholesaler/internal/auth"
	"go.uber.org/zap"
)

// SessionReader decodes the session carried by a request.
type SessionReader interface {
	ReadSession(r *http.Request) (*auth.Session, error)
}

// Middleware enforces t on every request. Allowed requests carrying a valid
// session get it attached to their context.
func Middleware(reader SessionReader, t Table, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := reader.ReadSession(r)
			if err != nil {
				session = nil
				if !errors.Is(err, auth.ErrNoToken) {
					// only the log tells absent and rejected tokens apart
					logger.Debug("session token rejected",
						zap.String("path", r.URL.Path),
						zap.String("reason", rejectReason(err)),
						zap.Error(err))
				}
			}

			class := t.Classify(r.URL.Path)
			outcome := Decide(session, class)
			if outcome != Allow {
				logger.Debug("route guard redirect",
					zap.String("path", r.URL.Path),
					zap.Stringer("classification", class),
					zap.Stringer("outcome", outcome))
				http.Redirect(w, r, outcome.Location(), http.StatusTemporaryRedirect)
				return
			}

			if session != nil {
				r = r.WithContext(auth.WithSession(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "expired"
	case errors.Is(err, auth.ErrUnknownRole):
		return "unknown_role"
	case errors.Is(err, auth.ErrMalformedToken):
		return "malformed"
	default:
		return "error"
	}
}
