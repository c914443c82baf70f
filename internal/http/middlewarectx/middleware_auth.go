// Package middlewarectx содержит HTTP middleware: проверку токена сессии заявителя
// и ограничение частоты запросов.
//
// SessionMiddleware проверяет токен из заголовка Authorization и кладёт в контекст
// идентификатор серверной сессии и номер заявки. При ошибке отвечает 401.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/archviz-subscriptions/internal/http/response"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/jwt"
	"github.com/magabrotheeeer/archviz-subscriptions/internal/lib/sl"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// SessionID — ключ идентификатора сессии в контексте
	SessionID Key = "session_id"
	// ApplicationID — ключ номера заявки в контексте
	ApplicationID Key = "application_id"
)

// TokenParser проверяет подпись и срок токена.
type TokenParser interface {
	ParseToken(tokenStr string) (*jwt.SessionClaims, error)
}

// SessionMiddleware возвращает middleware, который проверяет Bearer-токен сессии.
func SessionMiddleware(tokens TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.SessionMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Info("missing or invalid authorization header")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			claims, err := tokens.ParseToken(tokenStr)
			if err != nil {
				log.Info("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), SessionID, claims.SessionID())
			ctx = context.WithValue(ctx, ApplicationID, claims.ApplicationID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionIDFrom достаёт идентификатор сессии, положенный SessionMiddleware.
func SessionIDFrom(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(SessionID).(string)
	return sid, ok && sid != ""
}
