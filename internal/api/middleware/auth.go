package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/manmitra25/MM-BookingService/internal/api/handlers"
	"github.com/manmitra25/MM-BookingService/internal/domain"
)

type contextKey string

const (
	userIDKey    contextKey = "user_id"
	userRoleKey  contextKey = "user_role"
	sessionIDKey contextKey = "session_id"
)

// Заголовки идентификации, проставляются API-шлюзом после проверки токена
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const msgUnauthenticated = "требуется аутентификация"

// Auth требует идентификацию запроса.
// Роль по умолчанию student: шлюз обязан проставлять роль только для
// привилегированных пользователей.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		if userID == "" {
			handlers.RespondError(w, http.StatusUnauthorized, msgUnauthenticated)
			return
		}

		role := r.Header.Get(HeaderUserRole)
		if role == "" {
			role = string(domain.RoleStudent)
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		ctx = context.WithValue(ctx, sessionIDKey, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth идентифицирует запрос, если заголовки есть, и выдаёт
// анонимный идентификатор сессии, если нет. Удержание слота доступно
// и до входа в систему.
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(HeaderUserID)
		sessionID := userID
		if sessionID == "" {
			sessionID = "anon-" + uuid.NewString()
		}

		role := r.Header.Get(HeaderUserRole)
		if role == "" {
			role = string(domain.RoleStudent)
		}

		ctx := r.Context()
		if userID != "" {
			ctx = context.WithValue(ctx, userIDKey, userID)
			ctx = context.WithValue(ctx, userRoleKey, role)
		}
		ctx = context.WithValue(ctx, sessionIDKey, sessionID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID возвращает идентификатор пользователя из контекста
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// UserRole возвращает роль пользователя из контекста
func UserRole(ctx context.Context) string {
	role, ok := ctx.Value(userRoleKey).(string)
	if !ok || role == "" {
		return string(domain.RoleStudent)
	}
	return role
}

// SessionID возвращает идентификатор сессии запроса из контекста
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey).(string)
	return id
}
