package middleware

import (
	"context"
	"net/http"
	"strings"

	helper "github.com/Abhin-Krishna-MP/CakeFarm/helper"
)

// Context keys to store user information
type contextKey string

const (
	UserIdKey   contextKey = "user_id"
	EmailKey    contextKey = "email"
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
)

// Authentication middleware for Gorilla Mux
func Authentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientToken := r.Header.Get("Authorization")
		if clientToken == "" {
			http.Error(w, "No Authorization header provided", http.StatusUnauthorized)
			return
		}

		// Token format should be "Bearer <token>"
		tokenParts := strings.Split(clientToken, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			http.Error(w, "Invalid Authorization format", http.StatusUnauthorized)
			return
		}

		tokenString := tokenParts[1]
		claims, err := helper.ValidateToken(tokenString)
		if err != "" {
			http.Error(w, err, http.StatusUnauthorized)
			return
		}

		// Store user details in the request context
		ctx := context.WithValue(r.Context(), UserIdKey, claims.UserId)
		ctx = context.WithValue(ctx, EmailKey, claims.Email)
		ctx = context.WithValue(ctx, UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)

		// Pass modified request with context to the next handler
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly rejects requests whose token does not carry the admin role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, _ := r.Context().Value(RoleKey).(string)
		if role != "admin" {
			http.Error(w, `{"success": false, "message": "Admin access required"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserFromContext retrieves user data from the request context
func GetUserFromContext(r *http.Request) (userId, email, username, role string) {
	userId, _ = r.Context().Value(UserIdKey).(string)
	email, _ = r.Context().Value(EmailKey).(string)
	username, _ = r.Context().Value(UsernameKey).(string)
	role, _ = r.Context().Value(RoleKey).(string)
	return
}
