package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/partflow/partflow-backend-go/internal/domain/auth"
	"github.com/partflow/partflow-backend-go/internal/domain/user"
	"github.com/partflow/partflow-backend-go/internal/handler/http/response"
)

// AuthRequired rejects requests without a verified access token. Pair with
// jwtauth.Verifier, which parses the token into the request context.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.HandleError(w, auth.ErrUnauthenticated)
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}
			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != "access" {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// UserIDFromContext extracts the authenticated user ID from request claims.
func UserIDFromContext(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrUnauthenticated
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", auth.ErrInvalidToken
	}
	return userID, nil
}

// EmailFromContext extracts the authenticated user's email from request claims.
func EmailFromContext(r *http.Request) (string, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrUnauthenticated
	}
	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", auth.ErrInvalidToken
	}
	return email, nil
}

// RoleFromContext extracts the authenticated user's role from request claims.
func RoleFromContext(r *http.Request) (user.Role, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", auth.ErrUnauthenticated
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", auth.ErrInvalidToken
	}
	role, ok := user.ParseRole(roleStr)
	if !ok {
		return "", auth.ErrInvalidToken
	}
	return role, nil
}
