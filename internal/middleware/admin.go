package middleware

import (
	"net/http"

	"bankcore/internal/models"
)

// RoleDirectory resolves an account's role for authorization checks.
type RoleDirectory interface {
	GetByID(accountID string) (models.Account, error)
}

func RequireAdmin(accounts RoleDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accountID, ok := AccountIDFromContext(r.Context())
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			account, err := accounts.GetByID(accountID)
			if err != nil {
				http.Error(w, "unable to verify admin", http.StatusForbidden)
				return
			}
			if account.Role != models.RoleAdmin {
				http.Error(w, "admin privileges required", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
