package handlers

import (
	"net/http"

	"bankcore/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Routes() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.Logger)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{h.cfg.AllowedOrigins},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Client-Location"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/otp/verify", h.VerifyOtp)
		r.Post("/otp/resend", h.ResendOtp)
		r.With(middleware.Auth(h.cfg.JWTSecret)).Get("/me", h.Me)
	})

	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/accounts/balance", h.GetBalance)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Post("/transactions/transfer", h.Transfer)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/transactions", h.ListTransactions)
	router.With(middleware.Auth(h.cfg.JWTSecret)).Get("/statements", h.GetStatement)
	router.Get("/ws/alerts", h.WSAlerts)

	router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.Auth(h.cfg.JWTSecret))
		r.Use(middleware.RequireAdmin(h.accounts))
		r.Get("/accounts", h.AdminListAccounts)
		r.Post("/accounts/{id}/toggle-lock", h.AdminToggleLock)
		r.Delete("/accounts/{id}", h.AdminDeleteAccount)
		r.Get("/attempts", h.AdminListAttempts)
		r.Get("/transactions", h.AdminListTransactions)
		r.Post("/transactions/{id}/approve", h.AdminApproveTransaction)
		r.Post("/transactions/{id}/reject", h.AdminRejectTransaction)
	})

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return router
}
