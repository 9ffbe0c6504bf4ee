package handlers

import (
	"encoding/json"
	"net/http"

	"bankcore/internal/config"
	"bankcore/internal/models"
	"bankcore/internal/money"
	"bankcore/internal/services"
	"bankcore/internal/store"
	"bankcore/internal/websocket"
)

type Handler struct {
	cfg          config.Config
	accounts     *store.AccountStore
	attempts     *store.AttemptStore
	transactions *store.TransactionStore
	authService  *services.AuthService
	otpService   *services.OtpService
	ledger       *services.LedgerService
	statements   *services.StatementService
	admin        *services.AdminService
	hub          *websocket.Hub
}

func New(cfg config.Config, accounts *store.AccountStore, attempts *store.AttemptStore, transactions *store.TransactionStore, authService *services.AuthService, otpService *services.OtpService, ledger *services.LedgerService, statements *services.StatementService, admin *services.AdminService, hub *websocket.Hub) *Handler {
	return &Handler{
		cfg:          cfg,
		accounts:     accounts,
		attempts:     attempts,
		transactions: transactions,
		authService:  authService,
		otpService:   otpService,
		ledger:       ledger,
		statements:   statements,
		admin:        admin,
		hub:          hub,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func originFromRequest(r *http.Request) services.LoginOrigin {
	return services.LoginOrigin{
		IP:        r.RemoteAddr,
		UserAgent: r.UserAgent(),
		Location:  r.Header.Get("X-Client-Location"),
	}
}

func accountResponse(account models.Account) map[string]any {
	return map[string]any{
		"id":             account.ID,
		"username":       account.Username,
		"account_number": account.AccountNumber,
		"full_name":      account.FullName,
		"email":          account.Email,
		"role":           account.Role,
		"balance":        money.FormatMinor(account.Balance),
		"otp_enabled":    account.OtpEnabled,
		"is_locked":      account.IsLocked,
		"last_login":     account.LastLogin,
		"created_at":     account.CreatedAt,
	}
}

func transactionResponse(tx models.Transaction) map[string]any {
	return map[string]any{
		"id":           tx.ID,
		"from_account": tx.FromAccount,
		"to_account":   tx.ToAccount,
		"amount":       money.FormatMinor(tx.Amount),
		"fee":          money.FormatMinor(tx.Fee),
		"total_amount": money.FormatMinor(tx.TotalAmount),
		"description":  tx.Description,
		"kind":         tx.Kind,
		"status":       tx.Status,
		"timestamp":    tx.Timestamp,
		"initiated_by": tx.InitiatedBy,
	}
}
