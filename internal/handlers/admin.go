package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"bankcore/internal/store"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) AdminListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts := h.accounts.ListAll()
	normalized := make([]map[string]any, 0, len(accounts))
	for _, account := range accounts {
		row := accountResponse(account)
		row["login_attempts"] = account.LoginAttempts
		row["lock_until"] = account.LockUntil
		normalized = append(normalized, row)
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) AdminListAttempts(w http.ResponseWriter, r *http.Request) {
	attempts := h.attempts.List()
	normalized := make([]map[string]any, 0, len(attempts))
	for _, attempt := range attempts {
		normalized = append(normalized, map[string]any{
			"id":         attempt.ID,
			"identifier": attempt.Identifier,
			"status":     attempt.Status,
			"attempts":   attempt.Attempts,
			"ip":         attempt.IP,
			"user_agent": attempt.UserAgent,
			"location":   attempt.Location,
			"timestamp":  attempt.Timestamp,
		})
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) AdminListTransactions(w http.ResponseWriter, r *http.Request) {
	transactions := h.transactions.ListAll()
	normalized := make([]map[string]any, 0, len(transactions))
	for _, tx := range transactions {
		normalized = append(normalized, transactionResponse(tx))
	}
	respondJSON(w, http.StatusOK, normalized)
}

func (h *Handler) AdminToggleLock(w http.ResponseWriter, r *http.Request) {
	account, err := h.admin.ToggleLock(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}
	respondJSON(w, http.StatusOK, accountResponse(account))
}

func (h *Handler) AdminDeleteAccount(w http.ResponseWriter, r *http.Request) {
	err := h.admin.DeleteAccount(chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrLastAdmin):
			respondError(w, http.StatusConflict, "cannot delete the last admin account")
		case errors.Is(err, store.ErrAccountNotFound):
			respondError(w, http.StatusNotFound, "account not found")
		default:
			respondError(w, http.StatusInternalServerError, "delete failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) AdminApproveTransaction(w http.ResponseWriter, r *http.Request) {
	h.adminSetTransactionStatus(w, r, true)
}

func (h *Handler) AdminRejectTransaction(w http.ResponseWriter, r *http.Request) {
	h.adminSetTransactionStatus(w, r, false)
}

func (h *Handler) adminSetTransactionStatus(w http.ResponseWriter, r *http.Request, approve bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}
	setStatus := h.ledger.RejectTransaction
	if approve {
		setStatus = h.ledger.ApproveTransaction
	}
	tx, err := setStatus(id)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrTransactionNotFound):
			respondError(w, http.StatusNotFound, "transaction not found")
		case errors.Is(err, store.ErrTransactionFinal):
			respondError(w, http.StatusConflict, "transaction is not pending")
		default:
			respondError(w, http.StatusInternalServerError, "update failed")
		}
		return
	}
	respondJSON(w, http.StatusOK, transactionResponse(tx))
}
