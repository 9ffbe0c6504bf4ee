package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"bankcore/internal/middleware"
	"bankcore/internal/money"
	"bankcore/internal/services"
	"bankcore/internal/validator"
)

type transferRequest struct {
	ToAccount   string `json:"to_account"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

// Transfer moves money from the authenticated account to the named
// destination account number.
func (h *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateAccountNumber(req.ToAccount); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validator.ValidateDescription(req.Description); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	amountMinor, err := parseAmountMinor(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_amount")
		return
	}
	from, err := h.accounts.GetByID(accountID)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	tx, err := h.ledger.Transfer(services.TransferRequest{
		FromNumber:  from.AccountNumber,
		ToNumber:    req.ToAccount,
		AmountMinor: amountMinor,
		Description: req.Description,
		InitiatedBy: from.ID,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidAccount):
			respondError(w, http.StatusNotFound, "invalid account")
		case errors.Is(err, services.ErrInvalidAmount):
			respondError(w, http.StatusBadRequest, "invalid_amount")
		case errors.Is(err, services.ErrInsufficientFunds):
			respondError(w, http.StatusUnprocessableEntity, "insufficient funds")
		case errors.Is(err, services.ErrDailyLimitExceeded):
			respondError(w, http.StatusUnprocessableEntity, "daily transfer limit exceeded")
		default:
			respondError(w, http.StatusInternalServerError, "transfer failed")
		}
		return
	}
	respondJSON(w, http.StatusCreated, transactionResponse(tx))
}

// ListTransactions returns the caller's projected account history,
// newest first.
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	entries, err := h.statements.AccountHistory(accountID)
	if err != nil {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}
	normalized := make([]map[string]any, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		row := transactionResponse(entry.Transaction)
		row["balance_after"] = money.FormatMinor(entry.BalanceAfter)
		normalized = append(normalized, row)
	}
	respondJSON(w, http.StatusOK, normalized)
}
