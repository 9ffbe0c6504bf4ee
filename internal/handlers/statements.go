package handlers

import (
	"net/http"

	"bankcore/internal/middleware"
	"bankcore/internal/money"
)

// GetStatement builds the caller's statement for ?start=&end=
// (inclusive). Bare dates cover the whole day.
func (h *Handler) GetStatement(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	start, err := parseDateParam(r.URL.Query().Get("start"), false)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid start date")
		return
	}
	end, err := parseDateParam(r.URL.Query().Get("end"), true)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid end date")
		return
	}
	if end.Before(start) {
		respondError(w, http.StatusBadRequest, "end before start")
		return
	}

	statement, err := h.statements.Build(accountID, start, end)
	if err != nil {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}

	entries := make([]map[string]any, 0, len(statement.Entries))
	for _, entry := range statement.Entries {
		row := transactionResponse(entry.Transaction)
		row["balance_after"] = money.FormatMinor(entry.BalanceAfter)
		entries = append(entries, row)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"account_id":      statement.AccountID,
		"account_number":  statement.AccountNumber,
		"holder_name":     statement.HolderName,
		"period_start":    statement.PeriodStart,
		"period_end":      statement.PeriodEnd,
		"opening_balance": money.FormatMinor(statement.OpeningBalance),
		"closing_balance": money.FormatMinor(statement.ClosingBalance),
		"entries":         entries,
		"summary": map[string]string{
			"total_deposits":    money.FormatMinor(statement.Summary.TotalDeposits),
			"total_withdrawals": money.FormatMinor(statement.Summary.TotalWithdrawals),
			"total_transfers":   money.FormatMinor(statement.Summary.TotalTransfers),
			"total_fees":        money.FormatMinor(statement.Summary.TotalFees),
		},
	})
}
