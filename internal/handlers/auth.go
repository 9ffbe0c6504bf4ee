package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"bankcore/internal/auth"
	"bankcore/internal/middleware"
	"bankcore/internal/services"
	"bankcore/internal/validator"
)

type loginRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.Secret == "" {
		respondError(w, http.StatusBadRequest, "secret is required")
		return
	}
	if err := validator.ValidateIdentifier(req.Identifier); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result := h.authService.AttemptLogin(req.Identifier, req.Secret, originFromRequest(r))
	switch result.Status {
	case services.LoginLocked:
		respondJSON(w, http.StatusForbidden, map[string]any{
			"status":              "locked",
			"retry_after_minutes": result.RetryAfterMinutes,
		})
	case services.LoginInvalidCredentials:
		payload := map[string]any{"status": "invalid_credentials"}
		if result.AttemptsRemaining >= 0 {
			payload["attempts_remaining"] = result.AttemptsRemaining
		}
		respondJSON(w, http.StatusUnauthorized, payload)
	case services.LoginOtpRequired:
		if err := h.otpService.Issue(result.Account.ID); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to issue otp")
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"status":     "otp_required",
			"account_id": result.Account.ID,
		})
	case services.LoginSuccess:
		h.respondWithToken(w, result.Account.ID, result.Account.Role)
	default:
		respondError(w, http.StatusInternalServerError, "login failed")
	}
}

type otpVerifyRequest struct {
	AccountID string `json:"account_id"`
	Code      string `json:"code"`
}

func (h *Handler) VerifyOtp(w http.ResponseWriter, r *http.Request) {
	var req otpVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateOtpCode(req.Code); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	account, err := h.otpService.Verify(req.AccountID, req.Code, originFromRequest(r))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOtpExpired):
			respondJSON(w, http.StatusUnauthorized, map[string]string{"status": "otp_expired"})
		case errors.Is(err, services.ErrOtpMismatch):
			respondJSON(w, http.StatusUnauthorized, map[string]string{"status": "otp_mismatch"})
		case errors.Is(err, services.ErrOtpNotFound):
			respondError(w, http.StatusNotFound, "no pending challenge")
		default:
			respondError(w, http.StatusInternalServerError, "verification failed")
		}
		return
	}
	h.respondWithToken(w, account.ID, account.Role)
}

type otpResendRequest struct {
	AccountID string `json:"account_id"`
}

func (h *Handler) ResendOtp(w http.ResponseWriter, r *http.Request) {
	var req otpResendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := h.otpService.Resend(req.AccountID); err != nil {
		if errors.Is(err, services.ErrOtpNotFound) {
			respondError(w, http.StatusNotFound, "no pending challenge")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to resend otp")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "otp_sent"})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	account, err := h.accounts.GetByID(accountID)
	if err != nil {
		respondError(w, http.StatusNotFound, "account not found")
		return
	}
	respondJSON(w, http.StatusOK, accountResponse(account))
}

func (h *Handler) respondWithToken(w http.ResponseWriter, accountID, role string) {
	token, err := auth.GenerateToken(h.cfg.JWTSecret, accountID, role, h.cfg.TokenTTL)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "success",
		"token":  token,
	})
}
