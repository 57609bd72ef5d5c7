package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"PROFILEHUB_BACK-END/internal/dto"
	"PROFILEHUB_BACK-END/internal/mailcheck"
	"PROFILEHUB_BACK-END/internal/service"
	"PROFILEHUB_BACK-END/internal/utils"
)

// EmailValidationHandler exposes the deliverability check to the form UI so
// it can verify an address before submitting.
type EmailValidationHandler struct {
	verifier service.EmailVerifier
}

// NewEmailValidationHandler creates a new EmailValidationHandler instance
func NewEmailValidationHandler(verifier service.EmailVerifier) *EmailValidationHandler {
	return &EmailValidationHandler{verifier: verifier}
}

// ValidateEmail godoc
// @Summary      Check email deliverability
// @Description  Runs one remote deliverability check; results are never cached
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        payload  body      dto.EmailValidationRequest  true  "Address to check"
// @Success      200      {object}  dto.EmailValidationResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      500      {object}  dto.ErrorResponse
// @Router       /api/validate-email [post]
func (h *EmailValidationHandler) ValidateEmail(w http.ResponseWriter, r *http.Request) {
	var req dto.EmailValidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	if req.Email == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Email is required", "")
		return
	}

	verdict, err := h.verifier.Verify(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, mailcheck.ErrNotConfigured) {
			utils.WriteErrorResponse(w, http.StatusInternalServerError, "Email validation service not configured", "")
			return
		}
		log.Printf("email validation: %v", err)
		utils.WriteErrorResponse(w, http.StatusInternalServerError,
			"Email validation service is currently unavailable. Please try again later.", err.Error())
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, toValidationResponse(verdict))
}

func toValidationResponse(v *mailcheck.Verdict) dto.EmailValidationResponse {
	result := "undeliverable"
	if v.Deliverable {
		result = "deliverable"
	}

	var suggestion *string
	if v.Suggestion != "" {
		suggestion = &v.Suggestion
	}

	return dto.EmailValidationResponse{
		IsValid: v.Deliverable,
		Details: dto.EmailValidationDetails{
			FormatValid: v.FormatValid,
			MXFound:     v.MXFound,
			SMTPCheck:   v.SMTPCheck,
			Score:       v.Score,
		},
		Suggestion: suggestion,
		Result:     result,
		Reason:     v.Reason,
		AdditionalInfo: dto.EmailValidationInfo{
			User:       v.User,
			Domain:     v.Domain,
			CatchAll:   v.CatchAll,
			Role:       v.Role,
			Disposable: v.Disposable,
			Free:       v.Free,
		},
	}
}
