package dto

// EmailValidationRequest is the body for POST /api/validate-email.
type EmailValidationRequest struct {
	Email string `json:"email"`
}

// EmailValidationDetails carries the raw deliverability signals.
type EmailValidationDetails struct {
	FormatValid bool    `json:"format_valid"`
	MXFound     bool    `json:"mx_found"`
	SMTPCheck   bool    `json:"smtp_check"`
	Score       float64 `json:"score"`
}

// EmailValidationInfo carries secondary address metadata.
type EmailValidationInfo struct {
	User       string `json:"user"`
	Domain     string `json:"domain"`
	CatchAll   bool   `json:"catch_all"`
	Role       bool   `json:"role"`
	Disposable bool   `json:"disposable"`
	Free       bool   `json:"free"`
}

// EmailValidationResponse is the verdict object returned to the client.
type EmailValidationResponse struct {
	IsValid        bool                   `json:"isValid"`
	Details        EmailValidationDetails `json:"details"`
	Suggestion     *string                `json:"suggestion"`
	Result         string                 `json:"result"` // "deliverable" or "undeliverable"
	Reason         string                 `json:"reason"`
	AdditionalInfo EmailValidationInfo    `json:"additionalInfo"`
}
