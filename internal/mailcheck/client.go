// Package mailcheck wraps the Mailboxlayer deliverability API. A single
// outbound call per verification, no retries, no caching: repeated calls for
// the same address re-verify.
package mailcheck

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"PROFILEHUB_BACK-END/internal/config"
	"PROFILEHUB_BACK-END/internal/validation"
)

// MinScore is the quality-score threshold; anything below is undeliverable.
const MinScore = 0.6

var (
	// ErrNotConfigured is returned when no API key is set. It is a
	// configuration problem, not a verification failure.
	ErrNotConfigured = errors.New("email validation service not configured")

	// ErrServiceUnavailable covers transport failures, non-success HTTP
	// statuses and service-reported errors. Callers should treat it as
	// transient, distinct from a negative verdict.
	ErrServiceUnavailable = errors.New("email validation service unavailable")
)

// Verdict is the normalized deliverability judgment for one address.
type Verdict struct {
	FormatValid bool
	MXFound     bool
	SMTPCheck   bool
	Score       float64
	Deliverable bool
	Suggestion  string
	Reason      string
	User        string
	Domain      string
	CatchAll    bool
	Role        bool
	Disposable  bool
	Free        bool
}

// Client calls the Mailboxlayer check endpoint.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new Mailboxlayer client from configuration.
func NewClient(cfg *config.MailcheckConfig) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// apiResponse mirrors the Mailboxlayer response body.
type apiResponse struct {
	FormatValid bool      `json:"format_valid"`
	MXFound     bool      `json:"mx_found"`
	SMTPCheck   bool      `json:"smtp_check"`
	Score       float64   `json:"score"`
	DidYouMean  string    `json:"did_you_mean"`
	User        string    `json:"user"`
	Domain      string    `json:"domain"`
	CatchAll    bool      `json:"catch_all"`
	Role        bool      `json:"role"`
	Disposable  bool      `json:"disposable"`
	Free        bool      `json:"free"`
	Error       *apiError `json:"error"`
}

type apiError struct {
	Code int    `json:"code"`
	Type string `json:"type"`
	Info string `json:"info"`
}

// Verify checks deliverability of a single address. Empty or locally-malformed
// input short-circuits to an undeliverable verdict without a network call.
func (c *Client) Verify(ctx context.Context, email string) (*Verdict, error) {
	email = strings.TrimSpace(email)
	if !validation.Email(email).Valid {
		return &Verdict{Reason: "Invalid format"}, nil
	}

	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s?access_key=%s&email=%s&smtp=1&format=1",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrServiceUnavailable, resp.StatusCode)
	}

	var data apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrServiceUnavailable, err)
	}
	if data.Error != nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceUnavailable, data.Error.Info)
	}

	return newVerdict(&data), nil
}

func newVerdict(data *apiResponse) *Verdict {
	v := &Verdict{
		FormatValid: data.FormatValid,
		MXFound:     data.MXFound,
		SMTPCheck:   data.SMTPCheck,
		Score:       data.Score,
		Deliverable: data.FormatValid && data.MXFound && data.SMTPCheck && data.Score >= MinScore,
		Suggestion:  data.DidYouMean,
		User:        data.User,
		Domain:      data.Domain,
		CatchAll:    data.CatchAll,
		Role:        data.Role,
		Disposable:  data.Disposable,
		Free:        data.Free,
	}
	v.Reason = reason(data)
	return v
}

// reason explains the verdict; the checks are ordered so the first failing
// signal wins.
func reason(data *apiResponse) string {
	switch {
	case !data.FormatValid:
		return "Invalid format"
	case !data.MXFound:
		return "MX record not found"
	case !data.SMTPCheck:
		return "SMTP check failed"
	case data.Score < MinScore:
		return "Low quality score"
	default:
		return "Valid"
	}
}
