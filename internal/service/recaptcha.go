package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/flowcoaching/site-server-go/internal/config"
)

const (
	recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	recaptchaMinScore  = 0.5
)

// Verifier checks an anti-automation challenge token. Enabled reports whether
// a secret is configured; when it is not, submissions pass unverified.
type Verifier interface {
	Enabled() bool
	Verify(ctx context.Context, token string) bool
}

type RecaptchaVerifier struct {
	secretKey string
	verifyURL string
	client    *http.Client
}

func NewRecaptchaVerifier(secretKey string) *RecaptchaVerifier {
	return &RecaptchaVerifier{
		secretKey: secretKey,
		verifyURL: recaptchaVerifyURL,
		client: &http.Client{
			Timeout: config.RecaptchaTimeout,
		},
	}
}

func (v *RecaptchaVerifier) Enabled() bool {
	return v.secretKey != ""
}

type recaptchaResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score"`
	ErrorCodes []string `json:"error-codes"`
}

// Verify calls the verification service. Transport errors and malformed
// responses fail open: availability of the lead form wins over strict abuse
// prevention. A reported score below the threshold fails.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) bool {
	form := url.Values{}
	form.Set("secret", v.secretKey)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		log.Error().Err(err).Msg("recaptcha: create request failed, failing open")
		return true
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		log.Error().Err(err).Msg("recaptcha: verification request failed, failing open")
		return true
	}
	defer resp.Body.Close()

	var result recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Error().Err(err).Msg("recaptcha: malformed response, failing open")
		return true
	}

	if !result.Success {
		log.Warn().Strs("errorCodes", result.ErrorCodes).Msg("recaptcha verification failed")
		return false
	}

	if result.Score != nil && *result.Score < recaptchaMinScore {
		log.Warn().Str("score", fmt.Sprintf("%.2f", *result.Score)).Msg("recaptcha score below threshold")
		return false
	}

	return true
}
