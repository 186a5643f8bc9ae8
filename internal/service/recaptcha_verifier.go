package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lshigami/Quorum/config"
	"github.com/rs/zerolog/log"
)

// RecaptchaVerifier checks reCAPTCHA tokens against the siteverify endpoint.
type RecaptchaVerifier struct {
	client    *http.Client
	verifyURL string
	secret    string
	timeout   time.Duration
	minScore  float64
	disabled  bool
}

type recaptchaResponse struct {
	Success    bool     `json:"success"`
	Score      *float64 `json:"score,omitempty"`
	Action     string   `json:"action,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

func NewRecaptchaVerifier(cfg *config.Config) *RecaptchaVerifier {
	timeout := cfg.Recaptcha.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if cfg.Recaptcha.Disabled {
		log.Warn().Msg("RECAPTCHA_DISABLED is set. Vote submissions are not verified.")
	} else if cfg.Recaptcha.Secret == "" {
		log.Warn().Msg("RECAPTCHA_SECRET is not set. Every gated vote will be rejected.")
	}
	return &RecaptchaVerifier{
		client:    &http.Client{Timeout: timeout},
		verifyURL: cfg.Recaptcha.VerifyURL,
		secret:    cfg.Recaptcha.Secret,
		timeout:   timeout,
		minScore:  cfg.Recaptcha.MinScore,
		disabled:  cfg.Recaptcha.Disabled,
	}
}

func (v *RecaptchaVerifier) Verify(ctx context.Context, req GateRequest) (bool, string) {
	token, clientIP := req.Token, req.ClientIP
	if v.disabled {
		return true, ""
	}
	if v.secret == "" {
		return false, "anti-abuse verification is not configured"
	}
	if strings.TrimSpace(token) == "" {
		return false, "missing recaptcha token"
	}

	res, err := v.siteverify(ctx, token, clientIP)
	if err != nil {
		log.Error().Err(err).Str("clientIP", clientIP).Msg("Recaptcha verification failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return false, "recaptcha verification timed out"
		}
		return false, "recaptcha verification unavailable"
	}
	if !res.Success {
		reason := "recaptcha verification failed"
		if len(res.ErrorCodes) > 0 {
			reason += ": " + strings.Join(res.ErrorCodes, ", ")
		}
		return false, reason
	}
	if res.Score != nil && *res.Score < v.minScore {
		log.Warn().Float64("score", *res.Score).Str("clientIP", clientIP).Msg("Recaptcha score below threshold")
		return false, fmt.Sprintf("recaptcha score %.2f is below %.2f", *res.Score, v.minScore)
	}
	return true, ""
}

func (v *RecaptchaVerifier) siteverify(ctx context.Context, token, clientIP string) (*recaptchaResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)
	if clientIP != "" {
		form.Set("remoteip", clientIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build siteverify request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("siteverify request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("siteverify returned status %d", resp.StatusCode)
	}

	var out recaptchaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode siteverify response: %w", err)
	}
	return &out, nil
}
