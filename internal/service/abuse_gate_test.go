package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/lshigami/Quorum/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recaptchaConfig(url string) *config.Config {
	return &config.Config{Recaptcha: config.Recaptcha{
		Secret:    "secret",
		VerifyURL: url,
		Timeout:   200 * time.Millisecond,
		MinScore:  0.5,
	}}
}

func TestRecaptchaVerifier_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "secret", r.PostForm.Get("secret"))
		assert.Equal(t, "tok", r.PostForm.Get("response"))
		assert.Equal(t, "1.2.3.4", r.PostForm.Get("remoteip"))
		w.Write([]byte(`{"success":true,"score":0.9}`))
	}))
	defer srv.Close()

	ok, reason := NewRecaptchaVerifier(recaptchaConfig(srv.URL)).Verify(context.Background(), GateRequest{Token: "tok", ClientIP: "1.2.3.4"})
	assert.True(t, ok)
	assert.Empty(t, reason)
}

func TestRecaptchaVerifier_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		delay   time.Duration
		token   string
		contain string
	}{
		{name: "provider says no", body: `{"success":false,"error-codes":["invalid-input-response"]}`, status: 200, token: "tok", contain: "invalid-input-response"},
		{name: "low score", body: `{"success":true,"score":0.1}`, status: 200, token: "tok", contain: "below"},
		{name: "provider error", body: `oops`, status: 500, token: "tok", contain: "unavailable"},
		{name: "garbage body", body: `not json`, status: 200, token: "tok", contain: "unavailable"},
		{name: "timeout fails closed", body: `{"success":true}`, status: 200, delay: time.Second, token: "tok", contain: "recaptcha"},
		{name: "missing token", body: `{"success":true}`, status: 200, token: "  ", contain: "missing recaptcha token"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.delay > 0 {
					select {
					case <-time.After(tt.delay):
					case <-r.Context().Done():
						return
					}
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			ok, reason := NewRecaptchaVerifier(recaptchaConfig(srv.URL)).Verify(context.Background(), GateRequest{Token: tt.token})
			assert.False(t, ok)
			assert.Contains(t, reason, tt.contain)
		})
	}
}

func TestRecaptchaVerifier_SecretAndDisabled(t *testing.T) {
	cfg := recaptchaConfig("http://127.0.0.1:0")
	cfg.Recaptcha.Secret = ""
	ok, reason := NewRecaptchaVerifier(cfg).Verify(context.Background(), GateRequest{Token: "tok"})
	assert.False(t, ok)
	assert.Contains(t, reason, "not configured")

	cfg.Recaptcha.Disabled = true
	ok, _ = NewRecaptchaVerifier(cfg).Verify(context.Background(), GateRequest{})
	assert.True(t, ok)
}

func newTestLimiter(t *testing.T, scope string, limit int) (*RedisVoteLimiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisVoteLimiter(client, scope, limit, time.Minute), mr
}

func TestRedisVoteLimiter(t *testing.T) {
	limiter, mr := newTestLimiter(t, VoteLimiterScope, 2)
	ctx := context.Background()
	req := GateRequest{SurveyID: 1, ClientIP: "10.0.0.1"}

	for i := 0; i < 2; i++ {
		ok, _ := limiter.Verify(ctx, req)
		require.True(t, ok)
	}
	ok, reason := limiter.Verify(ctx, req)
	assert.False(t, ok)
	assert.Contains(t, reason, "too many submissions")

	ok, _ = limiter.Verify(ctx, GateRequest{SurveyID: 1, ClientIP: "10.0.0.2"})
	assert.True(t, ok, "other clients have their own window")

	mr.FastForward(2 * time.Minute)
	ok, _ = limiter.Verify(ctx, req)
	assert.True(t, ok, "window expired")

	mr.Close()
	ok, reason = limiter.Verify(ctx, GateRequest{SurveyID: 1, ClientIP: "10.0.0.3"})
	assert.False(t, ok)
	assert.Equal(t, "rate limiter unavailable", reason)
}

func TestRedisVoteLimiter_QuotaIsPerSurveyAndScope(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	votes := NewRedisVoteLimiter(client, VoteLimiterScope, 1, time.Minute)
	ratings := NewRedisVoteLimiter(client, RateLimiterScope, 1, time.Minute)
	ctx := context.Background()

	ok, _ := votes.Verify(ctx, GateRequest{SurveyID: 1, ClientIP: "10.0.0.1"})
	require.True(t, ok)
	ok, _ = votes.Verify(ctx, GateRequest{SurveyID: 1, ClientIP: "10.0.0.1"})
	assert.False(t, ok, "second vote on the same survey is over the limit")

	ok, reason := votes.Verify(ctx, GateRequest{SurveyID: 2, ClientIP: "10.0.0.1"})
	assert.True(t, ok, "another survey has its own quota: %s", reason)
	ok, reason = ratings.Verify(ctx, GateRequest{SurveyID: 2, ClientIP: "10.0.0.1"})
	assert.True(t, ok, "ratings do not use the vote quota: %s", reason)

	assert.ElementsMatch(t, []string{
		"quorum:limit:vote:1:10.0.0.1",
		"quorum:limit:vote:2:10.0.0.1",
		"quorum:limit:rate:2:10.0.0.1",
	}, mr.Keys())
}

func TestRedisVoteLimiter_WindowAlwaysHasTTL(t *testing.T) {
	limiter, mr := newTestLimiter(t, VoteLimiterScope, 5)
	req := GateRequest{SurveyID: 7, ClientIP: "10.0.0.9"}
	key := limiter.key(req)

	ok, _ := limiter.Verify(context.Background(), req)
	require.True(t, ok)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(30 * time.Second)
	ok, _ = limiter.Verify(context.Background(), req)
	require.True(t, ok)
	assert.Equal(t, 30*time.Second, mr.TTL(key), "later hits keep the original window")
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "2", got)
}

func TestChainGateStopsAtFirstRejection(t *testing.T) {
	calls := 0
	deny := AbuseGateFunc(func(context.Context, GateRequest) (bool, string) {
		calls++
		return false, "denied"
	})
	never := AbuseGateFunc(func(context.Context, GateRequest) (bool, string) {
		t.Fatal("second gate must not run")
		return true, ""
	})

	ok, reason := NewChainGate(AllowAll, deny, never).Verify(context.Background(), GateRequest{})
	assert.False(t, ok)
	assert.Equal(t, "denied", reason)
	assert.Equal(t, 1, calls)
}
