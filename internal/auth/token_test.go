package auth

import (
	"strings"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.GenerateToken("sess-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if until := time.Until(expiresAt); until < 55*time.Minute || until > time.Hour {
		t.Fatalf("expiry %v not near the configured ttl", until)
	}

	sid, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if sid != "sess-42" {
		t.Fatalf("session id = %q, want sess-42", sid)
	}
}

func TestParseTokenRejectsBadInput(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	token, _, err := tm.GenerateToken("sess-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"tampered payload", tamper(token)},
		{"wrong secret", mustToken(t, NewTokenManager("other-secret", time.Hour))},
		{"expired", expiredToken(t)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tm.ParseToken(tc.token); err == nil {
				t.Fatal("expected validation failure")
			}
		})
	}
}

func mustToken(t *testing.T, tm *TokenManager) string {
	t.Helper()
	token, _, err := tm.GenerateToken("sess-42")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func expiredToken(t *testing.T) string {
	t.Helper()
	token := mustToken(t, NewTokenManager("test-secret", time.Nanosecond))
	time.Sleep(10 * time.Millisecond)
	return token
}

// tamper flips a character in the payload segment, invalidating the signature.
func tamper(token string) string {
	parts := strings.SplitN(token, ".", 3)
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}
