package webhooks

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret string, body []byte) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "sk_test_secret"
	body := []byte(`{"event":"charge.success","data":{"reference":"BKM-1-AB"}}`)

	t.Run("valid", func(t *testing.T) {
		assert.True(t, VerifySignature(secret, body, sign(secret, body)))
	})

	t.Run("tampered body", func(t *testing.T) {
		signature := sign(secret, body)
		tampered := []byte(`{"event":"charge.success","data":{"reference":"BKM-2-CD"}}`)
		assert.False(t, VerifySignature(secret, tampered, signature))
	})

	t.Run("wrong secret", func(t *testing.T) {
		assert.False(t, VerifySignature(secret, body, sign("other_secret", body)))
	})

	t.Run("missing signature", func(t *testing.T) {
		assert.False(t, VerifySignature(secret, body, ""))
	})

	t.Run("missing secret", func(t *testing.T) {
		assert.False(t, VerifySignature("", body, sign("", body)))
	})
}
