package webhooks

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HarmonyGroup/harmony-bookme-sub002/pkg/logger"
)

func newWebhookRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	SetupWebhookRoutes(engine.Group("/api/v1"), NewController(svc, logger.GetDefault()))
	return engine
}

func postWebhook(router *gin.Engine, body []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/paystack", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set("x-paystack-signature", signature)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestWebhookEndpoint(t *testing.T) {
	secret := "sk_test_secret"
	confirmer := &fakeConfirmer{applied: false}
	recorder := &fakeRecorder{}
	svc := NewService(secret, confirmer, recorder, &fakeEmitter{}, nil, logger.GetDefault())
	router := newWebhookRouter(svc)

	body := []byte(`{"event":"transfer.success","data":{}}`)

	t.Run("accepted", func(t *testing.T) {
		resp := postWebhook(router, body, sign(secret, body))
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("tampered body rejected without mutation", func(t *testing.T) {
		charge := []byte(`{"event":"charge.success","data":{"reference":"BKM-1-AB"}}`)
		signature := sign(secret, charge)
		tampered := []byte(`{"event":"charge.success","data":{"reference":"BKM-2-CD"}}`)

		resp := postWebhook(router, tampered, signature)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
		assert.Empty(t, confirmer.references, "rejected delivery must not touch payments")
	})

	t.Run("missing signature rejected", func(t *testing.T) {
		resp := postWebhook(router, body, "")
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})

	t.Run("processing failure returns 5xx for redelivery", func(t *testing.T) {
		failing := &failingService{}
		resp := postWebhook(newWebhookRouter(failing), body, "any")
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
	})
}

type failingService struct{}

func (failingService) VerifySignature(body []byte, signature string) bool { return true }

func (failingService) Process(ctx context.Context, body []byte) error {
	return assert.AnError
}

func TestWebhookEndpointUnknownEventAcknowledged(t *testing.T) {
	secret := "sk_test_secret"
	svc := NewService(secret, &fakeConfirmer{}, &fakeRecorder{}, &fakeEmitter{}, nil, logger.GetDefault())
	router := newWebhookRouter(svc)

	body := []byte(`{"event":"customeridentification.success","data":{}}`)
	resp := postWebhook(router, body, sign(secret, body))
	require.Equal(t, http.StatusOK, resp.Code)
}
