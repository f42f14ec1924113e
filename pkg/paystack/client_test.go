package paystack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize(t *testing.T) {
	var gotAuth string
	var gotBody InitializeRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		assert.Equal(t, "/transaction/initialize", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": true,
			"message": "Authorization URL created",
			"data": {
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code": "abc123",
				"reference": "BKM-1-AB12CD34"
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_xyz", 5*time.Second)
	resp, err := client.Initialize(context.Background(), InitializeRequest{
		Reference:  "BKM-1-AB12CD34",
		Amount:     100000,
		Email:      "jide@example.com",
		Currency:   "NGN",
		Subaccount: "ACCT_ab12",
		Bearer:     BearerAccount,
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk_test_xyz", gotAuth)
	assert.Equal(t, int64(100000), gotBody.Amount)
	assert.Equal(t, "ACCT_ab12", gotBody.Subaccount)
	assert.Equal(t, "https://checkout.paystack.com/abc123", resp.AuthorizationURL)
	assert.Equal(t, "abc123", resp.AccessCode)
}

func TestInitializeGatewayRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status": false, "message": "Invalid amount"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_xyz", 5*time.Second)
	_, err := client.Initialize(context.Background(), InitializeRequest{Reference: "BKM-1-AB", Amount: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid amount")
}

func TestInitializeFalseStatusOn200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": false, "message": "Duplicate reference"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk_test_xyz", 5*time.Second)
	_, err := client.Initialize(context.Background(), InitializeRequest{Reference: "BKM-1-AB", Amount: 100})
	require.Error(t, err)
}
