package stripe_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	paymentdomain "github.com/fortuna-labs/fortuna/internal/payment/domain"
	"github.com/fortuna-labs/fortuna/internal/payment/stripe"
	"github.com/stretchr/testify/require"
)

func TestCreateIntentEncodesForm(t *testing.T) {
	var gotPath, gotAuth string
	var gotForm map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_1","client_secret":"secret_1","amount":2500,"currency":"usd","status":"requires_payment_method"}`))
	}))
	defer server.Close()

	client := stripe.NewClient("sk_test_abc", stripe.WithBaseURL(server.URL))

	intent, err := client.CreateIntent(context.Background(), paymentdomain.CreateIntentParams{
		Amount:                  2500,
		Currency:                "usd",
		Description:             "order 42",
		ReceiptEmail:            "buyer@example.com",
		Metadata:                map[string]string{"orderId": "ord_42"},
		AutomaticPaymentMethods: true,
	})
	require.NoError(t, err)

	require.Equal(t, "/v1/payment_intents", gotPath)
	require.Equal(t, "Bearer sk_test_abc", gotAuth)
	require.Equal(t, []string{"2500"}, gotForm["amount"])
	require.Equal(t, []string{"usd"}, gotForm["currency"])
	require.Equal(t, []string{"true"}, gotForm["automatic_payment_methods[enabled]"])
	require.Equal(t, []string{"order 42"}, gotForm["description"])
	require.Equal(t, []string{"buyer@example.com"}, gotForm["receipt_email"])
	require.Equal(t, []string{"ord_42"}, gotForm["metadata[orderId]"])

	require.Equal(t, "pi_1", intent.ID)
	require.Equal(t, "secret_1", intent.ClientSecret)
	require.EqualValues(t, 2500, intent.Amount)
	require.Equal(t, "usd", intent.Currency)
	require.Equal(t, "requires_payment_method", intent.Status)
}

func TestCreateIntentOmitsAbsentFields(t *testing.T) {
	var gotForm map[string][]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		gotForm = r.PostForm
		_, _ = w.Write([]byte(`{"id":"pi_1","client_secret":"secret_1","amount":100,"currency":"usd","status":"requires_payment_method"}`))
	}))
	defer server.Close()

	client := stripe.NewClient("sk_test_abc", stripe.WithBaseURL(server.URL))

	_, err := client.CreateIntent(context.Background(), paymentdomain.CreateIntentParams{
		Amount:                  100,
		Currency:                "usd",
		Metadata:                map[string]string{},
		AutomaticPaymentMethods: true,
	})
	require.NoError(t, err)

	require.NotContains(t, gotForm, "description")
	require.NotContains(t, gotForm, "receipt_email")
	require.NotContains(t, gotForm, "metadata[orderId]")
	require.NotContains(t, gotForm, "metadata[userId]")
}

func TestGetIntent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/v1/payment_intents/pi_x", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":"pi_x","client_secret":"secret_x","amount":900,"currency":"eur","status":"succeeded"}`))
	}))
	defer server.Close()

	client := stripe.NewClient("sk_test_abc", stripe.WithBaseURL(server.URL))

	intent, err := client.GetIntent(context.Background(), "pi_x")
	require.NoError(t, err)
	require.Equal(t, "succeeded", intent.Status)
	require.Equal(t, "eur", intent.Currency)
}

func TestErrorEnvelopeIsSurfaced(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","code":"resource_missing","message":"No such payment_intent: 'pi_missing'"}}`))
	}))
	defer server.Close()

	client := stripe.NewClient("sk_test_abc", stripe.WithBaseURL(server.URL))

	_, err := client.GetIntent(context.Background(), "pi_missing")
	require.Error(t, err)
	require.Contains(t, err.Error(), "No such payment_intent")
}

func TestUndecodableErrorFallsBackToStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`upstream unavailable`))
	}))
	defer server.Close()

	client := stripe.NewClient("sk_test_abc", stripe.WithBaseURL(server.URL))

	_, err := client.GetIntent(context.Background(), "pi_x")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected status 502")
}
