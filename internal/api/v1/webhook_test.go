package v1

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stitchesx/stitchesx/internal/config"
	stripeintegration "github.com/stitchesx/stitchesx/internal/integration/stripe"
	"github.com/stitchesx/stitchesx/internal/logger"
	"github.com/stitchesx/stitchesx/internal/service"
	"github.com/stitchesx/stitchesx/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWebhookSecret = "whsec_test_secret"

func newWebhookTestRouter(t *testing.T) (*gin.Engine, service.BillingService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	cfg.Stripe.SecretKey = "sk_test_key"
	cfg.Stripe.WebhookSecret = testWebhookSecret

	log := logger.NewNop()
	params := service.ServiceParams{
		Logger:        log,
		Config:        cfg,
		StripeClient:  stripeintegration.NewClient(cfg, log),
		InvoiceRepo:   testutil.NewInMemoryInvoiceStore(),
		TemplateRepo:  testutil.NewInMemoryTemplateStore(),
		AnalyticsRepo: testutil.NewInMemoryAnalyticsStore(),
		SettingsRepo:  testutil.NewInMemorySettingsStore(),
		ProfileRepo:   testutil.NewInMemoryProfileStore(),
	}
	billing := service.NewBillingService(params, service.NewAnalyticsService(params))
	payment := service.NewPaymentService(params, billing)

	r := gin.New()
	r.POST("/v1/webhooks/stripe", NewWebhookHandler(payment, log).HandleStripeWebhook)
	return r, billing
}

// signPayload builds a Stripe-Signature header the way Stripe does:
// HMAC-SHA256 over "<timestamp>.<payload>".
func signPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", at.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func postWebhook(r *gin.Engine, payload []byte, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/webhooks/stripe", bytes.NewReader(payload))
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func checkoutCompletedPayload(userID string) []byte {
	return []byte(fmt.Sprintf(`{
		"id": "evt_test",
		"type": "checkout.session.completed",
		"data": {"object": {"id": "cs_test", "mode": "payment", "metadata": {"user_id": %q}}}
	}`, userID))
}

func TestStripeWebhookMissingSignature(t *testing.T) {
	r, _ := newWebhookTestRouter(t)

	w := postWebhook(r, checkoutCompletedPayload(testutil.TestUserID), "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Missing Stripe-Signature header")
}

func TestStripeWebhookInvalidSignature(t *testing.T) {
	r, billing := newWebhookTestRouter(t)

	payload := checkoutCompletedPayload(testutil.TestUserID)
	w := postWebhook(r, payload, signPayload(payload, "whsec_wrong_secret", time.Now()))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid webhook signature or payload")

	// The event must not have been processed
	status, err := billing.CheckPaymentStatus(testutil.SetupContext())
	require.NoError(t, err)
	assert.False(t, status.PaidCurrentInvoice)
}

func TestStripeWebhookStaleTimestampRejected(t *testing.T) {
	r, _ := newWebhookTestRouter(t)

	payload := checkoutCompletedPayload(testutil.TestUserID)
	stale := time.Now().Add(-time.Hour)
	w := postWebhook(r, payload, signPayload(payload, testWebhookSecret, stale))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStripeWebhookValidEventProcessed(t *testing.T) {
	r, billing := newWebhookTestRouter(t)

	payload := checkoutCompletedPayload(testutil.TestUserID)
	w := postWebhook(r, payload, signPayload(payload, testWebhookSecret, time.Now()))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"received":true`)

	status, err := billing.CheckPaymentStatus(testutil.SetupContext())
	require.NoError(t, err)
	assert.True(t, status.PaidCurrentInvoice)
}

func TestStripeWebhookUnhandledEventAcknowledged(t *testing.T) {
	r, _ := newWebhookTestRouter(t)

	payload := []byte(`{"id": "evt_test", "type": "charge.refunded", "data": {"object": {}}}`)
	w := postWebhook(r, payload, signPayload(payload, testWebhookSecret, time.Now()))

	assert.Equal(t, http.StatusOK, w.Code)
}
