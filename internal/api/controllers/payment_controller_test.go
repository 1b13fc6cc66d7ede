package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rodneysbrain/internal/models/request_models"
	"rodneysbrain/internal/models/response_models"
	"rodneysbrain/pkg/utils"
)

type stubPaymentService struct {
	webhookErr    error
	checkoutResp  *response_models.CreateCheckoutResponse
	checkoutErr   error
	statusResp    *response_models.CheckoutStatusResponse
	statusErr     error
	lastBody      []byte
	lastSignature string
}

func (s *stubPaymentService) ListPlans() []response_models.PlanResponse {
	return []response_models.PlanResponse{{ID: "pro", Name: "Pro", Amount: 47, Currency: "usd"}}
}

func (s *stubPaymentService) CreateCheckout(ctx context.Context, request request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error) {
	return s.checkoutResp, s.checkoutErr
}

func (s *stubPaymentService) GetCheckoutStatus(ctx context.Context, sessionID string) (*response_models.CheckoutStatusResponse, error) {
	return s.statusResp, s.statusErr
}

func (s *stubPaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	s.lastBody = body
	s.lastSignature = signature
	return s.webhookErr
}

func paymentTestRouter(svc *stubPaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewPaymentController(svc)

	r := gin.New()
	r.GET("/payments/plans", ctrl.ListPlans)
	r.POST("/payments/checkout/session", ctrl.CreateCheckoutSession)
	r.GET("/payments/checkout/status/:sessionId", ctrl.GetCheckoutStatus)
	r.POST("/webhook/payment", ctrl.HandleWebhook)
	return r
}

func TestListPlansEndpoint(t *testing.T) {
	router := paymentTestRouter(&stubPaymentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/plans", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pro"`)
}

func TestCreateCheckoutEndpoint_BadPayload(t *testing.T) {
	router := paymentTestRouter(&stubPaymentService{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/checkout/session",
		bytes.NewBufferString(`{"plan_id":"pro"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCheckoutEndpoint_InvalidPlan(t *testing.T) {
	router := paymentTestRouter(&stubPaymentService{checkoutErr: utils.ErrInvalidPlan})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/checkout/session",
		bytes.NewBufferString(`{"plan_id":"bogus","email":"a@b.com","origin_url":"https://app.example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCheckoutStatusEndpoint_NotFound(t *testing.T) {
	router := paymentTestRouter(&stubPaymentService{statusErr: utils.ErrTransactionNotFound})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/checkout/status/cs_missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCheckoutStatusEndpoint_UpstreamFailure(t *testing.T) {
	router := paymentTestRouter(&stubPaymentService{statusErr: utils.ErrUpstreamFailure})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/checkout/status/cs_1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestWebhookEndpoint_InvalidSignatureRejected(t *testing.T) {
	svc := &stubPaymentService{webhookErr: utils.ErrInvalidSignature}
	router := paymentTestRouter(svc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/payment", bytes.NewBufferString(`{"id":"evt_1"}`))
	req.Header.Set("X-Checkout-Signature", "sha256=deadbeef")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "sha256=deadbeef", svc.lastSignature)
}

func TestWebhookEndpoint_ProcessingFailureStillAcked(t *testing.T) {
	router := paymentTestRouter(&stubPaymentService{webhookErr: errors.New("db unavailable")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/payment", bytes.NewBufferString(`{"id":"evt_2"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code, "only signature failures are allowed to trigger a retry")
}

func TestWebhookEndpoint_PassesRawBody(t *testing.T) {
	svc := &stubPaymentService{}
	router := paymentTestRouter(svc)

	payload := `{"id":"evt_3","event_type":"checkout.session.completed","session_id":"cs_9"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/webhook/payment", bytes.NewBufferString(payload))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, payload, string(svc.lastBody), "signature check needs the exact raw bytes")
	assert.Contains(t, w.Body.String(), `"received":true`)
}
