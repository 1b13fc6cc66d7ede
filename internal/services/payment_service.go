package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"rodneysbrain/internal/models/db_models"
	"rodneysbrain/internal/models/request_models"
	"rodneysbrain/internal/models/response_models"
	"rodneysbrain/internal/repositories"
	"rodneysbrain/pkg/mem"
	"rodneysbrain/pkg/utils"
)

type PaymentServiceInterface interface {
	ListPlans() []response_models.PlanResponse
	CreateCheckout(ctx context.Context, request request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error)
	GetCheckoutStatus(ctx context.Context, sessionID string) (*response_models.CheckoutStatusResponse, error)
	HandleWebhook(ctx context.Context, body []byte, signature string) error
}

type PaymentService struct {
	txnRepo        repositories.TransactionRepository
	accountService AccountServiceInterface
	gateway        PaymentGateway
	catalog        *PlanCatalog
	seenEvents     mem.WebhookEventStore
	mail           IMailService
	providerName   string
}

func NewPaymentService(
	txnRepo repositories.TransactionRepository,
	accountService AccountServiceInterface,
	gateway PaymentGateway,
	catalog *PlanCatalog,
	seenEvents mem.WebhookEventStore,
	mail IMailService,
	providerName string,
) PaymentServiceInterface {
	return &PaymentService{
		txnRepo:        txnRepo,
		accountService: accountService,
		gateway:        gateway,
		catalog:        catalog,
		seenEvents:     seenEvents,
		mail:           mail,
		providerName:   providerName,
	}
}

func (p *PaymentService) ListPlans() []response_models.PlanResponse {
	return p.catalog.List()
}

// CreateCheckout opens a gateway session for a catalog plan. The pending
// transaction row is written before returning so a webhook racing ahead of
// this response still finds a row to update.
func (p *PaymentService) CreateCheckout(ctx context.Context, request request_models.CreateCheckoutRequest) (*response_models.CreateCheckoutResponse, error) {
	plan, ok := p.catalog.Get(request.PlanID)
	if !ok {
		return nil, utils.ErrInvalidPlan
	}

	origin := strings.TrimRight(request.OriginURL, "/")
	metadata := map[string]string{
		"plan_id":   plan.ID,
		"plan_name": plan.Name,
		"email":     request.Email,
		"origin":    origin,
	}

	session, err := p.gateway.CreateCheckoutSession(ctx, CheckoutParams{
		AmountMinor: plan.AmountMinor,
		Currency:    plan.Currency,
		SuccessURL:  origin + "/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:   origin + "/payment/cancel",
		Metadata:    metadata,
	})
	if err != nil {
		log.Printf("payment: gateway checkout creation failed for plan %s: %v", plan.ID, err)
		return nil, fmt.Errorf("%w: %v", utils.ErrCheckoutFailed, err)
	}

	rawMetadata, _ := json.Marshal(metadata)
	txn := &db_models.PaymentTransaction{
		SessionID:     session.SessionID,
		PlanID:        plan.ID,
		PlanName:      plan.Name,
		AmountMinor:   plan.AmountMinor,
		Currency:      plan.Currency,
		Email:         request.Email,
		Status:        "pending",
		PaymentStatus: db_models.PaymentStatusInitiated,
		Provider:      p.providerName,
		Metadata:      rawMetadata,
	}
	if err := p.txnRepo.Insert(ctx, txn); err != nil {
		log.Printf("payment: failed to record transaction for session %s: %v", session.SessionID, err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.CreateCheckoutResponse{
		SessionID:   session.SessionID,
		CheckoutURL: session.URL,
		PlanID:      plan.ID,
		PlanName:    plan.Name,
		Amount:      plan.Amount(),
		Currency:    plan.Currency,
	}, nil
}

// GetCheckoutStatus is the poll entry point of reconciliation. Once the
// stored payment_status is terminal-success the gateway is no longer
// consulted; the stored row is the answer.
func (p *PaymentService) GetCheckoutStatus(ctx context.Context, sessionID string) (*response_models.CheckoutStatusResponse, error) {
	txn, err := p.txnRepo.FindBySessionID(ctx, sessionID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if txn == nil {
		return nil, utils.ErrTransactionNotFound
	}

	if !txn.PaymentStatus.Paid() {
		state, err := p.gateway.GetCheckoutState(ctx, sessionID)
		if err != nil {
			log.Printf("payment: gateway status query failed for session %s: %v", sessionID, err)
			return nil, fmt.Errorf("%w: %v", utils.ErrUpstreamFailure, err)
		}
		txn, err = p.reconcile(ctx, sessionID, *state)
		if err != nil {
			return nil, err
		}
	}

	resp := p.statusResponse(txn)

	// One-time credential: surfaced on the first status response after
	// provisioning, then wiped.
	if txn.TempPassword != "" {
		resp.TempPassword = txn.TempPassword
		if err := p.txnRepo.ClearTempPassword(ctx, sessionID); err != nil {
			log.Printf("payment: failed to clear temp password for session %s: %v", sessionID, err)
		}
	}

	return resp, nil
}

// HandleWebhook is the gateway-triggered entry point of reconciliation.
// Everything except a bad signature is tolerated: unknown sessions and
// processing failures are logged and acknowledged so the provider does not
// retry forever.
func (p *PaymentService) HandleWebhook(ctx context.Context, body []byte, signature string) error {
	event, err := p.gateway.VerifyWebhook(body, signature)
	if err != nil {
		return err
	}

	if event.EventType != WebhookEventCheckoutCompleted {
		return nil
	}

	if p.seenEvents != nil && p.seenEvents.Seen(event.EventID) {
		log.Printf("payment: duplicate webhook event %s ignored", event.EventID)
		return nil
	}

	txn, err := p.txnRepo.FindBySessionID(ctx, event.SessionID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if txn == nil {
		// Not ours, or the checkout row has not landed yet. Ack without
		// confirming existence either way.
		log.Printf("payment: webhook for unknown session %s", event.SessionID)
		return nil
	}

	if _, err := p.reconcile(ctx, event.SessionID, CheckoutState{
		Status:        "complete",
		PaymentStatus: string(db_models.PaymentStatusPaid),
	}); err != nil {
		return err
	}

	// Remember the event only after a full pass: a transient failure above
	// must leave the gateway's retry of this id able to reconcile.
	if p.seenEvents != nil {
		p.seenEvents.MarkProcessed(event.EventID)
	}
	return nil
}

// reconcile applies a freshly observed gateway state to the stored
// transaction. Both the poll and the webhook path funnel through here;
// safety under their race comes from the two conditional updates plus the
// idempotent provisioner, not from locking.
func (p *PaymentService) reconcile(ctx context.Context, sessionID string, observed CheckoutState) (*db_models.PaymentTransaction, error) {
	paymentStatus := normalizePaymentStatus(observed.PaymentStatus)

	updated, err := p.txnRepo.UpdateObservedStatus(ctx, sessionID, observed.Status, paymentStatus)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if !updated {
		log.Printf("payment: session %s already reconciled to a terminal state", sessionID)
	}

	txn, err := p.txnRepo.FindBySessionID(ctx, sessionID)
	if err != nil || txn == nil {
		return nil, utils.ErrDatabaseError
	}

	if txn.PaymentStatus.Paid() && txn.ProvisionedUserID == nil {
		result, err := p.accountService.ProvisionPaidAccount(ctx, txn.Email, txn.PlanID, txn.PlanName, sessionID)
		if err != nil {
			return nil, err
		}

		if _, err := p.txnRepo.StampProvisioning(ctx, sessionID, result.UserID, result.Created, result.TempPassword); err != nil {
			return nil, utils.ErrDatabaseError
		}
		// Mail keys off the provision result, not the stamp outcome: exactly
		// one caller per email ever sees Created, even when its stamp raced.
		if result.Created {
			p.sendWelcomeMail(txn.Email, txn.PlanName, result.TempPassword)
		}

		txn, err = p.txnRepo.FindBySessionID(ctx, sessionID)
		if err != nil || txn == nil {
			return nil, utils.ErrDatabaseError
		}
	}

	return txn, nil
}

func (p *PaymentService) sendWelcomeMail(email, planName, tempPassword string) {
	if p.mail == nil {
		return
	}
	if err := p.mail.SendWelcomeMail(email, planName, tempPassword); err != nil {
		log.Printf("payment: welcome mail to %s failed: %v", email, err)
	}
}

func (p *PaymentService) statusResponse(txn *db_models.PaymentTransaction) *response_models.CheckoutStatusResponse {
	resp := &response_models.CheckoutStatusResponse{
		SessionID:     txn.SessionID,
		Status:        txn.Status,
		PaymentStatus: string(txn.PaymentStatus),
		PlanID:        txn.PlanID,
		PlanName:      txn.PlanName,
		Amount:        float64(txn.AmountMinor) / 100,
		Currency:      txn.Currency,
		Email:         txn.Email,
		UserCreated:   txn.UserCreated,
		ExistingUser:  txn.ExistingUser,
	}
	if txn.ProvisionedUserID != nil {
		resp.UserID = txn.ProvisionedUserID.String()
	}
	return resp
}

func normalizePaymentStatus(raw string) db_models.PaymentStatus {
	switch strings.ToLower(raw) {
	case "paid", "completed", "complete":
		return db_models.PaymentStatusPaid
	case "failed":
		return db_models.PaymentStatusFailed
	case "expired":
		return db_models.PaymentStatusExpired
	default:
		return db_models.PaymentStatusInitiated
	}
}
