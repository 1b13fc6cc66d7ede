package payment_fx

import (
	"os"
	"time"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"rodneysbrain/internal/repositories"
	"rodneysbrain/internal/services"
	"rodneysbrain/pkg/mem"
)

const checkoutProviderName = "hosted_checkout"

var Module = fx.Provide(
	provideTransactionRepo,
	provideCheckoutGateway,
	providePlanCatalog,
	provideWebhookEventStore,
	providePaymentService,
)

func provideTransactionRepo(db *gorm.DB) repositories.TransactionRepository {
	return repositories.NewTransactionRepository(db)
}

func provideCheckoutGateway() services.PaymentGateway {
	cfg := services.CheckoutGatewayConfig{
		APIKey:        os.Getenv("CHECKOUT_API_KEY"),
		WebhookSecret: os.Getenv("CHECKOUT_WEBHOOK_SECRET"),
		BaseURL:       os.Getenv("CHECKOUT_BASE_URL"),
		ProviderName:  checkoutProviderName,
	}
	return services.NewHostedCheckoutGateway(cfg)
}

func providePlanCatalog() *services.PlanCatalog {
	return services.DefaultPlanCatalog()
}

func provideWebhookEventStore() mem.WebhookEventStore {
	return mem.NewWebhookEvents(24 * time.Hour)
}

func providePaymentService(
	txnRepo repositories.TransactionRepository,
	accountService services.AccountServiceInterface,
	gateway services.PaymentGateway,
	catalog *services.PlanCatalog,
	seenEvents mem.WebhookEventStore,
	mailService services.IMailService,
) services.PaymentServiceInterface {
	return services.NewPaymentService(
		txnRepo, accountService, gateway, catalog, seenEvents, mailService, checkoutProviderName)
}
