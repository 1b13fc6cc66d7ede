package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rodneysbrain/internal/models/db_models"
)

type TransactionRepository interface {
	Insert(ctx context.Context, txn *db_models.PaymentTransaction) error
	FindBySessionID(ctx context.Context, sessionID string) (*db_models.PaymentTransaction, error)

	// UpdateObservedStatus writes a freshly observed gateway state, but only
	// while the stored payment_status is non-terminal. Reports whether a row
	// was actually updated; a no-op means another reconciler got there first.
	UpdateObservedStatus(ctx context.Context, sessionID, status string, paymentStatus db_models.PaymentStatus) (bool, error)

	// StampProvisioning records the provisioning outcome. The update path is
	// guarded on provisioned_user_id still being NULL; the creating caller
	// may additionally overwrite an update-path stamp that raced ahead of it,
	// because it holds the only copy of the one-time credential.
	StampProvisioning(ctx context.Context, sessionID string, userID uuid.UUID, created bool, tempPassword string) (bool, error)

	ClearTempPassword(ctx context.Context, sessionID string) error
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{
		db: db,
	}
}

func (r *transactionRepository) Insert(ctx context.Context, txn *db_models.PaymentTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *transactionRepository) FindBySessionID(ctx context.Context, sessionID string) (*db_models.PaymentTransaction, error) {
	var txn db_models.PaymentTransaction
	err := r.db.WithContext(ctx).First(&txn, "session_id = ?", sessionID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &txn, nil
}

func (r *transactionRepository) UpdateObservedStatus(ctx context.Context, sessionID, status string, paymentStatus db_models.PaymentStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.PaymentTransaction{}).
		Where("session_id = ? AND payment_status <> ?", sessionID, db_models.PaymentStatusPaid).
		Updates(map[string]interface{}{
			"status":         status,
			"payment_status": paymentStatus,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *transactionRepository) StampProvisioning(ctx context.Context, sessionID string, userID uuid.UUID, created bool, tempPassword string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&db_models.PaymentTransaction{})
	if created {
		query = query.Where("session_id = ? AND (provisioned_user_id IS NULL OR user_created = false)", sessionID)
	} else {
		query = query.Where("session_id = ? AND provisioned_user_id IS NULL", sessionID)
	}

	res := query.
		Updates(map[string]interface{}{
			"provisioned_user_id": userID,
			"user_created":        created,
			"existing_user":       !created,
			"temp_password":       tempPassword,
		})
	return res.RowsAffected > 0, res.Error
}

func (r *transactionRepository) ClearTempPassword(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).
		Model(&db_models.PaymentTransaction{}).
		Where("session_id = ?", sessionID).
		Update("temp_password", "").Error
}
