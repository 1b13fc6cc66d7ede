package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentStatus string

const (
	PaymentStatusInitiated PaymentStatus = "initiated"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusExpired   PaymentStatus = "expired"
)

// Terminal success: reconciliation becomes a no-op past this point.
func (s PaymentStatus) Paid() bool {
	return s == PaymentStatusPaid
}

// PaymentTransaction is the audit record of one checkout attempt. Rows are
// created by checkout-session creation and mutated only by reconciliation;
// they are never deleted.
type PaymentTransaction struct {
	BaseModel
	SessionID string `gorm:"uniqueIndex;size:128"` // gateway checkout session id
	PlanID    string `gorm:"size:64;index"`
	PlanName  string `gorm:"size:120"`

	AmountMinor int64  // e.g. 4700 = $47.00; always from the plan catalog
	Currency    string `gorm:"size:3"`
	Email       string `gorm:"index"`

	Status        string        `gorm:"size:32"` // gateway checkout status (pending/complete/expired)
	PaymentStatus PaymentStatus `gorm:"size:16;index"`

	// Provisioning outcome. Stamped by the reconciler that provisioned; a
	// creating reconciler may overwrite an update-path stamp that raced
	// ahead, so the one-time credential always lands.
	UserCreated       bool
	ExistingUser      bool
	ProvisionedUserID *uuid.UUID `gorm:"index"`
	// One-time credential for a freshly created account. Cleared after it has
	// been surfaced to the payer once.
	TempPassword string `gorm:"size:128"`

	Provider string         `gorm:"size:32;index"`
	Metadata datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}
