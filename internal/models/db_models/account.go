package db_models

type Account struct {
	BaseModel
	Name         string `gorm:"size:120"`
	Email        string `gorm:"unique"`
	PasswordHash string
	Role         string `gorm:"size:32;default:user"`

	// Entitlement snapshot, set when an account is provisioned or upgraded
	// through a paid checkout.
	PlanID   *string `gorm:"size:64;index"`
	PlanName *string `gorm:"size:120"`

	// Checkout session that auto-created this account, if any.
	SourceSessionID *string `gorm:"size:128"`

	Projects []Project
}
