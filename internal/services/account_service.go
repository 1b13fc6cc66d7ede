package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"rodneysbrain/internal/models/db_models"
	"rodneysbrain/internal/models/request_models"
	"rodneysbrain/internal/models/response_models"
	"rodneysbrain/internal/repositories"
	"rodneysbrain/pkg/utils"
)

// ProvisionResult reports what provisioning did for a payer email.
// TempPassword is set only when a new account was actually created, and only
// for the caller that won the create.
type ProvisionResult struct {
	UserID       uuid.UUID
	Created      bool
	TempPassword string
}

type AccountServiceInterface interface {
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.TokenResponse, error)
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.TokenResponse, error)
	GetProfile(ctx context.Context, accountID uuid.UUID) (*response_models.AccountResponse, error)
	ProvisionPaidAccount(ctx context.Context, email, planID, planName, sessionID string) (*ProvisionResult, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
}

func NewAccountService(accountRepo repositories.AccountRepository) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
	}
}

func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*response_models.TokenResponse, error) {
	existingAccount, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existingAccount != nil {
		return nil, utils.ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         request.DisplayName,
		Email:        request.Email,
		PasswordHash: hashedPassword,
		Role:         "user",
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, utils.ErrEmailAlreadyExists
		}
		return nil, utils.ErrDatabaseError
	}

	return a.tokenResponse(newAccount)
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.TokenResponse, error) {
	account, err := a.accountRepo.FindByEmail(ctx, request.Email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(account.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return a.tokenResponse(account)
}

func (a *AccountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*response_models.AccountResponse, error) {
	account, err := a.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account == nil {
		return nil, utils.ErrAccountNotFound
	}

	resp := accountResponse(account)
	return &resp, nil
}

// ProvisionPaidAccount creates or upgrades the account tied to a paid email.
// Safe to run concurrently for the same email: the unique constraint on
// email is the safety net, and a lost create race falls through to the
// upgrade path. sessionID is recorded on auto-created accounts as the
// checkout that originated them.
func (a *AccountService) ProvisionPaidAccount(ctx context.Context, email, planID, planName, sessionID string) (*ProvisionResult, error) {
	account, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if account != nil {
		return a.upgradePlan(ctx, account, planID, planName)
	}

	tempPassword, err := utils.GenerateTempPassword(12)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	hashedPassword, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	newAccount := &db_models.Account{
		Name:         displayNameFromEmail(email),
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         "user",
		PlanID:       &planID,
		PlanName:     &planName,
	}
	if sessionID != "" {
		newAccount.SourceSessionID = &sessionID
	}

	if err := a.accountRepo.Insert(ctx, newAccount); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent reconciler. The account
			// exists now; treat this as the upgrade path.
			log.Printf("provision: account for %s already created concurrently", email)
			existing, err2 := a.accountRepo.FindByEmail(ctx, email)
			if err2 != nil || existing == nil {
				return nil, utils.ErrDatabaseError
			}
			return a.upgradePlan(ctx, existing, planID, planName)
		}
		return nil, utils.ErrDatabaseError
	}

	return &ProvisionResult{
		UserID:       newAccount.ID,
		Created:      true,
		TempPassword: tempPassword,
	}, nil
}

func (a *AccountService) upgradePlan(ctx context.Context, account *db_models.Account, planID, planName string) (*ProvisionResult, error) {
	if err := a.accountRepo.UpdatePlan(ctx, account.ID, planID, planName); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return &ProvisionResult{UserID: account.ID, Created: false}, nil
}

func (a *AccountService) tokenResponse(account *db_models.Account) (*response_models.TokenResponse, error) {
	token, err := utils.CreateToken(account.ID, account.Role)
	if err != nil {
		return nil, utils.ErrInvalidCredentials
	}

	return &response_models.TokenResponse{
		Token: token,
		User:  accountResponse(account),
	}, nil
}

func accountResponse(account *db_models.Account) response_models.AccountResponse {
	return response_models.AccountResponse{
		ID:        account.ID.String(),
		Email:     account.Email,
		Name:      account.Name,
		PlanID:    account.PlanID,
		PlanName:  account.PlanName,
		CreatedAt: account.CreatedAt,
	}
}

func displayNameFromEmail(email string) string {
	local := email
	if i := strings.Index(email, "@"); i > 0 {
		local = email[:i]
	}
	local = strings.ReplaceAll(local, ".", " ")
	if local == "" {
		return "New User"
	}
	return strings.ToUpper(local[:1]) + local[1:]
}
