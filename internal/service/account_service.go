package service

import (
	"context"
	"errors"
	"fmt"

	"fittrack/fitness-api/internal/authz"
	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrAccountNotFound  = fmt.Errorf("%w: account", domain.ErrNotFound)
	ErrInvalidRole      = fmt.Errorf("%w: role must be one of user, trainer, admin", domain.ErrValidation)
	ErrSelfDeletion     = fmt.Errorf("%w: cannot delete your own account", domain.ErrValidation)
	ErrNotATrainer      = fmt.Errorf("%w: designated trainer does not hold the trainer role", domain.ErrValidation)
	ErrSelfAssignment   = fmt.Errorf("%w: trainer cannot be assigned to themselves", domain.ErrValidation)
	ErrAssignmentExists = fmt.Errorf("%w: assignment already exists", domain.ErrConflict)
)

// AccountService covers the admin-gated account and assignment operations.
type AccountService interface {
	ListAccounts(ctx context.Context, caller authz.Claim) ([]domain.Account, error)
	UpdateRole(ctx context.Context, caller authz.Claim, accountID int64, role domain.Role) (*domain.Account, error)
	DeleteAccount(ctx context.Context, caller authz.Claim, accountID int64) error
	CreateAssignment(ctx context.Context, caller authz.Claim, trainerID, userID int64) error
	// DeleteAssignment reports whether an edge was actually removed.
	DeleteAssignment(ctx context.Context, caller authz.Claim, trainerID, userID int64) (bool, error)
}

// accountService implements the AccountService interface.
type accountService struct {
	engine         *authz.Engine
	userRepo       repository.UserRepository
	assignmentRepo repository.AssignmentRepository
}

// NewAccountService creates a new instance of accountService.
func NewAccountService(engine *authz.Engine, userRepo repository.UserRepository, assignmentRepo repository.AssignmentRepository) AccountService {
	return &accountService{
		engine:         engine,
		userRepo:       userRepo,
		assignmentRepo: assignmentRepo,
	}
}

// ListAccounts returns every account. Admin only.
func (s *accountService) ListAccounts(ctx context.Context, caller authz.Claim) ([]domain.Account, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpListAccounts, 0); err != nil {
		return nil, err
	}
	accounts, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		accounts[i].PasswordHash = ""
	}
	return accounts, nil
}

// UpdateRole changes an account's role to one of the enumerated values.
func (s *accountService) UpdateRole(ctx context.Context, caller authz.Claim, accountID int64, role domain.Role) (*domain.Account, error) {
	// 1. Role gate first: a non-admin gets forbidden without learning
	// whether the account or the role value is valid.
	if _, err := s.engine.Authorize(ctx, caller, authz.OpUpdateAccountRole, accountID); err != nil {
		return nil, err
	}

	// 2. Role value validity is a validation failure, not authorization.
	if !domain.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	// 3. Apply.
	if err := s.userRepo.UpdateRole(ctx, accountID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	account, err := s.userRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	account.PasswordHash = ""
	return account, nil
}

// DeleteAccount removes an account and, through the store's cascade
// rules, everything it owns plus assignment edges on both ends.
func (s *accountService) DeleteAccount(ctx context.Context, caller authz.Claim, accountID int64) error {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpDeleteAccount, accountID); err != nil {
		return err
	}

	// Business rule, evaluated only after the role gate passed: admins
	// cannot delete themselves.
	if accountID == caller.UserID {
		return ErrSelfDeletion
	}

	if err := s.userRepo.Delete(ctx, accountID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	return nil
}

// CreateAssignment adds a trainer-to-user edge.
func (s *accountService) CreateAssignment(ctx context.Context, caller authz.Claim, trainerID, userID int64) error {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpCreateAssignment, 0); err != nil {
		return err
	}

	if trainerID == userID {
		return ErrSelfAssignment
	}

	// The designated trainer must hold the trainer role right now.
	// Demoting a trainer later leaves existing edges intact; they only
	// become usable again if the account is re-promoted.
	trainer, err := s.userRepo.GetByID(ctx, trainerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}
	if !trainer.IsTrainer() {
		return ErrNotATrainer
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAccountNotFound
		}
		return err
	}

	if err := s.assignmentRepo.Add(ctx, trainerID, userID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrAssignmentExists
		}
		return err
	}
	return nil
}

// DeleteAssignment removes a trainer-to-user edge if present.
func (s *accountService) DeleteAssignment(ctx context.Context, caller authz.Claim, trainerID, userID int64) (bool, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpDeleteAssignment, 0); err != nil {
		return false, err
	}
	return s.assignmentRepo.Remove(ctx, trainerID, userID)
}
