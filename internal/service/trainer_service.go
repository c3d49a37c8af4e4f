package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"fittrack/fitness-api/internal/authz"
	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound        = fmt.Errorf("%w: plan", domain.ErrNotFound)
	ErrEmptyPlan           = fmt.Errorf("%w: a plan needs a name and at least one exercise", domain.ErrValidation)
	ErrPlanAlreadyAssigned = fmt.Errorf("%w: plan is already assigned to this user", domain.ErrConflict)
)

// TrainerService covers the trainer-gated operations: managed users,
// their weight read path, and exercise plan lifecycle. Admin passes the
// same role gates but gets no exemption from ownership or assignment
// checks.
type TrainerService interface {
	ListAssignedUsers(ctx context.Context, caller authz.Claim) ([]domain.Account, error)
	GetAssignedUserWeights(ctx context.Context, caller authz.Claim, userID int64) ([]domain.WeightEntry, error)
	CreatePlan(ctx context.Context, caller authz.Claim, name string, exercises []domain.ExerciseEntry) (*domain.ExercisePlan, error)
	ListPlans(ctx context.Context, caller authz.Claim) ([]domain.ExercisePlan, error)
	DeletePlan(ctx context.Context, caller authz.Claim, planID string) error
	AssignPlan(ctx context.Context, caller authz.Claim, planID string, userID int64) error
	UnassignPlan(ctx context.Context, caller authz.Claim, planID string, userID int64) (bool, error)
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	engine         *authz.Engine
	assignmentRepo repository.AssignmentRepository
	planRepo       repository.PlanRepository
	weightRepo     repository.WeightRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	engine *authz.Engine,
	assignmentRepo repository.AssignmentRepository,
	planRepo repository.PlanRepository,
	weightRepo repository.WeightRepository,
) TrainerService {
	return &trainerService{
		engine:         engine,
		assignmentRepo: assignmentRepo,
		planRepo:       planRepo,
		weightRepo:     weightRepo,
	}
}

// ListAssignedUsers returns the accounts currently assigned to the caller.
func (s *trainerService) ListAssignedUsers(ctx context.Context, caller authz.Claim) ([]domain.Account, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpListAssignedUsers, 0); err != nil {
		return nil, err
	}
	users, err := s.assignmentRepo.ListUsersFor(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// GetAssignedUserWeights reads a managed user's weight entries. The
// engine requires the (caller, user) edge; absent edge means forbidden
// even though the role gate passed.
func (s *trainerService) GetAssignedUserWeights(ctx context.Context, caller authz.Claim, userID int64) ([]domain.WeightEntry, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpReadAssignedWeights, userID); err != nil {
		return nil, err
	}
	return s.weightRepo.ListByOwner(ctx, userID)
}

// CreatePlan creates an exercise plan owned by the caller.
func (s *trainerService) CreatePlan(ctx context.Context, caller authz.Claim, name string, exercises []domain.ExerciseEntry) (*domain.ExercisePlan, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpCreatePlan, 0); err != nil {
		return nil, err
	}

	if name == "" || len(exercises) == 0 {
		return nil, ErrEmptyPlan
	}
	for _, ex := range exercises {
		if ex.Name == "" {
			return nil, fmt.Errorf("%w: every exercise needs a name", domain.ErrValidation)
		}
	}

	plan := &domain.ExercisePlan{
		ID:        uuid.NewString(),
		TrainerID: caller.UserID,
		Name:      name,
		Exercises: exercises,
	}
	if err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// ListPlans returns the caller's plans; for admin the scope widens to
// every plan in the system.
func (s *trainerService) ListPlans(ctx context.Context, caller authz.Claim) ([]domain.ExercisePlan, error) {
	scope, err := s.engine.Authorize(ctx, caller, authz.OpListOwnPlans, 0)
	if err != nil {
		return nil, err
	}
	if scope == authz.ScopeAll {
		return s.planRepo.ListAll(ctx)
	}
	return s.planRepo.ListByCreator(ctx, caller.UserID)
}

// DeletePlan removes a plan the caller owns. A plan owned by another
// trainer is reported as not-found; the caller must not be able to
// confirm it exists.
func (s *trainerService) DeletePlan(ctx context.Context, caller authz.Claim, planID string) error {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpDeleteOwnPlan, 0); err != nil {
		return err
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if err := s.engine.MaskOwnership(caller, plan.TrainerID); err != nil {
		return ErrPlanNotFound
	}

	changed, err := s.planRepo.DeleteByIDAndCreator(ctx, planID, caller.UserID)
	if err != nil {
		return err
	}
	if !changed {
		// Deleted in between the ownership check and here.
		return ErrPlanNotFound
	}
	return nil
}

// AssignPlan links a plan the caller owns to a user in the caller's
// assignment set.
func (s *trainerService) AssignPlan(ctx context.Context, caller authz.Claim, planID string, userID int64) error {
	// The engine checks role and the (caller, user) edge.
	if _, err := s.engine.Authorize(ctx, caller, authz.OpAssignPlan, userID); err != nil {
		return err
	}

	// Ownership gate, masked: someone else's plan looks absent.
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	if err := s.engine.MaskOwnership(caller, plan.TrainerID); err != nil {
		return ErrPlanNotFound
	}

	if err := s.planRepo.AssignToUser(ctx, planID, userID); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return ErrPlanAlreadyAssigned
		}
		return err
	}
	return nil
}

// UnassignPlan removes the plan-to-user edge; absent edge reports no change.
func (s *trainerService) UnassignPlan(ctx context.Context, caller authz.Claim, planID string, userID int64) (bool, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpUnassignPlan, userID); err != nil {
		return false, err
	}

	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, ErrPlanNotFound
		}
		return false, err
	}
	if err := s.engine.MaskOwnership(caller, plan.TrainerID); err != nil {
		return false, ErrPlanNotFound
	}

	return s.planRepo.UnassignFromUser(ctx, planID, userID)
}
