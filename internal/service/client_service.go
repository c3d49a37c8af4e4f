package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fittrack/fitness-api/internal/authz"
	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
	"fittrack/fitness-api/internal/storage"
)

// --- Error Definitions ---
var (
	ErrProfileNotFound = fmt.Errorf("%w: profile", domain.ErrNotFound)
	ErrWorkoutNotFound = fmt.Errorf("%w: workout", domain.ErrNotFound)
	ErrCalorieNotFound = fmt.Errorf("%w: calorie entry", domain.ErrNotFound)
	ErrBadDate         = fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	ErrEmptyWorkout    = fmt.Errorf("%w: a workout needs at least one exercise", domain.ErrValidation)
)

// ClientService covers everything an account does with its own data.
// All operations are self-scoped: the authorization engine allows them
// for any authenticated role, but only against the caller's own rows.
type ClientService interface {
	GetProfile(ctx context.Context, caller authz.Claim) (*domain.Profile, error)
	UpsertProfile(ctx context.Context, caller authz.Claim, attributes map[string]any) (*domain.Profile, error)

	CreateWorkout(ctx context.Context, caller authz.Claim, date string, exercises []domain.ExerciseEntry) (*domain.Workout, error)
	ListWorkouts(ctx context.Context, caller authz.Claim) ([]domain.Workout, error)
	DeleteWorkout(ctx context.Context, caller authz.Claim, workoutID string) error

	UpsertWeight(ctx context.Context, caller authz.Claim, date string, value float64, goal *float64, note string) (*domain.WeightEntry, error)
	ListWeights(ctx context.Context, caller authz.Claim) ([]domain.WeightEntry, error)

	CreateCalorie(ctx context.Context, caller authz.Claim, entry domain.CalorieEntry) (*domain.CalorieEntry, error)
	ListCalories(ctx context.Context, caller authz.Claim) ([]domain.CalorieEntry, error)
	DeleteCalorie(ctx context.Context, caller authz.Claim, entryID int64) error

	// ListAssignedPlans returns every plan assigned to the caller,
	// regardless of which trainer assigned it.
	ListAssignedPlans(ctx context.Context, caller authz.Claim) ([]domain.ExercisePlan, error)

	// ResetData wipes all of the caller's recorded data in one transaction.
	ResetData(ctx context.Context, caller authz.Claim) error
}

// clientService implements the ClientService interface.
type clientService struct {
	engine      *authz.Engine
	profileRepo repository.ProfileRepository
	workoutRepo repository.WorkoutRepository
	weightRepo  repository.WeightRepository
	calorieRepo repository.CalorieRepository
	planRepo    repository.PlanRepository
	resetRepo   repository.DataResetRepository
	fileStorage storage.FileStorage
	logger      *zap.Logger
}

// NewClientService creates a new instance of clientService.
func NewClientService(
	engine *authz.Engine,
	profileRepo repository.ProfileRepository,
	workoutRepo repository.WorkoutRepository,
	weightRepo repository.WeightRepository,
	calorieRepo repository.CalorieRepository,
	planRepo repository.PlanRepository,
	resetRepo repository.DataResetRepository,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) ClientService {
	return &clientService{
		engine:      engine,
		profileRepo: profileRepo,
		workoutRepo: workoutRepo,
		weightRepo:  weightRepo,
		calorieRepo: calorieRepo,
		planRepo:    planRepo,
		resetRepo:   resetRepo,
		fileStorage: fileStorage,
		logger:      logger,
	}
}

// === Profile ===

func (s *clientService) GetProfile(ctx context.Context, caller authz.Claim) (*domain.Profile, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpReadProfile, caller.UserID); err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.GetByOwner(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return profile, nil
}

// UpsertProfile replaces the caller's profile in place. Attributes are
// stored verbatim; the core never looks inside them.
func (s *clientService) UpsertProfile(ctx context.Context, caller authz.Claim, attributes map[string]any) (*domain.Profile, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpUpsertProfile, caller.UserID); err != nil {
		return nil, err
	}
	if attributes == nil {
		attributes = map[string]any{}
	}
	profile := &domain.Profile{OwnerID: caller.UserID, Attributes: attributes}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// === Workouts ===

func (s *clientService) CreateWorkout(ctx context.Context, caller authz.Claim, date string, exercises []domain.ExerciseEntry) (*domain.Workout, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpCreateWorkout, caller.UserID); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, ErrEmptyWorkout
	}

	workout := &domain.Workout{
		ID:        uuid.NewString(),
		OwnerID:   caller.UserID,
		Date:      date,
		Exercises: exercises,
	}
	if err := s.workoutRepo.Create(ctx, workout); err != nil {
		return nil, err
	}
	return workout, nil
}

func (s *clientService) ListWorkouts(ctx context.Context, caller authz.Claim) ([]domain.Workout, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpListWorkouts, caller.UserID); err != nil {
		return nil, err
	}
	return s.workoutRepo.ListByOwner(ctx, caller.UserID)
}

func (s *clientService) DeleteWorkout(ctx context.Context, caller authz.Claim, workoutID string) error {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpDeleteWorkout, caller.UserID); err != nil {
		return err
	}
	changed, err := s.workoutRepo.DeleteByIDAndOwner(ctx, workoutID, caller.UserID)
	if err != nil {
		return err
	}
	if !changed {
		return ErrWorkoutNotFound
	}
	return nil
}

// === Weights ===

// UpsertWeight records the caller's weight for one calendar date,
// replacing any previous entry for that date.
func (s *clientService) UpsertWeight(ctx context.Context, caller authz.Claim, date string, value float64, goal *float64, note string) (*domain.WeightEntry, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpUpsertWeight, caller.UserID); err != nil {
		return nil, err
	}
	if err := validateDate(date); err != nil {
		return nil, err
	}
	if value <= 0 {
		return nil, fmt.Errorf("%w: weight value must be positive", domain.ErrValidation)
	}

	entry := &domain.WeightEntry{
		OwnerID: caller.UserID,
		Date:    date,
		Value:   value,
		Goal:    goal,
		Note:    note,
	}
	if err := s.weightRepo.UpsertByOwnerAndDate(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *clientService) ListWeights(ctx context.Context, caller authz.Claim) ([]domain.WeightEntry, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpListWeights, caller.UserID); err != nil {
		return nil, err
	}
	return s.weightRepo.ListByOwner(ctx, caller.UserID)
}

// === Calories ===

func (s *clientService) CreateCalorie(ctx context.Context, caller authz.Claim, entry domain.CalorieEntry) (*domain.CalorieEntry, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpCreateCalorie, caller.UserID); err != nil {
		return nil, err
	}
	if err := validateDate(entry.Date); err != nil {
		return nil, err
	}

	entry.OwnerID = caller.UserID
	if _, err := s.calorieRepo.Create(ctx, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *clientService) ListCalories(ctx context.Context, caller authz.Claim) ([]domain.CalorieEntry, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpListCalories, caller.UserID); err != nil {
		return nil, err
	}
	return s.calorieRepo.ListByOwner(ctx, caller.UserID)
}

func (s *clientService) DeleteCalorie(ctx context.Context, caller authz.Claim, entryID int64) error {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpDeleteCalorie, caller.UserID); err != nil {
		return err
	}
	changed, err := s.calorieRepo.DeleteByIDAndOwner(ctx, entryID, caller.UserID)
	if err != nil {
		return err
	}
	if !changed {
		return ErrCalorieNotFound
	}
	return nil
}

// === Plans ===

func (s *clientService) ListAssignedPlans(ctx context.Context, caller authz.Claim) ([]domain.ExercisePlan, error) {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpListMyPlans, caller.UserID); err != nil {
		return nil, err
	}
	return s.planRepo.ListAssignedToUser(ctx, caller.UserID)
}

// === Data reset ===

// ResetData deletes all of the caller's recorded data atomically, then
// cleans up the orphaned photo objects. Storage cleanup failures are
// logged, not surfaced: the durable rows are already gone.
func (s *clientService) ResetData(ctx context.Context, caller authz.Claim) error {
	if _, err := s.engine.Authorize(ctx, caller, authz.OpResetData, caller.UserID); err != nil {
		return err
	}

	objectKeys, err := s.resetRepo.ResetOwnerData(ctx, caller.UserID)
	if err != nil {
		return err
	}

	for _, key := range objectKeys {
		if err := s.fileStorage.DeleteObject(ctx, key); err != nil {
			s.logger.Warn("failed to delete photo object after data reset",
				zap.String("objectKey", key), zap.Error(err))
		}
	}
	return nil
}

// validateDate checks the single structural field the core depends on.
func validateDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return ErrBadDate
	}
	return nil
}
