package service

import (
	"context"
	"sort"
	"time"

	"fittrack/fitness-api/internal/domain"
	"fittrack/fitness-api/internal/repository"
)

// In-memory fakes for the repository interfaces. Only the behavior the
// services actually depend on is implemented.

type fakeUserRepo struct {
	accounts map[int64]*domain.Account
	nextID   int64
}

func newFakeUserRepo(accounts ...domain.Account) *fakeUserRepo {
	r := &fakeUserRepo{accounts: make(map[int64]*domain.Account), nextID: 1}
	for i := range accounts {
		a := accounts[i]
		r.accounts[a.ID] = &a
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, account *domain.Account) (int64, error) {
	for _, a := range r.accounts {
		if a.Username == account.Username {
			return 0, repository.ErrConflict
		}
	}
	account.ID = r.nextID
	r.nextID++
	cp := *account
	r.accounts[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.Account, error) {
	out := make([]domain.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id int64, role domain.Role) error {
	a, ok := r.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.accounts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.accounts, id)
	return nil
}

type edge struct{ trainerID, userID int64 }

type fakeAssignmentRepo struct {
	edges map[edge]bool
	users *fakeUserRepo
}

func newFakeAssignmentRepo(users *fakeUserRepo, edges ...edge) *fakeAssignmentRepo {
	r := &fakeAssignmentRepo{edges: make(map[edge]bool), users: users}
	for _, e := range edges {
		r.edges[e] = true
	}
	return r
}

func (r *fakeAssignmentRepo) Add(_ context.Context, trainerID, userID int64) error {
	e := edge{trainerID, userID}
	if r.edges[e] {
		return repository.ErrConflict
	}
	r.edges[e] = true
	return nil
}

func (r *fakeAssignmentRepo) Remove(_ context.Context, trainerID, userID int64) (bool, error) {
	e := edge{trainerID, userID}
	if !r.edges[e] {
		return false, nil
	}
	delete(r.edges, e)
	return true, nil
}

func (r *fakeAssignmentRepo) ListUsersFor(ctx context.Context, trainerID int64) ([]domain.Account, error) {
	var out []domain.Account
	for e := range r.edges {
		if e.trainerID != trainerID {
			continue
		}
		if r.users != nil {
			if a, err := r.users.GetByID(ctx, e.userID); err == nil {
				out = append(out, *a)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeAssignmentRepo) IsAssigned(_ context.Context, trainerID, userID int64) (bool, error) {
	return r.edges[edge{trainerID, userID}], nil
}

type planEdge struct {
	planID string
	userID int64
}

type fakePlanRepo struct {
	plans       map[string]*domain.ExercisePlan
	assignments map[planEdge]bool
}

func newFakePlanRepo(plans ...domain.ExercisePlan) *fakePlanRepo {
	r := &fakePlanRepo{plans: make(map[string]*domain.ExercisePlan), assignments: make(map[planEdge]bool)}
	for i := range plans {
		p := plans[i]
		r.plans[p.ID] = &p
	}
	return r
}

func (r *fakePlanRepo) Create(_ context.Context, plan *domain.ExercisePlan) error {
	cp := *plan
	r.plans[cp.ID] = &cp
	return nil
}

func (r *fakePlanRepo) GetByID(_ context.Context, id string) (*domain.ExercisePlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakePlanRepo) ListByCreator(_ context.Context, trainerID int64) ([]domain.ExercisePlan, error) {
	var out []domain.ExercisePlan
	for _, p := range r.plans {
		if p.TrainerID == trainerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePlanRepo) ListAll(_ context.Context) ([]domain.ExercisePlan, error) {
	var out []domain.ExercisePlan
	for _, p := range r.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePlanRepo) DeleteByIDAndCreator(_ context.Context, id string, trainerID int64) (bool, error) {
	p, ok := r.plans[id]
	if !ok || p.TrainerID != trainerID {
		return false, nil
	}
	delete(r.plans, id)
	return true, nil
}

func (r *fakePlanRepo) AssignToUser(_ context.Context, planID string, userID int64) error {
	e := planEdge{planID, userID}
	if r.assignments[e] {
		return repository.ErrConflict
	}
	r.assignments[e] = true
	return nil
}

func (r *fakePlanRepo) UnassignFromUser(_ context.Context, planID string, userID int64) (bool, error) {
	e := planEdge{planID, userID}
	if !r.assignments[e] {
		return false, nil
	}
	delete(r.assignments, e)
	return true, nil
}

func (r *fakePlanRepo) ListAssignedToUser(_ context.Context, userID int64) ([]domain.ExercisePlan, error) {
	var out []domain.ExercisePlan
	for e := range r.assignments {
		if e.userID != userID {
			continue
		}
		if p, ok := r.plans[e.planID]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeWeightRepo struct {
	entries map[int64][]domain.WeightEntry
}

func newFakeWeightRepo() *fakeWeightRepo {
	return &fakeWeightRepo{entries: make(map[int64][]domain.WeightEntry)}
}

func (r *fakeWeightRepo) UpsertByOwnerAndDate(_ context.Context, entry *domain.WeightEntry) error {
	list := r.entries[entry.OwnerID]
	for i := range list {
		if list[i].Date == entry.Date {
			list[i] = *entry
			return nil
		}
	}
	r.entries[entry.OwnerID] = append(list, *entry)
	return nil
}

func (r *fakeWeightRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.WeightEntry, error) {
	return r.entries[ownerID], nil
}

type fakeProfileRepo struct {
	profiles map[int64]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[int64]*domain.Profile)}
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *domain.Profile) error {
	cp := *profile
	r.profiles[cp.OwnerID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByOwner(_ context.Context, ownerID int64) (*domain.Profile, error) {
	p, ok := r.profiles[ownerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProfileRepo) DeleteByOwner(_ context.Context, ownerID int64) error {
	delete(r.profiles, ownerID)
	return nil
}

type fakeWorkoutRepo struct {
	workouts map[string]*domain.Workout
}

func newFakeWorkoutRepo() *fakeWorkoutRepo {
	return &fakeWorkoutRepo{workouts: make(map[string]*domain.Workout)}
}

func (r *fakeWorkoutRepo) Create(_ context.Context, workout *domain.Workout) error {
	cp := *workout
	r.workouts[cp.ID] = &cp
	return nil
}

func (r *fakeWorkoutRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range r.workouts {
		if w.OwnerID == ownerID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) DeleteByIDAndOwner(_ context.Context, id string, ownerID int64) (bool, error) {
	w, ok := r.workouts[id]
	if !ok || w.OwnerID != ownerID {
		return false, nil
	}
	delete(r.workouts, id)
	return true, nil
}

type fakeCalorieRepo struct {
	entries map[int64]*domain.CalorieEntry
	nextID  int64
}

func newFakeCalorieRepo() *fakeCalorieRepo {
	return &fakeCalorieRepo{entries: make(map[int64]*domain.CalorieEntry), nextID: 1}
}

func (r *fakeCalorieRepo) Create(_ context.Context, entry *domain.CalorieEntry) (int64, error) {
	entry.ID = r.nextID
	r.nextID++
	cp := *entry
	r.entries[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeCalorieRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.CalorieEntry, error) {
	var out []domain.CalorieEntry
	for _, e := range r.entries {
		if e.OwnerID == ownerID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeCalorieRepo) DeleteByIDAndOwner(_ context.Context, id, ownerID int64) (bool, error) {
	e, ok := r.entries[id]
	if !ok || e.OwnerID != ownerID {
		return false, nil
	}
	delete(r.entries, id)
	return true, nil
}

// fakeResetRepo mimics the transactional wipe by delegating to the other
// fakes and reporting the photo keys it would orphan.
type fakeResetRepo struct {
	profiles *fakeProfileRepo
	workouts *fakeWorkoutRepo
	weights  *fakeWeightRepo
	calories *fakeCalorieRepo
	keys     map[int64][]string
}

func (r *fakeResetRepo) ResetOwnerData(ctx context.Context, ownerID int64) ([]string, error) {
	_ = r.profiles.DeleteByOwner(ctx, ownerID)
	for id, w := range r.workouts.workouts {
		if w.OwnerID == ownerID {
			delete(r.workouts.workouts, id)
		}
	}
	delete(r.weights.entries, ownerID)
	for id, e := range r.calories.entries {
		if e.OwnerID == ownerID {
			delete(r.calories.entries, id)
		}
	}
	keys := r.keys[ownerID]
	delete(r.keys, ownerID)
	return keys, nil
}

// fakeFileStorage records the object keys it was asked to delete.
type fakeFileStorage struct {
	deleted []string
}

func (s *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (s *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (s *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}
