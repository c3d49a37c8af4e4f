package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/fitness-api/internal/authz"
	"fittrack/fitness-api/internal/domain"
)

func adminClaim() authz.Claim {
	return authz.Claim{UserID: 1, Username: "root", Role: domain.RoleAdmin}
}

func newAccountFixture() (*fakeUserRepo, *fakeAssignmentRepo, AccountService) {
	users := newFakeUserRepo(
		domain.Account{ID: 1, Username: "root", Role: domain.RoleAdmin},
		domain.Account{ID: 2, Username: "coach", Role: domain.RoleTrainer},
		domain.Account{ID: 3, Username: "alice", Role: domain.RoleUser},
		domain.Account{ID: 4, Username: "bob", Role: domain.RoleUser},
	)
	assignments := newFakeAssignmentRepo(users)
	engine := authz.NewEngine(assignments)
	return users, assignments, NewAccountService(engine, users, assignments)
}

func TestListAccounts(t *testing.T) {
	_, _, svc := newAccountFixture()
	ctx := context.Background()

	t.Run("admin sees all accounts without hashes", func(t *testing.T) {
		accounts, err := svc.ListAccounts(ctx, adminClaim())
		require.NoError(t, err)
		assert.Len(t, accounts, 4)
		for _, a := range accounts {
			assert.Empty(t, a.PasswordHash)
		}
	})

	t.Run("trainer is forbidden", func(t *testing.T) {
		caller := authz.Claim{UserID: 2, Role: domain.RoleTrainer}
		_, err := svc.ListAccounts(ctx, caller)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestUpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("promotes a user to trainer", func(t *testing.T) {
		users, _, svc := newAccountFixture()
		account, err := svc.UpdateRole(ctx, adminClaim(), 3, domain.RoleTrainer)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleTrainer, account.Role)

		stored, err := users.GetByID(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.RoleTrainer, stored.Role)
	})

	t.Run("rejects an unknown role value", func(t *testing.T) {
		_, _, svc := newAccountFixture()
		_, err := svc.UpdateRole(ctx, adminClaim(), 3, domain.Role("superuser"))
		assert.ErrorIs(t, err, ErrInvalidRole)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("role gate runs before role validation", func(t *testing.T) {
		// A non-admin sending garbage must see forbidden, not validation.
		_, _, svc := newAccountFixture()
		caller := authz.Claim{UserID: 3, Role: domain.RoleUser}
		_, err := svc.UpdateRole(ctx, caller, 4, domain.Role("superuser"))
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing account", func(t *testing.T) {
		_, _, svc := newAccountFixture()
		_, err := svc.UpdateRole(ctx, adminClaim(), 99, domain.RoleTrainer)
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes another account", func(t *testing.T) {
		users, _, svc := newAccountFixture()
		require.NoError(t, svc.DeleteAccount(ctx, adminClaim(), 4))
		_, err := users.GetByID(ctx, 4)
		assert.Error(t, err)
	})

	t.Run("admin cannot delete themselves", func(t *testing.T) {
		_, _, svc := newAccountFixture()
		err := svc.DeleteAccount(ctx, adminClaim(), 1)
		assert.ErrorIs(t, err, ErrSelfDeletion)
	})

	t.Run("non-admin is forbidden even for their own id", func(t *testing.T) {
		// Self-scope does not apply to account deletion.
		_, _, svc := newAccountFixture()
		caller := authz.Claim{UserID: 3, Role: domain.RoleUser}
		err := svc.DeleteAccount(ctx, caller, 3)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestCreateAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a trainer-user edge", func(t *testing.T) {
		_, assignments, svc := newAccountFixture()
		require.NoError(t, svc.CreateAssignment(ctx, adminClaim(), 2, 3))
		ok, err := assignments.IsAssigned(ctx, 2, 3)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("duplicate edge conflicts", func(t *testing.T) {
		_, _, svc := newAccountFixture()
		require.NoError(t, svc.CreateAssignment(ctx, adminClaim(), 2, 3))
		err := svc.CreateAssignment(ctx, adminClaim(), 2, 3)
		assert.ErrorIs(t, err, ErrAssignmentExists)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("trainer side must currently hold the trainer role", func(t *testing.T) {
		_, _, svc := newAccountFixture()
		err := svc.CreateAssignment(ctx, adminClaim(), 3, 4) // id 3 is a plain user
		assert.ErrorIs(t, err, ErrNotATrainer)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("no self-loop", func(t *testing.T) {
		_, _, svc := newAccountFixture()
		err := svc.CreateAssignment(ctx, adminClaim(), 2, 2)
		assert.ErrorIs(t, err, ErrSelfAssignment)
	})

	t.Run("both endpoints must exist", func(t *testing.T) {
		_, _, svc := newAccountFixture()
		assert.ErrorIs(t, svc.CreateAssignment(ctx, adminClaim(), 99, 3), ErrAccountNotFound)
		assert.ErrorIs(t, svc.CreateAssignment(ctx, adminClaim(), 2, 99), ErrAccountNotFound)
	})

	t.Run("trainer cannot create edges", func(t *testing.T) {
		_, _, svc := newAccountFixture()
		caller := authz.Claim{UserID: 2, Role: domain.RoleTrainer}
		err := svc.CreateAssignment(ctx, caller, 2, 3)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestDeleteAssignment(t *testing.T) {
	ctx := context.Background()

	t.Run("removes an existing edge", func(t *testing.T) {
		_, _, svc := newAccountFixture()
		require.NoError(t, svc.CreateAssignment(ctx, adminClaim(), 2, 3))
		changed, err := svc.DeleteAssignment(ctx, adminClaim(), 2, 3)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("absent edge is a no-op", func(t *testing.T) {
		_, _, svc := newAccountFixture()
		changed, err := svc.DeleteAssignment(ctx, adminClaim(), 2, 3)
		require.NoError(t, err)
		assert.False(t, changed)
	})
}
