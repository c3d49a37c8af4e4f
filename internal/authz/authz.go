// Package authz is the authorization engine: a single decision function
// over (caller claim, operation, target owner) plus the policy that masks
// some denials as not-found. Every handler and service routes access
// decisions through here so the rules live in exactly one place.
package authz

import (
	"context"
	"fmt"

	"fittrack/fitness-api/internal/domain"
)

// Claim is the decoded, verified identity assertion for one request.
// The engine trusts it as-is; the token layer is responsible for having
// verified the signature and expiry before a Claim is constructed.
type Claim struct {
	UserID   int64
	Username string
	Role     domain.Role
}

// Authenticated reports whether the claim identifies a real caller.
// A zero claim means the request carried no (valid) token.
func (c Claim) Authenticated() bool {
	return c.UserID != 0 && c.Role != ""
}

// Operation enumerates everything a caller can ask the service to do.
type Operation string

const (
	// Owner-scoped operations: any authenticated account may perform
	// these against its own resources, regardless of role.
	OpReadProfile   Operation = "read-profile"
	OpUpsertProfile Operation = "upsert-profile"
	OpCreateWorkout Operation = "create-workout"
	OpListWorkouts  Operation = "list-workouts"
	OpDeleteWorkout Operation = "delete-workout"
	OpUpsertWeight  Operation = "upsert-weight"
	OpListWeights   Operation = "list-weights"
	OpCreateCalorie Operation = "create-calorie"
	OpListCalories  Operation = "list-calories"
	OpDeleteCalorie Operation = "delete-calorie"
	OpListMyPlans   Operation = "list-assigned-plans"
	OpUploadPhoto   Operation = "upload-photo"
	OpListPhotos    Operation = "list-photos"
	OpDeletePhoto   Operation = "delete-photo"
	OpResetData     Operation = "reset-data"

	// Trainer operations. Admin passes the role gate for these too, but
	// still has to satisfy ownership and assignment gates like any trainer.
	OpListAssignedUsers   Operation = "list-assigned-users"
	OpCreatePlan          Operation = "create-plan"
	OpListOwnPlans        Operation = "list-own-plans"
	OpDeleteOwnPlan       Operation = "delete-own-plan"
	OpAssignPlan          Operation = "assign-plan-to-user"
	OpUnassignPlan        Operation = "unassign-plan-from-user"
	OpReadAssignedWeights Operation = "read-assigned-user-weights"

	// Admin operations.
	OpListAccounts      Operation = "list-accounts"
	OpUpdateAccountRole Operation = "update-account-role"
	OpDeleteAccount     Operation = "delete-account"
	OpCreateAssignment  Operation = "create-assignment"
	OpDeleteAssignment  Operation = "delete-assignment"
)

// Scope is the implicit filter a list operation must apply once allowed.
type Scope int

const (
	ScopeNone Scope = iota // Not a list, or nothing to scope
	ScopeSelf              // Restrict to rows owned by the caller
	ScopeAssigned          // Restrict to the caller's assigned users
	ScopeAll               // No restriction (admin listings)
)

// AssignmentChecker answers trainer-to-user edge membership queries.
// Satisfied by the assignment repository.
type AssignmentChecker interface {
	IsAssigned(ctx context.Context, trainerID, userID int64) (bool, error)
}

// rule describes how one operation is gated.
type rule struct {
	ownerScoped bool          // Self-scope shortcut applies
	roles       []domain.Role // Role gate; empty means any authenticated caller
	needsEdge   bool          // Requires (caller, target) in the assignment graph
}

var trainerOrAdmin = []domain.Role{domain.RoleTrainer, domain.RoleAdmin}
var adminOnly = []domain.Role{domain.RoleAdmin}

var rules = map[Operation]rule{
	OpReadProfile:   {ownerScoped: true},
	OpUpsertProfile: {ownerScoped: true},
	OpCreateWorkout: {ownerScoped: true},
	OpListWorkouts:  {ownerScoped: true},
	OpDeleteWorkout: {ownerScoped: true},
	OpUpsertWeight:  {ownerScoped: true},
	OpListWeights:   {ownerScoped: true},
	OpCreateCalorie: {ownerScoped: true},
	OpListCalories:  {ownerScoped: true},
	OpDeleteCalorie: {ownerScoped: true},
	OpListMyPlans:   {ownerScoped: true},
	OpUploadPhoto:   {ownerScoped: true},
	OpListPhotos:    {ownerScoped: true},
	OpDeletePhoto:   {ownerScoped: true},
	OpResetData:     {ownerScoped: true},

	OpListAssignedUsers:   {roles: trainerOrAdmin},
	OpCreatePlan:          {roles: trainerOrAdmin},
	OpListOwnPlans:        {roles: trainerOrAdmin},
	OpDeleteOwnPlan:       {roles: trainerOrAdmin},
	OpAssignPlan:          {roles: trainerOrAdmin, needsEdge: true},
	OpUnassignPlan:        {roles: trainerOrAdmin, needsEdge: true},
	OpReadAssignedWeights: {roles: trainerOrAdmin, needsEdge: true},

	OpListAccounts:      {roles: adminOnly},
	OpUpdateAccountRole: {roles: adminOnly},
	OpDeleteAccount:     {roles: adminOnly},
	OpCreateAssignment:  {roles: adminOnly},
	OpDeleteAssignment:  {roles: adminOnly},
}

// Engine evaluates access decisions. It is stateless apart from the
// injected assignment lookup; every decision is recomputed per request
// from the claim and the current graph, never cached.
type Engine struct {
	assignments AssignmentChecker
}

// NewEngine creates an authorization engine backed by the given
// assignment graph.
func NewEngine(assignments AssignmentChecker) *Engine {
	return &Engine{assignments: assignments}
}

// Authorize decides whether caller may perform op against resources owned
// by targetOwnerID, and returns the scope a list operation must apply.
//
// Checks run in a fixed precedence order: authentication, self-scope
// shortcut, role gate, assignment-edge gate. A denial at an earlier stage
// short-circuits the later ones, so a caller can never learn something
// (e.g. that a resource exists) that only a later stage would reveal.
func (e *Engine) Authorize(ctx context.Context, caller Claim, op Operation, targetOwnerID int64) (Scope, error) {
	// 1. Authentication.
	if !caller.Authenticated() {
		return ScopeNone, domain.ErrUnauthenticated
	}

	r, ok := rules[op]
	if !ok {
		return ScopeNone, fmt.Errorf("%w: unknown operation %q", domain.ErrForbidden, op)
	}

	// 2. Self-scope shortcut: acting on your own rows is unconditional.
	if r.ownerScoped {
		if targetOwnerID == caller.UserID {
			return ScopeSelf, nil
		}
		// Owner-scoped kinds have no cross-owner path at all.
		return ScopeNone, fmt.Errorf("%w: not the resource owner", domain.ErrForbidden)
	}

	// 3. Role gate.
	if !roleAllowed(caller.Role, r.roles) {
		return ScopeNone, fmt.Errorf("%w: insufficient role", domain.ErrForbidden)
	}

	// 4. Assignment-edge gate for act-on-specific-user operations.
	if r.needsEdge {
		assigned, err := e.assignments.IsAssigned(ctx, caller.UserID, targetOwnerID)
		if err != nil {
			return ScopeNone, err
		}
		if !assigned {
			return ScopeNone, fmt.Errorf("%w: user is not assigned to you", domain.ErrForbidden)
		}
	}

	return listScope(caller, op), nil
}

// MaskOwnership is the explicit deny-to-not-found policy step. A trainer
// (or admin) touching a plan owned by someone else gets not-found rather
// than forbidden, so the caller cannot confirm the plan exists.
func (e *Engine) MaskOwnership(caller Claim, resourceOwnerID int64) error {
	if caller.UserID == resourceOwnerID {
		return nil
	}
	return domain.ErrNotFound
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// listScope picks the implicit filter for allowed list operations.
func listScope(caller Claim, op Operation) Scope {
	switch op {
	case OpListAccounts:
		return ScopeAll
	case OpListOwnPlans:
		// Admin may browse every plan; trainers only their own.
		if caller.Role == domain.RoleAdmin {
			return ScopeAll
		}
		return ScopeSelf
	case OpListAssignedUsers:
		return ScopeAssigned
	}
	return ScopeNone
}
