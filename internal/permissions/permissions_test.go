package permissions

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/charlesng35/assetdesk/internal/models"
)

func equipmentUser() *models.AuthenticatedUser {
	return &models.AuthenticatedUser{
		ID:          "u1",
		Permissions: models.PermissionSet{"equipments:read", "equipments:update"},
		Roles:       []models.Role{{RoleID: "r1", Name: "Manager"}, {RoleID: "r2", Name: "Auditor"}},
	}
}

func TestPermissionEvaluator(t *testing.T) {
	user := equipmentUser()

	require.True(t, HasPermission(user, "equipments:read"))
	require.False(t, HasPermission(user, "equipments:delete"))
	require.True(t, HasAllPermissions(user, []string{"equipments:read", "equipments:update"}))
	require.False(t, HasAllPermissions(user, []string{"equipments:read", "equipments:delete"}))
	require.True(t, HasAnyPermission(user, []string{"equipments:delete", "equipments:read"}))
	require.False(t, HasAnyPermission(user, []string{}))
	require.False(t, HasAllPermissions(user, nil))
}

func TestRoleEvaluator(t *testing.T) {
	user := equipmentUser()

	require.True(t, HasRole(user, "Manager"))
	require.False(t, HasRole(user, "Admin"))
	require.True(t, HasAnyRole(user, []string{"Admin", "Auditor"}))
	require.True(t, HasAllRoles(user, []string{"Manager", "Auditor"}))
	require.False(t, HasAllRoles(user, []string{"Manager", "Admin"}))
	require.False(t, HasAnyRole(user, nil))
	require.False(t, HasAllRoles(user, []string{}))
}

func TestNilUserIsNeverAuthorized(t *testing.T) {
	require.False(t, HasPermission(nil, "equipments:read"))
	require.False(t, HasAnyRole(nil, []string{"Manager"}))
	require.False(t, IsAuthorized(nil, Requirement{}))
}

func TestIsAuthorized(t *testing.T) {
	user := equipmentUser()

	cases := []struct {
		name string
		req  Requirement
		want bool
	}{
		{"no restriction", Requirement{}, true},
		{"any permission", Requirement{Permissions: []string{"equipments:delete", "equipments:read"}}, true},
		{"all permissions missing one", Requirement{Permissions: []string{"equipments:delete", "equipments:read"}, RequireAll: true}, false},
		{"permission and role", Requirement{Permissions: []string{"equipments:read"}, Roles: []string{"Manager"}}, true},
		{"permission ok role missing", Requirement{Permissions: []string{"equipments:read"}, Roles: []string{"Admin"}}, false},
		{"permission missing short circuits", Requirement{Permissions: []string{"users:read"}, Roles: []string{"Manager"}}, false},
		{"all roles", Requirement{Roles: []string{"Manager", "Auditor"}, RequireAll: true}, true},
		{"all roles missing one", Requirement{Roles: []string{"Manager", "Admin"}, RequireAll: true}, false},
		{"single", Require("equipments:update"), true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsAuthorized(user, tc.req))
		})
	}
}

func TestCatalogContainsWorkflowPermissions(t *testing.T) {
	_, ok := Get("liquidations:approve")
	require.True(t, ok)
	_, ok = Get("permissions:update")
	require.False(t, ok)

	require.Equal(t, []string{"approve", "create", "delete", "read", "reject", "update"}, Actions(ResourceLiquidations))
	require.Contains(t, Resources(), ResourceEquipments)
	require.NoError(t, ValidateDependencies())
	require.Contains(t, IDs(), "maintenances:complete")
}

func TestValidateSubset(t *testing.T) {
	require.NoError(t, ValidateSubset([]string{"equipments:read", "audits:start"}))

	err := ValidateSubset([]string{"equipments:read", "equipments:fly"})
	require.ErrorIs(t, err, ErrUnknownPermission)
	require.ErrorContains(t, err, "equipments:fly")
}

func TestRegisterRejectsInvalidAndDuplicateIDs(t *testing.T) {
	require.ErrorIs(t, Register(&Definition{ID: "no-colon"}), errInvalidID)
	require.ErrorIs(t, Register(&Definition{ID: "a:b:c"}), errInvalidID)
	require.ErrorIs(t, Register(nil), errNilDefinition)

	id := "testing:unique"
	require.NoError(t, Register(&Definition{ID: id}))
	t.Cleanup(func() { removePermission(id) })
	require.ErrorIs(t, Register(&Definition{ID: id}), errDuplicateID)

	require.ErrorIs(t, Register(&Definition{ID: "testing:self", DependsOn: []string{"testing:self"}}), errSelfDependency)
}

func TestResolveDependenciesReturnsTransitiveClosure(t *testing.T) {
	ids := []string{"chain:base", "chain:mid", "chain:top"}
	require.NoError(t, Register(&Definition{ID: ids[0]}))
	require.NoError(t, Register(&Definition{ID: ids[1], DependsOn: []string{ids[0]}}))
	require.NoError(t, Register(&Definition{ID: ids[2], DependsOn: []string{ids[1]}}))
	t.Cleanup(func() {
		for _, id := range ids {
			removePermission(id)
		}
	})

	deps, err := ResolveDependencies(ids[2])
	require.NoError(t, err)
	require.ElementsMatch(t, []string{ids[0], ids[1]}, deps)
}

func TestResolveDependenciesDetectsCycles(t *testing.T) {
	const (
		first  = "cycle:first"
		second = "cycle:second"
	)
	require.NoError(t, Register(&Definition{ID: first, DependsOn: []string{second}}))
	require.NoError(t, Register(&Definition{ID: second, DependsOn: []string{first}}))
	t.Cleanup(func() {
		removePermission(first)
		removePermission(second)
	})

	_, err := ResolveDependencies(first)
	require.ErrorIs(t, err, ErrCircularDependency)
}

func TestWithDependencies(t *testing.T) {
	ids, err := WithDependencies([]string{"equipments:delete", "audits:start"})
	require.NoError(t, err)
	require.Equal(t, []string{"audits:read", "audits:start", "equipments:delete", "equipments:read", "equipments:update"}, ids)

	_, err = WithDependencies([]string{"equipments:fly"})
	require.ErrorIs(t, err, ErrUnknownPermission)
}

func TestSplit(t *testing.T) {
	r, a, ok := Split("liquidations:approve")
	require.True(t, ok)
	require.Equal(t, "liquidations", r)
	require.Equal(t, "approve", a)

	_, _, ok = Split(":approve")
	require.False(t, ok)
}
