// Package permissions answers "may this user see this affordance" questions and
// holds the catalog of known permission strings. It is a UI gate; the backend
// enforces authorization independently.
package permissions

import (
	"github.com/charlesng35/assetdesk/internal/models"
	"github.com/charlesng35/assetdesk/pkg/metrics"
)

// Requirement is a composite gate. Empty lists are skipped; RequireAll switches
// both lists from any-of to all-of.
type Requirement struct {
	Permissions []string
	Roles       []string
	RequireAll  bool
}

// HasPermission reports whether user holds perm.
func HasPermission(user *models.AuthenticatedUser, perm string) bool {
	if user == nil || perm == "" {
		return false
	}
	return user.Permissions.Contains(perm)
}

// HasAnyPermission reports whether user holds at least one of perms.
// An empty list is false.
func HasAnyPermission(user *models.AuthenticatedUser, perms []string) bool {
	if user == nil || len(perms) == 0 {
		return false
	}
	for _, p := range perms {
		if HasPermission(user, p) {
			return true
		}
	}
	return false
}

// HasAllPermissions reports whether user holds every one of perms.
// An empty list is false.
func HasAllPermissions(user *models.AuthenticatedUser, perms []string) bool {
	if user == nil || len(perms) == 0 {
		return false
	}
	for _, p := range perms {
		if !HasPermission(user, p) {
			return false
		}
	}
	return true
}

// HasRole reports whether user has a role named role.
func HasRole(user *models.AuthenticatedUser, role string) bool {
	if user == nil || role == "" {
		return false
	}
	for _, r := range user.Roles {
		if r.Name == role {
			return true
		}
	}
	return false
}

// HasAnyRole reports whether user has at least one of roles. An empty list is false.
func HasAnyRole(user *models.AuthenticatedUser, roles []string) bool {
	if user == nil || len(roles) == 0 {
		return false
	}
	for _, r := range roles {
		if HasRole(user, r) {
			return true
		}
	}
	return false
}

// HasAllRoles reports whether user has every one of roles. An empty list is false.
func HasAllRoles(user *models.AuthenticatedUser, roles []string) bool {
	if user == nil || len(roles) == 0 {
		return false
	}
	for _, r := range roles {
		if !HasRole(user, r) {
			return false
		}
	}
	return true
}

// IsAuthorized evaluates req against user. Permissions are checked before roles;
// a requirement with neither list admits any signed-in user.
func IsAuthorized(user *models.AuthenticatedUser, req Requirement) bool {
	ok := isAuthorized(user, req)
	result := "deny"
	if ok {
		result = "allow"
	}
	metrics.PermissionChecks.WithLabelValues(result).Inc()
	return ok
}

func isAuthorized(user *models.AuthenticatedUser, req Requirement) bool {
	if user == nil {
		return false
	}

	if len(req.Permissions) > 0 {
		if req.RequireAll {
			if !HasAllPermissions(user, req.Permissions) {
				return false
			}
		} else if !HasAnyPermission(user, req.Permissions) {
			return false
		}
	}

	if len(req.Roles) > 0 {
		if req.RequireAll {
			return HasAllRoles(user, req.Roles)
		}
		return HasAnyRole(user, req.Roles)
	}
	return true
}

// Require is shorthand for a single-permission requirement.
func Require(perm string) Requirement {
	return Requirement{Permissions: []string{perm}}
}
