package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// AuthenticatedUser is the profile returned by /api/v1/user-profile/me.
type AuthenticatedUser struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	IsActive    bool          `json:"isActive"`
	Roles       []Role        `json:"roles"`
	Permissions PermissionSet `json:"permissions"`
	CreatedAt   *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

// FullName joins first and last name, falling back to the email.
func (u *AuthenticatedUser) FullName() string {
	if u == nil {
		return ""
	}
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// RoleNames lists the user's role names in profile order.
func (u *AuthenticatedUser) RoleNames() []string {
	if u == nil {
		return nil
	}
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// User is a row of the user-management list.
type User struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	IsActive    bool       `json:"isActive"`
	Roles       []Role     `json:"roles,omitempty"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Role groups permissions. Names are unique server-side.
type Role struct {
	RoleID      string       `json:"roleId"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	IsActive    bool         `json:"isActive"`
	Permissions []Permission `json:"permissions,omitempty"`
}

// Permission is immutable once created; FullPermission is "resource:action".
type Permission struct {
	PermissionID   string `json:"permissionId"`
	Resource       string `json:"resource"`
	Action         string `json:"action"`
	FullPermission string `json:"fullPermission"`
	Description    string `json:"description,omitempty"`
}

// Canonical returns the "resource:action" string the evaluator compares against.
func (p Permission) Canonical() string {
	if full := strings.TrimSpace(p.FullPermission); full != "" {
		return full
	}
	if p.Resource == "" || p.Action == "" {
		return ""
	}
	return p.Resource + ":" + p.Action
}

// Forms lists every string a check may match this permission by: the full
// permission first, then "resource:action" when the backend sent a different one.
func (p Permission) Forms() []string {
	var forms []string
	if full := strings.TrimSpace(p.FullPermission); full != "" {
		forms = append(forms, full)
	}
	if p.Resource != "" && p.Action != "" {
		if pair := p.Resource + ":" + p.Action; len(forms) == 0 || forms[0] != pair {
			forms = append(forms, pair)
		}
	}
	return forms
}

// PermissionSet holds canonical "resource:action" strings. On the wire the backend
// may send either bare strings or permission objects; both are accepted and reduced
// to the canonical string at decode time.
type PermissionSet []string

// UnmarshalJSON accepts an array whose entries are strings or permission objects.
func (s *PermissionSet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = nil
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("permissions: expected array: %w", err)
	}

	out := make(PermissionSet, 0, len(raw))
	for i, entry := range raw {
		entry = bytes.TrimSpace(entry)
		if len(entry) == 0 {
			continue
		}
		switch entry[0] {
		case '"':
			var str string
			if err := json.Unmarshal(entry, &str); err != nil {
				return fmt.Errorf("permissions[%d]: %w", i, err)
			}
			if str = strings.TrimSpace(str); str != "" {
				out = append(out, str)
			}
		case '{':
			var perm Permission
			if err := json.Unmarshal(entry, &perm); err != nil {
				return fmt.Errorf("permissions[%d]: %w", i, err)
			}
			for _, form := range perm.Forms() {
				if !out.Contains(form) {
					out = append(out, form)
				}
			}
		default:
			return fmt.Errorf("permissions[%d]: unsupported entry %s", i, string(entry))
		}
	}
	*s = out
	return nil
}

// Contains reports whether perm is in the set.
func (s PermissionSet) Contains(perm string) bool {
	for _, p := range s {
		if p == perm {
			return true
		}
	}
	return false
}
