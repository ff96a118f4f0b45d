// Package api holds one module per backend resource. Every module reads through the
// shared query cache and, after a successful mutation, invalidates the tags of the
// resources the mutation touched.
package api

import (
	"errors"

	"github.com/charlesng35/assetdesk/internal/apiclient"
	"github.com/charlesng35/assetdesk/internal/querycache"
)

// Cache tag types.
const (
	TagProfile               = "Profile"
	TagUsers                 = "Users"
	TagRoles                 = "Roles"
	TagPermissions           = "Permissions"
	TagPolicies              = "Policies"
	TagEquipment             = "Equipment"
	TagWarehouseItems        = "WarehouseItems"
	TagWarehouseTransactions = "WarehouseTransactions"
	TagAssignments           = "Assignments"
	TagAudits                = "Audits"
	TagMaintenances          = "Maintenances"
	TagLiquidations          = "Liquidations"
)

// Config wires the modules to their backends.
type Config struct {
	// AuthService serves authentication, profile and the access-control resources.
	AuthService *apiclient.Client
	// EquipmentService serves equipment, warehouse and the workflow resources.
	EquipmentService *apiclient.Client
	Refresher        *apiclient.Refresher
	Tokens           Tokens
	User             UserSink
	Cache            *querycache.Cache
	// LoginDefaults fills ipAddress/userAgent when a login request leaves them empty.
	LoginDefaults LoginDefaults
}

// Client aggregates every resource module.
type Client struct {
	Auth         *AuthAPI
	Users        *UsersAPI
	Roles        *RolesAPI
	Permissions  *PermissionsAPI
	Policies     *PoliciesAPI
	Equipment    *EquipmentAPI
	Warehouse    *WarehouseAPI
	Assignments  *AssignmentsAPI
	Audits       *AuditsAPI
	Maintenances *MaintenancesAPI
	Liquidations *LiquidationsAPI

	cache *querycache.Cache
}

// New builds every module.
func New(cfg Config) (*Client, error) {
	if cfg.AuthService == nil {
		return nil, errors.New("api: auth service client is required")
	}
	if cfg.EquipmentService == nil {
		return nil, errors.New("api: equipment service client is required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("api: token store is required")
	}
	cache := cfg.Cache
	if cache == nil {
		cache = querycache.New(querycache.Options{})
	}

	auth := func(base, tag, name string) resource {
		return resource{http: cfg.AuthService, cache: cache, base: base, tag: tag, name: name}
	}
	equipment := func(base, tag, name string) resource {
		return resource{http: cfg.EquipmentService, cache: cache, base: base, tag: tag, name: name}
	}

	return &Client{
		Auth: &AuthAPI{
			http:      cfg.AuthService,
			refresher: cfg.Refresher,
			tokens:    cfg.Tokens,
			user:      cfg.User,
			cache:     cache,
			defaults:  cfg.LoginDefaults.withFallbacks(),
		},
		Users:        &UsersAPI{auth("/api/v1/user-management", TagUsers, "users")},
		Roles:        &RolesAPI{auth("/api/v1/role-management", TagRoles, "roles")},
		Permissions:  &PermissionsAPI{auth("/api/v1/permission-management", TagPermissions, "permissions")},
		Policies:     &PoliciesAPI{auth("/api/v1/policy-management", TagPolicies, "policies")},
		Equipment:    &EquipmentAPI{equipment("/api/equipments", TagEquipment, "equipment")},
		Warehouse:    newWarehouseAPI(cfg.EquipmentService, cache),
		Assignments:  &AssignmentsAPI{equipment("/api/assignments", TagAssignments, "assignments")},
		Audits:       &AuditsAPI{equipment("/api/audits", TagAudits, "audits")},
		Maintenances: &MaintenancesAPI{equipment("/api/maintenances", TagMaintenances, "maintenances")},
		Liquidations: &LiquidationsAPI{equipment("/api/liquidations", TagLiquidations, "liquidations")},
		cache:        cache,
	}, nil
}

// Cache exposes the shared query cache, for example to subscribe to a query key.
func (c *Client) Cache() *querycache.Cache {
	return c.cache
}
