package permissions

// Resource names used in permission strings.
const (
	ResourceUsers        = "users"
	ResourceRoles        = "roles"
	ResourcePermissions  = "permissions"
	ResourcePolicies     = "policies"
	ResourceEquipments   = "equipments"
	ResourceWarehouses   = "warehouses"
	ResourceAssignments  = "assignments"
	ResourceAudits       = "audits"
	ResourceMaintenances = "maintenances"
	ResourceLiquidations = "liquidations"
)

// ID joins a resource and action into the canonical permission string.
func ID(resource, action string) string {
	return resource + ":" + action
}

type resourceActions struct {
	resource string
	label    string
	// workflow actions beyond CRUD; each depends on read and update
	workflow []string
	readOnly bool
}

func init() {
	resources := []resourceActions{
		{resource: ResourceUsers, label: "users", workflow: []string{"assign-roles", "activate"}},
		{resource: ResourceRoles, label: "roles", workflow: []string{"assign-permissions"}},
		{resource: ResourcePermissions, label: "permissions", readOnly: true},
		{resource: ResourcePolicies, label: "policies"},
		{resource: ResourceEquipments, label: "equipment", workflow: []string{"change-status"}},
		{resource: ResourceWarehouses, label: "warehouse stock", workflow: []string{"import", "export", "adjust"}},
		{resource: ResourceAssignments, label: "assignments", workflow: []string{"return"}},
		{resource: ResourceAudits, label: "audits", workflow: []string{"start", "complete", "cancel", "record"}},
		{resource: ResourceMaintenances, label: "maintenance tickets", workflow: []string{"assign", "start", "complete", "cancel"}},
		{resource: ResourceLiquidations, label: "liquidations", workflow: []string{"approve", "reject"}},
	}

	for _, r := range resources {
		read := ID(r.resource, "read")
		defs := []*Definition{
			{ID: read, Description: "View " + r.label},
			{ID: ID(r.resource, "create"), DependsOn: []string{read}, Description: "Create " + r.label},
		}
		if !r.readOnly {
			update := ID(r.resource, "update")
			defs = append(defs,
				&Definition{ID: update, DependsOn: []string{read}, Description: "Edit " + r.label},
				&Definition{ID: ID(r.resource, "delete"), DependsOn: []string{read, update}, Description: "Delete " + r.label},
			)
		} else {
			defs = append(defs, &Definition{ID: ID(r.resource, "delete"), DependsOn: []string{read}, Description: "Delete " + r.label})
		}
		for _, action := range r.workflow {
			defs = append(defs, &Definition{
				ID:          ID(r.resource, action),
				DependsOn:   []string{read},
				Description: "Perform " + action + " on " + r.label,
			})
		}

		for _, def := range defs {
			if err := Register(def); err != nil {
				panic(err)
			}
		}
	}
}
