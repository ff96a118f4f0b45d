package permissions

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Definition describes a permission in the catalog. ID is the canonical
// "resource:action" string the evaluator compares against.
type Definition struct {
	ID          string
	Resource    string
	Action      string
	DependsOn   []string
	Description string
}

type registry struct {
	mu          sync.RWMutex
	permissions map[string]*Definition
}

var catalog = &registry{
	permissions: make(map[string]*Definition),
}

var (
	errNilDefinition  = errors.New("permission: nil definition")
	errInvalidID      = errors.New("permission: id must be resource:action")
	errDuplicateID    = errors.New("permission: already registered")
	errSelfDependency = errors.New("permission: cannot depend on itself")
)

// Split breaks a canonical permission string into resource and action.
func Split(id string) (resource, action string, ok bool) {
	resource, action, ok = strings.Cut(strings.TrimSpace(id), ":")
	if !ok || resource == "" || action == "" || strings.Contains(action, ":") {
		return "", "", false
	}
	return resource, action, true
}

// Register adds a definition to the catalog.
func Register(def *Definition) error {
	if def == nil {
		return errNilDefinition
	}

	id := strings.TrimSpace(def.ID)
	resource, action, ok := Split(id)
	if !ok {
		return fmt.Errorf("%w: %q", errInvalidID, def.ID)
	}

	cp := cloneDefinition(def)
	cp.ID = id
	cp.Resource = resource
	cp.Action = action

	depends, err := normaliseIDs(cp.DependsOn, id)
	if err != nil {
		return err
	}
	cp.DependsOn = depends

	catalog.mu.Lock()
	defer catalog.mu.Unlock()

	if _, exists := catalog.permissions[id]; exists {
		return fmt.Errorf("%w: %s", errDuplicateID, id)
	}
	catalog.permissions[id] = cp
	return nil
}

// Get returns a copy of the definition when registered.
func Get(id string) (*Definition, bool) {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	def, ok := catalog.permissions[strings.TrimSpace(id)]
	if !ok {
		return nil, false
	}
	return cloneDefinition(def), true
}

// GetAll returns a copy of every definition keyed by ID.
func GetAll() map[string]*Definition {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	out := make(map[string]*Definition, len(catalog.permissions))
	for id, def := range catalog.permissions {
		out[id] = cloneDefinition(def)
	}
	return out
}

// IDs returns every registered permission string, sorted.
func IDs() []string {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	ids := make([]string, 0, len(catalog.permissions))
	for id := range catalog.permissions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resources returns the distinct resources in the catalog, sorted.
func Resources() []string {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, def := range catalog.permissions {
		seen[def.Resource] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// Actions lists the actions registered for resource, sorted.
func Actions(resource string) []string {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	resource = strings.TrimSpace(resource)
	var actions []string
	for _, def := range catalog.permissions {
		if def.Resource == resource {
			actions = append(actions, def.Action)
		}
	}
	sort.Strings(actions)
	return actions
}

// ValidateDependencies ensures every dependency references a known permission.
func ValidateDependencies() error {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	for _, def := range catalog.permissions {
		for _, dep := range def.DependsOn {
			if _, ok := catalog.permissions[dep]; !ok {
				return fmt.Errorf("permission: %s depends on unknown permission %s", def.ID, dep)
			}
		}
	}
	return nil
}

// ValidateSubset checks that every id is in the catalog. Role edits use it to keep
// a role's permissions within the system catalog.
func ValidateSubset(ids []string) error {
	catalog.mu.RLock()
	defer catalog.mu.RUnlock()

	var unknown []string
	for _, id := range ids {
		if _, ok := catalog.permissions[strings.TrimSpace(id)]; !ok {
			unknown = append(unknown, id)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownPermission, strings.Join(unknown, ", "))
	}
	return nil
}

func cloneDefinition(def *Definition) *Definition {
	if def == nil {
		return nil
	}
	cp := *def
	if len(def.DependsOn) > 0 {
		cp.DependsOn = append([]string(nil), def.DependsOn...)
	}
	return &cp
}

func normaliseIDs(values []string, self string) ([]string, error) {
	if len(values) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{}, len(values))
	var result []string
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if value == self {
			return nil, errSelfDependency
		}
		if _, exists := seen[value]; exists {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result, nil
}

// removePermission deletes a definition. Test helper.
func removePermission(id string) {
	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	delete(catalog.permissions, id)
}
