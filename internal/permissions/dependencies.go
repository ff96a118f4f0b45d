package permissions

import (
	"fmt"
	"sort"
)

var (
	// ErrUnknownPermission indicates a permission lookup failed because it has not been registered.
	ErrUnknownPermission = fmt.Errorf("permission: unknown permission")
	// ErrCircularDependency signals that a dependency graph contains a cycle.
	ErrCircularDependency = fmt.Errorf("permission: circular dependency detected")
)

// ResolveDependencies lists every permission id requires, transitively, in the
// order they must be granted. id itself is not included.
func ResolveDependencies(id string) ([]string, error) {
	catalog := GetAll()
	if _, ok := catalog[id]; !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPermission, id)
	}

	const (
		unseen = iota
		inProgress
		done
	)
	state := make(map[string]int, len(catalog))
	var order []string

	var visit func(string) error
	visit = func(node string) error {
		switch state[node] {
		case done:
			return nil
		case inProgress:
			return fmt.Errorf("%w at %s", ErrCircularDependency, node)
		}
		def, ok := catalog[node]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownPermission, node)
		}
		state[node] = inProgress
		for _, dep := range def.DependsOn {
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[node] = done
		order = append(order, node)
		return nil
	}

	if err := visit(id); err != nil {
		return nil, err
	}
	// id is visited last.
	return order[:len(order)-1], nil
}

// WithDependencies returns ids plus everything they depend on, sorted and de-duplicated.
// The role editor uses it so granting "equipments:update" also grants "equipments:read".
func WithDependencies(ids []string) ([]string, error) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		deps, err := ResolveDependencies(id)
		if err != nil {
			return nil, err
		}
		set[id] = struct{}{}
		for _, dep := range deps {
			set[dep] = struct{}{}
		}
	}

	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
