package wiki

import (
	"slices"
	"sync"
)

// Registry holds all registered parse rules.
// Rules run in the order they were first registered.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	byID    map[string]Rule
	byName  map[string]Rule
	aliases map[string]string // alias -> canonical ID
}

// NewRegistry creates an empty rule registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Rule),
		byName:  make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds a rule to the registry.
// If a rule with the same ID already exists, it is replaced in place.
func (r *Registry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byID[rule.ID()]; ok {
		delete(r.byName, old.Name())
	} else {
		r.order = append(r.order, rule.ID())
	}
	r.byID[rule.ID()] = rule
	r.byName[rule.Name()] = rule
}

// RegisterAlias maps an alias to a canonical rule ID.
func (r *Registry) RegisterAlias(alias, ruleID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = ruleID
}

// Get retrieves a rule by ID or name.
func (r *Registry) Get(key string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if rule, ok := r.byID[key]; ok {
		return rule, true
	}
	if rule, ok := r.byName[key]; ok {
		return rule, true
	}
	return nil, false
}

// Resolve returns the canonical ID and rule for a given key.
// The key can be a rule ID, name, or alias.
func (r *Registry) Resolve(key string) (string, Rule, bool) {
	if rule, ok := r.Get(key); ok {
		return rule.ID(), rule, true
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if targetID, ok := r.aliases[key]; ok {
		if rule, ok := r.byID[targetID]; ok {
			return rule.ID(), rule, true
		}
	}
	return "", nil, false
}

// Rules returns all registered rules in parse order.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.order))
	for _, id := range r.order {
		result = append(result, r.byID[id])
	}
	return result
}

// IDs returns all registered rule IDs in parse order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// DefaultRegistry is the global registry for built-in rules.
// Rules register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
