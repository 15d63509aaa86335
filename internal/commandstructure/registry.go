package commandstructure

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownCommand is returned by Create for names nobody registered
var ErrUnknownCommand = errors.New("unknown preprocessing command")

// CommandRegistry resolves preprocessing step names from the config file to
// factories. Safe for concurrent use.
type CommandRegistry struct {
	mu        sync.RWMutex
	factories map[string]CommandFactory
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{factories: map[string]CommandFactory{}}
}

// Register binds name to factory. A name can be bound once.
func (r *CommandRegistry) Register(name string, factory CommandFactory) error {
	switch {
	case name == "":
		return errors.New("preprocessing step needs a name")
	case factory == nil:
		return fmt.Errorf("preprocessing step %q has no factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.factories[name]; taken {
		return fmt.Errorf("preprocessing step %q registered twice", name)
	}
	r.factories[name] = factory
	return nil
}

// MustRegister is Register for package init functions; it panics on error.
func (r *CommandRegistry) MustRegister(name string, factory CommandFactory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// Create builds the step called name. Nil params reach the factory as an
// empty map so factories can read keys without a nil check.
func (r *CommandRegistry) Create(name string, params map[string]any) (Command, error) {
	r.mu.RLock()
	factory := r.factories[name]
	r.mu.RUnlock()
	if factory == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	if params == nil {
		params = map[string]any{}
	}
	command, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid parameters: %w", name, err)
	}
	return command, nil
}

func (r *CommandRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.factories[name] != nil
}

// GetRegisteredNames lists the step names alphabetically, for error messages.
func (r *CommandRegistry) GetRegisteredNames() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}

// DefaultRegistry is filled by the init functions of package commands.
var DefaultRegistry = NewCommandRegistry()
