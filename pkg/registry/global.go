package registry

import (
	"sort"
	"sync"

	"github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/types"
)

// TransformFactory builds a transform from the parameters of a
// PARAM_MT definition. The WKT compiler dispatches on the family name.
type TransformFactory func(params map[string]float64) (types.Transform, error)

// Resolver chain priorities. A resolver registered with a higher value is
// consulted before one with a lower value; a resolver's fallback is the
// next entry strictly below its own priority.
const (
	MaximumPriority = 100
	NormalPriority  = 50
	MinimumPriority = 1

	// DefinitionsPriority is where the definitions-file resolver sits:
	// below the normal database-backed factories so a full catalog wins,
	// unless callers register it higher on purpose.
	DefinitionsPriority = NormalPriority - 20
)

// transformFactoryRegistry holds the PARAM_MT family factories.
var transformFactoryRegistry Registry[TransformFactory]

func init() {
	transformFactoryRegistry = New[TransformFactory]()
}

// RegisterTransformFactory registers a factory for a PARAM_MT family name.
func RegisterTransformFactory(name string, factory TransformFactory) error {
	return transformFactoryRegistry.Register(name, factory)
}

// GetTransformFactory retrieves the factory for a PARAM_MT family name.
func GetTransformFactory(name string) (TransformFactory, error) {
	factory, err := transformFactoryRegistry.Get(name)
	if err != nil {
		return nil, errors.Newf(errors.ErrTransformInvalid, "unknown transform family %q", name)
	}
	return factory, nil
}

// TransformFamilies returns the registered family names, sorted.
func TransformFamilies() []string {
	return transformFactoryRegistry.List()
}

// chainEntry is one registered resolver in the priority chain.
type chainEntry struct {
	name     string
	priority int
	resolver types.OperationResolver
}

var (
	chainMu sync.RWMutex
	chain   []chainEntry
)

// RegisterResolver adds a resolver to the priority chain. Names are
// unique; ties on priority break by registration order.
func RegisterResolver(name string, priority int, resolver types.OperationResolver) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "resolver name cannot be empty")
	}
	if resolver == nil {
		return errors.New(errors.ErrInvalidInput, "resolver cannot be nil")
	}

	chainMu.Lock()
	defer chainMu.Unlock()

	for _, entry := range chain {
		if entry.name == name {
			return errors.Newf(errors.ErrAlreadyExists, "resolver '%s' is already registered", name)
		}
	}

	chain = append(chain, chainEntry{name: name, priority: priority, resolver: resolver})
	sort.SliceStable(chain, func(i, j int) bool {
		return chain[i].priority > chain[j].priority
	})
	return nil
}

// UnregisterResolver removes a resolver from the chain by name.
func UnregisterResolver(name string) error {
	chainMu.Lock()
	defer chainMu.Unlock()

	for i, entry := range chain {
		if entry.name == name {
			chain = append(chain[:i], chain[i+1:]...)
			return nil
		}
	}
	return errors.Newf(errors.ErrNotFound, "resolver '%s' not found in chain", name)
}

// NextResolver returns the highest-priority resolver registered strictly
// below the given priority, or nil when the chain is exhausted. This is
// the fallback link a resolver delegates to.
func NextResolver(priority int) types.OperationResolver {
	chainMu.RLock()
	defer chainMu.RUnlock()

	for _, entry := range chain {
		if entry.priority < priority {
			return entry.resolver
		}
	}
	return nil
}

// Resolvers returns the chain's resolvers in priority order.
func Resolvers() []types.OperationResolver {
	chainMu.RLock()
	defer chainMu.RUnlock()

	resolvers := make([]types.OperationResolver, 0, len(chain))
	for _, entry := range chain {
		resolvers = append(resolvers, entry.resolver)
	}
	return resolvers
}
