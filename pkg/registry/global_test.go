package registry

import (
	"testing"

	"github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/types"
)

// stubResolver is a trivial OperationResolver for chain tests.
type stubResolver struct {
	authority string
}

func (s *stubResolver) Authority() string { return s.authority }

func (s *stubResolver) Resolve(sourceCode, targetCode string) (*types.Operation, error) {
	return nil, errors.Newf(errors.ErrNoSuchCode, "no operation for code %q", types.PairCode(sourceCode, targetCode))
}

func (s *stubResolver) ResolveByReferenceSystems(sourceRef, targetRef string) ([]*types.Operation, error) {
	return nil, nil
}

func resetChain(t *testing.T) {
	t.Helper()
	for _, name := range []string{"high", "mid", "low"} {
		_ = UnregisterResolver(name)
	}
}

func TestRegisterResolver(t *testing.T) {
	resetChain(t)
	defer resetChain(t)

	if err := RegisterResolver("high", MaximumPriority, &stubResolver{authority: "EPSG"}); err != nil {
		t.Fatalf("RegisterResolver() error = %v", err)
	}

	if err := RegisterResolver("high", NormalPriority, &stubResolver{}); !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
		t.Errorf("duplicate RegisterResolver() should return ErrAlreadyExists, got %v", err)
	}

	if err := RegisterResolver("", NormalPriority, &stubResolver{}); !errors.IsErrorCode(err, errors.ErrInvalidInput) {
		t.Errorf("empty name should return ErrInvalidInput, got %v", err)
	}

	if err := RegisterResolver("nil", NormalPriority, nil); !errors.IsErrorCode(err, errors.ErrInvalidInput) {
		t.Errorf("nil resolver should return ErrInvalidInput, got %v", err)
	}
}

func TestNextResolver(t *testing.T) {
	resetChain(t)
	defer resetChain(t)

	high := &stubResolver{authority: "high"}
	mid := &stubResolver{authority: "mid"}
	low := &stubResolver{authority: "low"}

	MustRegisterResolvers(t, map[string]struct {
		priority int
		resolver types.OperationResolver
	}{
		"high": {MaximumPriority, high},
		"mid":  {NormalPriority, mid},
		"low":  {MinimumPriority, low},
	})

	if got := NextResolver(MaximumPriority); got != mid {
		t.Errorf("NextResolver(max) = %v, want the normal-priority entry", got)
	}

	if got := NextResolver(NormalPriority); got != low {
		t.Errorf("NextResolver(normal) = %v, want the minimum-priority entry", got)
	}

	if got := NextResolver(MinimumPriority); got != nil {
		t.Errorf("NextResolver(min) = %v, want nil at the end of the chain", got)
	}
}

// MustRegisterResolvers registers a set of chain entries, failing the test
// on error.
func MustRegisterResolvers(t *testing.T, entries map[string]struct {
	priority int
	resolver types.OperationResolver
}) {
	t.Helper()
	for name, entry := range entries {
		if err := RegisterResolver(name, entry.priority, entry.resolver); err != nil {
			t.Fatalf("RegisterResolver(%q) error = %v", name, err)
		}
	}
}

func TestTransformFactoryRegistry(t *testing.T) {
	called := false
	factory := func(params map[string]float64) (types.Transform, error) {
		called = true
		return nil, nil
	}

	if err := RegisterTransformFactory("test_family", factory); err != nil {
		t.Fatalf("RegisterTransformFactory() error = %v", err)
	}

	got, err := GetTransformFactory("test_family")
	if err != nil {
		t.Fatalf("GetTransformFactory() error = %v", err)
	}
	_, _ = got(nil)
	if !called {
		t.Error("retrieved factory was not the registered one")
	}

	if _, err := GetTransformFactory("no_such_family"); !errors.IsErrorCode(err, errors.ErrTransformInvalid) {
		t.Errorf("unknown family should return ErrTransformInvalid, got %v", err)
	}
}
