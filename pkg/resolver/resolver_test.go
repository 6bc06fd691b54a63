package resolver_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/arthur-debert/crsops/pkg/catalog"
	"github.com/arthur-debert/crsops/pkg/definitions"
	"github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/filesystem"
	"github.com/arthur-debert/crsops/pkg/locator"
	"github.com/arthur-debert/crsops/pkg/registry"
	"github.com/arthur-debert/crsops/pkg/resolver"
	"github.com/arthur-debert/crsops/pkg/testutil"
	"github.com/arthur-debert/crsops/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	authority string
	op        *types.Operation
	err       error
	calls     []string
}

func (s *stubResolver) Authority() string { return s.authority }

func (s *stubResolver) Resolve(sourceCode, targetCode string) (*types.Operation, error) {
	s.calls = append(s.calls, types.PairCode(sourceCode, targetCode))
	return s.op, s.err
}

func (s *stubResolver) ResolveByReferenceSystems(sourceRef, targetRef string) ([]*types.Operation, error) {
	return nil, s.err
}

func sampleResolver(t *testing.T) *resolver.Resolver {
	t.Helper()

	fsys, dir := testutil.DefinitionsFS(t, "epsg_operations.toml", testutil.SampleDefinitionsTOML)
	r, err := resolver.New(resolver.Config{
		OverrideDir: dir,
		FS:          fsys,
		Catalog:     catalog.NewWithDefaults(),
	})
	require.NoError(t, err)
	return r
}

func emptyResolver(t *testing.T) *resolver.Resolver {
	t.Helper()

	r, err := resolver.New(resolver.Config{FS: filesystem.NewMemory()})
	require.NoError(t, err)
	return r
}

func TestNewValidatesOverrideDir(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		_, err := resolver.New(resolver.Config{
			OverrideDir: "/does/not/exist",
			FS:          filesystem.NewMemory(),
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})

	t.Run("file instead of directory", func(t *testing.T) {
		fsys, dir := testutil.DefinitionsFS(t, "epsg_operations.toml", testutil.SampleDefinitionsTOML)
		_, err := resolver.New(resolver.Config{
			OverrideDir: dir + "/epsg_operations.toml",
			FS:          fsys,
		})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	})
}

func TestResolveDirectHit(t *testing.T) {
	r := sampleResolver(t)

	op, err := r.Resolve("4230", "4326")
	require.NoError(t, err)

	assert.Equal(t, "4230,4326", op.Code)
	assert.Equal(t, "4230", op.Source.Code)
	assert.Equal(t, "4326", op.Target.Code)
	assert.False(t, op.Derived)

	x, y := op.Transform.Apply(testutil.SrcTestPoint[0], testutil.SrcTestPoint[1])
	testutil.AssertPointNear(t, testutil.DstTestPoint[0], testutil.DstTestPoint[1], x, y, testutil.Tolerance)
}

func TestResolveDerivesInverse(t *testing.T) {
	r := sampleResolver(t)

	op, err := r.Resolve("4326", "4230")
	require.NoError(t, err)

	assert.Equal(t, "4326,4230", op.Code)
	assert.Equal(t, "4326", op.Source.Code)
	assert.Equal(t, "4230", op.Target.Code)
	assert.True(t, op.Derived)

	x, y := op.Transform.Apply(testutil.DstTestPoint[0], testutil.DstTestPoint[1])
	testutil.AssertPointNear(t, testutil.SrcTestPoint[0], testutil.SrcTestPoint[1], x, y, testutil.Tolerance)
}

func TestResolveRoundTrip(t *testing.T) {
	r := sampleResolver(t)

	forward, err := r.Resolve("4230", "4326")
	require.NoError(t, err)
	backward, err := r.Resolve("4326", "4230")
	require.NoError(t, err)

	x, y := forward.Transform.Apply(testutil.SrcTestPoint[0], testutil.SrcTestPoint[1])
	x, y = backward.Transform.Apply(x, y)
	testutil.AssertPointNear(t, testutil.SrcTestPoint[0], testutil.SrcTestPoint[1], x, y, testutil.Tolerance)
}

func TestResolveIsIdempotent(t *testing.T) {
	r := sampleResolver(t)

	first, err := r.Resolve("4230", "4326")
	require.NoError(t, err)
	second, err := r.Resolve("4230", "4326")
	require.NoError(t, err)
	assert.Same(t, first, second)

	derived1, err := r.Resolve("4326", "4230")
	require.NoError(t, err)
	derived2, err := r.Resolve("4326", "4230")
	require.NoError(t, err)
	assert.Same(t, derived1.Source, derived2.Source)
	assert.Same(t, derived1.Target, derived2.Target)

	x1, y1 := derived1.Transform.Apply(testutil.DstTestPoint[0], testutil.DstTestPoint[1])
	x2, y2 := derived2.Transform.Apply(testutil.DstTestPoint[0], testutil.DstTestPoint[1])
	assert.Equal(t, x1, x2)
	assert.Equal(t, y1, y2)
}

func TestResolveMissReportsRequestedCode(t *testing.T) {
	r := sampleResolver(t)

	_, err := r.Resolve("4326", "3857")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoSuchCode))
	assert.Equal(t, "4326,3857", errors.AuthorityCode(err))
}

func TestResolveOperation(t *testing.T) {
	r := sampleResolver(t)

	op, err := r.ResolveOperation("4230,4326")
	require.NoError(t, err)
	assert.Equal(t, "4230,4326", op.Code)

	_, err = r.ResolveOperation("nonexistent")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoSuchCode))
	assert.Equal(t, "nonexistent", errors.AuthorityCode(err))

	_, err = r.ResolveOperation("nonexistent,nonexistent")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoSuchCode))
	assert.Equal(t, "nonexistent,nonexistent", errors.AuthorityCode(err))
}

func TestResolveByReferenceSystems(t *testing.T) {
	r := sampleResolver(t)

	t.Run("known pair", func(t *testing.T) {
		ops, err := r.ResolveByReferenceSystems("4230", "4326")
		require.NoError(t, err)
		require.Len(t, ops, 1)
		assert.Equal(t, "4230,4326", ops[0].Code)
	})

	t.Run("authority qualified", func(t *testing.T) {
		ops, err := r.ResolveByReferenceSystems("EPSG:4230", "epsg:4326")
		require.NoError(t, err)
		require.Len(t, ops, 1)
	})

	t.Run("unknown pair is empty not an error", func(t *testing.T) {
		ops, err := r.ResolveByReferenceSystems("nonexistent", "nonexistent")
		require.NoError(t, err)
		assert.Empty(t, ops)
	})

	t.Run("foreign authority", func(t *testing.T) {
		_, err := r.ResolveByReferenceSystems("IGNF:LAMB93", "4326")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidReference))
	})

	t.Run("composite reference", func(t *testing.T) {
		_, err := r.ResolveByReferenceSystems("4230,4326", "4326")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidReference))
	})

	t.Run("empty reference", func(t *testing.T) {
		_, err := r.ResolveByReferenceSystems("", "4326")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidReference))
	})
}

func TestAuthority(t *testing.T) {
	r := emptyResolver(t)
	assert.Equal(t, "EPSG", r.Authority())

	custom, err := resolver.New(resolver.Config{Authority: "ESRI", FS: filesystem.NewMemory()})
	require.NoError(t, err)
	assert.Equal(t, "ESRI", custom.Authority())

	_, rerr := r.Resolve("4230", "4326")
	require.Error(t, rerr)
	assert.Equal(t, "EPSG", r.Authority(), "a missing backing store must not change the identity")
}

func TestMissingDefinitionsFileIsTerminal(t *testing.T) {
	var opens atomic.Int32
	r, err := resolver.New(resolver.Config{
		FS: filesystem.NewMemory(),
		Open: func(loc locator.Location, cat types.Catalog) (*definitions.Compiler, error) {
			opens.Add(1)
			return definitions.Open(loc, cat)
		},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := r.Resolve("4230", "4326")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoSuchCode))
		assert.False(t, errors.HasErrorCode(err, errors.ErrLoadFailed))
	}
	assert.Equal(t, int32(0), opens.Load(), "an absent file must never be opened")
}

func TestLoadFailureIsRetried(t *testing.T) {
	fsys, dir := testutil.DefinitionsFS(t, "epsg_operations.toml", `"4230,4326" = [broken`)

	var opens atomic.Int32
	r, err := resolver.New(resolver.Config{
		OverrideDir: dir,
		FS:          fsys,
		Open: func(loc locator.Location, cat types.Catalog) (*definitions.Compiler, error) {
			opens.Add(1)
			return definitions.Open(loc, cat)
		},
	})
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		_, rerr := r.Resolve("4230", "4326")
		require.Error(t, rerr)
		assert.True(t, errors.HasErrorCode(rerr, errors.ErrLoadFailed),
			"the reported miss must carry the load failure, got %v", rerr)
		assert.Equal(t, int32(i), opens.Load(), "a failed load must be retried on the next call")
	}

	fixed := sampleResolver(t)
	_, err = fixed.Resolve("4230", "4326")
	assert.NoError(t, err)
}

func TestConcurrentFirstCallsLoadOnce(t *testing.T) {
	fsys, dir := testutil.DefinitionsFS(t, "epsg_operations.toml", testutil.SampleDefinitionsTOML)

	var opens atomic.Int32
	r, err := resolver.New(resolver.Config{
		OverrideDir: dir,
		FS:          fsys,
		Catalog:     catalog.NewWithDefaults(),
		Open: func(loc locator.Location, cat types.Catalog) (*definitions.Compiler, error) {
			opens.Add(1)
			return definitions.Open(loc, cat)
		},
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.Resolve("4230", "4326"); err != nil {
				t.Errorf("Resolve() error = %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), opens.Load(), "concurrent first calls must share one load")
}

func TestFallbackDelegation(t *testing.T) {
	t.Run("result passes through", func(t *testing.T) {
		want := &types.Operation{Code: "4326,3857"}
		stub := &stubResolver{authority: "EPSG", op: want}

		r, err := resolver.New(resolver.Config{FS: filesystem.NewMemory(), Fallback: stub})
		require.NoError(t, err)

		got, rerr := r.Resolve("4326", "3857")
		require.NoError(t, rerr)
		assert.Same(t, want, got)
		assert.Equal(t, []string{"4326,3857"}, stub.calls)
	})

	t.Run("error passes through", func(t *testing.T) {
		sentinel := errors.New(errors.ErrInternal, "downstream broke")
		stub := &stubResolver{authority: "EPSG", err: sentinel}

		r, err := resolver.New(resolver.Config{FS: filesystem.NewMemory(), Fallback: stub})
		require.NoError(t, err)

		_, rerr := r.Resolve("4326", "3857")
		assert.Same(t, sentinel, rerr)
	})

	t.Run("local hit skips the fallback", func(t *testing.T) {
		fsys, dir := testutil.DefinitionsFS(t, "epsg_operations.toml", testutil.SampleDefinitionsTOML)
		stub := &stubResolver{authority: "EPSG"}

		r, err := resolver.New(resolver.Config{
			OverrideDir: dir,
			FS:          fsys,
			Catalog:     catalog.NewWithDefaults(),
			Fallback:    stub,
		})
		require.NoError(t, err)

		_, rerr := r.Resolve("4230", "4326")
		require.NoError(t, rerr)
		assert.Empty(t, stub.calls)
	})
}

func TestFallbackFromRegistry(t *testing.T) {
	stub := &stubResolver{authority: "EPSG", op: &types.Operation{Code: "4326,3857"}}
	require.NoError(t, registry.RegisterResolver("test-chain-link", registry.MinimumPriority, stub))
	defer func() { _ = registry.UnregisterResolver("test-chain-link") }()

	r, err := resolver.New(resolver.Config{FS: filesystem.NewMemory()})
	require.NoError(t, err)

	got, rerr := r.Resolve("4326", "3857")
	require.NoError(t, rerr)
	assert.Same(t, stub.op, got)
}
