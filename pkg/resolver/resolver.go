package resolver

import (
	"io/fs"
	"strings"
	"sync"

	"github.com/arthur-debert/crsops/pkg/catalog"
	"github.com/arthur-debert/crsops/pkg/definitions"
	"github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/filesystem"
	"github.com/arthur-debert/crsops/pkg/locator"
	"github.com/arthur-debert/crsops/pkg/logging"
	"github.com/arthur-debert/crsops/pkg/registry"
	"github.com/arthur-debert/crsops/pkg/types"
)

// DefaultFilename is the definitions file looked up along the search path
// when the config does not name one.
const DefaultFilename = "epsg_operations.toml"

// OpenFunc builds a compiler from a located definitions file.
type OpenFunc func(loc locator.Location, cat types.Catalog) (*definitions.Compiler, error)

// Config carries the construction inputs for a Resolver. The zero value
// is usable: it resolves against the built-in catalog with the default
// filename, searching only the well-known directories.
type Config struct {
	// Authority is the identity reported by Authority(). Defaults to EPSG.
	Authority string

	// OverrideDir is searched before the well-known directories. When set
	// it must name an existing directory.
	OverrideDir string

	// Filename of the definitions file. Defaults to DefaultFilename.
	Filename string

	// FS backs the filesystem layers of the search path. Defaults to the
	// operating system filesystem.
	FS types.FS

	// Catalog decodes the reference-system codes named by definitions.
	// Defaults to the shared built-in catalog.
	Catalog types.Catalog

	// Resources are searched after the filesystem layers, typically
	// embedded defaults.
	Resources []fs.FS

	// Fallback receives lookups this resolver cannot answer. When nil the
	// global resolver chain supplies the next link, if any.
	Fallback types.OperationResolver

	// Priority positions this resolver in the global chain and bounds the
	// fallback discovery. Defaults to registry.DefinitionsPriority.
	Priority int

	// Open builds the backing compiler. Defaults to definitions.Open.
	Open OpenFunc
}

type storeState int

const (
	storeUninitialized storeState = iota
	storeReady
	storeAbsent
)

// Resolver resolves coordinate operations from a definitions file, with
// inverse derivation and fallback delegation. Safe for concurrent use.
type Resolver struct {
	authority   string
	overrideDir string
	filename    string
	fsys        types.FS
	catalog     types.Catalog
	resources   []fs.FS
	fallback    types.OperationResolver
	open        OpenFunc

	mu       sync.Mutex
	state    storeState
	compiler *definitions.Compiler
	located  bool
	loc      locator.Location
	found    bool
}

var _ types.OperationResolver = (*Resolver)(nil)

// New builds a Resolver from cfg, applying defaults and validating the
// override directory.
func New(cfg Config) (*Resolver, error) {
	if cfg.Authority == "" {
		cfg.Authority = catalog.DefaultAuthority
	}
	if cfg.Filename == "" {
		cfg.Filename = DefaultFilename
	}
	if cfg.FS == nil {
		cfg.FS = filesystem.NewOS()
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Priority == 0 {
		cfg.Priority = registry.DefinitionsPriority
	}
	if cfg.Open == nil {
		cfg.Open = definitions.Open
	}

	if cfg.OverrideDir != "" {
		info, err := cfg.FS.Stat(cfg.OverrideDir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid,
				"definitions directory %q is not accessible", cfg.OverrideDir)
		}
		if !info.IsDir() {
			return nil, errors.Newf(errors.ErrConfigValid,
				"definitions path %q is not a directory", cfg.OverrideDir)
		}
	}

	fallback := cfg.Fallback
	if fallback == nil {
		fallback = registry.NextResolver(cfg.Priority)
	}

	return &Resolver{
		authority:   cfg.Authority,
		overrideDir: cfg.OverrideDir,
		filename:    cfg.Filename,
		fsys:        cfg.FS,
		catalog:     cfg.Catalog,
		resources:   cfg.Resources,
		fallback:    fallback,
		open:        cfg.Open,
	}, nil
}

// Authority reports the resolver's fixed identity. It never touches the
// backing store.
func (r *Resolver) Authority() string {
	return r.authority
}

// Resolve returns the operation transforming sourceCode coordinates into
// targetCode coordinates. A definition for the swapped pair yields the
// derived inverse operation. Misses are delegated to the fallback when
// one is configured.
func (r *Resolver) Resolve(sourceCode, targetCode string) (*types.Operation, error) {
	op, err := r.resolveLocal(sourceCode, targetCode)
	if err == nil {
		return op, nil
	}
	if !isMiss(err) {
		return nil, err
	}

	if r.fallback != nil {
		return r.fallback.Resolve(sourceCode, targetCode)
	}

	code := types.PairCode(sourceCode, targetCode)
	return nil, noSuchCode(code, err)
}

// ResolveOperation resolves a composite "source,target" code. Codes that
// do not name a known pair fail with the requested code reported
// verbatim.
func (r *Resolver) ResolveOperation(code string) (*types.Operation, error) {
	idx := strings.Index(code, types.CodeSeparator)
	if idx <= 0 || idx == len(code)-1 {
		return nil, noSuchCode(code, nil)
	}
	return r.Resolve(code[:idx], code[idx+1:])
}

// ResolveByReferenceSystems collects the operations from sourceRef to
// targetRef. References may carry the resolver's authority prefix.
// Unknown but well-formed pairs yield an empty result, not an error.
func (r *Resolver) ResolveByReferenceSystems(sourceRef, targetRef string) ([]*types.Operation, error) {
	source, err := r.bareRef(sourceRef)
	if err != nil {
		return nil, err
	}
	target, err := r.bareRef(targetRef)
	if err != nil {
		return nil, err
	}

	op, err := r.Resolve(source, target)
	if err != nil {
		if errors.IsErrorCode(err, errors.ErrNoSuchCode) {
			return []*types.Operation{}, nil
		}
		return nil, err
	}
	return []*types.Operation{op}, nil
}

func (r *Resolver) resolveLocal(sourceCode, targetCode string) (*types.Operation, error) {
	store, err := r.backingStore()
	if err != nil {
		return nil, err
	}

	op, err := store.Compile(sourceCode, targetCode)
	if err == nil {
		return op, nil
	}
	if !errors.IsErrorCode(err, errors.ErrNoSuchCode) {
		return nil, err
	}

	reverse, rerr := store.Compile(targetCode, sourceCode)
	if rerr != nil {
		if errors.IsErrorCode(rerr, errors.ErrNoSuchCode) {
			return nil, err
		}
		return nil, rerr
	}

	inverted, ierr := reverse.Transform.Inverse()
	if ierr != nil {
		return nil, errors.Wrapf(ierr, errors.ErrNotInvertible,
			"operation %q cannot be derived from %q", types.PairCode(sourceCode, targetCode), reverse.Code)
	}

	log := logging.GetLogger("resolver")
	log.Debug().
		Str("code", reverse.Code).
		Msg("derived inverse operation")

	return &types.Operation{
		Code:      types.PairCode(sourceCode, targetCode),
		Source:    reverse.Target,
		Target:    reverse.Source,
		Transform: inverted,
		Derived:   true,
	}, nil
}

// backingStore returns the compiler, locating and loading the definitions
// file on first use. A missing file is remembered as absent; a load
// failure leaves the store uninitialized so the next call retries.
func (r *Resolver) backingStore() (*definitions.Compiler, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.state {
	case storeReady:
		return r.compiler, nil
	case storeAbsent:
		return nil, errors.Newf(errors.ErrSourceNotFound,
			"no definitions file named %q on the search path", r.filename)
	}

	if !r.located {
		r.loc, r.found = locator.Locate(r.fsys, r.overrideDir, r.filename, r.resources)
		r.located = true
	}
	if !r.found {
		r.state = storeAbsent
		return nil, errors.Newf(errors.ErrSourceNotFound,
			"no definitions file named %q on the search path", r.filename)
	}

	compiler, err := r.open(r.loc, r.catalog)
	if err != nil {
		log := logging.GetLogger("resolver")
		log.Warn().
			Err(err).
			Str("location", r.loc.String()).
			Msg("definitions load failed")
		return nil, err
	}

	r.state = storeReady
	r.compiler = compiler
	return compiler, nil
}

// bareRef strips an authority prefix matching this resolver and validates
// the remainder as a single code.
func (r *Resolver) bareRef(ref string) (string, error) {
	code := strings.TrimSpace(ref)
	if idx := strings.Index(code, ":"); idx >= 0 {
		if !strings.EqualFold(code[:idx], r.authority) {
			return "", errors.Newf(errors.ErrInvalidReference,
				"reference %q does not belong to authority %q", ref, r.authority).
				WithDetail("code", ref)
		}
		code = code[idx+1:]
	}
	if code == "" || strings.Contains(code, types.CodeSeparator) {
		return "", errors.Newf(errors.ErrInvalidReference,
			"reference %q is not a single authority code", ref).
			WithDetail("code", ref)
	}
	return code, nil
}

// isMiss reports whether err is a local outcome the fallback may still
// answer, as opposed to a hard failure such as an invalid reference.
func isMiss(err error) bool {
	return errors.IsErrorCode(err, errors.ErrNoSuchCode) ||
		errors.IsErrorCode(err, errors.ErrSourceNotFound) ||
		errors.IsErrorCode(err, errors.ErrLoadFailed)
}

func noSuchCode(code string, cause error) error {
	if cause != nil && errors.IsErrorCode(cause, errors.ErrLoadFailed) {
		return errors.Wrapf(cause, errors.ErrNoSuchCode,
			"no operation for code %q", code).
			WithDetail("code", code)
	}
	return errors.Newf(errors.ErrNoSuchCode, "no operation for code %q", code).
		WithDetail("code", code)
}
