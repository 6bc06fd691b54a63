// Package catalog resolves authority codes to reference-system objects.
//
// Decode memoizes: every lookup of one code returns the same
// *types.ReferenceSystem pointer, so operations resolved twice bind
// identical endpoint objects. A built-in subset covers the systems the
// shipped definitions reference; callers register anything else.
package catalog

import (
	"strings"
	"sync"

	"github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/types"
)

// DefaultAuthority is the naming authority assumed for bare codes.
const DefaultAuthority = "EPSG"

// Catalog is a thread-safe reference-system catalog.
type Catalog struct {
	mu        sync.RWMutex
	authority string
	systems   map[string]*types.ReferenceSystem
}

// New creates an empty catalog for the given authority.
func New(authority string) *Catalog {
	if authority == "" {
		authority = DefaultAuthority
	}
	return &Catalog{
		authority: authority,
		systems:   make(map[string]*types.ReferenceSystem),
	}
}

// NewWithDefaults creates a catalog pre-loaded with the built-in EPSG
// subset.
func NewWithDefaults() *Catalog {
	c := New(DefaultAuthority)
	for code, entry := range builtins {
		c.systems[code] = &types.ReferenceSystem{
			Code:      code,
			Authority: DefaultAuthority,
			Name:      entry.name,
			Kind:      entry.kind,
		}
	}
	return c
}

var defaultCatalog = NewWithDefaults()

// Default returns the shared catalog with the built-in EPSG subset.
func Default() *Catalog {
	return defaultCatalog
}

// builtins is the reference-system subset the shipped definitions use.
var builtins = map[string]struct {
	name string
	kind types.ReferenceSystemKind
}{
	"4326":  {"WGS 84", types.KindGeographic},
	"4230":  {"ED50", types.KindGeographic},
	"4258":  {"ETRS89", types.KindGeographic},
	"4269":  {"NAD83", types.KindGeographic},
	"4267":  {"NAD27", types.KindGeographic},
	"3857":  {"WGS 84 / Pseudo-Mercator", types.KindProjected},
	"23031": {"ED50 / UTM zone 31N", types.KindProjected},
	"25831": {"ETRS89 / UTM zone 31N", types.KindProjected},
	"32631": {"WGS 84 / UTM zone 31N", types.KindProjected},
}

// Authority returns the catalog's naming authority.
func (c *Catalog) Authority() string {
	return c.authority
}

// Decode resolves a bare ("4326") or authority-qualified ("EPSG:4326")
// code to its reference-system object. Repeated calls for the same code
// return the same pointer.
func (c *Catalog) Decode(code string) (*types.ReferenceSystem, error) {
	bare, err := c.bareCode(code)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	rs, ok := c.systems[bare]
	c.mu.RUnlock()
	if !ok {
		return nil, errors.Newf(errors.ErrNoSuchCode, "no reference system for code %q", code).
			WithDetail("code", code)
	}
	return rs, nil
}

// Register adds a reference system. The code must be new.
func (c *Catalog) Register(rs *types.ReferenceSystem) error {
	if rs == nil || strings.TrimSpace(rs.Code) == "" {
		return errors.New(errors.ErrInvalidInput, "reference system code is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.systems[rs.Code]; exists {
		return errors.Newf(errors.ErrAlreadyExists, "reference system %q is already registered", rs.Code)
	}
	if rs.Authority == "" {
		rs.Authority = c.authority
	}
	c.systems[rs.Code] = rs
	return nil
}

// Codes returns the registered codes, unsorted.
func (c *Catalog) Codes() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	codes := make([]string, 0, len(c.systems))
	for code := range c.systems {
		codes = append(codes, code)
	}
	return codes
}

// bareCode strips a matching authority prefix and validates the code.
func (c *Catalog) bareCode(code string) (string, error) {
	trimmed := strings.TrimSpace(code)
	if prefix, rest, found := strings.Cut(trimmed, ":"); found {
		if !strings.EqualFold(prefix, c.authority) {
			return "", errors.Newf(errors.ErrInvalidReference, "authority %q is not served by this catalog", prefix).
				WithDetail("code", code)
		}
		trimmed = strings.TrimSpace(rest)
	}
	if trimmed == "" {
		return "", errors.Newf(errors.ErrInvalidReference, "empty reference system code").
			WithDetail("code", code)
	}
	return trimmed, nil
}
