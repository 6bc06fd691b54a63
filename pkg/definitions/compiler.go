package definitions

import (
	"sort"
	"strings"
	"sync"

	"github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/locator"
	"github.com/arthur-debert/crsops/pkg/logging"
	"github.com/arthur-debert/crsops/pkg/types"
	"github.com/arthur-debert/crsops/pkg/wkt"
)

// Compiler holds a loaded definitions catalog and compiles code pairs
// into operations. Safe for concurrent use.
type Compiler struct {
	location locator.Location
	catalog  types.Catalog
	defs     map[string]string

	mu       sync.Mutex
	compiled map[string]*types.Operation
}

// Open reads and parses the definitions at the given location. I/O and
// syntax failures surface as LOAD_FAILED errors carrying the cause, so
// callers can tell a broken source from a missing one.
func Open(loc locator.Location, cat types.Catalog) (*Compiler, error) {
	if cat == nil {
		return nil, errors.New(errors.ErrInvalidInput, "definitions compiler requires a catalog")
	}

	data, err := loc.ReadFile()
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLoadFailed, "cannot read definitions at %s", loc.Path())
	}

	defs, err := parse(loc.Path(), data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrLoadFailed, "cannot parse definitions at %s", loc.Path())
	}

	logger := logging.GetLogger("definitions")
	logger.Info().
		Str("location", loc.String()).
		Int("definitions", len(defs)).
		Msg("Loaded operation definitions")

	return &Compiler{
		location: loc,
		catalog:  cat,
		defs:     defs,
		compiled: make(map[string]*types.Operation),
	}, nil
}

// Location returns where the definitions were loaded from.
func (c *Compiler) Location() locator.Location {
	return c.location
}

// Compile resolves the exact ordered code pair against the catalog of
// definitions. A miss is NO_SUCH_CODE; a hit parses the transform WKT on
// first use and returns the memoized operation afterwards.
func (c *Compiler) Compile(sourceCode, targetCode string) (*types.Operation, error) {
	code := types.PairCode(sourceCode, targetCode)

	c.mu.Lock()
	defer c.mu.Unlock()

	if op, ok := c.compiled[code]; ok {
		return op, nil
	}

	text, ok := c.defs[code]
	if !ok {
		return nil, errors.Newf(errors.ErrNoSuchCode, "no operation defined for code %q", code).
			WithDetail("code", code)
	}

	tr, err := wkt.Parse(text)
	if err != nil {
		return nil, err
	}

	source, err := c.catalog.Decode(sourceCode)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidReference,
			"definition %q references an unknown source system", code).
			WithDetail("code", sourceCode)
	}
	target, err := c.catalog.Decode(targetCode)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidReference,
			"definition %q references an unknown target system", code).
			WithDetail("code", targetCode)
	}

	op := &types.Operation{
		Code:      code,
		Source:    source,
		Target:    target,
		Transform: tr,
	}
	c.compiled[code] = op
	return op, nil
}

// Pairs returns the defined composite codes, sorted.
func (c *Compiler) Pairs() []string {
	pairs := make([]string, 0, len(c.defs))
	for code := range c.defs {
		pairs = append(pairs, code)
	}
	sort.Strings(pairs)
	return pairs
}

// Len returns the number of loaded definitions.
func (c *Compiler) Len() int {
	return len(c.defs)
}

// parse picks the catalog format by file extension.
func parse(path string, data []byte) (map[string]string, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xml") {
		return parseXML(data)
	}
	return parseTOML(data)
}
