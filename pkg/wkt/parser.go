package wkt

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/registry"
	"github.com/arthur-debert/crsops/pkg/transform"
	"github.com/arthur-debert/crsops/pkg/types"
)

// Keywords of the math-transform grammar.
const (
	kwParamMT   = "PARAM_MT"
	kwConcatMT  = "CONCAT_MT"
	kwInverseMT = "INVERSE_MT"
	kwParameter = "PARAMETER"
)

// Parse compiles a math-transform WKT string into an executable transform.
func Parse(text string) (types.Transform, error) {
	p := &parser{input: text}
	p.skipSpace()
	tr, err := p.parseTransform()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("trailing text after transform at offset %d", p.pos)
	}
	return tr, nil
}

// parser is a small recursive-descent parser over the WKT input.
type parser struct {
	input string
	pos   int
}

func (p *parser) parseTransform() (types.Transform, error) {
	keyword, err := p.readKeyword()
	if err != nil {
		return nil, err
	}

	switch keyword {
	case kwParamMT:
		return p.parseParamMT()
	case kwConcatMT:
		return p.parseConcatMT()
	case kwInverseMT:
		return p.parseInverseMT()
	default:
		return nil, p.errorf("unexpected keyword %q", keyword)
	}
}

// parseParamMT parses PARAM_MT["family", PARAMETER["name", value]...].
// The opening keyword has already been consumed.
func (p *parser) parseParamMT() (types.Transform, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}

	family, err := p.readQuoted()
	if err != nil {
		return nil, err
	}

	params := make(map[string]float64)
	for p.accept(',') {
		keyword, err := p.readKeyword()
		if err != nil {
			return nil, err
		}
		if keyword != kwParameter {
			return nil, p.errorf("expected PARAMETER, got %q", keyword)
		}
		name, value, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		if _, dup := params[name]; dup {
			return nil, p.errorf("duplicate parameter %q", name)
		}
		params[name] = value
	}

	if err := p.expect(']'); err != nil {
		return nil, err
	}

	factory, err := registry.GetTransformFactory(NormalizeFamily(family))
	if err != nil {
		return nil, err
	}
	return factory(params)
}

// parseParameter parses ["name", value] after the PARAMETER keyword.
func (p *parser) parseParameter() (string, float64, error) {
	if err := p.expect('['); err != nil {
		return "", 0, err
	}
	name, err := p.readQuoted()
	if err != nil {
		return "", 0, err
	}
	if err := p.expect(','); err != nil {
		return "", 0, err
	}
	value, err := p.readNumber()
	if err != nil {
		return "", 0, err
	}
	if err := p.expect(']'); err != nil {
		return "", 0, err
	}
	return NormalizeFamily(name), value, nil
}

func (p *parser) parseConcatMT() (types.Transform, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}

	var steps []types.Transform
	for {
		step, err := p.parseTransform()
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
		if !p.accept(',') {
			break
		}
	}

	if err := p.expect(']'); err != nil {
		return nil, err
	}
	return transform.NewConcatenated(steps...), nil
}

func (p *parser) parseInverseMT() (types.Transform, error) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	inner, err := p.parseTransform()
	if err != nil {
		return nil, err
	}
	if err := p.expect(']'); err != nil {
		return nil, err
	}
	return inner.Inverse()
}

// NormalizeFamily lower-cases a family or parameter name and flattens
// separators, so "Longitude_Rotation" and "Longitude Rotation" both map
// to "longitude_rotation".
func NormalizeFamily(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "_")
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

// readKeyword consumes an identifier like PARAM_MT.
func (p *parser) readKeyword() (string, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)) {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return "", p.errorf("expected keyword at offset %d", p.pos)
	}
	return strings.ToUpper(p.input[start:p.pos]), nil
}

// readQuoted consumes a double-quoted string.
func (p *parser) readQuoted() (string, error) {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != '"' {
		return "", p.errorf("expected quoted string at offset %d", p.pos)
	}
	p.pos++
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] != '"' {
		p.pos++
	}
	if p.pos >= len(p.input) {
		return "", p.errorf("unterminated string at offset %d", start)
	}
	value := p.input[start:p.pos]
	p.pos++
	return value, nil
}

// readNumber consumes a floating point number.
func (p *parser) readNumber() (float64, error) {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c == '+' || c == '-' || c == '.' || c == 'e' || c == 'E' || unicode.IsDigit(rune(c)) {
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return 0, p.errorf("expected number at offset %d", p.pos)
	}
	value, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, p.errorf("invalid number %q", p.input[start:p.pos])
	}
	return value, nil
}

// expect consumes the given delimiter or fails.
func (p *parser) expect(c byte) error {
	p.skipSpace()
	if p.pos >= len(p.input) || p.input[p.pos] != c {
		return p.errorf("expected %q at offset %d", string(c), p.pos)
	}
	p.pos++
	return nil
}

// accept consumes the delimiter when present.
func (p *parser) accept(c byte) bool {
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *parser) errorf(format string, args ...interface{}) *errors.CrsError {
	return errors.Newf(errors.ErrDefinitionParse, format, args...)
}
