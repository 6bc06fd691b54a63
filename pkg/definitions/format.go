package definitions

import (
	"strings"

	"github.com/arthur-debert/crsops/pkg/errors"
	"github.com/arthur-debert/crsops/pkg/types"
	"github.com/beevik/etree"
	"github.com/pelletier/go-toml/v2"
)

// parseTOML reads the canonical catalog format: a flat TOML table of
// composite-code keys to transform WKT strings.
func parseTOML(data []byte) (map[string]string, error) {
	raw := map[string]string{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrDefinitionParse, "invalid definitions TOML")
	}

	defs := make(map[string]string, len(raw))
	for code, text := range raw {
		code = strings.TrimSpace(code)
		if err := validatePairCode(code); err != nil {
			return nil, err
		}
		if strings.TrimSpace(text) == "" {
			return nil, errors.Newf(errors.ErrDefinitionParse, "definition %q has an empty transform", code)
		}
		defs[code] = text
	}
	return defs, nil
}

// parseXML reads the interchange format: an <operations> document whose
// <operation> elements carry source/target attributes and the transform
// WKT as text content.
func parseXML(data []byte) (map[string]string, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, errors.Wrap(err, errors.ErrDefinitionParse, "invalid definitions XML")
	}

	root := doc.Root()
	if root == nil || root.Tag != "operations" {
		return nil, errors.New(errors.ErrDefinitionParse, "definitions XML must have an <operations> root")
	}

	defs := make(map[string]string)
	for _, el := range root.SelectElements("operation") {
		source := strings.TrimSpace(el.SelectAttrValue("source", ""))
		target := strings.TrimSpace(el.SelectAttrValue("target", ""))
		if source == "" || target == "" {
			return nil, errors.New(errors.ErrDefinitionParse,
				"<operation> requires source and target attributes")
		}

		code := types.PairCode(source, target)
		if err := validatePairCode(code); err != nil {
			return nil, err
		}
		if _, dup := defs[code]; dup {
			return nil, errors.Newf(errors.ErrDefinitionParse, "duplicate definition for %q", code)
		}

		text := strings.TrimSpace(el.Text())
		if text == "" {
			return nil, errors.Newf(errors.ErrDefinitionParse, "definition %q has an empty transform", code)
		}
		defs[code] = text
	}
	return defs, nil
}

// validatePairCode checks a composite key has exactly one pair separator
// and non-empty halves.
func validatePairCode(code string) error {
	source, target, found := strings.Cut(code, types.CodeSeparator)
	if !found || strings.TrimSpace(source) == "" || strings.TrimSpace(target) == "" ||
		strings.Contains(target, types.CodeSeparator) {
		return errors.Newf(errors.ErrDefinitionParse, "invalid definition key %q, want \"source,target\"", code)
	}
	return nil
}
