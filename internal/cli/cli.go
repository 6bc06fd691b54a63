// Package cli holds the shared plumbing of the crsops commands: loading
// the configuration, building the resolver and rendering results.
package cli

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/crsops/pkg/config"
	"github.com/arthur-debert/crsops/pkg/resolver"
	"github.com/arthur-debert/crsops/pkg/types"
)

// NewResolver builds a resolver from the loaded application
// configuration.
func NewResolver() (*resolver.Resolver, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return resolver.New(cfg.ResolverConfig())
}

// OperationView is the serializable shape of a resolved operation.
type OperationView struct {
	Code    string `yaml:"code"`
	Source  string `yaml:"source"`
	Target  string `yaml:"target"`
	Derived bool   `yaml:"derived,omitempty"`
}

// NewOperationView flattens an operation for output.
func NewOperationView(op *types.Operation) OperationView {
	return OperationView{
		Code:    op.Code,
		Source:  op.Source.String(),
		Target:  op.Target.String(),
		Derived: op.Derived,
	}
}

// RenderYAML writes v to w as a YAML document.
func RenderYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
