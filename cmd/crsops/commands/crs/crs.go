package crs

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/crsops/internal/cli"
	"github.com/arthur-debert/crsops/pkg/catalog"
)

type view struct {
	Code      string `yaml:"code"`
	Authority string `yaml:"authority"`
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
}

// NewCommand creates the crs command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "crs <code>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := catalog.Default().Decode(args[0])
			if err != nil {
				return err
			}
			return cli.RenderYAML(cmd.OutOrStdout(), view{
				Code:      rs.Code,
				Authority: rs.Authority,
				Name:      rs.Name,
				Kind:      string(rs.Kind),
			})
		},
	}
}
