package resolve

import (
	"github.com/spf13/cobra"

	"github.com/arthur-debert/crsops/internal/cli"
)

// NewCommand creates the resolve command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "resolve <source> <target>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := cli.NewResolver()
			if err != nil {
				return err
			}

			op, err := r.Resolve(args[0], args[1])
			if err != nil {
				return err
			}
			return cli.RenderYAML(cmd.OutOrStdout(), cli.NewOperationView(op))
		},
	}
}
