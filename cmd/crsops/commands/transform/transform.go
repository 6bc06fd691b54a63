package transform

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/crsops/internal/cli"
)

// NewCommand creates the transform command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "transform <source> <target> <x> <y>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid x coordinate %q: %w", args[2], err)
			}
			y, err := strconv.ParseFloat(args[3], 64)
			if err != nil {
				return fmt.Errorf("invalid y coordinate %q: %w", args[3], err)
			}

			r, err := cli.NewResolver()
			if err != nil {
				return err
			}
			op, err := r.Resolve(args[0], args[1])
			if err != nil {
				return err
			}

			tx, ty := op.Transform.Apply(x, y)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.12g %.12g\n", tx, ty)
			return err
		},
	}
}
