package operations

import (
	"fmt"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/crsops/internal/cli"
)

// NewCommand creates the operations command
func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "operations <source-ref> <target-ref>",
		Short:   MsgShort,
		Long:    MsgLong,
		Example: MsgExample,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := cli.NewResolver()
			if err != nil {
				return err
			}

			ops, err := r.ResolveByReferenceSystems(args[0], args[1])
			if err != nil {
				return err
			}
			if len(ops) == 0 {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), MsgNoOperations)
				return err
			}

			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				pterm.DisableColor()
			}

			data := pterm.TableData{{"CODE", "SOURCE", "TARGET", "DERIVED"}}
			for _, op := range ops {
				data = append(data, []string{
					op.Code,
					op.Source.String(),
					op.Target.String(),
					strconv.FormatBool(op.Derived),
				})
			}
			return pterm.DefaultTable.
				WithHasHeader().
				WithWriter(cmd.OutOrStdout()).
				WithData(data).
				Render()
		},
	}
}
