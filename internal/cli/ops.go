package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/karrick/rpncalc"
)

// OperatorList is the display form of the operator registry.
type OperatorList []rpncalc.OperatorInfo

// String renders one operator per line: symbol, arity and description
// in aligned columns.
func (l OperatorList) String() string {
	var b strings.Builder
	l.write(&b)
	return b.String()
}

func (l OperatorList) write(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tARITY\tDESCRIPTION")
	for _, op := range l {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", op.Symbol, op.Arity, op.Description)
	}
	tw.Flush()
}

// NewOpsCommand creates the ops command.
func NewOpsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ops",
		Short: "List operators",
		Long: `List every registered operator with the number of operands it consumes.

Nullary operators push a constant; unary and binary operators consume one
or two values from the top of the stack.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := rootOpts.prepare(cmd)
			if err != nil {
				return err
			}
			if env.formatter.Format == "json" {
				return env.formatter.Success(rpncalc.ListOperators())
			}
			OperatorList(rpncalc.ListOperators()).write(env.formatter.Writer)
			return nil
		},
	}
	return cmd
}
