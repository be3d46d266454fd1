package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/weft/fst"
	"github.com/katalvlaran/weft/rational"
)

var invertCmd = &cobra.Command{
	Use:   "invert [IN [OUT]]",
	Short: "Exchange input and output labels",
	Long:  `Inverts a transducer: every arc exchanges its input and output labels and the symbol tables swap sides. With no IN, reads standard input; with no OUT, writes standard output.`,
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := pickInOut(args)
		return runInvert(in, out)
	},
}

func init() {
	rootCmd.AddCommand(invertCmd)
}

// pickInOut maps optional positional arguments onto (source, destination),
// where "" names the standard stream.
func pickInOut(args []string) (string, string) {
	in, out := "", ""
	if len(args) > 0 {
		in = args[0]
	}
	if len(args) > 1 {
		out = args[1]
	}

	return in, out
}

// asVector narrows a deserialized automaton to the dense kind accepted by
// the binary writer.
func asVector(f fst.Fst) (*fst.VectorFst, error) {
	v, ok := f.(*fst.VectorFst)
	if !ok {
		return nil, fmt.Errorf("%w: cannot serialize this fst kind", fst.ErrNotMutable)
	}

	return v, nil
}

func runInvert(in, out string) error {
	m, err := fst.ReadMutableFstFile(in, semiring)
	if err != nil {
		return err
	}
	rational.Invert(m)
	v, err := asVector(m)
	if err != nil {
		return err
	}

	return fst.WriteFstFile(v, out)
}
