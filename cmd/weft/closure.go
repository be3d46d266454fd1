package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/weft/fst"
	"github.com/katalvlaran/weft/rational"
)

var closureType string

var closureCmd = &cobra.Command{
	Use:   "closure [IN [OUT]]",
	Short: "Apply Kleene closure",
	Long:  `Computes the Kleene closure of a transducer. With --type=star the result additionally accepts the empty sequence; with --type=plus it does not. With no IN, reads standard input; with no OUT, writes standard output.`,
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := pickInOut(args)
		return runClosure(in, out, closureType)
	},
}

func init() {
	closureCmd.Flags().StringVar(&closureType, "type", "star", "Closure variant: star or plus")
	rootCmd.AddCommand(closureCmd)
}

func runClosure(in, out, typ string) error {
	var ct rational.ClosureType
	switch typ {
	case "star":
		ct = rational.ClosureStar
	case "plus":
		ct = rational.ClosurePlus
	default:
		return fmt.Errorf("unknown closure type %q (want star or plus)", typ)
	}

	m, err := fst.ReadMutableFstFile(in, semiring)
	if err != nil {
		return err
	}
	rational.Closure(m, ct)
	v, err := asVector(m)
	if err != nil {
		return err
	}

	return fst.WriteFstFile(v, out)
}
