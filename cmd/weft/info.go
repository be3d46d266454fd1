package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/weft/fst"
)

var infoCmd = &cobra.Command{
	Use:   "info [FILE]",
	Short: "Summarize a serialized transducer",
	Long:  `Prints the state/arc counts, start state, semiring, and structural properties of a serialized transducer. With no FILE, reads standard input.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := ""
		if len(args) > 0 {
			source = args[0]
		}
		return runInfo(source)
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

// propNames pairs each positive structural bit with its display name; the
// matching negative bit is the next bit up.
var propNames = []struct {
	bit  uint64
	name string
}{
	{fst.PropAcceptor, "acceptor"},
	{fst.PropIDeterministic, "input deterministic"},
	{fst.PropODeterministic, "output deterministic"},
	{fst.PropNoEpsilons, "epsilon free"},
	{fst.PropNoIEpsilons, "input epsilon free"},
	{fst.PropNoOEpsilons, "output epsilon free"},
	{fst.PropILabelSorted, "input label sorted"},
	{fst.PropOLabelSorted, "output label sorted"},
	{fst.PropUnweighted, "unweighted"},
	{fst.PropAcyclic, "acyclic"},
	{fst.PropInitialAcyclic, "initial state acyclic"},
	{fst.PropTopSorted, "topologically sorted"},
	{fst.PropAccessible, "accessible"},
	{fst.PropCoaccessible, "coaccessible"},
	{fst.PropString, "string"},
	{fst.PropUnweightedCycles, "unweighted cycles"},
}

func runInfo(source string) error {
	f, err := fst.ReadFstFile(source, semiring)
	if err != nil {
		return err
	}

	arcs, finals := 0, 0
	zero := f.Semiring().Zero()
	for s := fst.StateID(0); int(s) < f.NumStates(); s++ {
		arcs += f.NumArcs(s)
		if !f.Final(s).Equal(zero) {
			finals++
		}
	}

	out := os.Stdout
	fmt.Fprintf(out, "semiring\t%s\n", f.Semiring().Name())
	fmt.Fprintf(out, "states\t%d\n", f.NumStates())
	fmt.Fprintf(out, "arcs\t%d\n", arcs)
	fmt.Fprintf(out, "final states\t%d\n", finals)
	fmt.Fprintf(out, "start\t%d\n", f.Start())
	fmt.Fprintf(out, "input symbols\t%v\n", f.InputSymbols() != nil)
	fmt.Fprintf(out, "output symbols\t%v\n", f.OutputSymbols() != nil)

	props := f.Properties(fst.PropsAll, true)
	for _, p := range propNames {
		switch {
		case props&p.bit != 0:
			fmt.Fprintf(out, "%s\ty\n", p.name)
		case props&(p.bit<<1) != 0:
			fmt.Fprintf(out, "%s\tn\n", p.name)
		}
	}

	return nil
}
