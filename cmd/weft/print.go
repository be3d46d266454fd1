package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/weft/fst"
)

var printCmd = &cobra.Command{
	Use:   "print [FILE]",
	Short: "Print a transducer in text form",
	Long:  `Prints a serialized transducer as tab-separated arc and final-state lines, resolving labels through the embedded symbol tables when present. With no FILE, reads standard input.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := ""
		if len(args) > 0 {
			source = args[0]
		}
		return runPrint(source)
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
}

func runPrint(source string) error {
	f, err := fst.ReadFstFile(source, semiring)
	if err != nil {
		return err
	}

	return fst.PrintText(os.Stdout, f)
}
