package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/weft/fst"
)

var (
	isymbolsPath string
	osymbolsPath string
)

var compileCmd = &cobra.Command{
	Use:   "compile [IN [OUT]]",
	Short: "Compile a text transducer into binary form",
	Long:  `Reads tab-separated arc and final-state lines and writes the serialized binary transducer. Labels are numeric unless a symbol table is supplied. With no IN, reads standard input; with no OUT, writes standard output.`,
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := pickInOut(args)
		return runCompile(in, out, isymbolsPath, osymbolsPath)
	},
}

func init() {
	compileCmd.Flags().StringVar(&isymbolsPath, "isymbols", "", "Input symbol table file")
	compileCmd.Flags().StringVar(&osymbolsPath, "osymbols", "", "Output symbol table file")
	rootCmd.AddCommand(compileCmd)
}

// loadSymbols reads a whitespace-separated symbol/label table, or returns
// nil when no path was given.
func loadSymbols(path, name string) (*fst.SymbolTable, error) {
	if path == "" {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbol table: %w", err)
	}
	defer file.Close()

	return fst.ReadSymbolTableText(file, name)
}

func runCompile(in, out, isyms, osyms string) error {
	itab, err := loadSymbols(isyms, "input")
	if err != nil {
		return err
	}
	otab, err := loadSymbols(osyms, "output")
	if err != nil {
		return err
	}

	src := os.Stdin
	if in != "" {
		file, err := os.Open(in)
		if err != nil {
			return fmt.Errorf("open text source: %w", err)
		}
		defer file.Close()
		src = file
	}

	v, err := fst.CompileText(src, semiring, itab, otab)
	if err != nil {
		return err
	}

	return fst.WriteFstFile(v, out)
}
