package main

import (
	"os"

	"github.com/spf13/cobra"
)

var fmtOutput string

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Parse a configuration file and print it reformatted",
	Long: "fmt parses the input and prints it back in canonical form: four-space\n" +
		"indentation, one entry per line, comments stripped. Pass \"-\" to read\n" +
		"standard input.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDict(args[0])
		if err != nil {
			return err
		}

		out := os.Stdout
		if fmtOutput != "" && fmtOutput != "-" {
			f, err := os.Create(fmtOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return d.Dump(out)
	},
}

func init() {
	fmtCmd.Flags().StringVarP(&fmtOutput, "output", "o", "", "write to file instead of stdout")
}
