package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psaab/confdict/pkg/dict"
)

var getCmd = &cobra.Command{
	Use:   "get <file> <query>...",
	Short: "Resolve path queries against a configuration file",
	Long: "get parses the input and resolves each query. A leaf prints its\n" +
		"value; anything with children prints as a reformatted subtree. The\n" +
		"exit status is nonzero when any query has no match.",
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDict(args[0])
		if err != nil {
			return err
		}

		missing := 0
		for _, q := range args[1:] {
			n := d.Get(q)
			if n == nil {
				fmt.Fprintf(os.Stderr, "%s: no match\n", q)
				missing++
				continue
			}
			if n.Kind() == dict.KindLeaf {
				fmt.Println(n.Value())
				continue
			}
			if err := n.Dump(os.Stdout); err != nil {
				return err
			}
		}
		if missing > 0 {
			return fmt.Errorf("%d of %d queries had no match", missing, len(args)-1)
		}
		return nil
	},
}
