package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psaab/confdict/pkg/dict"
)

var pathsLeavesOnly bool

var pathsCmd = &cobra.Command{
	Use:   "paths <file>",
	Short: "Flatten a configuration file to one path per line",
	Long: "paths parses the input and prints every node as its full path,\n" +
		"leaves followed by their value. Separators inside names are escaped\n" +
		"so each line resolves back through get.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDict(args[0])
		if err != nil {
			return err
		}

		d.WalkPaths(func(path string, n *dict.Node) bool {
			if pathsLeavesOnly && n.Kind() != dict.KindLeaf {
				return true
			}
			if n.Kind() == dict.KindLeaf && n.Value() != "" {
				fmt.Printf("%s %s\n", n.PathEscaped(), n.Value())
			} else {
				fmt.Println(n.PathEscaped())
			}
			return true
		})
		return nil
	},
}

func init() {
	pathsCmd.Flags().BoolVar(&pathsLeavesOnly, "leaves", false, "print leaf nodes only")
}
