package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/psaab/confdict/pkg/dict"
)

var debug bool

var rootCmd = &cobra.Command{
	Use:   "confdict",
	Short: "Parse, query and edit hierarchical configuration text",
	Long: "confdict reads Juniper/gated-style configuration text (tolerant of\n" +
		"JSON-like input) into a searchable dictionary. Subcommands reformat\n" +
		"the input, resolve path queries against it, flatten it to paths, or\n" +
		"open an interactive shell on it.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})))
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(pathsCmd)
	rootCmd.AddCommand(shellCmd)
}

// readInput loads a configuration file, or stdin when the path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// loadDict parses a file into a fresh dictionary, reporting parse failures
// with the source excerpt and caret the error carries.
func loadDict(path string) (*dict.Dict, error) {
	buf, err := readInput(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("parsing input", "file", path, "bytes", len(buf))
	start := time.Now()

	d := dict.New(path, 0)
	if err := d.Parse(buf); err != nil {
		var pe *dict.ParseError
		if errors.As(err, &pe) {
			fmt.Fprintln(os.Stderr, pe.Excerpt())
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("parsed", "file", path, "nodes", d.NodeCount(), "elapsed", time.Since(start))
	return d, nil
}
