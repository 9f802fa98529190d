package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/psaab/confdict/pkg/dict"
)

var shellCmd = &cobra.Command{
	Use:   "shell [file]",
	Short: "Open an interactive shell on a configuration file",
	Long: "shell parses the input (or starts empty) and drops into an\n" +
		"interactive session where the dictionary can be queried and edited.\n" +
		"Type 'help' inside the shell for the command list.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			d   *dict.Dict
			err error
		)
		if len(args) == 1 {
			d, err = loadDict(args[0])
			if err != nil {
				return err
			}
		} else {
			d = dict.New("shell", 0)
		}
		return (&shell{d: d}).run()
	},
}

type shell struct {
	d  *dict.Dict
	rl *readline.Instance
}

var errQuit = errors.New("quit")

func (sh *shell) run() error {
	var err error
	sh.rl, err = readline.NewEx(&readline.Config{
		Prompt:          "confdict> ",
		HistoryFile:     "/tmp/confdict_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("readline init: %w", err)
	}
	defer sh.rl.Close()

	fmt.Printf("confdict shell - %d nodes loaded\n", sh.d.NodeCount())
	fmt.Println("Type 'help' for the command list")

	for {
		line, err := sh.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := sh.dispatch(line); err != nil {
			if err == errQuit {
				return nil
			}
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

func (sh *shell) dispatch(line string) error {
	parts := strings.Fields(line)
	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help", "?":
		sh.help()
		return nil
	case "quit", "exit":
		return errQuit
	case "stats":
		fmt.Printf("%d nodes\n", sh.d.NodeCount())
		return nil
	case "dump":
		if len(args) == 0 {
			return sh.d.Dump(os.Stdout)
		}
		n, err := sh.resolve(args[0])
		if err != nil {
			return err
		}
		return n.Dump(os.Stdout)
	case "get":
		if len(args) != 1 {
			return fmt.Errorf("usage: get <query>")
		}
		n, err := sh.resolve(args[0])
		if err != nil {
			return err
		}
		if n.Kind() == dict.KindLeaf {
			fmt.Println(n.Value())
			return nil
		}
		return n.Dump(os.Stdout)
	case "paths":
		sh.d.WalkPaths(func(path string, n *dict.Node) bool {
			fmt.Println(n.PathEscaped())
			return true
		})
		return nil
	case "set":
		if len(args) != 2 {
			return fmt.Errorf("usage: set <query> <value>")
		}
		n, err := sh.resolve(args[0])
		if err != nil {
			return err
		}
		return sh.d.SetValue(n, args[1])
	case "rename":
		if len(args) != 2 {
			return fmt.Errorf("usage: rename <query> <new-name>")
		}
		n, err := sh.resolve(args[0])
		if err != nil {
			return err
		}
		return sh.d.Rename(n, args[1])
	case "move":
		if len(args) != 2 {
			return fmt.Errorf("usage: move <query> <target-query>")
		}
		n, err := sh.resolve(args[0])
		if err != nil {
			return err
		}
		target, err := sh.resolve(args[1])
		if err != nil {
			return err
		}
		return sh.d.Move(n, target)
	case "copy":
		if len(args) != 2 && len(args) != 3 {
			return fmt.Errorf("usage: copy <query> <target-query> [new-name]")
		}
		n, err := sh.resolve(args[0])
		if err != nil {
			return err
		}
		target, err := sh.resolve(args[1])
		if err != nil {
			return err
		}
		name := ""
		if len(args) == 3 {
			name = args[2]
		}
		_, err = sh.d.Copy(n, target, name)
		return err
	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete <query>")
		}
		n, err := sh.resolve(args[0])
		if err != nil {
			return err
		}
		return sh.d.DeleteNode(n)
	case "load":
		if len(args) != 1 {
			return fmt.Errorf("usage: load <file>")
		}
		nd, err := loadDict(args[0])
		if err != nil {
			return err
		}
		sh.d = nd
		fmt.Printf("%d nodes loaded\n", sh.d.NodeCount())
		return nil
	case "write":
		if len(args) != 1 {
			return fmt.Errorf("usage: write <file>")
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		if err := sh.d.Dump(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return fmt.Errorf("unknown command %q, try 'help'", cmd)
	}
}

func (sh *shell) resolve(query string) (*dict.Node, error) {
	n := sh.d.Get(query)
	if n == nil {
		return nil, fmt.Errorf("%s: %w", query, dict.ErrNotFound)
	}
	return n, nil
}

func (sh *shell) help() {
	fmt.Print(`Commands:
  get <query>                    print a leaf value or subtree
  paths                          print every node path
  dump [query]                   print the whole tree or a subtree
  set <query> <value>            replace a leaf value
  rename <query> <new-name>      rename a node
  move <query> <target>          reparent a node
  copy <query> <target> [name]   duplicate a subtree
  delete <query>                 remove a node and its subtree
  load <file>                    replace the tree from a file
  write <file>                   serialize the tree to a file
  stats                          node count
  quit                           leave the shell
`)
}
