// confdict parses Juniper/gated-style hierarchical configuration text and
// queries, edits and re-serializes it, from the command line or from an
// interactive shell.
package main

func main() {
	Execute()
}
