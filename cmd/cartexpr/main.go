// Command cartexpr is the library's CLI front end: compile and evaluate one
// map expression against a feature and a zoom level, or inspect the
// standard operator registry. It exists for manual exploration and smoke
// testing, not as a map-rendering runtime.
package main

import (
	"fmt"
	"os"
)

func main() {
	// Catch panics and show a user-friendly error, exactly as the teacher's
	// cmd/funxy recovers internal inconsistencies at its own entry point.
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // re-panic to get a stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if handleHelp() {
		return
	}
	if handleRegistry() {
		return
	}
	if handleEval() {
		return
	}

	printUsage(os.Stderr)
	os.Exit(1)
}

func printUsage(w *os.File) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  cartexpr eval -e <expr.json|@file> [-p <properties.json|@file>] [-z <zoom>] [-json]")
	fmt.Fprintln(w, "  cartexpr registry [-json]")
	fmt.Fprintln(w, "  cartexpr -help")
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}
	switch os.Args[1] {
	case "-help", "--help", "help":
		printUsage(os.Stdout)
		return true
	default:
		return false
	}
}
