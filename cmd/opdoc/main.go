// Command opdoc prints the standard operator reference as Markdown. It is
// a developer tool, not part of the library's public surface.
package main

import (
	"fmt"
	"os"

	"github.com/cartexpr/cartexpr/internal/devtools/opdoc"
)

func main() {
	report, err := opdoc.Generate()
	if err != nil {
		fmt.Fprintf(os.Stderr, "opdoc: %s\n", err)
		os.Exit(1)
	}
	fmt.Print(report.Markdown())
}
