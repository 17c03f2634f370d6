package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cartexpr/cartexpr/pkg/cartexpr"
)

// operatorDoc is the registry signature reference table row: the CLI's
// registry subcommand dumps every operator's name and signature as YAML
// (or JSON with -json) for documentation tooling.
type operatorDoc struct {
	Name      string `yaml:"name" json:"name"`
	Signature string `yaml:"signature" json:"signature"`
}

func handleRegistry() bool {
	if len(os.Args) < 2 || os.Args[1] != "registry" {
		return false
	}

	fs := flag.NewFlagSet("registry", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "emit JSON instead of YAML")
	_ = fs.Parse(os.Args[2:])

	ops := cartexpr.Registry().All()
	docs := make([]operatorDoc, len(ops))
	for i, op := range ops {
		docs[i] = operatorDoc{Name: op.Name(), Signature: op.Signature().String()}
	}

	if *asJSON {
		writeJSON(os.Stdout, docs)
		return true
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(docs); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
	_ = enc.Close()
	return true
}
