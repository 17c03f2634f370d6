package main

import (
	"os"
	"strconv"
	"sync"

	"github.com/mattn/go-isatty"
)

// colorEnabled gates ANSI output the same way the teacher's
// internal/evaluator/builtins_term.go gates its own terminal builtins:
// NO_COLOR wins outright, otherwise only a real TTY on stdout qualifies.
var (
	colorOnce    sync.Once
	colorEnabled bool
)

func useColor() bool {
	colorOnce.Do(func() {
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			colorEnabled = false
			return
		}
		colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	})
	return colorEnabled
}

func ansiFg(code int, s string) string {
	if !useColor() {
		return s
	}
	return "\033[" + strconv.Itoa(code) + "m" + s + "\033[39m"
}

func red(s string) string    { return ansiFg(31, s) }
func yellow(s string) string { return ansiFg(33, s) }
