package app

import (
	"fmt"
	"os"
	"strings"
)

// Run executes the CLI command and returns a process exit code. Anything
// that is not a known subcommand is treated as a translate invocation,
// which is how the Quick Action calls the binary.
func Run(args []string) int {
	if len(args) == 0 {
		return runTranslate(nil)
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "--help", "-h":
		printUsage()
		return 0
	case "translate":
		return runTranslate(args[1:])
	case "benchmark":
		return runBenchmark(args[1:])
	default:
		return runTranslate(args)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "honyaku CLI")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  honyaku [flags] [text...]")
	fmt.Fprintln(os.Stderr, "  honyaku <command> [flags]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  translate  Translate stdin or the given text (default)")
	fmt.Fprintln(os.Stderr, "  benchmark  Compare backend and model latency")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Use \"honyaku <command> -h\" for command-specific flags.")
}
