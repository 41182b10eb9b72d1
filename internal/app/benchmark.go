package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/honyaku/internal/benchmark"
	"horse.fit/honyaku/internal/cli"
	"horse.fit/honyaku/internal/config"
	"horse.fit/honyaku/internal/logging"
	"horse.fit/honyaku/internal/shellenv"
	"horse.fit/honyaku/internal/translation"
)

func runBenchmark(args []string) int {
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, "", "Path to the env file")
	backendsFlag := fs.String("backends", "openai,gemini,plamo", "Comma-separated backends to measure")
	iterations := fs.Int("iterations", benchmark.DefaultIterations, "Trials per case")
	casesPath := fs.String("cases", "", "Path to a JSON case file (defaults to the built-in set)")
	prestart := fs.Bool("prestart", false, "Also measure plamo with a prestarted inference server")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "benchmark takes no arguments")
		return 2
	}
	if *iterations < 1 {
		fmt.Fprintln(os.Stderr, "-iterations must be >= 1")
		return 2
	}

	backendNames := splitList(*backendsFlag)
	targets, err := benchmark.DefaultTargets(backendNames, *prestart)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	if _, err := envLoader.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: %v\n", err)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	log, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var cases []benchmark.Case
	if path := strings.TrimSpace(*casesPath); path != "" {
		cases, err = benchmark.LoadCasesFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	factory, execResolver, err := newBenchmarkFactory(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx := context.Background()
	warnMissingKeys(ctx, cfg, backendNames, log)

	var server *benchmark.PlamoServer
	if *prestart && containsName(backendNames, "plamo") {
		resolved, err := execResolver.Resolve(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("plamo-translate not found, measuring prestart trials cold")
		} else {
			server = benchmark.NewPlamoServer(resolved.Path, cfg.PlamoWarmup(), log)
		}
	}

	if _, err := benchmark.Run(ctx, benchmark.Options{
		Iterations: *iterations,
		Targets:    targets,
		Cases:      cases,
		Factory:    factory,
		Server:     server,
		Out:        os.Stdout,
		Log:        log,
	}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// warnMissingKeys flags absent API credentials before any trial runs.
func warnMissingKeys(ctx context.Context, cfg *config.Config, backendNames []string, log zerolog.Logger) {
	creds := translation.NewCredentialResolver(nil, shellenv.NewProbe(cfg.Shell, cfg.ShellTimeout(), nil))

	if containsName(backendNames, "openai") {
		if _, err := creds.Resolve(ctx, translation.OpenAIKeyVar); err != nil {
			log.Warn().Msg("OPENAI_API_KEY is not set")
		}
	}
	if containsName(backendNames, "gemini") {
		if _, err := creds.Resolve(ctx, translation.GeminiKeyVar); err != nil {
			log.Warn().Msg("GEMINI_API_KEY is not set")
		}
	}
}

func containsName(names []string, want string) bool {
	for _, name := range names {
		if strings.EqualFold(strings.TrimSpace(name), want) {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
