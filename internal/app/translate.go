package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"horse.fit/honyaku/internal/cli"
	"horse.fit/honyaku/internal/config"
	"horse.fit/honyaku/internal/logging"
	"horse.fit/honyaku/internal/presenter"
	"horse.fit/honyaku/internal/shellenv"
	"horse.fit/honyaku/internal/translation"
)

func runTranslate(args []string) int {
	fs := flag.NewFlagSet("translate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	envLoader := cli.AddEnvFlag(fs, "", "Path to the env file")
	backendFlag := fs.String("backend", "", "Translation backend (openai, gemini, plamo)")
	modelFlag := fs.String("model", "", "Model override for the selected backend")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if _, err := envLoader.Load(); err != nil {
		// The env file is optional: credentials may live in the login
		// shell profile instead.
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

	text, err := readInput(fs.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	backendName := strings.TrimSpace(*backendFlag)
	if backendName == "" {
		backendName = cfg.Backend
	}
	if model := strings.TrimSpace(*modelFlag); model != "" {
		applyModelOverride(cfg, backendName, model)
	}

	registry, err := buildRegistry(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	backend, err := registry.Backend(backendName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	translator, err := translation.NewTranslator(backend, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	pres := presenter.New(shellenv.ExecRunner{}, os.Stdout, log)

	// From here on every outcome is presented to the user, so the process
	// exits zero either way.
	ctx := context.Background()
	res, err := translator.Translate(ctx, text)
	if err != nil {
		pres.ShowError(ctx, err)
		return 0
	}
	pres.ShowResult(ctx, res)
	return 0
}

// readInput returns the text to translate: everything on stdin when stdin
// is piped (the Quick Action path), otherwise the joined argv words.
func readInput(argv []string) (string, error) {
	fd := os.Stdin.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(raw), nil
	}
	return strings.Join(argv, " "), nil
}

func applyModelOverride(cfg *config.Config, backendName, model string) {
	switch strings.ToLower(strings.TrimSpace(backendName)) {
	case "openai":
		cfg.OpenAIModel = model
	case "gemini":
		cfg.GeminiModel = model
	}
}
