package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/honyaku/internal/benchmark"
	"horse.fit/honyaku/internal/config"
	"horse.fit/honyaku/internal/shellenv"
	"horse.fit/honyaku/internal/translation"
)

// buildRegistry wires every backend from the runtime configuration. The
// login shell probe and the resolvers are shared across backends.
func buildRegistry(cfg *config.Config, log zerolog.Logger) (*translation.Registry, error) {
	probe := shellenv.NewProbe(cfg.Shell, cfg.ShellTimeout(), nil)
	creds := translation.NewCredentialResolver(nil, probe)

	authMode, err := translation.ParseAuthMode(cfg.GeminiAuth)
	if err != nil {
		return nil, err
	}

	execResolver := translation.NewExecutableResolver(translation.PlamoExecutable, probe, userHome())

	registry := translation.NewRegistry(cfg.Backend)
	if err := registry.Register(translation.NewOpenAIBackend(cfg.OpenAIModel, creds, cfg.APITimeout(), log)); err != nil {
		return nil, err
	}
	if err := registry.Register(translation.NewGeminiBackend(cfg.GeminiModel, authMode, creds, cfg.APITimeout(), log)); err != nil {
		return nil, err
	}
	if err := registry.Register(translation.NewPlamoBackend(execResolver, shellenv.ExecRunner{}, cfg.PlamoTimeout(), log)); err != nil {
		return nil, err
	}
	return registry, nil
}

// newBenchmarkFactory returns a factory building per-model backends plus
// the executable resolver, which the benchmark also needs for the server
// prestart.
func newBenchmarkFactory(cfg *config.Config, log zerolog.Logger) (benchmark.BackendFactory, *translation.ExecutableResolver, error) {
	probe := shellenv.NewProbe(cfg.Shell, cfg.ShellTimeout(), nil)
	creds := translation.NewCredentialResolver(nil, probe)

	authMode, err := translation.ParseAuthMode(cfg.GeminiAuth)
	if err != nil {
		return nil, nil, err
	}

	execResolver := translation.NewExecutableResolver(translation.PlamoExecutable, probe, userHome())

	factory := func(backendName, model string) (translation.Backend, error) {
		switch strings.ToLower(strings.TrimSpace(backendName)) {
		case "openai":
			return translation.NewOpenAIBackend(model, creds, cfg.APITimeout(), log), nil
		case "gemini":
			return translation.NewGeminiBackend(model, authMode, creds, cfg.APITimeout(), log), nil
		case "plamo":
			return translation.NewPlamoBackend(execResolver, shellenv.ExecRunner{}, cfg.PlamoTimeout(), log), nil
		default:
			return nil, fmt.Errorf("unknown backend %q", backendName)
		}
	}
	return factory, execResolver, nil
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}
