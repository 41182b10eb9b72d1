package benchmark

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"horse.fit/honyaku/internal/langdetect"
	"horse.fit/honyaku/internal/translation"
)

// DefaultIterations is the number of trials per target and case.
const DefaultIterations = 10

// The model matrix compared when the tool was tuned.
var (
	openAIBenchModels = []string{"gpt-4.1-nano", "gpt-4.1-mini", "o4-mini"}
	geminiBenchModels = []string{"gemini-2.0-flash-lite", "gemini-2.5-flash-lite", "gemini-2.5-flash"}
)

// Target is one backend and model pair to measure.
type Target struct {
	BackendName string
	Model       string
	Label       string
	// Prestart marks the plamo variant measured with the inference server
	// already running.
	Prestart bool
}

// DefaultTargets expands backend names into the full model matrix. The
// plamo prestart variant is appended after the cold variant so its server
// does not warm the cold runs.
func DefaultTargets(backends []string, prestart bool) ([]Target, error) {
	var targets []Target
	for _, raw := range backends {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "openai":
			for _, m := range openAIBenchModels {
				targets = append(targets, Target{BackendName: "openai", Model: m, Label: m})
			}
		case "gemini":
			for _, m := range geminiBenchModels {
				targets = append(targets, Target{BackendName: "gemini", Model: m, Label: m})
			}
		case "plamo":
			targets = append(targets, Target{BackendName: "plamo", Model: translation.PlamoExecutable, Label: translation.PlamoExecutable})
			if prestart {
				targets = append(targets, Target{
					BackendName: "plamo",
					Model:       translation.PlamoExecutable,
					Label:       translation.PlamoExecutable + " (server prestart)",
					Prestart:    true,
				})
			}
		case "":
		default:
			return nil, fmt.Errorf("unknown benchmark backend %q", strings.TrimSpace(raw))
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("no benchmark backends selected")
	}
	return targets, nil
}

// BackendFactory builds a backend configured for one target's model.
type BackendFactory func(backendName, model string) (translation.Backend, error)

// Options configures one benchmark run.
type Options struct {
	Iterations int
	Targets    []Target
	Cases      []Case
	Factory    BackendFactory

	// Server, when set, is started before the first prestart target and
	// stopped when the run ends.
	Server *PlamoServer

	Out io.Writer
	Log zerolog.Logger
}

// CaseResult aggregates the trials of one target and case pair.
type CaseResult struct {
	Target    Target
	Case      Case
	Successes int
	Failures  int
	Stats     Stats
}

// Run executes every target against every case, printing a progress report
// and returning the aggregated results. Individual trial failures are
// recorded and do not stop the run.
func Run(ctx context.Context, opts Options) ([]CaseResult, error) {
	if opts.Factory == nil {
		return nil, fmt.Errorf("backend factory is required")
	}
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultIterations
	}
	if len(opts.Cases) == 0 {
		cases, err := DefaultCases()
		if err != nil {
			return nil, fmt.Errorf("load default cases: %w", err)
		}
		opts.Cases = cases
	}
	if len(opts.Targets) == 0 {
		return nil, fmt.Errorf("no benchmark targets")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	headline := color.New(color.FgCyan, color.Bold)
	caseTitle := color.New(color.FgYellow)
	failLine := color.New(color.FgRed)

	fmt.Fprintf(out, "Running each case %d times\n", opts.Iterations)

	serverStarted := false
	defer func() {
		if serverStarted {
			opts.Server.Stop()
		}
	}()

	var results []CaseResult
	for _, target := range opts.Targets {
		if target.Prestart && opts.Server != nil && !serverStarted {
			if err := opts.Server.Start(ctx); err != nil {
				return results, fmt.Errorf("start plamo server: %w", err)
			}
			serverStarted = true
		}

		backend, err := opts.Factory(target.BackendName, target.Model)
		if err != nil {
			return results, fmt.Errorf("build %s backend: %w", target.BackendName, err)
		}

		headline.Fprintf(out, "\n=== %s ===\n", target.Label)

		for _, c := range opts.Cases {
			caseTitle.Fprintf(out, "\n%s:\n", c.Name)

			req := translation.Request{Text: c.Text, Source: langdetect.Detect(c.Text)}
			var samples []time.Duration
			failures := 0

			for i := 0; i < opts.Iterations; i++ {
				start := time.Now()
				_, err := backend.Translate(ctx, req)
				elapsed := time.Since(start)

				if err != nil {
					failures++
					failLine.Fprintf(out, "  trial %d: failed\n", i+1)
					opts.Log.Debug().Err(err).Str("target", target.Label).Str("case", c.Key).Msg("benchmark trial failed")
					continue
				}
				samples = append(samples, elapsed)
				fmt.Fprintf(out, "  trial %d: %.3fs\n", i+1, elapsed.Seconds())
			}

			stats := Summarize(samples)
			if stats.Count > 0 {
				fmt.Fprintf(out, "  success: %d/%d\n", stats.Count, opts.Iterations)
				fmt.Fprintf(out, "  mean: %.3fs\n", stats.Mean.Seconds())
				fmt.Fprintf(out, "  min: %.3fs\n", stats.Min.Seconds())
				fmt.Fprintf(out, "  max: %.3fs\n", stats.Max.Seconds())
				fmt.Fprintf(out, "  stddev: %.3fs\n", stats.StdDev.Seconds())
			}

			results = append(results, CaseResult{
				Target:    target,
				Case:      c,
				Successes: stats.Count,
				Failures:  failures,
				Stats:     stats,
			})
		}
	}

	return results, nil
}
