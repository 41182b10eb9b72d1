// Package presenter surfaces translation outcomes to the user. The primary
// channel is a macOS dialog; the translated text also lands on the
// clipboard and on stdout so the Quick Action output stays scriptable.
package presenter

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"horse.fit/honyaku/internal/shellenv"
	"horse.fit/honyaku/internal/translation"
)

const (
	resultTitle = "Translation Result"
	errorTitle  = "Error"
)

// AppleScript string literals need quotes and newlines escaped; everything
// else passes through verbatim.
var dialogEscaper = strings.NewReplacer(`"`, `\"`, "\n", `\n`)

// Presenter renders results and failures. Dialog display blocks until the
// user dismisses it, so no deadline is applied to it.
type Presenter struct {
	runner shellenv.Runner
	out    io.Writer
	log    zerolog.Logger
}

func New(runner shellenv.Runner, out io.Writer, log zerolog.Logger) *Presenter {
	if runner == nil {
		runner = shellenv.ExecRunner{}
	}
	if out == nil {
		out = os.Stdout
	}
	return &Presenter{runner: runner, out: out, log: log}
}

// ShowResult presents one successful translation: a dialog with timings,
// the bare text on the clipboard, and the bare text on stdout.
func (p *Presenter) ShowResult(ctx context.Context, res *translation.Result) {
	message := fmt.Sprintf("%s\n\nTranslation time: %.2fs\nTotal time: %.2fs",
		res.TranslatedText, res.TranslateDuration.Seconds(), res.TotalDuration.Seconds())

	p.showDialog(ctx, message, resultTitle)
	p.copyToClipboard(ctx, res.TranslatedText)
	fmt.Fprintln(p.out, res.TranslatedText)
}

// ShowError presents one failed translation with the fixed message for its
// kind. Presentation itself cannot fail the run.
func (p *Presenter) ShowError(ctx context.Context, err error) {
	terr := translation.Coerce(err, 0)
	p.log.Error().Str("kind", terr.Kind.String()).Err(err).Msg("translation failed")
	p.showDialog(ctx, terr.UserMessage(), errorTitle)
}

func (p *Presenter) showDialog(ctx context.Context, message, title string) {
	script := fmt.Sprintf(`display dialog "%s" buttons {"OK"} default button 1 with title "%s"`,
		dialogEscaper.Replace(message), title)

	res, err := p.runner.Run(ctx, "", "osascript", "-e", script)
	if err != nil || res.ExitCode != 0 {
		// No dialog session available, e.g. an SSH login.
		p.log.Warn().Err(err).Int("exit_code", res.ExitCode).Msg("dialog display failed")
		fmt.Fprintf(p.out, "%s: %s\n", title, message)
	}
}

func (p *Presenter) copyToClipboard(ctx context.Context, text string) {
	res, err := p.runner.Run(ctx, text, "pbcopy")
	if err != nil {
		p.log.Warn().Err(err).Msg("clipboard copy failed")
		return
	}
	if res.ExitCode != 0 {
		p.log.Warn().Int("exit_code", res.ExitCode).Msg("clipboard copy failed")
	}
}
