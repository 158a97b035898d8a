package advice

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"kara/internal/config"
	"kara/internal/errors"
)

// Completer turns a prompt into generated text.
type Completer func(ctx context.Context, prompt string) (string, error)

// ErrGeneratorDisabled is returned by DisabledCompleter.
var ErrGeneratorDisabled = stderrors.New("text generation is disabled")

// DisabledCompleter always fails, so every advice falls back without starting a process.
func DisabledCompleter(context.Context, string) (string, error) {
	return "", errors.NewGenerationError("disabled", ErrGeneratorDisabled)
}

// CommandCompleter runs `<command> run <model> <prompt>` and returns its stdout.
// Invalid UTF-8 in the output is dropped.
func CommandCompleter(cfg config.GeneratorConfig) Completer {
	return func(ctx context.Context, prompt string) (string, error) {
		if cfg.Timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
			defer cancel()
		}

		cmd := exec.CommandContext(ctx, cfg.Command, "run", cfg.Model, prompt)
		cmd.Env = append(os.Environ(), "PYTHONIOENCODING=utf-8")
		cmd.WaitDelay = time.Second

		var stdout, stderr bytes.Buffer
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
				return "", errors.NewTimeoutError("generate text", cfg.Timeout.String())
			}
			if ctx.Err() != nil {
				return "", errors.NewGenerationError(cfg.Command, ctx.Err())
			}
			if msg := strings.TrimSpace(stderr.String()); msg != "" {
				err = fmt.Errorf("%w: %s", err, msg)
			}
			return "", errors.NewGenerationError(cfg.Command, err)
		}

		return strings.ToValidUTF8(stdout.String(), ""), nil
	}
}
