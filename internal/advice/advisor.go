// Package advice phrases Kara's friendly remarks. A persona is prepended to
// every instruction, the reply is scrubbed of lines that break character, and
// any failure yields a fixed fallback sentence instead of an error.
package advice

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"kara/internal/config"
)

// Advisor wraps a Completer with the persona, the phrase filter and the fallback.
type Advisor struct {
	complete Completer
	persona  string
	blocked  []string
	fallback string
	logger   *zap.Logger
}

// New creates an Advisor. Blocked phrases match case-insensitively; blank ones are ignored.
func New(complete Completer, cfg config.GeneratorConfig, logger *zap.Logger) *Advisor {
	if logger == nil {
		logger = zap.NewNop()
	}

	blocked := make([]string, 0, len(cfg.BlockedPhrases))
	for _, p := range cfg.BlockedPhrases {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			blocked = append(blocked, p)
		}
	}

	fallback := cfg.Fallback
	if fallback == "" {
		fallback = config.DefaultFallback
	}

	return &Advisor{
		complete: complete,
		persona:  strings.TrimSpace(cfg.Persona),
		blocked:  blocked,
		fallback: fallback,
		logger:   logger,
	}
}

// FromConfig builds an Advisor backed by the configured command, or by
// DisabledCompleter when generation is switched off.
func FromConfig(cfg config.GeneratorConfig, logger *zap.Logger) *Advisor {
	var complete Completer = DisabledCompleter
	if cfg.Enabled {
		complete = CommandCompleter(cfg)
	}
	return New(complete, cfg, logger)
}

// Prompt prefixes instruction with the persona.
func (a *Advisor) Prompt(instruction string) string {
	if a.persona == "" {
		return instruction
	}
	return a.persona + " " + instruction
}

// Advise never fails: errors and empty output both give the fallback.
func (a *Advisor) Advise(ctx context.Context, instruction string) string {
	out, err := a.complete(ctx, a.Prompt(instruction))
	if err != nil {
		a.logger.Debug("text generation failed", zap.String("instruction", instruction), zap.Error(err))
		return a.fallback
	}

	text := a.Filter(out)
	if text == "" {
		a.logger.Debug("generated text was empty after filtering", zap.String("instruction", instruction))
		return a.fallback
	}
	return text
}

// Filter drops every line containing a blocked phrase, trims the rest, skips
// blank lines and joins what is left with single spaces.
func (a *Advisor) Filter(output string) string {
	var kept []string
	for _, line := range strings.Split(output, "\n") {
		if a.isBlocked(line) {
			continue
		}
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, " ")
}

func (a *Advisor) isBlocked(line string) bool {
	lower := strings.ToLower(line)
	for _, p := range a.blocked {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}
