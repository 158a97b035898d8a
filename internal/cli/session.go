// Package cli is Kara's command line: the cobra commands and the interactive
// session that greets a person, asks for their role, and then runs either the
// admin query loop or the employee task update.
package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"kara/internal/config"
	"kara/internal/domain"
	"kara/internal/repository"
	"kara/internal/validation"
)

// TaskStore is the database access the session needs.
type TaskStore interface {
	RunQuery(ctx context.Context, q repository.StatementSource) (*repository.ResultSet, error)
	FindTasksByPerson(ctx context.Context, name string) ([]domain.TaskSummary, error)
	UpdateTaskEntry(ctx context.Context, update domain.TaskUpdate) (int64, error)
}

// Advisor phrases Kara's remarks. It never fails.
type Advisor interface {
	Advise(ctx context.Context, instruction string) string
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Display  config.DisplayConfig
	Terminal Terminal
	Logger   *zap.Logger
}

// Session is one conversation with Kara.
type Session struct {
	store     TaskStore
	advisor   Advisor
	reader    *lineReader
	out       io.Writer
	renderer  *Renderer
	styles    Styles
	errs      *ErrorHandler
	validator *validation.TaskUpdateValidator
	describe  bool
	logger    *zap.Logger
}

// NewSession wires a session to its input and output streams.
func NewSession(store TaskStore, advisor Advisor, in io.Reader, out io.Writer, opts SessionOptions) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		store:     store,
		advisor:   advisor,
		reader:    newLineReader(in, out),
		out:       out,
		renderer:  NewRenderer(opts.Display, opts.Terminal),
		styles:    NewStyles(opts.Terminal),
		errs:      NewErrorHandler(logger),
		validator: validation.NewTaskUpdateValidator(),
		describe:  opts.Display.DescribeProjects,
		logger:    logger,
	}
}

// Run greets the person, asks for a role and hands over to that role's flow.
// Running out of input or a cancelled context ends the session without error.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out)
	s.say("Hello! I'm Kara, your project management assistant.")

	role, err := s.askRole(ctx)
	if err == nil {
		s.logger.Debug("session started", zap.String("role", role))
		if role == "admin" {
			err = s.runAdmin(ctx)
		} else {
			err = s.runEmployee(ctx)
		}
	}

	if stderrors.Is(err, io.EOF) || stderrors.Is(err, context.Canceled) {
		fmt.Fprintln(s.out)
		return nil
	}
	return err
}

func (s *Session) askRole(ctx context.Context) (string, error) {
	for {
		answer, err := s.reader.ask(ctx, "\nEnter your role (admin/employee): ")
		if err != nil {
			return "", err
		}
		role, err := validation.ParseRole(answer)
		if err == nil {
			return role, nil
		}
		s.hint("Please enter either 'admin' or 'employee'.")
	}
}

// say prints a line spoken by Kara.
func (s *Session) say(format string, args ...any) {
	fmt.Fprintf(s.out, "%s %s\n", s.styles.Speaker(), fmt.Sprintf(format, args...))
}

// hint prints a re-prompt message.
func (s *Session) hint(text string) {
	fmt.Fprintln(s.out, s.styles.Warning(text))
}
