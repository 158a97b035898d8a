package cli

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"kara/internal/query"
)

func (s *Session) runAdmin(ctx context.Context) error {
	fmt.Fprintln(s.out)
	s.say("Welcome, admin! I can help you query the project management database.")
	fmt.Fprintln(s.out, "You can ask me to:")
	for _, entry := range query.Menu {
		fmt.Fprintf(s.out, "%s. %s\n", entry.Key, entry.Description)
	}

	for {
		input, err := s.reader.ask(ctx, "\nEnter your query (or 'exit' to quit): ")
		if err != nil {
			return err
		}
		if strings.EqualFold(input, "exit") {
			s.say("Goodbye! Have a great day!")
			return nil
		}
		if input == "" {
			continue
		}

		if err := s.runQuery(ctx, query.Parse(input)); err != nil {
			return err
		}

		answer, err := s.reader.ask(ctx, "\nWould you like to run another query? (yes/no): ")
		if err != nil {
			return err
		}
		if strings.ToLower(answer) != "yes" {
			s.say("Goodbye! Have a great day!")
			return nil
		}
	}
}

// runQuery prints the results of q followed by Kara's observation. A failed
// query reports a generic message and still gets an observation over 0 rows.
// Only context cancellation is returned.
func (s *Session) runQuery(ctx context.Context, q query.Query) error {
	result, err := s.store.RunQuery(ctx, q)
	switch {
	case err == nil:
		s.logger.Debug("query finished", zap.Int("rows", result.Len()))
		s.renderer.Render(s.out, result)
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, s.errs.Message("run query", err))
	}

	insight := s.advisor.Advise(ctx, fmt.Sprintf(
		"Provide a brief observation about the query results. The query returned %d rows.", result.Len()))
	fmt.Fprintln(s.out)
	s.say("%s", insight)
	return nil
}
