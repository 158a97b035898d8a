package cli

import (
	"context"
	"fmt"
	"strings"

	"kara/internal/domain"
	apperrors "kara/internal/errors"
	"kara/internal/validation"
)

func (s *Session) runEmployee(ctx context.Context) error {
	name, err := s.askName(ctx)
	if err != nil {
		return err
	}

	greeting := s.advisor.Advise(ctx, fmt.Sprintf("Greet %s in 8 words or less.", name))
	fmt.Fprintln(s.out)
	s.say("%s", greeting)
	fmt.Fprintln(s.out)

	tasks, err := s.store.FindTasksByPerson(ctx, name)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintln(s.out, s.errs.Message("find tasks", err))
		return nil
	}
	if len(tasks) == 0 {
		s.say("I don't see any projects assigned to you yet, %s.", name)
		return nil
	}

	s.listTasks(ctx, name, tasks)

	id, err := s.askTaskID(ctx, tasks)
	if err != nil {
		return err
	}
	description, err := s.askDescription(ctx)
	if err != nil {
		return err
	}
	hours, err := s.askHours(ctx)
	if err != nil {
		return err
	}

	update, err := s.validator.Validate(domain.TaskUpdate{
		ID:          id,
		PersonName:  name,
		Description: description,
		Hours:       hours,
	})
	if err != nil {
		fmt.Fprintln(s.out, err.Error())
		return nil
	}

	return s.applyUpdate(ctx, update)
}

func (s *Session) askName(ctx context.Context) (string, error) {
	for {
		name, err := s.reader.ask(ctx, "Enter your name: ")
		if err != nil {
			return "", err
		}
		if err := s.validator.ValidatePersonName(name); err != nil {
			s.hint(fmt.Sprintf("Please enter your name (up to %d characters).", validation.MaxPersonNameLength))
			continue
		}
		return name, nil
	}
}

func (s *Session) listTasks(ctx context.Context, name string, tasks []domain.TaskSummary) {
	fmt.Fprintln(s.out)
	s.say("Here are your current projects, %s:", name)

	rule := strings.Repeat("=", 50)
	for _, t := range tasks {
		fmt.Fprintln(s.out)
		fmt.Fprintf(s.out, "Project ID: %d\n", t.ID)
		fmt.Fprintf(s.out, "Project Name: %s\n", t.ProjectName)
		fmt.Fprintf(s.out, "Task Date: %s\n", t.TaskDate)
		if s.describe {
			fmt.Fprintf(s.out, "About: %s\n",
				s.advisor.Advise(ctx, fmt.Sprintf("Describe the project '%s' in 8 words.", t.ProjectName)))
		}
		fmt.Fprintln(s.out, rule)
	}
}

func (s *Session) askTaskID(ctx context.Context, tasks []domain.TaskSummary) (int64, error) {
	prompt := fmt.Sprintf("\n%s Which project would you like to update? (Enter Project ID): ", s.styles.Speaker())
	for {
		answer, err := s.reader.ask(ctx, prompt)
		if err != nil {
			return 0, err
		}
		id, err := validation.ParseTaskID(answer)
		if err != nil && !s.errs.IsRangeError(err, validation.FieldTaskID) {
			s.hint("Please enter a valid number for the Project ID.")
			continue
		}
		if err != nil || !domain.ContainsTask(tasks, id) {
			s.hint("Please choose one of the Project IDs listed above.")
			continue
		}
		return id, nil
	}
}

func (s *Session) askDescription(ctx context.Context) (string, error) {
	for {
		description, err := s.reader.ask(ctx, "Please describe your task: ")
		if err != nil {
			return "", err
		}
		if err := s.validator.ValidateDescription(description); err != nil {
			s.hint(fmt.Sprintf("Please keep the description under %d characters.", validation.MaxDescriptionLength))
			continue
		}
		return description, nil
	}
}

func (s *Session) askHours(ctx context.Context) (float64, error) {
	for {
		answer, err := s.reader.ask(ctx, "How many hours did you spend on this task? ")
		if err != nil {
			return 0, err
		}
		hours, err := validation.ParseHours(answer)
		switch {
		case err == nil:
			return hours, nil
		case s.errs.IsRangeError(err, validation.FieldHours):
			s.hint("Please enter a positive number of hours.")
		default:
			s.hint("Please enter a valid number for hours spent.")
		}
	}
}

func (s *Session) applyUpdate(ctx context.Context, update domain.TaskUpdate) error {
	_, err := s.store.UpdateTaskEntry(ctx, update)
	switch {
	case err == nil:
	case ctx.Err() != nil:
		return ctx.Err()
	case apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound):
		fmt.Fprintln(s.out)
		s.say("I couldn't find Project ID %d under your name, so nothing was updated.", update.ID)
		return nil
	default:
		fmt.Fprintln(s.out)
		fmt.Fprintln(s.out, s.errs.Message("update task", err))
		return nil
	}

	fmt.Fprintln(s.out)
	s.say("Great! I've updated your task for Project ID %d:", update.ID)
	fmt.Fprintf(s.out, "Task: %s\n", update.Description)
	fmt.Fprintf(s.out, "Time logged: %s hours\n", domain.FormatHours(update.Hours))

	if update.DeservesEncouragement() {
		motivation := s.advisor.Advise(ctx, "Give a 5-word encouragement for hard work.")
		fmt.Fprintln(s.out)
		s.say("%s", motivation)
	}
	return nil
}
