package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "kara/internal/errors"
	"kara/internal/query"
	"kara/internal/repository"
)

func workloadResult() *repository.ResultSet {
	return &repository.ResultSet{
		Columns: []string{"person_name", "project_count", "total_hours"},
		Rows: [][]any{
			{"Alice", int64(2), 5.5},
			{"Bob", int64(1), 1.0},
		},
	}
}

func TestAdmin_CannedWorkloadQuery(t *testing.T) {
	store := &mockTaskStore{}
	store.On("RunQuery", mock.Anything, query.Canned{Kind: query.Workload}).Return(workloadResult(), nil).Once()

	advisor := &mockAdvisor{}
	advisor.On("Advise", mock.Anything,
		"Provide a brief observation about the query results. The query returned 2 rows.").
		Return("Alice is carrying most of the work.").Once()

	s, out := newTestSession(t, "admin\n2\nno\n", store, advisor)
	require.NoError(t, s.Run(context.Background()))

	output := out.String()
	assert.Contains(t, output, "Kara: Welcome, admin! I can help you query the project management database.")
	assert.Contains(t, output, "1. Show all projects\n2. View employee workload\n3. Check project status\n4. Or enter your own custom SQL query\n")
	assert.Contains(t, output, "\nResults:\n"+strings.Repeat("=", 100)+"\n")
	assert.Contains(t, output, "person_name          | project_count        | total_hours         \n")
	assert.Contains(t, output, "Alice                | 2                    | 5.5                 \n")
	assert.Contains(t, output, "Bob                  | 1                    | 1                   \n")
	assert.Contains(t, output, "Total rows: 2\n")
	assert.Contains(t, output, "Kara: Alice is carrying most of the work.")
	assert.Contains(t, output, "Would you like to run another query? (yes/no): ")
	assert.True(t, strings.HasSuffix(output, "Kara: Goodbye! Have a great day!\n"))

	store.AssertExpectations(t)
	advisor.AssertExpectations(t)
}

func TestAdmin_ExitImmediately(t *testing.T) {
	store := &mockTaskStore{}
	advisor := &mockAdvisor{}

	s, out := newTestSession(t, "admin\nEXIT\n", store, advisor)
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "Kara: Goodbye! Have a great day!")
	store.AssertNotCalled(t, "RunQuery", mock.Anything, mock.Anything)
	advisor.AssertNotCalled(t, "Advise", mock.Anything, mock.Anything)
}

func TestAdmin_EmptyInputReprompts(t *testing.T) {
	store := &mockTaskStore{}
	store.On("RunQuery", mock.Anything, query.Canned{Kind: query.ListTasks}).
		Return(&repository.ResultSet{Columns: []string{"id"}, Rows: [][]any{}}, nil).Once()
	advisor := &mockAdvisor{}
	advisor.On("Advise", mock.Anything, mock.Anything).Return("Nothing here yet.")

	s, out := newTestSession(t, "admin\n\n   \n1\nyes\nexit\n", store, advisor)
	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 4, strings.Count(out.String(), "Enter your query (or 'exit' to quit): "))
	assert.Contains(t, out.String(), "Total rows: 0")
	store.AssertNumberOfCalls(t, "RunQuery", 1)
}

func TestAdmin_FreeformQuery(t *testing.T) {
	sql := "SELECT project_name FROM ProjectTasks WHERE time_sheet > 4"
	store := &mockTaskStore{}
	store.On("RunQuery", mock.Anything, query.Freeform{SQL: sql}).
		Return(&repository.ResultSet{Columns: []string{"project_name"}, Rows: [][]any{{"Borealis"}}}, nil).Once()
	advisor := &mockAdvisor{}
	advisor.On("Advise", mock.Anything, mock.Anything).Return("One busy project.")

	s, out := newTestSession(t, "admin\n"+sql+"\nno\n", store, advisor)
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "Borealis")
	store.AssertExpectations(t)
}

func TestAdmin_StatementWithoutColumns(t *testing.T) {
	store := &mockTaskStore{}
	store.On("RunQuery", mock.Anything, mock.Anything).Return(&repository.ResultSet{}, nil)
	advisor := &mockAdvisor{}
	advisor.On("Advise", mock.Anything, mock.Anything).Return("Done and dusted.")

	s, out := newTestSession(t, "admin\nUPDATE ProjectTasks SET time_sheet = 1 WHERE id = 3\nno\n", store, advisor)
	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "Done! The statement ran successfully.")
	assert.NotContains(t, out.String(), "Total rows")
}

func TestAdmin_DatabaseErrorStillObserves(t *testing.T) {
	store := &mockTaskStore{}
	store.On("RunQuery", mock.Anything, query.Freeform{SQL: "SELECT * FROM Nope"}).
		Return(nil, apperrors.NewDatabaseError("freeform query", errors.New("Table 'Nope' doesn't exist"))).Once()
	advisor := &mockAdvisor{}
	advisor.On("Advise", mock.Anything,
		"Provide a brief observation about the query results. The query returned 0 rows.").
		Return("Nothing to see yet.").Once()

	s, out := newTestSession(t, "admin\nSELECT * FROM Nope\nno\n", store, advisor)
	require.NoError(t, s.Run(context.Background()))

	transcript := out.String()
	assert.Contains(t, transcript, "A database error occurred. Please try again.")
	assert.NotContains(t, transcript, "doesn't exist")
	assert.NotContains(t, transcript, "Results:")

	failure := strings.Index(transcript, "A database error occurred.")
	observation := strings.Index(transcript, "Nothing to see yet.")
	again := strings.Index(transcript, "Would you like to run another query?")
	require.NotEqual(t, -1, observation)
	assert.Less(t, failure, observation)
	assert.Less(t, observation, again)
	advisor.AssertExpectations(t)
}

func TestAdmin_AnythingButYesEnds(t *testing.T) {
	store := &mockTaskStore{}
	store.On("RunQuery", mock.Anything, mock.Anything).Return(workloadResult(), nil)
	advisor := &mockAdvisor{}
	advisor.On("Advise", mock.Anything, mock.Anything).Return("Fine.")

	s, _ := newTestSession(t, "admin\n2\ny\n2\n", store, advisor)
	require.NoError(t, s.Run(context.Background()))

	store.AssertNumberOfCalls(t, "RunQuery", 1)
}

func TestAdmin_YesIsCaseInsensitive(t *testing.T) {
	store := &mockTaskStore{}
	store.On("RunQuery", mock.Anything, mock.Anything).Return(workloadResult(), nil)
	advisor := &mockAdvisor{}
	advisor.On("Advise", mock.Anything, mock.Anything).Return("Fine.")

	s, _ := newTestSession(t, "admin\n2\n YES \n3\nno\n", store, advisor)
	require.NoError(t, s.Run(context.Background()))

	store.AssertNumberOfCalls(t, "RunQuery", 2)
}
