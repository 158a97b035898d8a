package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"kara/internal/config"
)

func testDisplay() config.DisplayConfig {
	return config.NewConfig().Display
}

func newTestSession(t *testing.T, input string, store *mockTaskStore, advisor *mockAdvisor) (*Session, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	s := NewSession(store, advisor, strings.NewReader(input), out, SessionOptions{
		Display: testDisplay(),
		Logger:  zaptest.NewLogger(t),
	})
	return s, out
}

func TestSession_Run_Greets(t *testing.T) {
	s, out := newTestSession(t, "", &mockTaskStore{}, &mockAdvisor{})

	require.NoError(t, s.Run(context.Background()))

	assert.Contains(t, out.String(), "Kara: Hello! I'm Kara, your project management assistant.")
	assert.Contains(t, out.String(), "Enter your role (admin/employee): ")
}

func TestSession_Run_RepromptsUnknownRole(t *testing.T) {
	s, out := newTestSession(t, "manager\n  ADMIN \nexit\n", &mockTaskStore{}, &mockAdvisor{})

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, 1, strings.Count(out.String(), "Please enter either 'admin' or 'employee'."))
	assert.Contains(t, out.String(), "Welcome, admin!")
}

func TestSession_Run_EndOfInputIsClean(t *testing.T) {
	s, out := newTestSession(t, "employee\n", &mockTaskStore{}, &mockAdvisor{})

	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), "Enter your name: ")
}

func TestSession_Run_CancelledWhileWaitingForInput(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	out := &bytes.Buffer{}
	s := NewSession(&mockTaskStore{}, &mockAdvisor{}, pr, out, SessionOptions{Display: testDisplay()})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("session did not stop after cancellation")
	}
}

func TestLineReader_LastLineWithoutNewline(t *testing.T) {
	r := newLineReader(strings.NewReader("  exit"), io.Discard)

	answer, err := r.ask(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "exit", answer)

	_, err = r.ask(context.Background(), "> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestSession_PlainOutputHasNoEscapeCodes(t *testing.T) {
	advisor := &mockAdvisor{}
	advisor.On("Advise", mock.Anything, mock.Anything).Return("Hello!")
	store := &mockTaskStore{}
	store.On("FindTasksByPerson", mock.Anything, "Dana").Return(nil, nil)

	s, out := newTestSession(t, "employee\nDana\n", store, advisor)
	require.NoError(t, s.Run(context.Background()))

	assert.NotContains(t, out.String(), "\x1b[")
}
