package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubExec struct {
	logged bool

	loginCalls   int
	profileCalls int
	editCalls    int
	logoutCalls  int
}

func (s *stubExec) isLoggedIn() bool                  { return s.logged }
func (s *stubExec) Login(ctx context.Context) error   { s.loginCalls++; return nil }
func (s *stubExec) Profile(ctx context.Context) error { s.profileCalls++; return nil }
func (s *stubExec) Edit(ctx context.Context) error    { s.editCalls++; return nil }
func (s *stubExec) Logout(ctx context.Context) error  { s.logoutCalls++; return nil }

func runWithInput(t *testing.T, a execIface, input string) []string {
	t.Helper()

	var out []string
	old := printlnFn
	printlnFn = func(args ...any) (int, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			if s, ok := a.(string); ok {
				parts = append(parts, s)
			}
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = old })

	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), a, func() string { return "" }, scanner)
	return out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	s := &stubExec{logged: true}
	runWithInput(t, s, "login\nprofile\np\nedit\nlogout\nexit\n")

	require.Equal(t, 1, s.loginCalls)
	require.Equal(t, 2, s.profileCalls)
	require.Equal(t, 1, s.editCalls)
	require.Equal(t, 1, s.logoutCalls)
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	out := runWithInput(t, &stubExec{}, "frobnicate\nquit\n")

	var found bool
	for _, line := range out {
		if strings.Contains(line, "Unknown command") {
			found = true
		}
	}
	require.True(t, found)
}

func TestRunREPL_HelpDependsOnLoginState(t *testing.T) {
	out := runWithInput(t, &stubExec{logged: false}, "help\nexit\n")
	require.Contains(t, strings.Join(out, "\n"), "login, exit")

	out = runWithInput(t, &stubExec{logged: true}, "help\nexit\n")
	require.Contains(t, strings.Join(out, "\n"), "logout, exit")
}

func TestRunREPL_BlankLinesIgnored(t *testing.T) {
	s := &stubExec{}
	runWithInput(t, s, "\n\n   \nexit\n")
	require.Zero(t, s.loginCalls)
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	s := &stubExec{}
	runWithInput(t, s, "") // no commands at all
	require.Zero(t, s.loginCalls)
}
