package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tOgg1/msgboard/internal/models"
	"github.com/tOgg1/msgboard/internal/testutil"
	"github.com/tOgg1/msgboard/internal/testutil/msgservice"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"MSGBOARD_API_BASE_URL", "MSGBOARD_LOGGING_FILE", "MESSAGING_API"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func startService(t *testing.T) (*msgservice.Service, string) {
	t.Helper()
	testutil.SkipIfNoNetwork(t)
	isolateEnv(t)

	svc := msgservice.New()
	svc.SetClock(func() time.Time { return time.UnixMilli(5000) })
	server := svc.Start()
	t.Cleanup(server.Close)
	return svc, server.URL
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := runRootWithOptions(t, args...)
	return out, err
}

func runRootWithOptions(t *testing.T, args ...string) (string, *rootOptions, error) {
	t.Helper()
	root, opts := newRootCmd("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := opts.execute(root)
	return out.String(), opts, err
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	require.Equal(t, code, exitErr.Code)
}

func TestRootCommandAliases(t *testing.T) {
	root, _ := newRootCmd("dev")

	for alias, name := range map[string]string{
		"ls":     "list",
		"create": "post",
		"update": "edit",
		"rm":     "delete",
	} {
		found, _, err := root.Find([]string{alias})
		require.NoError(t, err)
		require.Equal(t, name, found.Name())
	}
}

func TestListPrintsTableOldestFirst(t *testing.T) {
	svc, url := startService(t)
	svc.Seed(
		models.Message{ID: "2", Username: "bob", Content: "second", CreatedAt: models.UnixMilliTimestamp(2000)},
		models.Message{ID: "1", Username: "alice", Content: "first\nline", CreatedAt: models.UnixMilliTimestamp(1000)},
	)

	out, err := runRoot(t, "--base-url", url, "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "ID"))
	require.Contains(t, lines[1], "alice")
	require.Contains(t, lines[1], "first line")
	require.Contains(t, lines[2], "bob")
}

func TestListJSON(t *testing.T) {
	svc, url := startService(t)
	svc.Seed(models.Message{ID: "7", Username: "alice", Content: "hi", CreatedAt: models.UnixMilliTimestamp(1000)})

	out, err := runRoot(t, "--base-url", url, "list", "--json")
	require.NoError(t, err)

	var msgs []models.Message
	require.NoError(t, json.Unmarshal([]byte(out), &msgs))
	require.Equal(t, []models.Message{{ID: "7", Username: "alice", Content: "hi", CreatedAt: models.UnixMilliTimestamp(1000)}}, msgs)
}

func TestRootWithoutTerminalPrintsList(t *testing.T) {
	_, url := startService(t)

	out, err := runRoot(t, "--base-url", url)
	require.NoError(t, err)
	require.Equal(t, "No messages\n", out)
}

func TestPostEditDelete(t *testing.T) {
	svc, url := startService(t)

	out, err := runRoot(t, "--base-url", url, "post", "--username", "alice", "--content", "hi", "--json")
	require.NoError(t, err)
	var created models.Message
	require.NoError(t, json.Unmarshal([]byte(out), &created))
	require.Equal(t, models.ID("1"), created.ID)
	require.Equal(t, "alice", created.Username)

	out, err = runRoot(t, "--base-url", url, "edit", "1", "--content", "edited")
	require.NoError(t, err)
	require.Contains(t, out, "edited")
	require.Equal(t, "edited", svc.Messages()[0].Content)

	out, err = runRoot(t, "--base-url", url, "delete", "1")
	require.NoError(t, err)
	require.Equal(t, "deleted 1\n", out)
	require.Empty(t, svc.Messages())
}

func TestPostAllowsEmptyFields(t *testing.T) {
	svc, url := startService(t)

	_, err := runRoot(t, "--base-url", url, "post")
	require.NoError(t, err)
	require.Len(t, svc.Messages(), 1)
}

func TestDeleteMissingMessageExitCode(t *testing.T) {
	_, url := startService(t)

	_, err := runRoot(t, "--base-url", url, "delete", "42")
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, ExitCodeNotFound, exitErr.Code)
	require.Contains(t, err.Error(), "something went wrong with deleting request: 404")
}

func TestServiceFailureExitCode(t *testing.T) {
	svc, url := startService(t)
	svc.FailNext(msgservice.RouteList, http.StatusServiceUnavailable)

	_, err := runRoot(t, "--base-url", url, "list")
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, ExitCodeFailure, exitErr.Code)
	require.Contains(t, err.Error(), "polling messages")
}

func TestEditRequiresContent(t *testing.T) {
	isolateEnv(t)

	_, err := runRoot(t, "--base-url", "http://127.0.0.1:1", "edit", "1")
	require.Error(t, err)
	require.Contains(t, err.Error(), "content")
	requireExitCode(t, err, ExitCodeUsage)
}

func TestCobraUsageErrorsExitWithUsageCode(t *testing.T) {
	isolateEnv(t)

	for _, args := range [][]string{
		{"edit"},
		{"delete", "1", "2"},
		{"list", "extra"},
		{"nonsense"},
		{"list", "--no-such-flag"},
		{"--poll-interval", "soon", "list"},
	} {
		_, err := runRoot(t, append([]string{"--base-url", "http://127.0.0.1:1"}, args...)...)
		require.Error(t, err, args)
		requireExitCode(t, err, ExitCodeUsage)
		require.Contains(t, err.Error(), "--help", args)
	}
}

func TestInvalidConfigIsUsageError(t *testing.T) {
	isolateEnv(t)

	_, err := runRoot(t, "--base-url", "not a url", "list")
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	require.Equal(t, ExitCodeUsage, exitErr.Code)
	require.Contains(t, err.Error(), "api.base_url")
}

func TestLogFileFlag(t *testing.T) {
	_, url := startService(t)
	logPath := filepath.Join(t.TempDir(), "logs", "msgboard.log")

	_, err := runRoot(t, "--base-url", url, "--log-level", "debug", "--log-file", logPath, "list")
	require.NoError(t, err)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "request done")
}

func TestLogFileClosedWhenCommandFails(t *testing.T) {
	svc, url := startService(t)
	svc.FailNext(msgservice.RouteList, http.StatusInternalServerError)
	logPath := filepath.Join(t.TempDir(), "msgboard.log")

	_, opts, err := runRootWithOptions(t, "--base-url", url, "--log-level", "debug", "--log-file", logPath, "list")
	requireExitCode(t, err, ExitCodeFailure)
	require.Nil(t, opts.logCloser)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Contains(t, string(data), "request done")
}

func TestMessageRowsFlattenContent(t *testing.T) {
	rows := messageRows([]models.Message{
		{ID: "1", Username: "\x1b[31malice\x1b[0m", Content: "a\n  b"},
		{ID: "2", Content: strings.Repeat("x", 100)},
	})
	require.Equal(t, []string{"1", "alice", "-", "a b"}, rows[0])
	require.Equal(t, maxContentWidth, len(rows[1][3]))
	require.True(t, strings.HasSuffix(rows[1][3], "..."))
}

func TestWriteTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeTable(&buf, []string{"A", "B"}, [][]string{{"long-cell", "x"}, {"y", "z"}}))
	require.Equal(t, "A          B\nlong-cell  x\ny          z\n", buf.String())
}
