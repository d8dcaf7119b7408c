package replaylist

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsahi-Elkayam/replaylist/pkg/config"
	"github.com/Tsahi-Elkayam/replaylist/pkg/posthog"
	"github.com/Tsahi-Elkayam/replaylist/pkg/utils"
	"github.com/Tsahi-Elkayam/replaylist/test/mocks"
)

// isolateEnv keeps the developer's config file and environment out of a test
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, env := range config.NewLoader(utils.NewTestLogger(&bytes.Buffer{})).EnvVars() {
		t.Setenv(env, "")
	}
}

type runResult struct {
	code   int
	stdout string
	stderr string
	logs   string
}

// run executes the CLI against server with the given arguments
func run(t *testing.T, server *mocks.PostHogServer, args ...string) runResult {
	t.Helper()

	var stdout, stderr, logs bytes.Buffer
	opts := []Option{}
	if server != nil {
		opts = append(opts, WithClientOptions(posthog.WithBaseURL(server.URL)))
	}

	rootCmd := NewRootCommand(utils.NewTestLogger(&logs), opts...)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)

	code := Execute(context.Background(), rootCmd, &stderr)
	return runResult{code: code, stdout: stdout.String(), stderr: stderr.String(), logs: logs.String()}
}

func TestReportError(t *testing.T) {
	usageCmd := NewRootCommand(utils.NewTestLogger(&bytes.Buffer{}))

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  []string
	}{
		{name: "no error", err: nil, wantCode: ExitOK},
		{
			name:     "usage",
			err:      NewUsageError(usageCmd, errors.New("--name is required")),
			wantCode: ExitUsage,
			wantOut:  []string{"Error: --name is required", "Run 'replaylist --help' for usage."},
		},
		{
			name:     "wrapped usage",
			err:      fmt.Errorf("outer: %w", NewUsageError(usageCmd, errors.New("bad flag"))),
			wantCode: ExitUsage,
			wantOut:  []string{"Error: bad flag"},
		},
		{
			name:     "api error",
			err:      posthog.NewAPIError("create playlist", http.StatusBadRequest, `{"detail":"bad"}`),
			wantCode: ExitError,
			wantOut:  []string{`Error: 400 - {"detail":"bad"}`},
		},
		{
			name:     "auth error",
			err:      posthog.NewAPIError("create playlist", http.StatusUnauthorized, "denied"),
			wantCode: ExitError,
			wantOut:  []string{"Error: 401 - denied", "personal API key"},
		},
		{
			name:     "other error",
			err:      errors.New("connection refused"),
			wantCode: ExitError,
			wantOut:  []string{"Error: connection refused"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Equal(t, tt.wantCode, ReportError(&buf, tt.err))
			for _, want := range tt.wantOut {
				assert.Contains(t, buf.String(), want)
			}
			if tt.err == nil {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestIsUsageError(t *testing.T) {
	cmd := NewRootCommand(utils.NewTestLogger(&bytes.Buffer{}))
	assert.True(t, IsUsageError(NewUsageError(cmd, errors.New("x"))))
	assert.False(t, IsUsageError(errors.New("x")))
}

func TestRootCommandHelp(t *testing.T) {
	isolateEnv(t)

	res := run(t, nil)
	assert.Equal(t, ExitOK, res.code)
	assert.Contains(t, res.stdout, "replaylist creates saved session replay playlists")
	assert.Contains(t, res.stdout, "create")
	assert.Contains(t, res.stdout, "filters")
}

func TestRootCommandUnknownFlag(t *testing.T) {
	isolateEnv(t)

	res := run(t, nil, "create", "--no-such-flag")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "unknown flag: --no-such-flag")
	assert.Contains(t, res.stderr, "Run 'replaylist create --help' for usage.")
}

func TestRootCommandBadConfigFile(t *testing.T) {
	isolateEnv(t)

	res := run(t, nil, "--config", "/nonexistent/replaylist.yaml", "filters")
	assert.Equal(t, ExitError, res.code)
	require.Contains(t, res.stderr, "failed to load configuration")
}
