package replaylist

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tsahi-Elkayam/replaylist/pkg/types"
)

func TestFiltersCommandTable(t *testing.T) {
	isolateEnv(t)

	res := run(t, nil, "filters")
	require.Equal(t, ExitOK, res.code, res.stderr)

	for _, ft := range types.FilterTypes {
		assert.Contains(t, res.stdout, string(ft))
	}
	assert.Contains(t, res.stdout, "--property-key")
	assert.Contains(t, res.stdout, "--event-name")
}

func TestFiltersCommandJSON(t *testing.T) {
	isolateEnv(t)

	res := run(t, nil, "filters", "--output", "json")
	require.Equal(t, ExitOK, res.code, res.stderr)

	var specs []struct {
		Type     string   `json:"type"`
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &specs))
	require.Len(t, specs, len(types.FilterTypes))
	assert.Equal(t, "person_property", specs[0].Type)
	assert.Equal(t, []string{"property-key"}, specs[0].Required)
}

func TestFiltersCommandVerboseLogs(t *testing.T) {
	isolateEnv(t)

	res := run(t, nil, "-v", "filters")
	require.Equal(t, ExitOK, res.code, res.stderr)
	assert.Contains(t, res.logs, "Listing filter types")
	assert.NotContains(t, res.stdout, "Listing filter types")
}

func TestFiltersCommandBadOutput(t *testing.T) {
	isolateEnv(t)

	res := run(t, nil, "filters", "--output", "xml")
	assert.Equal(t, ExitUsage, res.code)
	assert.Contains(t, res.stderr, "--output must be one of")
}

func TestFlagList(t *testing.T) {
	assert.Equal(t, "-", flagList(nil))
	assert.Equal(t, "--url", flagList([]string{"url"}))
	assert.Equal(t, "--a, --b", flagList([]string{"a", "b"}))
}
