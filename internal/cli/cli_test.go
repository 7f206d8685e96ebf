package cli_test

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/esmatch/internal/cache"
	"github.com/rshade/esmatch/internal/cli"
	"github.com/rshade/esmatch/internal/config"
	"github.com/rshade/esmatch/internal/match"
)

const upcomingBody = `[
  {
    "id": 101,
    "name": "Semifinal A: G2 vs FNC",
    "scheduled_at": "2026-05-01T18:00:00Z",
    "status": "running",
    "videogame": {"id": 1, "name": "LoL"},
    "league": {"id": 2, "name": "LEC"},
    "tournament": {"id": 3, "name": "Playoffs"},
    "opponents": [
      {"type": "Team", "opponent": {"id": 10, "name": "G2 Esports", "acronym": "G2"}},
      {"type": "Team", "opponent": {"id": 11, "name": "Fnatic", "acronym": "FNC"}}
    ]
  },
  {
    "id": 102,
    "name": "Grand Final",
    "scheduled_at": "2026-05-03T17:00:00Z",
    "status": "not_started",
    "videogame": {"id": 4, "name": "Counter-Strike"},
    "league": {"id": 5, "name": "ESL Pro League"},
    "tournament": {"id": 6, "name": "Playoffs"},
    "opponents": []
  }
]`

// apiServer serves upcomingBody until fail is set, counting requests.
type apiServer struct {
	*httptest.Server
	hits atomic.Int32
	fail atomic.Bool
}

func newAPIServer(t *testing.T) *apiServer {
	t.Helper()
	s := &apiServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		if s.fail.Load() {
			http.Error(w, "maintenance", http.StatusServiceUnavailable)
			return
		}
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(upcomingBody))
	}))
	t.Cleanup(s.Close)
	return s
}

// setupCLITest isolates HOME and the environment and points the client at api.
func setupCLITest(t *testing.T, api *apiServer) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, env := range []string{
		config.EnvCacheDir, config.EnvCooldown, config.EnvTimeout, config.EnvFeeds,
		config.EnvLogLevel, config.EnvLogFormat, config.EnvLogFile,
	} {
		t.Setenv(env, "")
	}
	t.Setenv(config.EnvAPIToken, "test-token")
	if api != nil {
		t.Setenv(config.EnvBaseURL, api.URL)
	}
	return home
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("1.2.3")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(bytes.NewReader(nil))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func snapshotPath(home, key string) string {
	return filepath.Join(home, ".esmatch", "snapshots", cache.FileName(key))
}

func TestMissingTokenIsStartupError(t *testing.T) {
	setupCLITest(t, nil)
	t.Setenv(config.EnvAPIToken, "")

	_, _, err := execute(t, "list")
	require.Error(t, err)
	assert.True(t, config.IsStartupError(err))
}

func TestVersionFlag(t *testing.T) {
	setupCLITest(t, nil)

	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "1.2.3")
}

func TestBrowseRequiresTerminal(t *testing.T) {
	setupCLITest(t, newAPIServer(t))

	_, _, err := execute(t, "browse")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "esmatch list")
}

func TestListTable(t *testing.T) {
	api := newAPIServer(t)
	home := setupCLITest(t, api)

	out, _, err := execute(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "Semifinal A: G2 vs FNC")
	assert.Contains(t, out, "Grand Final")
	assert.Contains(t, out, "live")
	assert.Contains(t, out, "2 of 2 matches · /matches/upcoming · fetched")
	assert.FileExists(t, snapshotPath(home, "/matches/upcoming"))
	assert.Equal(t, int32(1), api.hits.Load())
}

func TestListFormats(t *testing.T) {
	api := newAPIServer(t)
	setupCLITest(t, api)

	out, _, err := execute(t, "list", "--live", "--output", "json")
	require.NoError(t, err)
	var live []match.Match
	require.NoError(t, json.Unmarshal([]byte(out), &live))
	require.Len(t, live, 1)
	assert.Equal(t, 101, live[0].ID)
	assert.Equal(t, match.StatusLive, live[0].Status)

	out, _, err = execute(t, "list", "--game", "counter-strike", "-o", "yaml")
	require.NoError(t, err)
	var games []match.Match
	require.NoError(t, yaml.Unmarshal([]byte(out), &games))
	require.Len(t, games, 1)
	assert.Equal(t, "Grand Final", games[0].Name)

	out, _, err = execute(t, "list", "--league", "esl", "-o", "json")
	require.NoError(t, err)
	var leagues []match.Match
	require.NoError(t, json.Unmarshal([]byte(out), &leagues))
	assert.Len(t, leagues, 1)

	// every run after the first is served from the snapshot
	assert.Equal(t, int32(1), api.hits.Load())
}

func TestListEmptyResult(t *testing.T) {
	setupCLITest(t, newAPIServer(t))

	out, _, err := execute(t, "list", "--search", "quarterfinal")
	require.NoError(t, err)
	assert.Contains(t, out, "No matches found.")

	out, _, err = execute(t, "list", "--search", "quarterfinal", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestListRejectsInvalidFlags(t *testing.T) {
	setupCLITest(t, newAPIServer(t))

	_, _, err := execute(t, "list", "--game", "LoL", "--live")
	require.Error(t, err)

	_, _, err = execute(t, "list", "--output", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestListRefreshRefetches(t *testing.T) {
	api := newAPIServer(t)
	setupCLITest(t, api)

	_, _, err := execute(t, "list")
	require.NoError(t, err)
	_, _, err = execute(t, "list", "--refresh")
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.hits.Load())

	t.Setenv(config.EnvCooldown, "0")
	_, _, err = execute(t, "list")
	require.NoError(t, err)
	assert.Equal(t, int32(3), api.hits.Load())
}

func TestListFailureKeepsSnapshot(t *testing.T) {
	api := newAPIServer(t)
	home := setupCLITest(t, api)

	_, _, err := execute(t, "list")
	require.NoError(t, err)
	before, err := os.ReadFile(snapshotPath(home, "/matches/upcoming"))
	require.NoError(t, err)

	api.fail.Store(true)
	out, stderr, err := execute(t, "list", "--refresh")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: refresh failed")
	assert.Contains(t, stderr, "503")
	assert.Contains(t, out, "Grand Final")

	after, err := os.ReadFile(snapshotPath(home, "/matches/upcoming"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestListFailureWithoutSnapshot(t *testing.T) {
	api := newAPIServer(t)
	home := setupCLITest(t, api)
	api.fail.Store(true)

	_, _, err := execute(t, "list", "--feed", "matches/running")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching /matches/running failed")
	assert.Contains(t, err.Error(), "503")
	assert.NoFileExists(t, snapshotPath(home, "/matches/running"))
}

func TestCacheStatus(t *testing.T) {
	api := newAPIServer(t)
	home := setupCLITest(t, api)

	out, _, err := execute(t, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "absent")
	assert.NotContains(t, out, "fresh")

	_, _, err = execute(t, "list")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(snapshotPath(home, "/matches/past"), []byte("{not json"), 0o600))

	out, _, err = execute(t, "cache", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "/matches/upcoming")
	assert.Contains(t, out, "fresh")
	assert.Contains(t, out, "malformed")
	assert.Contains(t, out, "Cooldown: 10m0s")
	assert.Equal(t, int32(1), api.hits.Load())
}

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t, nil)
	t.Setenv(config.EnvAPIToken, "")

	out, _, err := execute(t, "config", "init", "--cooldown", "5m")
	require.NoError(t, err)
	path := filepath.Join(home, ".esmatch", "config.yaml")
	assert.Contains(t, out, "Configuration initialized at "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "cooldown: 5m0s")

	// not a terminal, so no confirmation is offered
	_, _, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	custom := filepath.Join(t.TempDir(), "esmatch.yaml")
	_, _, err = execute(t, "config", "init", "--config", custom, "--timeout", "30")
	require.NoError(t, err)
	data, err = os.ReadFile(custom)
	require.NoError(t, err)
	assert.Contains(t, string(data), "timeout: 30s")

	_, _, err = execute(t, "config", "init", "--force", "--timeout", "0")
	require.Error(t, err)
}

func TestConfigFileIsUsed(t *testing.T) {
	api := newAPIServer(t)
	home := setupCLITest(t, api)

	cfgPath := filepath.Join(home, "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cache:\n  cooldown: \"0\"\n"), 0o600))

	_, _, err := execute(t, "list", "--config", cfgPath)
	require.NoError(t, err)
	_, _, err = execute(t, "list", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, int32(2), api.hits.Load())
}

func TestListSortAndLimit(t *testing.T) {
	setupCLITest(t, newAPIServer(t))

	out, _, err := execute(t, "list", "--sort", "id:desc", "--limit", "1", "-o", "json")
	require.NoError(t, err)
	var got []match.Match
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 102, got[0].ID)

	out, _, err = execute(t, "list", "--offset", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 2 matches")

	_, _, err = execute(t, "list", "--sort", "savings")
	require.Error(t, err)

	_, _, err = execute(t, "list", "--limit", "-1")
	require.Error(t, err)

	out, _, err = execute(t, "list", "--offset", "1", "--limit", strconv.Itoa(math.MaxInt))
	require.NoError(t, err)
	assert.Contains(t, out, "1 of 2 matches")
}
