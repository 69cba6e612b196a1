package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"watchlog/internal/watchlist"
)

const testImageBase = "https://image.example/t/p/w500"

type cliTestEnv struct {
	configPath string
	dataDir    string
	provider   *httptest.Server
	requests   atomic.Int64
}

func setupCLITestEnv(t *testing.T, backend string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TMDB_API_KEY", "")

	env := &cliTestEnv{dataDir: filepath.Join(base, "data")}
	env.provider = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.requests.Add(1)
		fakeTMDB(w, r)
	}))
	t.Cleanup(env.provider.Close)

	env.configPath = filepath.Join(homeDir, ".config", "watchlog", "config.toml")
	writeTestConfig(t, env.configPath, env.provider.URL, env.dataDir, backend)
	return env
}

func writeTestConfig(t *testing.T, path, tmdbURL, dataDir, backend string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	content := fmt.Sprintf(`[tmdb]
api_key = "test-key"
base_url = %q
image_base_url = %q

[storage]
backend = %q
data_dir = %q

[search]
debounce_ms = 10

[logging]
level = "error"
`, tmdbURL, testImageBase, backend, dataDir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func fakeTMDB(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("api_key") != "test-key" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_code":7,"status_message":"Invalid API key: You must be granted a valid key."}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/search/multi":
		if !strings.EqualFold(r.URL.Query().Get("query"), "dune") {
			_, _ = w.Write([]byte(`{"results":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[
			{"id":438631,"media_type":"movie","title":"Dune","release_date":"2021-09-15","poster_path":"/d5NXSklXo0qyIYkgV94XAgMIckC.jpg","overview":"Paul Atreides..."},
			{"id":1001,"media_type":"person","name":"Denis Villeneuve"},
			{"id":90228,"media_type":"tv","name":"Dune: Prophecy","first_air_date":"2024-11-17","overview":"Ten thousand years..."}
		]}`))
	case "/movie/438631":
		_, _ = w.Write([]byte(`{"id":438631,"title":"Dune","release_date":"2021-09-15","poster_path":"/d5NXSklXo0qyIYkgV94XAgMIckC.jpg",
			"overview":"Paul Atreides, a brilliant and gifted young man...","runtime":155,"status":"Released",
			"tagline":"It begins.","vote_average":7.8,
			"genres":[{"id":878,"name":"Science Fiction"},{"id":12,"name":"Adventure"}]}`))
	case "/tv/90228":
		_, _ = w.Write([]byte(`{"id":90228,"name":"Dune: Prophecy","first_air_date":"2024-11-17","poster_path":"/prophecy.jpg",
			"overview":"Ten thousand years before...","number_of_seasons":1,"number_of_episodes":6,"status":"Returning Series",
			"genres":[{"id":10765,"name":"Sci-Fi & Fantasy"},{"id":18,"name":"Drama"}]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"status_code":34,"status_message":"The resource you requested could not be found."}`))
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// mustRun fails the test when the command errors and returns its stdout.
func mustRun(t *testing.T, env *cliTestEnv, args ...string) string {
	t.Helper()
	out, stderr, err := runCLI(t, args, env.configPath)
	if err != nil {
		t.Fatalf("watchlog %s: %v (stderr: %s)", strings.Join(args, " "), err, stderr)
	}
	return out
}

func addJSON(t *testing.T, env *cliTestEnv, args ...string) watchlist.Entry {
	t.Helper()
	out := mustRun(t, env, append([]string{"--json", "add"}, args...)...)
	var entry watchlist.Entry
	if err := json.Unmarshal([]byte(out), &entry); err != nil {
		t.Fatalf("decode add output %q: %v", out, err)
	}
	return entry
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
