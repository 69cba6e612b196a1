package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"watchlog/internal/config"
	"watchlog/internal/tmdb"
	"watchlog/internal/watchlist"
)

func TestCLIAddListEditRemove(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendSQLite)

	out := mustRun(t, env, "list")
	requireContains(t, out, "Watch list: empty")

	out = mustRun(t, env, "add", "Dune", "--type", "movie", "--rating", "4", "--notes", "  IMAX  ")
	requireContains(t, out, "Added Dune [Movie] ★★★★☆")
	requireContains(t, out, "ID: ")

	entry := addJSON(t, env, "The Bear", "-t", "tv", "-r", "5")
	if entry.Type != watchlist.KindTVShow || entry.Rating != 5 || entry.CreatedAt.IsZero() {
		t.Fatalf("unexpected entry %+v", entry)
	}

	out = mustRun(t, env, "list")
	requireContains(t, out, "Watch list: 2 of 2 entries")
	if strings.Index(out, "The Bear") > strings.Index(out, "Dune") {
		t.Fatalf("expected newest entry first:\n%s", out)
	}

	out = mustRun(t, env, "edit", shortID(entry.ID), "--rating", "3", "--notes", "season one")
	requireContains(t, out, "Updated The Bear [TV Show] ★★★☆☆")

	out = mustRun(t, env, "show", entry.ID)
	requireContains(t, out, "Rating:   ★★★☆☆ (3/5)")
	requireContains(t, out, "Notes:    season one")
	requireContains(t, out, "Updated:  ")
	requireContains(t, out, "Poster:   "+tmdb.PlaceholderPosterURL)

	out = mustRun(t, env, "rm", entry.ID)
	requireContains(t, out, "Removed The Bear")

	out = mustRun(t, env, "list")
	requireContains(t, out, "Watch list: 1 of 1 entries")
	requireNotContains(t, out, "The Bear")
}

func TestCLIListFilters(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendFile)
	mustRun(t, env, "add", "Dune", "-t", "movie", "-r", "4")
	mustRun(t, env, "add", "Severance", "-t", "tv", "-r", "5")
	mustRun(t, env, "add", "Dune: Part Two", "-t", "movie", "-r", "5")

	out := mustRun(t, env, "list", "--type", "tv")
	requireContains(t, out, "Watch list: 1 of 3 entries")
	requireContains(t, out, "Severance")
	requireNotContains(t, out, "Dune")

	out = mustRun(t, env, "list", "--search", "DUNE")
	requireContains(t, out, "Watch list: 2 of 3 entries")
	requireNotContains(t, out, "Severance")

	out = mustRun(t, env, "list", "--type", "tv", "--search", "dune")
	requireContains(t, out, "No entries match")

	out = mustRun(t, env, "--json", "list", "-t", "movie")
	var entries []watchlist.Entry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	var titles []string
	for _, e := range entries {
		titles = append(titles, e.Title)
	}
	if diff := cmp.Diff([]string{"Dune: Part Two", "Dune"}, titles); diff != "" {
		t.Fatalf("movie titles mismatch (-want +got):\n%s", diff)
	}

	if _, _, err := runCLI(t, []string{"list", "--type", "anime"}, env.configPath); err == nil {
		t.Fatal("expected unknown filter to fail")
	}
}

func TestCLIAddRejectsInvalidDraft(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendSQLite)

	_, _, err := runCLI(t, []string{"add", "  ", "--rating", "9"}, env.configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	requireContains(t, err.Error(), "entry not saved")
	requireContains(t, err.Error(), "title is required")
	requireContains(t, err.Error(), "type is required")
	requireContains(t, err.Error(), "rating must be between 1 and 5")

	out := mustRun(t, env, "list")
	requireContains(t, out, "Watch list: empty")
	if n := env.requests.Load(); n != 0 {
		t.Fatalf("expected no provider requests for manual entries, got %d", n)
	}
}

func TestCLIUnknownEntryID(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendSQLite)
	mustRun(t, env, "add", "Dune", "-t", "movie", "-r", "4")

	for _, args := range [][]string{
		{"edit", "nope-1234", "--rating", "2"},
		{"rm", "nope-1234"},
		{"show", "nope-1234"},
	} {
		_, _, err := runCLI(t, args, env.configPath)
		if err == nil {
			t.Fatalf("%v: expected error", args)
		}
		requireContains(t, err.Error(), "no entry with id nope-1234")
	}

	_, _, err := runCLI(t, []string{"edit", "nope-1234"}, env.configPath)
	if err == nil {
		t.Fatal("expected empty edit to fail")
	}
	requireContains(t, err.Error(), "nothing to change")
}

func TestCLISearchAndDetails(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendSQLite)

	out := mustRun(t, env, "search", "dune")
	requireContains(t, out, "tmdb-movie-438631")
	requireContains(t, out, "tmdb-tv-90228")
	requireContains(t, out, "Dune: Prophecy")
	requireNotContains(t, out, "Villeneuve")

	out = mustRun(t, env, "search", "nothing", "here")
	requireContains(t, out, `No movies or TV shows found for "nothing here"`)

	out = mustRun(t, env, "details", "tmdb-movie-438631")
	requireContains(t, out, "Dune (2021)")
	requireContains(t, out, "Runtime:  155 min")
	requireContains(t, out, "Genres:   Science Fiction, Adventure")
	requireContains(t, out, "Poster:   "+testImageBase+"/d5NXSklXo0qyIYkgV94XAgMIckC.jpg")

	out = mustRun(t, env, "details", "90228", "--media", "tv")
	requireContains(t, out, "Seasons:  1 (6 episodes)")

	_, _, err := runCLI(t, []string{"details", "tmdb-movie-1"}, env.configPath)
	if err == nil {
		t.Fatal("expected missing title to fail")
	}
	requireContains(t, err.Error(), "could not be found")
}

func TestCLISearchIsEmptyWhenProviderRejectsKey(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendSQLite)
	raw, err := os.ReadFile(env.configPath)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	raw = []byte(strings.Replace(string(raw), `api_key = "test-key"`, `api_key = "wrong"`, 1))
	if err := os.WriteFile(env.configPath, raw, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	out := mustRun(t, env, "search", "dune")
	requireContains(t, out, "No movies or TV shows found")
}

func TestCLIAddFromTMDB(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendSQLite)

	out := mustRun(t, env, "add", "--tmdb", "tmdb-movie-438631", "--rating", "5", "--notes", "IMAX")
	requireContains(t, out, "Added Dune (2021) [Movie] ★★★★★")
	requireContains(t, out, "ID: tmdb-movie-438631")

	out = mustRun(t, env, "show", "tmdb-movie-438631")
	requireContains(t, out, "TMDB:     438631 (movie)")
	requireContains(t, out, "Genres:   Science Fiction, Adventure")
	requireContains(t, out, "Poster:   "+testImageBase+"/d5NXSklXo0qyIYkgV94XAgMIckC.jpg")

	_, _, err := runCLI(t, []string{"add", "--tmdb", "438631", "--media", "movie", "-r", "3"}, env.configPath)
	if err == nil {
		t.Fatal("expected duplicate add to fail")
	}
	requireContains(t, err.Error(), "already recorded")

	_, _, err = runCLI(t, []string{"add", "--tmdb", "90228", "-t", "movie", "--media", "tv", "-r", "3"}, env.configPath)
	if err == nil {
		t.Fatal("expected mismatched type to fail")
	}
	requireContains(t, err.Error(), "does not match")

	_, _, err = runCLI(t, []string{"add", "--tmdb", "90228", "-r", "3"}, env.configPath)
	if err == nil {
		t.Fatal("expected bare id without media to fail")
	}
	requireContains(t, err.Error(), "--media")
}

func TestCLITheme(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendFile)

	requireContains(t, mustRun(t, env, "theme"), "Theme: light")
	requireContains(t, mustRun(t, env, "theme", "dark"), "Theme: dark")
	requireContains(t, mustRun(t, env, "theme"), "Theme: dark")
	requireContains(t, mustRun(t, env, "theme", "toggle"), "Theme: light")

	out := mustRun(t, env, "--json", "theme", "toggle")
	var payload struct {
		DarkTheme bool `json:"darkTheme"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode theme: %v", err)
	}
	if !payload.DarkTheme {
		t.Fatalf("expected dark theme after toggle, got %s", out)
	}

	requireContains(t, mustRun(t, env, "theme", "reset"), "Theme: light")
	requireContains(t, mustRun(t, env, "theme"), "Theme: light")

	if _, _, err := runCLI(t, []string{"theme", "sepia"}, env.configPath); err == nil {
		t.Fatal("expected unknown theme to fail")
	}
}

func TestCLIExportImportRoundTrip(t *testing.T) {
	src := setupCLITestEnv(t, config.BackendSQLite)
	mustRun(t, src, "add", "Dune", "-t", "movie", "-r", "4")
	mustRun(t, src, "add", "Severance", "-t", "tv", "-r", "5", "-n", "Lumon")

	exportPath := filepath.Join(t.TempDir(), "export.json")
	_, stderr, err := runCLI(t, []string{"export", "-o", exportPath}, src.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, stderr, "Exported 2 entries to "+exportPath)

	yamlOut := mustRun(t, src, "export", "--format", "yaml")
	requireContains(t, yamlOut, "title: Severance")
	requireContains(t, yamlOut, "type: TV Show")

	dst := setupCLITestEnv(t, config.BackendFile)
	mustRun(t, dst, "add", "Dune", "-t", "movie", "-r", "1")
	out := mustRun(t, dst, "import", exportPath)
	requireContains(t, out, "Imported 2 entries, skipped 0 already recorded")
	out = mustRun(t, dst, "import", exportPath)
	requireContains(t, out, "Imported 0 entries, skipped 2 already recorded")

	var want, got []watchlist.Entry
	decode := func(raw string, into *[]watchlist.Entry) {
		t.Helper()
		if err := json.Unmarshal([]byte(raw), into); err != nil {
			t.Fatalf("decode export: %v", err)
		}
	}
	raw, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	decode(string(raw), &want)
	decode(mustRun(t, dst, "export"), &got)

	if len(got) != 3 {
		t.Fatalf("expected 3 entries after import, got %d", len(got))
	}
	if diff := cmp.Diff(want, got[:2]); diff != "" {
		t.Fatalf("imported entries mismatch (-want +got):\n%s", diff)
	}
	if got[2].Rating != 1 {
		t.Fatalf("expected the pre-existing entry last, got %+v", got[2])
	}

	if _, _, err := runCLI(t, []string{"export", "--format", "csv"}, src.configPath); err == nil {
		t.Fatal("expected unsupported format to fail")
	}
}

func TestCLIImportReportsInvalidEntries(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendSQLite)
	path := filepath.Join(t.TempDir(), "bad.json")
	content := `[{"id":"a1","title":"","type":"Movie","rating":3},{"id":"b2","title":"Heat","type":"Movie","rating":5}]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write import: %v", err)
	}

	out := mustRun(t, env, "import", path)
	requireContains(t, out, "Imported 1 entries, skipped 0 already recorded")
	requireContains(t, out, "Invalid: ")

	if _, _, err := runCLI(t, []string{"import", filepath.Join(t.TempDir(), "missing.json")}, env.configPath); err == nil {
		t.Fatal("expected missing file to fail")
	}
}

func TestCLIEnrich(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendSQLite)
	mustRun(t, env, "add", "--tmdb", "tmdb-tv-90228", "-r", "4")
	mustRun(t, env, "add", "Heat", "-t", "movie", "-r", "5")

	out := mustRun(t, env, "enrich")
	requireContains(t, out, "Refreshed 1, skipped 1 without a TMDB link, failed 0")

	out = mustRun(t, env, "show", "tmdb-tv-90228")
	requireContains(t, out, "Genres:   Sci-Fi & Fantasy, Drama")
}

func TestCLIFileBackendRecoversFromCorruptDocument(t *testing.T) {
	env := setupCLITestEnv(t, config.BackendFile)
	mustRun(t, env, "add", "Heat", "-t", "movie", "-r", "5")

	cfg, _, _, err := config.Load(env.configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := os.WriteFile(cfg.FileStorePath(), []byte("{truncated"), 0o644); err != nil {
		t.Fatalf("corrupt store: %v", err)
	}

	requireContains(t, mustRun(t, env, "list"), "Watch list: empty")
	requireContains(t, mustRun(t, env, "add", "Dune", "-t", "movie", "-r", "4"), "Added Dune")
	requireContains(t, mustRun(t, env, "list"), "Watch list: 1 of 1 entries")

	moved, err := filepath.Glob(cfg.FileStorePath() + ".corrupt-*")
	if err != nil || len(moved) != 1 {
		t.Fatalf("expected corrupt document kept aside, got %v (%v)", moved, err)
	}
}
