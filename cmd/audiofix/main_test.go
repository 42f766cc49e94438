package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Jacoboon/GameWatcher/internal/fault"
	"github.com/Jacoboon/GameWatcher/internal/inventory"
	"github.com/Jacoboon/GameWatcher/internal/repair"
	"github.com/Jacoboon/GameWatcher/internal/testsupport"
)

func runCLI(t *testing.T, repo *testsupport.Repo, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--root", repo.Root}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// setupRepo builds the Guard/Merchant/Ghost fixture with an isolated HOME so
// no per-user configuration leaks into the run.
func setupRepo(t *testing.T) *testsupport.Repo {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, key := range []string{"AUDIOFIX_CATALOG", "AUDIOFIX_VOICES_DIR", "AUDIOFIX_LOG_LEVEL"} {
		t.Setenv(key, "")
	}

	repo := testsupport.NewRepo(t)
	repo.AddAudio(t, "Guard", "guard_01.mp3", "guard_02.mp3")
	repo.AddAudio(t, "Merchant", "merchant_01.mp3")
	repo.AddAudio(t, "previews", "Ghost.mp3")
	repo.WriteCatalog(t,
		testsupport.Entry("1", "Guard", "Halt! Who goes there?", "", false),
		testsupport.Entry("2", "Guard", "Move along.", filepath.Join(repo.VoicesDir, "Guard", "gone.mp3"), true),
		testsupport.Entry("3", "Merchant", "Wares for sale!", "", false),
		testsupport.Entry("4", "Ghost", "Boo.", "", false),
	)
	return repo
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n%s", needle, haystack)
	}
}

func TestRootCommandRepairsCatalog(t *testing.T) {
	repo := setupRepo(t)

	out, stderr, err := runCLI(t, repo)
	if err != nil {
		t.Fatalf("audiofix: %v\n%s", err, stderr)
	}
	requireContains(t, out, "== Audio repair ==")
	requireContains(t, out, "[OK] 3")
	requireContains(t, out, "no_speaker_audio")
	requireContains(t, stderr, "assigned audio")

	entries := repo.ReadCatalog(t)
	wantPaths := []string{
		filepath.Join(repo.VoicesDir, "Guard", "guard_01.mp3"),
		filepath.Join(repo.VoicesDir, "Guard", "guard_02.mp3"),
		filepath.Join(repo.VoicesDir, "Merchant", "merchant_01.mp3"),
		"",
	}
	for i, want := range wantPaths {
		if got := entries[i]["AudioPath"]; got != want {
			t.Fatalf("entry %d AudioPath = %v, want %q", i, got, want)
		}
	}
	if entries[3]["HasAudio"] != false || entries[3]["AudioStatus"] != "❌ Missing" {
		t.Fatalf("unresolved entry changed: %v", entries[3])
	}
	if entries[0]["AudioStatus"] != "✅ Ready" || entries[0]["AudioStatusColor"] != "Green" {
		t.Fatalf("repaired entry status not updated: %v", entries[0])
	}
}

func TestRepairCommandDryRunJSON(t *testing.T) {
	repo := setupRepo(t)
	before := repo.ReadCatalogRaw(t)

	out, stderr, err := runCLI(t, repo, "repair", "--dry-run", "--json", "--log-level", "error")
	if err != nil {
		t.Fatalf("repair --dry-run: %v\n%s", err, stderr)
	}

	var report repair.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if !report.DryRun || report.Saved {
		t.Fatalf("expected unsaved dry run, got dry_run=%v saved=%v", report.DryRun, report.Saved)
	}
	if report.Examined != 4 || report.Updated() != 3 || len(report.Unresolved) != 1 {
		t.Fatalf("unexpected counts: examined=%d updated=%d unresolved=%d",
			report.Examined, report.Updated(), len(report.Unresolved))
	}
	if report.RunID == "" {
		t.Fatal("expected run id in report")
	}
	if !bytes.Equal(repo.ReadCatalogRaw(t), before) {
		t.Fatal("dry run modified the catalog")
	}
	if stderr != "" {
		t.Fatalf("expected no logs at error level, got %q", stderr)
	}
}

func TestRepairCommandSecondRunKeepsEverything(t *testing.T) {
	repo := setupRepo(t)

	if _, stderr, err := runCLI(t, repo, "repair"); err != nil {
		t.Fatalf("first run: %v\n%s", err, stderr)
	}
	first := repo.ReadCatalogRaw(t)

	out, stderr, err := runCLI(t, repo, "repair", "--json")
	if err != nil {
		t.Fatalf("second run: %v\n%s", err, stderr)
	}
	var report repair.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v", err)
	}
	if report.Updated() != 0 || report.Kept != 3 {
		t.Fatalf("expected idempotent second run, got updated=%d kept=%d", report.Updated(), report.Kept)
	}
	if !bytes.Equal(repo.ReadCatalogRaw(t), first) {
		t.Fatal("second run changed the catalog bytes")
	}
}

func TestRepairCommandMissingCatalog(t *testing.T) {
	repo := setupRepo(t)
	if err := os.Remove(repo.CatalogPath); err != nil {
		t.Fatalf("remove catalog: %v", err)
	}

	_, _, err := runCLI(t, repo, "repair")
	if err == nil {
		t.Fatal("expected error for missing catalog")
	}
	if !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRepairCommandCatalogOverride(t *testing.T) {
	repo := setupRepo(t)
	alt := filepath.Join(repo.Root, "alt_catalog.json")
	body := `[{"Id": 9, "Speaker": "Merchant", "AudioPath": "", "HasAudio": false}]`
	if err := os.WriteFile(alt, []byte(body), 0o644); err != nil {
		t.Fatalf("write alt catalog: %v", err)
	}
	before := repo.ReadCatalogRaw(t)

	if _, stderr, err := runCLI(t, repo, "repair", "--catalog", alt); err != nil {
		t.Fatalf("repair --catalog: %v\n%s", err, stderr)
	}
	data, err := os.ReadFile(alt)
	if err != nil {
		t.Fatalf("read alt catalog: %v", err)
	}
	requireContains(t, string(data), "merchant_01.mp3")
	requireContains(t, string(data), `"Id": 9`)
	if !bytes.Equal(repo.ReadCatalogRaw(t), before) {
		t.Fatal("default catalog should be untouched")
	}
}

func TestInventoryCommand(t *testing.T) {
	repo := setupRepo(t)

	out, stderr, err := runCLI(t, repo, "inventory")
	if err != nil {
		t.Fatalf("inventory: %v\n%s", err, stderr)
	}
	requireContains(t, out, "Guard")
	requireContains(t, out, "Merchant")
	requireContains(t, out, "3 files for 2 speakers")
	if strings.Contains(out, "previews") {
		t.Fatalf("previews directory should be excluded:\n%s", out)
	}

	out, _, err = runCLI(t, repo, "inventory", "--json")
	if err != nil {
		t.Fatalf("inventory --json: %v", err)
	}
	var speakers []inventory.Speaker
	if err := json.Unmarshal([]byte(out), &speakers); err != nil {
		t.Fatalf("decode inventory: %v\n%s", err, out)
	}
	if len(speakers) != 2 || speakers[0].Name != "Guard" || speakers[0].Available != 2 {
		t.Fatalf("unexpected inventory: %+v", speakers)
	}
}

func TestConfigInitValidateShow(t *testing.T) {
	repo := setupRepo(t)

	out, _, err := runCLI(t, repo, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
	requireContains(t, out, "Configuration valid")

	out, _, err = runCLI(t, repo, "config", "init")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	target := filepath.Join(repo.Root, "audiofix.toml")
	requireContains(t, out, "Wrote sample configuration to "+target)

	if _, _, err := runCLI(t, repo, "config", "init"); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, repo, "config", "init", "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, _, err = runCLI(t, repo, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	requireContains(t, out, "[paths]")
	requireContains(t, out, repo.CatalogPath)
	requireContains(t, out, "path_style")
	requireContains(t, out, "absolute")
}

func TestConfigValidateReportsMissingVoices(t *testing.T) {
	repo := setupRepo(t)
	if err := os.RemoveAll(repo.VoicesDir); err != nil {
		t.Fatalf("remove voices: %v", err)
	}

	out, _, err := runCLI(t, repo, "config", "validate")
	if err == nil {
		t.Fatal("expected validate to fail without voices directory")
	}
	requireContains(t, out, "[ERROR] missing: "+repo.VoicesDir)
}

func TestRepairHelpMentionsLockFile(t *testing.T) {
	repo := setupRepo(t)

	out, _, err := runCLI(t, repo, "repair", "--help")
	if err != nil {
		t.Fatalf("repair --help: %v", err)
	}
	requireContains(t, out, "SimpleLoop/dialogue_catalog.json.lock")
	requireContains(t, out, ".gitignore")

	if _, stderr, err := runCLI(t, repo, "repair"); err != nil {
		t.Fatalf("repair: %v\n%s", err, stderr)
	}
	if _, err := os.Stat(repo.CatalogPath + ".lock"); err != nil {
		t.Fatalf("expected lock file next to catalog: %v", err)
	}
}
