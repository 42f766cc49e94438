package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jacoboon/GameWatcher/internal/config"
)

// Repo is a throwaway GameWatcher checkout with a catalog and a voices tree.
type Repo struct {
	Root        string
	CatalogPath string
	VoicesDir   string
}

// NewRepo creates a repository root marked by GameWatcher.sln with empty
// SimpleLoop/ and voices/ directories.
func NewRepo(t testing.TB) *Repo {
	t.Helper()

	root := t.TempDir()
	repo := &Repo{
		Root:        root,
		CatalogPath: filepath.Join(root, "SimpleLoop", "dialogue_catalog.json"),
		VoicesDir:   filepath.Join(root, "voices"),
	}
	if err := os.WriteFile(filepath.Join(root, "GameWatcher.sln"), nil, 0o644); err != nil {
		t.Fatalf("write solution marker: %v", err)
	}
	for _, dir := range []string{filepath.Dir(repo.CatalogPath), repo.VoicesDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return repo
}

// WriteCatalog stores entries as the catalog. Keys inside each entry are
// written in sorted order.
func (r *Repo) WriteCatalog(t testing.TB, entries ...map[string]any) {
	t.Helper()
	if entries == nil {
		entries = []map[string]any{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		t.Fatalf("marshal catalog: %v", err)
	}
	r.WriteCatalogRaw(t, string(data))
}

// WriteCatalogRaw stores the catalog text verbatim.
func (r *Repo) WriteCatalogRaw(t testing.TB, body string) {
	t.Helper()
	if err := os.WriteFile(r.CatalogPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
}

// ReadCatalog decodes the catalog file into generic entries.
func (r *Repo) ReadCatalog(t testing.TB) []map[string]any {
	t.Helper()
	var entries []map[string]any
	if err := json.Unmarshal(r.ReadCatalogRaw(t), &entries); err != nil {
		t.Fatalf("decode catalog: %v", err)
	}
	return entries
}

// ReadCatalogRaw returns the catalog bytes.
func (r *Repo) ReadCatalogRaw(t testing.TB) []byte {
	t.Helper()
	data, err := os.ReadFile(r.CatalogPath)
	if err != nil {
		t.Fatalf("read catalog: %v", err)
	}
	return data
}

// AddAudio creates voice files for speaker and returns their paths.
func (r *Repo) AddAudio(t testing.TB, speaker string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(r.VoicesDir, speaker, name)
		WriteFile(t, path, 64)
		paths = append(paths, path)
	}
	return paths
}

// Entry builds a catalog entry map with the standard fields.
func Entry(id, speaker, text, audioPath string, hasAudio bool) map[string]any {
	status, color := "❌ Missing", "Red"
	if hasAudio {
		status, color = "✅ Ready", "Green"
	}
	return map[string]any{
		"Id":               id,
		"Speaker":          speaker,
		"Text":             text,
		"AudioPath":        audioPath,
		"HasAudio":         hasAudio,
		"AudioStatus":      status,
		"AudioStatusColor": color,
	}
}

// NewConfig returns defaults resolved against repo, the way config.Load would
// for a repository without audiofix.toml.
func NewConfig(t testing.TB, repo *Repo, opts ...ConfigOption) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Root = repo.Root
	cfg.Paths.Catalog = repo.CatalogPath
	cfg.Paths.Voices = repo.VoicesDir
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return &cfg
}
