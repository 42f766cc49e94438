package inventory_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jacoboon/GameWatcher/internal/fault"
	"github.com/Jacoboon/GameWatcher/internal/inventory"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("ID3"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func defaultOptions() inventory.Options {
	return inventory.Options{Extension: ".mp3", ExcludedDirs: []string{"previews"}, Workers: 2}
}

func TestScanCollectsSpeakerAudio(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Guard", "b.mp3"))
	touch(t, filepath.Join(root, "Guard", "a.mp3"))
	touch(t, filepath.Join(root, "Guard", "B.MP3"))
	touch(t, filepath.Join(root, "Guard", "notes.txt"))
	touch(t, filepath.Join(root, "Guard", ".a.mp3"))
	touch(t, filepath.Join(root, "Merchant", "hello.mp3"))
	touch(t, filepath.Join(root, "previews", "Guard_preview.mp3"))
	touch(t, filepath.Join(root, ".cache", "x.mp3"))
	touch(t, filepath.Join(root, "stray.mp3"))
	if err := os.MkdirAll(filepath.Join(root, "Empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "Guard", "folder.mp3"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	inv, err := inventory.Scan(context.Background(), root, defaultOptions())
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}

	want := []string{
		filepath.Join(root, "Guard", "B.MP3"),
		filepath.Join(root, "Guard", "a.mp3"),
		filepath.Join(root, "Guard", "b.mp3"),
	}
	got := inv.Files("Guard")
	if len(got) != len(want) {
		t.Fatalf("unexpected Guard files: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Guard file %d: got %q want %q", i, got[i], want[i])
		}
	}
	if inv.Has("Empty") {
		t.Fatal("speaker with no audio should not be in the inventory")
	}
	if inv.Has("previews") || inv.Has(".cache") {
		t.Fatal("excluded and hidden directories should be skipped")
	}
	if inv.Total() != 4 {
		t.Fatalf("expected 4 files, got %d", inv.Total())
	}

	speakers := inv.Speakers()
	if len(speakers) != 2 || speakers[0].Name != "Guard" || speakers[1].Name != "Merchant" {
		t.Fatalf("unexpected speakers: %+v", speakers)
	}
	if speakers[0].Available != 3 || speakers[0].Remaining != 3 {
		t.Fatalf("unexpected Guard counts: %+v", speakers[0])
	}
}

func TestPopConsumesInOrder(t *testing.T) {
	inv := inventory.New("/voices")
	inv.Add("Guard", "/voices/Guard/a.mp3", "/voices/Guard/b.mp3")

	first, ok := inv.Pop("Guard")
	if !ok || first != "/voices/Guard/a.mp3" {
		t.Fatalf("first pop: %q %v", first, ok)
	}
	second, ok := inv.Pop("Guard")
	if !ok || second != "/voices/Guard/b.mp3" {
		t.Fatalf("second pop: %q %v", second, ok)
	}
	if _, ok := inv.Pop("Guard"); ok {
		t.Fatal("expected exhausted pool")
	}
	if !inv.Has("Guard") {
		t.Fatal("exhausted speaker should still be known")
	}
	if inv.Remaining("Guard") != 0 {
		t.Fatalf("expected no remaining files, got %d", inv.Remaining("Guard"))
	}
	if _, ok := inv.Pop("Ghost"); ok {
		t.Fatal("unknown speaker should not yield files")
	}
	speakers := inv.Speakers()
	if speakers[0].Available != 2 || speakers[0].Remaining != 0 {
		t.Fatalf("unexpected counts: %+v", speakers[0])
	}
}

func TestSpeakerMatchingIsNFCNormalized(t *testing.T) {
	inv := inventory.New("/voices")
	decomposed := "Wa\u0308chter"
	inv.Add(decomposed, "/voices/w.mp3")

	if !inv.Has("W\u00e4chter") {
		t.Fatal("expected composed name to match decomposed directory")
	}
	if file, ok := inv.Pop("W\u00e4chter"); !ok || file != "/voices/w.mp3" {
		t.Fatalf("unexpected pop %q %v", file, ok)
	}
	if inv.Has("wächter") {
		t.Fatal("matching should stay case-sensitive")
	}
}

func TestAddWithoutFilesIsNoop(t *testing.T) {
	inv := inventory.New("/voices")
	inv.Add("Guard")
	if inv.Has("Guard") || len(inv.Speakers()) != 0 {
		t.Fatal("expected empty inventory")
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := inventory.Scan(context.Background(), filepath.Join(t.TempDir(), "voices"), defaultOptions())
	if !errors.Is(err, fault.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestScanCanceled(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "Guard", "a.mp3"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := inventory.Scan(ctx, root, defaultOptions())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestScanIsDeterministicAcrossWorkerCounts(t *testing.T) {
	root := t.TempDir()
	for _, speaker := range []string{"A", "B", "C", "D", "E"} {
		for _, file := range []string{"1.mp3", "2.mp3"} {
			touch(t, filepath.Join(root, speaker, file))
		}
	}
	var previous []inventory.Speaker
	for _, workers := range []int{1, 3, 8} {
		opts := defaultOptions()
		opts.Workers = workers
		inv, err := inventory.Scan(context.Background(), root, opts)
		if err != nil {
			t.Fatalf("Scan(workers=%d): %v", workers, err)
		}
		speakers := inv.Speakers()
		if previous != nil {
			for i := range speakers {
				if speakers[i] != previous[i] {
					t.Fatalf("workers=%d changed result: %+v vs %+v", workers, speakers, previous)
				}
			}
		}
		previous = speakers
	}
}
