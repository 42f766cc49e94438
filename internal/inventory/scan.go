package inventory

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Jacoboon/GameWatcher/internal/fault"
)

// Options controls which files count as speaker audio.
type Options struct {
	Extension    string
	ExcludedDirs []string
	// Workers bounds how many speaker directories are listed at once.
	Workers int
}

// Scan lists the speaker directories under root and builds an inventory.
// A missing root is an error; an unreadable speaker directory fails the scan.
func Scan(ctx context.Context, root string, opts Options) (*Inventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		marker := fault.ErrConfiguration
		if errors.Is(err, fs.ErrNotExist) {
			marker = fault.ErrNotFound
		}
		return nil, fault.Wrap(marker, "inventory", "scan voices", root, err)
	}

	excluded := make(map[string]struct{}, len(opts.ExcludedDirs))
	for _, name := range opts.ExcludedDirs {
		excluded[name] = struct{}{}
	}

	var speakers []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if _, skip := excluded[name]; skip {
			continue
		}
		if isDir(root, entry) {
			speakers = append(speakers, name)
		}
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	results := make([][]string, len(speakers))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, speaker := range speakers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			files, err := listAudio(filepath.Join(root, speaker), opts.Extension)
			if err != nil {
				return fault.Wrap(fault.ErrConfiguration, "inventory", "list speaker", speaker, err)
			}
			results[i] = files
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	inv := New(root)
	for i, speaker := range speakers {
		inv.Add(speaker, results[i]...)
	}
	return inv, nil
}

func listAudio(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !strings.EqualFold(filepath.Ext(name), ext) {
			continue
		}
		if isRegular(dir, entry) {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files, nil
}

// isDir follows symlinks, so linked speaker directories count.
func isDir(parent string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.IsDir()
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}

func isRegular(parent string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink == 0 {
		return entry.Type().IsRegular()
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}
