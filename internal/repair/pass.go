package repair

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacoboon/GameWatcher/internal/catalog"
	"github.com/Jacoboon/GameWatcher/internal/fileutil"
	"github.com/Jacoboon/GameWatcher/internal/inventory"
	"github.com/Jacoboon/GameWatcher/internal/logging"
)

const textPreviewRunes = 50

// Options controls how Apply decides and writes assignments.
type Options struct {
	ReadyStatus string
	ReadyColor  string
	// Exists reports whether a stored audio path points at a file. Defaults to
	// fileutil.Exists.
	Exists func(audioPath string) bool
	// FormatPath turns an inventory file into the value stored in the catalog.
	// Defaults to the file path unchanged.
	FormatPath func(file string) string
	Logger     *slog.Logger
}

// Apply runs the greedy per-speaker pass over entries, mutating them and
// consuming files from inv. Cancellation is checked between entries; on
// cancellation entries processed so far keep their changes and the error is
// returned, so callers must not persist.
func Apply(ctx context.Context, entries []*catalog.Entry, inv *inventory.Inventory, opts Options) (*Report, error) {
	exists := opts.Exists
	if exists == nil {
		exists = fileutil.Exists
	}
	format := opts.FormatPath
	if format == nil {
		format = func(file string) string { return file }
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	report := &Report{
		Assignments: []Assignment{},
		Unresolved:  []Unresolved{},
	}
	for i, entry := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Examined++

		current := entry.AudioPath()
		if current != "" && exists(current) {
			report.Kept++
			continue
		}

		speaker := entry.Speaker()
		file, ok := inv.Pop(speaker)
		if !ok {
			reason := ReasonNoSpeakerAudio
			if inv.Has(speaker) {
				reason = ReasonPoolExhausted
			}
			report.Unresolved = append(report.Unresolved, Unresolved{
				Index:     i,
				ID:        entry.ID(),
				Speaker:   speaker,
				AudioPath: current,
				Reason:    reason,
			})
			logging.WarnWithContext(logger, "no audio available for entry", "entry_unresolved",
				logging.String(logging.FieldEntryID, entry.ID()),
				logging.String(logging.FieldSpeaker, speaker),
				logging.String("reason", string(reason)),
				logging.String(logging.FieldErrorHint, fmt.Sprintf("add recordings for %q under the voices directory", speaker)),
				logging.String(logging.FieldImpact, "entry keeps its current audio path"))
			continue
		}

		newPath := format(file)
		if err := entry.AssignAudio(newPath, opts.ReadyStatus, opts.ReadyColor); err != nil {
			return report, fmt.Errorf("entry %d (%s): %w", i, entry.ID(), err)
		}
		assignment := Assignment{
			Index:   i,
			ID:      entry.ID(),
			Speaker: speaker,
			Text:    preview(entry.Text(), textPreviewRunes),
			OldPath: current,
			NewPath: newPath,
		}
		report.Assignments = append(report.Assignments, assignment)
		logger.Info("assigned audio",
			logging.String(logging.FieldEntryID, assignment.ID),
			logging.String(logging.FieldSpeaker, speaker),
			logging.String("text", assignment.Text),
			logging.String("old_path", current),
			logging.String("new_path", newPath))
	}
	report.Speakers = inv.Speakers()
	return report, nil
}

func preview(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
