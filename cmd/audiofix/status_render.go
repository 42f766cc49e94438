package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/Jacoboon/GameWatcher/internal/repair"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 18
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	status := "[" + statusKindLabel(kind) + "]"
	if message != "" {
		status += " " + message
	}
	line := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", status)
	if !colorize {
		return line
	}
	return statusKindColor(kind) + line + ansiReset
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	default:
		return ansiBlue
	}
}

// repairStatusLines summarizes a run: paths, counts, and whether the catalog
// was written. Unresolved entries warn; they never fail the run.
func repairStatusLines(report *repair.Report, colorize bool) []string {
	updatedKind := statusOK
	if report.Updated() == 0 {
		updatedKind = statusInfo
	}
	unresolvedKind := statusOK
	if len(report.Unresolved) > 0 {
		unresolvedKind = statusWarn
	}

	lines := []string{
		renderStatusLine("Catalog", statusInfo, report.CatalogPath, colorize),
		renderStatusLine("Voices", statusInfo, report.VoicesRoot, colorize),
		renderStatusLine("Entries examined", statusInfo, strconv.Itoa(report.Examined), colorize),
		renderStatusLine("Already linked", statusOK, strconv.Itoa(report.Kept), colorize),
		renderStatusLine("Updated", updatedKind, strconv.Itoa(report.Updated()), colorize),
		renderStatusLine("Unresolved", unresolvedKind, unresolvedSummary(report.Unresolved), colorize),
	}
	switch {
	case report.Saved:
		lines = append(lines, renderStatusLine("Catalog write", statusOK, "saved", colorize))
	case report.DryRun:
		lines = append(lines, renderStatusLine("Catalog write", statusInfo, "dry run, not written", colorize))
	}
	return lines
}

// unresolvedSummary renders "3 (no_speaker_audio: 2, pool_exhausted: 1)".
func unresolvedSummary(entries []repair.Unresolved) string {
	if len(entries) == 0 {
		return "0"
	}
	counts := make(map[repair.Reason]int)
	for _, u := range entries {
		counts[u.Reason]++
	}
	var parts []string
	for _, reason := range []repair.Reason{repair.ReasonNoSpeakerAudio, repair.ReasonPoolExhausted} {
		if n := counts[reason]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d", reason, n))
		}
	}
	return fmt.Sprintf("%d (%s)", len(entries), strings.Join(parts, ", "))
}

func renderSectionHeader(title string, colorize bool) []string {
	line := "== " + strings.TrimSpace(title) + " =="
	rule := strings.Repeat("-", len(line))
	if colorize {
		return []string{ansiBlue + line + ansiReset, ansiBlue + rule + ansiReset}
	}
	return []string{line, rule}
}

// shouldColorize reports whether writer is a terminal. Buffers and pipes get
// plain text.
func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
