package inventory

import (
	"sort"

	"golang.org/x/text/unicode/norm"
)

// Speaker summarizes one speaker's pool.
type Speaker struct {
	Name      string `json:"name"`
	Available int    `json:"available"`
	Remaining int    `json:"remaining"`
}

type pool struct {
	name    string
	files   []string
	initial int
}

// Inventory maps speakers to the audio files not yet handed out.
type Inventory struct {
	Root  string
	pools map[string]*pool
	order []string
}

// New returns an empty inventory for the voices root.
func New(root string) *Inventory {
	return &Inventory{Root: root, pools: make(map[string]*pool)}
}

func speakerKey(name string) string {
	return norm.NFC.String(name)
}

// Add appends files to a speaker's pool. Adding no files is a no-op, so a
// speaker with an empty directory never appears in the inventory.
func (inv *Inventory) Add(speaker string, files ...string) {
	if len(files) == 0 {
		return
	}
	key := speakerKey(speaker)
	p, ok := inv.pools[key]
	if !ok {
		p = &pool{name: speaker}
		inv.pools[key] = p
		inv.order = append(inv.order, key)
	}
	p.files = append(p.files, files...)
	p.initial += len(files)
}

// Has reports whether the speaker had any audio when the inventory was built.
func (inv *Inventory) Has(speaker string) bool {
	_, ok := inv.pools[speakerKey(speaker)]
	return ok
}

// Pop removes and returns the first remaining file for speaker.
func (inv *Inventory) Pop(speaker string) (string, bool) {
	p, ok := inv.pools[speakerKey(speaker)]
	if !ok || len(p.files) == 0 {
		return "", false
	}
	file := p.files[0]
	p.files[0] = ""
	p.files = p.files[1:]
	return file, true
}

// Remaining returns how many files are left for speaker.
func (inv *Inventory) Remaining(speaker string) int {
	if p, ok := inv.pools[speakerKey(speaker)]; ok {
		return len(p.files)
	}
	return 0
}

// Files returns a copy of the files still available for speaker.
func (inv *Inventory) Files(speaker string) []string {
	p, ok := inv.pools[speakerKey(speaker)]
	if !ok {
		return nil
	}
	return append([]string(nil), p.files...)
}

// Speakers lists every pool sorted by speaker name.
func (inv *Inventory) Speakers() []Speaker {
	out := make([]Speaker, 0, len(inv.order))
	for _, key := range inv.order {
		p := inv.pools[key]
		out = append(out, Speaker{Name: p.name, Available: p.initial, Remaining: len(p.files)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Total returns the number of files found across all speakers.
func (inv *Inventory) Total() int {
	total := 0
	for _, p := range inv.pools {
		total += p.initial
	}
	return total
}
