package repair

import "github.com/Jacoboon/GameWatcher/internal/inventory"

// Reason explains why an entry could not be given audio.
type Reason string

const (
	// ReasonNoSpeakerAudio means the voices tree has no audio for the speaker.
	ReasonNoSpeakerAudio Reason = "no_speaker_audio"
	// ReasonPoolExhausted means every file for the speaker was already assigned.
	ReasonPoolExhausted Reason = "pool_exhausted"
)

// Assignment records one entry that received a new audio path.
type Assignment struct {
	Index   int    `json:"index"`
	ID      string `json:"id"`
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
	OldPath string `json:"old_path"`
	NewPath string `json:"new_path"`
}

// Unresolved records an entry left without valid audio.
type Unresolved struct {
	Index     int    `json:"index"`
	ID        string `json:"id"`
	Speaker   string `json:"speaker"`
	AudioPath string `json:"audio_path"`
	Reason    Reason `json:"reason"`
}

// Report summarizes one repair run.
type Report struct {
	RunID       string              `json:"run_id,omitempty"`
	CatalogPath string              `json:"catalog_path,omitempty"`
	VoicesRoot  string              `json:"voices_root,omitempty"`
	DryRun      bool                `json:"dry_run"`
	Saved       bool                `json:"saved"`
	Examined    int                 `json:"examined"`
	Kept        int                 `json:"kept"`
	Assignments []Assignment        `json:"assignments"`
	Unresolved  []Unresolved        `json:"unresolved"`
	Speakers    []inventory.Speaker `json:"speakers"`
}

// Updated returns how many entries were given a new audio path.
func (r *Report) Updated() int {
	if r == nil {
		return 0
	}
	return len(r.Assignments)
}
