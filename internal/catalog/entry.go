package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Field names used by the dialogue catalog.
const (
	FieldID               = "Id"
	FieldSpeaker          = "Speaker"
	FieldText             = "Text"
	FieldAudioPath        = "AudioPath"
	FieldHasAudio         = "HasAudio"
	FieldAudioStatus      = "AudioStatus"
	FieldAudioStatusColor = "AudioStatusColor"
)

// Entry is one dialogue line, held as raw JSON object bytes.
type Entry struct {
	raw []byte
}

// NewEntry wraps a JSON object. It fails when raw is not a JSON object.
func NewEntry(raw []byte) (*Entry, error) {
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, fmt.Errorf("entry is not a JSON object")
	}
	return &Entry{raw: bytes.Clone(raw)}, nil
}

// Raw returns the entry's JSON object bytes. Callers must not modify them.
func (e *Entry) Raw() []byte { return e.raw }

func (e *Entry) get(field string) gjson.Result {
	return gjson.GetBytes(e.raw, field)
}

// ID returns the identifier as text; numeric identifiers keep their JSON
// spelling.
func (e *Entry) ID() string {
	id := e.get(FieldID)
	if id.Type == gjson.Number {
		return id.Raw
	}
	return id.String()
}

// Speaker returns the speaker name, or "" when absent.
func (e *Entry) Speaker() string { return e.get(FieldSpeaker).String() }

func (e *Entry) Text() string { return e.get(FieldText).String() }

// AudioPath returns the audio path, or "" when absent or null.
func (e *Entry) AudioPath() string { return e.get(FieldAudioPath).String() }

func (e *Entry) HasAudio() bool { return e.get(FieldHasAudio).Bool() }

func (e *Entry) AudioStatus() string { return e.get(FieldAudioStatus).String() }

func (e *Entry) AudioStatusColor() string { return e.get(FieldAudioStatusColor).String() }

// AssignAudio points the entry at path, flags it as having audio, and sets
// the presentation fields. Missing fields are appended to the object.
func (e *Entry) AssignAudio(path, status, color string) error {
	updates := []struct {
		field string
		value any
	}{
		{FieldAudioPath, path},
		{FieldHasAudio, true},
		{FieldAudioStatus, status},
		{FieldAudioStatusColor, color},
	}

	raw := e.raw
	for _, u := range updates {
		value, err := encodeValue(u.value)
		if err != nil {
			return fmt.Errorf("encode %s: %w", u.field, err)
		}
		if raw, err = sjson.SetRawBytes(raw, u.field, value); err != nil {
			return fmt.Errorf("set %s: %w", u.field, err)
		}
	}
	e.raw = raw
	return nil
}

// encodeValue renders v as JSON without HTML escaping so paths containing
// & or < stay readable.
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
