package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tidwall/gjson"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/Jacoboon/GameWatcher/internal/fault"
	"github.com/Jacoboon/GameWatcher/internal/fileutil"
)

const stage = "catalog"

// Catalog is the ordered list of dialogue entries backed by a file.
type Catalog struct {
	Path    string
	Entries []*Entry
}

// Load reads and decodes the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		marker := fault.ErrConfiguration
		if errors.Is(err, fs.ErrNotExist) {
			marker = fault.ErrNotFound
		}
		return nil, fault.Wrap(marker, stage, "read", path, err)
	}
	entries, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &Catalog{Path: path, Entries: entries}, nil
}

// Decode parses catalog bytes into entries, in file order.
func Decode(data []byte) ([]*Entry, error) {
	text, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, fault.Wrap(fault.ErrMalformed, stage, "decode", "unreadable text encoding", err)
	}
	if !gjson.ValidBytes(text) {
		return nil, fault.Wrap(fault.ErrMalformed, stage, "decode", "invalid JSON", nil)
	}
	root := gjson.ParseBytes(text)
	if !root.IsArray() {
		return nil, fault.Wrap(fault.ErrMalformed, stage, "decode", "top-level value is not an array", nil)
	}

	var (
		entries []*Entry
		badAt   = -1
	)
	root.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			badAt = len(entries)
			return false
		}
		entries = append(entries, &Entry{raw: []byte(value.Raw)})
		return true
	})
	if badAt >= 0 {
		return nil, fault.Wrap(fault.ErrMalformed, stage, "decode", fmt.Sprintf("element %d is not an object", badAt), nil)
	}
	if entries == nil {
		entries = []*Entry{}
	}
	return entries, nil
}

// Encode renders entries as an indented JSON array. Non-ASCII text escaped
// as \uXXXX in the input is written as literal UTF-8.
func Encode(entries []*Entry) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('[')
	for i, entry := range entries {
		if i > 0 {
			compact.WriteByte(',')
		}
		raw, err := literalUnicode(entry.raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		compact.Write(raw)
	}
	compact.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("indent catalog: %w", err)
	}
	return out.Bytes(), nil
}

// Save writes the catalog back to its path atomically.
func (c *Catalog) Save() error {
	data, err := Encode(c.Entries)
	if err != nil {
		return fault.Wrap(fault.ErrWrite, stage, "encode", c.Path, err)
	}
	if err := fileutil.WriteFileAtomic(c.Path, data, 0o644); err != nil {
		return fault.Wrap(fault.ErrWrite, stage, "save", c.Path, err)
	}
	return nil
}
