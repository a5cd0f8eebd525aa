package remote

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EntryKind discriminates the two historical shapes of a version index entry.
type EntryKind int

const (
	// KindLegacy is any non-object entry. Old daily indexes stored bare
	// version strings; those never match.
	KindLegacy EntryKind = iota
	// KindRecord is an object entry with a "version" field.
	KindRecord
)

func (k EntryKind) String() string {
	switch k {
	case KindRecord:
		return "record"
	default:
		return "legacy"
	}
}

// Entry is one element of the daily version index.
type Entry struct {
	Kind EntryKind

	// Version is the record's version string. Empty for legacy entries and
	// for records whose version field is missing or not a string.
	Version string
}

// UnmarshalJSON decodes either shape without failing on legacy values.
func (e *Entry) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		*e = Entry{Kind: KindLegacy}
		return nil
	}

	var rec struct {
		Version json.RawMessage `json:"version"`
	}
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return err
	}

	*e = Entry{Kind: KindRecord}
	var v string
	if len(rec.Version) > 0 && json.Unmarshal(rec.Version, &v) == nil {
		e.Version = v
	}
	return nil
}

// Matches reports whether e is a record for version.
func (e Entry) Matches(version string) bool {
	return e.Kind == KindRecord && e.Version != "" && e.Version == version
}

// Index is the daily version list, oldest first.
type Index []Entry

// ParseIndex decodes the body of the versions endpoint. The body must be a
// JSON array; individual entries may be of either shape.
func ParseIndex(data []byte) (Index, error) {
	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("remote: decode index: %w", err)
	}
	if idx == nil {
		return nil, fmt.Errorf("remote: decode index: body is not a JSON array")
	}
	return idx, nil
}

// Contains scans from the most recent entry to the oldest and reports whether
// any record carries version. Legacy entries are skipped.
func (idx Index) Contains(version string) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		if idx[i].Matches(version) {
			return true
		}
	}
	return false
}

// Counts returns the number of record and legacy entries.
func (idx Index) Counts() (records, legacy int) {
	for _, e := range idx {
		if e.Kind == KindRecord {
			records++
		} else {
			legacy++
		}
	}
	return records, legacy
}
