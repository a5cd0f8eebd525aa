package remote

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const mixedIndex = `[
	"zephyr-v2.7.0",
	"zephyr-v3.0.0",
	{"version": "zephyr-v3.4.0-1234-gabcdef", "date": "2023-09-01"},
	{"version": "v3.4.0"},
	{"date": "2023-10-01"},
	{"version": 350},
	{"version": "v3.5.0", "date": "2023-10-20"}
]`

func TestParseIndex_MixedShapes(t *testing.T) {
	idx, err := ParseIndex([]byte(mixedIndex))
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}

	var kinds []EntryKind
	var versions []string
	for _, e := range idx {
		kinds = append(kinds, e.Kind)
		versions = append(versions, e.Version)
	}

	wantKinds := []EntryKind{KindLegacy, KindLegacy, KindRecord, KindRecord, KindRecord, KindRecord, KindRecord}
	if diff := cmp.Diff(wantKinds, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	wantVersions := []string{"", "", "zephyr-v3.4.0-1234-gabcdef", "v3.4.0", "", "", "v3.5.0"}
	if diff := cmp.Diff(wantVersions, versions); diff != "" {
		t.Errorf("versions mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIndex_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object body", `{"version": "v3.5.0"}`},
		{"null body", `null`},
		{"truncated", `[{"version": "v3.5.0"`},
		{"html error page", `<html>busy</html>`},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseIndex([]byte(tt.body)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseIndex_EmptyArray(t *testing.T) {
	idx, err := ParseIndex([]byte(`[]`))
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if len(idx) != 0 {
		t.Errorf("len = %d, want 0", len(idx))
	}
	if idx.Contains("v3.5.0") {
		t.Error("empty index should not contain anything")
	}
}

func TestIndexContains(t *testing.T) {
	idx, err := ParseIndex([]byte(mixedIndex))
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}

	tests := []struct {
		version string
		want    bool
	}{
		{"v3.5.0", true},
		{"v3.4.0", true},
		{"zephyr-v3.4.0-1234-gabcdef", true},
		{"zephyr-v3.0.0", false}, // legacy string, never matches
		{"zephyr-v2.7.0", false},
		{"350", false},
		{"v9.9.9", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			if got := idx.Contains(tt.version); got != tt.want {
				t.Errorf("Contains(%q) = %v, want %v", tt.version, got, tt.want)
			}
		})
	}
}

func TestIndexContains_LegacyBetweenRecords(t *testing.T) {
	// A legacy entry newer than a matching record does not end the scan.
	idx, err := ParseIndex([]byte(`[{"version": "v3.3.0"}, "v3.4.0", {"version": "v3.5.0"}]`))
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if !idx.Contains("v3.3.0") {
		t.Error("expected v3.3.0 to be found past the legacy entry")
	}
}

func TestIndexCounts(t *testing.T) {
	idx, err := ParseIndex([]byte(mixedIndex))
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	records, legacy := idx.Counts()
	if records != 5 || legacy != 2 {
		t.Errorf("Counts() = (%d, %d), want (5, 2)", records, legacy)
	}
}

func TestEntryUnmarshal_NullAndNumbers(t *testing.T) {
	var entries []Entry
	if err := json.Unmarshal([]byte(`[null, 3, true, ["v3.5.0"]]`), &entries); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for i, e := range entries {
		if e.Kind != KindLegacy {
			t.Errorf("entries[%d].Kind = %v, want legacy", i, e.Kind)
		}
		if e.Matches("v3.5.0") {
			t.Errorf("entries[%d] should not match", i)
		}
	}
}

func TestEntryKindString(t *testing.T) {
	if KindRecord.String() != "record" || KindLegacy.String() != "legacy" {
		t.Errorf("unexpected kind strings: %s, %s", KindRecord, KindLegacy)
	}
}
