package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/polwatch/nec-crawler/models"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		CrawledAt: time.Date(2026, 4, 10, 9, 0, 0, 0, time.UTC),
		Source:    "nec",
		Stats: models.CrawlStats{
			ItemsCollected: 1,
		},
		Politicians: []*models.Politician{
			{
				Name:     "김철수",
				Party:    "정의당",
				District: "서울 강남구 갑",
				Career:   []models.CareerItem{{Period: "2020-2024", Description: "국회의원"}},
			},
		},
	}
}

func TestWriteSnapshotCreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "snapshot.json")

	if err := WriteSnapshot(path, sampleSnapshot()); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	// Pretty-printed with two-space indent.
	if !strings.Contains(string(data), "\n  \"source\": \"nec\"") {
		t.Errorf("snapshot not indented as expected:\n%s", data)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("snapshot is not valid JSON: %v", err)
	}
	for _, key := range []string{"crawledAt", "source", "stats", "politicians"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("snapshot missing key %q", key)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	original := sampleSnapshot()

	if err := WriteSnapshot(path, original); err != nil {
		t.Fatalf("WriteSnapshot: %v", err)
	}
	loaded, err := ReadSnapshot(path)
	if err != nil {
		t.Fatalf("ReadSnapshot: %v", err)
	}

	if loaded.Source != original.Source {
		t.Errorf("source = %q, want %q", loaded.Source, original.Source)
	}
	if len(loaded.Politicians) != 1 || loaded.Politicians[0].Name != "김철수" {
		t.Errorf("politicians did not survive the round trip: %+v", loaded.Politicians)
	}
	if !loaded.CrawledAt.Equal(original.CrawledAt) {
		t.Errorf("crawledAt = %v, want %v", loaded.CrawledAt, original.CrawledAt)
	}
}

func TestWriteSnapshotNil(t *testing.T) {
	if err := WriteSnapshot(filepath.Join(t.TempDir(), "x.json"), nil); err == nil {
		t.Fatalf("nil snapshot should be rejected")
	}
}

func TestReadSnapshotMissingFile(t *testing.T) {
	if _, err := ReadSnapshot(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("missing file should be an error")
	}
}
