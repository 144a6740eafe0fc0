package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/polwatch/nec-crawler/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return s
}

func samplePolitician() *models.Politician {
	return &models.Politician{
		Name:     "김철수",
		Party:    "정의당",
		District: "서울 강남구 갑",
		Contact: models.Contact{
			Phone: "02-123-4567",
			Email: "kim@assembly.go.kr",
		},
		Career: []models.CareerItem{
			{Period: "2020-2024", Description: "국회의원"},
			{Period: "", Description: "시의원"},
		},
		Metadata: models.Metadata{
			CrawledAt:  time.Now(),
			SourceURL:  "https://example.test/list",
			Confidence: 0.9,
		},
	}
}

func TestUpsertInsertThenUpdate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Upsert(ctx, samplePolitician())
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}
	if !first.IsNew {
		t.Errorf("first upsert should report IsNew")
	}

	changed := samplePolitician()
	changed.District = "서울 강남구 을"
	second, err := s.Upsert(ctx, changed)
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if second.IsNew {
		t.Errorf("second upsert of the same (name, party) should update")
	}
	if second.ID != first.ID {
		t.Errorf("ID changed across upserts: %d != %d", second.ID, first.ID)
	}
}

func TestUpsertDistinguishesByParty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := samplePolitician()
	b := samplePolitician()
	b.Party = "국민당"

	ra, err := s.Upsert(ctx, a)
	if err != nil {
		t.Fatalf("Upsert a: %v", err)
	}
	rb, err := s.Upsert(ctx, b)
	if err != nil {
		t.Fatalf("Upsert b: %v", err)
	}
	if !rb.IsNew || rb.ID == ra.ID {
		t.Errorf("same name under a different party must be a new row")
	}
}

func TestUpsertReplacesCareers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	res, err := s.Upsert(ctx, samplePolitician())
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	shorter := samplePolitician()
	shorter.Career = []models.CareerItem{{Period: "2024-", Description: "도지사"}}
	if _, err := s.Upsert(ctx, shorter); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	careers, err := s.Careers(ctx, res.ID)
	if err != nil {
		t.Fatalf("Careers: %v", err)
	}
	if len(careers) != 1 {
		t.Fatalf("careers = %d rows, want 1 after replacement", len(careers))
	}
	if careers[0].Description != "도지사" {
		t.Errorf("career description = %q, want 도지사", careers[0].Description)
	}
}

func TestUpsertNil(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Upsert(context.Background(), nil); err == nil {
		t.Fatalf("nil politician should be rejected")
	}
}
