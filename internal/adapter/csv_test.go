package adapter

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/kapu/channel-dashboard-go/internal/domain"
)

func TestExportCSVStartsWithBOM(t *testing.T) {
	data, err := ExportCSV(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) {
		t.Fatalf("export must start with a UTF-8 BOM, got % x", data[:3])
	}
}

func TestExportCSVRows(t *testing.T) {
	published := time.Date(2025, 6, 13, 11, 0, 0, 0, time.UTC)
	records := []domain.VideoRecord{
		{Title: "動画A", PublishedAt: published, Views: 1000, Likes: 50, Comments: 10, ViewsKnown: true},
		{Title: "ゼロ再生", PublishedAt: published, Views: 0, Likes: 5, ViewsKnown: true},
	}

	data, err := ExportCSV(records)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("export must parse back as CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "動画タイトル" || rows[0][5] != "高評価率(%)" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	if rows[1][1] != "2025-06-13T11:00:00Z" {
		t.Fatalf("timestamps must be RFC3339, got %q", rows[1][1])
	}
	if rows[1][5] != "5.00" {
		t.Fatalf("expected like rate 5.00, got %q", rows[1][5])
	}
	// Zero views: the rate is not computable and renders as 0.00.
	if rows[2][5] != "0.00" {
		t.Fatalf("expected 0.00 for uncomputable rate, got %q", rows[2][5])
	}
}

func TestExportCSVPreservesOrder(t *testing.T) {
	published := time.Date(2025, 6, 13, 0, 0, 0, 0, time.UTC)
	records := []domain.VideoRecord{
		{Title: "二番目に追加", PublishedAt: published, Views: 10, ViewsKnown: true},
		{Title: "一番目に追加", PublishedAt: published, Views: 9999, ViewsKnown: true},
	}

	data, err := ExportCSV(records)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
	rows, err := r.ReadAll()
	if err != nil {
		t.Fatalf("export must parse back as CSV: %v", err)
	}
	if rows[1][0] != "二番目に追加" || rows[2][0] != "一番目に追加" {
		t.Fatalf("export must not reorder its input, got %v", rows)
	}
}
