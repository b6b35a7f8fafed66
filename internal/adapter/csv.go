package adapter

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"time"

	"github.com/kapu/channel-dashboard-go/internal/analytics"
	"github.com/kapu/channel-dashboard-go/internal/domain"
)

// utf8BOM lets spreadsheet tools that sniff encodings open the export
// correctly; the column headers are Japanese.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"動画タイトル", "公開日時", "再生回数", "高評価数", "コメント数", "高評価率(%)"}

// ExportCSV dumps a filtered video table as UTF-8 CSV with a byte-order
// marker. It is a straight rendering of the filter engine's output: no
// re-filtering, no re-sorting.
func ExportCSV(records []domain.VideoRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for _, r := range records {
		rate := 0.0
		if v, ok := analytics.LikeRate(r.Views, r.Likes); ok {
			rate = v
		}

		row := []string{
			r.Title,
			r.PublishedAt.Format(time.RFC3339),
			strconv.FormatInt(r.Views, 10),
			strconv.FormatInt(r.Likes, 10),
			strconv.FormatInt(r.Comments, 10),
			strconv.FormatFloat(rate, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
