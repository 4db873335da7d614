// 패키지 export 는 전체 결과(페이지 나눔 없이)를 CSV/JSON 으로 내보낸다.
// CSV 는 BOM 이 붙은 UTF-8 이라 스프레드시트에서도 한글이 깨지지 않는다.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"naver-index-check/internal/model"
)

// Header 는 CSV 머리행이다.
var Header = []string{"번호", "제목", "발행일", "누락 여부", "URL"}

// FileName 은 기본 CSV 파일 이름이다.
func FileName(blogID string) string {
	return blogID + "_indexing_check_v2.csv"
}

// WriteCSV 는 rows 전체를 머리행과 함께 쓴다.
func WriteCSV(w io.Writer, rows []model.ReportRow) error {
	tw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())
	cw := csv.NewWriter(tw)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		rec := []string{strconv.Itoa(r.Seq), r.Post.Title, r.Post.Published, r.Status.Label(), r.Post.URL}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row %d: %w", r.Seq, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}

// ToCSVFile 은 path 에 CSV 를 만든다.
func ToCSVFile(path string, rows []model.ReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("export csv to %s: %w", path, err)
	}
	return f.Close()
}

// Document 는 JSON 내보내기의 최상위 구조다.
type Document struct {
	BlogID     string            `json:"blog_id"`
	ExportedAt time.Time         `json:"exported_at"`
	Summary    model.Summary     `json:"summary"`
	Rows       []model.ReportRow `json:"rows"`
}

// WriteJSON 은 요약과 전체 결과를 들여쓰기한 JSON 으로 쓴다.
func WriteJSON(w io.Writer, blogID string, rows []model.ReportRow) error {
	doc := Document{
		BlogID:     blogID,
		ExportedAt: time.Now(),
		Summary:    model.Summarize(rows),
		Rows:       rows,
	}
	if doc.Rows == nil {
		doc.Rows = []model.ReportRow{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ToJSONFile 은 path 에 JSON 을 만든다.
func ToJSONFile(path, blogID string, rows []model.ReportRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(f, blogID, rows); err != nil {
		f.Close()
		return fmt.Errorf("export json to %s: %w", path, err)
	}
	return f.Close()
}
