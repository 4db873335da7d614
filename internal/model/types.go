// 패키지 model 은 점검 결과 데이터 모델(글 요약/색인 상태/결과 행/요약/페이지)을 정의한다.
package model

import (
	"fmt"
	"time"
)

// PostSummary 는 피드에서 읽은 글 한 건이다. 생성 후 변경하지 않는다.
type PostSummary struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Published string `json:"published"`
}

// StatusKind 는 색인 점검 결과의 종류다.
type StatusKind int

const (
	// Indexed: 검색 결과 영역 안에서 본인 블로그 링크를 찾음
	Indexed StatusKind = iota
	// IndexedGlobalMatch: 결과 영역을 인식하지 못했지만 문서 전체에 링크가 있음
	IndexedGlobalMatch
	// Missing: 어디에서도 찾지 못함
	Missing
	// Error: 요청 자체가 실패함
	Error
)

var kindNames = map[StatusKind]string{
	Indexed:            "indexed",
	IndexedGlobalMatch: "indexed_global",
	Missing:            "missing",
	Error:              "error",
}

func (k StatusKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k StatusKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *StatusKind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// ParseKind 는 String() 의 역변환이다.
func ParseKind(s string) (StatusKind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown status kind %q", s)
}

// Status 는 한 번의 점검 결과다. Message 는 Kind == Error 일 때만 의미가 있다.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message,omitempty"`
}

func StatusOf(k StatusKind) Status { return Status{Kind: k} }

// Errorf 는 실패 사유를 담은 Error 상태를 만든다.
func Errorf(format string, v ...any) Status {
	return Status{Kind: Error, Message: fmt.Sprintf(format, v...)}
}

// Label 은 화면/CSV 에 쓰는 한글 표기다.
func (s Status) Label() string {
	switch s.Kind {
	case Indexed:
		return "정상"
	case IndexedGlobalMatch:
		return "정상 (전체)"
	case Missing:
		return "누락"
	case Error:
		return "오류: " + s.Message
	default:
		return s.Kind.String()
	}
}

func (s Status) String() string { return s.Label() }

// ReportRow 는 결과 표의 한 행이다. Seq 는 피드 순서 기준 1부터.
type ReportRow struct {
	Seq    int         `json:"seq"`
	Post   PostSummary `json:"post"`
	Status Status      `json:"status"`
}

// Summary 는 결과 요약이다.
// Indexed/Missing 은 각각 정확히 그 상태만 센다. 정상 (전체)·오류는 Total 에만 포함된다.
type Summary struct {
	Total   int `json:"total"`
	Indexed int `json:"indexed"`
	Missing int `json:"missing"`
}

// IndexedRatio 는 Indexed/Total 백분율(Total 0 이면 0).
func (s Summary) IndexedRatio() float64 { return ratio(s.Indexed, s.Total) }

// MissingRatio 는 Missing/Total 백분율.
func (s Summary) MissingRatio() float64 { return ratio(s.Missing, s.Total) }

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

// Summarize 는 행 목록으로부터 요약을 계산한다.
func Summarize(rows []ReportRow) Summary {
	s := Summary{Total: len(rows)}
	for _, r := range rows {
		switch r.Status.Kind {
		case Indexed:
			s.Indexed++
		case Missing:
			s.Missing++
		}
	}
	return s
}

// Page 는 결과 목록의 읽기 전용 창이다.
// First/Last 는 표시되는 행의 1부터 시작하는 위치(포함)이며, 빈 페이지면 둘 다 0.
type Page struct {
	Rows       []ReportRow
	Number     int
	TotalPages int
	First      int
	Last       int
	Total      int
}

// Run 은 보관소에 저장된 점검 실행 한 건이다.
type Run struct {
	ID        int64       `json:"id"`
	BlogID    string      `json:"blog_id"`
	Requested int         `json:"requested"`
	Available int         `json:"available"`
	CreatedAt time.Time   `json:"created_at"`
	Summary   Summary     `json:"summary"`
	Rows      []ReportRow `json:"rows,omitempty"`
}
