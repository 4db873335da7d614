// 패키지 report 는 점검 실행과 그 결과 보기를 담당한다.
// - Run: 피드 조회 → 글마다 직렬 검색(고정 대기) → 결과 교체
// - Summary/Page/Next/Prev/Goto: 실행 사이의 읽기 전용 보기
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"naver-index-check/internal/logx"
	"naver-index-check/internal/model"
)

const (
	MinCount        = 1
	MaxCount        = 50
	DefaultPageSize = 50
	DefaultDelay    = 500 * time.Millisecond
)

var (
	// ErrNoPostsFound: 피드가 비었거나 가져오지 못함. 이전 결과는 그대로 남는다.
	ErrNoPostsFound = errors.New("no posts found")
	// ErrCountOutOfRange: 요청 글 수가 1..50 밖
	ErrCountOutOfRange = errors.New("post count out of range")
)

// Outcome 은 한 번의 실행에 대한 부가 정보다.
type Outcome struct {
	Requested int
	Available int
	// Shortfall: 피드 항목이 요청 수보다 적음(경고일 뿐 오류가 아님)
	Shortfall bool
}

// Options 는 세션 동작 설정이다.
type Options struct {
	// Delay 는 질의 사이 고정 대기. 0 이면 대기 없음.
	Delay time.Duration
	// PageSize 는 Page() 의 기본 크기. 0 이면 DefaultPageSize.
	PageSize int
	// OnRow 는 행 하나가 만들어질 때마다 호출된다(진행 표시용).
	OnRow func(row model.ReportRow, total int)
}

// Session 은 결과 목록과 현재 페이지 커서를 소유한다.
// Run 이 끝난 뒤 결과는 교체만 되고 수정되지 않는다.
type Session struct {
	feeds   FeedReader
	checker IndexChecker
	opts    Options

	blogID string
	rows   []model.ReportRow
	page   int
}

func NewSession(fr FeedReader, ic IndexChecker, opts Options) *Session {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	return &Session{feeds: fr, checker: ic, opts: opts, page: 1}
}

// Run 은 blogID 의 최근 글 count 건을 점검하고 세션 결과를 교체한다.
// 취소는 반복 경계에서만 확인하며, 진행 중인 질의는 끝까지 기다린다(클라이언트 타임아웃이 상한).
// 피드 조회 중 취소되면 ErrNoPostsFound 가 아니라 ctx 오류를 돌려준다.
// 오류로 끝나면 이전 결과를 건드리지 않는다.
func (s *Session) Run(ctx context.Context, blogID string, count int) (Outcome, error) {
	out := Outcome{Requested: count}
	if count < MinCount || count > MaxCount {
		return out, fmt.Errorf("%w: %d (allowed %d..%d)", ErrCountOutOfRange, count, MinCount, MaxCount)
	}
	posts, total, err := s.feeds.FetchPosts(ctx, blogID, count)
	if cerr := ctx.Err(); cerr != nil {
		return out, cerr
	}
	if err != nil {
		logx.Warnf("피드 조회 실패: %s 오류=%v", blogID, err)
		posts, total = nil, 0
	}
	if len(posts) == 0 {
		return out, fmt.Errorf("%w: %s", ErrNoPostsFound, blogID)
	}
	out.Available = total
	if total < count {
		out.Shortfall = true
		logx.Warnf("RSS 피드에서 %d개만 제공됩니다. (요청: %d개)", total, count)
	}
	logx.Infof("총 %d개 글을 찾았습니다.", len(posts))

	rows := make([]model.ReportRow, 0, len(posts))
	for i, p := range posts {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		st := s.checker.CheckStatus(context.WithoutCancel(ctx), blogID, p.Title)
		row := model.ReportRow{Seq: i + 1, Post: p, Status: st}
		rows = append(rows, row)
		if s.opts.OnRow != nil {
			s.opts.OnRow(row, len(posts))
		}
		s.pause(ctx)
	}

	s.rows = rows
	s.blogID = blogID
	s.page = 1
	return out, nil
}

// pause 는 매 질의 뒤 무조건 대기한다. 취소되면 즉시 돌아오고 다음 반복에서 멈춘다.
func (s *Session) pause(ctx context.Context) {
	if s.opts.Delay <= 0 {
		return
	}
	t := time.NewTimer(s.opts.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// Load 는 보관소 등에서 읽은 결과로 세션을 채운다(검색 없이).
func (s *Session) Load(blogID string, rows []model.ReportRow) {
	s.rows = append([]model.ReportRow(nil), rows...)
	s.blogID = blogID
	s.page = 1
}

func (s *Session) BlogID() string   { return s.blogID }
func (s *Session) HasResults() bool { return len(s.rows) > 0 }

// Rows 는 전체 결과의 복사본이다.
func (s *Session) Rows() []model.ReportRow {
	return append([]model.ReportRow(nil), s.rows...)
}

func (s *Session) Summary() model.Summary { return model.Summarize(s.rows) }

// TotalPages 는 ceil(total / size) 다.
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Page 는 기본 페이지 크기로 현재 페이지를 돌려준다.
func (s *Session) Page() model.Page { return s.PageOf(s.opts.PageSize) }

// PageOf 는 size 크기로 현재 커서의 페이지를 돌려준다. 커서는 [1, totalPages] 로 맞춘다.
func (s *Session) PageOf(size int) model.Page {
	if size <= 0 {
		size = s.opts.PageSize
	}
	return Slice(s.rows, s.page, size)
}

// Slice 는 rows 의 n 번째 페이지(1부터)를 복사해 돌려준다. n 은 범위로 맞춘다.
func Slice(rows []model.ReportRow, n, size int) model.Page {
	tp := TotalPages(len(rows), size)
	n = clamp(n, tp)
	p := model.Page{Number: n, TotalPages: tp, Total: len(rows)}
	if tp == 0 {
		return p
	}
	start := (n - 1) * size
	end := min(start+size, len(rows))
	p.Rows = append([]model.ReportRow(nil), rows[start:end]...)
	p.First, p.Last = start+1, end
	return p
}

func clamp(n, totalPages int) int {
	if n > totalPages {
		n = totalPages
	}
	if n < 1 {
		n = 1
	}
	return n
}

func (s *Session) CurrentPage() int { return s.page }

// Next 는 다음 페이지로 간다(마지막에서 멈춤).
func (s *Session) Next() int { return s.Goto(s.page + 1) }

// Prev 는 이전 페이지로 간다(첫 페이지에서 멈춤).
func (s *Session) Prev() int { return s.Goto(s.page - 1) }

// Goto 는 지정한 페이지로 커서를 옮긴다. 상대 이동보다 우선한다.
func (s *Session) Goto(n int) int {
	s.page = clamp(n, TotalPages(len(s.rows), s.opts.PageSize))
	return s.page
}
