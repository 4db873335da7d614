// 패키지 view 는 결과 요약과 페이지를 터미널 표로 그린다(lipgloss).
package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"naver-index-check/internal/model"
)

var (
	colorIndexed = lipgloss.Color("#28a745")
	colorGlobal  = lipgloss.Color("#17a2b8")
	colorMissing = lipgloss.Color("#dc3545")
	colorBorder  = lipgloss.AdaptiveColor{Light: "#DBDBDB", Dark: "#383838"}
	colorDim     = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#626262"}
	colorHeader  = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
)

// Printer 는 w 전용 렌더러로 표를 그린다. w 가 터미널이 아니면 색은 빠진다.
type Printer struct {
	w io.Writer
	r *lipgloss.Renderer
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, r: lipgloss.NewRenderer(w)}
}

// Summary 는 요약 한 블록을 출력한다.
func (p *Printer) Summary(s model.Summary) {
	fmt.Fprintln(p.w, p.RenderSummary(s))
}

// Page 는 페이지 표와 범위 안내를 출력한다.
func (p *Printer) Page(pg model.Page) {
	fmt.Fprintln(p.w, p.RenderPage(pg))
}

// RenderSummary: 전체 글 / 정상(비율) / 누락(비율)
func (p *Printer) RenderSummary(s model.Summary) string {
	title := p.r.NewStyle().Bold(true).Foreground(colorHeader).Render("요약")
	cell := p.r.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder)
	missingDelta := "0%"
	if s.Missing > 0 {
		missingDelta = fmt.Sprintf("-%.1f%%", s.MissingRatio())
	}
	boxes := lipgloss.JoinHorizontal(lipgloss.Top,
		cell.Render(fmt.Sprintf("전체 글\n%d", s.Total)),
		cell.Render(fmt.Sprintf("정상\n%d (%.1f%%)", s.Indexed, s.IndexedRatio())),
		cell.Render(fmt.Sprintf("누락\n%d (%s)", s.Missing, missingDelta)),
	)
	return lipgloss.JoinVertical(lipgloss.Left, title, boxes)
}

// RenderPage 는 "1-50 / 120개 표시" 안내와 표를 만든다.
func (p *Printer) RenderPage(pg model.Page) string {
	var b strings.Builder
	dim := p.r.NewStyle().Foreground(colorDim)
	b.WriteString(p.r.NewStyle().Bold(true).Render(fmt.Sprintf("%d-%d / %d개 표시", pg.First, pg.Last, pg.Total)))
	b.WriteString(dim.Render(fmt.Sprintf("  (페이지 %d/%d)", pg.Number, pg.TotalPages)))
	b.WriteByte('\n')

	rows := make([][]string, 0, len(pg.Rows))
	for _, r := range pg.Rows {
		rows = append(rows, []string{strconv.Itoa(r.Seq), r.Post.Title, r.Post.Published, r.Status.Label(), r.Post.URL})
	}
	base := p.r.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.r.NewStyle().Foreground(colorBorder)).
		Headers("번호", "제목", "발행일", "누락 여부", "URL").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return base.Bold(true).Foreground(colorHeader).Align(lipgloss.Center)
			}
			if col == 3 && row >= 0 && row < len(pg.Rows) {
				return p.badge(pg.Rows[row].Status)
			}
			if col == 0 {
				return base.Align(lipgloss.Right)
			}
			return base
		})
	b.WriteString(t.Render())
	return b.String()
}

// badge 는 상태별 배경색(정상 초록, 정상 (전체) 청록, 누락 빨강)을 입힌다. 오류는 그대로 둔다.
func (p *Printer) badge(st model.Status) lipgloss.Style {
	s := p.r.NewStyle().Padding(0, 1).Bold(true).Align(lipgloss.Center)
	switch st.Kind {
	case model.Indexed:
		return s.Background(colorIndexed).Foreground(lipgloss.Color("#ffffff"))
	case model.IndexedGlobalMatch:
		return s.Background(colorGlobal).Foreground(lipgloss.Color("#ffffff"))
	case model.Missing:
		return s.Background(colorMissing).Foreground(lipgloss.Color("#ffffff"))
	default:
		return p.r.NewStyle().Padding(0, 1)
	}
}
