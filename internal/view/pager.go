package view

import (
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"naver-index-check/internal/model"
)

// Navigator 는 페이지 이동이 가능한 결과 보기다(report.Session 이 구현).
type Navigator interface {
	Summary() model.Summary
	Page() model.Page
	Next() int
	Prev() int
	Goto(n int) int
}

// pager 는 이전/다음/번호 입력으로 페이지를 넘기는 bubbletea 모델이다.
type pager struct {
	nav     Navigator
	printer *Printer
	digits  string
}

func newPager(nav Navigator, p *Printer) pager {
	return pager{nav: nav, printer: p}
}

func (m pager) Init() tea.Cmd { return nil }

func (m pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch s := key.String(); s {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "left", "h", "p":
		m.digits = ""
		m.nav.Prev()
	case "right", "l", "n", " ":
		m.digits = ""
		m.nav.Next()
	case "home", "g":
		m.digits = ""
		m.nav.Goto(1)
	case "end", "G":
		m.digits = ""
		m.nav.Goto(m.nav.Page().TotalPages)
	case "enter":
		if n, err := strconv.Atoi(m.digits); err == nil {
			m.nav.Goto(n)
		}
		m.digits = ""
	case "esc", "backspace":
		m.digits = ""
	default:
		if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
			m.digits += s
		}
	}
	return m, nil
}

func (m pager) View() string {
	var b strings.Builder
	b.WriteString(m.printer.RenderSummary(m.nav.Summary()))
	b.WriteString("\n\n")
	b.WriteString(m.printer.RenderPage(m.nav.Page()))
	b.WriteString("\n")
	help := "◀ h/p 이전 · l/n 다음 ▶ · 번호+Enter 이동 · q 종료"
	if m.digits != "" {
		help = "이동할 페이지: " + m.digits
	}
	b.WriteString(m.printer.r.NewStyle().Foreground(colorDim).Render(help))
	b.WriteString("\n")
	return b.String()
}

// Browse 는 대화형 페이지 보기를 실행하고 q 로 끝날 때까지 막는다.
func Browse(nav Navigator, in io.Reader, out io.Writer) error {
	prog := tea.NewProgram(newPager(nav, NewPrinter(out)), tea.WithInput(in), tea.WithOutput(out))
	_, err := prog.Run()
	return err
}
