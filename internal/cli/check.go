package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"naver-index-check/internal/export"
	"naver-index-check/internal/feeds"
	"naver-index-check/internal/logx"
	"naver-index-check/internal/model"
	"naver-index-check/internal/report"
	"naver-index-check/internal/search"
	"naver-index-check/internal/view"
)

type checkFlags struct {
	count       int
	page        int
	pageSize    int
	delay       time.Duration
	csvPath     string
	jsonPath    string
	interactive bool
	save        bool

	// afterRun 은 점검이 끝나면 호출된다. 이후의 Ctrl-C 는 기본 동작(종료)으로 돌아간다.
	afterRun func()
}

func newCheckCmd() *cobra.Command {
	var f checkFlags
	cmd := &cobra.Command{
		Use:   "check [blog-id]",
		Short: "Check whether recent posts appear in Naver blog search",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			blogID := e.cfg.BlogID
			if len(args) == 1 {
				blogID = args[0]
			}
			if !cmd.Flags().Changed("count") {
				f.count = e.cfg.PostCount
			}
			if !cmd.Flags().Changed("page-size") {
				f.pageSize = e.cfg.PageSize
			}
			if !cmd.Flags().Changed("delay") {
				f.delay = e.cfg.Delay()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			f.afterRun = stop
			return runCheck(ctx, e, blogID, f, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	fl := cmd.Flags()
	fl.IntVarP(&f.count, "count", "n", report.MaxCount, "number of recent posts to check (1-50)")
	fl.IntVar(&f.page, "page", 1, "result page to print")
	fl.IntVar(&f.pageSize, "page-size", report.DefaultPageSize, "rows per page")
	fl.DurationVar(&f.delay, "delay", report.DefaultDelay, "pause between search queries")
	fl.StringVar(&f.csvPath, "csv", "", `write all results as CSV ("auto" = <blog-id>_indexing_check_v2.csv)`)
	fl.StringVar(&f.jsonPath, "json", "", "write all results as JSON")
	fl.BoolVarP(&f.interactive, "interactive", "i", false, "browse result pages interactively")
	fl.BoolVar(&f.save, "save", false, "archive this run in the history database")
	return cmd
}

func runCheck(ctx context.Context, e *env, blogID string, f checkFlags, in io.Reader, out, errOut io.Writer) error {
	cl, err := e.httpClient()
	if err != nil {
		return fmt.Errorf("http client: %w", err)
	}
	sess := report.NewSession(
		feeds.NewReader(cl, e.preset.FeedURL),
		search.NewChecker(cl, e.preset),
		report.Options{
			Delay:    f.delay,
			PageSize: f.pageSize,
			OnRow: func(row model.ReportRow, total int) {
				logx.Infof("확인 중: %d/%d - %s... %s", row.Seq, total, truncate(row.Post.Title, 30), row.Status.Label())
			},
		},
	)

	logx.Infof("블로그 글 목록을 가져오는 중: %s", blogID)
	outcome, err := sess.Run(ctx, blogID, f.count)
	if f.afterRun != nil {
		f.afterRun()
	}
	switch {
	case errors.Is(err, report.ErrNoPostsFound):
		fmt.Fprintln(errOut, "블로그 글을 가져올 수 없습니다. 블로그 아이디를 확인해주세요.")
		return nil
	case errors.Is(err, context.Canceled):
		logx.Warnf("점검이 중단되었습니다.")
		return nil
	case err != nil:
		return err
	}
	if outcome.Shortfall {
		fmt.Fprintf(errOut, "⚠️ RSS 피드에서 %d개만 제공됩니다. (요청: %d개)\n", outcome.Available, outcome.Requested)
	}
	logx.Infof("✅ 완료!")

	rows := sess.Rows()
	if f.save || e.cfg.History.Enabled {
		archive(ctx, e, model.Run{
			BlogID:    blogID,
			Requested: outcome.Requested,
			Available: outcome.Available,
			CreatedAt: time.Now(),
			Rows:      rows,
		})
	}
	if err := writeExports(blogID, rows, f.csvPath, f.jsonPath); err != nil {
		return err
	}
	return show(sess, f.page, f.interactive, in, out)
}

// show 는 결과를 출력한다. interactive 면 페이지 보기를 띄운다.
func show(sess *report.Session, page int, interactive bool, in io.Reader, out io.Writer) error {
	sess.Goto(page)
	if interactive {
		return view.Browse(sess, in, out)
	}
	p := view.NewPrinter(out)
	p.Summary(sess.Summary())
	fmt.Fprintln(out)
	p.Page(sess.Page())
	return nil
}

func writeExports(blogID string, rows []model.ReportRow, csvPath, jsonPath string) error {
	if csvPath == "auto" {
		csvPath = export.FileName(blogID)
	}
	if csvPath != "" {
		if err := export.ToCSVFile(csvPath, rows); err != nil {
			return err
		}
		logx.Infof("CSV 저장: %s", csvPath)
	}
	if jsonPath != "" {
		if err := export.ToJSONFile(jsonPath, blogID, rows); err != nil {
			return err
		}
		logx.Infof("JSON 저장: %s", jsonPath)
	}
	return nil
}

// archive 는 실행 결과를 보관소에 저장한다. 실패는 경고만 남긴다.
func archive(ctx context.Context, e *env, run model.Run) {
	st, err := e.openHistory()
	if err != nil {
		logx.Warnf("기록 보관소 열기 실패: %v", err)
		return
	}
	defer st.Close()
	id, err := st.SaveRun(context.WithoutCancel(ctx), run)
	if err != nil {
		logx.Warnf("실행 기록 저장 실패: %v", err)
		return
	}
	logx.Infof("실행 기록 저장: #%d", id)
}

// truncate 는 룬 단위로 n 자까지 자른다.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
