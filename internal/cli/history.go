package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"naver-index-check/internal/report"
)

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			st, err := e.openHistory()
			if err != nil {
				return err
			}
			defer st.Close()
			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "저장된 점검 기록이 없습니다.")
				return nil
			}
			for _, r := range runs {
				fmt.Fprintf(out, "#%d  %s  %s  전체 %d / 정상 %d / 누락 %d (요청 %d, 피드 %d)\n",
					r.ID, r.CreatedAt.Local().Format("2006-01-02 15:04"), r.BlogID,
					r.Summary.Total, r.Summary.Indexed, r.Summary.Missing, r.Requested, r.Available)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to list (0 = all)")
	cmd.AddCommand(newHistoryShowCmd(), newHistoryResetCmd())
	return cmd
}

func newHistoryShowCmd() *cobra.Command {
	var (
		page        int
		pageSize    int
		csvPath     string
		jsonPath    string
		interactive bool
	)
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q: %w", args[0], err)
			}
			e, err := loadEnv()
			if err != nil {
				return err
			}
			st, err := e.openHistory()
			if err != nil {
				return err
			}
			defer st.Close()
			run, err := st.LoadRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("page-size") {
				pageSize = e.cfg.PageSize
			}
			sess := report.NewSession(nil, nil, report.Options{PageSize: pageSize})
			sess.Load(run.BlogID, run.Rows)
			if err := writeExports(run.BlogID, sess.Rows(), csvPath, jsonPath); err != nil {
				return err
			}
			return show(sess, page, interactive, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&page, "page", 1, "result page to print")
	fl.IntVar(&pageSize, "page-size", report.DefaultPageSize, "rows per page")
	fl.StringVar(&csvPath, "csv", "", `write all results as CSV ("auto" = <blog-id>_indexing_check_v2.csv)`)
	fl.StringVar(&jsonPath, "json", "", "write all results as JSON")
	fl.BoolVarP(&interactive, "interactive", "i", false, "browse result pages interactively")
	return cmd
}

func newHistoryResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all archived runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			st, err := e.openHistory()
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "점검 기록을 모두 삭제했습니다.")
			return nil
		},
	}
}
