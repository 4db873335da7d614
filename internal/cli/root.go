// 패키지 cli 는 명령줄 진입점(cobra)이다.
// - check: 블로그 최근 글의 네이버 검색 색인 여부 점검
// - history: 보관된 점검 결과 조회
// - version
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"naver-index-check/internal/config"
	"naver-index-check/internal/fetch"
	"naver-index-check/internal/logx"
	"naver-index-check/internal/rules"
	"naver-index-check/internal/store"
)

// -ldflags "-X naver-index-check/internal/cli.version=..." 로 채운다.
var (
	version = "dev"
	commit  = "none"
)

var (
	flagConfig string
	flagRules  string
	flagEnv    string
)

var rootCmd = &cobra.Command{
	Use:           "naver-index-check",
	Short:         "네이버 블로그 인덱싱 체크",
	Long:          "블로그의 최근 글들이 네이버 블로그 검색 결과에 제대로 노출되는지 확인합니다.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "settings.yaml", "path to settings.yaml (optional)")
	pf.StringVar(&flagRules, "rules", "rules.yaml", "path to rules.yaml with provider presets (optional)")
	pf.StringVar(&flagEnv, "env", ".env", "dotenv file with NIC_* overrides (optional)")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "naver-index-check %s (commit: %s)\n", version, commit)
	},
}

// Execute 는 루트 명령을 실행하고, 입력 오류일 때만 종료 코드 1 로 끝낸다.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "오류:", err)
		os.Exit(1)
	}
}

// env 는 명령 하나가 쓰는 설정/규칙/프리셋 묶음이다.
type env struct {
	cfg    *config.Config
	preset rules.Preset
}

// loadEnv: .env → settings.yaml(+NIC_*) → 로그 초기화 → rules.yaml 프리셋 선택
func loadEnv() (*env, error) {
	if err := config.LoadDotEnv(flagEnv); err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	logx.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogLocale, cfg.LogColor)

	rl := rules.Builtin()
	if flagRules != "" {
		loaded, err := rules.Load(flagRules)
		switch {
		case err == nil:
			rl = loaded
		case errors.Is(err, fs.ErrNotExist):
		default:
			logx.Warnf("규칙 파일 읽기 실패, 기본 프리셋 사용: %v", err)
		}
	}
	preset, ok := rl.GetPreset(cfg.Provider)
	if !ok {
		logx.Warnf("프리셋 %q 없음, naver 사용", cfg.Provider)
	}
	return &env{cfg: cfg, preset: preset}, nil
}

func (e *env) httpClient() (*fetch.Client, error) {
	return fetch.New(fetch.Options{
		ProxyHTTP:  e.cfg.Proxy.HTTP,
		ProxyHTTPS: e.cfg.Proxy.HTTPS,
		Timeout:    e.cfg.Timeout(),
		UserAgent:  e.cfg.UserAgent,
	})
}

// openHistory 는 보관소를 연다. DSN 이 비면 XDG 기본 경로.
func (e *env) openHistory() (*store.SQLite, error) {
	dsn := e.cfg.History.DSN
	if dsn == "" {
		p, err := store.DefaultDSN()
		if err != nil {
			return nil, err
		}
		dsn = p
	}
	return store.OpenSQLite(dsn)
}
