// 패키지 config 는 설정(settings.yaml + NIC_* 환경 변수)을 읽고 검증한다.
// 설정 파일이 없으면 기본값으로 동작한다.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBlogID   = "money-park"
	MaxPostCount    = 50
	DefaultPageSize = 50
	DefaultDelayMS  = 500
	DefaultTimeout  = 10
	DefaultProvider = "naver"
	DefaultUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

type Config struct {
	BlogID         string  `yaml:"BLOG_ID"`
	PostCount      int     `yaml:"POST_COUNT"`
	PageSize       int     `yaml:"PAGE_SIZE"`
	DelayMS        *int    `yaml:"DELAY_MS"` // 0 은 대기 없음, 미지정은 기본값
	TimeoutSeconds int     `yaml:"TIMEOUT_SECONDS"`
	Provider       string  `yaml:"PROVIDER"`
	UserAgent      string  `yaml:"USER_AGENT"`
	Proxy          Proxy   `yaml:"PROXY"`
	History        History `yaml:"HISTORY"`
	LogLevel       string  `yaml:"LOG_LEVEL"`
	LogFormat      string  `yaml:"LOG_FORMAT"` // text|json|pretty
	LogLocale      string  `yaml:"LOG_LOCALE"` // ko|en
	LogColor       string  `yaml:"LOG_COLOR"`  // auto|always|never
}

type Proxy struct {
	HTTP  string `yaml:"http"`
	HTTPS string `yaml:"https"`
}

// History 는 선택적 실행 기록 보관소(SQLite) 설정이다.
type History struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"` // 비어 있으면 XDG 데이터 디렉터리
}

// Delay 는 질의 사이의 고정 대기 시간이다.
func (c *Config) Delay() time.Duration {
	if c.DelayMS == nil {
		return DefaultDelayMS * time.Millisecond
	}
	return time.Duration(*c.DelayMS) * time.Millisecond
}

func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Default 는 설정 파일 없이 쓰는 기본 설정이다.
func Default() *Config {
	c := &Config{}
	_ = c.Validate()
	return c
}

// Load 는 path 의 YAML 을 읽고, 환경 변수 덮어쓰기를 적용한 뒤 검증한다.
// path 가 비었거나 파일이 없으면 기본값에서 출발한다.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := readFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(b, &c); err != nil {
				return nil, fmt.Errorf("unmarshal config %s: %w", path, err)
			}
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, fmt.Errorf("apply env: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &c, nil
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return b, nil
}

// LoadDotEnv 는 .env 파일을 프로세스 환경에 읽어 들인다(이미 설정된 값은 유지).
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load dotenv: %w", err)
	}
	return nil
}

// applyEnv 는 NIC_* 환경 변수로 파일 값을 덮어쓴다.
func (c *Config) applyEnv() error {
	str := map[string]*string{
		"NIC_BLOG_ID":     &c.BlogID,
		"NIC_PROVIDER":    &c.Provider,
		"NIC_UA":          &c.UserAgent,
		"NIC_PROXY_HTTP":  &c.Proxy.HTTP,
		"NIC_PROXY_HTTPS": &c.Proxy.HTTPS,
		"NIC_HISTORY_DSN": &c.History.DSN,
		"NIC_LOG_LEVEL":   &c.LogLevel,
		"NIC_LOG_FORMAT":  &c.LogFormat,
		"NIC_LOG_LOCALE":  &c.LogLocale,
		"NIC_LOG_COLOR":   &c.LogColor,
	}
	for key, dst := range str {
		if v, ok := os.LookupEnv(key); ok {
			*dst = strings.TrimSpace(v)
		}
	}
	ints := map[string]*int{
		"NIC_POST_COUNT":      &c.PostCount,
		"NIC_PAGE_SIZE":       &c.PageSize,
		"NIC_TIMEOUT_SECONDS": &c.TimeoutSeconds,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = n
	}
	if v, ok := os.LookupEnv("NIC_DELAY_MS"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("NIC_DELAY_MS: %w", err)
		}
		c.DelayMS = &n
	}
	if v, ok := os.LookupEnv("NIC_HISTORY"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("NIC_HISTORY: %w", err)
		}
		c.History.Enabled = b
	}
	return nil
}

// Validate 는 범위 검사와 기본값 채우기를 한 곳에서 처리한다.
func (c *Config) Validate() error {
	if c.PostCount < 0 || c.PostCount > MaxPostCount {
		return fmt.Errorf("POST_COUNT must be within 1..%d", MaxPostCount)
	}
	if c.PageSize < 0 {
		return errors.New("PAGE_SIZE must be >= 1")
	}
	if c.DelayMS != nil && *c.DelayMS < 0 {
		return errors.New("DELAY_MS must be >= 0")
	}
	if c.TimeoutSeconds < 0 {
		return errors.New("TIMEOUT_SECONDS must be >= 0")
	}
	if c.BlogID == "" {
		c.BlogID = DefaultBlogID
	}
	if c.PostCount == 0 {
		c.PostCount = MaxPostCount
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = DefaultTimeout
	}
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.UserAgent == "" {
		c.UserAgent = DefaultUA
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "pretty"
	}
	if c.LogLocale == "" {
		c.LogLocale = "ko"
	}
	if c.LogColor == "" {
		c.LogColor = "auto"
	}
	return nil
}
