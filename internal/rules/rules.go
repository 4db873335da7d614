// 패키지 rules 는 검색 제공자 프리셋(rules.yaml)을 읽어 제공한다.
// 프리셋은 피드/검색 주소, 소유자 호스트, 결과 항목 선택자를 묶는다.
package rules

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rules 는 이름 → 프리셋 모음이다.
type Rules struct {
	Presets map[string]Preset `yaml:",inline"`
}

// Preset 은 제공자 하나의 주소와 선택자다.
// - feed_url: 피드 기본 주소, <feed_url>/<id>.xml
// - search_url/search_scope: 검색 주소와 ssc 범위
// - owner_host: 본인 글 판별용 마커의 호스트 부분
// - result_item: 결과 항목 컨테이너 CSS 선택자
type Preset struct {
	FeedURL     string `yaml:"feed_url"`
	SearchURL   string `yaml:"search_url"`
	SearchScope string `yaml:"search_scope"`
	OwnerHost   string `yaml:"owner_host"`
	ResultItem  string `yaml:"result_item"`
}

// Naver 는 내장 기본 프리셋이다.
var Naver = Preset{
	FeedURL:     "https://blog.rss.naver.com",
	SearchURL:   "https://search.naver.com/search.naver",
	SearchScope: "tab.blog.all",
	OwnerHost:   "blog.naver.com",
	ResultItem:  "div.api_subject_bx",
}

// Builtin 은 rules.yaml 이 없을 때 쓰는 규칙이다.
func Builtin() *Rules {
	return &Rules{Presets: map[string]Preset{"naver": Naver}}
}

func Load(path string) (*Rules, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules %s: %w", path, err)
	}
	defer f.Close()
	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}
	r := Builtin()
	var loaded map[string]Preset
	if err := yaml.Unmarshal(b, &loaded); err != nil {
		return nil, fmt.Errorf("unmarshal rules %s: %w", path, err)
	}
	for k, v := range loaded {
		r.Presets[k] = v.withDefaults()
	}
	return r, nil
}

// withDefaults 는 비어 있는 필드를 네이버 값으로 채운다.
func (p Preset) withDefaults() Preset {
	if p.FeedURL == "" {
		p.FeedURL = Naver.FeedURL
	}
	if p.SearchURL == "" {
		p.SearchURL = Naver.SearchURL
	}
	if p.SearchScope == "" {
		p.SearchScope = Naver.SearchScope
	}
	if p.OwnerHost == "" {
		p.OwnerHost = Naver.OwnerHost
	}
	if p.ResultItem == "" {
		p.ResultItem = Naver.ResultItem
	}
	return p
}

// GetPreset 은 이름으로 프리셋을 찾는다(대소문자 무시). 비었거나 없으면 "naver" 로 돌아간다.
func (r *Rules) GetPreset(name string) (Preset, bool) {
	if r == nil || len(r.Presets) == 0 {
		return Naver, false
	}
	if name == "" {
		name = "naver"
	}
	if p, ok := r.Presets[name]; ok {
		return p, true
	}
	lower := strings.ToLower(name)
	for k, v := range r.Presets {
		if strings.ToLower(k) == lower {
			return v, true
		}
	}
	if p, ok := r.Presets["naver"]; ok {
		return p, false
	}
	return Naver, false
}
