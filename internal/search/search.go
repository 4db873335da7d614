// 패키지 search 는 글 제목으로 블로그 검색을 실행하고, 결과 HTML 에서
// 본인 블로그 링크가 보이는지로 색인 상태를 판별한다.
//
// 판별은 제3자 마크업에 대한 부분 문자열 휴리스틱이다. 결과 보장은 없다.
package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"naver-index-check/internal/fetch"
	"naver-index-check/internal/logx"
	"naver-index-check/internal/model"
	"naver-index-check/internal/rules"
)

const maxPageBytes = 4 << 20

// Checker 는 프리셋 하나를 기준으로 검색을 수행한다.
type Checker struct {
	client *fetch.Client
	preset rules.Preset
}

func NewChecker(cl *fetch.Client, preset rules.Preset) *Checker {
	return &Checker{client: cl, preset: preset}
}

// Marker 는 본인 글 판별에 쓰는 "<소유자 호스트>/<블로그 아이디>" 문자열이다.
func Marker(ownerHost, blogID string) string {
	return ownerHost + "/" + blogID
}

// QueryURL 은 제목을 큰따옴표로 감싸 퍼센트 인코딩한 검색 주소다.
func (c *Checker) QueryURL(title string) string {
	return c.preset.SearchURL + "?ssc=" + url.QueryEscape(c.preset.SearchScope) + "&query=" + quote(`"`+title+`"`)
}

// quote 는 공백을 %20 으로 인코딩한다.
func quote(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// CheckStatus 는 제목 하나를 검색해 상태를 돌려준다. 어떤 실패도 Error 상태로 바뀌며 호출자에게 전파되지 않는다.
// 2xx 가 아닌 응답(403 차단 페이지 등)은 본문을 분류하지 않고 Error 로 본다.
// 한도를 넘는 결과 페이지도 잘라 분류하지 않고 Error 다.
func (c *Checker) CheckStatus(ctx context.Context, blogID, title string) (st model.Status) {
	defer func() {
		if r := recover(); r != nil {
			st = model.Errorf("%v", r)
		}
	}()
	q := c.QueryURL(title)
	logx.Debugf("검색 요청: %s", q)
	body, err := c.client.GetBody(ctx, q, maxPageBytes)
	if err != nil {
		return model.Errorf("%v", err)
	}
	st, err = Classify(bytes.NewReader(body), Marker(c.preset.OwnerHost, blogID), c.preset.ResultItem)
	if err != nil {
		return model.Errorf("%v", err)
	}
	return st
}

// Classify 는 검색 결과 문서에서 marker 를 찾는다.
//  1. selector 에 맞는 결과 항목이 없으면 문서 전체에서 찾는다: 있으면 IndexedGlobalMatch, 없으면 Missing
//  2. 결과 항목이 있으면 문서 순서대로 항목 HTML 을 보고, 처음 찾은 곳에서 Indexed
//
// 결과 항목이 있는데 어느 항목에도 없으면 Missing 이다(문서 다른 곳에 있어도).
func Classify(doc io.Reader, marker, selector string) (model.Status, error) {
	raw, err := io.ReadAll(doc)
	if err != nil {
		return model.Status{}, fmt.Errorf("read document: %w", err)
	}
	d, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return model.Status{}, fmt.Errorf("parse html: %w", err)
	}
	items := d.Find(selector)
	if items.Length() == 0 {
		if bytes.Contains(raw, []byte(marker)) {
			return model.StatusOf(model.IndexedGlobalMatch), nil
		}
		return model.StatusOf(model.Missing), nil
	}
	found := false
	var htmlErr error
	items.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		h, err := goquery.OuterHtml(s)
		if err != nil {
			htmlErr = fmt.Errorf("render result item: %w", err)
			return false
		}
		if strings.Contains(h, marker) {
			found = true
			return false
		}
		return true
	})
	if htmlErr != nil {
		return model.Status{}, htmlErr
	}
	if found {
		return model.StatusOf(model.Indexed), nil
	}
	return model.StatusOf(model.Missing), nil
}
