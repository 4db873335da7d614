// 패키지 feeds 는 블로그 RSS 를 가져와 최근 글 요약 목록으로 바꾼다.
// - FetchPosts: <피드 주소>/<블로그 아이디>.xml 을 gofeed 로 해석, 최대 max 건
// - FormatPublished: 발행일을 한글 표시 형식으로 변환
package feeds

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"

	"naver-index-check/internal/fetch"
	"naver-index-check/internal/model"
)

// maxFeedBytes 는 피드 본문 읽기 상한이다.
const maxFeedBytes = 8 << 20

// Reader 는 블로그 아이디로 피드를 찾아 읽는다.
type Reader struct {
	client *fetch.Client
	base   string
}

// NewReader 는 base(예: https://blog.rss.naver.com) 아래의 피드를 읽는 Reader 를 만든다.
func NewReader(cl *fetch.Client, base string) *Reader {
	return &Reader{client: cl, base: strings.TrimRight(base, "/")}
}

// FeedURL 은 블로그 아이디에 대응하는 피드 주소다.
func (r *Reader) FeedURL(blogID string) string {
	return r.base + "/" + url.PathEscape(blogID) + ".xml"
}

// FetchPosts 는 피드 순서(최신 글 먼저)를 유지한 채 최대 max 건을 돌려준다.
// total 은 피드에 실제로 있던 항목 수다. 피드를 가져오거나 해석하지 못하면 nil, 0 과 오류를 돌려준다.
func (r *Reader) FetchPosts(ctx context.Context, blogID string, max int) ([]model.PostSummary, int, error) {
	feedURL := r.FeedURL(blogID)
	body, err := r.client.GetBody(ctx, feedURL, maxFeedBytes)
	if err != nil {
		return nil, 0, fmt.Errorf("GET feed %s: %w", feedURL, err)
	}
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("parse feed %s: %w", feedURL, err)
	}
	total := len(feed.Items)
	items := feed.Items
	if max >= 0 && len(items) > max {
		items = items[:max]
	}
	posts := make([]model.PostSummary, 0, len(items))
	for _, it := range items {
		posts = append(posts, toSummary(it))
	}
	return posts, total, nil
}

// toSummary 는 제목과 링크를 그대로 옮기고 발행일만 표시 형식으로 바꾼다.
func toSummary(it *gofeed.Item) model.PostSummary {
	p := model.PostSummary{Title: it.Title, URL: it.Link}
	if it.Published != "" {
		p.Published = FormatPublished(it.Published)
	}
	return p
}
