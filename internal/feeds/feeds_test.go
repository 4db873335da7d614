package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"naver-index-check/internal/fetch"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel>
<title>머니박</title><link>https://blog.naver.com/money-park</link><description>d</description>
<item><title>세 번째 글 &amp; 요약</title><link>https://blog.naver.com/money-park/3</link><pubDate>Wed, 31 Dec 2025 16:43:00 +0900</pubDate></item>
<item><title>두 번째 글</title><link>https://blog.naver.com/money-park/2</link><pubDate>broken date</pubDate></item>
<item><title>첫 번째 글</title><link>https://blog.naver.com/money-park/1</link></item>
</channel></rss>`

func newFeedServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/money-park.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
		_, _ = w.Write([]byte(rssFixture))
	})
	mux.HandleFunc("/garbage.xml", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not a feed"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newReader(t *testing.T, base string) *Reader {
	t.Helper()
	cl, err := fetch.New(fetch.Options{Timeout: 2 * time.Second})
	require.NoError(t, err)
	return NewReader(cl, base+"/")
}

func TestFetchPosts_AllEntries(t *testing.T) {
	srv := newFeedServer(t)
	r := newReader(t, srv.URL)

	posts, total, err := r.FetchPosts(context.Background(), "money-park", 50)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, posts, 3)

	assert.Equal(t, "세 번째 글 & 요약", posts[0].Title)
	assert.Equal(t, "https://blog.naver.com/money-park/3", posts[0].URL)
	assert.Equal(t, "2025-12-31 수 16시43분 00초", posts[0].Published)
	assert.Equal(t, "broken date", posts[1].Published, "unparseable date is kept verbatim")
	assert.Equal(t, "", posts[2].Published, "missing date degrades to empty")
}

func TestFetchPosts_TruncatesInFeedOrder(t *testing.T) {
	srv := newFeedServer(t)
	r := newReader(t, srv.URL)

	posts, total, err := r.FetchPosts(context.Background(), "money-park", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total, "total reports the whole feed, not the truncated slice")
	require.Len(t, posts, 2)
	assert.Equal(t, "https://blog.naver.com/money-park/3", posts[0].URL)
	assert.Equal(t, "https://blog.naver.com/money-park/2", posts[1].URL)
}

func TestFetchPosts_Failures(t *testing.T) {
	srv := newFeedServer(t)
	r := newReader(t, srv.URL)

	for _, id := range []string{"unknown-blog", "garbage"} {
		posts, total, err := r.FetchPosts(context.Background(), id, 10)
		assert.Error(t, err, id)
		assert.Empty(t, posts, id)
		assert.Zero(t, total, id)
	}
}

func TestFeedURL(t *testing.T) {
	r := NewReader(nil, "https://blog.rss.naver.com/")
	assert.Equal(t, "https://blog.rss.naver.com/money-park.xml", r.FeedURL("money-park"))
}
