package report

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"naver-index-check/internal/model"
)

// FeedReader 는 블로그 아이디로 최근 글을 최대 max 건 가져온다. total 은 피드 전체 항목 수.
type FeedReader interface {
	FetchPosts(ctx context.Context, blogID string, max int) ([]model.PostSummary, int, error)
}

// IndexChecker 는 글 제목 하나의 색인 상태를 판별한다. 실패도 상태로 돌려준다.
type IndexChecker interface {
	CheckStatus(ctx context.Context, blogID, title string) model.Status
}
