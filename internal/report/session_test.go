package report

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"naver-index-check/internal/model"
	"naver-index-check/internal/report/mocks"
)

type SessionTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	feeds   *mocks.MockFeedReader
	checker *mocks.MockIndexChecker
	session *Session
}

func (s *SessionTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.feeds = mocks.NewMockFeedReader(s.ctrl)
	s.checker = mocks.NewMockIndexChecker(s.ctrl)
	s.session = NewSession(s.feeds, s.checker, Options{})
}

func (s *SessionTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSessionTestSuite(t *testing.T) {
	suite.Run(t, new(SessionTestSuite))
}

func posts(n int) []model.PostSummary {
	out := make([]model.PostSummary, n)
	for i := range out {
		out[i] = model.PostSummary{
			Title: fmt.Sprintf("글 %d", i+1),
			URL:   fmt.Sprintf("https://blog.naver.com/money-park/%d", i+1),
		}
	}
	return out
}

func (s *SessionTestSuite) TestRun_ThreePostsInFeedOrder() {
	ctx := context.Background()
	ps := posts(3)
	s.feeds.EXPECT().FetchPosts(gomock.Any(), "money-park", 3).Return(ps, 3, nil)
	gomock.InOrder(
		s.checker.EXPECT().CheckStatus(gomock.Any(), "money-park", "글 1").Return(model.StatusOf(model.Indexed)),
		s.checker.EXPECT().CheckStatus(gomock.Any(), "money-park", "글 2").Return(model.StatusOf(model.Missing)),
		s.checker.EXPECT().CheckStatus(gomock.Any(), "money-park", "글 3").Return(model.StatusOf(model.IndexedGlobalMatch)),
	)

	out, err := s.session.Run(ctx, "money-park", 3)
	s.Require().NoError(err)
	s.False(out.Shortfall)
	s.Equal(3, out.Available)

	rows := s.session.Rows()
	s.Require().Len(rows, 3)
	for i, r := range rows {
		s.Equal(i+1, r.Seq)
		s.Equal(ps[i], r.Post)
	}
	s.Equal(model.Indexed, rows[0].Status.Kind)
	s.Equal(model.Missing, rows[1].Status.Kind)
	s.Equal(model.IndexedGlobalMatch, rows[2].Status.Kind)
	s.Equal("money-park", s.session.BlogID())
	s.Equal(model.Summary{Total: 3, Indexed: 1, Missing: 1}, s.session.Summary())
}

func (s *SessionTestSuite) TestRun_ShortfallIsNotAnError() {
	s.feeds.EXPECT().FetchPosts(gomock.Any(), "money-park", 10).Return(posts(4), 4, nil)
	s.checker.EXPECT().CheckStatus(gomock.Any(), "money-park", gomock.Any()).Return(model.StatusOf(model.Indexed)).Times(4)

	out, err := s.session.Run(context.Background(), "money-park", 10)
	s.Require().NoError(err)
	s.True(out.Shortfall)
	s.Equal(4, out.Available)
	s.Equal(10, out.Requested)
	s.Len(s.session.Rows(), 4)
}

func (s *SessionTestSuite) TestRun_ErrorStatusDoesNotStopBatch() {
	s.feeds.EXPECT().FetchPosts(gomock.Any(), "money-park", 3).Return(posts(3), 3, nil)
	gomock.InOrder(
		s.checker.EXPECT().CheckStatus(gomock.Any(), "money-park", "글 1").Return(model.Errorf("context deadline exceeded")),
		s.checker.EXPECT().CheckStatus(gomock.Any(), "money-park", "글 2").Return(model.StatusOf(model.Indexed)),
		s.checker.EXPECT().CheckStatus(gomock.Any(), "money-park", "글 3").Return(model.StatusOf(model.Missing)),
	)

	_, err := s.session.Run(context.Background(), "money-park", 3)
	s.Require().NoError(err)
	rows := s.session.Rows()
	s.Require().Len(rows, 3)
	s.Equal(model.Error, rows[0].Status.Kind)
	s.Equal("오류: context deadline exceeded", rows[0].Status.Label())

	sum := s.session.Summary()
	s.Equal(3, sum.Total)
	s.Equal(1, sum.Indexed)
	s.Equal(1, sum.Missing)
}

func (s *SessionTestSuite) TestRun_NoPostsKeepsPreviousResults() {
	s.feeds.EXPECT().FetchPosts(gomock.Any(), "money-park", 2).Return(posts(2), 2, nil)
	s.checker.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.StatusOf(model.Indexed)).Times(2)
	_, err := s.session.Run(context.Background(), "money-park", 2)
	s.Require().NoError(err)

	s.feeds.EXPECT().FetchPosts(gomock.Any(), "empty-blog", 5).Return(nil, 0, nil)
	_, err = s.session.Run(context.Background(), "empty-blog", 5)
	s.ErrorIs(err, ErrNoPostsFound)

	s.feeds.EXPECT().FetchPosts(gomock.Any(), "broken", 5).Return(nil, 0, errors.New("GET feed: http status: 404 Not Found"))
	_, err = s.session.Run(context.Background(), "broken", 5)
	s.ErrorIs(err, ErrNoPostsFound)

	s.Equal("money-park", s.session.BlogID())
	s.Len(s.session.Rows(), 2)
}

func (s *SessionTestSuite) TestRun_CountOutOfRange() {
	for _, n := range []int{0, -1, 51} {
		_, err := s.session.Run(context.Background(), "money-park", n)
		s.ErrorIs(err, ErrCountOutOfRange, "count=%d", n)
	}
	s.False(s.session.HasResults())
}

func (s *SessionTestSuite) TestRun_CancelStopsAtIterationBoundary() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sess := NewSession(s.feeds, s.checker, Options{
		OnRow: func(row model.ReportRow, total int) {
			if row.Seq == 1 {
				cancel()
			}
		},
	})
	s.feeds.EXPECT().FetchPosts(gomock.Any(), "money-park", 3).Return(posts(3), 3, nil)
	s.checker.EXPECT().CheckStatus(gomock.Any(), "money-park", "글 1").Return(model.StatusOf(model.Indexed)).Times(1)

	_, err := sess.Run(ctx, "money-park", 3)
	s.ErrorIs(err, context.Canceled)
	s.False(sess.HasResults())
}

func (s *SessionTestSuite) TestRun_CancelDuringQueryLetsQueryFinish() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.feeds.EXPECT().FetchPosts(gomock.Any(), "money-park", 3).Return(posts(3), 3, nil)
	s.checker.EXPECT().CheckStatus(gomock.Any(), "money-park", "글 1").DoAndReturn(
		func(qctx context.Context, _, _ string) model.Status {
			cancel()
			s.NoError(qctx.Err(), "in-flight query context must survive the outer cancel")
			return model.StatusOf(model.Indexed)
		}).Times(1)

	_, err := s.session.Run(ctx, "money-park", 3)
	s.ErrorIs(err, context.Canceled)
	s.False(s.session.HasResults())
}

func (s *SessionTestSuite) TestRun_CancelDuringFeedFetch() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.feeds.EXPECT().FetchPosts(gomock.Any(), "money-park", 3).DoAndReturn(
		func(context.Context, string, int) ([]model.PostSummary, int, error) {
			cancel()
			return nil, 0, context.Canceled
		})

	_, err := s.session.Run(ctx, "money-park", 3)
	s.ErrorIs(err, context.Canceled)
	s.NotErrorIs(err, ErrNoPostsFound)
}

func (s *SessionTestSuite) TestRun_PausesAfterEveryQuery() {
	sess := NewSession(s.feeds, s.checker, Options{Delay: 20 * time.Millisecond})
	s.feeds.EXPECT().FetchPosts(gomock.Any(), "money-park", 3).Return(posts(3), 3, nil)
	s.checker.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Errorf("boom")).Times(3)

	start := time.Now()
	_, err := sess.Run(context.Background(), "money-park", 3)
	s.Require().NoError(err)
	s.GreaterOrEqual(time.Since(start), 60*time.Millisecond)
}

func (s *SessionTestSuite) TestRun_ResetsPageCursor() {
	sess := NewSession(s.feeds, s.checker, Options{PageSize: 2})
	s.feeds.EXPECT().FetchPosts(gomock.Any(), "money-park", 5).Return(posts(5), 5, nil).Times(2)
	s.checker.EXPECT().CheckStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.StatusOf(model.Missing)).Times(10)

	_, err := sess.Run(context.Background(), "money-park", 5)
	s.Require().NoError(err)
	s.Equal(3, sess.Goto(3))

	_, err = sess.Run(context.Background(), "money-park", 5)
	s.Require().NoError(err)
	s.Equal(1, sess.CurrentPage())
}

func loaded(n, pageSize int) *Session {
	rows := make([]model.ReportRow, n)
	for i := range rows {
		rows[i] = model.ReportRow{Seq: i + 1, Status: model.StatusOf(model.Indexed)}
	}
	s := NewSession(nil, nil, Options{PageSize: pageSize})
	s.Load("money-park", rows)
	return s
}

func TestPages_ConcatenationReproducesRows(t *testing.T) {
	for _, n := range []int{1, 7, 50, 51, 120} {
		sess := loaded(n, DefaultPageSize)
		rows := sess.Rows()
		for size := 1; size <= n+2; size++ {
			tp := TotalPages(n, size)
			var got []model.ReportRow
			for p := 1; p <= tp; p++ {
				pg := Slice(rows, p, size)
				if pg.Number != p || pg.TotalPages != tp {
					t.Fatalf("n=%d size=%d: page %d reported as %d/%d", n, size, p, pg.Number, pg.TotalPages)
				}
				got = append(got, pg.Rows...)
			}
			if len(got) != n {
				t.Fatalf("n=%d size=%d: concatenated %d rows", n, size, len(got))
			}
			for i, r := range got {
				if r.Seq != i+1 {
					t.Fatalf("n=%d size=%d: row %d has seq %d", n, size, i, r.Seq)
				}
			}
		}
	}
}

func TestNavigation_Clamps(t *testing.T) {
	sess := loaded(120, 50)
	if got := sess.Page(); got.Number != 1 || got.TotalPages != 3 || got.First != 1 || got.Last != 50 {
		t.Fatalf("first page = %+v", got)
	}
	if p := sess.Prev(); p != 1 {
		t.Fatalf("prev from first = %d, want 1", p)
	}
	sess.Next()
	if p := sess.Next(); p != 3 {
		t.Fatalf("next twice = %d, want 3", p)
	}
	if p := sess.Next(); p != 3 {
		t.Fatalf("next past last = %d, want 3", p)
	}
	last := sess.Page()
	if last.First != 101 || last.Last != 120 || len(last.Rows) != 20 {
		t.Fatalf("last page = %d-%d (%d rows)", last.First, last.Last, len(last.Rows))
	}
	if p := sess.Goto(2); p != 2 {
		t.Fatalf("goto 2 = %d", p)
	}
	if p := sess.Goto(99); p != 3 {
		t.Fatalf("goto 99 = %d, want 3", p)
	}
	if p := sess.Goto(-4); p != 1 {
		t.Fatalf("goto -4 = %d, want 1", p)
	}
}

func TestRows_ReturnsCopy(t *testing.T) {
	sess := loaded(3, 50)
	rows := sess.Rows()
	rows[0].Seq = 99
	pg := sess.Page()
	pg.Rows[1].Seq = 98
	if got := sess.Rows(); got[0].Seq != 1 || got[1].Seq != 2 {
		t.Fatalf("session rows mutated: %+v", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct{ total, size, want int }{
		{0, 50, 0}, {1, 50, 1}, {50, 50, 1}, {51, 50, 2}, {120, 50, 3}, {5, 1, 5}, {5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.total, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.total, tt.size, got, tt.want)
		}
	}
}
