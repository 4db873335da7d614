// 패키지 store 는 선택적 실행 기록 보관소(SQLite)를 제공한다: 마이그레이션/저장/조회/초기화.
// 점검 자체는 보관소 없이 동작하며, 설정에서 켰을 때만 연다.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite"

	"naver-index-check/internal/model"
)

// ErrRunNotFound 는 해당 id 의 실행 기록이 없을 때 돌려준다.
var ErrRunNotFound = errors.New("run not found")

// SQLite 는 *sql.DB 를 감싼다(modernc.org/sqlite, 순수 Go).
type SQLite struct {
	db *sql.DB
}

// DefaultDSN 은 XDG 데이터 디렉터리 아래의 기록 파일 경로다(필요하면 디렉터리를 만든다).
func DefaultDSN() (string, error) {
	p, err := xdg.DataFile(filepath.Join("naver-index-check", "history.db"))
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	return p, nil
}

// OpenSQLite 는 DB 를 열고 테이블을 만든다.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// Reset 은 모든 기록을 지운다(파일은 남김).
func (s *SQLite) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("delete results: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs`); err != nil {
		return fmt.Errorf("delete runs: %w", err)
	}
	return nil
}

func (s *SQLite) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            blog_id TEXT NOT NULL,
            requested INTEGER,
            available INTEGER,
            created_at TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS results (
            run_id INTEGER NOT NULL,
            seq INTEGER NOT NULL,
            title TEXT,
            url TEXT,
            published TEXT,
            status TEXT,
            message TEXT,
            PRIMARY KEY (run_id, seq)
        );`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("exec migrate: %w", err)
		}
	}
	return nil
}

// SaveRun 은 실행 한 건과 그 행들을 한 트랜잭션으로 저장하고 id 를 돌려준다.
func (s *SQLite) SaveRun(ctx context.Context, run model.Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()
	res, err := tx.ExecContext(ctx, `INSERT INTO runs(blog_id, requested, available, created_at) VALUES(?,?,?,?)`,
		run.BlogID, run.Requested, run.Available, nowOr(run.CreatedAt))
	if err != nil {
		return 0, fmt.Errorf("insert run %s: %w", run.BlogID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}
	for _, r := range run.Rows {
		_, err := tx.ExecContext(ctx, `INSERT INTO results(run_id, seq, title, url, published, status, message) VALUES(?,?,?,?,?,?,?)`,
			id, r.Seq, r.Post.Title, r.Post.URL, r.Post.Published, r.Status.Kind.String(), r.Status.Message)
		if err != nil {
			return 0, fmt.Errorf("insert row %d: %w", r.Seq, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// ListRuns 는 최근 실행부터 요약과 함께 돌려준다(행은 비움). limit <= 0 이면 전부.
func (s *SQLite) ListRuns(ctx context.Context, limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rs, err := s.db.QueryContext(ctx, `SELECT r.id, r.blog_id, r.requested, r.available, r.created_at,
            COUNT(w.seq),
            COALESCE(SUM(CASE WHEN w.status = ? THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN w.status = ? THEN 1 ELSE 0 END), 0)
        FROM runs r LEFT JOIN results w ON w.run_id = r.id
        GROUP BY r.id ORDER BY r.id DESC LIMIT ?`,
		model.Indexed.String(), model.Missing.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rs.Close()
	var out []model.Run
	for rs.Next() {
		var run model.Run
		var createdAt sql.NullTime
		if err := rs.Scan(&run.ID, &run.BlogID, &run.Requested, &run.Available, &createdAt,
			&run.Summary.Total, &run.Summary.Indexed, &run.Summary.Missing); err != nil {
			return nil, fmt.Errorf("scan runs: %w", err)
		}
		if createdAt.Valid {
			run.CreatedAt = createdAt.Time
		}
		out = append(out, run)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

// LoadRun 은 실행 한 건을 행과 함께 읽는다. 행은 seq 순서다.
func (s *SQLite) LoadRun(ctx context.Context, id int64) (model.Run, error) {
	var run model.Run
	var createdAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `SELECT id, blog_id, requested, available, created_at FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.BlogID, &run.Requested, &run.Available, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return run, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return run, fmt.Errorf("query run %d: %w", id, err)
	}
	if createdAt.Valid {
		run.CreatedAt = createdAt.Time
	}
	rs, err := s.db.QueryContext(ctx, `SELECT seq, title, url, published, status, message FROM results WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return run, fmt.Errorf("query rows of run %d: %w", id, err)
	}
	defer rs.Close()
	for rs.Next() {
		var r model.ReportRow
		var kind string
		if err := rs.Scan(&r.Seq, &r.Post.Title, &r.Post.URL, &r.Post.Published, &kind, &r.Status.Message); err != nil {
			return run, fmt.Errorf("scan rows: %w", err)
		}
		k, err := model.ParseKind(kind)
		if err != nil {
			return run, fmt.Errorf("row %d: %w", r.Seq, err)
		}
		r.Status.Kind = k
		run.Rows = append(run.Rows, r)
	}
	if err := rs.Err(); err != nil {
		return run, fmt.Errorf("iterate rows: %w", err)
	}
	run.Summary = model.Summarize(run.Rows)
	return run, nil
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
