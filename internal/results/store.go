package results

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/robalobadob/wordle-solver/internal/autosolve"
	"github.com/robalobadob/wordle-solver/internal/entropy"
)

// ErrNotFound is returned when no benchmark or ranking has been stored yet.
var ErrNotFound = errors.New("results: not found")

// Benchmark is a stored benchmark run.
type Benchmark struct {
	ID        int64              `json:"id"`
	CreatedAt time.Time          `json:"createdAt"`
	Summary   autosolve.Summary  `json:"summary"`
	Worst     []autosolve.Result `json:"worst"` // longest solved paths, then unsolved
}

// Ranking is a stored entropy ranking.
type Ranking struct {
	ID        int64           `json:"id"`
	CreatedAt time.Time       `json:"createdAt"`
	Model     string          `json:"model"`
	Words     int             `json:"words"`
	Scores    []entropy.Score `json:"scores"`
}

// SaveBenchmark stores results and their summary in one transaction and returns the
// run ID.
func (d *DB) SaveBenchmark(ctx context.Context, rs []autosolve.Result) (int64, error) {
	sum := autosolve.Summarize(rs)
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO benchmark_runs (created_at, runs, solved, mean, worst)
        VALUES (?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), sum.Runs, sum.Solved, sum.Mean, sum.Worst,
	)
	if err != nil {
		return 0, fmt.Errorf("insert benchmark run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `
        INSERT OR REPLACE INTO benchmark_results (run_id, target, guesses, solved, path)
        VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, r := range rs {
		if _, err := stmt.ExecContext(ctx, id, r.Target, len(r.Path), r.Solved, strings.Join(r.Path, " ")); err != nil {
			return 0, fmt.Errorf("insert result %s: %w", r.Target, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// LatestBenchmark returns the most recent run with its worst targets: unsolved
// first, then the longest solved paths.
func (d *DB) LatestBenchmark(ctx context.Context, worst int) (*Benchmark, error) {
	if worst <= 0 {
		worst = 10
	}
	var (
		b       Benchmark
		created string
	)
	err := d.db.QueryRowContext(ctx, `
        SELECT id, created_at, runs, solved, mean, worst
        FROM benchmark_runs
        ORDER BY id DESC
        LIMIT 1`,
	).Scan(&b.ID, &created, &b.Summary.Runs, &b.Summary.Solved, &b.Summary.Mean, &b.Summary.Worst)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if b.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("benchmark %d created_at: %w", b.ID, err)
	}

	b.Summary.Histogram = make(map[int]int)
	rows, err := d.db.QueryContext(ctx, `
        SELECT guesses, COUNT(1)
        FROM benchmark_results
        WHERE run_id=? AND solved=1
        GROUP BY guesses`, b.ID)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var n, count int
		if err := rows.Scan(&n, &count); err != nil {
			rows.Close()
			return nil, err
		}
		b.Summary.Histogram[n] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = d.db.QueryContext(ctx, `
        SELECT target, solved, path
        FROM benchmark_results
        WHERE run_id=?
        ORDER BY solved ASC, guesses DESC, target ASC`, b.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var (
			r    autosolve.Result
			path string
		)
		if err := rows.Scan(&r.Target, &r.Solved, &path); err != nil {
			return nil, err
		}
		r.Path = strings.Fields(path)
		if !r.Solved {
			b.Summary.Failed = append(b.Summary.Failed, r.Target)
		}
		if len(b.Worst) < worst {
			b.Worst = append(b.Worst, r)
		}
	}
	return &b, rows.Err()
}

// SaveRanking stores scores in the given order and returns the ranking ID.
func (d *DB) SaveRanking(ctx context.Context, model string, scores []entropy.Score) (int64, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO rankings (created_at, model, words) VALUES (?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339Nano), model, len(scores),
	)
	if err != nil {
		return 0, fmt.Errorf("insert ranking: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PrepareContext(ctx, `
        INSERT INTO ranking_scores (ranking_id, position, word, bits) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for i, s := range scores {
		if _, err := stmt.ExecContext(ctx, id, i, s.Word, s.Bits); err != nil {
			return 0, fmt.Errorf("insert score %s: %w", s.Word, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// TopRanking returns the first limit scores of the most recent ranking.
func (d *DB) TopRanking(ctx context.Context, limit int) (*Ranking, error) {
	if limit <= 0 {
		limit = 20
	}
	var (
		rk      Ranking
		created string
	)
	err := d.db.QueryRowContext(ctx, `
        SELECT id, created_at, model, words
        FROM rankings
        ORDER BY id DESC
        LIMIT 1`,
	).Scan(&rk.ID, &created, &rk.Model, &rk.Words)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if rk.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("ranking %d created_at: %w", rk.ID, err)
	}

	rows, err := d.db.QueryContext(ctx, `
        SELECT word, bits
        FROM ranking_scores
        WHERE ranking_id=?
        ORDER BY position ASC
        LIMIT ?`, rk.ID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	rk.Scores = make([]entropy.Score, 0, limit)
	for rows.Next() {
		var s entropy.Score
		if err := rows.Scan(&s.Word, &s.Bits); err != nil {
			return nil, err
		}
		rk.Scores = append(rk.Scores, s)
	}
	return &rk, rows.Err()
}
