package data

import (
	"context"
	"database/sql"
	"math"

	"github.com/ansel1/merry"
	"github.com/fpawel/hexfloat/internal/pkg"
	"github.com/jmoiron/sqlx"
)

func Open(filename string) (*sqlx.DB, error) {
	db, err := pkg.OpenSqliteDBx(filename)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(SQLCreate); err != nil {
		_ = db.Close()
		return nil, merry.Append(err, filename)
	}
	return db, nil
}

// SaveRun stores the run with its samples in one transaction and returns the
// new run id. NaN values are stored as NULL.
func SaveRun(ctx context.Context, db *sqlx.DB, run Run, samples []Sample) (int64, error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, merry.Wrap(err)
	}
	runID, err := saveRun(ctx, tx, run, samples)
	if err != nil {
		_ = tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, merry.Wrap(err)
	}
	return runID, nil
}

func saveRun(ctx context.Context, tx *sqlx.Tx, run Run, samples []Sample) (int64, error) {
	r, err := tx.ExecContext(ctx,
		`INSERT INTO run(created_at, source, mode, bins, skipped) VALUES (?, ?, ?, ?, ?)`,
		run.CreatedAt, run.Source, run.Mode, run.Bins, run.Skipped)
	if err != nil {
		return 0, merry.Wrap(err)
	}
	runID, err := pkg.SqlGetNewInsertedID(r)
	if err != nil {
		return 0, err
	}
	stmt, err := tx.PreparexContext(ctx, `INSERT INTO sample(run_id, idx, token, value) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return 0, merry.Wrap(err)
	}
	defer func() {
		_ = stmt.Close()
	}()
	for _, s := range samples {
		var value interface{} = s.Value
		if math.IsNaN(s.Value) {
			value = nil
		}
		if _, err := stmt.ExecContext(ctx, runID, s.Index, s.Token, value); err != nil {
			return 0, merry.Appendf(err, "sample %d %q", s.Index, s.Token)
		}
	}
	return runID, nil
}

func GetRun(ctx context.Context, db *sqlx.DB, runID int64) (run Run, err error) {
	err = db.GetContext(ctx, &run, sqlSelectRuns+` WHERE run_id = ?`, runID)
	if err == sql.ErrNoRows {
		return run, merry.Errorf("run %d not found", runID)
	}
	return run, merry.Wrap(err)
}

func ListRuns(ctx context.Context, db *sqlx.DB) (runs []Run, err error) {
	err = db.SelectContext(ctx, &runs, sqlSelectRuns+` ORDER BY run_id`)
	return runs, merry.Wrap(err)
}

// ListSamples returns the samples of a run in input order.
func ListSamples(ctx context.Context, db *sqlx.DB, runID int64) ([]Sample, error) {
	var rows []struct {
		Index int             `db:"idx"`
		Token string          `db:"token"`
		Value sql.NullFloat64 `db:"value"`
	}
	err := db.SelectContext(ctx, &rows,
		`SELECT idx, token, value FROM sample WHERE run_id = ? ORDER BY idx`, runID)
	if err != nil {
		return nil, merry.Wrap(err)
	}
	xs := make([]Sample, len(rows))
	for i, r := range rows {
		xs[i] = Sample{Index: r.Index, Token: r.Token, Value: math.NaN()}
		if r.Value.Valid {
			xs[i].Value = r.Value.Float64
		}
	}
	return xs, nil
}

const sqlSelectRuns = `
SELECT run_id, created_at, source, mode, bins, skipped,
       (SELECT COUNT(*) FROM sample WHERE sample.run_id = run.run_id) AS count
FROM run`
