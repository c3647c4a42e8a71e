package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"SynthChart/internal/calculator"
	"SynthChart/internal/model"
)

// SQLiteRecorder persists pair charts to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *logrus.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *logrus.Logger) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so API reads do not block the scheduler's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Infof("sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS pair_runs (
			run_id       TEXT NOT NULL,
			recorded_at  INTEGER NOT NULL,
			base         TEXT NOT NULL,
			quote        TEXT NOT NULL,
			period       TEXT NOT NULL,
			no_data      INTEGER NOT NULL,
			PRIMARY KEY (run_id, base, quote, period)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pair_runs_key ON pair_runs(base, quote, period, recorded_at)`,

		`CREATE TABLE IF NOT EXISTS pair_candles (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id      TEXT NOT NULL,
			base        TEXT NOT NULL,
			quote       TEXT NOT NULL,
			period      TEXT NOT NULL,
			seq         INTEGER NOT NULL,
			candle_id   TEXT,
			synth       TEXT,
			timestamp   INTEGER NOT NULL,
			open        TEXT,
			high        TEXT,
			low         TEXT,
			close       TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pair_candles_run ON pair_candles(run_id, base, quote, period, seq)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordPairChart stores the chart and all its candles in one transaction.
func (r *SQLiteRecorder) RecordPairChart(runID string, chart *model.PairChart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	base, quote, period := chart.Base.String(), chart.Quote.String(), chart.Period.Label
	if _, err := tx.Exec(`INSERT INTO pair_runs
		(run_id, recorded_at, base, quote, period, no_data)
		VALUES (?,?,?,?,?,?)`,
		runID, time.Now().UnixNano(), base, quote, period, chart.NoData,
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO pair_candles
		(run_id, base, quote, period, seq, candle_id, synth, timestamp, open, high, low, close)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare candle insert: %w", err)
	}
	defer stmt.Close()

	for i, c := range chart.Candles {
		if _, err := stmt.Exec(runID, base, quote, period, i, c.ID, c.Synth, c.Timestamp,
			intText(c.Open), intText(c.High), intText(c.Low), intText(c.Close),
		); err != nil {
			return fmt.Errorf("insert candle %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// LatestPairChart loads the candles of the most recent run for the pair.
func (r *SQLiteRecorder) LatestPairChart(base, quote model.CurrencyKey, period model.Period) (*model.PairChart, error) {
	var runID string
	var noData bool
	err := r.db.QueryRow(`SELECT run_id, no_data FROM pair_runs
		WHERE base = ? AND quote = ? AND period = ?
		ORDER BY recorded_at DESC, rowid DESC LIMIT 1`,
		base.String(), quote.String(), period.Label,
	).Scan(&runID, &noData)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}

	rows, err := r.db.Query(`SELECT candle_id, synth, timestamp, open, high, low, close
		FROM pair_candles
		WHERE run_id = ? AND base = ? AND quote = ? AND period = ?
		ORDER BY seq`,
		runID, base.String(), quote.String(), period.Label,
	)
	if err != nil {
		return nil, fmt.Errorf("query candles: %w", err)
	}
	defer rows.Close()

	var candles []model.Candle
	for rows.Next() {
		var c model.Candle
		var id, synth sql.NullString
		var o, h, l, cl sql.NullString
		if err := rows.Scan(&id, &synth, &c.Timestamp, &o, &h, &l, &cl); err != nil {
			return nil, fmt.Errorf("scan candle: %w", err)
		}
		c.ID, c.Synth = id.String, synth.String
		if c.Open, err = parseInt(o); err != nil {
			return nil, err
		}
		if c.High, err = parseInt(h); err != nil {
			return nil, err
		}
		if c.Low, err = parseInt(l); err != nil {
			return nil, err
		}
		if c.Close, err = parseInt(cl); err != nil {
			return nil, err
		}
		candles = append(candles, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &model.PairChart{
		Base:    base,
		Quote:   quote,
		Period:  period,
		Candles: candles,
		NoData:  noData,
		Summary: calculator.Summarize(candles),
	}, nil
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}

// intText stores prices as decimal strings; they overflow SQLite integers.
func intText(v *big.Int) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: v.String(), Valid: true}
}

func parseInt(s sql.NullString) (*big.Int, error) {
	if !s.Valid {
		return nil, nil
	}
	v, ok := new(big.Int).SetString(s.String, 10)
	if !ok {
		return nil, fmt.Errorf("invalid stored price %q", s.String)
	}
	return v, nil
}
