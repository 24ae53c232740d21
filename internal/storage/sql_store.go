package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/yonghwan1106/e-ansimcare/internal/dataset"
	"github.com/yonghwan1106/e-ansimcare/internal/domain"
)

// Dialect is the database/sql driver name the store talks to.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "pgx"
)

func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(s); d {
	case DialectSQLite, DialectPostgres:
		return d, nil
	case "postgres", "postgresql":
		return DialectPostgres, nil
	case "sqlite":
		return DialectSQLite, nil
	}
	return "", fmt.Errorf("unsupported database driver %q", s)
}

// rows per INSERT statement
const insertBatch = 200

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Open opens and pings a database. SQLite DSNs without parameters get WAL,
// foreign keys and a busy timeout so every pooled connection shares them.
func Open(ctx context.Context, dialect Dialect, dsn string) (*sql.DB, error) {
	if dialect == DialectSQLite && !strings.Contains(dsn, "?") {
		dsn += "?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000"
	}
	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}
	return db, nil
}

// Run is one stored snapshot.
type Run struct {
	ID          string    `json:"id"`
	Seed        uint64    `json:"seed"`
	GeneratedAt time.Time `json:"generated_at"`
	SavedAt     time.Time `json:"saved_at"`
	Households  int       `json:"households"`
	Volunteers  int       `json:"volunteers"`
	Activities  int       `json:"activities"`
	Alerts      int       `json:"alerts"`
}

// SnapshotStore persists generated snapshots for offline analysis.
type SnapshotStore struct {
	db      *sql.DB
	dialect Dialect
	sb      sq.StatementBuilderType
	now     func() time.Time
	log     *zap.Logger
}

func NewSnapshotStore(db *sql.DB, dialect Dialect, log *zap.Logger) *SnapshotStore {
	if log == nil {
		log = zap.NewNop()
	}
	ph := sq.PlaceholderFormat(sq.Question)
	if dialect == DialectPostgres {
		ph = sq.Dollar
	}
	return &SnapshotStore{
		db:      db,
		dialect: dialect,
		sb:      sq.StatementBuilder.PlaceholderFormat(ph),
		now:     time.Now,
		log:     log,
	}
}

func (s *SnapshotStore) Dialect() Dialect { return s.dialect }

func (s *SnapshotStore) Close() error { return s.db.Close() }

var schema = []string{
	`CREATE TABLE IF NOT EXISTS snapshot_runs (
  id TEXT PRIMARY KEY,
  seed TEXT NOT NULL,
  generated_at TEXT NOT NULL,
  saved_at TEXT NOT NULL,
  households INTEGER NOT NULL,
  volunteers INTEGER NOT NULL,
  activities INTEGER NOT NULL,
  alerts INTEGER NOT NULL
)`,
	`CREATE TABLE IF NOT EXISTS households (
  run_id TEXT NOT NULL REFERENCES snapshot_runs(id) ON DELETE CASCADE,
  id TEXT NOT NULL,
  sido TEXT NOT NULL,
  sigungu TEXT NOT NULL,
  dong TEXT NOT NULL,
  risk_score INTEGER NOT NULL,
  risk_level TEXT NOT NULL,
  status TEXT NOT NULL,
  heating_type TEXT NOT NULL,
  detected_at TEXT NOT NULL,
  payload TEXT NOT NULL,
  PRIMARY KEY (run_id, id)
)`,
	`CREATE INDEX IF NOT EXISTS idx_households_risk ON households(run_id, risk_score)`,
	`CREATE INDEX IF NOT EXISTS idx_households_sido ON households(run_id, sido)`,
	`CREATE TABLE IF NOT EXISTS volunteers (
  run_id TEXT NOT NULL REFERENCES snapshot_runs(id) ON DELETE CASCADE,
  id TEXT NOT NULL,
  name TEXT NOT NULL,
  type TEXT NOT NULL,
  status TEXT NOT NULL,
  region TEXT NOT NULL,
  total_visits INTEGER NOT NULL,
  total_hours INTEGER NOT NULL,
  PRIMARY KEY (run_id, id)
)`,
	`CREATE TABLE IF NOT EXISTS activities (
  run_id TEXT NOT NULL REFERENCES snapshot_runs(id) ON DELETE CASCADE,
  id TEXT NOT NULL,
  volunteer_id TEXT NOT NULL,
  household_id TEXT NOT NULL,
  scheduled_date TEXT NOT NULL,
  visit_type TEXT NOT NULL,
  status TEXT NOT NULL,
  duration_minutes INTEGER NOT NULL,
  PRIMARY KEY (run_id, id)
)`,
}

func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// SaveSnapshot writes the run header and its households, volunteers and
// activities in one transaction. Saving the same snapshot twice fails on the
// primary key.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snap *dataset.Snapshot) (Run, error) {
	meta := snap.Meta()
	households := snap.Households()
	volunteers := snap.Volunteers()
	activities := snap.Activities()

	run := Run{
		ID:          meta.ID.String(),
		Seed:        meta.Seed,
		GeneratedAt: meta.GeneratedAt.UTC(),
		SavedAt:     s.now().UTC(),
		Households:  len(households),
		Volunteers:  len(volunteers),
		Activities:  len(activities),
		Alerts:      len(snap.Alerts()),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = s.sb.Insert("snapshot_runs").
		Columns("id", "seed", "generated_at", "saved_at", "households", "volunteers", "activities", "alerts").
		Values(run.ID, strconv.FormatUint(run.Seed, 10), run.GeneratedAt.Format(timeLayout),
			run.SavedAt.Format(timeLayout), run.Households, run.Volunteers, run.Activities, run.Alerts).
		RunWith(tx).ExecContext(ctx)
	if err != nil {
		return Run{}, fmt.Errorf("insert run: %w", err)
	}

	err = insertBatched(ctx, tx, s.sb.Insert("households").
		Columns("run_id", "id", "sido", "sigungu", "dong", "risk_score", "risk_level", "status",
			"heating_type", "detected_at", "payload"),
		len(households), func(b sq.InsertBuilder, i int) (sq.InsertBuilder, error) {
			h := households[i]
			payload, err := json.Marshal(h)
			if err != nil {
				return b, fmt.Errorf("marshal household %s: %w", h.ID, err)
			}
			return b.Values(run.ID, h.ID, h.Region.Sido, h.Region.Sigungu, h.Region.Dong, h.RiskScore,
				string(h.RiskLevel), string(h.Status), h.HeatingType, h.DetectedAt.String(), string(payload)), nil
		})
	if err != nil {
		return Run{}, fmt.Errorf("insert households: %w", err)
	}

	err = insertBatched(ctx, tx, s.sb.Insert("volunteers").
		Columns("run_id", "id", "name", "type", "status", "region", "total_visits", "total_hours"),
		len(volunteers), func(b sq.InsertBuilder, i int) (sq.InsertBuilder, error) {
			v := volunteers[i]
			return b.Values(run.ID, v.ID, v.Name, string(v.Type), string(v.Status), v.Region,
				v.TotalVisits, v.TotalHours), nil
		})
	if err != nil {
		return Run{}, fmt.Errorf("insert volunteers: %w", err)
	}

	err = insertBatched(ctx, tx, s.sb.Insert("activities").
		Columns("run_id", "id", "volunteer_id", "household_id", "scheduled_date", "visit_type", "status",
			"duration_minutes"),
		len(activities), func(b sq.InsertBuilder, i int) (sq.InsertBuilder, error) {
			a := activities[i]
			return b.Values(run.ID, a.ID, a.VolunteerID, a.HouseholdID, a.ScheduledDate.String(),
				string(a.VisitType), string(a.Status), a.DurationMinutes), nil
		})
	if err != nil {
		return Run{}, fmt.Errorf("insert activities: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("commit: %w", err)
	}
	s.log.Info("snapshot stored",
		zap.String("run_id", run.ID),
		zap.Int("households", run.Households),
		zap.Int("volunteers", run.Volunteers),
		zap.Int("activities", run.Activities),
	)
	return run, nil
}

func insertBatched(ctx context.Context, tx *sql.Tx, base sq.InsertBuilder, n int,
	row func(sq.InsertBuilder, int) (sq.InsertBuilder, error)) error {
	for start := 0; start < n; start += insertBatch {
		end := min(start+insertBatch, n)
		b := base
		for i := start; i < end; i++ {
			var err error
			if b, err = row(b, i); err != nil {
				return err
			}
		}
		if _, err := b.RunWith(tx).ExecContext(ctx); err != nil {
			return err
		}
	}
	return nil
}

var runColumns = []string{"id", "seed", "generated_at", "saved_at", "households", "volunteers", "activities", "alerts"}

// ListRuns returns stored runs, newest save first.
func (s *SnapshotStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	q := s.sb.Select(runColumns...).From("snapshot_runs").OrderBy("saved_at DESC", "id")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	rows, err := q.RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	out := []Run{}
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// LatestRun is the most recently saved run; ok is false when none exist.
func (s *SnapshotStore) LatestRun(ctx context.Context) (Run, bool, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil || len(runs) == 0 {
		return Run{}, false, err
	}
	return runs[0], true, nil
}

func (s *SnapshotStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	row := s.sb.Select(runColumns...).From("snapshot_runs").Where(sq.Eq{"id": id}).
		RunWith(s.db).QueryRowContext(ctx)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, err
	}
	return r, true, nil
}

// DeleteRun removes a run and, through the foreign keys, its rows.
func (s *SnapshotStore) DeleteRun(ctx context.Context, id string) (bool, error) {
	res, err := s.sb.Delete("snapshot_runs").Where(sq.Eq{"id": id}).RunWith(s.db).ExecContext(ctx)
	if err != nil {
		return false, fmt.Errorf("delete run: %w", err)
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r                  Run
		seed, genAt, saved string
	)
	if err := sc.Scan(&r.ID, &seed, &genAt, &saved, &r.Households, &r.Volunteers, &r.Activities, &r.Alerts); err != nil {
		return Run{}, err
	}
	var err error
	if r.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return Run{}, fmt.Errorf("run %s seed: %w", r.ID, err)
	}
	if r.GeneratedAt, err = time.Parse(timeLayout, genAt); err != nil {
		return Run{}, fmt.Errorf("run %s generated_at: %w", r.ID, err)
	}
	if r.SavedAt, err = time.Parse(timeLayout, saved); err != nil {
		return Run{}, fmt.Errorf("run %s saved_at: %w", r.ID, err)
	}
	return r, nil
}

// HouseholdQuery filters stored households of one run.
type HouseholdQuery struct {
	RunID     string
	Search    string
	RiskLevel domain.RiskLevel
	Status    domain.HouseholdStatus
	Sido      string
	MinRisk   int
	Limit     int
	Offset    int
}

func (q HouseholdQuery) where() sq.And {
	w := sq.And{sq.Eq{"run_id": q.RunID}}
	if s := strings.TrimSpace(q.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		w = append(w, sq.Or{
			sq.Like{"LOWER(id)": like},
			sq.Like{"sigungu": "%" + s + "%"},
			sq.Like{"dong": "%" + s + "%"},
		})
	}
	if q.RiskLevel != "" {
		w = append(w, sq.Eq{"risk_level": string(q.RiskLevel)})
	}
	if q.Status != "" {
		w = append(w, sq.Eq{"status": string(q.Status)})
	}
	if q.Sido != "" {
		w = append(w, sq.Eq{"sido": q.Sido})
	}
	if q.MinRisk > 0 {
		w = append(w, sq.GtOrEq{"risk_score": q.MinRisk})
	}
	return w
}

func (s *SnapshotStore) CountHouseholds(ctx context.Context, q HouseholdQuery) (int, error) {
	var n int
	err := s.sb.Select("COUNT(*)").From("households").Where(q.where()).
		RunWith(s.db).QueryRowContext(ctx).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count households: %w", err)
	}
	return n, nil
}

// ListHouseholds returns a page of stored households, highest risk first,
// and the total matching the filter.
func (s *SnapshotStore) ListHouseholds(ctx context.Context, q HouseholdQuery) ([]domain.Household, int, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	total, err := s.CountHouseholds(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	rows, err := s.sb.Select("payload").From("households").Where(q.where()).
		OrderBy("risk_score DESC", "id").
		Limit(uint64(q.Limit)).Offset(uint64(q.Offset)).
		RunWith(s.db).QueryContext(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list households: %w", err)
	}
	defer rows.Close()

	out := []domain.Household{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, 0, err
		}
		var h domain.Household
		if err := json.Unmarshal([]byte(payload), &h); err != nil {
			return nil, 0, fmt.Errorf("decode household: %w", err)
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
