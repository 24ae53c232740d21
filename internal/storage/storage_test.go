package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yonghwan1106/e-ansimcare/internal/dataset"
	"github.com/yonghwan1106/e-ansimcare/internal/domain"
	"github.com/yonghwan1106/e-ansimcare/internal/generator"
)

var (
	genAt   = time.Date(2024, time.December, 15, 10, 0, 0, 0, time.UTC)
	savedAt = time.Date(2024, time.December, 15, 11, 0, 0, 0, time.UTC)
)

func generated(t *testing.T, seed uint64) *dataset.Snapshot {
	t.Helper()
	return generator.New(generator.Options{
		Config: generator.Config{Households: 40, SeniorVolunteers: 4, EmployeeVolunteers: 2, Activities: 30, Alerts: 5},
		Seed:   seed,
		Now:    func() time.Time { return genAt },
	}).Generate()
}

func tinySnapshot() *dataset.Snapshot {
	return dataset.New(dataset.Meta{ID: uuid.MustParse("7b1f6a4e-0c1d-4b8e-9a55-1f0c2d3e4f50"), Seed: 42, GeneratedAt: genAt},
		dataset.Collections{
			Households: []domain.Household{{
				ID:          "HH-0001",
				Region:      domain.Region{Sido: "서울특별시", Sigungu: "강남구", Dong: "역삼동"},
				RiskScore:   85,
				RiskLevel:   domain.RiskCritical,
				Status:      domain.StatusDetected,
				HeatingType: "연탄",
				DetectedAt:  domain.MustDate("2024-12-01"),
			}},
			Volunteers: []domain.Volunteer{{ID: "VOL-S-001", Name: "김민수", Type: domain.VolunteerSenior,
				Status: domain.VolunteerActive, Region: "서울", TotalVisits: 30, TotalHours: 100}},
			Activities: []domain.VisitActivity{{ID: "ACT-00001", VolunteerID: "VOL-S-001", HouseholdID: "HH-0001",
				ScheduledDate: domain.MustDate("2024-12-03"), VisitType: domain.VisitWelfareCheck,
				Status: domain.VisitScheduled}},
		})
}

func TestSnapshotFile_RoundTrip(t *testing.T) {
	snap := generated(t, 3)
	path := filepath.Join(t.TempDir(), "nested", "snapshot.json")

	require.NoError(t, SaveSnapshotToFile(path, snap))
	got, err := LoadSnapshotFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, snap.Meta().ID, got.Meta().ID)
	assert.Equal(t, snap.Meta().Seed, got.Meta().Seed)
	assert.True(t, snap.Meta().GeneratedAt.Equal(got.Meta().GeneratedAt))
	if diff := cmp.Diff(snap.Households(), got.Households()); diff != "" {
		t.Errorf("households mismatch (-want +got):\n%s", diff)
	}
	_, ok := got.Household(snap.Households()[0].ID)
	assert.True(t, ok, "lookups rebuilt after load")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file cleaned up")
}

func TestLoadSnapshotFromFile_Errors(t *testing.T) {
	_, err := LoadSnapshotFromFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o600))
	_, err = LoadSnapshotFromFile(bad)
	assert.Error(t, err)
}

func TestParseDialect(t *testing.T) {
	for in, want := range map[string]Dialect{
		"sqlite3": DialectSQLite, "sqlite": DialectSQLite, "pgx": DialectPostgres, "postgres": DialectPostgres,
	} {
		got, err := ParseDialect(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseDialect("mysql")
	assert.Error(t, err)
}

func openSQLite(t *testing.T) *SnapshotStore {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, DialectSQLite, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	s := NewSnapshotStore(db, DialectSQLite, zap.NewNop())
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.EnsureSchema(ctx))
	require.NoError(t, s.EnsureSchema(ctx), "idempotent")
	return s
}

func TestSQLite_SaveAndQuery(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)
	snap := generated(t, 9)

	run, err := s.SaveSnapshot(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, snap.Meta().ID.String(), run.ID)
	assert.Equal(t, 40, run.Households)
	assert.Equal(t, 6, run.Volunteers)
	assert.Equal(t, 30, run.Activities)
	assert.Equal(t, 5, run.Alerts)

	n, err := s.CountHouseholds(ctx, HouseholdQuery{RunID: run.ID})
	require.NoError(t, err)
	assert.Equal(t, 40, n)

	want := 0
	for _, h := range snap.Households() {
		if h.RiskLevel == domain.RiskHigh {
			want++
		}
	}
	hs, total, err := s.ListHouseholds(ctx, HouseholdQuery{RunID: run.ID, RiskLevel: domain.RiskHigh, Limit: 100})
	require.NoError(t, err)
	assert.Equal(t, want, total)
	assert.Len(t, hs, want)
	for i, h := range hs {
		assert.Equal(t, domain.RiskHigh, h.RiskLevel)
		if i > 0 {
			assert.GreaterOrEqual(t, hs[i-1].RiskScore, h.RiskScore)
		}
		orig, ok := snap.Household(h.ID)
		require.True(t, ok)
		assert.Empty(t, cmp.Diff(orig, h), "payload round-trips")
	}

	page, total, err := s.ListHouseholds(ctx, HouseholdQuery{RunID: run.ID, Limit: 5, Offset: 5})
	require.NoError(t, err)
	assert.Equal(t, 40, total)
	assert.Len(t, page, 5)

	first := snap.Households()[0]
	found, _, err := s.ListHouseholds(ctx, HouseholdQuery{RunID: run.ID, Search: first.ID[3:]})
	require.NoError(t, err)
	assert.NotEmpty(t, found)

	_, err = s.SaveSnapshot(ctx, snap)
	assert.Error(t, err, "same run twice")

	runs, err := s.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, uint64(9), runs[0].Seed)
	assert.True(t, genAt.Equal(runs[0].GeneratedAt))

	got, ok, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, run.ID, got.ID)
	_, ok, err = s.GetRun(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_LatestAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openSQLite(t)

	_, ok, err := s.LatestRun(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	s.now = func() time.Time { return savedAt }
	older, err := s.SaveSnapshot(ctx, generated(t, 1))
	require.NoError(t, err)
	s.now = func() time.Time { return savedAt.Add(time.Hour) }
	newer, err := s.SaveSnapshot(ctx, generated(t, 2))
	require.NoError(t, err)

	latest, ok, err := s.LatestRun(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, newer.ID, latest.ID)

	deleted, err := s.DeleteRun(ctx, newer.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	n, err := s.CountHouseholds(ctx, HouseholdQuery{RunID: newer.ID})
	require.NoError(t, err)
	assert.Zero(t, n, "households cascade with the run")

	deleted, err = s.DeleteRun(ctx, newer.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	latest, _, err = s.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, older.ID, latest.ID)
}

func newMockStore(t *testing.T) (*SnapshotStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s := NewSnapshotStore(db, DialectPostgres, zap.NewNop())
	s.now = func() time.Time { return savedAt }
	return s, mock
}

func TestPostgres_SaveSnapshot(t *testing.T) {
	s, mock := newMockStore(t)
	snap := tinySnapshot()
	id := snap.Meta().ID.String()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO snapshot_runs \(.+\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7,\$8\)`).
		WithArgs(id, "42", "2024-12-15T10:00:00.000000Z", "2024-12-15T11:00:00.000000Z", 1, 1, 1, 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO households .+ VALUES \(\$1,`).
		WithArgs(id, "HH-0001", "서울특별시", "강남구", "역삼동", 85, "critical", "detected", "연탄", "2024-12-01", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO volunteers`).
		WithArgs(id, "VOL-S-001", "김민수", "senior", "active", "서울", 30, 100).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO activities`).
		WithArgs(id, "ACT-00001", "VOL-S-001", "HH-0001", "2024-12-03", "welfare_check", "scheduled", 0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	run, err := s.SaveSnapshot(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, id, run.ID)
	assert.Equal(t, savedAt, run.SavedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_SaveSnapshotRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO snapshot_runs`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO households`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := s.SaveSnapshot(context.Background(), tinySnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert households")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListRuns(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows(runColumns).
		AddRow("run-1", "42", "2024-12-15T10:00:00.000000Z", "2024-12-15T11:00:00.000000Z", 523, 200, 1050, 100)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, seed, generated_at, saved_at, households, volunteers, activities, alerts FROM snapshot_runs ORDER BY saved_at DESC, id LIMIT 10",
	)).WillReturnRows(rows)

	runs, err := s.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, Run{
		ID: "run-1", Seed: 42, GeneratedAt: genAt, SavedAt: savedAt,
		Households: 523, Volunteers: 200, Activities: 1050, Alerts: 100,
	}, runs[0])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ListHouseholdsUsesDollarPlaceholders(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM households WHERE \(run_id = \$1 AND risk_level = \$2 AND sido = \$3\)`).
		WithArgs("run-1", "high", "서울특별시").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT payload FROM households WHERE \(run_id = \$1 AND risk_level = \$2 AND sido = \$3\) ORDER BY risk_score DESC, id LIMIT 20 OFFSET 0`).
		WithArgs("run-1", "high", "서울특별시").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow(`{"id":"HH-0007","risk_score":70,"risk_level":"high"}`))

	hs, total, err := s.ListHouseholds(context.Background(), HouseholdQuery{
		RunID: "run-1", RiskLevel: domain.RiskHigh, Sido: "서울특별시",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, hs, 1)
	assert.Equal(t, "HH-0007", hs[0].ID)
	assert.Equal(t, 70, hs[0].RiskScore)
	require.NoError(t, mock.ExpectationsWereMet())
}
