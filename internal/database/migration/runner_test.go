package migration

import (
	"context"
	"errors"
	"strings"
	"testing"

	"job-connect/internal/database"
)

type fakeTx struct {
	execs      []string
	applied    []appliedMigration
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	t.execs = append(t.execs, query)
	return 0, nil
}

func (t *fakeTx) Query(context.Context, string, ...any) (database.Rows, error) {
	return &fakeRows{rows: t.applied}, nil
}

func (t *fakeTx) QueryRow(context.Context, string, ...any) database.Row {
	return nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeRows struct {
	rows []appliedMigration
	i    int
}

func (r *fakeRows) Close() {}

func (r *fakeRows) Next() bool {
	r.i++
	return r.i <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.i-1]
	*dest[0].(*int64) = row.Version
	*dest[1].(*string) = row.Checksum
	return nil
}

func (r *fakeRows) Err() error { return nil }

type fakeDB struct {
	tx          *fakeTx
	directExecs []string
}

func (d *fakeDB) Ping(context.Context) error { return nil }

func (d *fakeDB) Close() error { return nil }

func (d *fakeDB) Exec(_ context.Context, query string, _ ...any) (int64, error) {
	d.directExecs = append(d.directExecs, query)
	return 0, nil
}

func (d *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, errors.New("query outside transaction")
}

func (d *fakeDB) QueryRow(context.Context, string, ...any) database.Row { return nil }

func (d *fakeDB) Begin(context.Context) (database.Tx, error) { return d.tx, nil }

func indexContaining(execs []string, needle string) int {
	for i, q := range execs {
		if strings.Contains(q, needle) {
			return i
		}
	}
	return -1
}

func TestRun_LockAndWorkShareOneTransaction(t *testing.T) {
	tx := &fakeTx{}
	db := &fakeDB{tx: tx}

	if err := Run(context.Background(), db); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if len(db.directExecs) != 0 {
		t.Fatalf("expected no statements outside the transaction, got %v", db.directExecs)
	}

	lock := indexContaining(tx.execs, "pg_advisory_xact_lock")
	create := indexContaining(tx.execs, "CREATE TABLE IF NOT EXISTS schema_migrations")
	record := indexContaining(tx.execs, "INSERT INTO schema_migrations")
	if lock != 0 {
		t.Fatalf("expected the advisory lock as the first statement, execs=%v", tx.execs)
	}
	if create < 0 || create < lock {
		t.Fatalf("expected schema_migrations created after the lock, execs=%v", tx.execs)
	}
	if record < 0 {
		t.Fatalf("expected applied migrations recorded, execs=%v", tx.execs)
	}
	if !tx.committed {
		t.Fatalf("expected commit")
	}
}

func TestRun_SkipsAlreadyApplied(t *testing.T) {
	migs, err := loadMigrations()
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if len(migs) == 0 {
		t.Fatalf("expected embedded migrations")
	}

	applied := make([]appliedMigration, 0, len(migs))
	for _, m := range migs {
		applied = append(applied, appliedMigration{Version: m.Version, Checksum: m.Checksum})
	}
	tx := &fakeTx{applied: applied}
	db := &fakeDB{tx: tx}

	if err := Run(context.Background(), db); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if i := indexContaining(tx.execs, "INSERT INTO schema_migrations"); i >= 0 {
		t.Fatalf("expected no re-apply of recorded migrations, execs=%v", tx.execs)
	}
	if !tx.committed {
		t.Fatalf("expected commit")
	}
}

func TestRun_ChecksumMismatchAborts(t *testing.T) {
	migs, err := loadMigrations()
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}

	tx := &fakeTx{applied: []appliedMigration{{Version: migs[0].Version, Checksum: "tampered"}}}
	db := &fakeDB{tx: tx}

	err = Run(context.Background(), db)
	if err == nil || !strings.Contains(err.Error(), "checksum mismatch") {
		t.Fatalf("expected checksum mismatch error, got %v", err)
	}
	if tx.committed {
		t.Fatalf("mismatch must not commit")
	}
	if !tx.rolledBack {
		t.Fatalf("expected rollback")
	}
}
