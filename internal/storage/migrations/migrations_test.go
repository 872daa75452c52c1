package migrations

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFiles_EmbeddedOrder(t *testing.T) {
	pg, err := Files(PostgresFS, "postgres")
	require.NoError(t, err)
	require.Len(t, pg, 2)
	assert.Equal(t, "001_runs.sql", pg[0].Name)
	assert.Equal(t, "002_adjusted_revenues.sql", pg[1].Name)
	assert.Contains(t, pg[1].SQL, "PRIMARY KEY (run_id, adjusted_rank)")

	ch, err := Files(ClickhouseFS, "clickhouse")
	require.NoError(t, err)
	require.Len(t, ch, 1)
	assert.Contains(t, ch[0].SQL, "cpi_index")
}

func TestFiles_SkipsBlankAndNonSQL(t *testing.T) {
	fsys := fstest.MapFS{
		"m/002_b.sql":  {Data: []byte("SELECT 2;")},
		"m/001_a.sql":  {Data: []byte("SELECT 1;")},
		"m/003_c.sql":  {Data: []byte("  \n")},
		"m/README.txt": {Data: []byte("notes")},
	}

	files, err := Files(fsys, "m")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "001_a.sql", files[0].Name)
	assert.Equal(t, "002_b.sql", files[1].Name)
}

type recordingExecer struct {
	scripts []string
	failOn  int
}

func (r *recordingExecer) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.scripts = append(r.scripts, sql)
	if r.failOn > 0 && len(r.scripts) == r.failOn {
		return pgconn.CommandTag{}, errors.New("boom")
	}
	return pgconn.CommandTag{}, nil
}

func TestRunPostgresMigrations(t *testing.T) {
	db := &recordingExecer{}

	applied, err := RunPostgresMigrations(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"001_runs.sql", "002_adjusted_revenues.sql"}, applied)
	require.Len(t, db.scripts, 2)
	assert.Contains(t, db.scripts[0], "CREATE TABLE IF NOT EXISTS runs")
}

func TestRunPostgresMigrations_StopsOnError(t *testing.T) {
	db := &recordingExecer{failOn: 2}

	applied, err := RunPostgresMigrations(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_adjusted_revenues.sql")
	assert.Equal(t, []string{"001_runs.sql"}, applied)
}

func TestSplitStatements(t *testing.T) {
	input := `
-- header comment
CREATE TABLE a (x Int32) ENGINE = Memory;

-- second
CREATE TABLE b (s String DEFAULT 'it''s') ENGINE = Memory;
`
	stmts, err := splitStatements(input)
	require.NoError(t, err)
	require.Len(t, stmts, 2)
	assert.True(t, strings.HasPrefix(stmts[0], "CREATE TABLE a"))
	assert.True(t, strings.HasPrefix(stmts[1], "CREATE TABLE b"))
}

func TestSplitStatements_RejectsQuotedSemicolon(t *testing.T) {
	_, err := splitStatements("INSERT INTO t VALUES ('a;b');")
	require.Error(t, err)
}

func TestDatabaseFromDSN(t *testing.T) {
	db, err := databaseFromDSN("clickhouse://user:pw@localhost:9000/boxoffice")
	require.NoError(t, err)
	assert.Equal(t, "boxoffice", db)

	_, err = databaseFromDSN("clickhouse://localhost:9000")
	require.Error(t, err)
}
