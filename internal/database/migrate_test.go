package database

import (
	"context"
	"os"
	"testing"
	"testing/fstest"

	"exam-byte/internal/config"
	"exam-byte/internal/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{Level: "error"}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	os.Exit(m.Run())
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func testMigrations() fstest.MapFS {
	return fstest.MapFS{
		"migrations/1_init.up.sql": {Data: []byte(`-- first table
CREATE TABLE a (
    id VARCHAR2(26) PRIMARY KEY
);

CREATE INDEX idx_a ON a(id);
`)},
		"migrations/1_init.down.sql": {Data: []byte("DROP TABLE a;\n")},
		"migrations/2_more.up.sql":   {Data: []byte("ALTER TABLE a ADD name VARCHAR2(10);\n")},
		"migrations/2_more.down.sql": {Data: []byte("ALTER TABLE a DROP COLUMN name;\n")},
	}
}

func TestMigrator_UpAppliesPending(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(0))
	mock.ExpectExec(`CREATE TABLE schema_migrations (version NUMBER(19) PRIMARY KEY, applied_at TIMESTAMP DEFAULT SYSTIMESTAMP NOT NULL)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"VERSION"}))
	mock.ExpectExec("CREATE TABLE a (\nid VARCHAR2(26) PRIMARY KEY\n)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX idx_a ON a(id)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations (version) VALUES (:1)`).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("ALTER TABLE a ADD name VARCHAR2(10)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations (version) VALUES (:1)`).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))

	m, err := NewMigrator(db, testMigrations(), "migrations")
	require.NoError(t, err)
	defer m.Close()

	n, err := m.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_UpSkipsApplied(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"VERSION"}).AddRow(1))
	mock.ExpectExec("ALTER TABLE a ADD name VARCHAR2(10)").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO schema_migrations (version) VALUES (:1)`).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 1))

	m, err := NewMigrator(db, testMigrations(), "migrations")
	require.NoError(t, err)
	defer m.Close()

	n, err := m.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_UpStopsOnFailure(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'`).
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(1))
	mock.ExpectQuery(`SELECT version FROM schema_migrations`).
		WillReturnRows(sqlmock.NewRows([]string{"VERSION"}).AddRow(1))
	mock.ExpectExec("ALTER TABLE a ADD name VARCHAR2(10)").WillReturnError(assert.AnError)

	m, err := NewMigrator(db, testMigrations(), "migrations")
	require.NoError(t, err)
	defer m.Close()

	n, err := m.Up(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 0, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmbeddedMigrations(t *testing.T) {
	for _, name := range []string{
		"migrations/1_create_users.up.sql",
		"migrations/2_create_questions.up.sql",
		"migrations/3_create_quiz_sessions.up.sql",
		"migrations/4_create_documents.up.sql",
	} {
		body, err := MigrationsFS.ReadFile(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, SplitStatements(string(body)), name)
	}
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   []string
	}{
		{name: "empty", script: "", want: nil},
		{name: "comments only", script: "-- nothing\n\n-- here\n", want: nil},
		{name: "single", script: "DROP TABLE a;", want: []string{"DROP TABLE a"}},
		{name: "trailing statement without semicolon", script: "DROP TABLE a;\nDROP TABLE b", want: []string{"DROP TABLE a", "DROP TABLE b"}},
		{name: "multi line", script: "CREATE TABLE a (\n  id NUMBER\n);\n", want: []string{"CREATE TABLE a (\nid NUMBER\n)"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitStatements(tt.script))
		})
	}
}

func TestDriverName(t *testing.T) {
	assert.Equal(t, "godror", DriverName("godror"))
	assert.Equal(t, "oracle", DriverName("go-ora"))
	assert.Equal(t, "oracle", DriverName(""))
}
