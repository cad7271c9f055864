package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"tillpoint/pkg/logger"
)

// Minimal driver whose transactions fail at commit time, standing in for a
// connection dropped between the last statement and COMMIT.

type commitFailDriver struct{}

func (commitFailDriver) Open(string) (driver.Conn, error) { return commitFailConn{}, nil }

type commitFailConn struct{}

func (commitFailConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("not implemented")
}
func (commitFailConn) Close() error              { return nil }
func (commitFailConn) Begin() (driver.Tx, error) { return commitFailTx{}, nil }

type commitFailTx struct{}

func (commitFailTx) Commit() error   { return errors.New("connection reset during commit") }
func (commitFailTx) Rollback() error { return nil }

func init() {
	sql.Register("commitfail", commitFailDriver{})
}

func newTestDB(t *testing.T, driverName string) *DB {
	t.Helper()
	sqlDB, err := sql.Open(driverName, "")
	assert.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return &DB{DB: sqlDB, logger: logger.New(logger.Config{Output: "discard"})}
}

func TestExecuteInTransaction_CommitFailureReachesCaller(t *testing.T) {
	db := newTestDB(t, "commitfail")

	var ran bool
	err := db.ExecuteInTransaction(func(tx *sql.Tx) error {
		ran = true
		return nil
	})

	assert.True(t, ran)
	// A write that never committed must not be reported as a success.
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "commit")
}

func TestExecuteInTransaction_FnErrorRollsBack(t *testing.T) {
	db := newTestDB(t, "commitfail")

	sentinel := errors.New("business rule violated")
	err := db.ExecuteInTransaction(func(tx *sql.Tx) error {
		return sentinel
	})

	// The callback's error comes back untouched; commit is never attempted.
	assert.ErrorIs(t, err, sentinel)
}

func TestBuildConnectionString(t *testing.T) {
	config := Config{
		Host:     "db.internal",
		Port:     5433,
		User:     "till",
		Password: "pw",
		DBName:   "tillpoint",
		SSLMode:  "require",
	}

	assert.Equal(t,
		"host=db.internal port=5433 user=till password=pw dbname=tillpoint sslmode=require",
		config.BuildConnectionString())
}
