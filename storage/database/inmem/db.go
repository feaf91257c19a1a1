package inmemdb

import (
	"context"
	"database/sql"
	"errors"
	"sync"

	"github.com/yaohuihuang316-coder/darasa/core"
	"github.com/yaohuihuang316-coder/darasa/core/assignment"
)

var errNotRelational = errors.New("inmemdb: raw SQL is not supported")

type (
	assignmentTable struct {
		sync.RWMutex
		table map[string]*assignment.Assignment
	}

	submissionTable struct {
		sync.RWMutex
		table map[string]*assignment.Submission
	}

	// DB is an in-memory stand-in for the relational store, used by tests
	// and local development.
	DB struct {
		mu         sync.Mutex // serializes transactions
		assignment *assignmentTable
		submission *submissionTable
	}
)

func Open() (*DB, error) {
	db := &DB{
		assignment: &assignmentTable{table: make(map[string]*assignment.Assignment)},
		submission: &submissionTable{table: make(map[string]*assignment.Submission)},
	}
	return db, nil
}

var _ core.DB = (*DB)(nil) // interface compliance check

// BeginTx serializes all transactions behind one mutex, which trivially
// satisfies the repeatable-read requirement. Writes apply immediately;
// Rollback only releases the transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (core.DBTransactor, error) {
	db.mu.Lock()
	return &tx{db: db}, nil
}

type tx struct {
	db   *DB
	done bool
}

var _ core.DBTransactor = (*tx)(nil) // interface compliance check

func (t *tx) finish() error {
	if t.done {
		return sql.ErrTxDone
	}
	t.done = true
	t.db.mu.Unlock()
	return nil
}

func (t *tx) Commit() error   { return t.finish() }
func (t *tx) Rollback() error { return t.finish() }

// core.DBExecutor; the in-memory repositories never issue raw SQL.

func (t *tx) Exec(query string, args ...interface{}) (sql.Result, error) {
	return nil, errNotRelational
}

func (t *tx) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errNotRelational
}

func (t *tx) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errNotRelational
}

func (t *tx) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return nil, errNotRelational
}

func (t *tx) QueryRow(query string, args ...interface{}) *sql.Row {
	return nil
}

func (t *tx) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return nil
}
