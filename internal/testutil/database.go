// Package testutil provides test helpers for setting up in-memory databases,
// creating fixtures, and making assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Yns1000/haybank/internal/models"
)

var dbCounter atomic.Int64

// SetupTestDB creates an in-memory SQLite database with all models migrated.
// Each call gets its own named database so tests never share rows.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared&_foreign_keys=1", dbCounter.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { TeardownTestDB(t, db) })
	return db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

// StatementCounter counts the write statements GORM issues.
type StatementCounter struct {
	creates atomic.Int64
	updates atomic.Int64
	deletes atomic.Int64
}

// CountStatements registers callbacks on db that count INSERT, UPDATE and
// DELETE statements.
func CountStatements(t *testing.T, db *gorm.DB) *StatementCounter {
	t.Helper()

	c := &StatementCounter{}
	register := func(err error) {
		if err != nil {
			t.Fatalf("failed to register statement counter: %v", err)
		}
	}
	register(db.Callback().Create().After("gorm:create").Register("testutil:count_create", func(*gorm.DB) { c.creates.Add(1) }))
	register(db.Callback().Update().After("gorm:update").Register("testutil:count_update", func(*gorm.DB) { c.updates.Add(1) }))
	register(db.Callback().Delete().After("gorm:delete").Register("testutil:count_delete", func(*gorm.DB) { c.deletes.Add(1) }))
	return c
}

// Creates returns the number of INSERT statements seen.
func (c *StatementCounter) Creates() int64 { return c.creates.Load() }

// Updates returns the number of UPDATE statements seen.
func (c *StatementCounter) Updates() int64 { return c.updates.Load() }

// Deletes returns the number of DELETE statements seen.
func (c *StatementCounter) Deletes() int64 { return c.deletes.Load() }

// Writes returns the total number of write statements seen.
func (c *StatementCounter) Writes() int64 {
	return c.Creates() + c.Updates() + c.Deletes()
}
