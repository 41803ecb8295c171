// Package mock provides the test database backing the feature suite.
package mock

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var once sync.Once
var db *Db

// Db holds a shared in-memory SQLite database standing in for PostgreSQL
// during feature runs. The connection is a process-wide singleton so the
// API server under test and the step definitions see the same data.
type Db struct {
	DbConn *gorm.DB
	models map[string]any
	// clearOrder lists tables in deletion order, children before parents.
	clearOrder []string
}

// NewDb opens the shared database and migrates the given models, keyed by
// table name.
func NewDb(models map[string]any, clearOrder []string) *Db {
	once.Do(func() {
		db = open(models, clearOrder)
	})
	return db
}

func open(models map[string]any, clearOrder []string) *Db {
	dbSQL, err := sql.Open("sqlite", "file::memory:?cache=shared")
	if err != nil {
		panic(err)
	}
	dbSQL.SetMaxOpenConns(1)

	dbConn, err := gorm.Open(sqlite.Dialector{Conn: dbSQL}, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect to database. err: " + err.Error())
	}

	modelList := make([]any, 0, len(models))
	for _, m := range models {
		modelList = append(modelList, m)
	}
	if err := dbConn.AutoMigrate(modelList...); err != nil {
		panic(fmt.Sprintf("failed to migrate test database. err: %s", err.Error()))
	}

	return &Db{
		DbConn:     dbConn,
		models:     models,
		clearOrder: clearOrder,
	}
}

// ClearDB removes every row from the registered tables.
func (d *Db) ClearDB() error {
	for _, table := range d.clearOrder {
		m, ok := d.models[table]
		if !ok {
			return fmt.Errorf("table %q not registered", table)
		}
		err := d.DbConn.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// GetModel returns the model registered for the table.
func (d *Db) GetModel(table string) (any, bool) {
	m, ok := d.models[table]
	return m, ok
}
