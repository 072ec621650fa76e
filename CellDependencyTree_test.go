package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.etcd.io/bbolt"
)

func _createTmpDb() (*bbolt.DB, func()) {
	f, _ := os.CreateTemp("", "db_*.db")
	db, _ := bbolt.Open(f.Name(), 0600, nil)

	return db, func() {
		_ = db.Close()
		_ = os.Remove(f.Name())
	}
}

func TestCellDependencyTree(t *testing.T) {
	sheetId := []byte("sheet1")

	t.Run("direct_dependants", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		tree := &CellDependencyTree{}

		err := db.Update(func(tx *bbolt.Tx) error {
			// B1 = =A1+A2
			return tree.SetDependsOn(tx, sheetId, "B1", []string{"A1", "A2"})
		})
		assert.NoError(t, err)

		_ = db.View(func(tx *bbolt.Tx) error {
			assert.Equal(t, []string{"B1"}, tree.GetDependants(tx, sheetId, "A1"))
			assert.Equal(t, []string{"B1"}, tree.GetDependants(tx, sheetId, "A2"))
			assert.Empty(t, tree.GetDependants(tx, sheetId, "B1"))
			return nil
		})
	})

	t.Run("transitive_dependants", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		tree := &CellDependencyTree{}

		_ = db.Update(func(tx *bbolt.Tx) error {
			assert.NoError(t, tree.SetDependsOn(tx, sheetId, "B1", []string{"A1"}))
			assert.NoError(t, tree.SetDependsOn(tx, sheetId, "C1", []string{"B1"}))
			return nil
		})

		_ = db.View(func(tx *bbolt.Tx) error {
			dependants := tree.GetDependants(tx, sheetId, "A1")
			assert.ElementsMatch(t, []string{"B1", "C1"}, dependants)
			return nil
		})
	})

	t.Run("rewrite_removes_stale_edges", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		tree := &CellDependencyTree{}

		_ = db.Update(func(tx *bbolt.Tx) error {
			assert.NoError(t, tree.SetDependsOn(tx, sheetId, "B1", []string{"A1", "A2"}))
			// B1 rewritten to only read A2
			assert.NoError(t, tree.SetDependsOn(tx, sheetId, "B1", []string{"A2"}))
			return nil
		})

		_ = db.View(func(tx *bbolt.Tx) error {
			assert.Empty(t, tree.GetDependants(tx, sheetId, "A1"))
			assert.Equal(t, []string{"B1"}, tree.GetDependants(tx, sheetId, "A2"))
			return nil
		})
	})

	t.Run("clear_dependencies", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		tree := &CellDependencyTree{}

		_ = db.Update(func(tx *bbolt.Tx) error {
			assert.NoError(t, tree.SetDependsOn(tx, sheetId, "B1", []string{"A1"}))
			assert.NoError(t, tree.SetDependsOn(tx, sheetId, "B1", nil))
			return nil
		})

		_ = db.View(func(tx *bbolt.Tx) error {
			assert.Empty(t, tree.GetDependants(tx, sheetId, "A1"))
			return nil
		})
	})

	t.Run("cyclic_edges_terminate", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		tree := &CellDependencyTree{}

		_ = db.Update(func(tx *bbolt.Tx) error {
			assert.NoError(t, tree.SetDependsOn(tx, sheetId, "A1", []string{"B1"}))
			assert.NoError(t, tree.SetDependsOn(tx, sheetId, "B1", []string{"A1"}))
			return nil
		})

		_ = db.View(func(tx *bbolt.Tx) error {
			dependants := tree.GetDependants(tx, sheetId, "A1")
			assert.Contains(t, dependants, "B1")
			return nil
		})
	})

	t.Run("unknown_sheet", func(t *testing.T) {
		db, dbClose := _createTmpDb()
		defer dbClose()

		tree := &CellDependencyTree{}

		_ = db.View(func(tx *bbolt.Tx) error {
			assert.Empty(t, tree.GetDependants(tx, []byte("nope"), "A1"))
			return nil
		})
	})
}
