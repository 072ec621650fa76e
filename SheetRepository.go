package main

import (
	"fmt"
	"strings"

	"go.etcd.io/bbolt"

	"runwayGridExcel/contracts"
)

// SheetRepository persists sheets in bbolt, one bucket per sheet id, keyed
// by canonical cell label. Only raw text is stored; every read rebuilds the
// rectangular grid snapshot and evaluates through the formula engine, so
// computed results are never persisted.
type SheetRepository struct {
	db             *bbolt.DB
	executor       contracts.FormulaExecutor
	serializer     contracts.CellSerializer
	dispatcher     contracts.WebhookDispatcher
	dependencyTree contracts.CellDependencyTree
	rows           int
	cols           int
}

func NewSheetRepository(
	db *bbolt.DB, executor contracts.FormulaExecutor,
	serializer contracts.CellSerializer, dispatcher contracts.WebhookDispatcher,
	rows int, cols int,
) *SheetRepository {
	return &SheetRepository{
		db:             db,
		executor:       executor,
		serializer:     serializer,
		dispatcher:     dispatcher,
		dependencyTree: &CellDependencyTree{},
		rows:           rows,
		cols:           cols,
	}
}

func (s *SheetRepository) Dimensions() (rows int, cols int) {
	return s.rows, s.cols
}

func (s *SheetRepository) SetCell(sheetId string, cellId string, value string) (*contracts.Cell, error) {
	sheetId = strings.ToLower(sheetId)
	sheetIdByte := []byte(sheetId)

	row, col, ok := ParseAddress(cellId, s.rows, s.cols)
	if !ok {
		return &contracts.Cell{Value: value}, fmt.Errorf("cell_id `%s`: %w", cellId, contracts.CellAddressError)
	}
	key := CellLabel(row, col)

	dependsOn := s.executor.ExtractReferences(value, s.rows, s.cols)

	err := s.db.Batch(func(tx *bbolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(sheetIdByte)
		if err != nil {
			return err
		}

		if err = s.dependencyTree.SetDependsOn(tx, sheetIdByte, key, dependsOn); err != nil {
			return err
		}

		return bucket.Put([]byte(key), s.serializer.Marshal(key, value))
	})
	if err != nil {
		return nil, err
	}

	var cell *contracts.Cell
	err = s.db.View(func(tx *bbolt.Tx) error {
		grid := s.loadGrid(tx.Bucket(sheetIdByte))
		cell = s.displayCell(grid, row, col)

		changed := make([]*contracts.Cell, 0, 4)
		changed = append(changed, cell)
		for _, dependantKey := range s.dependencyTree.GetDependants(tx, sheetIdByte, key) {
			if depRow, depCol, ok := ParseAddress(dependantKey, s.rows, s.cols); ok {
				changed = append(changed, s.displayCell(grid, depRow, depCol))
			}
		}
		s.dispatcher.Notify(sheetId, changed)

		return nil
	})

	return cell, err
}

func (s *SheetRepository) GetCell(sheetId string, cellId string) (*contracts.Cell, error) {
	sheetId = strings.ToLower(sheetId)

	row, col, ok := ParseAddress(cellId, s.rows, s.cols)
	if !ok {
		return nil, fmt.Errorf("cell_id `%s`: %w", cellId, contracts.CellAddressError)
	}

	var cell *contracts.Cell
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}

		if bucket.Get([]byte(CellLabel(row, col))) == nil {
			return fmt.Errorf("%s: %w", cellId, contracts.CellNotFoundError)
		}

		cell = s.displayCell(s.loadGrid(bucket), row, col)
		return nil
	})

	return cell, err
}

func (s *SheetRepository) GetCellList(sheetId string) (*contracts.CellList, error) {
	sheetId = strings.ToLower(sheetId)

	cellList := contracts.CellList{}
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}

		grid := s.loadGrid(bucket)

		cursor := bucket.Cursor()
		for k, _ := cursor.First(); k != nil; k, _ = cursor.Next() {
			if row, col, ok := ParseAddress(string(k), s.rows, s.cols); ok {
				cellList[string(k)] = s.displayCell(grid, row, col)
			}
		}
		return nil
	})

	return &cellList, err
}

func (s *SheetRepository) GetGrid(sheetId string) (contracts.Grid, error) {
	sheetId = strings.ToLower(sheetId)

	var grid contracts.Grid
	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket([]byte(sheetId))
		if bucket == nil {
			return fmt.Errorf("%s: %w", sheetId, contracts.SheetNotFoundError)
		}
		grid = s.loadGrid(bucket)
		return nil
	})

	return grid, err
}

// loadGrid materializes the rectangular snapshot the engine evaluates
// against. Cells outside the stored set stay empty strings.
func (s *SheetRepository) loadGrid(bucket *bbolt.Bucket) contracts.Grid {
	grid := contracts.NewGrid(s.rows, s.cols)
	if bucket == nil {
		return grid
	}

	cursor := bucket.Cursor()
	for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
		row, col, ok := ParseAddress(string(k), s.rows, s.cols)
		if !ok {
			continue
		}
		if _, value, err := s.serializer.Unmarshal(v); err == nil {
			grid[row][col] = value
		}
	}

	return grid
}

// displayCell evaluates one cell and applies the display rules: error
// sentinels bypass currency formatting, numeric results are rendered as
// USD, the burn-rate marker becomes an inert empty result with its effect
// flagged for the presentation layer.
func (s *SheetRepository) displayCell(grid contracts.Grid, row int, col int) *contracts.Cell {
	raw := grid.Value(row, col)
	cell := &contracts.Cell{Key: CellLabel(row, col), Value: raw}

	if IsBurnRateMarker(raw) {
		cell.Effect = BurnRateEffect
		return cell
	}

	result := s.executor.Evaluate(raw, grid, row, col)
	if isErrorSentinel(result) {
		cell.Result = result
	} else {
		cell.Result = FormatCurrency(result)
	}

	return cell
}
