package contracts

import "errors"

type SheetRepository interface {
	SetCell(sheetId string, cellId string, value string) (*Cell, error)
	GetCell(sheetId string, cellId string) (*Cell, error)
	GetCellList(sheetId string) (*CellList, error)
	GetGrid(sheetId string) (Grid, error)
	Dimensions() (rows int, cols int)
}

var SheetNotFoundError = errors.New("sheet not found")
