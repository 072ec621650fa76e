package main

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"runwayGridExcel/contracts"
)

// renameStagingName is an intermediate sheet name used when the target name
// differs from the workbook default only by letter case. excelize treats a
// case-only SetSheetName as a no-op, so such renames go through two steps.
const renameStagingName = "__export__"

// SheetExporter renders a grid snapshot as an .xlsx workbook. Rows are
// written through excelize's stream writer: formula cells carry both their
// formula body and the engine's computed display text as the cached value,
// plain numeric cells become numbers, everything else stays text.
type SheetExporter struct {
	executor contracts.FormulaExecutor
}

func NewSheetExporter(executor contracts.FormulaExecutor) *SheetExporter {
	return &SheetExporter{executor: executor}
}

func (e *SheetExporter) Export(sheetName string, grid contracts.Grid) (*excelize.File, error) {
	workbook := excelize.NewFile()

	sheetName = strings.ToLower(sheetName)
	if err := e.renameDefaultSheet(workbook, sheetName); err != nil {
		return nil, err
	}

	stream, err := workbook.NewStreamWriter(sheetName)
	if err != nil {
		return nil, err
	}

	for row := 0; row < grid.Rows(); row++ {
		cells := make([]interface{}, grid.Cols())
		empty := true

		for col := 0; col < grid.Cols(); col++ {
			raw := grid.Value(row, col)
			if raw == "" {
				continue
			}
			empty = false
			cells[col] = e.exportCell(grid, row, col, raw)
		}

		if empty {
			continue
		}
		if err = stream.SetRow(CellLabel(row, 0), cells); err != nil {
			return nil, err
		}
	}

	if err = stream.Flush(); err != nil {
		return nil, err
	}

	return workbook, nil
}

func (e *SheetExporter) renameDefaultSheet(workbook *excelize.File, sheetName string) error {
	defaultName := workbook.GetSheetName(0)
	if defaultName == sheetName {
		return nil
	}

	if !strings.EqualFold(defaultName, sheetName) {
		return workbook.SetSheetName(defaultName, sheetName)
	}

	if err := workbook.SetSheetName(defaultName, renameStagingName); err != nil {
		return err
	}
	return workbook.SetSheetName(renameStagingName, sheetName)
}

func (e *SheetExporter) exportCell(grid contracts.Grid, row int, col int, raw string) excelize.Cell {
	if e.executor.IsFormula(raw) {
		result := e.executor.Evaluate(raw, grid, row, col)

		body := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), FormulaPrefix))
		if body == "" || strings.EqualFold(body, BurnRateMarker) || isErrorSentinel(result) {
			return excelize.Cell{Value: result}
		}
		return excelize.Cell{Formula: body, Value: result}
	}

	if IsNumeric(raw) {
		return excelize.Cell{Value: parseNumber(raw)}
	}

	return excelize.Cell{Value: raw}
}
