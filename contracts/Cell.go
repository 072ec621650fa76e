package contracts

import "errors"

// Cell is the API representation of a single grid cell: the raw stored
// text and the display result produced by formula evaluation plus
// currency formatting.
type Cell struct {
	Key    string `json:"key,omitempty"`
	Value  string `json:"value"`
	Result string `json:"result"`
	Effect string `json:"effect,omitempty"`
}

type CellList map[string]*Cell

var CellNotFoundError = errors.New("cell not found")

var CellAddressError = errors.New("cell address is outside the sheet grid")
