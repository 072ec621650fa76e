package contracts

import "go.etcd.io/bbolt"

// CellDependencyTree is a persistent reverse index over formula references.
// For `B1 = =A1+A2`, B1 depends on A1 and A2; asking for the dependants of
// A1 returns B1 (and, transitively, anything depending on B1). It is kept
// in a bbolt bucket with prefixed keys so one cursor scan finds all
// dependants of a cell.
type CellDependencyTree interface {
	SetDependsOn(tx *bbolt.Tx, sheetId []byte, cellKey string, dependsOnKeys []string) error

	// GetDependants returns every cell whose displayed result may change
	// when the given cell changes, direct and transitive.
	GetDependants(tx *bbolt.Tx, sheetId []byte, cellKey string) []string
}
