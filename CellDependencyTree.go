package main

import (
	"bytes"

	"go.etcd.io/bbolt"
)

// CellDependencyTree persists, per sheet, which cells a formula reads so
// the repository can find every cell whose display result is affected by a
// write. Two key shapes share one bucket:
//
//	0x00 0x00 <cellKey>              -> list of keys the cell depends on
//	<dependsOnKey> 0x00 <cellKey>    -> (empty) reverse edge
//
// The reverse edges make "who depends on A1" a single prefix scan.
type CellDependencyTree struct{}

const dependencyKeyDelimiter = byte(0x00)

var dependencyBucketPrefix = []byte("__deps_")

func (t *CellDependencyTree) SetDependsOn(tx *bbolt.Tx, sheetId []byte, cellKey string, dependsOnKeys []string) error {
	bucket, err := tx.CreateBucketIfNotExists(t.bucketId(sheetId))
	if err != nil {
		return err
	}

	forwardKey := t.forwardListKey(cellKey)

	staleEdges := map[string]bool{}
	if previous := bucket.Get(forwardKey); previous != nil {
		for _, oldKey := range bytes.Split(previous, []byte{dependencyKeyDelimiter}) {
			staleEdges[string(oldKey)] = true
		}
	}

	addedEdges := false
	for _, dependsOnKey := range dependsOnKeys {
		if staleEdges[dependsOnKey] {
			// edge already stored; keep it
			delete(staleEdges, dependsOnKey)
			continue
		}
		addedEdges = true
		if err = bucket.Put(t.reverseEdgeKey(cellKey, dependsOnKey), []byte{}); err != nil {
			return err
		}
	}

	if !addedEdges && len(staleEdges) == 0 {
		return nil
	}

	for staleKey := range staleEdges {
		if err = bucket.Delete(t.reverseEdgeKey(cellKey, staleKey)); err != nil {
			return err
		}
	}

	if len(dependsOnKeys) == 0 {
		return bucket.Delete(forwardKey)
	}

	edges := make([][]byte, 0, len(dependsOnKeys))
	for _, dependsOnKey := range dependsOnKeys {
		edges = append(edges, []byte(dependsOnKey))
	}
	return bucket.Put(forwardKey, bytes.Join(edges, []byte{dependencyKeyDelimiter}))
}

func (t *CellDependencyTree) GetDependants(tx *bbolt.Tx, sheetId []byte, cellKey string) []string {
	bucket := tx.Bucket(t.bucketId(sheetId))
	if bucket == nil {
		return []string{}
	}

	return t.walkDependants(bucket, cellKey, map[string]bool{cellKey: true})
}

func (t *CellDependencyTree) walkDependants(bucket *bbolt.Bucket, cellKey string, visited map[string]bool) []string {
	dependants := make([]string, 0, 4)

	for _, dependantKey := range t.directDependants(bucket, cellKey) {
		if visited[dependantKey] {
			continue
		}
		visited[dependantKey] = true
		dependants = append(dependants, dependantKey)
		dependants = append(dependants, t.walkDependants(bucket, dependantKey, visited)...)
	}

	return dependants
}

func (t *CellDependencyTree) directDependants(bucket *bbolt.Bucket, cellKey string) []string {
	dependants := make([]string, 0, 4)

	prefix := t.reversePrefix(cellKey)
	cursor := bucket.Cursor()
	for k, _ := cursor.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = cursor.Next() {
		dependants = append(dependants, string(k[len(prefix):]))
	}

	return dependants
}

func (t *CellDependencyTree) bucketId(sheetId []byte) []byte {
	if len(sheetId) == 0 {
		return nil
	}
	return append(append([]byte{}, dependencyBucketPrefix...), sheetId...)
}

func (t *CellDependencyTree) forwardListKey(cellKey string) []byte {
	return append([]byte{dependencyKeyDelimiter, dependencyKeyDelimiter}, []byte(cellKey)...)
}

func (t *CellDependencyTree) reversePrefix(dependsOnKey string) []byte {
	return append([]byte(dependsOnKey), dependencyKeyDelimiter)
}

func (t *CellDependencyTree) reverseEdgeKey(cellKey string, dependsOnKey string) []byte {
	return append(t.reversePrefix(dependsOnKey), []byte(cellKey)...)
}
