package contracts

// CellSerializer encodes a cell label and its raw text into the byte slice
// stored as a bbolt value.
type CellSerializer interface {
	Marshal(key string, value string) []byte
	Unmarshal(data []byte) (key string, value string, err error)
}
