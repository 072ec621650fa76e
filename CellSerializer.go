package main

import (
	"encoding/binary"
	"errors"
	"fmt"
)

var SerializerError = errors.New("invalid serialized data")

// cellEncodingVersion is the first byte of every stored cell. Bumping it
// lets a future decoder tell old records apart instead of misreading them.
const cellEncodingVersion = byte(1)

// CellBinarySerializer encodes a cell as a version marker, a uvarint
// key length, the canonical cell label, then the raw value bytes. The label
// rides along inside the value so a cursor scan over a sheet bucket
// recovers both without re-parsing keys.
type CellBinarySerializer struct {
}

func NewCellBinarySerializer() *CellBinarySerializer {
	return &CellBinarySerializer{}
}

func (s *CellBinarySerializer) Marshal(key string, value string) []byte {
	data := make([]byte, 0, 1+binary.MaxVarintLen16+len(key)+len(value))

	data = append(data, cellEncodingVersion)
	data = binary.AppendUvarint(data, uint64(len(key)))
	data = append(data, key...)
	data = append(data, value...)
	return data
}

func (s *CellBinarySerializer) Unmarshal(data []byte) (key string, value string, err error) {
	if len(data) < 2 {
		return "", "", fmt.Errorf("%w: record shorter than 2 bytes", SerializerError)
	}
	if data[0] != cellEncodingVersion {
		return "", "", fmt.Errorf("%w: unknown encoding marker %d", SerializerError, data[0])
	}

	keyLength, varintLen := binary.Uvarint(data[1:])
	if varintLen <= 0 || uint64(len(data)-1-varintLen) < keyLength {
		return "", "", fmt.Errorf("%w: truncated key (want %d bytes)", SerializerError, keyLength)
	}

	keyStart := 1 + varintLen
	key = string(data[keyStart : keyStart+int(keyLength)])
	value = string(data[keyStart+int(keyLength):])
	return key, value, nil
}
