package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellBinarySerializer_Marshal(t *testing.T) {
	serializer := NewCellBinarySerializer()
	serialized := serializer.Marshal("A1", "=SUM(B1:B4)")
	assert.NotNil(t, serialized)
	// marker + 1-byte uvarint key length + key + value
	assert.Equal(t, 1+1+2+len("=SUM(B1:B4)"), len(serialized))
	assert.Equal(t, cellEncodingVersion, serialized[0])
}

func TestCellBinarySerializer_Unmarshal(t *testing.T) {
	serializer := NewCellBinarySerializer()

	t.Run("round_trip", func(t *testing.T) {
		assertMarshalAndUnmarshal := func(expectedKey string, expectedValue string) {
			serialized := serializer.Marshal(expectedKey, expectedValue)
			actualKey, actualValue, err := serializer.Unmarshal(serialized)

			assert.NoError(t, err)
			assert.Equal(t, expectedKey, actualKey)
			assert.Equal(t, expectedValue, actualValue)
		}

		assertMarshalAndUnmarshal("A1", "1000")
		assertMarshalAndUnmarshal("AA100", "=A1+SUM(B1:B10)")
		assertMarshalAndUnmarshal("B2", "")
		assertMarshalAndUnmarshal("C3", "$1,200.50 projected burn")
	})

	t.Run("empty_data", func(t *testing.T) {
		key, value, err := serializer.Unmarshal([]byte{})

		assert.Error(t, err)
		assert.ErrorIs(t, err, SerializerError)
		assert.Equal(t, "", key)
		assert.Equal(t, "", value)
	})

	t.Run("unknown_encoding_marker", func(t *testing.T) {
		key, value, err := serializer.Unmarshal([]byte{9, 0, 'A'})

		assert.Error(t, err)
		assert.ErrorIs(t, err, SerializerError)
		assert.Equal(t, "", key)
		assert.Equal(t, "", value)
	})

	t.Run("truncated_data", func(t *testing.T) {
		key, value, err := serializer.Unmarshal([]byte{cellEncodingVersion, 9, 'A'})

		assert.Error(t, err)
		assert.ErrorIs(t, err, SerializerError)
		assert.Equal(t, "", key)
		assert.Equal(t, "", value)
	})
}
