package gid

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []struct {
		typeName string
		key      string
	}{
		{"LibraryNode", "7"},
		{"AuthorNode", "42"},
		{"BookNode", "550e8400-e29b-41d4-a716-446655440000"},
		{"UserNode", ""},
	}

	for _, tc := range cases {
		opaque := Encode(tc.typeName, tc.key)

		typeName, key, err := Decode(opaque)
		require.NoError(t, err)
		assert.Equal(t, tc.typeName, typeName)
		assert.Equal(t, tc.key, key)
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	assert.Equal(t, Encode("LibraryNode", "7"), Encode("LibraryNode", "7"))
}

func TestEncodeMatchesWireFormat(t *testing.T) {
	// The opaque id is plain base64 of "{TypeName}:{key}"; clients built
	// against the original API depend on this exact layout.
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("LibraryNode:7")), Encode("LibraryNode", "7"))
}

func TestDecodeSplitsOnLastColon(t *testing.T) {
	opaque := base64.StdEncoding.EncodeToString([]byte("Some:Type:123"))

	typeName, key, err := Decode(opaque)
	require.NoError(t, err)
	assert.Equal(t, "Some:Type", typeName)
	assert.Equal(t, "123", key)
}

func TestDecodeRejectsBadBase64(t *testing.T) {
	_, _, err := Decode("not base64!!!")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestDecodeRejectsMissingSeparator(t *testing.T) {
	opaque := base64.StdEncoding.EncodeToString([]byte("no-separator-here"))

	_, _, err := Decode(opaque)
	assert.ErrorIs(t, err, ErrInvalidID)
}
