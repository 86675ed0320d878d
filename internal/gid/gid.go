// Package gid implements the opaque global identifiers crossing the API boundary.
//
// An identifier is the standard base64 encoding of "{TypeName}:{primaryKey}".
// Clients treat it as opaque; the server decodes it to dispatch node lookups.
package gid

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidID reports an opaque identifier that cannot be decoded.
var ErrInvalidID = errors.New("invalid global identifier")

// Encode builds the opaque identifier for a node type name and primary key.
// Same inputs always yield the same token.
func Encode(typeName, key string) string {
	return base64.StdEncoding.EncodeToString([]byte(typeName + ":" + key))
}

// Decode reverses Encode. The decoded value splits on the last ':' so that
// the tail is always the primary key, whatever the type name looks like.
func Decode(opaque string) (typeName, key string, err error) {
	raw, decodeErr := base64.StdEncoding.DecodeString(opaque)
	if decodeErr != nil {
		return "", "", fmt.Errorf("%w: not base64", ErrInvalidID)
	}
	sep := strings.LastIndex(string(raw), ":")
	if sep < 0 {
		return "", "", fmt.Errorf("%w: missing separator", ErrInvalidID)
	}
	return string(raw[:sep]), string(raw[sep+1:]), nil
}
