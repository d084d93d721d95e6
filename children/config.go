package children

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/hupe1980/joingo/internal/hash"
)

// TypeConfig is the configuration descriptor of a children aggregation: the
// child document type whose parents' buckets the aggregation joins into.
//
// It round-trips over the wire for aggregation-request serialization and
// supports structural equality with a consistent hash for factory caching.
type TypeConfig struct {
	childType string
}

// NewTypeConfig creates a TypeConfig for the given child type.
func NewTypeConfig(childType string) TypeConfig {
	return TypeConfig{childType: childType}
}

// ChildType returns the configured child document type.
func (c TypeConfig) ChildType() string { return c.childType }

// String returns a human-readable descriptor for introspection output.
func (c TypeConfig) String() string {
	return fmt.Sprintf("children(type=%s)", c.childType)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (c TypeConfig) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, 1+len(c.childType))
	buf = binary.AppendUvarint(buf, uint64(len(c.childType)))
	buf = append(buf, c.childType...)
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (c *TypeConfig) UnmarshalBinary(data []byte) error {
	length, n := binary.Uvarint(data)
	if n <= 0 {
		return errors.New("invalid child type length")
	}
	data = data[n:]
	if uint64(len(data)) < length {
		return errors.New("short buffer for child type")
	}
	if uint64(len(data)) > length {
		return errors.New("trailing data after child type")
	}
	c.childType = string(data[:length])
	return nil
}

// Equal reports structural equality.
func (c TypeConfig) Equal(other TypeConfig) bool {
	return c.childType == other.childType
}

// Hash returns a hash consistent with Equal.
func (c TypeConfig) Hash() uint32 {
	return hash.CRC32C([]byte(c.childType))
}
