// Package codec frames serialized aggregation configurations for transport
// round-tripping: a magic/version header, optional compression (lz4 or
// zstd), and a CRC32C checksum over the uncompressed payload.
package codec

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/joingo/internal/hash"
)

// Compression selects the frame body encoding.
type Compression uint8

const (
	// None stores the payload uncompressed.
	None Compression = iota
	// LZ4 compresses with the lz4 frame format.
	LZ4
	// Zstd compresses with zstandard.
	Zstd
)

// Version is the current frame format version.
const Version = 1

// magic identifies a joingo aggregation frame.
var magic = [4]byte{'J', 'A', 'G', 'G'}

// Header: magic(4) | version(1) | compression(1) | crc32c(4).
// The checksum covers the uncompressed payload. A uvarint payload length
// follows the header, then the (possibly compressed) body.
const headerSize = 4 + 1 + 1 + 4

// maxPayloadLen bounds the payload length a frame may declare. The length
// field is untrusted input; it must be validated before any allocation is
// sized from it.
const maxPayloadLen = 64 << 20

var (
	// ErrShortFrame is returned when a frame is truncated.
	ErrShortFrame = errors.New("codec: short frame")
	// ErrBadMagic is returned when the frame magic does not match.
	ErrBadMagic = errors.New("codec: bad magic")
	// ErrUnsupportedVersion is returned for unknown frame versions.
	ErrUnsupportedVersion = errors.New("codec: unsupported version")
	// ErrUnknownCompression is returned for unknown compression modes.
	ErrUnknownCompression = errors.New("codec: unknown compression")
	// ErrChecksum is returned when the payload checksum does not match.
	ErrChecksum = errors.New("codec: checksum mismatch")
	// ErrFrameTooLarge is returned when the declared payload length
	// exceeds maxPayloadLen.
	ErrFrameTooLarge = errors.New("codec: frame payload too large")
	// ErrTrailingData is returned when bytes remain after the payload.
	ErrTrailingData = errors.New("codec: trailing data after payload")
)

// Options configure frame encoding.
type Options struct {
	// Compression selects the body encoding. Defaults to None.
	Compression Compression
}

// Encode serializes m into a frame.
func Encode(m encoding.BinaryMarshaler, optFns ...func(o *Options)) ([]byte, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	payload, err := m.MarshalBinary()
	if err != nil {
		return nil, err
	}

	body, err := compress(payload, opts.Compression)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 0, headerSize+binary.MaxVarintLen64+len(body))
	buf = append(buf, magic[:]...)
	buf = append(buf, Version, byte(opts.Compression))
	buf = binary.LittleEndian.AppendUint32(buf, hash.CRC32C(payload))
	buf = binary.AppendUvarint(buf, uint64(len(payload)))
	buf = append(buf, body...)
	return buf, nil
}

// Decode parses a frame and unmarshals the payload into m.
func Decode(data []byte, m encoding.BinaryUnmarshaler) error {
	if len(data) < headerSize {
		return ErrShortFrame
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return ErrBadMagic
	}
	if data[4] != Version {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[4])
	}
	compression := Compression(data[5])
	checksum := binary.LittleEndian.Uint32(data[6:10])

	data = data[headerSize:]
	rawLen, n := binary.Uvarint(data)
	if n <= 0 {
		return ErrShortFrame
	}
	if rawLen > maxPayloadLen {
		return fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, rawLen)
	}
	body := data[n:]

	payload, err := decompress(body, compression, int(rawLen))
	if err != nil {
		return err
	}
	if uint64(len(payload)) < rawLen {
		return ErrShortFrame
	}
	if uint64(len(payload)) > rawLen {
		return ErrTrailingData
	}
	if hash.CRC32C(payload) != checksum {
		return ErrChecksum
	}

	return m.UnmarshalBinary(payload)
}

func compress(payload []byte, compression Compression) ([]byte, error) {
	switch compression {
	case None:
		return payload, nil
	case LZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(payload); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buf.Bytes(), nil
	case Zstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd compress: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(payload, nil), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}

func decompress(body []byte, compression Compression, rawLen int) ([]byte, error) {
	switch compression {
	case None:
		return body, nil
	case LZ4:
		r := lz4.NewReader(bytes.NewReader(body))
		payload := make([]byte, rawLen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		// A well-formed frame is exhausted after rawLen bytes.
		var tail [1]byte
		if n, err := r.Read(tail[:]); n != 0 || err != io.EOF {
			return nil, ErrTrailingData
		}
		return payload, nil
	case Zstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		defer dec.Close()
		payload, err := dec.DecodeAll(body, make([]byte, 0, rawLen))
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return payload, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, compression)
	}
}
