package storage

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/klauspost/compress/zstd"
	"meetup/internal/storage/interfaces"
)

// snapshotMagic prefixes every snapshot file so a foreign or truncated file is
// rejected before it reaches the decoder.
var snapshotMagic = []byte("MTUP")

// DefaultMaxSnapshotSize caps the decoded size of a snapshot.
const DefaultMaxSnapshotSize = 64 << 20

var ErrSnapshotFormat = errors.New("storage: not a preferences snapshot")

type codecOptions struct {
	level   zstd.EncoderLevel
	maxSize uint64
}

type CodecOption func(*codecOptions)

// WithCodecLevel trades write speed for snapshot size.
func WithCodecLevel(level zstd.EncoderLevel) CodecOption {
	return func(o *codecOptions) {
		o.level = level
	}
}

// WithMaxSnapshotSize bounds how large a decoded snapshot may grow.
func WithMaxSnapshotSize(n uint64) CodecOption {
	return func(o *codecOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// SnapshotCodec frames FileStore snapshots as the magic header followed by a
// single zstd frame. Both directions are safe for concurrent use.
type SnapshotCodec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func NewSnapshotCodec(opts ...CodecOption) (interfaces.CompressorInterface, error) {
	o := codecOptions{level: zstd.SpeedDefault, maxSize: DefaultMaxSnapshotSize}
	for _, opt := range opts {
		opt(&o)
	}

	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(o.level),
		zstd.WithEncoderCRC(true),
	)
	if err != nil {
		return nil, fmt.Errorf("snapshot encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(o.maxSize),
	)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("snapshot decoder: %w", err)
	}
	return &SnapshotCodec{encoder: encoder, decoder: decoder}, nil
}

func (c *SnapshotCodec) Compress(val []byte) ([]byte, error) {
	dst := make([]byte, len(snapshotMagic), len(snapshotMagic)+len(val)/2)
	copy(dst, snapshotMagic)
	return c.encoder.EncodeAll(val, dst), nil
}

func (c *SnapshotCodec) Decompress(val []byte) ([]byte, error) {
	frame, ok := bytes.CutPrefix(val, snapshotMagic)
	if !ok {
		return nil, ErrSnapshotFormat
	}
	out, err := c.decoder.DecodeAll(frame, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSnapshotFormat, err)
	}
	return out, nil
}

func (c *SnapshotCodec) Close() {
	_ = c.encoder.Close()
	c.decoder.Close()
}
