// Package compression wraps zstd for stored manifests.
package compression

import (
	"github.com/klauspost/compress/zstd"
)

// Codec compresses and decompresses manifest blobs. Manifests are
// line-oriented text and always worth compressing.
type Codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// Levels accepted by New.
const (
	Fastest = 1
	Default = 2
	Better  = 3
)

func New(level int) (*Codec, error) {
	var encoderLevel zstd.EncoderLevel
	switch level {
	case Fastest:
		encoderLevel = zstd.SpeedFastest
	case Better:
		encoderLevel = zstd.SpeedBetterCompression
	default:
		encoderLevel = zstd.SpeedDefault
	}

	encoder, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(encoderLevel),
		zstd.WithEncoderConcurrency(1),
	)
	if err != nil {
		return nil, err
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}

	return &Codec{encoder: encoder, decoder: decoder}, nil
}

func (c *Codec) Compress(data []byte) []byte {
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

func (c *Codec) Decompress(data []byte) ([]byte, error) {
	return c.decoder.DecodeAll(data, nil)
}

func (c *Codec) Close() error {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
	return nil
}
