package storage

import (
	"fmt"

	"github.com/klauspost/compress/zstd"
)

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	return z.decoder.DecodeAll(val, nil)
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor() (CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}

// plainCompression stores documents as they are.
type plainCompression struct{}

func (plainCompression) Compress(val []byte) ([]byte, error)   { return val, nil }
func (plainCompression) Decompress(val []byte) ([]byte, error) { return val, nil }
func (plainCompression) Close()                                {}

func NewCompressor(kind string) (CompressorInterface, error) {
	switch kind {
	case "", "none":
		return plainCompression{}, nil
	case "zstd":
		return NewZstdCompressor()
	default:
		return nil, fmt.Errorf("unknown compression %q", kind)
	}
}
