// util/stream.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Streams are a header followed by a sequence of msgpack-encoded items, all
// compressed with zstd.
type streamHeader struct {
	Magic   string
	Kind    string
	Version int
}

const streamMagic = "designfly-stream"

var ErrStreamHeader = errors.New("not a recognized stream")

type CompressedStreamWriter[T any] struct {
	zw  *zstd.Encoder
	enc *msgpack.Encoder
	n   int
}

// NewCompressedStreamWriter starts a stream of T items tagged with the
// given kind and version; readers must ask for the same kind.
func NewCompressedStreamWriter[T any](w io.Writer, kind string, version int) (*CompressedStreamWriter[T], error) {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}

	s := &CompressedStreamWriter[T]{zw: zw, enc: msgpack.NewEncoder(zw)}
	if err := s.enc.Encode(streamHeader{Magic: streamMagic, Kind: kind, Version: version}); err != nil {
		zw.Close()
		return nil, err
	}
	return s, nil
}

func (s *CompressedStreamWriter[T]) Write(item *T) error {
	if err := s.enc.Encode(item); err != nil {
		return err
	}
	s.n++
	return nil
}

// Count returns the number of items written so far.
func (s *CompressedStreamWriter[T]) Count() int {
	return s.n
}

// Close flushes the compressed stream; it does not close the underlying
// writer.
func (s *CompressedStreamWriter[T]) Close() error {
	return s.zw.Close()
}

// ReadCompressedStream returns an iterator over the items of a stream
// written by CompressedStreamWriter. Iteration stops after the first
// error, which is yielded along with the zero value of T.
func ReadCompressedStream[T any](r io.Reader, kind string, version int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T

		zr, err := zstd.NewReader(r)
		if err != nil {
			yield(zero, err)
			return
		}
		defer zr.Close()

		dec := msgpack.NewDecoder(zr)

		var hdr streamHeader
		if err := dec.Decode(&hdr); err != nil {
			yield(zero, fmt.Errorf("%w: %v", ErrStreamHeader, err))
			return
		}
		if hdr.Magic != streamMagic || hdr.Kind != kind {
			yield(zero, fmt.Errorf("%w: got %q/%q", ErrStreamHeader, hdr.Magic, hdr.Kind))
			return
		}
		if hdr.Version != version {
			yield(zero, fmt.Errorf("%w: version %d, expected %d", ErrStreamHeader, hdr.Version, version))
			return
		}

		for {
			var item T
			if err := dec.Decode(&item); errors.Is(err, io.EOF) {
				return
			} else if err != nil {
				yield(zero, err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}
