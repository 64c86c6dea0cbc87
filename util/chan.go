// util/chan.go
// Copyright(c) 2022-2026 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

// ChunkedChan batches items into slices of up to a fixed size before
// sending them, which keeps channel overhead down when workers produce
// many small results. Each producing goroutine gets its own
// ChunkSender; all of them share the one channel.
type ChunkedChan[T any] struct {
	ch    chan []T
	chunk int
}

// MakeChunkedChan returns a ChunkedChan that sends slices of chunk items
// on a channel with the given buffer length.
func MakeChunkedChan[T any](chunk, buffer int) *ChunkedChan[T] {
	return &ChunkedChan[T]{
		ch:    make(chan []T, buffer),
		chunk: max(1, chunk),
	}
}

func (c *ChunkedChan[T]) Ch() <-chan []T {
	return c.ch
}

// Close closes the channel; all senders must have been flushed.
func (c *ChunkedChan[T]) Close() {
	close(c.ch)
}

// Sender returns a new ChunkSender for use by a single goroutine.
func (c *ChunkedChan[T]) Sender() *ChunkSender[T] {
	return &ChunkSender[T]{c: c}
}

type ChunkSender[T any] struct {
	c     *ChunkedChan[T]
	accum []T
}

// Send adds t to the current chunk, sending the chunk if it is full.
func (s *ChunkSender[T]) Send(t T) {
	if s.accum == nil {
		s.accum = make([]T, 0, s.c.chunk)
	}
	s.accum = append(s.accum, t)

	if len(s.accum) == s.c.chunk {
		s.c.ch <- s.accum
		s.accum = nil
	}
}

// Flush sends any partial chunk.
func (s *ChunkSender[T]) Flush() {
	if len(s.accum) > 0 {
		s.c.ch <- s.accum
	}
	s.accum = nil
}
