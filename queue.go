// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"errors"
	"sync"
	"sync/atomic"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// segmentCapacity is the bounded capacity of one ring segment.
// A full segment links a fresh one, so the queue as a whole is unbounded.
const segmentCapacity = 64

// errDisconnected is returned by enqueue once the consumer side is closed.
var errDisconnected = errors.New("capa: receiver disconnected")

// segment is one bounded lock-free SPSC ring of the queue.
// next is published by the producer only after its last enqueue on ring.
type segment[T any] struct {
	ring lfq.SPSC[T]
	next atomic.Pointer[segment[T]]
}

func newSegment[T any]() *segment[T] {
	s := &segment[T]{}
	s.ring.Init(segmentCapacity)
	return s
}

// queue is an unbounded multi-producer single-consumer queue.
// Producers are serialized by mu onto the single-producer side of the
// tail ring; the consumer walks head without locking.
type queue[T any] struct {
	mu     sync.Mutex
	tail   *segment[T]
	slot   T
	head   *segment[T]
	closed atomix.Uint32
}

func newQueue[T any]() *queue[T] {
	s := newSegment[T]()
	return &queue[T]{head: s, tail: s}
}

// enqueue appends v. Never blocks on the consumer.
// Returns errDisconnected after close.
func (q *queue[T]) enqueue(v T) error {
	if q.closed.Load() != 0 {
		return errDisconnected
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	q.slot = v
	err := q.tail.ring.Enqueue(&q.slot)
	if err != nil {
		if !iox.IsWouldBlock(err) {
			return err
		}
		next := newSegment[T]()
		if err := next.ring.Enqueue(&q.slot); err != nil {
			return err
		}
		q.tail.next.Store(next)
		q.tail = next
	}
	var zero T
	q.slot = zero
	return nil
}

// dequeue removes the oldest value. Non-blocking: reports false when empty.
// Must only be called from the single consumer.
func (q *queue[T]) dequeue() (T, bool) {
	for {
		v, err := q.head.ring.Dequeue()
		if err == nil {
			return v, true
		}
		next := q.head.next.Load()
		if next == nil {
			var zero T
			return zero, false
		}
		// The producer finished with head before linking next.
		if v, err := q.head.ring.Dequeue(); err == nil {
			return v, true
		}
		q.head = next
	}
}

// close marks the consumer gone. Subsequent enqueues fail.
func (q *queue[T]) close() {
	q.closed.Add(1)
}
