// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"iter"
)

// deliverer accepts values of type T.
// One adapter per delivery mechanism, one per mapping transform.
type deliverer[T any] interface {
	deliver(v T)
}

// queueTarget delivers into the channel queue.
type queueTarget[T any] struct {
	q *queue[T]
}

func (t queueTarget[T]) deliver(v T) {
	if err := t.q.enqueue(v); err != nil {
		panic("capa: send on a channel whose receiver was closed")
	}
}

// mappedTarget applies f and forwards to the shared target.
type mappedTarget[T, U any] struct {
	target deliverer[T]
	f      func(U) T
}

func (t *mappedTarget[T, U]) deliver(v U) {
	t.target.deliver(t.f(v))
}

// Sender is the producing endpoint of a channel.
// Senders are cheap to copy; every copy and every mapped derivative
// shares the same delivery target. Safe for concurrent use.
type Sender[T any] struct {
	target deliverer[T]
}

// Send enqueues v. Never blocks.
// Panics if the paired Receiver was closed: that is a structural bug,
// not a transient condition.
func (s Sender[T]) Send(v T) {
	s.target.deliver(v)
}

// Clone returns a Sender sharing the same delivery target.
func (s Sender[T]) Clone() Sender[T] {
	return Sender[T]{target: s.target}
}

// MapInput returns a Sender[U] that applies f to every value and forwards
// the result to s. f must be pure; chains of MapInput compose.
func MapInput[T, U any](s Sender[T], f func(U) T) Sender[U] {
	return Sender[U]{target: &mappedTarget[T, U]{target: s.target, f: f}}
}

// MapEffect remaps a sender of steps to speak a narrower effect type.
// Each Step[NewEf] is converted with MapStep before forwarding.
func MapEffect[Ef, NewEf any](s Sender[Step[Ef]], f func(NewEf) Ef) Sender[Step[NewEf]] {
	return MapInput(s, func(step Step[NewEf]) Step[Ef] {
		return MapStep(step, f)
	})
}

// Receiver is the single consuming endpoint of a channel.
// Receive and Drain must not be called concurrently.
type Receiver[T any] struct {
	q *queue[T]
}

// Channel creates an unbounded, non-blocking channel.
func Channel[T any]() (Sender[T], *Receiver[T]) {
	q := newQueue[T]()
	return Sender[T]{target: queueTarget[T]{q: q}}, &Receiver[T]{q: q}
}

// Receive takes the next value without blocking.
// Reports false if the channel is empty.
func (r *Receiver[T]) Receive() (T, bool) {
	return r.q.dequeue()
}

// Drain returns a lazy sequence of received values. The sequence ends the
// first time the channel is observed empty; values sent while it is being
// consumed may also be yielded.
func (r *Receiver[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for {
			v, ok := r.q.dequeue()
			if !ok || !yield(v) {
				return
			}
		}
	}
}

// Close discards the receiver. Any later Send on a paired sender panics.
func (r *Receiver[T]) Close() {
	r.q.close()
}
