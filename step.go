// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

// StepKind tags a Step.
type StepKind uint8

const (
	// StepOnce is a single, terminal delivery.
	StepOnce StepKind = iota
	// StepStream is one delivery of a stream. Termination is observed by
	// the producing task ceasing to send.
	StepStream
)

func (k StepKind) String() string {
	switch k {
	case StepOnce:
		return "once"
	case StepStream:
		return "stream"
	}
	return "unknown"
}

// Step is one delivery pushed from a capability task into the core's
// effect queue.
type Step[Ef any] struct {
	payload Ef
	kind    StepKind
}

// Once returns a terminal step carrying payload.
func Once[Ef any](payload Ef) Step[Ef] {
	return Step[Ef]{payload: payload, kind: StepOnce}
}

// Stream returns a streaming step carrying payload.
func Stream[Ef any](payload Ef) Step[Ef] {
	return Step[Ef]{payload: payload, kind: StepStream}
}

// Kind reports the delivery kind.
func (s Step[Ef]) Kind() StepKind {
	return s.kind
}

// Payload returns the carried effect.
func (s Step[Ef]) Payload() Ef {
	return s.payload
}

// MapStep converts the payload with f, keeping the kind.
func MapStep[Ef, NewEf any](s Step[NewEf], f func(NewEf) Ef) Step[Ef] {
	return Step[Ef]{payload: f(s.payload), kind: s.kind}
}
