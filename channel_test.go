// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa_test

import (
	"slices"
	"sync"
	"testing"
	"testing/quick"

	"code.hybscloud.com/capa"
)

func collect[T any](rx *capa.Receiver[T]) []T {
	return slices.Collect(rx.Drain())
}

func TestChannelFIFO(t *testing.T) {
	skipRace(t)
	tx, rx := capa.Channel[int]()
	// Spans several ring segments.
	const n = 1000
	for i := range n {
		tx.Send(i)
	}
	got := collect(rx)
	if len(got) != n {
		t.Fatalf("len = %d, want %d", len(got), n)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestChannelDrain(t *testing.T) {
	skipRace(t)
	tx, rx := capa.Channel[int]()
	if got := collect(rx); len(got) != 0 {
		t.Fatalf("drain of empty channel = %v", got)
	}
	tx.Send(5)
	tx.Send(7)
	if got := collect(rx); !slices.Equal(got, []int{5, 7}) {
		t.Fatalf("drain = %v, want [5 7]", got)
	}
	if got := collect(rx); len(got) != 0 {
		t.Fatalf("second drain = %v, want []", got)
	}
}

func TestChannelReceive(t *testing.T) {
	skipRace(t)
	tx, rx := capa.Channel[string]()
	if _, ok := rx.Receive(); ok {
		t.Fatal("receive on empty channel reported a value")
	}
	tx.Send("a")
	v, ok := rx.Receive()
	if !ok || v != "a" {
		t.Fatalf("Receive = %q, %v", v, ok)
	}
}

func TestChannelDrainStopsEarly(t *testing.T) {
	skipRace(t)
	tx, rx := capa.Channel[int]()
	for i := range 4 {
		tx.Send(i)
	}
	for v := range rx.Drain() {
		if v == 1 {
			break
		}
	}
	if got := collect(rx); !slices.Equal(got, []int{2, 3}) {
		t.Fatalf("remaining = %v, want [2 3]", got)
	}
}

type option struct {
	v  int
	ok bool
}

func some(v int) option { return option{v: v, ok: true} }

func TestMapInputSome(t *testing.T) {
	skipRace(t)
	tx, rx := capa.Channel[option]()
	mapped := capa.MapInput(tx, some)
	mapped.Send(3)
	tx.Send(option{})
	mapped.Send(4)
	want := []option{some(3), {}, some(4)}
	if got := collect(rx); !slices.Equal(got, want) {
		t.Fatalf("drain = %v, want %v", got, want)
	}
}

// TestPropertyMapInputComposes checks that mapping twice equals mapping
// with the composed function.
func TestPropertyMapInputComposes(t *testing.T) {
	skipRace(t)
	f := func(n int) int { return n*3 + 1 }
	g := func(n int8) int { return int(n) - 7 }

	prop := func(xs []int8) bool {
		tx1, rx1 := capa.Channel[int]()
		tx2, rx2 := capa.Channel[int]()
		chained := capa.MapInput(capa.MapInput(tx1, f), g)
		composed := capa.MapInput(tx2, func(n int8) int { return f(g(n)) })
		for _, x := range xs {
			chained.Send(x)
			composed.Send(x)
		}
		a, b := collect(rx1), collect(rx2)
		return len(a) == len(xs) && slices.Equal(a, b)
	}
	if err := quick.Check(prop, nil); err != nil {
		t.Error(err)
	}
}

func TestChannelClonesConcurrent(t *testing.T) {
	skipRace(t)
	const (
		producers = 8
		perSender = 2000
	)
	type item struct{ from, seq int }
	tx, rx := capa.Channel[item]()

	var wg sync.WaitGroup
	for p := range producers {
		s := tx.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perSender {
				s.Send(item{from: p, seq: i})
			}
		}()
	}

	next := make([]int, producers)
	total := 0
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	finished := false
	for !finished {
		select {
		case <-done:
			finished = true
		default:
		}
		for it := range rx.Drain() {
			if it.seq != next[it.from] {
				t.Fatalf("producer %d: got seq %d, want %d", it.from, it.seq, next[it.from])
			}
			next[it.from]++
			total++
		}
	}
	if total != producers*perSender {
		t.Fatalf("received %d items, want %d", total, producers*perSender)
	}
}

func TestChannelSendAfterClosePanics(t *testing.T) {
	skipRace(t)
	tx, rx := capa.Channel[int]()
	mapped := capa.MapInput(tx, func(s string) int { return len(s) })
	rx.Close()
	for name, send := range map[string]func(){
		"direct": func() { tx.Send(1) },
		"mapped": func() { mapped.Send("x") },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("send after close did not panic")
				}
			}()
			send()
		})
	}
}

func TestMapEffectKeepsKind(t *testing.T) {
	skipRace(t)
	tx, rx := capa.Channel[capa.Step[string]]()
	mapped := capa.MapEffect(tx, func(n int) string { return string(rune('a' + n)) })
	mapped.Send(capa.Once(0))
	mapped.Send(capa.Stream(1))
	got := collect(rx)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Kind() != capa.StepOnce || got[0].Payload() != "a" {
		t.Errorf("step 0 = %v %q", got[0].Kind(), got[0].Payload())
	}
	if got[1].Kind() != capa.StepStream || got[1].Payload() != "b" {
		t.Errorf("step 1 = %v %q", got[1].Kind(), got[1].Payload())
	}
}
