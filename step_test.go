// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa_test

import (
	"strconv"
	"testing"

	"code.hybscloud.com/capa"
)

func TestStepKindString(t *testing.T) {
	cases := []struct {
		kind capa.StepKind
		want string
	}{
		{capa.StepOnce, "once"},
		{capa.StepStream, "stream"},
		{capa.StepKind(9), "unknown"},
	}
	for _, c := range cases {
		if got := c.kind.String(); got != c.want {
			t.Errorf("StepKind(%d).String() = %q, want %q", c.kind, got, c.want)
		}
	}
}

func TestMapStep(t *testing.T) {
	once := capa.MapStep(capa.Once(12), strconv.Itoa)
	if once.Kind() != capa.StepOnce || once.Payload() != "12" {
		t.Fatalf("MapStep(Once) = %v %q", once.Kind(), once.Payload())
	}
	stream := capa.MapStep(capa.Stream(7), strconv.Itoa)
	if stream.Kind() != capa.StepStream || stream.Payload() != "7" {
		t.Fatalf("MapStep(Stream) = %v %q", stream.Kind(), stream.Payload())
	}
}

func TestSerialMonotonic(t *testing.T) {
	skipRace(t)
	a := newTestCore(t, func(testEvent, *testModel, testCaps) {})
	b := newTestCore(t, func(testEvent, *testModel, testCaps) {})
	if b.Serial() <= a.Serial() {
		t.Fatalf("serials not increasing: %d then %d", a.Serial(), b.Serial())
	}
}
