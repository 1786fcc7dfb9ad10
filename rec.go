// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import (
	"code.hybscloud.com/kont"
)

// Loop runs a recursive task body.
// step returns Left(nextState) to continue or Right(result) to finish.
// Each iteration may suspend on requests, so long-running tasks such as
// stream consumers or pollers are written as loops.
func Loop[S, A any](initial S, step func(S) kont.Eff[kont.Either[S, A]]) kont.Eff[A] {
	return kont.Bind(step(initial), func(e kont.Either[S, A]) kont.Eff[A] {
		if next, ok := e.GetLeft(); ok {
			return Loop(next, step)
		}
		result, _ := e.GetRight()
		return kont.Pure(result)
	})
}

// Repeat runs body n times in sequence.
func Repeat(n int, body func(i int) kont.Eff[struct{}]) kont.Eff[struct{}] {
	return Loop(0, func(i int) kont.Eff[kont.Either[int, struct{}]] {
		if i >= n {
			return kont.Pure(kont.Right[int](struct{}{}))
		}
		return kont.Then(body(i), kont.Pure(kont.Left[int, struct{}](i+1)))
	})
}
