// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package capa

import "code.hybscloud.com/atomix"

// Serial is a monotonically increasing identifier for cores and tasks.
type Serial = uint32

var (
	coreCounter atomix.Uint32
	taskCounter atomix.Uint32
)

// nextCoreSerial returns the serial of the next core.
func nextCoreSerial() Serial {
	return coreCounter.Add(1)
}

// nextTaskSerial returns the serial of the next spawned task.
func nextTaskSerial() Serial {
	return taskCounter.Add(1)
}
