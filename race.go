// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package spsc

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent tests over the queues' plain slot
// memory, which trigger false positives because the detector cannot
// track the acquire/release pairing on the separate index variables.
const RaceEnabled = true
