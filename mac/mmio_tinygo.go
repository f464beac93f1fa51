//go:build tinygo

package mac

import (
	"runtime/volatile"
	"unsafe"
)

// MMIO is a [RegisterBlock] backed by memory-mapped registers starting at Base.
type MMIO struct {
	Base uintptr
}

func (m *MMIO) Load(offset uintptr) uint32 {
	return volatile.LoadUint32((*uint32)(unsafe.Pointer(m.Base + offset)))
}

func (m *MMIO) Store(offset uintptr, value uint32) {
	volatile.StoreUint32((*uint32)(unsafe.Pointer(m.Base+offset)), value)
}
