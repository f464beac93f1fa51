// Package mac provides single-owner access to the register block of an
// Ethernet MAC peripheral and the layout of its station management registers.
package mac

import (
	"sync/atomic"

	"github.com/soypat/ethmac"
	"github.com/soypat/ethmac/pins"
)

// RegisterBlock is raw access to a memory-mapped MAC register block, addressed by byte offset.
// Implementations need not be safe for concurrent use: a [Handle] grants exclusive access.
type RegisterBlock interface {
	Load(offset uintptr) uint32
	Store(offset uintptr, value uint32)
}

// owned records which instances have a live [Handle]. Ownership belongs to the
// silicon, not to a descriptor, so two Peripherals of one instance share a flag.
var owned [256]atomic.Bool

// Peripheral describes one physical MAC. Access to its registers is only
// possible through the single [Handle] returned by [Peripheral.Take].
// A Peripheral must not be copied after first use.
type Peripheral struct {
	_       noCopy
	inst    pins.Instance
	regs    RegisterBlock
	version Version
}

// NewPeripheral returns the descriptor of instance inst whose registers are reached through regs.
func NewPeripheral(inst pins.Instance, regs RegisterBlock, v Version) (*Peripheral, error) {
	if inst == 0 || regs == nil || !v.valid() {
		return nil, ethmac.ErrInvalidConfig
	}
	return &Peripheral{inst: inst, regs: regs, version: v}, nil
}

// Instance returns the peripheral instance identifier.
func (p *Peripheral) Instance() pins.Instance { return p.inst }

// Take acquires the peripheral instance. It returns [ethmac.ErrInstanceBusy] if a handle
// to the same instance, obtained through any Peripheral, has not been released.
func (p *Peripheral) Take() (*Handle, error) {
	if !owned[p.inst].CompareAndSwap(false, true) {
		return nil, ethmac.ErrInstanceBusy
	}
	return &Handle{p: p}, nil
}

// Handle is the exclusive right to access the registers of a [Peripheral].
// It must be passed by pointer and not copied.
type Handle struct {
	_ noCopy
	p *Peripheral
}

// Release gives up the handle so the peripheral may be taken again.
// Any use of h after Release panics.
func (h *Handle) Release() {
	p := h.peripheral()
	h.p = nil
	owned[p.inst].Store(false)
}

// Instance returns the peripheral instance the handle grants access to.
func (h *Handle) Instance() pins.Instance { return h.peripheral().inst }

// Version returns the register layout version of the peripheral.
func (h *Handle) Version() Version { return h.peripheral().version }

// Load reads the register at offset.
func (h *Handle) Load(offset uintptr) uint32 { return h.peripheral().regs.Load(offset) }

// Store writes value to the register at offset.
func (h *Handle) Store(offset uintptr, value uint32) { h.peripheral().regs.Store(offset, value) }

func (h *Handle) peripheral() *Peripheral {
	if h.p == nil {
		panic(ethmac.ErrInstanceReleased)
	}
	return h.p
}

// noCopy may be embedded into structs which must not be copied after first use.
// See https://golang.org/issues/8005#issuecomment-190753527 for details; go vet's copylocks checker reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
