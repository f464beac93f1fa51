package smi

import (
	"log/slog"

	"github.com/soypat/ethmac"
	"github.com/soypat/ethmac/internal"
)

var _ MDIOBus = (*BitBang)(nil) // compile time guarantee of interface implementation.

// Start-of-frame and opcode pairs, IEEE 802.3 clause 22.2.4.5 and clause 45.3.
const (
	frameC22Read  = 0b01_10
	frameC22Write = 0b01_01
	frameC45Addr  = 0b00_00
	frameC45Write = 0b00_01
	frameC45Read  = 0b00_11

	preambleBits = 32
)

// BitBangPins are the pin control callbacks of a software MDIO bus. MDC is the
// clock line and MDIO the bidirectional data line.
//
//	const mdioDelay = 340 * time.Nanosecond // MDIO spec max turnaround time
//	pins := smi.BitBangPins{
//		SendBit: func(bit bool) { // set data, clock high, clock low
//			pinMDIO.Set(bit)
//			time.Sleep(mdioDelay)
//			pinMDC.High()
//			time.Sleep(mdioDelay)
//			pinMDC.Low()
//		},
//		GetBit: func() bool { // clock high, clock low, sample
//			time.Sleep(mdioDelay)
//			pinMDC.High()
//			time.Sleep(mdioDelay)
//			pinMDC.Low()
//			return pinMDIO.Get()
//		},
//		SetDir: func(output bool) {
//			if output {
//				pinMDIO.Configure(machine.PinConfig{Mode: machine.PinOutput})
//			} else {
//				pinMDIO.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
//			}
//		},
//	}
type BitBangPins struct {
	SendBit func(bit bool)
	GetBit  func() (bit bool)
	SetDir  func(output bool)
}

// BitBang is a software (bit-banged) MDIO bus master for boards whose MAC has
// no management engine or where the PHY hangs off plain GPIOs.
// Inspired by linux/drivers/net/phy/mdio-bitbang.c
type BitBang struct {
	pins BitBangPins
	log  *slog.Logger
}

// Configure sets the pin callbacks and releases the bus.
func (b *BitBang) Configure(pins BitBangPins, log *slog.Logger) error {
	if pins.SendBit == nil || pins.GetBit == nil || pins.SetDir == nil {
		return ethmac.ErrInvalidConfig
	}
	b.pins = pins
	b.log = log
	// Driving the line releases the bus.
	b.pins.SetDir(true)
	return nil
}

// Read reads a PHY register. Uses Clause 45 framing if devAddr is non-zero.
func (b *BitBang) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	if phyAddr > 31 || devAddr > 31 || (devAddr == 0 && regAddr > uint16(MaxReg)) {
		return 0, ethmac.ErrInvalidAddr
	}
	if devAddr != 0 {
		b.addressC45(phyAddr, devAddr, regAddr)
		b.header(frameC45Read, phyAddr, devAddr)
	} else {
		b.header(frameC22Read, phyAddr, uint8(regAddr))
	}
	b.pins.SetDir(false)
	// The PHY drives the second turnaround bit low. A high bit means nobody answered.
	if b.pins.GetBit() {
		for i := 0; i < preambleBits; i++ {
			b.pins.GetBit()
		}
		internal.LogAttrs(b.log, slog.LevelDebug, "bitbang:no-turnaround",
			slog.Uint64("phy", uint64(phyAddr)), slog.Uint64("reg", uint64(regAddr)))
		return 0xffff, ethmac.ErrBusTimeout
	}
	val := b.recv(16)
	b.pins.GetBit() // Idle.
	return val, nil
}

// Write writes a value to a PHY register. Uses Clause 45 framing if devAddr is non-zero.
func (b *BitBang) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	if phyAddr > 31 || devAddr > 31 || (devAddr == 0 && regAddr > uint16(MaxReg)) {
		return ethmac.ErrInvalidAddr
	}
	if devAddr != 0 {
		b.addressC45(phyAddr, devAddr, regAddr)
		b.header(frameC45Write, phyAddr, devAddr)
	} else {
		b.header(frameC22Write, phyAddr, uint8(regAddr))
	}
	b.turnaround()
	b.send(uint32(value), 16)
	b.pins.SetDir(false)
	b.pins.GetBit()
	return nil
}

// addressC45 sends the Clause 45 address frame that precedes every Clause 45 read or write.
func (b *BitBang) addressC45(phyAddr, devAddr uint8, regAddr uint16) {
	b.header(frameC45Addr, phyAddr, devAddr)
	b.turnaround()
	b.send(uint32(regAddr), 16)
	b.pins.SetDir(false)
	b.pins.GetBit()
}

// header drives the preamble, start and opcode bits, PHY address and register/device address.
func (b *BitBang) header(frame uint8, phyAddr, regOrDev uint8) {
	b.pins.SetDir(true)
	for i := 0; i < preambleBits; i++ {
		b.pins.SendBit(true)
	}
	hdr := uint32(frame)<<10 | uint32(phyAddr&0x1f)<<5 | uint32(regOrDev&0x1f)
	b.send(hdr, 14)
}

func (b *BitBang) turnaround() {
	b.pins.SendBit(true)
	b.pins.SendBit(false)
}

// send shifts out the n least significant bits of v, most significant first.
func (b *BitBang) send(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		b.pins.SendBit(v&(1<<i) != 0)
	}
}

func (b *BitBang) recv(n int) (v uint16) {
	for i := 0; i < n; i++ {
		v <<= 1
		if b.pins.GetBit() {
			v |= 1
		}
	}
	return v
}
