// Package smi implements the station management interface (SMI), the two-wire
// MDIO/MDC bus over which a MAC reads and writes 16-bit PHY registers.
package smi

import "strconv"

// Reg is a Clause 22 PHY register address. Valid addresses are 0 through [MaxReg];
// using a larger value is a programming error and panics.
type Reg uint8

// MaxReg is the highest Clause 22 register address.
const MaxReg Reg = 31

// MustReg converts r to a register address, panicking if it is outside [0, 31].
func MustReg(r int) Reg {
	if r < 0 || r > int(MaxReg) {
		panic("smi: register address out of range: " + strconv.Itoa(r))
	}
	return Reg(r)
}

func (r Reg) mustValid() {
	if r > MaxReg {
		panic("smi: register address out of range: " + strconv.Itoa(int(r)))
	}
}

// Bus is a station management interface bound to a single PHY.
//
// Calls block the caller until the transaction completes and report no errors:
// a transaction that does not complete within the implementation's bound
// yields whatever the bus sampled last. Implementations are driven through a
// pointer and must not be copied or moved while a call is in progress.
type Bus interface {
	// Read reads a PHY register.
	Read(reg Reg) uint16
	// Write writes a PHY register.
	Write(reg Reg, val uint16)
}

// MDIOBus is a HAL for MDIO bus access supporting both Clause 22 and Clause 45 devices.
// Implementations should use devAddr to select the framing:
//   - devAddr=0: Clause 22 framing (devAddr ignored in transaction)
//   - devAddr>=1: Clause 45 framing (PMA/PMD=1, WIS=2, PCS=3, PHY XS=4, DTE XS=5, AN=7)
//
// Unlike [Bus] it addresses any PHY on the bus and reports transaction errors.
type MDIOBus interface {
	// Read reads a 16-bit register from the PHY.
	Read(phyAddr, devAddr uint8, regAddr uint16) (value uint16, err error)
	// Write writes a 16-bit value to a PHY register.
	Write(phyAddr, devAddr uint8, regAddr, value uint16) error
}

// Registers used for indirect Clause 45 access, IEEE 802.3 Annex 22D.
const (
	RegMMDControl Reg = 13 // MMD access control
	RegMMDData    Reg = 14 // MMD access address/data

	mmdFuncAddr = 0b00 << 14
	mmdFuncData = 0b01 << 14
)

// ReadMMD reads register addr of MMD device dev through the Clause 22 indirect access registers.
func ReadMMD(b Bus, dev uint8, addr uint16) uint16 {
	selectMMD(b, dev, addr)
	return b.Read(RegMMDData)
}

// WriteMMD writes val to register addr of MMD device dev through the Clause 22 indirect access registers.
func WriteMMD(b Bus, dev uint8, addr, val uint16) {
	selectMMD(b, dev, addr)
	b.Write(RegMMDData, val)
}

func selectMMD(b Bus, dev uint8, addr uint16) {
	devad := uint16(dev & 0x1f)
	b.Write(RegMMDControl, mmdFuncAddr|devad)
	b.Write(RegMMDData, addr)
	b.Write(RegMMDControl, mmdFuncData|devad)
}

// noCopy may be embedded into structs which must not be copied after first use.
// go vet's copylocks checker reports copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
