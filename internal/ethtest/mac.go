package ethtest

import (
	"github.com/soypat/ethmac/mac"
)

// MAC simulates the station management block of a MAC register block.
// Writing a command with the busy flag to the address register performs the
// transaction on the attached PHY; the busy flag then reads back as set for
// BusyPolls loads of the address register.
type MAC struct {
	Version mac.Version
	PHY     *PHY
	// BusyPolls is the number of address register loads that report busy after a command.
	BusyPolls int
	// StuckBusy keeps the busy flag set forever and never completes a transaction.
	StuckBusy bool

	ar, dr    uint32
	busyLeft  int
	pending   bool
	other     map[uintptr]uint32
	loads     int
	commands  int
	lastPHYAd uint8
}

// NewMAC returns a simulated register block of the given layout with phy attached.
func NewMAC(v mac.Version, phy *PHY) *MAC {
	return &MAC{Version: v, PHY: phy, other: make(map[uintptr]uint32)}
}

// Commands returns the number of transactions started.
func (m *MAC) Commands() int { return m.commands }

// Loads returns the number of register loads served.
func (m *MAC) Loads() int { return m.loads }

// LastPHYAddr returns the PHY address of the last transaction.
func (m *MAC) LastPHYAddr() uint8 { return m.lastPHYAd }

func (m *MAC) Load(offset uintptr) uint32 {
	m.loads++
	switch offset {
	case m.Version.AddrOffset():
		if m.pending {
			if m.StuckBusy || m.busyLeft > 0 {
				m.busyLeft--
				return m.ar
			}
			m.complete()
		}
		return m.ar
	case m.Version.DataOffset():
		return m.dr
	}
	if m.other == nil {
		return 0
	}
	return m.other[offset]
}

func (m *MAC) Store(offset uintptr, value uint32) {
	switch offset {
	case m.Version.AddrOffset():
		m.ar = value
		if mac.Busy(value) {
			m.commands++
			m.pending = true
			m.busyLeft = m.BusyPolls
		}
		return
	case m.Version.DataOffset():
		m.dr = value
		return
	}
	if m.other == nil {
		m.other = make(map[uintptr]uint32)
	}
	m.other[offset] = value
}

func (m *MAC) complete() {
	m.pending = false
	phyAddr, reg, write := m.decode(m.ar)
	m.lastPHYAd = phyAddr
	m.ar &^= 1 // Busy flag.
	if m.PHY == nil || m.PHY.Addr != phyAddr {
		if !write {
			// No device drives MDIO: pulled up.
			m.dr = m.dr&^0xffff | 0xffff
		}
		return
	}
	if write {
		m.PHY.WriteReg(reg, uint16(m.dr))
	} else {
		m.dr = m.dr&^0xffff | uint32(m.PHY.ReadReg(reg))
	}
}

func (m *MAC) decode(ar uint32) (phyAddr, reg uint8, write bool) {
	if m.Version == mac.V2 {
		return uint8(ar>>21) & 0x1f, uint8(ar>>16) & 0x1f, (ar>>2)&0b11 == 0b01
	}
	return uint8(ar>>11) & 0x1f, uint8(ar>>6) & 0x1f, ar&(1<<1) != 0
}
