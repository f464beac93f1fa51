// Package ethtest provides simulated MAC register blocks and PHYs for tests and tooling.
package ethtest

// Clause 22 registers modelled by PHY.
const (
	regBMCR    = 0
	regBMSR    = 1
	regID1     = 2
	regID2     = 3
	regANAR    = 4
	regANLPAR  = 5
	regMMDCTRL = 13
	regMMDAAD  = 14
	regSMR     = 18
	regSSR     = 31

	bmcrReset     = 1 << 15
	bmcrANEnable  = 1 << 12
	bmcrANRestart = 1 << 9

	bmsrLinkStatus = 1 << 2
	bmsrANAbility  = 1 << 3
	bmsrANComplete = 1 << 5
	// 10/100 half and full duplex capable.
	bmsrCaps = 0x7800

	ssrAutoDone = 1 << 12

	// MODE strap: all capable, auto-negotiation enabled.
	smrModeAll = 0b111 << 5

	anarSelector = 0x0001
	anar10Half   = 0x0020
	anar10Full   = 0x0040
	anar100Half  = 0x0080
	anar100Full  = 0x0100

	mmdFuncData = 0b01 << 14
)

// LAN8742A identifier registers.
const (
	LAN8742AID1 = 0x0007
	LAN8742AID2 = 0xc131
)

// Link is the physical link condition the simulated PHY reports.
type Link struct {
	Up bool
	// Negotiating is true while auto-negotiation has not completed.
	Negotiating bool
	SpeedMbps   int
	FullDuplex  bool
}

// Link conditions commonly used in tests.
var (
	LinkDown      = Link{}
	Link100Full   = Link{Up: true, SpeedMbps: 100, FullDuplex: true}
	Link100Half   = Link{Up: true, SpeedMbps: 100}
	Link10Full    = Link{Up: true, SpeedMbps: 10, FullDuplex: true}
	LinkAutoNegot = Link{Up: true, Negotiating: true}
)

// PHY simulates the register set of a 10/100 PHY in the style of the LAN8742A.
// With Loopback set it acts as a plain 32-entry register file.
type PHY struct {
	// Addr is the address the PHY answers to on the management bus.
	Addr uint8
	// Loopback makes every register plain storage: reads return the last written value.
	Loopback bool
	// ResetReads is the number of BMCR reads during which the reset bit stays set after a software reset.
	ResetReads int
	// StuckInReset keeps the reset bit set forever.
	StuckInReset bool

	regs        [32]uint16
	mmd         map[uint32]uint16
	link        Link
	latchedDown bool
	resetLeft   int
	resets      int
	reads       int
	writes      int
}

// NewPHY returns a PHY at addr in its power-on state with the link down.
func NewPHY(addr uint8) *PHY {
	p := &PHY{Addr: addr}
	p.powerOn()
	return p
}

func (p *PHY) powerOn() {
	p.regs = [32]uint16{}
	p.regs[regBMCR] = bmcrANEnable
	p.regs[regID1] = LAN8742AID1
	p.regs[regID2] = LAN8742AID2
	p.regs[regANAR] = anarSelector | anar10Half | anar10Full | anar100Half | anar100Full
	p.regs[regSMR] = smrModeAll | uint16(p.Addr&0x1f)
	p.mmd = make(map[uint32]uint16)
}

// SetLink changes the reported link condition. A link going down latches
// the BMSR link status low until BMSR is read.
func (p *PHY) SetLink(l Link) {
	if p.link.Up && !l.Up {
		p.latchedDown = true
	}
	p.link = l
}

// Resets returns the number of software resets the PHY has seen.
func (p *PHY) Resets() int { return p.resets }

// Counts returns the number of register reads and writes served.
func (p *PHY) Counts() (reads, writes int) { return p.reads, p.writes }

// MMD returns the value of a Clause 45 register written through the indirect access registers.
func (p *PHY) MMD(dev uint8, addr uint16) uint16 { return p.mmd[mmdKey(dev, addr)] }

// Reg returns the stored value of a register without side effects.
func (p *PHY) Reg(reg uint8) uint16 { return p.regs[reg&0x1f] }

// ReadReg serves a management read of reg.
func (p *PHY) ReadReg(reg uint8) uint16 {
	reg &= 0x1f
	p.reads++
	if p.Loopback {
		return p.regs[reg]
	}
	switch reg {
	case regBMCR:
		if p.resetLeft > 0 {
			if !p.StuckInReset {
				p.resetLeft--
			}
			return p.regs[regBMCR] | bmcrReset
		}
		return p.regs[regBMCR]
	case regBMSR:
		v := uint16(bmsrCaps | bmsrANAbility)
		if p.link.Up && !p.latchedDown {
			v |= bmsrLinkStatus
		}
		if p.anDone() {
			v |= bmsrANComplete
		}
		p.latchedDown = false
		return v
	case regANLPAR:
		if !p.anDone() {
			return 0
		}
		return anarSelector | p.partnerBits()
	case regMMDAAD:
		ctl := p.regs[regMMDCTRL]
		if ctl&mmdFuncData != 0 {
			return p.mmd[mmdKey(uint8(ctl), p.regs[regMMDAAD])]
		}
		return p.regs[regMMDAAD]
	case regSSR:
		if !p.anDone() {
			return 0
		}
		return ssrAutoDone | p.speedIndication()<<2
	}
	return p.regs[reg]
}

// WriteReg serves a management write of val to reg.
func (p *PHY) WriteReg(reg uint8, val uint16) {
	reg &= 0x1f
	p.writes++
	if p.Loopback {
		p.regs[reg] = val
		return
	}
	switch reg {
	case regBMCR:
		if val&bmcrReset != 0 {
			p.resets++
			p.powerOn()
			p.resetLeft = p.ResetReads
			if p.StuckInReset && p.resetLeft == 0 {
				p.resetLeft = 1
			}
			return
		}
		p.regs[regBMCR] = val &^ bmcrANRestart
	case regMMDAAD:
		ctl := p.regs[regMMDCTRL]
		if ctl&mmdFuncData != 0 {
			p.mmd[mmdKey(uint8(ctl), p.regs[regMMDAAD])] = val
			return
		}
		p.regs[regMMDAAD] = val
	case regBMSR, regID1, regID2, regANLPAR, regSSR:
		// Read-only.
	default:
		p.regs[reg] = val
	}
}

func (p *PHY) anDone() bool {
	return p.link.Up && !p.link.Negotiating && p.regs[regBMCR]&bmcrANEnable != 0
}

// partnerBits returns the link partner advertisement that resolves to the link mode.
func (p *PHY) partnerBits() uint16 {
	switch {
	case p.link.SpeedMbps == 100 && p.link.FullDuplex:
		return anar100Full | anar100Half | anar10Full | anar10Half
	case p.link.SpeedMbps == 100:
		return anar100Half | anar10Half
	case p.link.FullDuplex:
		return anar10Full | anar10Half
	}
	return anar10Half
}

// speedIndication returns the LAN8742A SSR HCDSPEED field for the link.
func (p *PHY) speedIndication() uint16 {
	var v uint16
	switch p.link.SpeedMbps {
	case 10:
		v = 0b001
	case 100:
		v = 0b010
	}
	if p.link.FullDuplex {
		v |= 0b100
	}
	return v
}

func mmdKey(dev uint8, addr uint16) uint32 { return uint32(dev&0x1f)<<16 | uint32(addr) }
