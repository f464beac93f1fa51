package phy

import "github.com/soypat/ethmac/smi"

// IEEE 802.3 Clause 22 register addresses.
const (
	RegBMCR   smi.Reg = 0x00 // Basic Mode Control Register.
	RegBMSR   smi.Reg = 0x01 // Basic Mode Status Register.
	RegID1    smi.Reg = 0x02 // PHY Identifier 1.
	RegID2    smi.Reg = 0x03 // PHY Identifier 2.
	RegANAR   smi.Reg = 0x04 // Auto-Negotiation Advertisement Register.
	RegANLPAR smi.Reg = 0x05 // Auto-Negotiation Link Partner Ability Register.
	RegANER   smi.Reg = 0x06 // Auto-Negotiation Expansion Register.
)

// BMCR represents the Basic Mode Control Register at address 0x00.
// Reference: IEEE 802.3 Clause 22.2.4.1
type BMCR uint16

const (
	BMCRSpeed1000  BMCR = 0x0040 // MSB of Speed (1000Mbps)
	BMCRCollision  BMCR = 0x0080 // Collision test
	BMCRFullDuplex BMCR = 0x0100 // Full duplex mode
	BMCRANRestart  BMCR = 0x0200 // Restart auto-negotiation
	BMCRIsolate    BMCR = 0x0400 // Isolate PHY from MII
	BMCRPowerDown  BMCR = 0x0800 // Power down PHY
	BMCRANEnable   BMCR = 0x1000 // Enable auto-negotiation
	BMCRSpeed100   BMCR = 0x2000 // Select 100Mbps
	BMCRLoopback   BMCR = 0x4000 // Enable TXD loopback
	BMCRReset      BMCR = 0x8000 // Software reset (self-clearing)
)

// BMSR represents the Basic Mode Status Register at address 0x01.
// Reference: IEEE 802.3 Clause 22.2.4.2
type BMSR uint16

const (
	BMSRExtCap      BMSR = 0x0001 // Extended register capability
	BMSRJabber      BMSR = 0x0002 // Jabber detected
	BMSRLinkStatus  BMSR = 0x0004 // Link status (1=up), latched low
	BMSRANCap       BMSR = 0x0008 // Auto-negotiation capable
	BMSRRemoteFault BMSR = 0x0010 // Remote fault detected
	BMSRANComplete  BMSR = 0x0020 // Auto-negotiation complete
	BMSRNoPreamble  BMSR = 0x0040 // Preamble suppression capable
	BMSRExtStatus   BMSR = 0x0100 // Extended status in register 15
	BMSR10Half      BMSR = 0x0800 // 10Mbps half-duplex capable
	BMSR10Full      BMSR = 0x1000 // 10Mbps full-duplex capable
	BMSR100Half     BMSR = 0x2000 // 100Mbps half-duplex capable
	BMSR100Full     BMSR = 0x4000 // 100Mbps full-duplex capable
	BMSR100Base4    BMSR = 0x8000 // 100BASE-T4 capable
)

// LinkUp reports the link status bit.
func (s BMSR) LinkUp() bool { return s&BMSRLinkStatus != 0 }

// AutoNegotiationComplete reports whether auto-negotiation has completed.
func (s BMSR) AutoNegotiationComplete() bool { return s&BMSRANComplete != 0 }

// ANAR represents the Auto-Negotiation Advertisement Register value at address 0x04.
// ANLPAR (Link Partner Ability Register at 0x05) shares the same bit layout.
// Reference: IEEE 802.3 Clause 28.2.4.1
type ANAR uint16

const (
	ANARSelector8023 ANAR = 0x0001 // IEEE 802.3 selector value (required)
	ANAR10Half       ANAR = 0x0020 // 10BASE-T half-duplex
	ANAR10Full       ANAR = 0x0040 // 10BASE-T full-duplex
	ANAR100Half      ANAR = 0x0080 // 100BASE-TX half-duplex
	ANAR100Full      ANAR = 0x0100 // 100BASE-TX full-duplex
	ANAR100BaseT4    ANAR = 0x0200 // 100BASE-T4
	ANARPause        ANAR = 0x0400 // Pause capability
	ANARPauseAsym    ANAR = 0x0800 // Asymmetric pause
	ANARRemoteFault  ANAR = 0x2000 // Remote fault
	ANARAck          ANAR = 0x4000 // Acknowledge (ANLPAR only)
	ANARNextPage     ANAR = 0x8000 // Next page capable

	ANARSpeedMask ANAR = ANAR10Half | ANAR10Full | ANAR100Half | ANAR100Full | ANAR100BaseT4
)

// ANAR returns the advertisement bit of a 10/100 link mode, or zero.
func (lm LinkMode) ANAR() (a ANAR) {
	switch lm {
	case Link10HDX:
		a = ANAR10Half
	case Link10FDX:
		a = ANAR10Full
	case Link100HDX:
		a = ANAR100Half
	case Link100FDX:
		a = ANAR100Full
	case Link100T4:
		a = ANAR100BaseT4
	}
	return a
}

// LinkMode returns the highest priority LinkMode from the ANAR speed bits.
// Priority order per IEEE 802.3 Annex 28B.3.
// Returns LinkDown if no speed bits are set.
func (a ANAR) LinkMode() LinkMode {
	switch {
	case a&ANAR100Full != 0:
		return Link100FDX
	case a&ANAR100BaseT4 != 0:
		return Link100T4
	case a&ANAR100Half != 0:
		return Link100HDX
	case a&ANAR10Full != 0:
		return Link10FDX
	case a&ANAR10Half != 0:
		return Link10HDX
	default:
		return LinkDown
	}
}

// LinkMode represents a negotiated or forced Ethernet link speed and duplex mode.
type LinkMode uint8

const (
	LinkDown   LinkMode = iota // down
	Link10HDX                  // 10M-H
	Link10FDX                  // 10M-F
	Link100HDX                 // 100M-H
	Link100FDX                 // 100M-F
	Link100T4                  // 100M-T4
)

var linkModeNames = [...]string{"down", "10M-H", "10M-F", "100M-H", "100M-F", "100M-T4"}

func (lm LinkMode) String() string {
	if int(lm) < len(linkModeNames) {
		return linkModeNames[lm]
	}
	return "LinkMode(?)"
}

// SpeedMbps returns the link speed in megabits per second.
func (lm LinkMode) SpeedMbps() int {
	switch lm {
	case Link10HDX, Link10FDX:
		return 10
	case Link100HDX, Link100FDX, Link100T4:
		return 100
	default:
		return 0
	}
}

// IsFullDuplex returns true if the link mode is full duplex.
func (lm LinkMode) IsFullDuplex() bool {
	return lm == Link10FDX || lm == Link100FDX
}
