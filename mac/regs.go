package mac

import "github.com/soypat/ethmac"

// Version selects the register layout of the MAC's station management block.
type Version uint8

const (
	_ Version = iota
	// V1 is the MAC found on STM32F4 and STM32F7 (MACMIIAR/MACMIIDR).
	V1
	// V2 is the MAC found on STM32H7 (MACMDIOAR/MACMDIODR).
	V2
)

func (v Version) valid() bool { return v == V1 || v == V2 }

func (v Version) String() string {
	switch v {
	case V1:
		return "eth-v1"
	case V2:
		return "eth-v2"
	}
	return "eth-unknown"
}

// STM32 ETH peripheral base address, shared by F4, F7 and H7 parts.
const BaseSTM32 = 0x4002_8000

// Register offsets from the MAC base.
const (
	offV1MIIAR  = 0x010 // MACMIIAR
	offV1MIIDR  = 0x014 // MACMIIDR
	offV2MDIOAR = 0x200 // MACMDIOAR
	offV2MDIODR = 0x204 // MACMDIODR
)

// Station management address register fields.
const (
	// Both layouts keep the busy flag at bit 0.
	miiBusy = 1 << 0

	v1Write    = 1 << 1
	v1CRPos    = 2
	v1CRMask   = 0b111 << v1CRPos
	v1RegPos   = 6
	v1PHYPos   = 11
	v2GOCPos   = 2
	v2GOCRead  = 0b11 << v2GOCPos
	v2GOCWrite = 0b01 << v2GOCPos
	v2CRPos    = 8
	v2CRMask   = 0b1111 << v2CRPos
	v2RegPos   = 16
	v2PHYPos   = 21

	dataMask = 0xffff
)

// AddrOffset returns the offset of the station management address register.
func (v Version) AddrOffset() uintptr {
	if v == V2 {
		return offV2MDIOAR
	}
	return offV1MIIAR
}

// DataOffset returns the offset of the station management data register.
func (v Version) DataOffset() uintptr {
	if v == V2 {
		return offV2MDIODR
	}
	return offV1MIIDR
}

// Command returns the address register value that starts a transaction
// on Clause 22 register reg of the PHY at phyAddr. The busy flag is set.
func (v Version) Command(phyAddr, reg uint8, clockRange ClockRange, write bool) uint32 {
	pa := uint32(phyAddr & 0x1f)
	ra := uint32(reg & 0x1f)
	cr := uint32(clockRange)
	if v == V2 {
		cmd := pa<<v2PHYPos | ra<<v2RegPos | (cr<<v2CRPos)&v2CRMask | miiBusy
		if write {
			return cmd | v2GOCWrite
		}
		return cmd | v2GOCRead
	}
	cmd := pa<<v1PHYPos | ra<<v1RegPos | (cr<<v1CRPos)&v1CRMask | miiBusy
	if write {
		cmd |= v1Write
	}
	return cmd
}

// Busy reports whether the address register value ar has the busy flag set.
func Busy(ar uint32) bool { return ar&miiBusy != 0 }

// Data extracts the 16-bit register value from a data register value.
func Data(dr uint32) uint16 { return uint16(dr & dataMask) }

// ClockRange is the MDC divider selector written to the CR field of the address register.
type ClockRange uint8

// ClockRangeFor returns the MDC divider selector keeping MDC under 2.5MHz for the
// given AHB clock frequency in Hz.
func ClockRangeFor(hclkHz uint32) (ClockRange, error) {
	const MHz = 1_000_000
	switch {
	case hclkHz < 20*MHz:
		return 0, ethmac.ErrUnsupported
	case hclkHz < 35*MHz:
		return 0b010, nil // HCLK/16
	case hclkHz < 60*MHz:
		return 0b011, nil // HCLK/26
	case hclkHz < 100*MHz:
		return 0b000, nil // HCLK/42
	case hclkHz < 150*MHz:
		return 0b001, nil // HCLK/62
	case hclkHz < 250*MHz:
		return 0b100, nil // HCLK/102
	case hclkHz <= 300*MHz:
		return 0b101, nil // HCLK/124, V2 only.
	}
	return 0, ethmac.ErrUnsupported
}
