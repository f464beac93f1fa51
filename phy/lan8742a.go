package phy

import (
	"log/slog"

	"github.com/soypat/ethmac/internal"
	"github.com/soypat/ethmac/smi"
)

var _ Driver = (*LAN8742A)(nil)

// LAN8742A vendor specific registers.
const (
	RegLAN8742ASMR  smi.Reg = 18 // Special Modes Register.
	RegLAN8742AISFR smi.Reg = 29 // Interrupt Source Flag Register.
	RegLAN8742AIMR  smi.Reg = 30 // Interrupt Mask Register.
	RegLAN8742ASSR  smi.Reg = 31 // PHY Special Control/Status Register.

	// Wakeup control and status register, MMD device 3 (PCS).
	lan8742aMMDPCS = 3
	lan8742aWUCSR  = 0x8010
)

// SSR represents the LAN8742A PHY Special Control/Status Register.
type SSR uint16

const (
	SSRAutoDone  SSR = 1 << 12    // Auto-negotiation done
	SSRSpeedMask SSR = 0b111 << 2 // Speed indication (HCDSPEED)
	SSR10Half    SSR = 0b001 << 2 // 10BASE-T half-duplex
	SSR10Full    SSR = 0b101 << 2 // 10BASE-T full-duplex
	SSR100Half   SSR = 0b010 << 2 // 100BASE-TX half-duplex
	SSR100Full   SSR = 0b110 << 2 // 100BASE-TX full-duplex
)

// LinkMode decodes the speed indication field.
func (s SSR) LinkMode() LinkMode {
	switch s & SSRSpeedMask {
	case SSR10Half:
		return Link10HDX
	case SSR10Full:
		return Link10FDX
	case SSR100Half:
		return Link100HDX
	case SSR100Full:
		return Link100FDX
	}
	return LinkDown
}

// LAN8742A drives the Microchip LAN8742A 10/100 RMII PHY.
type LAN8742A struct {
	// ResetBound bounds the wait for the PHY to leave reset.
	ResetBound ResetConfig
	Logger     *slog.Logger
}

// Reset performs a software reset, proceeding even if the PHY never reports ready.
func (p *LAN8742A) Reset(bus smi.Bus) {
	softReset(bus, p.ResetBound, p.Logger)
}

// Init clears pending wakeup events and starts auto-negotiation.
func (p *LAN8742A) Init(bus smi.Bus) {
	smi.WriteMMD(bus, lan8742aMMDPCS, lan8742aWUCSR, 0)
	bus.Write(RegBMCR, uint16(BMCRANEnable|BMCRANRestart))
}

// LinkState reads the link condition from BMSR and the speed indication in SSR.
func (p *LAN8742A) LinkState(bus smi.Bus) LinkState {
	bmsr := readBMSR(bus)
	ssr := SSR(bus.Read(RegLAN8742ASSR))
	mode := LinkDown
	if ssr&SSRAutoDone != 0 {
		mode = ssr.LinkMode()
	}
	ls := Classify(bmsr, mode)
	if internal.LogEnabled(p.Logger, internal.LevelTrace) {
		internal.LogAttrs(p.Logger, internal.LevelTrace, "lan8742a:link",
			slog.Uint64("bmsr", uint64(bmsr)),
			slog.Uint64("ssr", uint64(ssr)),
			slog.String("state", ls.String()),
		)
	}
	return ls
}

// PollLink reports whether the link is up at 100Mbps full duplex.
func (p *LAN8742A) PollLink(bus smi.Bus) bool {
	return p.LinkState(bus).Usable()
}
