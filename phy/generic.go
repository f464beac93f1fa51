package phy

import (
	"log/slog"

	"github.com/soypat/ethmac/internal"
	"github.com/soypat/ethmac/smi"
)

var _ Driver = (*Generic)(nil)

// Generic drives any IEEE 802.3 Clause 22 10/100 PHY using only the standard
// register set. The link mode is resolved from our advertisement and the link
// partner's ability as the PHY does.
type Generic struct {
	// ResetBound bounds the wait for the PHY to leave reset.
	ResetBound ResetConfig
	// Advertise is written to ANAR by Init. When zero the PHY advertises
	// 100BASE-TX full duplex only, the mode the MAC is wired for.
	Advertise ANAR
	Logger    *slog.Logger
}

// Reset performs a software reset, proceeding even if the PHY never reports ready.
func (p *Generic) Reset(bus smi.Bus) {
	softReset(bus, p.ResetBound, p.Logger)
}

// Init writes the advertisement and restarts auto-negotiation.
func (p *Generic) Init(bus smi.Bus) {
	adv := p.Advertise
	if adv == 0 {
		adv = ANARSelector8023 | ANAR100Full
	}
	bus.Write(RegANAR, uint16(adv|ANARSelector8023))
	bus.Write(RegBMCR, uint16(BMCRANEnable|BMCRANRestart))
}

// LinkState reads BMSR and, once auto-negotiation completes, resolves the link mode
// from ANAR and ANLPAR per IEEE 802.3 Annex 28B.3.
func (p *Generic) LinkState(bus smi.Bus) LinkState {
	bmsr := readBMSR(bus)
	mode := LinkDown
	if bmsr.AutoNegotiationComplete() {
		anar := ANAR(bus.Read(RegANAR))
		anlpar := ANAR(bus.Read(RegANLPAR))
		mode = (anar & anlpar).LinkMode()
	}
	ls := Classify(bmsr, mode)
	if internal.LogEnabled(p.Logger, internal.LevelTrace) {
		internal.LogAttrs(p.Logger, internal.LevelTrace, "phy:link",
			slog.Uint64("bmsr", uint64(bmsr)),
			slog.String("mode", mode.String()),
			slog.String("state", ls.String()),
		)
	}
	return ls
}

// PollLink reports whether the link is up at 100Mbps full duplex.
func (p *Generic) PollLink(bus smi.Bus) bool {
	return p.LinkState(bus).Usable()
}
