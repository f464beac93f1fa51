// Package phy provides Ethernet PHY drivers that reset, initialize and poll
// the link of a transceiver over a station management bus.
package phy

import (
	"log/slog"
	"time"

	"github.com/soypat/ethmac/internal"
	"github.com/soypat/ethmac/smi"
)

// Driver is implemented by PHY chip variants. Drivers hold no state between
// calls beyond their configuration: everything else is read back from the PHY.
type Driver interface {
	// Reset performs a software reset and waits, within a bound, for the PHY to come out of reset.
	// If the PHY never reports ready Reset returns anyway.
	Reset(bus smi.Bus)
	// Init configures the PHY for auto-negotiation in the mode the MAC is wired for.
	Init(bus smi.Bus)
	// PollLink reports whether the link is up at 100Mbps full duplex,
	// the only configuration the MAC is set up for.
	PollLink(bus smi.Bus) bool
}

// LinkState classifies the link condition read from the PHY.
type LinkState uint8

const (
	LinkStateDown        LinkState = iota // down
	LinkStateNegotiating                  // negotiating
	LinkStateUp100Full                    // up 100M-F
	LinkStateUpOther                      // up other
)

var linkStateNames = [...]string{"down", "negotiating", "up 100M-F", "up other"}

func (ls LinkState) String() string {
	if int(ls) < len(linkStateNames) {
		return linkStateNames[ls]
	}
	return "LinkState(?)"
}

// Usable reports whether the MAC can exchange frames over a link in this state.
func (ls LinkState) Usable() bool { return ls == LinkStateUp100Full }

// Classify derives the link state from a BMSR sample and the resolved link
// mode. The mode is only meaningful once auto-negotiation completed.
func Classify(bmsr BMSR, mode LinkMode) LinkState {
	switch {
	case !bmsr.LinkUp():
		return LinkStateDown
	case !bmsr.AutoNegotiationComplete() || mode == LinkDown:
		return LinkStateNegotiating
	case mode == Link100FDX:
		return LinkStateUp100Full
	}
	return LinkStateUpOther
}

// ResetConfig bounds the wait for a PHY to come out of software reset.
type ResetConfig struct {
	// Polls is the maximum number of BMCR reads after issuing the reset. Defaults to 50.
	Polls int
	// Delay is the time between polls. Defaults to 10ms, for a 500ms total as IEEE 802.3 allows.
	// A negative Delay polls without sleeping.
	Delay time.Duration
}

const (
	defaultResetPolls = 50
	defaultResetDelay = 500 * time.Millisecond / defaultResetPolls
)

func (rc ResetConfig) withDefaults() ResetConfig {
	if rc.Polls <= 0 {
		rc.Polls = defaultResetPolls
	}
	if rc.Delay < 0 {
		rc.Delay = 0
	} else if rc.Delay == 0 {
		rc.Delay = defaultResetDelay
	}
	return rc
}

// softReset writes the BMCR reset bit and polls until it self-clears or the
// poll bound is reached. It reports whether the PHY came out of reset.
func softReset(bus smi.Bus, cfg ResetConfig, log *slog.Logger) bool {
	cfg = cfg.withDefaults()
	bus.Write(RegBMCR, uint16(BMCRReset))
	poll := internal.NewPoller(cfg.Polls, cfg.Delay, cfg.Delay)
	for poll.Next() {
		if BMCR(bus.Read(RegBMCR))&BMCRReset == 0 {
			internal.LogAttrs(log, slog.LevelDebug, "phy:reset-done", slog.Int("polls", poll.Polls()))
			return true
		}
	}
	// No other recovery path exists at this layer; carry on as if ready.
	internal.LogAttrs(log, slog.LevelWarn, "phy:reset-timeout", slog.Int("polls", poll.Polls()))
	return false
}

// readBMSR reads BMSR twice: the link status bit latches low, so the first
// read returns past failures and the second the current state.
func readBMSR(bus smi.Bus) BMSR {
	bus.Read(RegBMSR)
	return BMSR(bus.Read(RegBMSR))
}
