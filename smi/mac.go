package smi

import (
	"log/slog"

	"github.com/soypat/ethmac"
	"github.com/soypat/ethmac/internal"
	"github.com/soypat/ethmac/mac"
)

var _ Bus = (*MAC)(nil) // compile time guarantee of interface implementation.

// DefaultMaxBusyPolls bounds the busy flag wait of a MAC transaction when
// [MACConfig.MaxBusyPolls] is zero. A transaction at the slowest MDC clock
// takes ~26µs, well under this many register reads on supported parts.
const DefaultMaxBusyPolls = 100_000

// MACConfig configures a [MAC] station management bus.
type MACConfig struct {
	// PHYAddr is the address of the PHY on the management bus (0-31).
	PHYAddr uint8
	// ClockRange is the MDC divider selector. See [mac.ClockRangeFor].
	ClockRange mac.ClockRange
	// MaxBusyPolls bounds the number of address register reads spent waiting on the busy flag.
	MaxBusyPolls int
	// Logger receives timeout errors and, at trace level, every transaction.
	Logger *slog.Logger
}

// MAC is a station management bus driven by the MDIO engine of the MAC
// peripheral: the register address is shifted out by hardware while the
// busy flag is set. MAC holds the peripheral handle for its whole lifetime.
type MAC struct {
	_        noCopy
	h        *mac.Handle
	phyAddr  uint8
	cr       mac.ClockRange
	maxPolls int
	timeouts uint32
	log      *slog.Logger
}

// Configure binds m to the peripheral handle h and the PHY at cfg.PHYAddr.
func (m *MAC) Configure(h *mac.Handle, cfg MACConfig) error {
	if h == nil || cfg.MaxBusyPolls < 0 {
		return ethmac.ErrInvalidConfig
	} else if cfg.PHYAddr > 31 {
		return ethmac.ErrInvalidAddr
	}
	if cfg.MaxBusyPolls == 0 {
		cfg.MaxBusyPolls = DefaultMaxBusyPolls
	}
	*m = MAC{
		h:        h,
		phyAddr:  cfg.PHYAddr,
		cr:       cfg.ClockRange,
		maxPolls: cfg.MaxBusyPolls,
		log:      cfg.Logger,
	}
	return nil
}

// PHYAddr returns the address of the PHY the bus is bound to.
func (m *MAC) PHYAddr() uint8 { return m.phyAddr }

// Timeouts returns the number of transactions that exceeded the busy wait bound.
func (m *MAC) Timeouts() uint32 { return m.timeouts }

// Read reads PHY register reg. On timeout it returns the last sampled contents of the data register.
func (m *MAC) Read(reg Reg) uint16 {
	reg.mustValid()
	val, _ := m.ReadPHY(m.phyAddr, uint8(reg))
	return val
}

// Write writes val to PHY register reg.
func (m *MAC) Write(reg Reg, val uint16) {
	reg.mustValid()
	m.WritePHY(m.phyAddr, uint8(reg), val)
}

// ReadPHY reads a Clause 22 register of the PHY at phyAddr, which need not be
// the bound PHY. It returns [ethmac.ErrBusTimeout] alongside the last sampled
// data if the busy flag did not clear in time.
func (m *MAC) ReadPHY(phyAddr, reg uint8) (uint16, error) {
	if phyAddr > 31 || reg > uint8(MaxReg) {
		return 0, ethmac.ErrInvalidAddr
	}
	v := m.h.Version()
	err := m.waitIdle(v, "read", reg)
	if err == nil {
		m.h.Store(v.AddrOffset(), v.Command(phyAddr, reg, m.cr, false))
		err = m.waitIdle(v, "read", reg)
	}
	val := mac.Data(m.h.Load(v.DataOffset()))
	if err == nil {
		m.trace("smi:read", phyAddr, reg, val)
	}
	return val, err
}

// WritePHY writes a Clause 22 register of the PHY at phyAddr.
func (m *MAC) WritePHY(phyAddr, reg uint8, val uint16) error {
	if phyAddr > 31 || reg > uint8(MaxReg) {
		return ethmac.ErrInvalidAddr
	}
	v := m.h.Version()
	err := m.waitIdle(v, "write", reg)
	if err != nil {
		return err
	}
	m.h.Store(v.DataOffset(), uint32(val))
	m.h.Store(v.AddrOffset(), v.Command(phyAddr, reg, m.cr, true))
	err = m.waitIdle(v, "write", reg)
	if err == nil {
		m.trace("smi:write", phyAddr, reg, val)
	}
	return err
}

// waitIdle busy-polls the address register until the busy flag clears or the poll bound is reached.
func (m *MAC) waitIdle(v mac.Version, op string, reg uint8) error {
	off := v.AddrOffset()
	poll := internal.NewPoller(m.maxPolls, 0, 0)
	for poll.Next() {
		if !mac.Busy(m.h.Load(off)) {
			return nil
		}
	}
	m.timeouts++
	internal.LogAttrs(m.log, slog.LevelError, "smi:busy-timeout",
		slog.String("op", op),
		internal.SlogReg(reg),
		slog.Int("polls", poll.Polls()),
	)
	return ethmac.ErrBusTimeout
}

func (m *MAC) trace(msg string, phyAddr, reg uint8, val uint16) {
	if internal.LogEnabled(m.log, internal.LevelTrace) {
		internal.LogAttrs(m.log, internal.LevelTrace, msg,
			slog.Uint64("phy", uint64(phyAddr)),
			internal.SlogReg(reg),
			internal.SlogVal(val),
		)
	}
}

// MDIO returns a view of m satisfying [MDIOBus] for Clause 22 access to any PHY address.
// Clause 45 framing is not supported by the MAC engine and returns [ethmac.ErrUnsupported].
func (m *MAC) MDIO() MDIOBus { return macMDIO{m: m} }

type macMDIO struct{ m *MAC }

func (mm macMDIO) Read(phyAddr, devAddr uint8, regAddr uint16) (uint16, error) {
	if devAddr != 0 {
		return 0, ethmac.ErrUnsupported
	} else if regAddr > uint16(MaxReg) {
		return 0, ethmac.ErrInvalidAddr
	}
	return mm.m.ReadPHY(phyAddr, uint8(regAddr))
}

func (mm macMDIO) Write(phyAddr, devAddr uint8, regAddr, value uint16) error {
	if devAddr != 0 {
		return ethmac.ErrUnsupported
	} else if regAddr > uint16(MaxReg) {
		return ethmac.ErrInvalidAddr
	}
	return mm.m.WritePHY(phyAddr, uint8(regAddr), value)
}
