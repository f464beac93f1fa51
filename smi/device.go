package smi

import (
	"log/slog"

	"github.com/soypat/ethmac"
	"github.com/soypat/ethmac/internal"
)

var _ Bus = (*Device)(nil)

// Device binds an [MDIOBus] to the Clause 22 registers of a single PHY so it
// can be used as a [Bus]. Failed transactions are counted and logged, reads
// then return 0xffff as an absent PHY would.
type Device struct {
	_      noCopy
	mdio   MDIOBus
	addr   uint8
	errors uint32
	log    *slog.Logger
}

// Configure binds d to the PHY at phyAddr on mdio.
func (d *Device) Configure(mdio MDIOBus, phyAddr uint8, log *slog.Logger) error {
	if mdio == nil {
		return ethmac.ErrInvalidConfig
	} else if phyAddr > 31 {
		return ethmac.ErrInvalidAddr
	}
	*d = Device{mdio: mdio, addr: phyAddr, log: log}
	return nil
}

// PHYAddr returns the address of the bound PHY.
func (d *Device) PHYAddr() uint8 { return d.addr }

// Errors returns the number of failed transactions.
func (d *Device) Errors() uint32 { return d.errors }

func (d *Device) Read(reg Reg) uint16 {
	reg.mustValid()
	val, err := d.mdio.Read(d.addr, 0, uint16(reg))
	if err != nil {
		d.fail("smi:read-failed", reg, err)
		return 0xffff
	}
	return val
}

func (d *Device) Write(reg Reg, val uint16) {
	reg.mustValid()
	err := d.mdio.Write(d.addr, 0, uint16(reg), val)
	if err != nil {
		d.fail("smi:write-failed", reg, err)
	}
}

func (d *Device) fail(msg string, reg Reg, err error) {
	d.errors++
	internal.LogAttrs(d.log, slog.LevelError, msg,
		slog.Uint64("phy", uint64(d.addr)),
		internal.SlogReg(uint8(reg)),
		slog.String("err", err.Error()),
	)
}
