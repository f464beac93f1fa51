package phy

import (
	"errors"

	"github.com/soypat/ethmac"
	"github.com/soypat/ethmac/smi"
)

// Device gives typed access to the standard Clause 22 registers of a PHY.
type Device struct {
	bus smi.Bus
}

// NewDevice returns a Device reading and writing registers through bus.
func NewDevice(bus smi.Bus) *Device {
	return &Device{bus: bus}
}

// BasicControl reads the Basic Mode Control Register (BMCR, register 0).
func (d *Device) BasicControl() BMCR { return BMCR(d.bus.Read(RegBMCR)) }

// BasicStatus reads the Basic Mode Status Register (BMSR, register 1).
// The link status bit is latched low: a read returns failures since the previous read.
func (d *Device) BasicStatus() BMSR { return BMSR(d.bus.Read(RegBMSR)) }

// Identifier is the content of the PHY identifier registers 2 and 3.
type Identifier struct {
	// OUI holds bits 3 through 24 of the organizationally unique identifier.
	OUI      uint32
	Model    uint8
	Revision uint8
}

// ID reads the PHY identifier registers.
func (d *Device) ID() Identifier {
	id1 := d.bus.Read(RegID1)
	id2 := d.bus.Read(RegID2)
	return Identifier{
		OUI:      uint32(id1)<<6 | uint32(id2>>10),
		Model:    uint8(id2>>4) & 0x3f,
		Revision: uint8(id2 & 0xf),
	}
}

// Advertisement reads the Auto-Negotiation Advertisement Register.
func (d *Device) Advertisement() ANAR { return ANAR(d.bus.Read(RegANAR)) }

// LinkPartnerAdvertisement reads what the link partner is advertising (ANLPAR).
func (d *Device) LinkPartnerAdvertisement() ANAR { return ANAR(d.bus.Read(RegANLPAR)) }

// SetAdvertisement writes the Auto-Negotiation Advertisement Register.
// Does NOT restart auto-negotiation; call RestartAutoNeg after if needed.
func (d *Device) SetAdvertisement(ad ANAR) { d.bus.Write(RegANAR, uint16(ad|ANARSelector8023)) }

// RestartAutoNeg enables auto-negotiation and restarts it.
func (d *Device) RestartAutoNeg() {
	ctl := d.BasicControl()
	d.bus.Write(RegBMCR, uint16(ctl|BMCRANEnable|BMCRANRestart))
}

// EnableAutoNegotiation enables or disables auto-negotiation and verifies the change took effect.
func (d *Device) EnableAutoNegotiation(b bool) error {
	ctl := d.BasicControl()
	if b {
		ctl |= BMCRANEnable
	} else {
		ctl &^= BMCRANEnable
	}
	d.bus.Write(RegBMCR, uint16(ctl))
	if (d.BasicControl()&BMCRANEnable != 0) != b {
		return errors.New("phy: auto-negotiation enable bit did not stick")
	}
	return nil
}

// SetupForced disables auto-negotiation and forces a 10 or 100Mbps link mode.
//
// Inspired by drivers/net/phy/phy_device.c
func (d *Device) SetupForced(mode LinkMode) error {
	var ctl BMCR
	switch mode.SpeedMbps() {
	case 100:
		ctl |= BMCRSpeed100
	case 10:
		// No speed bits = 10Mbps.
	default:
		return ethmac.ErrUnsupported
	}
	if mode == Link100T4 {
		return ethmac.ErrUnsupported
	}
	if mode.IsFullDuplex() {
		ctl |= BMCRFullDuplex
	}
	d.bus.Write(RegBMCR, uint16(ctl))
	return nil
}

// SetLoopback enables or disables PHY near-end loopback mode (BMCR bit 14).
// In loopback mode, TX data is routed back to RX internally through PCS/PMA/PMD.
func (d *Device) SetLoopback(enable bool) {
	ctl := d.BasicControl()
	if enable {
		ctl |= BMCRLoopback
	} else {
		ctl &^= BMCRLoopback
	}
	d.bus.Write(RegBMCR, uint16(ctl))
}

// NegotiatedLink returns the auto-negotiated link mode resolved from ANAR and ANLPAR.
// ok is false if auto-negotiation has not completed.
func (d *Device) NegotiatedLink() (mode LinkMode, ok bool) {
	if !d.BasicStatus().AutoNegotiationComplete() {
		return LinkDown, false
	}
	common := d.Advertisement() & d.LinkPartnerAdvertisement()
	return common.LinkMode(), true
}

// Scan finds the addresses of Clause 22 PHYs on mdio and writes them to dst,
// which must have room for all 32 addresses. It returns an error only if no PHY answers.
func Scan(mdio smi.MDIOBus, dst []uint8) (n int, err error) {
	if len(dst) < 32 {
		return 0, ethmac.ErrShortBuffer
	}
	for addr := uint8(0); addr <= 31; addr++ {
		val, err := mdio.Read(addr, 0, uint16(RegBMSR))
		if err != nil {
			continue
		}
		// An absent PHY leaves MDIO pulled up; a shorted line reads all zeros.
		if val != 0xffff && val != 0x0000 {
			dst[n] = addr
			n++
		}
	}
	if n == 0 {
		err = errors.New("phy: no PHY found")
	}
	return n, err
}
