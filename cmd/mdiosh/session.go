package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/soypat/ethmac"
	"github.com/soypat/ethmac/internal/ethtest"
	"github.com/soypat/ethmac/mac"
	"github.com/soypat/ethmac/phy"
	"github.com/soypat/ethmac/pins"
	"github.com/soypat/ethmac/smi"
)

type config struct {
	PHYAddr uint8
	Version mac.Version
	Driver  string
	Link    string
	Logger  *slog.Logger
}

// session is a management bus bound to a simulated MAC and PHY.
type session struct {
	phy    *ethtest.PHY
	regs   *ethtest.MAC
	handle *mac.Handle
	bus    *smi.MAC
	driver linkDriver
	dev    *phy.Device
}

type linkDriver interface {
	phy.Driver
	LinkState(smi.Bus) phy.LinkState
}

func newSession(cfg config) (*session, error) {
	link, err := parseLink(cfg.Link)
	if err != nil {
		return nil, err
	}
	var driver linkDriver
	switch cfg.Driver {
	case "", "lan8742a":
		driver = &phy.LAN8742A{Logger: cfg.Logger}
	case "generic":
		driver = &phy.Generic{Logger: cfg.Logger}
	default:
		return nil, fmt.Errorf("unknown driver %q", cfg.Driver)
	}
	sim := ethtest.NewPHY(cfg.PHYAddr)
	sim.ResetReads = 3
	sim.SetLink(link)
	regs := ethtest.NewMAC(cfg.Version, sim)
	regs.BusyPolls = 4
	periph, err := mac.NewPeripheral(pins.ETH, regs, cfg.Version)
	if err != nil {
		return nil, err
	}
	h, err := periph.Take()
	if err != nil {
		return nil, err
	}
	bus := new(smi.MAC)
	err = bus.Configure(h, smi.MACConfig{PHYAddr: cfg.PHYAddr, Logger: cfg.Logger})
	if err != nil {
		h.Release()
		return nil, err
	}
	return &session{
		phy:    sim,
		regs:   regs,
		handle: h,
		bus:    bus,
		driver: driver,
		dev:    phy.NewDevice(bus),
	}, nil
}

func (s *session) close() { s.handle.Release() }

var regNames = map[string]smi.Reg{
	"bmcr":   phy.RegBMCR,
	"bmsr":   phy.RegBMSR,
	"id1":    phy.RegID1,
	"id2":    phy.RegID2,
	"anar":   phy.RegANAR,
	"anlpar": phy.RegANLPAR,
	"aner":   phy.RegANER,
	"smr":    phy.RegLAN8742ASMR,
	"isfr":   phy.RegLAN8742AISFR,
	"imr":    phy.RegLAN8742AIMR,
	"ssr":    phy.RegLAN8742ASSR,
}

// parseReg accepts a register name or a number in Go syntax (31, 0x1f).
func parseReg(s string) (smi.Reg, error) {
	if r, ok := regNames[strings.ToLower(s)]; ok {
		return r, nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil || n > uint64(smi.MaxReg) {
		return 0, fmt.Errorf("register %q: %w", s, ethmac.ErrInvalidAddr)
	}
	return smi.Reg(n), nil
}

func parseU16(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("bad 16-bit value %q", s)
	}
	return uint16(n), nil
}

func parseLink(s string) (ethtest.Link, error) {
	switch strings.ToLower(s) {
	case "", "down":
		return ethtest.LinkDown, nil
	case "100full":
		return ethtest.Link100Full, nil
	case "100half":
		return ethtest.Link100Half, nil
	case "10full":
		return ethtest.Link10Full, nil
	case "10half":
		return ethtest.Link{Up: true, SpeedMbps: 10}, nil
	case "negotiating":
		return ethtest.LinkAutoNegot, nil
	}
	return ethtest.Link{}, fmt.Errorf("unknown link condition %q (down, 100full, 100half, 10full, 10half, negotiating)", s)
}

var errArgs = errors.New("wrong number of arguments")

func (s *session) read(w io.Writer, args []string) error {
	if len(args) != 1 {
		return errArgs
	}
	reg, err := parseReg(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "reg %2d: 0x%04x\n", reg, s.bus.Read(reg))
	return nil
}

func (s *session) write(w io.Writer, args []string) error {
	if len(args) != 2 {
		return errArgs
	}
	reg, err := parseReg(args[0])
	if err != nil {
		return err
	}
	val, err := parseU16(args[1])
	if err != nil {
		return err
	}
	s.bus.Write(reg, val)
	return nil
}

func (s *session) dump(w io.Writer) {
	for r := smi.Reg(0); r <= smi.MaxReg; r++ {
		fmt.Fprintf(w, "%2d: 0x%04x", r, s.bus.Read(r))
		if r%4 == 3 {
			fmt.Fprintln(w)
		} else {
			fmt.Fprint(w, "  ")
		}
	}
}

func (s *session) mmd(w io.Writer, args []string) error {
	if len(args) != 2 && len(args) != 3 {
		return errArgs
	}
	dev, err := strconv.ParseUint(args[0], 0, 5)
	if err != nil {
		return fmt.Errorf("bad MMD device %q", args[0])
	}
	addr, err := parseU16(args[1])
	if err != nil {
		return err
	}
	if len(args) == 3 {
		val, err := parseU16(args[2])
		if err != nil {
			return err
		}
		smi.WriteMMD(s.bus, uint8(dev), addr, val)
		return nil
	}
	fmt.Fprintf(w, "mmd %d.0x%04x: 0x%04x\n", dev, addr, smi.ReadMMD(s.bus, uint8(dev), addr))
	return nil
}

func (s *session) reset(w io.Writer) {
	s.driver.Reset(s.bus)
	fmt.Fprintf(w, "reset done, BMCR=0x%04x\n", uint16(s.dev.BasicControl()))
}

func (s *session) init(w io.Writer) {
	s.driver.Init(s.bus)
	fmt.Fprintf(w, "auto-negotiation started, ANAR=0x%04x\n", uint16(s.dev.Advertisement()))
}

func (s *session) link(w io.Writer) {
	state := s.driver.LinkState(s.bus)
	fmt.Fprintf(w, "link %s usable=%v\n", state, state.Usable())
}

func (s *session) id(w io.Writer) {
	id := s.dev.ID()
	fmt.Fprintf(w, "OUI 0x%04x model 0x%02x revision %d\n", id.OUI, id.Model, id.Revision)
}

func (s *session) scan(w io.Writer) error {
	var addrs [32]uint8
	n, err := phy.Scan(s.bus.MDIO(), addrs[:])
	if err != nil {
		return err
	}
	for _, addr := range addrs[:n] {
		fmt.Fprintf(w, "PHY at address %d\n", addr)
	}
	return nil
}

func (s *session) setLink(args []string) error {
	if len(args) != 1 {
		return errArgs
	}
	link, err := parseLink(args[0])
	if err != nil {
		return err
	}
	s.phy.SetLink(link)
	return nil
}

func (s *session) stats(w io.Writer) {
	reads, writes := s.phy.Counts()
	fmt.Fprintf(w, "bus %s PHY %d: %d transactions, %d timeouts\n", s.handle.Version(), s.bus.PHYAddr(), s.regs.Commands(), s.bus.Timeouts())
	fmt.Fprintf(w, "phy: %d reads, %d writes, %d resets\n", reads, writes, s.phy.Resets())
}
