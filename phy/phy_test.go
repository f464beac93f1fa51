package phy

import (
	"testing"
	"time"

	"github.com/soypat/ethmac"
	"github.com/soypat/ethmac/internal/ethtest"
	"github.com/soypat/ethmac/mac"
	"github.com/soypat/ethmac/pins"
	"github.com/soypat/ethmac/smi"
)

// fastReset keeps reset polling from sleeping in tests.
var fastReset = ResetConfig{Polls: 8, Delay: -1}

func newBus(t *testing.T, phy *ethtest.PHY) *smi.MAC {
	t.Helper()
	sim := ethtest.NewMAC(mac.V1, phy)
	sim.BusyPolls = 2
	periph, err := mac.NewPeripheral(pins.ETH, sim, mac.V1)
	if err != nil {
		t.Fatal(err)
	}
	h, err := periph.Take()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(h.Release)
	var bus smi.MAC
	err = bus.Configure(h, smi.MACConfig{PHYAddr: phy.Addr})
	if err != nil {
		t.Fatal(err)
	}
	return &bus
}

type linkStater interface {
	Driver
	LinkState(smi.Bus) LinkState
}

func TestPollLink(t *testing.T) {
	drivers := map[string]linkStater{
		"lan8742a": &LAN8742A{ResetBound: fastReset},
		"generic":  &Generic{ResetBound: fastReset},
		// Advertising every mode lets other link modes resolve instead of failing negotiation.
		"generic-all": &Generic{ResetBound: fastReset, Advertise: ANARSpeedMask},
	}
	tests := []struct {
		name  string
		link  ethtest.Link
		want  bool
		state LinkState
	}{
		{name: "100-full", link: ethtest.Link100Full, want: true, state: LinkStateUp100Full},
		{name: "link-down", link: ethtest.LinkDown, state: LinkStateDown},
		{name: "half-duplex", link: ethtest.Link100Half, state: LinkStateUpOther},
		{name: "10mbps", link: ethtest.Link10Full, state: LinkStateUpOther},
		{name: "10-half", link: ethtest.Link{Up: true, SpeedMbps: 10}, state: LinkStateUpOther},
		{name: "negotiating", link: ethtest.LinkAutoNegot, state: LinkStateNegotiating},
	}
	for name, drv := range drivers {
		t.Run(name, func(t *testing.T) {
			phy := ethtest.NewPHY(0)
			phy.ResetReads = 2
			bus := newBus(t, phy)
			drv.Reset(bus)
			drv.Init(bus)
			for _, tc := range tests {
				phy.SetLink(tc.link)
				got := drv.PollLink(bus)
				if got != tc.want {
					t.Errorf("%s: PollLink=%v, want %v", tc.name, got, tc.want)
				}
				state := drv.LinkState(bus)
				if name == "generic" && tc.state == LinkStateUpOther {
					// Nothing in common with a 100M-F only advertisement.
					if state != LinkStateNegotiating {
						t.Errorf("%s: state %s, want negotiating", tc.name, state)
					}
				} else if state != tc.state {
					t.Errorf("%s: state %s, want %s", tc.name, state, tc.state)
				}
			}
		})
	}
}

func TestPollLinkLatchedDown(t *testing.T) {
	phy := ethtest.NewPHY(0)
	bus := newBus(t, phy)
	var drv LAN8742A
	phy.SetLink(ethtest.Link100Full)
	if !drv.PollLink(bus) {
		t.Fatal("link should be up")
	}
	// Link drops and recovers between polls: the latched failure is consumed
	// by the first BMSR read and the poll reports the current state.
	phy.SetLink(ethtest.LinkDown)
	phy.SetLink(ethtest.Link100Full)
	if !drv.PollLink(bus) {
		t.Error("recovered link reported down")
	}
}

func TestResetBounded(t *testing.T) {
	phy := ethtest.NewPHY(0)
	phy.StuckInReset = true
	bus := newBus(t, phy)
	drv := LAN8742A{ResetBound: ResetConfig{Polls: 5, Delay: time.Millisecond}}
	done := make(chan struct{})
	start := time.Now()
	go func() {
		drv.Reset(bus)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Reset did not return for a PHY stuck in reset")
	}
	if elapsed := time.Since(start); elapsed < 4*time.Millisecond {
		t.Errorf("Reset returned after %s, expected delays between polls", elapsed)
	}
	if phy.Resets() != 1 {
		t.Errorf("want 1 reset, got %d", phy.Resets())
	}
	// Driver proceeds with initialization after a reset timeout.
	drv.Init(bus)
	if BMCR(phy.Reg(0))&BMCRANEnable == 0 {
		t.Error("Init after reset timeout did not enable auto-negotiation")
	}
}

func TestSoftReset(t *testing.T) {
	phy := ethtest.NewPHY(0)
	phy.ResetReads = 3
	bus := newBus(t, phy)
	reads0, _ := phy.Counts()
	if !softReset(bus, fastReset, nil) {
		t.Fatal("reset did not complete")
	}
	reads, _ := phy.Counts()
	if reads-reads0 != 4 {
		t.Errorf("reset took %d reads, want 4", reads-reads0)
	}
	phy.ResetReads = fastReset.Polls
	if softReset(bus, fastReset, nil) {
		t.Error("reset completed beyond poll bound")
	}
	cfg := ResetConfig{}.withDefaults()
	if cfg.Polls != 50 || cfg.Delay != 10*time.Millisecond {
		t.Errorf("unexpected defaults %+v", cfg)
	}
}

func TestLAN8742AInit(t *testing.T) {
	phy := ethtest.NewPHY(0)
	bus := newBus(t, phy)
	smi.WriteMMD(bus, lan8742aMMDPCS, lan8742aWUCSR, 0xffff)
	bus.Write(RegBMCR, 0)
	var drv LAN8742A
	drv.Init(bus)
	if got := phy.MMD(lan8742aMMDPCS, lan8742aWUCSR); got != 0 {
		t.Errorf("WUCSR not cleared: %#x", got)
	}
	if BMCR(phy.Reg(0))&BMCRANEnable == 0 {
		t.Error("auto-negotiation not enabled")
	}
}

func TestGenericInitAdvertisement(t *testing.T) {
	phy := ethtest.NewPHY(0)
	bus := newBus(t, phy)
	var drv Generic
	drv.Init(bus)
	if got := ANAR(phy.Reg(4)); got != ANARSelector8023|ANAR100Full {
		t.Errorf("ANAR=%#x", got)
	}
	drv.Advertise = ANAR10Full
	drv.Init(bus)
	if got := ANAR(phy.Reg(4)); got != ANARSelector8023|ANAR10Full {
		t.Errorf("ANAR=%#x, selector must always be set", got)
	}
}

func TestClassify(t *testing.T) {
	up := BMSRLinkStatus | BMSRANComplete
	for _, tc := range []struct {
		bmsr BMSR
		mode LinkMode
		want LinkState
	}{
		{0, Link100FDX, LinkStateDown},
		{BMSRANComplete, Link100FDX, LinkStateDown},
		{BMSRLinkStatus, Link100FDX, LinkStateNegotiating},
		{up, LinkDown, LinkStateNegotiating},
		{up, Link100FDX, LinkStateUp100Full},
		{up, Link100HDX, LinkStateUpOther},
		{up, Link10FDX, LinkStateUpOther},
		{up, Link100T4, LinkStateUpOther},
	} {
		got := Classify(tc.bmsr, tc.mode)
		if got != tc.want {
			t.Errorf("Classify(%#x, %s)=%s, want %s", tc.bmsr, tc.mode, got, tc.want)
		}
		if got.Usable() != (tc.want == LinkStateUp100Full) {
			t.Errorf("%s usable=%v", got, got.Usable())
		}
	}
}

func TestSSRLinkMode(t *testing.T) {
	for ssr, want := range map[SSR]LinkMode{
		SSR10Half:                Link10HDX,
		SSR10Full:                Link10FDX,
		SSR100Half:               Link100HDX,
		SSR100Full | SSRAutoDone: Link100FDX,
		0:                        LinkDown,
		0b111 << 2:               LinkDown,
	} {
		if got := ssr.LinkMode(); got != want {
			t.Errorf("SSR %#x: got %s, want %s", ssr, got, want)
		}
	}
}

func TestDevice(t *testing.T) {
	phy := ethtest.NewPHY(0)
	bus := newBus(t, phy)
	dev := NewDevice(bus)
	id := dev.ID()
	if id.Model != 0x13 || id.Revision != 1 {
		t.Errorf("unexpected identifier %+v", id)
	}
	if err := dev.SetupForced(Link100FDX); err != nil {
		t.Fatal(err)
	}
	if ctl := dev.BasicControl(); ctl != BMCRSpeed100|BMCRFullDuplex {
		t.Errorf("forced BMCR=%#x", ctl)
	}
	if err := dev.SetupForced(Link100T4); err != ethmac.ErrUnsupported {
		t.Errorf("100BASE-T4: %v", err)
	}
	if err := dev.SetupForced(LinkDown); err != ethmac.ErrUnsupported {
		t.Errorf("LinkDown: %v", err)
	}
	dev.SetLoopback(true)
	if dev.BasicControl()&BMCRLoopback == 0 {
		t.Error("loopback not set")
	}
	dev.SetLoopback(false)
	if err := dev.EnableAutoNegotiation(true); err != nil {
		t.Fatal(err)
	}
	if _, ok := dev.NegotiatedLink(); ok {
		t.Error("negotiated with link down")
	}
	phy.SetLink(ethtest.Link100Half)
	dev.SetAdvertisement(ANARSpeedMask)
	mode, ok := dev.NegotiatedLink()
	if !ok || mode != Link100HDX {
		t.Errorf("negotiated %s %v", mode, ok)
	}
}

func TestScan(t *testing.T) {
	phy := ethtest.NewPHY(7)
	bus := newBus(t, phy)
	var addrs [32]uint8
	n, err := Scan(bus.MDIO(), addrs[:])
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || addrs[0] != 7 {
		t.Errorf("found %v", addrs[:n])
	}
	if _, err = Scan(bus.MDIO(), addrs[:31]); err != ethmac.ErrShortBuffer {
		t.Errorf("short buffer: %v", err)
	}
	phy.Addr = 40 // Unreachable.
	if _, err = Scan(bus.MDIO(), addrs[:]); err == nil {
		t.Error("found PHY on empty bus")
	}
}
