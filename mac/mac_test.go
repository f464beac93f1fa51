package mac_test

import (
	"testing"

	"github.com/soypat/ethmac"
	"github.com/soypat/ethmac/internal/ethtest"
	"github.com/soypat/ethmac/mac"
	"github.com/soypat/ethmac/pins"
)

func TestTakeRelease(t *testing.T) {
	periph, err := mac.NewPeripheral(pins.ETH, ethtest.NewMAC(mac.V1, nil), mac.V1)
	if err != nil {
		t.Fatal(err)
	}
	h, err := periph.Take()
	if err != nil {
		t.Fatal(err)
	}
	if h.Instance() != pins.ETH || h.Version() != mac.V1 {
		t.Errorf("handle bound to %s %s", h.Instance(), h.Version())
	}
	_, err = periph.Take()
	if err != ethmac.ErrInstanceBusy {
		t.Fatalf("second Take: want ErrInstanceBusy, got %v", err)
	}
	h.Release()
	h2, err := periph.Take()
	if err != nil {
		t.Fatalf("Take after Release: %v", err)
	}
	defer h2.Release()
	h2.Store(0x100, 0xdead)
	if got := h2.Load(0x100); got != 0xdead {
		t.Errorf("register block load got %#x", got)
	}
}

func TestTakeSharedInstance(t *testing.T) {
	regs := ethtest.NewMAC(mac.V1, nil)
	p1, err := mac.NewPeripheral(pins.ETH, regs, mac.V1)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := mac.NewPeripheral(pins.ETH, regs, mac.V1)
	if err != nil {
		t.Fatal(err)
	}
	h1, err := p1.Take()
	if err != nil {
		t.Fatal(err)
	}
	if _, err = p2.Take(); err != ethmac.ErrInstanceBusy {
		t.Fatalf("Take through second descriptor: want ErrInstanceBusy, got %v", err)
	}
	h1.Release()
	h2, err := p2.Take()
	if err != nil {
		t.Fatalf("Take after Release: %v", err)
	}
	if _, err = p1.Take(); err != ethmac.ErrInstanceBusy {
		t.Fatalf("Take through first descriptor: want ErrInstanceBusy, got %v", err)
	}
	h2.Release()
}

func TestUseAfterRelease(t *testing.T) {
	periph, err := mac.NewPeripheral(pins.ETH, ethtest.NewMAC(mac.V2, nil), mac.V2)
	if err != nil {
		t.Fatal(err)
	}
	h, _ := periph.Take()
	h.Release()
	defer func() {
		if r := recover(); r != ethmac.ErrInstanceReleased {
			t.Errorf("want panic ErrInstanceReleased, got %v", r)
		}
	}()
	h.Load(0)
}

func TestNewPeripheralInvalid(t *testing.T) {
	regs := ethtest.NewMAC(mac.V1, nil)
	for _, tc := range []struct {
		name string
		inst pins.Instance
		regs mac.RegisterBlock
		v    mac.Version
	}{
		{"zero-instance", 0, regs, mac.V1},
		{"nil-regs", pins.ETH, nil, mac.V1},
		{"zero-version", pins.ETH, regs, 0},
		{"bad-version", pins.ETH, regs, 3},
	} {
		_, err := mac.NewPeripheral(tc.inst, tc.regs, tc.v)
		if err != ethmac.ErrInvalidConfig {
			t.Errorf("%s: want ErrInvalidConfig, got %v", tc.name, err)
		}
	}
}

func TestCommand(t *testing.T) {
	for _, tc := range []struct {
		v     mac.Version
		phy   uint8
		reg   uint8
		cr    mac.ClockRange
		write bool
		want  uint32
	}{
		// PA=1 at 15:11, MR=31 at 10:6, CR=0b100 at 4:2, MB.
		{mac.V1, 1, 31, 0b100, false, 1<<11 | 31<<6 | 0b100<<2 | 1},
		{mac.V1, 0x1f, 0, 0, true, 0x1f<<11 | 1<<1 | 1},
		// PA at 25:21, RDA at 20:16, CR at 11:8, GOC at 3:2.
		{mac.V2, 1, 31, 0b0100, false, 1<<21 | 31<<16 | 0b0100<<8 | 0b11<<2 | 1},
		{mac.V2, 3, 4, 0, true, 3<<21 | 4<<16 | 0b01<<2 | 1},
		// Fields are masked to width.
		{mac.V1, 0x21, 0x22, 0b1111, false, 1<<11 | 2<<6 | 0b111<<2 | 1},
	} {
		got := tc.v.Command(tc.phy, tc.reg, tc.cr, tc.write)
		if got != tc.want {
			t.Errorf("%s Command(%d, %d, %#b, %v)=%#x, want %#x", tc.v, tc.phy, tc.reg, tc.cr, tc.write, got, tc.want)
		}
		if !mac.Busy(got) {
			t.Errorf("%s command lacks busy flag", tc.v)
		}
	}
	if mac.V1.AddrOffset() != 0x10 || mac.V1.DataOffset() != 0x14 {
		t.Error("bad V1 offsets")
	}
	if mac.V2.AddrOffset() != 0x200 || mac.V2.DataOffset() != 0x204 {
		t.Error("bad V2 offsets")
	}
	if mac.Data(0xffff_1234) != 0x1234 {
		t.Error("Data does not mask upper bits")
	}
}

func TestClockRangeFor(t *testing.T) {
	const MHz = 1_000_000
	for _, tc := range []struct {
		hclk uint32
		want mac.ClockRange
		err  error
	}{
		{16 * MHz, 0, ethmac.ErrUnsupported},
		{25 * MHz, 0b010, nil},
		{48 * MHz, 0b011, nil},
		{84 * MHz, 0b000, nil},
		{100 * MHz, 0b001, nil},
		{168 * MHz, 0b100, nil},
		{216 * MHz, 0b100, nil},
		{240 * MHz, 0b100, nil},
		{300 * MHz, 0b101, nil},
		{480 * MHz, 0, ethmac.ErrUnsupported},
	} {
		got, err := mac.ClockRangeFor(tc.hclk)
		if err != tc.err || got != tc.want {
			t.Errorf("ClockRangeFor(%dMHz)=(%#b, %v), want (%#b, %v)", tc.hclk/MHz, got, err, tc.want, tc.err)
		}
	}
}
