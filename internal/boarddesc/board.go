package boarddesc

import (
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"unicode"

	"github.com/alecthomas/participle/v2/lexer"
)

// NumRoles is the number of signal roles a board description may name.
const NumRoles = 9

// roles lists the role names accepted in descriptions, in the order used by the
// generated code, alongside the Go identifier fragment used for generated names.
var roles = [NumRoles]struct{ Name, Ident string }{
	{"REF_CLK", "RefClk"},
	{"MDIO", "MDIO"},
	{"MDC", "MDC"},
	{"CRS_DV", "CRSDV"},
	{"RXD0", "RXD0"},
	{"RXD1", "RXD1"},
	{"TXD0", "TXD0"},
	{"TXD1", "TXD1"},
	{"TX_EN", "TXEn"},
}

// maxAltFunc is the highest alternate function selector a 4-bit AFR field holds.
const maxAltFunc = 15

// ErrInvalid is wrapped by every semantic error returned by [File.Board].
var ErrInvalid = errors.New("invalid board description")

// Role is a signal role index into the canonical role order.
type Role uint8

// Name returns the role as written in board descriptions, i.e. "TX_EN".
func (r Role) Name() string { return roles[r].Name }

// Ident returns the role as used in generated Go identifiers, i.e. "TXEn".
func (r Role) Ident() string { return roles[r].Ident }

// Roles returns every role in canonical order.
func Roles() []Role {
	rs := make([]Role, NumRoles)
	for i := range rs {
		rs[i] = Role(i)
	}
	return rs
}

func lookupRole(name string) (Role, bool) {
	for i, r := range roles {
		if r.Name == name {
			return Role(i), true
		}
	}
	return 0, false
}

// Board is a validated board description.
type Board struct {
	Chip      string
	Instances []Instance
}

// Instance is a MAC peripheral and its bindings in description order.
type Instance struct {
	Name     string
	Bindings []Binding
}

// Binding is one validated (pin, role, alternate function) entry of an instance.
type Binding struct {
	Pin  Pin
	Role Role
	AF   uint8
	Pos  lexer.Position
}

// Pin is a GPIO pin parsed from a name such as "PG13".
type Pin struct {
	Port byte
	Num  uint8
}

// ParsePin parses pin names of the form P<port><num>, i.e. "PA1" or "PG14".
func ParsePin(s string) (Pin, error) {
	if len(s) < 3 || len(s) > 4 || s[0] != 'P' || s[1] < 'A' || s[1] > 'P' {
		return Pin{}, fmt.Errorf("bad pin name %q", s)
	}
	n, err := strconv.ParseUint(s[2:], 10, 8)
	if err != nil || n > 15 || (len(s) == 4 && s[2] == '0') {
		return Pin{}, fmt.Errorf("bad pin number in %q", s)
	}
	return Pin{Port: s[1], Num: uint8(n)}, nil
}

func (p Pin) String() string { return "P" + string(p.Port) + strconv.Itoa(int(p.Num)) }

// Code returns the pin encoding used by the pins package: port in the high nibble.
func (p Pin) Code() uint8 { return (p.Port-'A')<<4 | p.Num }

// Pins returns the distinct pins used by any instance, sorted by port and number.
func (b *Board) Pins() []Pin {
	var seen [256]bool
	for _, inst := range b.Instances {
		for _, bd := range inst.Bindings {
			seen[bd.Pin.Code()] = true
		}
	}
	var pins []Pin
	for code, ok := range seen {
		if ok {
			pins = append(pins, Pin{Port: 'A' + byte(code>>4), Num: uint8(code & 0xf)})
		}
	}
	return pins
}

// Missing returns the roles for which inst has no pin at all.
func (inst *Instance) Missing() []Role {
	var have [NumRoles]bool
	for _, bd := range inst.Bindings {
		have[bd.Role] = true
	}
	var missing []Role
	for r, ok := range have {
		if !ok {
			missing = append(missing, Role(r))
		}
	}
	return missing
}

// Board validates the syntax tree and returns the board it describes.
// Every (instance, pin, role) triple may appear at most once.
func (f *File) Board() (*Board, error) {
	if f.Chip == "" {
		return nil, posErr(f.Pos, "empty chip name")
	}
	board := &Board{Chip: f.Chip}
	seenInst := make(map[string]bool)
	for _, decl := range f.Instances {
		if !token.IsIdentifier(decl.Name) || !unicode.IsUpper(rune(decl.Name[0])) {
			return nil, posErr(decl.Pos, "instance name %q must be an exported Go identifier", decl.Name)
		} else if seenInst[decl.Name] {
			return nil, posErr(decl.Pos, "duplicate instance %q", decl.Name)
		}
		seenInst[decl.Name] = true
		inst := Instance{Name: decl.Name}
		type key struct {
			pin  Pin
			role Role
		}
		seen := make(map[key]lexer.Position)
		for _, e := range decl.Entries {
			pin, err := ParsePin(e.Pin)
			if err != nil {
				return nil, posErr(e.Pos, "%s", err)
			}
			role, ok := lookupRole(e.Role)
			if !ok {
				return nil, posErr(e.Pos, "unknown signal role %q", e.Role)
			}
			af, err := strconv.ParseUint(e.AF[len("AF"):], 10, 8)
			if err != nil || af > maxAltFunc {
				return nil, posErr(e.Pos, "alternate function %s out of range AF0..AF%d", e.AF, maxAltFunc)
			}
			k := key{pin: pin, role: role}
			if prev, dup := seen[k]; dup {
				return nil, posErr(e.Pos, "%s %s %s already declared at %s", decl.Name, pin, role.Name(), prev)
			}
			seen[k] = e.Pos
			inst.Bindings = append(inst.Bindings, Binding{Pin: pin, Role: role, AF: uint8(af), Pos: e.Pos})
		}
		board.Instances = append(board.Instances, inst)
	}
	if len(board.Instances) == 0 {
		return nil, posErr(f.Pos, "no instances declared")
	}
	return board, nil
}

func posErr(pos lexer.Position, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", pos, ErrInvalid, fmt.Sprintf(format, args...))
}
