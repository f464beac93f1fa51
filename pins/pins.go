// Package pins is the capability registry binding physical pins to Ethernet
// MAC signal roles. The registry is generated from a board description at
// build time: a pin may be used for a role only if the generated code gives
// its type the matching method, so an unsupported binding does not compile.
package pins

//go:generate go run ../cmd/ethpingen generate -o table_gen.go stm32eth.board

import (
	"fmt"
	"strconv"
)

// Instance identifies one physical Ethernet MAC peripheral. The zero value is not a valid instance.
type Instance uint8

// String returns the instance name as written in the board description.
func (inst Instance) String() string {
	if int(inst) < len(instanceNames) && instanceNames[inst] != "" {
		return instanceNames[inst]
	}
	return "Instance(" + strconv.Itoa(int(inst)) + ")"
}

// Pin identifies a GPIO pin. The port index is held in the high nibble
// (0=A, 1=B, ...) and the pin number in the low nibble.
type Pin uint8

// MakePin returns the pin for a port letter and pin number, i.e. MakePin('C', 4) is PC4.
func MakePin(port byte, num uint8) Pin {
	if port < 'A' || port > 'P' || num > 15 {
		panic("invalid pin " + string(port) + strconv.Itoa(int(num)))
	}
	return Pin((port-'A')<<4 | num)
}

// Port returns the port letter of the pin.
func (p Pin) Port() byte { return 'A' + byte(p>>4) }

// Num returns the pin number within its port.
func (p Pin) Num() uint8 { return uint8(p & 0xf) }

func (p Pin) String() string {
	return "P" + string(p.Port()) + strconv.Itoa(int(p.Num()))
}

// AltFunc is the alternate-function selector written to the pin multiplexer.
type AltFunc uint8

func (af AltFunc) String() string { return "AF" + strconv.Itoa(int(af)) }

// Role is a signal carried by a pin on the RMII/SMI interface of the MAC.
type Role uint8

// Signal roles, in the order pin sets return their bindings.
const (
	RoleRefClk Role = iota // REF_CLK
	RoleMDIO               // MDIO
	RoleMDC                // MDC
	RoleCRSDV              // CRS_DV
	RoleRXD0               // RXD0
	RoleRXD1               // RXD1
	RoleTXD0               // TXD0
	RoleTXD1               // TXD1
	RoleTXEn               // TX_EN

	// NumRoles is the number of distinct signal roles.
	NumRoles = 9
)

var roleNames = [NumRoles]string{"REF_CLK", "MDIO", "MDC", "CRS_DV", "RXD0", "RXD1", "TXD0", "TXD1", "TX_EN"}

func (r Role) String() string {
	if r < NumRoles {
		return roleNames[r]
	}
	return "Role(" + strconv.Itoa(int(r)) + ")"
}

// ParseRole returns the role named as in the board description, i.e. "CRS_DV".
func ParseRole(s string) (Role, bool) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), true
		}
	}
	return 0, false
}

// Binding is one entry of the capability table.
type Binding struct {
	Instance Instance
	Pin      Pin
	Role     Role
	AF       AltFunc
}

func (b Binding) String() string {
	return b.Instance.String() + " " + b.Pin.String() + " " + b.Role.String() + " " + b.AF.String()
}

// All returns a copy of the capability table.
func All() []Binding {
	return append([]Binding(nil), table[:]...)
}

// Lookup returns the alternate function for an (instance, pin, role) triple.
// ok is false if the table does not list the triple.
func Lookup(inst Instance, pin Pin, role Role) (af AltFunc, ok bool) {
	for _, b := range table {
		if b.Instance == inst && b.Pin == pin && b.Role == role {
			return b.AF, true
		}
	}
	return 0, false
}

// GPIO is implemented by the pin multiplexer that performs the mode switch.
type GPIO interface {
	ConfigureAltFunc(pin Pin, af AltFunc) error
}

// PinSet is a complete assignment of pins to the roles of one instance.
// Only the generated pin sets, such as [ETHRMII], implement it, so every
// binding that reaches a [GPIO] comes from the capability table.
type PinSet interface {
	bindings() ([NumRoles]Binding, error)
}

// Configure hands every binding of set to gpio in role order. It stops on the first error.
func Configure(gpio GPIO, set PinSet) error {
	bindings, err := set.bindings()
	if err != nil {
		return err
	}
	for _, b := range bindings {
		err := gpio.ConfigureAltFunc(b.Pin, b.AF)
		if err != nil {
			return fmt.Errorf("pins: configuring %s: %w", b, err)
		}
	}
	return nil
}

// bind builds the binding of a pin to role. The pin is reported by the
// capability method itself so embedding a pin type cannot change it.
func bind(inst Instance, role Role, capability func() (Pin, AltFunc)) Binding {
	pin, af := capability()
	return Binding{Instance: inst, Pin: pin, Role: role, AF: af}
}

// Pinner is implemented by every generated pin type.
type Pinner interface {
	Pin() Pin
}

// MissingPinError is returned when a pin set leaves a role without a pin.
type MissingPinError struct {
	Instance Instance
	Role     Role
}

func (e *MissingPinError) Error() string {
	return "pins: " + e.Instance.String() + " " + e.Role.String() + " has no pin assigned"
}
