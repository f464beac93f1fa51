// Package ethmac holds the definitions shared by the MAC, station management,
// PHY and pin capability packages.
package ethmac

//go:generate stringer -type=errGeneric -linecomment -output stringers.go .

type errGeneric uint8

// Generic errors common to MAC/PHY management.
const (
	_                   errGeneric = iota // non-initialized err
	ErrInvalidConfig                      // invalid configuration
	ErrInvalidAddr                        // invalid address
	ErrInstanceBusy                       // peripheral instance already taken
	ErrInstanceReleased                   // peripheral handle released
	ErrBusTimeout                         // management bus timeout
	ErrUnsupported                        // unsupported
	ErrShortBuffer                        // short buffer
)

func (err errGeneric) Error() string {
	return err.String()
}
