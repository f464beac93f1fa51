package boarddesc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const sample = `# Two instances sharing a pin.
chip "test-chip";
instance ETH {
	PA1 REF_CLK AF11;
	PA2 MDIO    AF11; # Trailing comment.
	PG13 TXD0   AF11;
}
instance ETH2 {
	PA1 REF_CLK AF5;
	PB10 TX_EN  AF5;
}
`

func parse(t *testing.T, input string) (*Board, error) {
	t.Helper()
	p, err := NewParser()
	require.NoError(t, err)
	file, err := p.ParseString("test.board", input)
	if err != nil {
		return nil, err
	}
	return file.Board()
}

func TestParseSample(t *testing.T) {
	board, err := parse(t, sample)
	require.NoError(t, err)
	require.Equal(t, "test-chip", board.Chip)
	require.Len(t, board.Instances, 2)

	eth := board.Instances[0]
	require.Equal(t, "ETH", eth.Name)
	require.Len(t, eth.Bindings, 3)
	require.Equal(t, Pin{Port: 'G', Num: 13}, eth.Bindings[2].Pin)
	require.Equal(t, "TXD0", eth.Bindings[2].Role.Name())
	require.Equal(t, uint8(11), eth.Bindings[2].AF)
	require.Equal(t, 6, eth.Bindings[2].Pos.Line)

	eth2 := board.Instances[1]
	require.Equal(t, uint8(5), eth2.Bindings[0].AF)
	require.Equal(t, "TXEn", eth2.Bindings[1].Role.Ident())

	var pins []string
	for _, p := range board.Pins() {
		pins = append(pins, p.String())
	}
	require.Equal(t, []string{"PA1", "PA2", "PB10", "PG13"}, pins)

	var missing []string
	for _, r := range eth.Missing() {
		missing = append(missing, r.Name())
	}
	require.Equal(t, []string{"MDC", "CRS_DV", "RXD0", "RXD1", "TXD1", "TX_EN"}, missing)
}

func TestLoadBoardFile(t *testing.T) {
	board, err := Load("../../pins/stm32eth.board")
	require.NoError(t, err)
	require.Equal(t, "stm32-eth", board.Chip)
	require.Len(t, board.Instances, 1)
	require.Empty(t, board.Instances[0].Missing())
	require.Len(t, board.Instances[0].Bindings, 13)
}

func TestBoardErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		// semantic errors wrap ErrInvalid, syntax errors do not.
		semantic bool
	}{
		{"missing chip", `instance ETH { PA1 REF_CLK AF11; }`, false},
		{"missing semicolon", `chip "x"; instance ETH { PA1 REF_CLK AF11 }`, false},
		{"bad alternate function", `chip "x"; instance ETH { PA1 REF_CLK 11; }`, false},
		{"empty chip", `chip ""; instance ETH { PA1 REF_CLK AF11; }`, true},
		{"no instances", `chip "x";`, true},
		{"unexported instance", `chip "x"; instance eth { PA1 REF_CLK AF11; }`, true},
		{"duplicate instance", `chip "x"; instance ETH { } instance ETH { }`, true},
		{"unknown role", `chip "x"; instance ETH { PA1 CLOCK AF11; }`, true},
		{"bad port", `chip "x"; instance ETH { PZ1 REF_CLK AF11; }`, true},
		{"bad pin number", `chip "x"; instance ETH { PA16 REF_CLK AF11; }`, true},
		{"leading zero", `chip "x"; instance ETH { PA01 REF_CLK AF11; }`, true},
		{"alternate function range", `chip "x"; instance ETH { PA1 REF_CLK AF16; }`, true},
		{"duplicate triple", `chip "x"; instance ETH { PA1 REF_CLK AF11; PA1 REF_CLK AF0; }`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			require.Error(t, err)
			require.Equal(t, tt.semantic, errors.Is(err, ErrInvalid), "error: %v", err)
		})
	}
}

func TestSamePinDifferentRoles(t *testing.T) {
	// A pin may carry several roles of one instance; only the full triple must be unique.
	board, err := parse(t, `chip "x"; instance ETH { PA1 REF_CLK AF11; PA1 MDIO AF11; }`)
	require.NoError(t, err)
	require.Len(t, board.Instances[0].Bindings, 2)
	require.Len(t, board.Pins(), 1)
}

func TestParsePin(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want Pin
		code uint8
	}{
		{"PA0", Pin{'A', 0}, 0x00},
		{"PA15", Pin{'A', 15}, 0x0f},
		{"PG13", Pin{'G', 13}, 0x6d},
		{"PP7", Pin{'P', 7}, 0xf7},
	} {
		got, err := ParsePin(tc.in)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
		require.Equal(t, tc.code, got.Code())
		require.Equal(t, tc.in, got.String())
	}
	for _, bad := range []string{"", "A1", "PA", "Pa1", "PA-1", "PA123", "QA1"} {
		_, err := ParsePin(bad)
		require.Error(t, err, bad)
	}
}
