package pingen

import (
	"bytes"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/soypat/ethmac/internal/boarddesc"
)

func loadBoard(t *testing.T, input string) *boarddesc.Board {
	t.Helper()
	p, err := boarddesc.NewParser()
	require.NoError(t, err)
	file, err := p.ParseString("test.board", input)
	require.NoError(t, err)
	board, err := file.Board()
	require.NoError(t, err)
	return board
}

// declNames returns the sorted top level declarations of src, methods as Recv.Name.
func declNames(t *testing.T, src []byte) []string {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, parser.ParseComments)
	require.NoError(t, err)
	var names []string
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			name := d.Name.Name
			if d.Recv != nil {
				name = recvName(d.Recv.List[0].Type) + "." + name
			}
			names = append(names, name)
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					names = append(names, s.Name.Name)
				case *ast.ValueSpec:
					for _, n := range s.Names {
						names = append(names, n.Name)
					}
				}
			}
		}
	}
	sort.Strings(names)
	return names
}

func recvName(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.StarExpr:
		return "*" + recvName(e.X)
	case *ast.Ident:
		return e.Name
	}
	return "?"
}

func TestGenerate(t *testing.T) {
	board := loadBoard(t, `chip "test"; instance ETH { PA1 REF_CLK AF11; PA2 MDIO AF11; PA2 MDC AF3; }`)
	var buf bytes.Buffer
	err := Generate(&buf, board, Config{Package: "stmpins", Command: "ethpingen generate test.board"})
	require.NoError(t, err)
	src := buf.Bytes()
	out := buf.String()

	require.True(t, strings.HasPrefix(out, "// Code generated by \"ethpingen generate test.board\"; DO NOT EDIT.\n"))
	require.Contains(t, out, "package stmpins\n")
	require.Contains(t, out, "ETH Instance = 1")
	require.Contains(t, out, "pinPA2 Pin = 0x02")
	require.Contains(t, out, "func (PA2) afETHMDC() (Pin, AltFunc) { return pinPA2, 3 }")
	require.Contains(t, out, "{Instance: ETH, Pin: pinPA2, Role: RoleMDC, AF: 3},")
	require.Contains(t, out, "b[RoleMDC] = bind(ETH, RoleMDC, s.MDC.afETHMDC)")
	require.Contains(t, out, "// The board description lists no pin for CRS_DV, RXD0, RXD1, TXD0, TXD1, TX_EN.")

	names := declNames(t, src)
	for _, want := range []string{
		"PA1", "PA1.Pin", "PA1.afETHRefClk",
		"PA2", "PA2.Pin", "PA2.afETHMDIO", "PA2.afETHMDC",
		"ETHRefClkPin", "ETHTXEnPin", "ETHRMII", "*ETHRMII.Bindings", "*ETHRMII.bindings",
		"table", "instanceNames",
	} {
		require.Contains(t, names, want)
	}
	// Capabilities not in the description must not exist.
	require.NotContains(t, names, "PA1.afETHMDIO")
	require.NotContains(t, names, "PA2.afETHRefClk")
}

func TestGenerateMultipleInstances(t *testing.T) {
	board := loadBoard(t, `chip "x"; instance ETH { PA1 REF_CLK AF11; } instance ETH2 { PA1 REF_CLK AF5; }`)
	src, err := Source(board, Config{})
	require.NoError(t, err)
	out := string(src)
	require.Contains(t, out, "package pins\n")
	require.Contains(t, out, "ETH2 Instance = 2")
	require.Contains(t, out, "func (PA1) afETH2RefClk() (Pin, AltFunc) { return pinPA1, 5 }")
	names := declNames(t, src)
	require.Contains(t, names, "ETH2RMII")
	require.Contains(t, names, "ETH2RefClkPin")
	// One type per pin regardless of how many instances use it.
	n := 0
	for _, name := range names {
		if name == "PA1" {
			n++
		}
	}
	require.Equal(t, 1, n)
}

// TestCheckedInTable verifies the generated file in package pins matches its description.
func TestCheckedInTable(t *testing.T) {
	board, err := boarddesc.Load("../../pins/stm32eth.board")
	require.NoError(t, err)
	src, err := Source(board, Config{Command: "ethpingen generate -o table_gen.go stm32eth.board"})
	require.NoError(t, err)
	checkedIn, err := os.ReadFile("../../pins/table_gen.go")
	require.NoError(t, err)
	require.Equal(t, string(src), string(checkedIn), "pins/table_gen.go is stale: run go generate ./pins")
}

func TestCheckedInTableDetectsAltFuncChange(t *testing.T) {
	desc, err := os.ReadFile("../../pins/stm32eth.board")
	require.NoError(t, err)
	edited := strings.Replace(string(desc), "PA1  REF_CLK AF11;", "PA1  REF_CLK AF5;", 1)
	require.NotEqual(t, string(desc), edited)
	src, err := Source(loadBoard(t, edited), Config{Command: "ethpingen generate -o table_gen.go stm32eth.board"})
	require.NoError(t, err)
	checkedIn, err := os.ReadFile("../../pins/table_gen.go")
	require.NoError(t, err)
	require.NotEqual(t, string(src), string(checkedIn))
	require.Contains(t, string(src), "func (PA1) afETHRefClk() (Pin, AltFunc) { return pinPA1, 5 }")
}
