// Package pingen generates the pin capability registry of package pins
// from a validated board description.
package pingen

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"
	"text/template"

	"github.com/soypat/ethmac/internal/boarddesc"
)

// Config controls code generation.
type Config struct {
	// Package is the package clause of the generated file. Defaults to "pins".
	Package string
	// Command is recorded in the "Code generated" header.
	Command string
}

// Generate writes gofmt'd Go source for board to w.
func Generate(w io.Writer, board *boarddesc.Board, cfg Config) error {
	src, err := Source(board, cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}

// Source returns gofmt'd Go source for board.
func Source(board *boarddesc.Board, cfg Config) ([]byte, error) {
	if cfg.Package == "" {
		cfg.Package = "pins"
	}
	if cfg.Command == "" {
		cfg.Command = "ethpingen"
	}
	data := makeData(board, cfg)
	var buf bytes.Buffer
	err := fileTmpl.Execute(&buf, data)
	if err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("formatting generated source: %w", err)
	}
	return src, nil
}

type tmplData struct {
	Config
	Chip      string
	Instances []tmplInstance
	Pins      []tmplPin
	Table     []tmplBinding
}

type tmplInstance struct {
	Name    string
	Value   int
	Roles   []tmplRole
	Missing []string
}

type tmplRole struct {
	Name  string // REF_CLK
	Ident string // RefClk
	Iface string // ETHRefClkPin
	Meth  string // afETHRefClk
}

type tmplPin struct {
	Name    string
	Code    string
	Methods []tmplMethod
}

type tmplMethod struct {
	Name string
	AF   uint8
}

type tmplBinding struct {
	Instance string
	Pin      string
	Role     string
	AF       uint8
}

func makeData(board *boarddesc.Board, cfg Config) tmplData {
	data := tmplData{Config: cfg, Chip: board.Chip}
	methods := make(map[string][]tmplMethod)
	for i, inst := range board.Instances {
		ti := tmplInstance{Name: inst.Name, Value: i + 1}
		for _, r := range boarddesc.Roles() {
			ti.Roles = append(ti.Roles, tmplRole{
				Name:  r.Name(),
				Ident: r.Ident(),
				Iface: inst.Name + r.Ident() + "Pin",
				Meth:  methodName(inst.Name, r),
			})
		}
		for _, r := range inst.Missing() {
			ti.Missing = append(ti.Missing, r.Name())
		}
		data.Instances = append(data.Instances, ti)
		for _, bd := range inst.Bindings {
			pin := bd.Pin.String()
			methods[pin] = append(methods[pin], tmplMethod{Name: methodName(inst.Name, bd.Role), AF: bd.AF})
			data.Table = append(data.Table, tmplBinding{
				Instance: inst.Name,
				Pin:      pin,
				Role:     "Role" + bd.Role.Ident(),
				AF:       bd.AF,
			})
		}
	}
	for _, p := range board.Pins() {
		name := p.String()
		data.Pins = append(data.Pins, tmplPin{
			Name:    name,
			Code:    fmt.Sprintf("0x%02x", p.Code()),
			Methods: methods[name],
		})
	}
	return data
}

func methodName(instance string, r boarddesc.Role) string {
	return "af" + instance + r.Ident()
}

var fileTmpl = template.Must(template.New("pins").Funcs(template.FuncMap{
	"join": strings.Join,
}).Parse(`// Code generated by "{{.Command}}"; DO NOT EDIT.
// Chip: {{.Chip}}

package {{.Package}}

// Peripheral instances.
const (
{{- range .Instances}}
	{{.Name}} Instance = {{.Value}}
{{- end}}
)

var instanceNames = [...]string{
{{- range .Instances}}
	{{.Name}}: "{{.Name}}",
{{- end}}
}

const (
{{- range .Pins}}
	pin{{.Name}} Pin = {{.Code}}
{{- end}}
)
{{range $p := .Pins}}
// {{$p.Name}} is GPIO pin {{$p.Name}}.
type {{$p.Name}} struct{}

func ({{$p.Name}}) Pin() Pin { return pin{{$p.Name}} }
{{range $p.Methods}}
func ({{$p.Name}}) {{.Name}}() (Pin, AltFunc) { return pin{{$p.Name}}, {{.AF}} }
{{end -}}
{{end}}
{{- range $inst := .Instances}}
{{- range .Roles}}
// {{.Iface}} is implemented by pins that can carry {{.Name}} for {{$inst.Name}}.
type {{.Iface}} interface {
	Pinner
	{{.Meth}}() (Pin, AltFunc)
}
{{end}}
// {{.Name}}RMII is the set of pins connecting {{.Name}} to an RMII PHY.
{{- if .Missing}}
// The board description lists no pin for {{join .Missing ", "}}.
{{- end}}
type {{.Name}}RMII struct {
{{- range .Roles}}
	{{.Ident}} {{.Iface}}
{{- end}}
}

// Bindings returns the bindings of the pin set in role order.
func (s *{{.Name}}RMII) Bindings() ([NumRoles]Binding, error) { return s.bindings() }

func (s *{{.Name}}RMII) bindings() (b [NumRoles]Binding, err error) {
{{- range .Roles}}
	if s.{{.Ident}} == nil {
		return b, &MissingPinError{Instance: {{$inst.Name}}, Role: Role{{.Ident}}}
	}
	b[Role{{.Ident}}] = bind({{$inst.Name}}, Role{{.Ident}}, s.{{.Ident}}.{{.Meth}})
{{- end}}
	return b, nil
}
{{end}}
var table = [...]Binding{
{{- range .Table}}
	{Instance: {{.Instance}}, Pin: pin{{.Pin}}, Role: {{.Role}}, AF: {{.AF}}},
{{- end}}
}
`))
