package main

import (
	"context"
	"errors"
	"log"

	"github.com/chazu/polyhedrator/pkg/engine"
	"github.com/chazu/polyhedrator/pkg/export"
	"github.com/chazu/polyhedrator/pkg/notation"
	"github.com/chazu/polyhedrator/pkg/polyhedron"
	"github.com/chazu/polyhedrator/pkg/render"
	"github.com/chazu/polyhedrator/pkg/seed"
)

// App is the Wails backend. It exposes methods to the frontend via bindings.
type App struct {
	ctx    context.Context
	engine *engine.Engine
}

// MeshData is the JSON-serializable mesh format sent to the frontend.
// Vertex attributes are flat arrays in the fixed shader order: position,
// texture coordinate, normal.
type MeshData struct {
	Vertices  []float32 `json:"vertices"`
	TexCoords []float32 `json:"texCoords"`
	Normals   []float32 `json:"normals"`
	Indices   []uint32  `json:"indices"`
	Name      string    `json:"name"`
}

// CountsData reports the V/E/F counts shown in the UI.
type CountsData struct {
	Vertices int `json:"vertices"`
	Edges    int `json:"edges"`
	Faces    int `json:"faces"`
}

// GenerateResult is the full result of evaluating one notation string.
// ErrorPosition is the byte offset of the failing token in the notation,
// or -1 when there is no error or no position applies.
type GenerateResult struct {
	Mesh          *MeshData  `json:"mesh"`
	Counts        CountsData `json:"counts"`
	Error         string     `json:"error"`
	ErrorPosition int        `json:"errorPosition"`
}

// EvalErrorData is a JSON-serializable eval error for the frontend.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the script evaluation result returned to the frontend.
type EvalResult struct {
	Meshes []MeshData      `json:"meshes"`
	Errors []EvalErrorData `json:"errors"`
}

// NewApp creates a new App with a scripting engine.
func NewApp() *App {
	return &App{
		engine: engine.NewEngine(),
	}
}

// startup is called by Wails on app startup. The context is saved
// so we can call Wails runtime methods later if needed.
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
}

// Seeds returns the selectable seed solid names in canonical order.
func (a *App) Seeds() []string {
	var names []string
	for _, s := range seed.All() {
		names = append(names, s.String())
	}
	return names
}

// Generate evaluates an operator-only notation string on the named seed and
// returns the render mesh. This is the binding behind the seed radio
// buttons plus notation field.
func (a *App) Generate(seedName, ops string) GenerateResult {
	solid, err := seed.Parse(seedName)
	if err != nil {
		return errorResult(err)
	}
	p, err := notation.GenerateWithSeed(solid, ops, notation.DefaultEdgeLength)
	if err != nil {
		return errorResult(err)
	}
	return meshResult(p)
}

// GenerateNotation evaluates full notation with a trailing seed letter,
// e.g. "dk4C".
func (a *App) GenerateNotation(s string) GenerateResult {
	p, err := notation.Generate(s, notation.DefaultEdgeLength)
	if err != nil {
		return errorResult(err)
	}
	return meshResult(p)
}

// EvaluateScript runs Lisp source through the scripting engine and returns
// the rendered meshes.
func (a *App) EvaluateScript(source string) EvalResult {
	result := EvalResult{
		Meshes: []MeshData{},
		Errors: []EvalErrorData{},
	}

	polyhedra, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, superseded).
		log.Printf("EvaluateScript fatal error: %v", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	for _, e := range evalErrs {
		result.Errors = append(result.Errors, EvalErrorData{
			Line:    e.Line,
			Col:     e.Col,
			Message: e.Message,
		})
	}
	if len(evalErrs) > 0 {
		return result
	}

	for _, np := range polyhedra {
		m, err := render.Build(np.Polyhedron)
		if err != nil {
			log.Printf("render %q: %v", np.Name, err)
			result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
			return result
		}
		result.Meshes = append(result.Meshes, MeshData{
			Vertices:  m.Vertices,
			TexCoords: m.TexCoords,
			Normals:   m.Normals,
			Indices:   m.Indices,
			Name:      np.Name,
		})
	}

	return result
}

// ExportSTL evaluates a notation string and writes the result to path as an
// STL file. Returns an empty string on success, the error text otherwise.
func (a *App) ExportSTL(s, path string) string {
	p, err := notation.Generate(s, notation.DefaultEdgeLength)
	if err != nil {
		return err.Error()
	}
	if err := export.SaveSTL(path, p); err != nil {
		return err.Error()
	}
	return ""
}

// ExportGLB evaluates a notation string and writes the render mesh to path
// as a GLB file. Returns an empty string on success, the error text
// otherwise.
func (a *App) ExportGLB(s, path string) string {
	p, err := notation.Generate(s, notation.DefaultEdgeLength)
	if err != nil {
		return err.Error()
	}
	m, err := render.Build(p)
	if err != nil {
		return err.Error()
	}
	if err := export.SaveGLB(path, m); err != nil {
		return err.Error()
	}
	return ""
}

func meshResult(p *polyhedron.Polyhedron) GenerateResult {
	m, err := render.Build(p)
	if err != nil {
		return errorResult(err)
	}
	return GenerateResult{
		Mesh: &MeshData{
			Vertices:  m.Vertices,
			TexCoords: m.TexCoords,
			Normals:   m.Normals,
			Indices:   m.Indices,
			Name:      "polyhedron",
		},
		Counts: CountsData{
			Vertices: p.VertexCount(),
			Edges:    p.EdgeCount(),
			Faces:    p.FaceCount(),
		},
		ErrorPosition: -1,
	}
}

func errorResult(err error) GenerateResult {
	return GenerateResult{
		Error:         err.Error(),
		ErrorPosition: errorPosition(err),
	}
}

// errorPosition digs the failing byte offset out of a notation error, or
// returns -1 when no position applies.
func errorPosition(err error) int {
	var chainErr *notation.ChainError
	if errors.As(err, &chainErr) {
		return chainErr.Position
	}
	var opErr *notation.UnknownOperatorError
	if errors.As(err, &opErr) {
		return opErr.Position
	}
	var synErr *notation.SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Position
	}
	return -1
}
