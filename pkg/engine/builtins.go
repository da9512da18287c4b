package engine

import (
	"fmt"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/polyhedrator/pkg/notation"
	"github.com/chazu/polyhedrator/pkg/operator"
	"github.com/chazu/polyhedrator/pkg/polyhedron"
	"github.com/chazu/polyhedrator/pkg/seed"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms polyhedrator Lisp source before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: apex-scale -> apex_scale
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator).
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				// Keyword names are normalized to underscores, matching the
				// kebab-case rewrite for identifiers.
				for _, c := range b[i+1 : j] {
					if c == '-' {
						c = '_'
					}
					result = append(result, c)
				}
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when the hyphen sits between identifier characters (not a
		// minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpPolyhedron wraps a polyhedron so it can flow between builtins.
type sexpPolyhedron struct {
	p *polyhedron.Polyhedron
}

func (s *sexpPolyhedron) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(polyhedron :vertices %d :faces %d)", s.p.VertexCount(), s.p.FaceCount())
}
func (s *sexpPolyhedron) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if len(str.S) > len(kwPrefix) && str.S[:len(kwPrefix)] == kwPrefix {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument
// list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if name, ok := isKW(str); ok {
		return name, nil
	}
	return str.S, nil
}

func toPolyhedron(s zygo.Sexp) (*polyhedron.Polyhedron, error) {
	if sp, ok := s.(*sexpPolyhedron); ok {
		return sp.p, nil
	}
	return nil, fmt.Errorf("expected polyhedron, got %T (%s)", s, s.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Session and builtin registration
// ---------------------------------------------------------------------------

// session collects the polyhedra rendered during one evaluation.
type session struct {
	rendered []NamedPolyhedron
}

// registerBuiltins installs the polyhedron DSL into a zygomys environment.
// Source must be preprocessed with preprocessSource first so that :keyword
// tokens arrive as recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *session) {

	// -----------------------------------------------------------------------
	// (seed :cube) or (seed "cube" :edge-length 1.5)
	// -----------------------------------------------------------------------
	env.AddFunction("seed", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("seed requires a solid name")
		}
		solidName, err := toKeywordString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("seed: %w", err)
		}
		solid, err := seed.Parse(solidName)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("seed: %w", err)
		}

		edge := notation.DefaultEdgeLength
		if v, ok := pa.kw["edge_length"]; ok {
			edge, err = toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("seed: edge-length: %w", err)
			}
		}

		p, err := solid.Polyhedron(edge)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPolyhedron{p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (dual p)
	// -----------------------------------------------------------------------
	env.AddFunction("dual", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("dual requires a polyhedron")
		}
		p, err := toPolyhedron(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("dual: %w", err)
		}
		out, err := operator.Dual().Apply(p)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPolyhedron{p: out}, nil
	})

	// -----------------------------------------------------------------------
	// (ambo p)
	// -----------------------------------------------------------------------
	env.AddFunction("ambo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("ambo requires a polyhedron")
		}
		p, err := toPolyhedron(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ambo: %w", err)
		}
		out, err := operator.Ambo().Apply(p)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPolyhedron{p: out}, nil
	})

	// -----------------------------------------------------------------------
	// (kis p :sides 4 :apex-scale 0.1)
	// -----------------------------------------------------------------------
	env.AddFunction("kis", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("kis requires a polyhedron")
		}
		p, err := toPolyhedron(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kis: %w", err)
		}

		sides := 0
		if v, ok := pa.kw["sides"]; ok {
			sides, err = toInt(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("kis: sides: %w", err)
			}
		}
		apexScale := 0.0
		if v, ok := pa.kw["apex_scale"]; ok {
			apexScale, err = toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("kis: apex-scale: %w", err)
			}
		}

		out, err := operator.KisWithApexScale(sides, apexScale).Apply(p)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPolyhedron{p: out}, nil
	})

	// -----------------------------------------------------------------------
	// (conway "dk4C") — full notation, or (conway "dk4" p) on a polyhedron
	// -----------------------------------------------------------------------
	env.AddFunction("conway", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) == 0 {
			return zygo.SexpNull, fmt.Errorf("conway requires a notation string")
		}
		src, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("conway: %w", err)
		}

		if len(pa.positional) == 1 {
			edge := notation.DefaultEdgeLength
			if v, ok := pa.kw["edge_length"]; ok {
				edge, err = toFloat64(v)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("conway: edge-length: %w", err)
				}
			}
			p, err := notation.Generate(src, edge)
			if err != nil {
				return zygo.SexpNull, err
			}
			return &sexpPolyhedron{p: p}, nil
		}

		p, err := toPolyhedron(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("conway: %w", err)
		}
		chain, err := notation.ParseOperators(src)
		if err != nil {
			return zygo.SexpNull, err
		}
		out, err := chain.Apply(p)
		if err != nil {
			return zygo.SexpNull, err
		}
		return &sexpPolyhedron{p: out}, nil
	})

	// -----------------------------------------------------------------------
	// (render p) or (render p :name "crown")
	// -----------------------------------------------------------------------
	env.AddFunction("render", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("render requires a polyhedron")
		}
		p, err := toPolyhedron(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("render: %w", err)
		}

		renderName := fmt.Sprintf("polyhedron-%d", len(s.rendered)+1)
		if v, ok := pa.kw["name"]; ok {
			renderName, err = toString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("render: name: %w", err)
			}
		}

		s.rendered = append(s.rendered, NamedPolyhedron{Name: renderName, Polyhedron: p})
		return pa.positional[0], nil
	})
}
