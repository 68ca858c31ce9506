package regdesc

// Namespaces parses a namespaces.txt file: one bare identifier per
// line, in declaration order. The implicit "None" namespace (value 0)
// is never listed and must not be repeated here.
func Namespaces(src []byte) ([]string, error) {
	lines, err := Lex(src)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(lines))
	names := make([]string, 0, len(lines))
	for _, l := range lines {
		if len(l.Toks) != 1 || l.Toks[0].Kind != TokIdent {
			return nil, l.errorf("expected a single namespace identifier")
		}
		name := l.Toks[0].Text
		if name == "None" {
			return nil, l.errorf("None is implicit and must not be listed")
		}
		if seen[name] {
			return nil, l.errorf("duplicate namespace %q", name)
		}
		seen[name] = true
		names = append(names, name)
	}
	return names, nil
}

// CType is one scalar or pointer entry from ctypes.txt.
type CType struct {
	ID              string
	Name            string
	Size            int
	PointerDepth    int
	Elem            string // only set when PointerDepth > 0
	Signed          bool
	IsEnum          bool
	IsOpaquePointer bool
}

// CTypes parses a ctypes.txt file. Each line is either:
//
//	scalar <ID> <"name"> <size> [flags...]
//	pointer <ID> <"name"> <depth> <elem-ID> <size> [flags...]
//
// flags is any of: signed, enum, opaque.
func CTypes(src []byte) ([]CType, error) {
	lines, err := Lex(src)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(lines))
	out := make([]CType, 0, len(lines))
	for _, l := range lines {
		t := l.Toks
		if len(t) < 1 || t[0].Kind != TokIdent {
			return nil, l.errorf("expected scalar or pointer directive")
		}
		kind := t[0].Text
		switch kind {
		case "scalar":
			if len(t) < 4 || t[1].Kind != TokIdent || t[2].Kind != TokString || t[3].Kind != TokNumber {
				return nil, l.errorf("usage: scalar <ID> <name> <size> [flags...]")
			}
			ct := CType{ID: t[1].Text, Name: t[2].Text, Size: atoi(t[3].Text)}
			if err := applyCTypeFlags(&ct, t[4:], l); err != nil {
				return nil, err
			}
			if seen[ct.ID] {
				return nil, l.errorf("duplicate type id %q", ct.ID)
			}
			seen[ct.ID] = true
			out = append(out, ct)
		case "pointer":
			if len(t) < 6 || t[1].Kind != TokIdent || t[2].Kind != TokString || t[3].Kind != TokNumber || t[4].Kind != TokIdent || t[5].Kind != TokNumber {
				return nil, l.errorf("usage: pointer <ID> <name> <depth> <elem> <size> [flags...]")
			}
			ct := CType{
				ID:           t[1].Text,
				Name:         t[2].Text,
				PointerDepth: atoi(t[3].Text),
				Elem:         t[4].Text,
				Size:         atoi(t[5].Text),
			}
			if err := applyCTypeFlags(&ct, t[6:], l); err != nil {
				return nil, err
			}
			if seen[ct.ID] {
				return nil, l.errorf("duplicate type id %q", ct.ID)
			}
			seen[ct.ID] = true
			out = append(out, ct)
		default:
			return nil, l.errorf("unknown directive %q", kind)
		}
	}
	return out, nil
}

func applyCTypeFlags(ct *CType, toks []Tok, l Line) error {
	for _, tok := range toks {
		if tok.Kind != TokIdent {
			return l.errorf("expected a flag identifier, got %q", tok.Text)
		}
		switch tok.Text {
		case "signed":
			ct.Signed = true
		case "enum":
			ct.IsEnum = true
		case "opaque":
			ct.IsOpaquePointer = true
		default:
			return l.errorf("unknown type flag %q", tok.Text)
		}
	}
	return nil
}

// Param is one parameter of an Entrypoint.
type Param struct {
	Name      string
	Type      string
	Namespace string // empty when the param isn't a handle
	Direction string // "in" or "out"
}

// Entrypoint is one entrypoint block from entrypoints.txt.
type Entrypoint struct {
	ID              string
	Name            string
	Return          string
	ReturnNamespace string
	Flags           []string
	Params          []Param
}

// Entrypoints parses an entrypoints.txt file. Each block has the form:
//
//	entrypoint <ID> <glName>
//	  return <CType>
//	  returnns <Namespace>        (optional)
//	  flags <Flag> [<Flag> ...]
//	  param <name> <CType> [<Namespace>] <in|out>
//	  ...
//	end
func Entrypoints(src []byte) ([]Entrypoint, error) {
	lines, err := Lex(src)
	if err != nil {
		return nil, err
	}
	seenID := make(map[string]bool)
	var out []Entrypoint

	i := 0
	for i < len(lines) {
		l := lines[i]
		t := l.Toks
		if len(t) < 3 || t[0].Kind != TokIdent || t[0].Text != "entrypoint" || t[1].Kind != TokIdent || t[2].Kind != TokIdent {
			return nil, l.errorf("expected: entrypoint <ID> <glName>")
		}
		ep := Entrypoint{ID: t[1].Text, Name: t[2].Text}
		if seenID[ep.ID] {
			return nil, l.errorf("duplicate entrypoint id %q", ep.ID)
		}
		seenID[ep.ID] = true
		i++

		haveReturn := false
		for i < len(lines) {
			bl := lines[i]
			bt := bl.Toks
			if len(bt) == 1 && bt[0].Kind == TokIdent && bt[0].Text == "end" {
				i++
				break
			}
			if len(bt) == 0 || bt[0].Kind != TokIdent {
				return nil, bl.errorf("expected a directive inside entrypoint %q", ep.ID)
			}
			switch bt[0].Text {
			case "return":
				if len(bt) != 2 || bt[1].Kind != TokIdent {
					return nil, bl.errorf("usage: return <CType>")
				}
				ep.Return = bt[1].Text
				haveReturn = true
			case "returnns":
				if len(bt) != 2 || bt[1].Kind != TokIdent {
					return nil, bl.errorf("usage: returnns <Namespace>")
				}
				ep.ReturnNamespace = bt[1].Text
			case "flags":
				for _, f := range bt[1:] {
					if f.Kind != TokIdent {
						return nil, bl.errorf("expected a flag identifier")
					}
					ep.Flags = append(ep.Flags, f.Text)
				}
			case "param":
				p, err := parseParam(bt[1:], bl)
				if err != nil {
					return nil, err
				}
				ep.Params = append(ep.Params, p)
			default:
				return nil, bl.errorf("unknown directive %q in entrypoint %q", bt[0].Text, ep.ID)
			}
			i++
		}
		if !haveReturn {
			return nil, l.errorf("entrypoint %q is missing a return directive", ep.ID)
		}
		out = append(out, ep)
	}
	return out, nil
}

func parseParam(toks []Tok, l Line) (Param, error) {
	switch len(toks) {
	case 3:
		if toks[0].Kind != TokIdent || toks[1].Kind != TokIdent || toks[2].Kind != TokIdent {
			return Param{}, l.errorf("usage: param <name> <CType> <in|out>")
		}
		dir, err := direction(toks[2].Text, l)
		if err != nil {
			return Param{}, err
		}
		return Param{Name: toks[0].Text, Type: toks[1].Text, Direction: dir}, nil
	case 4:
		if toks[0].Kind != TokIdent || toks[1].Kind != TokIdent || toks[2].Kind != TokIdent || toks[3].Kind != TokIdent {
			return Param{}, l.errorf("usage: param <name> <CType> <Namespace> <in|out>")
		}
		dir, err := direction(toks[3].Text, l)
		if err != nil {
			return Param{}, err
		}
		return Param{Name: toks[0].Text, Type: toks[1].Text, Namespace: toks[2].Text, Direction: dir}, nil
	default:
		return Param{}, l.errorf("usage: param <name> <CType> [<Namespace>] <in|out>")
	}
}

func direction(s string, l Line) (string, error) {
	switch s {
	case "in", "out":
		return s, nil
	default:
		return "", l.errorf("direction must be \"in\" or \"out\", got %q", s)
	}
}

func atoi(s string) int {
	n := 0
	for _, ch := range s {
		n = n*10 + int(ch-'0')
	}
	return n
}
