// Package regdesc parses the line-oriented registry description files
// under registry/ (namespaces.txt, ctypes.txt, entrypoints.txt) that
// cmd/genregistry turns into the ztypes_gen.go/zentry_gen.go sources.
//
// The format is deliberately simple compared to a C header: one
// directive per line, whitespace-separated fields, "#" line comments,
// and double-quoted strings for names containing spaces or stars. It
// borrows the token/line shape of internal/cparse but drops
// everything C-preprocessor-specific, since the registry files aren't
// C.
package regdesc

import (
	"fmt"
)

type TokKind uint8

const (
	TokIdent TokKind = 1 + iota
	TokNumber
	TokString
	TokEOF
)

type Tok struct {
	Kind TokKind
	Text string
}

type pos struct {
	line int
}

func (p pos) errorf(f string, args ...interface{}) error {
	return fmt.Errorf("registry:%d: %s", p.line, fmt.Sprintf(f, args...))
}

// Line is the tokenization of one non-blank, non-comment source line.
type Line struct {
	Toks []Tok
	no   int
}

func (l Line) errorf(f string, args ...interface{}) error {
	return pos{l.no}.errorf(f, args...)
}

// Lex splits src into Lines, stripping blank lines and "#" comments.
func Lex(src []byte) ([]Line, error) {
	var lines []Line
	lineNo := 0
	for _, raw := range splitLines(src) {
		lineNo++
		toks, err := lexLine(raw, lineNo)
		if err != nil {
			return nil, err
		}
		if len(toks) == 0 {
			continue
		}
		lines = append(lines, Line{Toks: toks, no: lineNo})
	}
	return lines, nil
}

func splitLines(src []byte) [][]byte {
	var out [][]byte
	start := 0
	for i, b := range src {
		if b == '\n' {
			out = append(out, src[start:i])
			start = i + 1
		}
	}
	if start < len(src) {
		out = append(out, src[start:])
	}
	return out
}

func isIdentStart(ch byte) bool {
	return ch == '_' || 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

func isIdentCont(ch byte) bool {
	return isIdentStart(ch) || '0' <= ch && ch <= '9'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func lexLine(raw []byte, lineNo int) ([]Tok, error) {
	var toks []Tok
	i := 0
	for i < len(raw) {
		ch := raw[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r':
			i++
		case ch == '#':
			// Rest of line is a comment.
			return toks, nil
		case ch == '"':
			j := i + 1
			for j < len(raw) && raw[j] != '"' {
				j++
			}
			if j >= len(raw) {
				return nil, pos{lineNo}.errorf("unterminated string literal")
			}
			toks = append(toks, Tok{TokString, string(raw[i+1 : j])})
			i = j + 1
		case isIdentStart(ch):
			j := i + 1
			for j < len(raw) && isIdentCont(raw[j]) {
				j++
			}
			toks = append(toks, Tok{TokIdent, string(raw[i:j])})
			i = j
		case isDigit(ch):
			j := i + 1
			for j < len(raw) && isDigit(raw[j]) {
				j++
			}
			toks = append(toks, Tok{TokNumber, string(raw[i:j])})
			i = j
		default:
			return nil, pos{lineNo}.errorf("unexpected character %q", string(ch))
		}
	}
	return toks, nil
}
