package graphfile

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"symname/internal/resolved"
)

// ErrSyntax reports a malformed type reference.
var ErrSyntax = errors.New("type reference syntax")

type refKind uint8

const (
	refNamed refKind = iota
	refParam
	refKeyword
)

type refSegment struct {
	name string
	args []*typeRef
}

type suffixKind uint8

const (
	suffixPointer suffixKind = iota
	suffixNullable
	suffixArray
)

type refSuffix struct {
	kind   suffixKind
	rank   uint8
	vector bool
}

// typeRef is the parsed form of a type reference. Suffixes are kept in
// written order; a run of array suffixes lists layers outermost first.
type typeRef struct {
	kind     refKind
	mod      resolved.Modifier
	hasMod   bool
	keyword  *resolved.Type
	index    uint16
	method   bool
	segments []refSegment
	suffixes []refSuffix
}

var keywords = map[string]func() *resolved.Type{
	"null":             resolved.Null,
	"void":             resolved.Void,
	"lambda":           resolved.UnboundLambda,
	"anonymous-method": resolved.BoundLambda,
	"method-group":     resolved.MethodGroup,
	"arglist":          resolved.ArgList,
}

// parseTypeRef parses a complete type reference.
func parseTypeRef(src string) (*typeRef, error) {
	p := &refParser{src: src}
	p.skipSpace()
	ref := &typeRef{}
	switch {
	case p.consumeWord("out"):
		ref.mod, ref.hasMod = resolved.ModOut, true
	case p.consumeWord("ref"):
		ref.mod, ref.hasMod = resolved.ModRef, true
	}
	if err := p.parseInto(ref); err != nil {
		return nil, err
	}
	p.skipSpace()
	if !p.eof() {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return ref, nil
}

type refParser struct {
	src string
	pos int
}

func (p *refParser) eof() bool { return p.pos >= len(p.src) }

func (p *refParser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *refParser) skipSpace() {
	for !p.eof() && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *refParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: %q at offset %d: %s", ErrSyntax, p.src, p.pos, fmt.Sprintf(format, args...))
}

// consumeWord consumes w followed by at least one space.
func (p *refParser) consumeWord(w string) bool {
	rest := p.src[p.pos:]
	if !strings.HasPrefix(rest, w+" ") {
		return false
	}
	p.pos += len(w)
	p.skipSpace()
	return true
}

func (p *refParser) parseRef() (*typeRef, error) {
	ref := &typeRef{}
	if err := p.parseInto(ref); err != nil {
		return nil, err
	}
	return ref, nil
}

func (p *refParser) parseInto(ref *typeRef) error {
	p.skipSpace()
	if err := p.parseCore(ref); err != nil {
		return err
	}
	return p.parseSuffixes(ref)
}

func (p *refParser) parseCore(ref *typeRef) error {
	rest := p.src[p.pos:]
	switch {
	case strings.HasPrefix(rest, "<error>"):
		p.pos += len("<error>")
		ref.kind, ref.keyword = refKeyword, resolved.UnknownError()
		return nil
	case strings.HasPrefix(rest, "!"):
		return p.parseParam(ref)
	case strings.HasPrefix(rest, "?"):
		p.pos++
		ref.kind, ref.keyword = refKeyword, resolved.Placeholder()
		return nil
	}

	word := p.word()
	if word == "" {
		return p.errorf("expected a type")
	}
	if mk, ok := keywords[word]; ok && p.peek() != '.' && p.peek() != '<' {
		ref.kind, ref.keyword = refKeyword, mk()
		return nil
	}
	ref.kind = refNamed
	for {
		if !isIdent(word) {
			return p.errorf("invalid identifier %q", word)
		}
		seg := refSegment{name: word}
		if p.peek() == '<' {
			args, err := p.parseArgs()
			if err != nil {
				return err
			}
			seg.args = args
		}
		ref.segments = append(ref.segments, seg)
		if p.peek() != '.' {
			return nil
		}
		p.pos++
		if word = p.word(); word == "" {
			return p.errorf("expected identifier after '.'")
		}
	}
}

func (p *refParser) parseParam(ref *typeRef) error {
	p.pos++
	ref.kind = refParam
	if p.peek() == '!' {
		p.pos++
		ref.method = true
	}
	start := p.pos
	for !p.eof() && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return p.errorf("expected ordinal")
	}
	n, err := strconv.ParseUint(p.src[start:p.pos], 10, 64)
	if err != nil {
		return p.errorf("ordinal: %v", err)
	}
	idx, err := safecast.Conv[uint16](n)
	if err != nil {
		return p.errorf("ordinal %d out of range: %v", n, err)
	}
	ref.index = idx
	return nil
}

func (p *refParser) parseArgs() ([]*typeRef, error) {
	p.pos++ // '<'
	var args []*typeRef
	for {
		arg, err := p.parseRef()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		p.skipSpace()
		switch p.peek() {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return args, nil
		default:
			return nil, p.errorf("expected ',' or '>'")
		}
	}
}

func (p *refParser) parseSuffixes(ref *typeRef) error {
	for !p.eof() {
		switch p.peek() {
		case '*':
			p.pos++
			ref.suffixes = append(ref.suffixes, refSuffix{kind: suffixPointer})
		case '?':
			p.pos++
			ref.suffixes = append(ref.suffixes, refSuffix{kind: suffixNullable})
		case '[':
			s, err := p.parseArraySuffix()
			if err != nil {
				return err
			}
			ref.suffixes = append(ref.suffixes, s)
		default:
			return nil
		}
	}
	return nil
}

func (p *refParser) parseArraySuffix() (refSuffix, error) {
	p.pos++ // '['
	if p.peek() == '*' {
		p.pos++
		if p.peek() != ']' {
			return refSuffix{}, p.errorf("expected ']' after '[*'")
		}
		p.pos++
		return refSuffix{kind: suffixArray, rank: 1}, nil
	}
	commas := 0
	for p.peek() == ',' {
		commas++
		p.pos++
	}
	if p.peek() != ']' {
		return refSuffix{}, p.errorf("expected ']'")
	}
	p.pos++
	if commas == 0 {
		return refSuffix{kind: suffixArray, rank: 1, vector: true}, nil
	}
	rank, err := safecast.Conv[uint8](commas + 1)
	if err != nil {
		return refSuffix{}, p.errorf("array rank %d out of range: %v", commas+1, err)
	}
	return refSuffix{kind: suffixArray, rank: rank}, nil
}

func (p *refParser) word() string {
	start := p.pos
	for !p.eof() {
		c := p.src[p.pos]
		if c == '_' || c == '-' || c == '`' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func isIdent(w string) bool {
	if w == "" || w[0] >= '0' && w[0] <= '9' {
		return false
	}
	return !strings.Contains(w, "-")
}

// wrap applies the parsed suffixes and modifier to base.
func (r *typeRef) wrap(base *resolved.Type) *resolved.Type {
	t := base
	for i := 0; i < len(r.suffixes); {
		s := r.suffixes[i]
		if s.kind != suffixArray {
			if s.kind == suffixPointer {
				t = resolved.MakePointer(t)
			} else {
				t = resolved.MakeNullable(t)
			}
			i++
			continue
		}
		j := i
		for j < len(r.suffixes) && r.suffixes[j].kind == suffixArray {
			j++
		}
		for k := j - 1; k >= i; k-- {
			t = resolved.MakeArray(t, r.suffixes[k].rank, r.suffixes[k].vector)
		}
		i = j
	}
	if r.hasMod {
		if r.mod == resolved.ModOut {
			t = resolved.MakeOut(t)
		} else {
			t = resolved.MakeRef(t)
		}
	}
	return t
}

func (r *typeRef) path() string {
	names := make([]string, len(r.segments))
	for i, s := range r.segments {
		names[i] = s.name
	}
	return strings.Join(names, ".")
}
