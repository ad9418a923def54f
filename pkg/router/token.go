package router

import (
	"encoding/base64"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// placeholderSpec describes one placeholder kind: how much of the path it
// consumes, a cheap syntactic check, and the real conversion. The predicate
// runs during the tree search so rejected branches cost no allocation; only
// a predicate-approved capture reaches convert, which may still fail (e.g.
// integer overflow) and reject the branch.
type placeholderSpec struct {
	kind      Kind
	cut       func(path string) (seg, rest string)
	predicate func(seg string) bool
	convert   func(seg string) (Value, error)
}

// cutSegment captures up to the next '/' or the end of the path.
func cutSegment(path string) (string, string) {
	if idx := strings.IndexByte(path, '/'); idx >= 0 {
		return path[:idx], path[idx:]
	}
	return path, ""
}

// cutChar captures exactly one rune.
func cutChar(path string) (string, string) {
	_, size := utf8.DecodeRuneInString(path)
	return path[:size], path[size:]
}

// placeholderSpecs maps specifier bytes to their specs.
var placeholderSpecs = map[byte]*placeholderSpec{
	's': {
		kind:      KindString,
		cut:       cutSegment,
		predicate: func(seg string) bool { return seg != "" },
		convert: func(seg string) (Value, error) {
			return Value{kind: KindString, str: seg}, nil
		},
	},
	'i': {
		kind:      KindInt,
		cut:       cutSegment,
		predicate: isDecimal,
		convert: func(seg string) (Value, error) {
			n, err := strconv.ParseInt(seg, 10, 64)
			if err != nil {
				return Value{}, err
			}
			return Value{kind: KindInt, i: n}, nil
		},
	},
	'u': {
		kind:      KindUint,
		cut:       cutSegment,
		predicate: isDigits,
		convert: func(seg string) (Value, error) {
			n, err := strconv.ParseUint(seg, 10, 64)
			if err != nil {
				return Value{}, err
			}
			return Value{kind: KindUint, u: n}, nil
		},
	},
	'f': {
		kind:      KindFloat,
		cut:       cutSegment,
		predicate: isDecimalFraction,
		convert: func(seg string) (Value, error) {
			f, err := strconv.ParseFloat(seg, 64)
			if err != nil {
				return Value{}, err
			}
			return Value{kind: KindFloat, f: f}, nil
		},
	},
	'b': {
		kind:      KindBool,
		cut:       cutSegment,
		predicate: func(seg string) bool { return seg == "true" || seg == "false" },
		convert: func(seg string) (Value, error) {
			return Value{kind: KindBool, b: seg == "true"}, nil
		},
	},
	'c': {
		kind:      KindChar,
		cut:       cutChar,
		predicate: func(seg string) bool { return seg != "" && seg != "/" },
		convert: func(seg string) (Value, error) {
			r, _ := utf8.DecodeRuneInString(seg)
			return Value{kind: KindChar, r: r}, nil
		},
	},
	'O': {
		kind:      KindGUID,
		cut:       cutSegment,
		predicate: looksLikeGUID,
		convert:   convertGUID,
	},
}

// isDigits reports whether seg is one or more ASCII digits.
func isDigits(seg string) bool {
	if seg == "" {
		return false
	}
	for i := 0; i < len(seg); i++ {
		if seg[i] < '0' || seg[i] > '9' {
			return false
		}
	}
	return true
}

// isDecimal reports whether seg is an optionally negated digit run.
func isDecimal(seg string) bool {
	if strings.HasPrefix(seg, "-") {
		seg = seg[1:]
	}
	return isDigits(seg)
}

// isDecimalFraction reports whether seg is a signed digit run with at most
// one decimal point and at least one digit.
func isDecimalFraction(seg string) bool {
	if strings.HasPrefix(seg, "-") || strings.HasPrefix(seg, "+") {
		seg = seg[1:]
	}
	if seg == "" {
		return false
	}
	digits := 0
	dots := 0
	for i := 0; i < len(seg); i++ {
		switch {
		case seg[i] >= '0' && seg[i] <= '9':
			digits++
		case seg[i] == '.':
			dots++
			if dots > 1 {
				return false
			}
		default:
			return false
		}
	}
	return digits > 0
}

// Accepted GUID encodings, by exact length.
const (
	guidHyphenatedLen = 36 // 8-4-4-4-12 hex with hyphens
	guidBareHexLen    = 32 // 32 hex digits
	guidCompactLen    = 22 // base64url of the 16 raw bytes, unpadded
)

func isHexDigit(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'a' && b <= 'f' || b >= 'A' && b <= 'F'
}

func isBase64URLDigit(b byte) bool {
	return b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' ||
		b >= '0' && b <= '9' || b == '-' || b == '_'
}

// looksLikeGUID checks seg against the three accepted encodings without
// decoding it.
func looksLikeGUID(seg string) bool {
	switch len(seg) {
	case guidHyphenatedLen:
		for i := 0; i < len(seg); i++ {
			if i == 8 || i == 13 || i == 18 || i == 23 {
				if seg[i] != '-' {
					return false
				}
			} else if !isHexDigit(seg[i]) {
				return false
			}
		}
		return true
	case guidBareHexLen:
		for i := 0; i < len(seg); i++ {
			if !isHexDigit(seg[i]) {
				return false
			}
		}
		return true
	case guidCompactLen:
		for i := 0; i < len(seg); i++ {
			if !isBase64URLDigit(seg[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// convertGUID normalizes any accepted encoding to a uuid.UUID, so two routes
// reached with differently encoded spellings of the same GUID observe the
// same value.
func convertGUID(seg string) (Value, error) {
	if len(seg) == guidCompactLen {
		raw, err := base64.RawURLEncoding.DecodeString(seg)
		if err != nil {
			return Value{}, err
		}
		id, err := uuid.FromBytes(raw)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindGUID, id: id}, nil
	}
	id, err := uuid.Parse(seg)
	if err != nil {
		return Value{}, err
	}
	return Value{kind: KindGUID, id: id}, nil
}

// token is one element of a parsed pattern: either a literal run or a
// placeholder. Exactly one field is set.
type token struct {
	literal string
	spec    *placeholderSpec
}

// Pattern is a parsed route pattern. Patterns are immutable once parsed.
type Pattern struct {
	raw    string
	tokens []token
	arity  int
}

// String returns the pattern's source text.
func (p Pattern) String() string { return p.raw }

// Arity returns the number of placeholders in the pattern.
func (p Pattern) Arity() int { return p.arity }

// Kinds returns the placeholder kinds in declaration order.
func (p Pattern) Kinds() []Kind {
	kinds := make([]Kind, 0, p.arity)
	for _, tok := range p.tokens {
		if tok.spec != nil {
			kinds = append(kinds, tok.spec.kind)
		}
	}
	return kinds
}

// ParsePattern tokenizes a route pattern. Placeholders are character-level
// tokens: they may appear anywhere in the text, interleaved with literal
// runs, not only as whole path segments. %% escapes a literal percent sign.
func ParsePattern(raw string) (Pattern, error) {
	var tokens []token
	var lit strings.Builder
	arity := 0

	flush := func() {
		if lit.Len() > 0 {
			tokens = append(tokens, token{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); i++ {
		if raw[i] != '%' {
			lit.WriteByte(raw[i])
			continue
		}
		if i+1 >= len(raw) {
			return Pattern{}, patternErr(raw, i, ErrMalformedPattern, "dangling %% at end of pattern")
		}
		i++
		if raw[i] == '%' {
			lit.WriteByte('%')
			continue
		}
		spec, ok := placeholderSpecs[raw[i]]
		if !ok {
			return Pattern{}, patternErr(raw, i-1, ErrMalformedPattern, "unknown specifier %%%c", raw[i])
		}
		flush()
		tokens = append(tokens, token{spec: spec})
		arity++
	}
	flush()

	return Pattern{raw: raw, tokens: tokens, arity: arity}, nil
}
