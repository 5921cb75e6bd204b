package versionrange

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRange is matched by every *RangeError
var ErrInvalidRange = errors.New("invalid version range")

// RangeError describes why a range expression was rejected
type RangeError struct {
	Expr   string
	Reason string
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid version range %q: %s", e.Expr, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidRange
func (e *RangeError) Unwrap() error {
	return ErrInvalidRange
}

// Restriction is one bracketed interval; a nil bound is unbounded
type Restriction struct {
	Lower          *Version
	Upper          *Version
	LowerInclusive bool
	UpperInclusive bool
}

// Contains reports whether v lies inside the interval
func (r Restriction) Contains(v Version) bool {
	if r.Lower != nil {
		c := v.Compare(*r.Lower)
		if c < 0 || (c == 0 && !r.LowerInclusive) {
			return false
		}
	}
	if r.Upper != nil {
		c := v.Compare(*r.Upper)
		if c > 0 || (c == 0 && !r.UpperInclusive) {
			return false
		}
	}
	return true
}

// Range is a union of restrictions
type Range struct {
	expr         string
	restrictions []Restriction
}

func (r *Range) String() string {
	return r.expr
}

// Restrictions returns the parsed intervals in source order
func (r *Range) Restrictions() []Restriction {
	return append([]Restriction(nil), r.restrictions...)
}

// Contains reports whether version matches any restriction of the range
func (r *Range) Contains(version string) bool {
	v := ParseVersion(version)
	for _, res := range r.restrictions {
		if res.Contains(v) {
			return true
		}
	}
	return false
}

// Normalize wraps a bare version as an exact range "[v]"; bracketed expressions are returned trimmed
func Normalize(expr string) string {
	expr = strings.TrimSpace(expr)
	if expr == "" || strings.HasPrefix(expr, "[") || strings.HasPrefix(expr, "(") {
		return expr
	}
	return "[" + expr + "]"
}

// Parse reads a range expression: "[a,b]", "(a,b)", mixed bounds, "[a,)", "(,b]",
// "[v]", a comma separated union of those, or a bare version meaning an exact match.
func Parse(expr string) (*Range, error) {
	rest := Normalize(expr)
	if rest == "" {
		return nil, &RangeError{Expr: expr, Reason: "empty expression"}
	}

	r := &Range{expr: rest}
	for rest != "" {
		if rest[0] != '[' && rest[0] != '(' {
			return nil, &RangeError{Expr: expr, Reason: fmt.Sprintf("expected '[' or '(' at %q", rest)}
		}
		end := strings.IndexAny(rest, "])")
		if end < 0 {
			return nil, &RangeError{Expr: expr, Reason: "unbounded range"}
		}
		res, reason := parseRestriction(rest[:end+1])
		if reason != "" {
			return nil, &RangeError{Expr: expr, Reason: reason}
		}
		r.restrictions = append(r.restrictions, res)

		rest = strings.TrimSpace(rest[end+1:])
		if rest == "" {
			break
		}
		if rest[0] != ',' {
			return nil, &RangeError{Expr: expr, Reason: fmt.Sprintf("unexpected %q after range", rest)}
		}
		rest = strings.TrimSpace(rest[1:])
		if rest == "" {
			return nil, &RangeError{Expr: expr, Reason: "trailing comma"}
		}
	}
	return r, nil
}

func parseRestriction(spec string) (Restriction, string) {
	res := Restriction{
		LowerInclusive: spec[0] == '[',
		UpperInclusive: spec[len(spec)-1] == ']',
	}
	inner := strings.TrimSpace(spec[1 : len(spec)-1])
	if strings.ContainsAny(inner, "[(") {
		return res, fmt.Sprintf("nested brackets in %q", spec)
	}

	if !strings.Contains(inner, ",") {
		if !res.LowerInclusive || !res.UpperInclusive {
			return res, fmt.Sprintf("single version %q must be surrounded by []", spec)
		}
		if inner == "" {
			return res, "empty version in []"
		}
		v := ParseVersion(inner)
		res.Lower, res.Upper = &v, &v
		return res, ""
	}

	bounds := strings.Split(inner, ",")
	if len(bounds) != 2 {
		return res, fmt.Sprintf("too many bounds in %q", spec)
	}
	lo, hi := strings.TrimSpace(bounds[0]), strings.TrimSpace(bounds[1])
	if lo != "" {
		v := ParseVersion(lo)
		res.Lower = &v
	}
	if hi != "" {
		v := ParseVersion(hi)
		res.Upper = &v
	}
	if res.Lower != nil && res.Upper != nil {
		switch c := res.Lower.Compare(*res.Upper); {
		case c > 0:
			return res, fmt.Sprintf("lower bound %q is greater than upper bound %q", lo, hi)
		case c == 0 && (!res.LowerInclusive || !res.UpperInclusive):
			return res, fmt.Sprintf("%q matches no version", spec)
		}
	}
	return res, ""
}

// Matches parses expr and reports whether version falls inside it
func Matches(expr, version string) (bool, error) {
	r, err := Parse(expr)
	if err != nil {
		return false, err
	}
	return r.Contains(version), nil
}
