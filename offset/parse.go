package offset

import (
	"errors"
	"regexp"
	"strconv"
	"sync"

	"github.com/ipld/go-tail/types"
)

// Parser converts count tokens into a Spec. A Parser is immutable once built
// and is safe for concurrent use.
type Parser struct {
	re *regexp.Regexp
}

var (
	defaultParser *Parser
	parserOnce    sync.Once
)

// NewParser compiles the count grammar: an optional '+' or '-' followed by
// one or more decimal digits.
func NewParser() *Parser {
	return &Parser{re: regexp.MustCompile(`^([+-])?([0-9]+)$`)}
}

// Parse parses s with a shared Parser that is built on first use.
func Parse(s string) (Spec, error) {
	parserOnce.Do(func() {
		defaultParser = NewParser()
	})
	return defaultParser.Parse(s)
}

// Parse converts s into a Spec.
//
// A bare number or a number with a leading '-' counts back from the end, so
// both "5" and "-5" give Signed(-5). A leading '+' counts from the start:
// "+5" gives Signed(5), and any spelling of "+0" gives RelativeZero.
//
// Magnitudes outside the int64 range are clamped to math.MinInt64 or
// math.MaxInt64 instead of failing. Any token that does not match the grammar
// returns types.ErrInvalidOffset.
func (p *Parser) Parse(s string) (Spec, error) {
	m := p.re.FindStringSubmatch(s)
	if m == nil {
		return Spec{}, types.ErrInvalidOffset{Token: s}
	}
	sign, digits := m[1], m[2]
	if sign == "" {
		sign = "-"
	}

	n, err := strconv.ParseInt(sign+digits, 10, 64)
	if err != nil {
		// On ErrRange, ParseInt has already clamped n to the nearest limit.
		var numErr *strconv.NumError
		if !errors.As(err, &numErr) || numErr.Err != strconv.ErrRange {
			return Spec{}, types.ErrInvalidOffset{Token: s}
		}
	}

	if sign == "+" && n == 0 {
		return RelativeZero(), nil
	}
	return Signed(n), nil
}
