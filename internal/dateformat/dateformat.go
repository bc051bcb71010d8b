// Package dateformat parses and formats dates using moment-style token
// strings such as "MM-DD-YYYY" or "MMMM Do, YYYY".
package dateformat

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type tokenSpec struct {
	token  string
	format string // Go layout used when formatting
	parse  string // Go layout used when parsing; lenient on zero padding
}

// Longest tokens first so "MMMM" wins over "MM".
var tokenSpecs = []tokenSpec{
	{"YYYY", "2006", "2006"},
	{"YY", "06", "06"},
	{"MMMM", "January", "January"},
	{"MMM", "Jan", "Jan"},
	{"MM", "01", "1"},
	{"M", "1", "1"},
	{"Do", "", "2"},
	{"DD", "02", "2"},
	{"D", "2", "2"},
	{"dddd", "Monday", "Monday"},
	{"ddd", "Mon", "Mon"},
	{"HH", "15", "15"},
	{"H", "15", "15"},
	{"hh", "03", "3"},
	{"h", "3", "3"},
	{"mm", "04", "4"},
	{"m", "4", "4"},
	{"ss", "05", "5"},
	{"s", "5", "5"},
	{"A", "PM", "PM"},
	{"a", "pm", "pm"},
	{"ZZ", "-0700", "-0700"},
	{"Z", "-07:00", "-07:00"},
}

var (
	ordinalRe   = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)
	separatorRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// ErrEmptyFormat is returned when compiling an empty format string.
var ErrEmptyFormat = errors.New("dateformat: empty format")

type token struct {
	spec    *tokenSpec
	literal string
}

// Layout is a compiled date format.
type Layout struct {
	format      string
	tokens      []token
	parseLayout string
	looseLayout string // parseLayout with separators collapsed; empty when zones are parsed
	ordinal     bool
}

// Compile converts a moment-style format into a Layout. Text in square
// brackets is literal.
func Compile(format string) (*Layout, error) {
	if strings.TrimSpace(format) == "" {
		return nil, ErrEmptyFormat
	}
	l := &Layout{format: format}
	var parse, loose strings.Builder
	zone := false

	for i := 0; i < len(format); {
		if format[i] == '[' {
			end := strings.IndexByte(format[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("dateformat: unterminated literal in %q", format)
			}
			lit := format[i+1 : i+end]
			l.tokens = append(l.tokens, token{literal: lit})
			parse.WriteString(lit)
			loose.WriteString(separatorRe.ReplaceAllString(lit, " "))
			i += end + 1
			continue
		}
		matched := false
		for j := range tokenSpecs {
			spec := &tokenSpecs[j]
			if strings.HasPrefix(format[i:], spec.token) {
				l.tokens = append(l.tokens, token{spec: spec})
				parse.WriteString(spec.parse)
				loose.WriteString(spec.parse)
				switch spec.token {
				case "Do":
					l.ordinal = true
				case "Z", "ZZ":
					zone = true
				}
				i += len(spec.token)
				matched = true
				break
			}
		}
		if !matched {
			l.tokens = append(l.tokens, token{literal: format[i : i+1]})
			parse.WriteByte(format[i])
			loose.WriteString(separatorRe.ReplaceAllString(format[i:i+1], " "))
			i++
		}
	}
	l.parseLayout = parse.String()
	if !zone {
		l.looseLayout = strings.Join(strings.Fields(loose.String()), " ")
	}
	return l, nil
}

// String returns the original format.
func (l *Layout) String() string {
	return l.format
}

// Parse parses value in UTC. One- and two-digit month, day, hour, minute and
// second fields are both accepted. When value does not match exactly, it is
// retried with any run of separators standing in for another, so
// "01/02/2020" parses under "MM-DD-YYYY". Layouts with a zone offset are
// matched exactly.
func (l *Layout) Parse(value string) (time.Time, error) {
	v := strings.TrimSpace(value)
	if l.ordinal {
		v = ordinalRe.ReplaceAllString(v, "$1")
	}
	t, err := time.Parse(l.parseLayout, v)
	if err == nil {
		return t, nil
	}
	if l.looseLayout != "" {
		loose := strings.TrimSpace(separatorRe.ReplaceAllString(v, " "))
		if t, err := time.Parse(l.looseLayout, loose); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("dateformat: %q does not match %q", value, l.format)
}

// Format renders t with the layout.
func (l *Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, tok := range l.tokens {
		switch {
		case tok.spec == nil:
			b.WriteString(tok.literal)
		case tok.spec.token == "Do":
			b.WriteString(Ordinal(t.Day()))
		default:
			b.WriteString(t.Format(tok.spec.format))
		}
	}
	return b.String()
}

// Ordinal returns n with its English ordinal suffix.
func Ordinal(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
