package svg

import (
	"fmt"
	"strings"
)

// pathArgs is the number of arguments each path command takes
var pathArgs = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

// DeoptimizePaths expands the data of every <path> element with
// ExpandPathData. It returns the number of paths rewritten.
// Run it after Optimize: the minifier is what produces the compact form.
func DeoptimizePaths(doc *Document) (int, error) {
	count := 0
	var firstErr error
	doc.Root.Walk(func(n *Node) bool {
		if firstErr != nil {
			return false
		}
		if localName(n.Name) != "path" {
			return true
		}
		d, ok := n.Attr("d")
		if !ok {
			return true
		}
		expanded, err := ExpandPathData(d)
		if err != nil {
			firstErr = err
			return false
		}
		if expanded != d {
			n.SetAttr("d", expanded)
			count++
		}
		return true
	})
	return count, firstErr
}

// ExpandPathData rewrites compact path data into an explicit form:
// every segment repeats its command letter, numbers are separated by a
// single space and leading zeros are restored, so "M1.5.5l2-1 3 4z"
// becomes "M1.5 0.5 l2 -1 l3 4 z".
func ExpandPathData(d string) (string, error) {
	s := pathScanner{src: d}
	var segments []string
	var cmd byte

	for {
		s.skipSeparators()
		if s.eof() {
			break
		}

		if c := s.peek(); isPathCommand(c) {
			cmd = c
			s.pos++
			if upper(cmd) == 'Z' {
				segments = append(segments, string(cmd))
				continue
			}
		} else if cmd == 0 || upper(cmd) == 'Z' {
			return "", fmt.Errorf("%w: expected command at offset %d in %q", ErrPathData, s.pos, d)
		}

		n := pathArgs[upper(cmd)]
		args := make([]string, 0, n)
		for i := 0; i < n; i++ {
			s.skipSeparators()
			var tok string
			var ok bool
			if upper(cmd) == 'A' && (i == 3 || i == 4) {
				tok, ok = s.flag()
			} else {
				tok, ok = s.number()
			}
			if !ok {
				return "", fmt.Errorf("%w: bad argument for %c at offset %d in %q", ErrPathData, cmd, s.pos, d)
			}
			args = append(args, tok)
		}
		segments = append(segments, string(cmd)+strings.Join(args, " "))

		// extra coordinate pairs after a moveto are implicit linetos
		switch cmd {
		case 'M':
			cmd = 'L'
		case 'm':
			cmd = 'l'
		}
	}

	return strings.Join(segments, " "), nil
}

func isPathCommand(c byte) bool {
	_, ok := pathArgs[upper(c)]
	return ok
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}

type pathScanner struct {
	src string
	pos int
}

func (s *pathScanner) eof() bool { return s.pos >= len(s.src) }

func (s *pathScanner) peek() byte { return s.src[s.pos] }

func (s *pathScanner) skipSeparators() {
	for !s.eof() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r', '\f', ',':
			s.pos++
		default:
			return
		}
	}
}

func (s *pathScanner) flag() (string, bool) {
	if s.eof() {
		return "", false
	}
	c := s.peek()
	if c != '0' && c != '1' {
		return "", false
	}
	s.pos++
	return string(c), true
}

// number scans one numeric token and returns it in normalised form
func (s *pathScanner) number() (string, bool) {
	start := s.pos
	var b strings.Builder

	if !s.eof() && (s.peek() == '-' || s.peek() == '+') {
		if s.peek() == '-' {
			b.WriteByte('-')
		}
		s.pos++
	}

	intStart := s.pos
	for !s.eof() && isDigit(s.peek()) {
		s.pos++
	}
	intPart := s.src[intStart:s.pos]

	fracPart := ""
	if !s.eof() && s.peek() == '.' {
		s.pos++
		fracStart := s.pos
		for !s.eof() && isDigit(s.peek()) {
			s.pos++
		}
		fracPart = s.src[fracStart:s.pos]
		if fracPart == "" && intPart == "" {
			s.pos = start
			return "", false
		}
	}
	if intPart == "" && fracPart == "" {
		s.pos = start
		return "", false
	}

	if intPart == "" {
		intPart = "0"
	}
	b.WriteString(intPart)
	if fracPart != "" {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}

	if !s.eof() && (s.peek() == 'e' || s.peek() == 'E') {
		expStart := s.pos
		s.pos++
		if !s.eof() && (s.peek() == '-' || s.peek() == '+') {
			s.pos++
		}
		digits := s.pos
		for !s.eof() && isDigit(s.peek()) {
			s.pos++
		}
		if s.pos == digits {
			// not an exponent after all
			s.pos = expStart
		} else {
			b.WriteString(s.src[expStart:s.pos])
		}
	}

	return b.String(), true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
