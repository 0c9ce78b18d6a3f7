package objmesh

import (
	"strconv"
	"strings"
)

// maxFaceRefs caps the corners read from one face line.
const maxFaceRefs = 64

// ParseFaceRef parses one face token in the form v, v/vt, v//vn or v/vt/vn.
// Indices in the file are 1-based. A token that does not start with an
// integer is rejected; a texcoord part that is not an integer is treated as absent.
func ParseFaceRef(tok string) (FaceRef, bool) {
	v, rest, ok := leadingInt(tok)
	if !ok {
		return FaceRef{}, false
	}
	ref := FaceRef{V: v - 1, VT: -1}
	if strings.HasPrefix(rest, "/") {
		if vt, _, ok := leadingInt(rest[1:]); ok {
			ref.VT = vt - 1
		}
	}
	return ref, true
}

// parseFace appends the corners of a face line body to dst.
// Parsing stops at the first unparseable token or after maxFaceRefs corners.
func parseFace(body string, dst []FaceRef) []FaceRef {
	for _, tok := range strings.Fields(body) {
		if len(dst) >= maxFaceRefs {
			break
		}
		ref, ok := ParseFaceRef(tok)
		if !ok {
			break
		}
		dst = append(dst, ref)
	}
	return dst
}

// leadingInt reads an optionally signed decimal integer prefix of s.
func leadingInt(s string) (int, string, bool) {
	n := 0
	if n < len(s) && (s[n] == '+' || s[n] == '-') {
		n++
	}
	digits := n
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	if n == digits {
		return 0, s, false
	}
	v, err := strconv.ParseInt(s[:n], 10, 32)
	if err != nil {
		return 0, s, false
	}
	return int(v), s[n:], true
}
