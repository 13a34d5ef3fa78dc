package scalarval

import "unicode/utf8"

// runeCursor advances over a byte range one code point at a time,
// never reading past end. §4.J calls for bounding reads by copying up
// to six bytes into a scratch buffer before decoding ("legacy-wide
// tolerance"); utf8.DecodeRune already only inspects utf8.UTFMax (4)
// bytes, so the scratch slice here is a direct, slightly more generous
// translation of that tolerance rather than a functional requirement.
type runeCursor struct {
	data []byte
	pos  int
}

func newRuneCursor(data []byte) runeCursor {
	return runeCursor{data: data}
}

func (c runeCursor) done() bool {
	return c.pos >= len(c.data)
}

// peek decodes the code point at the cursor without advancing.
func (c runeCursor) peek() (r rune, size int) {
	if c.done() {
		return 0, 0
	}
	end := c.pos + 6
	if end > len(c.data) {
		end = len(c.data)
	}
	r, size = utf8.DecodeRune(c.data[c.pos:end])
	if size == 0 {
		size = 1
	}
	return r, size
}

// advanced returns a cursor moved past the code point at the current
// position. Cursors are cheap value types so backtracking is just
// keeping an earlier copy around.
func (c runeCursor) advanced() runeCursor {
	_, size := c.peek()
	return runeCursor{data: c.data, pos: c.pos + size}
}

// remaining returns the unconsumed bytes from the cursor's position.
func (c runeCursor) remaining() []byte {
	return c.data[c.pos:]
}

// Like implements SQL LIKE over Varchars: '%' matches zero or more code
// points, '_' matches exactly one, any other code point must match
// literally, per §4.J. There is no escape character.
func Like(value, pattern []byte) bool {
	return likeMatch(newRuneCursor(value), newRuneCursor(pattern))
}

func likeMatch(value, pattern runeCursor) bool {
	if pattern.done() {
		return value.done()
	}

	pr, _ := pattern.peek()
	patRest := pattern.advanced()

	switch pr {
	case '%':
		if patRest.done() {
			return true
		}
		// Fast skip: if the next pattern code point is a literal (not %
		// or _), advance the value cursor until it matches before
		// recursing, rather than trying every suffix blindly.
		nextPR, _ := patRest.peek()
		v := value
		for {
			if nextPR != '_' && nextPR != '%' {
				for !v.done() {
					vr, _ := v.peek()
					if vr == nextPR {
						break
					}
					v = v.advanced()
				}
			}
			if likeMatch(v, patRest) {
				return true
			}
			if v.done() {
				return false
			}
			v = v.advanced()
		}
	case '_':
		if value.done() {
			return false
		}
		return likeMatch(value.advanced(), patRest)
	default:
		if value.done() {
			return false
		}
		vr, _ := value.peek()
		if vr != pr {
			return false
		}
		return likeMatch(value.advanced(), patRest)
	}
}

// CodePointCount walks data one code point at a time with runeCursor and
// returns the count. It is the decode-based counterpart to the cheap
// byte-prefix counting rule §4.H prescribes for tuple-storage size
// checks (utf8LeadByteCount in tuple.go); this one is exposed for
// callers that want an actual UTF-8 validity-tolerant walk, e.g. before
// handing text to Like.
func CodePointCount(data []byte) int {
	c := newRuneCursor(data)
	n := 0
	for !c.done() {
		c = c.advanced()
		n++
	}
	return n
}
