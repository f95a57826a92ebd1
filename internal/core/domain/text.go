package domain

import "unicode/utf8"

// TextIndex maps character offsets to byte offsets over a fixed text.
//
// Offsets from extraction models count characters, while Go strings are
// indexed by byte. Every undecodable byte counts as one character so that
// slicing always reproduces the original bytes.
type TextIndex struct {
	text    string
	offsets []int
}

// NewTextIndex builds an index over text.
func NewTextIndex(text string) *TextIndex {
	offsets := make([]int, 0, utf8.RuneCountInString(text)+1)
	for i := range text {
		offsets = append(offsets, i)
	}
	offsets = append(offsets, len(text))
	return &TextIndex{text: text, offsets: offsets}
}

// Text returns the indexed text.
func (x *TextIndex) Text() string {
	return x.text
}

// Len returns the length of the text in characters.
func (x *TextIndex) Len() int {
	return len(x.offsets) - 1
}

// Slice returns the text between two character offsets. Offsets are
// clamped to the text, and an inverted range yields "".
func (x *TextIndex) Slice(start, end int) string {
	n := x.Len()
	start = clamp(start, 0, n)
	end = clamp(end, 0, n)
	if start >= end {
		return ""
	}
	return x.text[x.offsets[start]:x.offsets[end]]
}

// Offset converts a byte offset to a character offset. Byte offsets inside
// a multi-byte character resolve to that character.
func (x *TextIndex) Offset(byteOffset int) int {
	lo, hi := 0, len(x.offsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if x.offsets[mid] <= byteOffset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
