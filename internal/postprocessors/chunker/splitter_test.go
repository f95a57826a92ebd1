package chunker

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		s := New()
		if s.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, s.chunkSize)
		}
		if s.overlap != DefaultChunkOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultChunkOverlap, s.overlap)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		s := New(WithChunkSize(500), WithOverlap(100))
		if s.chunkSize != 500 || s.overlap != 100 {
			t.Errorf("expected 500/100, got %d/%d", s.chunkSize, s.overlap)
		}
	})

	t.Run("overlap exceeds chunk size", func(t *testing.T) {
		s := New(WithChunkSize(100), WithOverlap(150))
		if s.overlap >= s.chunkSize {
			t.Error("overlap should be reduced when it exceeds chunk size")
		}
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		s := New(WithChunkSize(0), WithOverlap(-1))
		if s.chunkSize != DefaultChunkSize {
			t.Errorf("expected default chunkSize, got %d", s.chunkSize)
		}
		if s.overlap != DefaultChunkOverlap {
			t.Errorf("expected default overlap, got %d", s.overlap)
		}
	})
}

func TestSplit_Empty(t *testing.T) {
	if chunks := New().Split(""); chunks != nil {
		t.Errorf("expected no chunks, got %d", len(chunks))
	}
}

func TestSplit_ShortTextIsOneChunk(t *testing.T) {
	chunks := New(WithChunkSize(100)).Split("The appeal is dismissed.")
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Start != 0 || chunks[0].Text != "The appeal is dismissed." {
		t.Errorf("unexpected chunk %+v", chunks[0])
	}
}

func TestSplit_NoOverlap(t *testing.T) {
	chunks := New(WithChunkSize(5), WithOverlap(0)).Split("abcdefghij")

	want := []Chunk{{Start: 0, Text: "abcde"}, {Start: 5, Text: "fghij"}}
	if len(chunks) != len(want) {
		t.Fatalf("expected %d chunks, got %d", len(want), len(chunks))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d: expected %+v, got %+v", i, want[i], chunks[i])
		}
	}
}

func TestSplit_BreaksAfterWhitespace(t *testing.T) {
	chunks := New(WithChunkSize(8), WithOverlap(4)).Split("hello world again")

	if chunks[0].Text != "hello " {
		t.Errorf("expected first chunk to end after the space, got %q", chunks[0].Text)
	}
}

func TestSplit_CoversTextWithoutGaps(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		size    int
		overlap int
	}{
		{"ascii words", strings.Repeat("The court held that the appeal fails. ", 40), 100, 20},
		{"no whitespace", strings.Repeat("x", 257), 50, 10},
		{"multibyte", strings.Repeat("Cour d'appel à Genève. ", 30), 64, 16},
		{"overlap near half", strings.Repeat("ab cd ", 50), 10, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runes := []rune(tt.text)
			chunks := New(WithChunkSize(tt.size), WithOverlap(tt.overlap)).Split(tt.text)

			if len(chunks) < 2 {
				t.Fatalf("expected several chunks, got %d", len(chunks))
			}
			if chunks[0].Start != 0 {
				t.Errorf("first chunk starts at %d", chunks[0].Start)
			}

			covered := 0
			for i, c := range chunks {
				length := len([]rune(c.Text))
				if length == 0 || length > tt.size {
					t.Fatalf("chunk %d has length %d", i, length)
				}
				if got := string(runes[c.Start : c.Start+length]); got != c.Text {
					t.Fatalf("chunk %d text does not match its offset", i)
				}
				if c.Start > covered {
					t.Fatalf("gap before chunk %d: covered %d, starts %d", i, covered, c.Start)
				}
				if i > 0 && c.Start <= chunks[i-1].Start {
					t.Fatalf("chunk %d does not advance", i)
				}
				covered = c.Start + length
			}
			if covered != len(runes) {
				t.Errorf("chunks cover %d of %d characters", covered, len(runes))
			}
		})
	}
}
