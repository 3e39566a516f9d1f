package utils

import (
	"strings"
	"testing"
)

func TestSplitText(t *testing.T) {
	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks := SplitText("short text", 100, 10)
		if len(chunks) != 1 {
			t.Fatalf("expected 1 chunk, got %d", len(chunks))
		}
		if chunks[0] != "short text" {
			t.Errorf("chunk altered: %q", chunks[0])
		}
	})

	t.Run("long text produces multiple chunks", func(t *testing.T) {
		text := strings.Repeat("zeolite frameworks are microporous ", 100)
		chunks := SplitText(text, 200, 50)
		if len(chunks) < 2 {
			t.Fatalf("expected multiple chunks, got %d", len(chunks))
		}
		for i, c := range chunks {
			if len(c) > 200 {
				t.Errorf("chunk %d exceeds size: %d", i, len(c))
			}
		}
	})

	t.Run("consecutive chunks overlap", func(t *testing.T) {
		text := strings.Repeat("abcdefghij", 100)
		chunks := SplitText(text, 100, 20)
		for i := 1; i < len(chunks)-1; i++ {
			tail := chunks[i-1][len(chunks[i-1])-20:]
			if !strings.HasPrefix(chunks[i], tail) {
				t.Errorf("chunk %d does not start with the previous chunk's tail", i)
			}
		}
	})

	t.Run("overlap larger than chunk size does not loop forever", func(t *testing.T) {
		text := strings.Repeat("a", 500)
		chunks := SplitText(text, 100, 100)
		if len(chunks) == 0 {
			t.Fatal("expected chunks")
		}
	})

	t.Run("no content is lost", func(t *testing.T) {
		text := strings.Repeat("the quick brown fox jumps over the lazy dog ", 50)
		chunks := SplitText(text, 150, 0)
		joined := strings.Join(chunks, "")
		if joined != text {
			t.Error("zero-overlap chunks must reassemble the input")
		}
	})
}
