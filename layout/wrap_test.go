package layout

import (
	"strings"
	"testing"
	"unicode/utf8"
)

// runeWidth 是测试用的确定性测量函数：每个 rune 宽 10px。
func runeWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * 10
}

func TestWrapReconstructsText(t *testing.T) {
	// 每个词都不超过限制时，折行结果以空格拼回后应与原词序列一致。
	cases := []struct {
		text  string
		width float64
	}{
		{"one two three four five", 100},
		{"alpha beta", 60},
		{"single", 200},
		{"a b c d e f g h", 30},
	}
	for _, tc := range cases {
		lines := Wrap(tc.text, tc.width, runeWidth)
		joined := strings.Join(lines, " ")
		want := strings.Join(strings.Fields(tc.text), " ")
		if joined != want {
			t.Fatalf("Wrap(%q, %g) = %v; joined %q, want %q", tc.text, tc.width, lines, joined, want)
		}
		for _, line := range lines {
			for _, word := range strings.Fields(line) {
				if !strings.Contains(want, word) {
					t.Fatalf("word %q was split across lines: %v", word, lines)
				}
			}
		}
	}
}

func TestWrapRespectsWidth(t *testing.T) {
	lines := Wrap("one two three four five six", 80, runeWidth)
	for i, line := range lines {
		if runeWidth(line) > 80 && len(strings.Fields(line)) > 1 {
			t.Fatalf("line %d %q exceeds width with multiple words", i, line)
		}
	}
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %v", lines)
	}
}

// TestWrapOversizedWord 单个超宽词独占一行且不被拆分（500px 词放入 200px 列）。
func TestWrapOversizedWord(t *testing.T) {
	word := strings.Repeat("x", 50) // 50 runes * 10px = 500px
	lines := Wrap(word, 200, runeWidth)
	if len(lines) != 1 || lines[0] != word {
		t.Fatalf("oversized word must stay intact on one line, got %v", lines)
	}

	lines = Wrap("ab "+word+" cd", 200, runeWidth)
	found := false
	for _, line := range lines {
		if line == word {
			found = true
		}
		if strings.Contains(line, word) && line != word {
			t.Fatalf("oversized word must be alone on its line, got %q", line)
		}
	}
	if !found {
		t.Fatalf("oversized word missing from output: %v", lines)
	}
}

func TestWrapEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   "} {
		lines := Wrap(text, 100, runeWidth)
		if len(lines) != 1 || lines[0] != text {
			t.Fatalf("Wrap(%q) = %v, want the original text as a single line", text, lines)
		}
	}
}
