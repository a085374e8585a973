package session

import (
	"errors"
	"testing"
)

func testConfig() Config {
	return Config{
		Pairs:     []string{"EURUSD", "GBPUSD"},
		Questions: []string{"Bias", "Flow", "SMS", "Verdict"},
	}
}

func TestStartRejectsEmptyPairs(t *testing.T) {
	_, err := Start(Config{Questions: []string{"A", "B", "C", "Verdict"}})
	if !errors.Is(err, ErrEmptyPairs) {
		t.Fatalf("expected ErrEmptyPairs, got %v", err)
	}
}

// TestCompletionExactlyOnce 提交 len(pairs)*len(questions) 个合法答案后恰好完成一次。
func TestCompletionExactlyOnce(t *testing.T) {
	cfg := testConfig()
	s, err := Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	total := len(cfg.Pairs) * len(cfg.Questions)
	for i := 0; i < total; i++ {
		answer := "ok"
		if s.State().Kind == AwaitingVerdict {
			answer = VerdictBuy
		}
		prompt, matrix, err := s.Submit(answer)
		if err != nil {
			t.Fatalf("step %d: unexpected error %v", i, err)
		}
		last := i == total-1
		if last && matrix == nil {
			t.Fatalf("step %d: expected completion matrix", i)
		}
		if !last && (matrix != nil || prompt == nil) {
			t.Fatalf("step %d: completed too early (prompt=%v matrix=%v)", i, prompt, matrix)
		}
	}
	if s.State().Kind != Completed {
		t.Fatalf("session not completed after all answers")
	}
	if _, _, err := s.Submit(VerdictBuy); err == nil {
		t.Fatalf("expected error when submitting after completion")
	}
}

func TestScenarioTwoPairs(t *testing.T) {
	s, err := Start(testConfig())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	steps := []string{"Bullish", "Strong", "Confirmed", VerdictBuy, "Bearish", "Weak", "Broken", VerdictSell}

	var matrix *Matrix
	for i, answer := range steps {
		_, m, err := s.Submit(answer)
		if err != nil {
			t.Fatalf("step %d (%q): %v", i, answer, err)
		}
		matrix = m
	}
	if matrix == nil {
		t.Fatalf("expected matrix after final verdict")
	}
	if len(matrix.Answers) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(matrix.Answers))
	}
	if got := matrix.Answers["EURUSD"][3]; got != VerdictBuy {
		t.Fatalf("EURUSD verdict = %q, want %q", got, VerdictBuy)
	}
	if got := matrix.Answers["GBPUSD"][3]; got != VerdictSell {
		t.Fatalf("GBPUSD verdict = %q, want %q", got, VerdictSell)
	}
	if matrix.CreatedAt.IsZero() {
		t.Fatalf("matrix timestamp not set")
	}
}

// TestRejectionsPreserveState 校验：非法输入不改变 (pairIdx, qIdx)。
func TestRejectionsPreserveState(t *testing.T) {
	s, err := Start(testConfig())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, _, err := s.Submit("   "); !errors.Is(err, ErrEmptyAnswer) {
		t.Fatalf("expected ErrEmptyAnswer, got %v", err)
	}
	if st := s.State(); st.PairIndex != 0 || st.QuestionIndex != 0 {
		t.Fatalf("state mutated on empty answer: %+v", st)
	}

	// advance to the verdict slot
	for _, a := range []string{"Bullish", "Strong", "Confirmed"} {
		if _, _, err := s.Submit(a); err != nil {
			t.Fatalf("Submit(%q): %v", a, err)
		}
	}
	if st := s.State(); st.Kind != AwaitingVerdict {
		t.Fatalf("expected AwaitingVerdict, got %+v", st)
	}

	for _, bad := range []string{"Maybe", "buy", "BUY", "stand by", ""} {
		if _, _, err := s.Submit(bad); !errors.Is(err, ErrInvalidVerdict) {
			t.Fatalf("Submit(%q): expected ErrInvalidVerdict, got %v", bad, err)
		}
		if st := s.State(); st.PairIndex != 0 || st.QuestionIndex != 3 {
			t.Fatalf("state mutated on invalid verdict %q: %+v", bad, st)
		}
	}

	if _, _, err := s.Submit(VerdictStandBy); err != nil {
		t.Fatalf("valid verdict rejected: %v", err)
	}
}

func TestPromptFlagsVerdictSlot(t *testing.T) {
	s, err := Start(testConfig())
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if p := s.Prompt(); p.Verdict || p.Pair != "EURUSD" || p.Question != "Bias" {
		t.Fatalf("unexpected first prompt: %+v", p)
	}
	for _, a := range []string{"a", "b", "c"} {
		if _, _, err := s.Submit(a); err != nil {
			t.Fatalf("Submit(%q): %v", a, err)
		}
	}
	if p := s.Prompt(); !p.Verdict || p.Question != "Verdict" {
		t.Fatalf("expected verdict prompt, got %+v", p)
	}
	prompt, _, err := s.Submit(VerdictBuy)
	if err != nil {
		t.Fatalf("Submit verdict: %v", err)
	}
	if prompt.DonePair != "EURUSD" || prompt.Pair != "GBPUSD" {
		t.Fatalf("expected pair hand-off, got %+v", prompt)
	}
}

func TestParsePairs(t *testing.T) {
	pairs, err := ParsePairs("  eurusd, GBPUSD ,, xauusd ")
	if err != nil {
		t.Fatalf("ParsePairs: %v", err)
	}
	want := []string{"EURUSD", "GBPUSD", "XAUUSD"}
	if len(pairs) != len(want) {
		t.Fatalf("got %v, want %v", pairs, want)
	}
	for i := range want {
		if pairs[i] != want[i] {
			t.Fatalf("pair %d = %q, want %q", i, pairs[i], want[i])
		}
	}
	if _, err := ParsePairs(" , ,"); !errors.Is(err, ErrEmptyPairs) {
		t.Fatalf("expected ErrEmptyPairs, got %v", err)
	}
}

func TestParseQuestions(t *testing.T) {
	qs, err := ParseQuestions("Daily Bias\nOrder Flow\n\nM15 SMS\nVerdict\n")
	if err != nil {
		t.Fatalf("ParseQuestions: %v", err)
	}
	if len(qs) != QuestionCount {
		t.Fatalf("got %d questions, want %d", len(qs), QuestionCount)
	}
	if _, err := ParseQuestions("one\ntwo\nthree"); !errors.Is(err, ErrWrongQuestionCount) {
		t.Fatalf("expected ErrWrongQuestionCount, got %v", err)
	}
}
