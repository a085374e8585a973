package session

import (
	"errors"
	"strings"
	"time"
)

// QuestionCount is the number of checklist questions a framework carries.
// Interactive setup pins this; the last question is always the verdict.
const QuestionCount = 4

// Verdict literals accepted at the verdict slot. The transport layer offers
// these as a 3-way keyboard choice; Submit matches them case-sensitively.
const (
	VerdictBuy     = "Buy"
	VerdictSell    = "Sell"
	VerdictStandBy = "Stand by"
)

// Verdicts returns the valid verdict tokens in presentation order.
func Verdicts() []string {
	return []string{VerdictBuy, VerdictSell, VerdictStandBy}
}

var (
	ErrEmptyPairs         = errors.New("session: at least one trading pair is required")
	ErrWrongQuestionCount = errors.New("session: exactly four questions are required")
	ErrEmptyAnswer        = errors.New("session: answer must not be blank")
	ErrInvalidVerdict     = errors.New("session: verdict must be Buy, Sell or Stand by")
)

// Config is a user's saved framework: the pairs to walk through and the
// questions asked for each pair.
type Config struct {
	Pairs     []string `json:"pairs"`
	Questions []string `json:"questions"`
}

// Matrix is the finished pair × question answer grid handed to layout.
// It is immutable once produced by Submit.
type Matrix struct {
	Pairs     []string
	Questions []string
	Answers   map[string][]string
	CreatedAt time.Time
}

// StateKind tags the slot a session is waiting on.
type StateKind int

const (
	// AwaitingAnswer expects free text for a non-final question.
	AwaitingAnswer StateKind = iota
	// AwaitingVerdict expects one of the verdict literals for the final question.
	AwaitingVerdict
	// Completed means every pair has been answered; the matrix is available.
	Completed
)

// State describes the active slot of a session.
type State struct {
	Kind          StateKind
	PairIndex     int
	QuestionIndex int
}

// Prompt tells the transport layer what to ask next.
type Prompt struct {
	Pair     string
	Question string
	// Verdict marks the final question of a pair, so the caller can offer
	// the 3-way choice instead of free text.
	Verdict bool
	// DonePair is non-empty when the previous pair was just finished.
	DonePair string
}

// Session is one checklist run across all configured pairs. It is not safe
// for concurrent use; callers serialize Submit per user.
type Session struct {
	pairs     []string
	questions []string
	pairIdx   int
	qIdx      int
	answers   map[string][]string

	now func() time.Time
}

// Start builds a fresh session from a framework config.
func Start(cfg Config) (*Session, error) {
	if len(cfg.Pairs) == 0 {
		return nil, ErrEmptyPairs
	}
	if len(cfg.Questions) == 0 {
		return nil, ErrWrongQuestionCount
	}
	s := &Session{
		pairs:     append([]string(nil), cfg.Pairs...),
		questions: append([]string(nil), cfg.Questions...),
		answers:   make(map[string][]string, len(cfg.Pairs)),
		now:       time.Now,
	}
	return s, nil
}

// State reports the active slot.
func (s *Session) State() State {
	if s.pairIdx >= len(s.pairs) {
		return State{Kind: Completed, PairIndex: s.pairIdx}
	}
	kind := AwaitingAnswer
	if s.qIdx == len(s.questions)-1 {
		kind = AwaitingVerdict
	}
	return State{Kind: kind, PairIndex: s.pairIdx, QuestionIndex: s.qIdx}
}

// Prompt describes the question the session is currently waiting on.
// It returns nil once the session has completed.
func (s *Session) Prompt() *Prompt {
	st := s.State()
	if st.Kind == Completed {
		return nil
	}
	return &Prompt{
		Pair:     s.pairs[st.PairIndex],
		Question: s.questions[st.QuestionIndex],
		Verdict:  st.Kind == AwaitingVerdict,
	}
}

// Submit validates raw user text against the active slot and advances the
// session. Exactly one of the returns is set: a prompt for the next slot, a
// finished matrix, or an error. On error the session state is unchanged, so
// the caller can re-prompt identically.
func (s *Session) Submit(raw string) (*Prompt, *Matrix, error) {
	st := s.State()
	if st.Kind == Completed {
		return nil, nil, errors.New("session: already completed")
	}

	answer := strings.TrimSpace(raw)
	switch st.Kind {
	case AwaitingVerdict:
		if answer != VerdictBuy && answer != VerdictSell && answer != VerdictStandBy {
			return nil, nil, ErrInvalidVerdict
		}
	default:
		if answer == "" {
			return nil, nil, ErrEmptyAnswer
		}
	}

	pair := s.pairs[s.pairIdx]
	s.answers[pair] = append(s.answers[pair], answer)

	donePair := ""
	s.qIdx++
	if s.qIdx >= len(s.questions) {
		s.qIdx = 0
		s.pairIdx++
		donePair = pair
	}

	if s.pairIdx >= len(s.pairs) {
		return nil, s.matrix(), nil
	}
	next := s.Prompt()
	next.DonePair = donePair
	return next, nil, nil
}

func (s *Session) matrix() *Matrix {
	answers := make(map[string][]string, len(s.answers))
	for pair, vals := range s.answers {
		answers[pair] = append([]string(nil), vals...)
	}
	return &Matrix{
		Pairs:     append([]string(nil), s.pairs...),
		Questions: append([]string(nil), s.questions...),
		Answers:   answers,
		CreatedAt: s.now(),
	}
}

// ParsePairs splits comma-separated setup input into normalized pair names.
func ParsePairs(text string) ([]string, error) {
	var pairs []string
	for _, part := range strings.Split(text, ",") {
		if p := strings.ToUpper(strings.TrimSpace(part)); p != "" {
			pairs = append(pairs, p)
		}
	}
	if len(pairs) == 0 {
		return nil, ErrEmptyPairs
	}
	return pairs, nil
}

// ParseQuestions splits line-separated setup input into exactly QuestionCount
// questions. The last one is treated as the verdict question.
func ParseQuestions(text string) ([]string, error) {
	var questions []string
	for _, line := range strings.Split(text, "\n") {
		if q := strings.TrimSpace(line); q != "" {
			questions = append(questions, q)
		}
	}
	if len(questions) != QuestionCount {
		return nil, ErrWrongQuestionCount
	}
	return questions, nil
}
