package service

import (
	"context"
	"errors"
	"testing"

	"github.com/kingsbal/kingsbal-backend/internal/config"
	"github.com/kingsbal/kingsbal-backend/internal/corpus"
	"github.com/kingsbal/kingsbal-backend/internal/model"
	"github.com/kingsbal/kingsbal-backend/internal/storage"
	"github.com/rs/zerolog"
)

type captureSink struct {
	persisted []*model.ExamResult
	err       error
}

func (s *captureSink) Persist(_ context.Context, res *model.ExamResult) error {
	s.persisted = append(s.persisted, res)
	return s.err
}

func demoConfig() *config.Config {
	return &config.Config{AnswerKeySecret: "test-secret"}
}

func newDemoExamService(t *testing.T, sink ResultSink) *ExamService {
	t.Helper()
	log := zerolog.Nop()
	cfg := demoConfig()
	store := storage.Resolve(context.Background(), cfg, log)
	if store.Persistent() {
		t.Fatal("store resolved as persistent without DATABASE_URL")
	}
	return NewExamService(corpus.Load(log), store, nil, sink, cfg, log)
}

func TestStartSessionDemoMode(t *testing.T) {
	svc := newDemoExamService(t, nil)

	session, err := svc.StartSession(context.Background(), "Pharmacology", 3)
	if err != nil {
		t.Fatal(err)
	}
	if session.DurationSeconds != SessionDurationSeconds {
		t.Errorf("duration = %d, want %d", session.DurationSeconds, SessionDurationSeconds)
	}
	if len(session.Questions) != 3 {
		t.Fatalf("got %d questions, want 3", len(session.Questions))
	}

	seen := make(map[string]bool)
	for _, q := range session.Questions {
		if q.ID == "" || q.Question == "" {
			t.Errorf("question %+v missing id or text", q)
		}
		if seen[q.ID] {
			t.Errorf("question %s appears twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestStartSessionDefaultsCount(t *testing.T) {
	svc := newDemoExamService(t, nil)

	session, err := svc.StartSession(context.Background(), "", 0)
	if err != nil {
		t.Fatal(err)
	}
	want := DefaultQuestionCount
	if svc.snapshot.Count() < want {
		want = svc.snapshot.Count()
	}
	if len(session.Questions) != want {
		t.Fatalf("got %d questions, want %d", len(session.Questions), want)
	}
}

func TestStartSessionUnknownTopicStillServes(t *testing.T) {
	svc := newDemoExamService(t, nil)

	session, err := svc.StartSession(context.Background(), "quantum-mechanics", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(session.Questions) == 0 {
		t.Fatal("unknown topic returned an empty session")
	}
}

func TestSubmitSessionScoring(t *testing.T) {
	svc := newDemoExamService(t, nil)

	answers := []model.SubmittedAnswer{
		{QuestionID: "1", ChosenAnswer: "B", CorrectAnswerHint: "B"},
		{QuestionID: "2", ChosenAnswer: "A", CorrectAnswerHint: "C"},
	}

	result, err := svc.SubmitSession(context.Background(), "user-1", "exam-1", answers)
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 1 {
		t.Errorf("score = %d, want 1", result.Score)
	}
	if result.Total != 2 {
		t.Errorf("total = %d, want 2", result.Total)
	}
	if result.Percentage != 50 {
		t.Errorf("percentage = %d, want 50", result.Percentage)
	}
	if !result.Passed {
		t.Error("50%% must pass")
	}
	if result.ID == "" {
		t.Error("result id not assigned")
	}
}

func TestSubmitSessionEmptyAnswers(t *testing.T) {
	svc := newDemoExamService(t, nil)

	result, err := svc.SubmitSession(context.Background(), "", "exam-1", []model.SubmittedAnswer{})
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 0 || result.Total != 0 || result.Percentage != 0 {
		t.Errorf("empty submission scored %+v, want zeros", result)
	}
	if result.Passed {
		t.Error("empty submission must not pass")
	}
}

func TestSubmitSessionRejectsMalformed(t *testing.T) {
	svc := newDemoExamService(t, nil)

	if _, err := svc.SubmitSession(context.Background(), "", "e", nil); !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("nil answers: err = %v, want ErrInvalidSubmission", err)
	}

	bad := []model.SubmittedAnswer{{ChosenAnswer: "A", CorrectAnswerHint: "A"}}
	if _, err := svc.SubmitSession(context.Background(), "", "e", bad); !errors.Is(err, ErrInvalidSubmission) {
		t.Errorf("missing question id: err = %v, want ErrInvalidSubmission", err)
	}
}

func TestSubmitSessionVerifiesAnswerKey(t *testing.T) {
	svc := newDemoExamService(t, nil)

	token := svc.signer.Sign("q1", "B")

	honest := []model.SubmittedAnswer{
		{QuestionID: "q1", ChosenAnswer: "B", CorrectAnswerHint: "B", AnswerKey: token},
	}
	result, err := svc.SubmitSession(context.Background(), "", "e", honest)
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 1 {
		t.Errorf("verified correct answer scored %d, want 1", result.Score)
	}

	// Same token, but the hint was doctored to match the chosen answer.
	forged := []model.SubmittedAnswer{
		{QuestionID: "q1", ChosenAnswer: "C", CorrectAnswerHint: "C", AnswerKey: token},
	}
	result, err = svc.SubmitSession(context.Background(), "", "e", forged)
	if err != nil {
		t.Fatal(err)
	}
	if result.Score != 0 {
		t.Errorf("forged hint scored %d, want 0", result.Score)
	}
}

func TestSubmitSessionPersistenceIsBestEffort(t *testing.T) {
	sink := &captureSink{err: errors.New("disk on fire")}
	svc := newDemoExamService(t, sink)

	answers := []model.SubmittedAnswer{
		{QuestionID: "1", ChosenAnswer: "B", CorrectAnswerHint: "B"},
	}
	result, err := svc.SubmitSession(context.Background(), "u", "e", answers)
	if err != nil {
		t.Fatalf("sink failure leaked into submission: %v", err)
	}
	if result.Score != 1 {
		t.Errorf("score = %d, want 1", result.Score)
	}
	if len(sink.persisted) != 1 {
		t.Fatalf("sink saw %d results, want 1", len(sink.persisted))
	}
}

func TestAnswerSignerRoundTrip(t *testing.T) {
	s := newAnswerSigner("secret")

	token := s.Sign("42", "B")
	if !s.Verify("42", "B", token) {
		t.Error("token does not verify for its own inputs")
	}
	if s.Verify("42", "C", token) {
		t.Error("token verified for a different answer")
	}
	if s.Verify("43", "B", token) {
		t.Error("token verified for a different question")
	}

	other := newAnswerSigner("other-secret")
	if other.Verify("42", "B", token) {
		t.Error("token verified under a different key")
	}
}

func TestAnswerSignerRandomKeyWhenUnconfigured(t *testing.T) {
	a := newAnswerSigner("")
	b := newAnswerSigner("")
	if a.Verify("1", "A", b.Sign("1", "A")) {
		t.Error("two unconfigured signers share a key")
	}
}
