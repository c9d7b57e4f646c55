package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kingsbal/kingsbal-backend/internal/config"
	"github.com/kingsbal/kingsbal-backend/internal/corpus"
	"github.com/kingsbal/kingsbal-backend/internal/service"
	"github.com/kingsbal/kingsbal-backend/internal/storage"
	"github.com/kingsbal/kingsbal-backend/internal/validator"
	"github.com/rs/zerolog"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.Setup()

	log := zerolog.Nop()
	cfg := &config.Config{AnswerKeySecret: "test-secret"}
	store := storage.Resolve(context.Background(), cfg, log)
	snapshot := corpus.Load(log)

	examService := service.NewExamService(snapshot, store, nil, nil, cfg, log)
	questionService := service.NewQuestionService(snapshot, store, nil, log)

	examHandler := NewExamHandler(examService)
	questionHandler := NewQuestionHandler(questionService, snapshot)

	r := gin.New()
	r.POST("/exams/start", examHandler.StartExam)
	r.POST("/exams/submit", examHandler.SubmitExam)
	r.GET("/public/nursing-questions", questionHandler.PublicQuestions)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not the standard envelope: %v\n%s", err, w.Body.String())
	}
	return w, env
}

func TestStartExamEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/exams/start", gin.H{
		"topic_id": "Pharmacology",
		"limit":    5,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var session struct {
		Duration  int `json:"duration"`
		Questions []struct {
			ID            string `json:"id"`
			Question      string `json:"question"`
			CorrectAnswer string `json:"correct_answer"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil {
		t.Fatal(err)
	}
	if session.Duration != 3600 {
		t.Errorf("duration = %d, want 3600", session.Duration)
	}
	if len(session.Questions) != 5 {
		t.Errorf("got %d questions, want 5", len(session.Questions))
	}
	for _, q := range session.Questions {
		if q.CorrectAnswer != "" {
			t.Errorf("question %s leaked its correct answer", q.ID)
		}
	}
}

func TestStartExamRequiresTopic(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/exams/start", gin.H{"limit": 5})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("error = %+v, want VALIDATION_ERROR", env.Error)
	}
}

func TestSubmitExamEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodPost, "/exams/submit", gin.H{
		"exam_id": "exam-1",
		"answers": []gin.H{
			{"question_id": "1", "answer": "B", "correct_answer": "B"},
			{"question_id": "2", "answer": "A", "correct_answer": "C"},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var result struct {
		Score      int  `json:"score"`
		Total      int  `json:"total"`
		Percentage int  `json:"percentage"`
		Passed     bool `json:"passed"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatal(err)
	}
	if result.Score != 1 || result.Total != 2 || result.Percentage != 50 || !result.Passed {
		t.Errorf("result = %+v, want score 1/2, 50%%, passed", result)
	}
}

func TestSubmitExamRejectsMissingAnswers(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/exams/submit", gin.H{"exam_id": "e"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestPublicQuestionsRedactsAndCaps(t *testing.T) {
	r := newTestRouter(t)

	w, env := doJSON(t, r, http.MethodGet, "/public/nursing-questions?limit=500", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var payload struct {
		Questions []corpus.QuestionRecord `json:"questions"`
		Count     int                     `json:"count"`
	}
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		t.Fatal(err)
	}
	if payload.Count != len(payload.Questions) {
		t.Errorf("count = %d but %d questions returned", payload.Count, len(payload.Questions))
	}
	if payload.Count > publicQuestionLimit {
		t.Errorf("count = %d exceeds the public cap", payload.Count)
	}
	for _, q := range payload.Questions {
		if q.CorrectAnswer != "" || q.Explanation != "" {
			t.Errorf("question %s shipped with answer material", q.ID)
		}
	}
}
