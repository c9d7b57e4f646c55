package model

import "time"

// SubmittedAnswer is one answer inside an exam submission.
//
// CorrectAnswerHint and AnswerKey only matter in demo mode, where the server
// holds no durable answer record: the hint is the answer the client was shown
// and the key is the server-signed token issued with the session. A submission
// carrying a valid key is verified cryptographically; a bare hint is accepted
// for compatibility but is client-trusted and logged as such.
type SubmittedAnswer struct {
	QuestionID        string `json:"question_id" binding:"required"`
	ChosenAnswer      string `json:"answer"`
	CorrectAnswerHint string `json:"correct_answer,omitempty"`
	AnswerKey         string `json:"answer_key,omitempty"`
}

// SubmitExamRequest is the payload for submitting a CBT session.
type SubmitExamRequest struct {
	ExamID  string            `json:"exam_id"`
	Answers []SubmittedAnswer `json:"answers" binding:"required,dive"`
}

// StartExamRequest is the payload for starting a CBT session.
type StartExamRequest struct {
	TopicID        string `json:"topic_id" binding:"required"`
	RequestedCount int    `json:"limit" binding:"min=0,max=200"`
}

// ExamSession is the payload returned when a session starts.
type ExamSession struct {
	DurationSeconds int               `json:"duration"`
	Questions       []SessionQuestion `json:"questions"`
}

// ExamResult is the scored outcome of one submission.
type ExamResult struct {
	ID         string            `json:"id,omitempty"`
	UserID     string            `json:"user_id,omitempty"`
	ExamID     string            `json:"exam_id"`
	Score      int               `json:"score"`
	Total      int               `json:"total"`
	Percentage int               `json:"percentage"`
	Passed     bool              `json:"passed"`
	RawAnswers []SubmittedAnswer `json:"-"`
	CreatedAt  time.Time         `json:"created_at"`
}
