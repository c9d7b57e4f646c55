package model

import "encoding/json"

// Question represents one stored question row. The correct answer and
// explanation are omitted from JSON unless explicitly requested by an
// admin-facing surface.
type Question struct {
	ID            int             `json:"id"`
	TopicID       int             `json:"topic_id"`
	Type          string          `json:"type"`
	Difficulty    string          `json:"difficulty"`
	Question      string          `json:"question"`
	Options       json.RawMessage `json:"options,omitempty"`
	CorrectAnswer string          `json:"-"`
	Explanation   string          `json:"-"`
}

// GenerateQuestionRequest is the payload for AI-assisted question authoring.
type GenerateQuestionRequest struct {
	Topic      string `json:"topic" binding:"required,min=2,max=150"`
	Type       string `json:"type" binding:"omitempty,oneof=mcq essay fill_blank clinical"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

// SessionQuestion is the redacted question shape shipped inside an exam
// session payload. AnswerKey is a server-signed token over the correct
// answer, issued only for demo-mode sessions where no durable answer store
// exists; it lets the submission be verified without trusting a bare
// client-echoed answer.
type SessionQuestion struct {
	ID        string            `json:"id"`
	Question  string            `json:"question"`
	Options   map[string]string `json:"options,omitempty"`
	AnswerKey string            `json:"answer_key,omitempty"`
}
