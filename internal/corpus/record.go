package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// QuestionType classifies a question record.
type QuestionType string

const (
	TypeMCQ       QuestionType = "mcq"
	TypeEssay     QuestionType = "essay"
	TypeFillBlank QuestionType = "fill_blank"
	TypeClinical  QuestionType = "clinical"
)

// Difficulty levels recognized in the corpus.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DifficultyPro    = "pro"
)

// QuestionRecord is the normalized representation of one question,
// regardless of which source it was loaded from.
type QuestionRecord struct {
	ID            string            `json:"id"`
	Topic         string            `json:"topic"`
	Subject       string            `json:"subject,omitempty"`
	Type          QuestionType      `json:"type"`
	Difficulty    string            `json:"difficulty"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options,omitempty"`
	CorrectAnswer string            `json:"correct_answer,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
}

// sourceRecord is the loose shape question sources actually ship. Sources are
// heterogeneous and unreliable; every field is optional here and normalize
// decides what survives.
type sourceRecord struct {
	ID            json.Number       `json:"id"`
	Topic         string            `json:"topic"`
	Subject       string            `json:"subject"`
	Name          string            `json:"name"`
	Type          string            `json:"type"`
	Difficulty    string            `json:"difficulty"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
}

var errMalformedRecord = errors.New("malformed question record")

// normalize maps one raw source record into a QuestionRecord. Records with no
// prompt, or MCQ records with no options, are rejected individually so one
// bad record never poisons its source.
func normalize(raw sourceRecord, sourceName string, ordinal int) (QuestionRecord, error) {
	question := strings.TrimSpace(raw.Question)
	if question == "" {
		return QuestionRecord{}, fmt.Errorf("%w: empty question text", errMalformedRecord)
	}

	qType := QuestionType(strings.ToLower(strings.TrimSpace(raw.Type)))
	switch qType {
	case TypeMCQ, TypeEssay, TypeFillBlank, TypeClinical:
	case "":
		// Untyped records: options imply MCQ, otherwise treat as clinical
		// prose, matching how the question bank was authored.
		if len(raw.Options) > 0 {
			qType = TypeMCQ
		} else {
			qType = TypeClinical
		}
	default:
		return QuestionRecord{}, fmt.Errorf("%w: unknown type %q", errMalformedRecord, raw.Type)
	}

	if qType == TypeMCQ && len(raw.Options) == 0 {
		return QuestionRecord{}, fmt.Errorf("%w: mcq without options", errMalformedRecord)
	}

	difficulty := strings.ToLower(strings.TrimSpace(raw.Difficulty))
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyPro:
	default:
		difficulty = DifficultyMedium
	}

	id := raw.ID.String()
	if id == "" {
		id = fmt.Sprintf("%s-%d", sourceName, ordinal)
	}

	topic := strings.TrimSpace(raw.Topic)
	if topic == "" {
		topic = strings.TrimSpace(raw.Name)
	}

	return QuestionRecord{
		ID:            id,
		Topic:         topic,
		Subject:       strings.TrimSpace(raw.Subject),
		Type:          qType,
		Difficulty:    difficulty,
		Question:      question,
		Options:       raw.Options,
		CorrectAnswer: strings.TrimSpace(raw.CorrectAnswer),
		Explanation:   raw.Explanation,
	}, nil
}

// ParseGenerated validates a machine-authored JSON blob against the record
// shape. It is stricter than source loading: an MCQ whose correct answer is
// not one of its own option keys is rejected, since a generator that cannot
// keep that straight cannot be trusted with the rest of the record either.
func ParseGenerated(data []byte, topic, difficulty string) (QuestionRecord, error) {
	var raw sourceRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return QuestionRecord{}, fmt.Errorf("%w: %v", errMalformedRecord, err)
	}
	if raw.Topic == "" {
		raw.Topic = topic
	}
	if raw.Difficulty == "" {
		raw.Difficulty = difficulty
	}

	q, err := normalize(raw, "generated", 1)
	if err != nil {
		return QuestionRecord{}, err
	}

	if q.Type == TypeMCQ {
		if _, ok := q.Options[q.CorrectAnswer]; !ok {
			return QuestionRecord{}, fmt.Errorf("%w: correct answer %q not among options", errMalformedRecord, q.CorrectAnswer)
		}
	}
	return q, nil
}

// TopicLabel returns the label used for topic filtering: the topic when set,
// falling back to the subject.
func (q QuestionRecord) TopicLabel() string {
	if q.Topic != "" {
		return q.Topic
	}
	return q.Subject
}

// Redacted returns a copy safe to ship to an exam-taker: the correct answer
// and explanation are stripped.
func (q QuestionRecord) Redacted() QuestionRecord {
	q.CorrectAnswer = ""
	q.Explanation = ""
	return q
}
