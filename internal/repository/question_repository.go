package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingsbal/kingsbal-backend/internal/model"
)

// QuestionRepository handles question data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListRandomMCQByTopic draws up to limit multiple-choice questions for a
// topic in random order. The correct answer is intentionally not selected;
// session payloads must never carry it.
func (r *QuestionRepository) ListRandomMCQByTopic(ctx context.Context, topicID, limit int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, topic_id, type, COALESCE(difficulty, 'medium'), question, options
		 FROM questions
		 WHERE topic_id = $1 AND type = 'mcq' AND COALESCE(is_active, TRUE)
		 ORDER BY RANDOM()
		 LIMIT $2`, topicID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// ListByTopic returns every question for a topic ordered by difficulty.
func (r *QuestionRepository) ListByTopic(ctx context.Context, topicID int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, topic_id, type, COALESCE(difficulty, 'medium'), question, options
		 FROM questions
		 WHERE topic_id = $1 AND COALESCE(is_active, TRUE)
		 ORDER BY difficulty`, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// ListByTopicWithAnswers returns a topic's questions including the correct
// answer and explanation, for study-mode listings.
func (r *QuestionRepository) ListByTopicWithAnswers(ctx context.Context, topicID int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, topic_id, type, COALESCE(difficulty, 'medium'), question, options,
		        COALESCE(correct_answer, ''), COALESCE(explanation, '')
		 FROM questions
		 WHERE topic_id = $1 AND COALESCE(is_active, TRUE)
		 ORDER BY difficulty`, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.TopicID, &q.Type, &q.Difficulty, &q.Question, &q.Options,
			&q.CorrectAnswer, &q.Explanation); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// ListClinicalByTopic returns the clinical/OSCE prompts for a topic.
func (r *QuestionRepository) ListClinicalByTopic(ctx context.Context, topicID int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, topic_id, type, COALESCE(difficulty, 'medium'), question, options
		 FROM questions
		 WHERE topic_id = $1 AND type = 'clinical' AND COALESCE(is_active, TRUE)
		 ORDER BY id`, topicID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanQuestions(rows)
}

// GetCorrectAnswer looks up the stored correct answer for one question.
func (r *QuestionRepository) GetCorrectAnswer(ctx context.Context, questionID int) (string, error) {
	var answer string
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(correct_answer, '') FROM questions WHERE id = $1`, questionID,
	).Scan(&answer)
	return answer, err
}

type questionRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanQuestions(rows questionRows) ([]model.Question, error) {
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.TopicID, &q.Type, &q.Difficulty, &q.Question, &q.Options); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}
