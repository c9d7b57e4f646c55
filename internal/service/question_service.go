package service

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/kingsbal/kingsbal-backend/internal/corpus"
	"github.com/kingsbal/kingsbal-backend/internal/model"
	"github.com/kingsbal/kingsbal-backend/internal/repository"
	"github.com/kingsbal/kingsbal-backend/internal/storage"
	"github.com/rs/zerolog"
)

// QuestionService serves study-mode question listings. Results are shaped as
// corpus records regardless of whether they came from the store or the
// snapshot, so callers see one format in both modes.
type QuestionService struct {
	snapshot     *corpus.Snapshot
	store        *storage.Store
	questionRepo *repository.QuestionRepository
	log          zerolog.Logger
}

func NewQuestionService(snapshot *corpus.Snapshot, store *storage.Store, questionRepo *repository.QuestionRepository, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		snapshot:     snapshot,
		store:        store,
		questionRepo: questionRepo,
		log:          log.With().Str("component", "question_service").Logger(),
	}
}

// ListByTopic returns a topic's questions, answers included, ordered by
// difficulty in persistent mode. Store failures and misses degrade to the
// corpus, which itself substitutes the fallback set for unknown topics.
func (s *QuestionService) ListByTopic(ctx context.Context, topicID string) []corpus.QuestionRecord {
	if s.store.Persistent() {
		if id, err := strconv.Atoi(topicID); err == nil {
			rows, err := s.questionRepo.ListByTopicWithAnswers(ctx, id)
			if err != nil {
				s.log.Warn().Err(err).Str("topic_id", topicID).Msg("question listing failed, using corpus")
			} else if len(rows) > 0 {
				return rowsToRecords(rows)
			}
		}
	}
	return s.snapshot.ByTopic(topicID)
}

// ListClinicalByTopic returns the clinical/OSCE prompts for a topic. Unlike
// MCQ listings, an empty result is legitimate here: not every topic has
// clinical prompts and substituting MCQs would be wrong.
func (s *QuestionService) ListClinicalByTopic(ctx context.Context, topicID string) []corpus.QuestionRecord {
	if s.store.Persistent() {
		if id, err := strconv.Atoi(topicID); err == nil {
			rows, err := s.questionRepo.ListClinicalByTopic(ctx, id)
			if err != nil {
				s.log.Warn().Err(err).Str("topic_id", topicID).Msg("clinical listing failed, using corpus")
			} else if len(rows) > 0 {
				return rowsToRecords(rows)
			}
		}
	}

	var clinical []corpus.QuestionRecord
	for _, q := range s.snapshot.ByTopic(topicID) {
		if q.Type == corpus.TypeClinical {
			clinical = append(clinical, q)
		}
	}
	return clinical
}

func rowsToRecords(rows []model.Question) []corpus.QuestionRecord {
	records := make([]corpus.QuestionRecord, 0, len(rows))
	for _, q := range rows {
		rec := corpus.QuestionRecord{
			ID:            strconv.Itoa(q.ID),
			Type:          corpus.QuestionType(q.Type),
			Difficulty:    q.Difficulty,
			Question:      q.Question,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if len(q.Options) > 0 {
			_ = json.Unmarshal(q.Options, &rec.Options)
		}
		records = append(records, rec)
	}
	return records
}
