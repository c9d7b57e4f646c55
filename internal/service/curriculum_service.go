package service

import (
	"context"
	"sort"
	"strconv"

	"github.com/kingsbal/kingsbal-backend/internal/corpus"
	"github.com/kingsbal/kingsbal-backend/internal/model"
	"github.com/kingsbal/kingsbal-backend/internal/repository"
	"github.com/kingsbal/kingsbal-backend/internal/storage"
	"github.com/rs/zerolog"
)

// CurriculumService serves the topic catalogue. In demo mode topics are
// derived from the corpus snapshot instead of the store.
type CurriculumService struct {
	snapshot  *corpus.Snapshot
	store     *storage.Store
	topicRepo *repository.TopicRepository
	log       zerolog.Logger
}

func NewCurriculumService(snapshot *corpus.Snapshot, store *storage.Store, topicRepo *repository.TopicRepository, log zerolog.Logger) *CurriculumService {
	return &CurriculumService{
		snapshot:  snapshot,
		store:     store,
		topicRepo: topicRepo,
		log:       log.With().Str("component", "curriculum_service").Logger(),
	}
}

// GetTopics lists all topics. A store failure degrades to the corpus-derived
// catalogue for this one call.
func (s *CurriculumService) GetTopics(ctx context.Context) ([]model.Topic, error) {
	if s.store.Persistent() {
		topics, err := s.topicRepo.GetAll(ctx)
		if err == nil {
			return topics, nil
		}
		s.log.Warn().Err(err).Msg("topic query failed, serving corpus-derived topics")
	}
	return s.corpusTopics(), nil
}

// GetTopicsByCategory lists topics in one category.
func (s *CurriculumService) GetTopicsByCategory(ctx context.Context, category string) ([]model.Topic, error) {
	if s.store.Persistent() {
		topics, err := s.topicRepo.GetByCategory(ctx, category)
		if err == nil {
			return topics, nil
		}
		s.log.Warn().Err(err).Str("category", category).Msg("topic query failed, serving corpus-derived topics")
	}

	var filtered []model.Topic
	for _, t := range s.corpusTopics() {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// GetTopic returns one topic by id, or nil when it does not exist. In demo
// mode the id indexes the corpus-derived catalogue.
func (s *CurriculumService) GetTopic(ctx context.Context, id int) (*model.Topic, error) {
	if s.store.Persistent() {
		return s.topicRepo.GetByID(ctx, id)
	}

	for _, t := range s.corpusTopics() {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, nil
}

// CreateTopic inserts a topic. This write has no safe demo fallback, so a
// missing store is surfaced to the caller instead of silently dropped.
func (s *CurriculumService) CreateTopic(ctx context.Context, t *model.Topic) error {
	if !s.store.Persistent() {
		return storage.ErrNotPersistent
	}
	return s.topicRepo.Create(ctx, t)
}

// corpusTopics derives a stable topic catalogue from the snapshot: one entry
// per distinct topic label, ordered alphabetically, ids assigned by position.
func (s *CurriculumService) corpusTopics() []model.Topic {
	byTitle := make(map[string]string)
	for _, q := range s.snapshot.All() {
		label := q.TopicLabel()
		if label == "" {
			continue
		}
		if _, ok := byTitle[label]; !ok {
			byTitle[label] = q.Subject
		}
	}

	titles := make([]string, 0, len(byTitle))
	for title := range byTitle {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	topics := make([]model.Topic, 0, len(titles))
	for i, title := range titles {
		topics = append(topics, model.Topic{
			ID:          i + 1,
			Title:       title,
			Category:    byTitle[title],
			Description: "Practice questions for " + title + " (demo set " + strconv.Itoa(i+1) + ")",
		})
	}
	return topics
}
