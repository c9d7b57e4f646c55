package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/kingsbal/kingsbal-backend/internal/corpus"
	"github.com/kingsbal/kingsbal-backend/internal/model"
	"github.com/kingsbal/kingsbal-backend/internal/storage"
	"github.com/rs/zerolog"
)

func newDemoCurriculumService(t *testing.T) *CurriculumService {
	t.Helper()
	log := zerolog.Nop()
	store := storage.Resolve(context.Background(), demoConfig(), log)
	return NewCurriculumService(corpus.Load(log), store, nil, log)
}

func TestGetTopicsDemoMode(t *testing.T) {
	svc := newDemoCurriculumService(t)

	topics, err := svc.GetTopics(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(topics) == 0 {
		t.Fatal("demo mode returned no topics")
	}

	titles := make([]string, len(topics))
	seen := make(map[string]bool)
	for i, topic := range topics {
		if topic.ID < 1 {
			t.Errorf("topic %q has id %d", topic.Title, topic.ID)
		}
		if seen[topic.Title] {
			t.Errorf("topic %q listed twice", topic.Title)
		}
		seen[topic.Title] = true
		titles[i] = topic.Title
	}
	if !sort.StringsAreSorted(titles) {
		t.Errorf("topics not sorted: %v", titles)
	}
}

func TestGetTopicDemoModeMissing(t *testing.T) {
	svc := newDemoCurriculumService(t)

	topic, err := svc.GetTopic(context.Background(), 99999)
	if err != nil {
		t.Fatal(err)
	}
	if topic != nil {
		t.Fatalf("expected no topic, got %+v", topic)
	}
}

func TestCreateTopicDemoModeRejected(t *testing.T) {
	svc := newDemoCurriculumService(t)

	err := svc.CreateTopic(context.Background(), &model.Topic{Title: "New Topic"})
	if !errors.Is(err, storage.ErrNotPersistent) {
		t.Fatalf("err = %v, want ErrNotPersistent", err)
	}
}
