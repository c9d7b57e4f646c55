package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingsbal/kingsbal-backend/internal/model"
)

// TopicRepository handles curriculum topic data access.
type TopicRepository struct {
	pool *pgxpool.Pool
}

func NewTopicRepository(pool *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{pool: pool}
}

func (r *TopicRepository) GetAll(ctx context.Context) ([]model.Topic, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, COALESCE(category, ''), COALESCE(description, '')
		 FROM topics ORDER BY category, title`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &t.Description); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (r *TopicRepository) GetByCategory(ctx context.Context, category string) ([]model.Topic, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, COALESCE(category, ''), COALESCE(description, '')
		 FROM topics WHERE category = $1 ORDER BY title`, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &t.Description); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (r *TopicRepository) GetByID(ctx context.Context, id int) (*model.Topic, error) {
	var t model.Topic
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, COALESCE(category, ''), COALESCE(description, '')
		 FROM topics WHERE id = $1`, id,
	).Scan(&t.ID, &t.Title, &t.Category, &t.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TopicRepository) Create(ctx context.Context, t *model.Topic) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO topics (title, category, description) VALUES ($1, $2, NULLIF($3, ''))
		 RETURNING id`,
		t.Title, t.Category, t.Description,
	).Scan(&t.ID)
}
