package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingsbal/kingsbal-backend/internal/model"
)

// ResultRepository persists scored exam submissions.
type ResultRepository struct {
	pool *pgxpool.Pool
}

func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// Insert writes one exam result. The raw answers are stored as a JSON
// details blob alongside the aggregate score.
func (r *ResultRepository) Insert(ctx context.Context, res *model.ExamResult) error {
	details, err := json.Marshal(map[string]any{"answers": res.RawAnswers})
	if err != nil {
		return err
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO results (user_id, exam_id, score, total, percentage, details, created_at)
		 VALUES (NULLIF($1, ''), $2, $3, $4, $5, $6, $7)`,
		res.UserID, res.ExamID, res.Score, res.Total, res.Percentage, details, res.CreatedAt,
	)
	return err
}

// InsertBatch writes many results in a single statement via UNNEST. If it
// fails the caller should fall back to Insert per row to isolate the bad one.
func (r *ResultRepository) InsertBatch(ctx context.Context, results []*model.ExamResult) error {
	if len(results) == 0 {
		return nil
	}

	userIDs := make([]string, len(results))
	examIDs := make([]string, len(results))
	scores := make([]int, len(results))
	totals := make([]int, len(results))
	percentages := make([]int, len(results))
	details := make([]string, len(results))
	createdAts := make([]time.Time, len(results))

	for i, res := range results {
		blob, err := json.Marshal(map[string]any{"answers": res.RawAnswers})
		if err != nil {
			return err
		}
		userIDs[i] = res.UserID
		examIDs[i] = res.ExamID
		scores[i] = res.Score
		totals[i] = res.Total
		percentages[i] = res.Percentage
		details[i] = string(blob)
		createdAts[i] = res.CreatedAt
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO results (user_id, exam_id, score, total, percentage, details, created_at)
		 SELECT NULLIF(u, ''), e, s, t, p, d::jsonb, c
		 FROM UNNEST(
			$1::text[], $2::text[], $3::int[], $4::int[], $5::int[], $6::text[], $7::timestamptz[]
		 ) AS x(u, e, s, t, p, d, c)`,
		userIDs, examIDs, scores, totals, percentages, details, createdAts,
	)
	return err
}
