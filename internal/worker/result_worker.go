package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kingsbal/kingsbal-backend/internal/config"
	"github.com/kingsbal/kingsbal-backend/internal/model"
	"github.com/kingsbal/kingsbal-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	ResultBatchSize    = 50
	ResultBatchTimeout = 2 * time.Second
	ResultPollTimeout  = 1 * time.Second
)

// resultPayload is the queue wire format. It exists because ExamResult hides
// the raw answers from API JSON; the queue needs them for the details blob.
type resultPayload struct {
	ID         string                  `json:"id"`
	UserID     string                  `json:"user_id"`
	ExamID     string                  `json:"exam_id"`
	Score      int                     `json:"score"`
	Total      int                     `json:"total"`
	Percentage int                     `json:"percentage"`
	Passed     bool                    `json:"passed"`
	Answers    []model.SubmittedAnswer `json:"answers"`
	CreatedAt  time.Time               `json:"created_at"`
}

func toPayload(res *model.ExamResult) resultPayload {
	return resultPayload{
		ID:         res.ID,
		UserID:     res.UserID,
		ExamID:     res.ExamID,
		Score:      res.Score,
		Total:      res.Total,
		Percentage: res.Percentage,
		Passed:     res.Passed,
		Answers:    res.RawAnswers,
		CreatedAt:  res.CreatedAt,
	}
}

func (p resultPayload) toResult() *model.ExamResult {
	return &model.ExamResult{
		ID:         p.ID,
		UserID:     p.UserID,
		ExamID:     p.ExamID,
		Score:      p.Score,
		Total:      p.Total,
		Percentage: p.Percentage,
		Passed:     p.Passed,
		RawAnswers: p.Answers,
		CreatedAt:  p.CreatedAt,
	}
}

// QueueSink enqueues exam results for the background worker. It satisfies
// service.ResultSink; submissions return as soon as the result is queued.
type QueueSink struct {
	rdb *redis.Client
}

func NewQueueSink(rdb *redis.Client) *QueueSink {
	return &QueueSink{rdb: rdb}
}

func (s *QueueSink) Persist(ctx context.Context, res *model.ExamResult) error {
	raw, err := json.Marshal(toPayload(res))
	if err != nil {
		return err
	}
	return s.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw).Err()
}

// RepoSink persists results synchronously. It is the sink of choice when
// PostgreSQL is configured but Redis is not.
type RepoSink struct {
	resultRepo *repository.ResultRepository
}

func NewRepoSink(pool *pgxpool.Pool) *RepoSink {
	return &RepoSink{resultRepo: repository.NewResultRepository(pool)}
}

func (s *RepoSink) Persist(ctx context.Context, res *model.ExamResult) error {
	return s.resultRepo.Insert(ctx, res)
}

// ResultWorker drains the result queue into PostgreSQL in batches. A result
// whose insert fails is requeued; scoring already happened, so nothing here
// can affect what the exam-taker saw.
type ResultWorker struct {
	pool       *pgxpool.Pool
	rdb        *redis.Client
	resultRepo *repository.ResultRepository
	log        zerolog.Logger
}

func NewResultWorker(pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *ResultWorker {
	return &ResultWorker{
		pool:       pool,
		rdb:        rdb,
		resultRepo: repository.NewResultRepository(pool),
		log:        log.With().Str("component", "result_worker").Logger(),
	}
}

func (w *ResultWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ResultWorker started")

	batch := make([]*model.ExamResult, 0, ResultBatchSize)
	lastFlush := time.Now()

	for {
		if len(batch) > 0 &&
			(len(batch) >= ResultBatchSize || time.Since(lastFlush) >= ResultBatchTimeout) {

			w.flushSafe(ctx, batch)
			batch = batch[:0]
			lastFlush = time.Now()
		}

		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. Flushing remaining batch...")
			w.flushSafe(context.Background(), batch)
			return

		default:
			item, err := w.rdb.BLPop(ctx, ResultPollTimeout, config.WorkerKey.PersistResultsQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var p resultPayload
			if err := json.Unmarshal([]byte(item[1]), &p); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload")
				continue
			}

			batch = append(batch, p.toResult())
		}
	}
}

// flushSafe tries the batch insert first and, when that fails, falls back to
// row-by-row inserts so a single bad result cannot poison the batch. Rows
// that still fail are requeued.
func (w *ResultWorker) flushSafe(ctx context.Context, batch []*model.ExamResult) {
	if len(batch) == 0 {
		return
	}

	if err := w.resultRepo.InsertBatch(ctx, batch); err != nil {
		w.log.Warn().Err(err).Msg("bulk result insert failed, using fallback")

		for _, res := range batch {
			if err := w.resultRepo.Insert(ctx, res); err != nil {
				w.log.Error().Err(err).Str("exam_id", res.ExamID).Msg("single insert failed, requeueing")
				raw, _ := json.Marshal(toPayload(res))
				w.rdb.RPush(ctx, config.WorkerKey.PersistResultsQueue, raw)
			}
		}
		return
	}

	w.log.Debug().Int("count", len(batch)).Msg("result batch persisted")
}
