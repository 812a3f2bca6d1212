// Package job runs the background audit queue on asynq.
//
// Writes to bookmarks enqueue a bookmark:audit task; the in-process worker
// consumes them and writes an audit log line.
package job

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/deppfellow/bookmarks/internal/config"
)

type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   &asynqLogger{log: logger},
			LogLevel: asynq.WarnLevel,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logger.Error().Err(err).Str("type", task.Type()).Msg("background task failed")
			}),
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

func (j *JobService) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskBookmarkAudit, j.handleBookmarkAuditTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}

// EnqueueAudit queues an audit record for a successful bookmark write.
func (j *JobService) EnqueueAudit(ctx context.Context, action string, bookmarkID int64, requestID string) error {
	task, err := NewBookmarkAuditTask(BookmarkAuditPayload{
		Action:     action,
		BookmarkID: bookmarkID,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to build audit task: %w", err)
	}

	if _, err := j.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue audit task: %w", err)
	}
	return nil
}

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct {
	log *zerolog.Logger
}

func (l *asynqLogger) Debug(args ...any) { l.log.Debug().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...any)  { l.log.Info().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...any)  { l.log.Warn().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...any) { l.log.Error().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...any) { l.log.Fatal().Str("component", "asynq").Msg(fmt.Sprint(args...)) }
