package processor

import (
	"context"

	"bookreviews/pkg/logger"
	"bookreviews/pkg/metrics"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// UserRefresher перезагружает текущего пользователя, помеченного для обновления
type UserRefresher interface {
	RefreshCurrentUser(ctx context.Context) error
}

// BookRefresher перезагружает текущую книгу, помеченную для обновления
type BookRefresher interface {
	RefreshCurrentBook(ctx context.Context) error
}

// ReconcileScheduler периодически обновляет помеченные срезы локального состояния.
// Расхождения между отзывом и пользователем чинятся при следующем переключении лайка.
type ReconcileScheduler struct {
	cron  *cron.Cron
	users UserRefresher
	books BookRefresher
	log   zerolog.Logger
}

func NewReconcileScheduler(users UserRefresher, books BookRefresher) *ReconcileScheduler {
	log := logger.WithComponent("reconcile_scheduler")
	c := cron.New(cron.WithLogger(cron.PrintfLogger(&log)))

	return &ReconcileScheduler{
		cron:  c,
		users: users,
		books: books,
		log:   log,
	}
}

func (s *ReconcileScheduler) Start(ctx context.Context, schedule string) error {
	s.log.Info().Str("schedule", schedule).Msg("starting reconcile scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		s.Reconcile(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()

	// Начальная сверка сразу после восстановления состояния
	s.Reconcile(ctx)

	return nil
}

// Reconcile один проход; ошибки логируются, следующий проход повторит попытку
func (s *ReconcileScheduler) Reconcile(ctx context.Context) {
	status := "success"

	if err := s.users.RefreshCurrentUser(ctx); err != nil {
		status = "failed"
		s.log.Error().Err(err).Msg("failed to refresh current user")
	}

	if err := s.books.RefreshCurrentBook(ctx); err != nil {
		status = "failed"
		s.log.Error().Err(err).Msg("failed to refresh current book")
	}

	metrics.ReconcileRunsTotal.WithLabelValues(status).Inc()
	s.log.Debug().Str("status", status).Msg("reconcile pass finished")
}

func (s *ReconcileScheduler) Stop() {
	s.log.Info().Msg("stopping reconcile scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("reconcile scheduler stopped")
}

func (s *ReconcileScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
