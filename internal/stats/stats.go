package stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/awessel/todo-api/internal/metrics"
	"github.com/awessel/todo-api/internal/repo"
)

// Run starts a background cron job that refreshes the users_total and
// todos_total gauges every minute. It returns the cron handle so the
// caller can Stop it on shutdown.
func Run(users *repo.UserRepo, todos *repo.TodoRepo) *cron.Cron {
	c := cron.New()

	refresh := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if n, err := users.Count(ctx); err != nil {
			slog.Warn("stats: count users", "error", err)
		} else {
			metrics.UsersTotal.Set(float64(n))
		}

		if n, err := todos.Count(ctx); err != nil {
			slog.Warn("stats: count todos", "error", err)
		} else {
			metrics.TodosTotal.Set(float64(n))
		}
	}

	if _, err := c.AddFunc("@every 1m", refresh); err != nil {
		slog.Error("stats: add cron func", "error", err)
		return c
	}

	refresh()
	c.Start()
	return c
}
