package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/financeflow/financeflow/internal/logger"
)

// slowQuery is the duration above which a statement is logged at warn level
const slowQuery = 250 * time.Millisecond

// queryTrace times one statement. Bound values are never logged since the
// auths table carries password hashes; only their count is.
type queryTrace struct {
	logger *logger.Logger
	query  string
	args   int
	txID   string
	start  time.Time
}

func startTrace(logger *logger.Logger, query string, args int, txID string) queryTrace {
	return queryTrace{
		logger: logger,
		query:  strings.Join(strings.Fields(query), " "),
		args:   args,
		txID:   txID,
		start:  time.Now(),
	}
}

func (t queryTrace) done(err error) {
	elapsed := time.Since(t.start)
	fields := []interface{}{
		"duration_ms", elapsed.Milliseconds(),
		"query", t.query,
		"args", t.args,
	}
	if t.txID != "" {
		fields = append(fields, "tx_id", t.txID)
	}

	switch {
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		t.logger.Errorw("database query failed", append(fields, "error", err)...)
	case elapsed > slowQuery:
		t.logger.Warnw("slow database query", fields...)
	default:
		t.logger.Debugw("database query completed", fields...)
	}
}

// TracedQuerier logs every statement run through the wrapped Querier
type TracedQuerier struct {
	Querier
	logger *logger.Logger
	txID   string
}

func NewTracedQuerier(q Querier, logger *logger.Logger, txID string) *TracedQuerier {
	return &TracedQuerier{
		Querier: q,
		logger:  logger,
		txID:    txID,
	}
}

func (tq *TracedQuerier) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	trace := startTrace(tq.logger, query, len(args), tq.txID)
	result, err := tq.Querier.ExecContext(ctx, query, args...)
	trace.done(err)
	return result, err
}

func (tq *TracedQuerier) NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	trace := startTrace(tq.logger, query, strings.Count(query, ":"), tq.txID)
	result, err := tq.Querier.NamedExecContext(ctx, query, arg)
	trace.done(err)
	return result, err
}

func (tq *TracedQuerier) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	trace := startTrace(tq.logger, query, len(args), tq.txID)
	err := tq.Querier.GetContext(ctx, dest, query, args...)
	trace.done(err)
	return err
}

func (tq *TracedQuerier) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	trace := startTrace(tq.logger, query, len(args), tq.txID)
	err := tq.Querier.SelectContext(ctx, dest, query, args...)
	trace.done(err)
	return err
}
