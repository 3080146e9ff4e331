package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tsvs/backend/internal/infrastructure/config"
)

type contextKey string

const queryStartKey contextKey = "db_query_start"

// InstrumentDB registers otelgorm on db and annotates its spans with row counts
// and a slow query flag. It is a no-op when database tracing is disabled.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger) error {
	if !cfg.Enabled || !cfg.DBTraceEnabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(db.Name())}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	annotate := slowQueryAnnotator(cfg.DBSlowQueryThresh)
	cb := db.Callback()
	for _, err := range []error{
		cb.Create().Before("gorm:create").Register("tsvs_timing:before_create", markStart),
		cb.Query().Before("gorm:query").Register("tsvs_timing:before_query", markStart),
		cb.Update().Before("gorm:update").Register("tsvs_timing:before_update", markStart),
		cb.Delete().Before("gorm:delete").Register("tsvs_timing:before_delete", markStart),
		cb.Row().Before("gorm:row").Register("tsvs_timing:before_row", markStart),
		cb.Raw().Before("gorm:raw").Register("tsvs_timing:before_raw", markStart),
		cb.Create().After("gorm:create").Register("tsvs_timing:after_create", annotate),
		cb.Query().After("gorm:query").Register("tsvs_timing:after_query", annotate),
		cb.Update().After("gorm:update").Register("tsvs_timing:after_update", annotate),
		cb.Delete().After("gorm:delete").Register("tsvs_timing:after_delete", annotate),
		cb.Row().After("gorm:row").Register("tsvs_timing:after_row", annotate),
		cb.Raw().After("gorm:raw").Register("tsvs_timing:after_raw", annotate),
	} {
		if err != nil {
			return err
		}
	}

	logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", cfg.DBLogFullSQL),
		zap.Duration("slow_query_threshold", cfg.DBSlowQueryThresh),
	)
	return nil
}

func markStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey, time.Now())
	}
}

func slowQueryAnnotator(threshold time.Duration) func(*gorm.DB) {
	return func(db *gorm.DB) {
		ctx := db.Statement.Context
		if ctx == nil {
			return
		}
		span := trace.SpanFromContext(ctx)
		if !span.IsRecording() {
			return
		}

		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
		if db.Statement.Table != "" {
			span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
		}
		if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, db.Error.Error())
			span.RecordError(db.Error)
		}
		if start, ok := ctx.Value(queryStartKey).(time.Time); ok && threshold > 0 {
			if elapsed := time.Since(start); elapsed > threshold {
				span.SetAttributes(
					attribute.Bool("db.slow_query", true),
					attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
				)
			}
		}
	}
}
