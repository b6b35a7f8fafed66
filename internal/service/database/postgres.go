package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/kapu/channel-dashboard-go/internal/domain"
	"github.com/kapu/channel-dashboard-go/pkg/errors"
)

// PostgresService mirrors the spreadsheet logs into PostgreSQL for local
// querying. It is optional: when disabled the sheets store is the only
// persistence. The schema (daily_snapshots, video_records, goal_sets) is
// provisioned out of band.
type PostgresService struct {
	db     *sql.DB
	logger *zap.Logger
}

type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

func NewPostgresService(cfg Config, logger *zap.Logger) (*PostgresService, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database)

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info("PostgreSQL connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
	)

	return &PostgresService{db: db, logger: logger}, nil
}

func (ps *PostgresService) Close() error {
	if ps.db != nil {
		return ps.db.Close()
	}
	return nil
}

func (ps *PostgresService) Ping(ctx context.Context) error {
	return ps.db.PingContext(ctx)
}

func (ps *PostgresService) AppendDailySnapshot(ctx context.Context, s domain.DailySnapshot) error {
	query := `
		INSERT INTO daily_snapshots (
			date, subscribers, total_views, video_count, revenue, cpm, rpm,
			new_subscribers, impressions_ctr, avg_view_duration, avg_view_percentage
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := ps.db.ExecContext(ctx, query,
		s.Date, s.Subscribers, s.TotalViews, s.VideoCount, s.Revenue, s.CPM, s.RPM,
		s.NewSubscribers, s.ImpressionsCTR, s.AvgViewDuration, s.AvgViewPercentage,
	)
	if err != nil {
		return errors.NewPersistenceError("failed to archive daily snapshot", "insert", "daily_snapshots", err)
	}
	return nil
}

func (ps *PostgresService) AppendVideoRecord(ctx context.Context, v domain.VideoRecord) error {
	query := `
		INSERT INTO video_records (
			video_id, title, published_at, views, likes, comments, duration, thumbnail_url, recorded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`

	_, err := ps.db.ExecContext(ctx, query,
		v.ID, v.Title, v.PublishedAt, v.Views, v.Likes, v.Comments, v.DurationISO, v.ThumbnailURL,
	)
	if err != nil {
		return errors.NewPersistenceError(
			fmt.Sprintf("failed to archive video %s", v.ID), "insert", "video_records", err)
	}
	return nil
}

func (ps *PostgresService) AppendGoalSet(ctx context.Context, g domain.GoalSet) error {
	query := `
		INSERT INTO goal_sets (
			set_at, target_24h_views, target_daily_views,
			target_monthly_revenue, target_daily_revenue, target_like_rate
		) VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := ps.db.ExecContext(ctx, query,
		g.SetAt, g.Target24hViews, g.TargetDailyViews,
		g.TargetMonthlyRevenue, g.TargetDailyRevenue, g.TargetLikeRate,
	)
	if err != nil {
		return errors.NewPersistenceError("failed to archive goal set", "insert", "goal_sets", err)
	}
	return nil
}

// ReadLatestSnapshots returns the most recent archived snapshots, newest
// first.
func (ps *PostgresService) ReadLatestSnapshots(ctx context.Context, limit int) ([]domain.DailySnapshot, error) {
	query := `
		SELECT date, subscribers, total_views, video_count, revenue, cpm, rpm,
		       new_subscribers, impressions_ctr, avg_view_duration, avg_view_percentage
		FROM daily_snapshots
		ORDER BY date DESC
		LIMIT $1
	`

	rows, err := ps.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, errors.NewPersistenceError("failed to read archived snapshots", "select", "daily_snapshots", err)
	}
	defer rows.Close()

	var out []domain.DailySnapshot
	for rows.Next() {
		var s domain.DailySnapshot
		if err := rows.Scan(
			&s.Date, &s.Subscribers, &s.TotalViews, &s.VideoCount, &s.Revenue, &s.CPM, &s.RPM,
			&s.NewSubscribers, &s.ImpressionsCTR, &s.AvgViewDuration, &s.AvgViewPercentage,
		); err != nil {
			return nil, errors.NewPersistenceError("failed to scan snapshot row", "select", "daily_snapshots", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewPersistenceError("failed to iterate snapshot rows", "select", "daily_snapshots", err)
	}
	return out, nil
}
