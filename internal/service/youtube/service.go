package youtube

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/kapu/channel-dashboard-go/internal/domain"
	"github.com/kapu/channel-dashboard-go/internal/service/cache"
	"github.com/kapu/channel-dashboard-go/pkg/errors"
)

const (
	dailyQuotaLimit   = 10000
	searchQuotaCost   = 100 // search.list cost
	listQuotaCost     = 1   // channels.list / videos.list cost
	quotaSafetyMargin = 500

	statsFetchConcurrency = 4

	channelStatsCacheTTL = 30 * time.Minute
	recentVideosCacheTTL = 15 * time.Minute
)

// Service fetches public channel and video statistics from the YouTube Data
// API v3. It is the only remote collaborator the dashboard core has for
// metrics; failures surface as ProviderError without retry.
type Service struct {
	service   *youtube.Service
	cache     *cache.Service
	logger    *zap.Logger
	channelID string

	quotaMu    sync.Mutex
	quotaUsed  int
	quotaReset time.Time
}

// NewService builds an API-key backed client.
func NewService(ctx context.Context, apiKey, channelID string, cacheSvc *cache.Service, logger *zap.Logger) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return newService(svc, channelID, cacheSvc, logger), nil
}

// NewServiceWithClient builds a client on an authorized OAuth HTTP client.
func NewServiceWithClient(ctx context.Context, client *http.Client, channelID string, cacheSvc *cache.Service, logger *zap.Logger) (*Service, error) {
	if client == nil {
		return nil, fmt.Errorf("authorized HTTP client is required")
	}

	svc, err := youtube.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return newService(svc, channelID, cacheSvc, logger), nil
}

func newService(svc *youtube.Service, channelID string, cacheSvc *cache.Service, logger *zap.Logger) *Service {
	s := &Service{
		service:    svc,
		cache:      cacheSvc,
		logger:     logger,
		channelID:  channelID,
		quotaReset: nextQuotaReset(),
	}
	logger.Info("YouTube service initialized",
		zap.String("channel_id", channelID),
		zap.Time("quota_reset", s.quotaReset))
	return s
}

// The Data API quota resets at midnight Pacific time.
func nextQuotaReset() time.Time {
	pt, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		pt = time.FixedZone("PT", -8*60*60)
	}
	now := time.Now().In(pt)
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, pt)
}

func (s *Service) checkQuota(cost int) error {
	s.quotaMu.Lock()
	defer s.quotaMu.Unlock()

	if time.Now().After(s.quotaReset) {
		s.quotaUsed = 0
		s.quotaReset = nextQuotaReset()
		s.logger.Info("YouTube API quota auto-reset",
			zap.Time("next_reset", s.quotaReset))
	}

	if s.quotaUsed+cost > dailyQuotaLimit-quotaSafetyMargin {
		return errors.NewProviderError(
			fmt.Sprintf("daily quota exhausted (%d/%d used)", s.quotaUsed, dailyQuotaLimit),
			"quota", nil)
	}
	return nil
}

func (s *Service) consumeQuota(cost int) {
	s.quotaMu.Lock()
	defer s.quotaMu.Unlock()

	s.quotaUsed += cost
	remaining := dailyQuotaLimit - s.quotaUsed

	s.logger.Debug("YouTube API quota consumed",
		zap.Int("cost", cost),
		zap.Int("used", s.quotaUsed),
		zap.Int("remaining", remaining))

	if remaining < quotaSafetyMargin*2 {
		s.logger.Warn("YouTube API quota running low",
			zap.Int("remaining", remaining),
			zap.Time("reset_time", s.quotaReset))
	}
}

// FetchChannelStats retrieves subscriber/view/video counters for the
// configured channel.
func (s *Service) FetchChannelStats(ctx context.Context) (*domain.ChannelStats, error) {
	cacheKey := fmt.Sprintf("dashboard:channel_stats:%s", s.channelID)
	if s.cache != nil {
		var cached domain.ChannelStats
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			s.logger.Debug("Channel stats cache hit")
			return &cached, nil
		}
	}

	if err := s.checkQuota(listQuotaCost); err != nil {
		return nil, err
	}

	resp, err := s.service.Channels.List([]string{"statistics", "snippet"}).
		Id(s.channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.NewProviderError("failed to fetch channel statistics", "channels.list", err)
	}
	s.consumeQuota(listQuotaCost)

	if len(resp.Items) == 0 {
		return nil, errors.NewProviderError(
			fmt.Sprintf("channel %s not found", s.channelID), "channels.list", nil)
	}

	item := resp.Items[0]
	stats := &domain.ChannelStats{
		Name:        item.Snippet.Title,
		Subscribers: int64(item.Statistics.SubscriberCount),
		TotalViews:  int64(item.Statistics.ViewCount),
		VideoCount:  int64(item.Statistics.VideoCount),
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, stats, channelStatsCacheTTL); err != nil {
			s.logger.Warn("Failed to cache channel stats", zap.Error(err))
		}
	}

	return stats, nil
}

// FetchRecentVideos lists the channel's newest videos with per-video
// statistics. The search call only returns snippets, so statistics are
// filled in by a bounded pool of videos.list calls, one per id.
func (s *Service) FetchRecentVideos(ctx context.Context, maxResults int64) ([]domain.VideoRecord, error) {
	cacheKey := fmt.Sprintf("dashboard:recent_videos:%s:%d", s.channelID, maxResults)
	if s.cache != nil {
		var cached []domain.VideoRecord
		if found, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && found {
			s.logger.Debug("Recent videos cache hit", zap.Int("count", len(cached)))
			return cached, nil
		}
	}

	estimatedCost := searchQuotaCost + int(maxResults)*listQuotaCost
	if err := s.checkQuota(estimatedCost); err != nil {
		return nil, err
	}

	resp, err := s.service.Search.List([]string{"id", "snippet"}).
		ChannelId(s.channelID).
		Type("video").
		Order("date").
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.NewProviderError("failed to search recent videos", "search.list", err)
	}
	s.consumeQuota(searchQuotaCost)

	records := make([]domain.VideoRecord, len(resp.Items))
	p := pool.New().WithMaxGoroutines(statsFetchConcurrency).WithErrors()

	for i, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}
		i, videoID, title := i, item.Id.VideoId, item.Snippet.Title
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)

		p.Go(func() error {
			record, err := s.fetchVideoStats(ctx, videoID)
			if err != nil {
				return err
			}
			record.Title = title
			record.PublishedAt = publishedAt.UTC()
			records[i] = *record
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	// Drop slots left empty by malformed search items.
	out := make([]domain.VideoRecord, 0, len(records))
	for _, r := range records {
		if r.ID != "" {
			out = append(out, r)
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, out, recentVideosCacheTTL); err != nil {
			s.logger.Warn("Failed to cache recent videos", zap.Error(err))
		}
	}

	s.logger.Info("Fetched recent videos",
		zap.Int("count", len(out)),
		zap.Int64("max_results", maxResults))
	return out, nil
}

func (s *Service) fetchVideoStats(ctx context.Context, videoID string) (*domain.VideoRecord, error) {
	resp, err := s.service.Videos.List([]string{"statistics", "contentDetails", "snippet"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, errors.NewProviderError(
			fmt.Sprintf("failed to fetch statistics for video %s", videoID), "videos.list", err)
	}
	s.consumeQuota(listQuotaCost)

	if len(resp.Items) == 0 {
		return nil, errors.NewProviderError(
			fmt.Sprintf("video %s not found", videoID), "videos.list", nil)
	}

	item := resp.Items[0]
	record := &domain.VideoRecord{
		ID:         videoID,
		Views:      int64(item.Statistics.ViewCount),
		Likes:      int64(item.Statistics.LikeCount),
		Comments:   int64(item.Statistics.CommentCount),
		ViewsKnown: true,
	}
	if item.ContentDetails != nil {
		record.DurationISO = item.ContentDetails.Duration
	}
	if item.Snippet != nil && item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
		record.ThumbnailURL = item.Snippet.Thumbnails.High.Url
	}
	return record, nil
}
