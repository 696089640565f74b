package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wadjakorntonsri/biolink/pkg/core/domain"
	"github.com/wadjakorntonsri/biolink/pkg/metrics"
	"github.com/wadjakorntonsri/biolink/pkg/ports"
)

const unknownIP = "unknown"

type ClickService struct {
	repo ports.ClickRepository
	log  zerolog.Logger
}

func NewClickService(repo ports.ClickRepository, log zerolog.Logger) *ClickService {
	return &ClickService{repo: repo, log: log.With().Str("component", "clicks").Logger()}
}

// RecordClick counts one click on the link and stores the click event.
// Failures are logged here; callers decide whether to surface them.
func (s *ClickService) RecordClick(ctx context.Context, linkID string, meta domain.ClickMeta) error {
	linkID = strings.TrimSpace(linkID)
	if linkID == "" {
		return domain.ErrLinkIDRequired
	}

	ip := meta.IP
	if ip == "" {
		ip = unknownIP
	}

	click := &domain.LinkClick{
		ID:        uuid.NewString(),
		LinkID:    linkID,
		ClickedAt: time.Now().UTC(),
		IPAddress: ip,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	}

	err := s.repo.IncrementLinkClicks(ctx, click)
	switch {
	case err == nil:
		metrics.ClicksRecorded.WithLabelValues(metrics.ResultOK).Inc()
	case errors.Is(err, domain.ErrLinkNotFound):
		metrics.ClicksRecorded.WithLabelValues(metrics.ResultNotFound).Inc()
		s.log.Warn().Str("link_id", linkID).Msg("click on unknown link")
	default:
		metrics.ClicksRecorded.WithLabelValues(metrics.ResultError).Inc()
		s.log.Error().Err(err).Str("link_id", linkID).Msg("error tracking click")
	}
	return err
}
