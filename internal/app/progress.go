package app

import (
	"context"
	"errors"
	"strings"

	"github.com/stride-tracker/stride/internal/domain"
)

// CurrentDay derives the owner's day pointer from the latest
// progress_advance activity. No event means day 0. A malformed payload
// also resolves to 0: the value fails closed and the corruption is
// logged rather than surfaced as an error.
func (s *Service) CurrentDay(ctx context.Context, ownerID string) (int, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return 0, domain.ErrInvalidOwnerID
	}
	event, err := s.repo.LatestActivityOfType(ctx, ownerID, domain.ActivityProgressAdvance)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	day, ok := event.Day()
	if !ok {
		s.logger.Warn("progress event has malformed day payload, treating as not started",
			"owner_id", ownerID, "activity_id", event.ID, "metadata_day", event.Metadata[domain.MetadataDayKey])
		return 0, nil
	}
	return day, nil
}

// AdvanceProgress moves the day pointer by appending a progress_advance
// event. Every accepted request appends, repeats and backward moves
// included, so the log stays a faithful audit trail.
func (s *Service) AdvanceProgress(ctx context.Context, ownerID string, day int) (int, error) {
	event, err := domain.NewProgressAdvance(ownerID, day, s.clock())
	if err != nil {
		return 0, err
	}
	if err := s.repo.AppendActivity(ctx, event); err != nil {
		return 0, err
	}
	return day, nil
}
