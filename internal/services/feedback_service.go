package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/repositories"
	"dailyshop-backend/internal/timeutil"
)

// FeedbackService records customer feedback and summarizes it for staff.
type FeedbackService struct {
	Feedback *repositories.FeedbackRepository
}

func NewFeedbackService(feedback *repositories.FeedbackRepository) *FeedbackService {
	return &FeedbackService{Feedback: feedback}
}

const feedbackIDLayout = "20060102150405"

// Submit appends one feedback entry. Rating must be 1-5; a blank name reads
// as Anonymous and a blank type as General.
func (s *FeedbackService) Submit(ctx context.Context, req *models.SubmitFeedbackRequest, userID string) (*models.Feedback, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, errors.New("rating must be between 1 and 5")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Anonymous"
	}
	kind := strings.TrimSpace(req.Type)
	if kind == "" {
		kind = "General"
	}

	now := timeutil.Now()
	entry := &models.Feedback{
		FeedbackID: "FB_" + now.Format(feedbackIDLayout),
		UserID:     userID,
		Name:       name,
		Rating:     req.Rating,
		Type:       kind,
		Comment:    strings.TrimSpace(req.Comment),
		CreatedAt:  now.Format(timeutil.TimestampLayout),
	}
	if err := s.Feedback.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("append feedback: %w", err)
	}
	return entry, nil
}

// List returns all feedback, newest entries first.
func (s *FeedbackService) List(ctx context.Context) ([]*models.Feedback, error) {
	entries, err := s.Feedback.List(ctx)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Stats returns the entry count and the average rating across all feedback.
func (s *FeedbackService) Stats(ctx context.Context) (*models.FeedbackStats, error) {
	entries, err := s.Feedback.List(ctx)
	if err != nil {
		return nil, err
	}
	stats := &models.FeedbackStats{Count: len(entries)}
	if len(entries) == 0 {
		return stats, nil
	}
	var sum int
	for _, entry := range entries {
		sum += entry.Rating
	}
	stats.AverageRating = float64(sum) / float64(len(entries))
	return stats, nil
}
