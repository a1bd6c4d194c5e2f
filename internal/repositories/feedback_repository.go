package repositories

import (
	"context"
	"strconv"

	"dailyshop-backend/internal/models"
	"dailyshop-backend/internal/store"
)

type FeedbackRepository struct {
	Store store.TableStore
}

func NewFeedbackRepository(s store.TableStore) *FeedbackRepository {
	return &FeedbackRepository{Store: s}
}

func rowToFeedback(t *store.Table, row []string) *models.Feedback {
	rating, _ := strconv.Atoi(t.Get(row, "rating"))
	return &models.Feedback{
		FeedbackID: t.Get(row, "feedback_id"),
		UserID:     t.Get(row, "user_id"),
		Name:       t.Get(row, "name"),
		Rating:     rating,
		Type:       t.Get(row, "type"),
		Comment:    t.Get(row, "comment"),
		CreatedAt:  t.Get(row, "created_at"),
	}
}

func (r *FeedbackRepository) List(ctx context.Context) ([]*models.Feedback, error) {
	t, err := r.Store.Load(ctx, store.EntityFeedback)
	if err != nil {
		return nil, err
	}
	feedback := make([]*models.Feedback, 0, len(t.Rows))
	for _, row := range t.Rows {
		feedback = append(feedback, rowToFeedback(t, row))
	}
	return feedback, nil
}

func (r *FeedbackRepository) Append(ctx context.Context, f *models.Feedback) error {
	return r.Store.Update(ctx, store.EntityFeedback, func(t *store.Table) error {
		t.Append(map[string]string{
			"feedback_id": f.FeedbackID,
			"user_id":     f.UserID,
			"name":        f.Name,
			"rating":      strconv.Itoa(f.Rating),
			"type":        f.Type,
			"comment":     f.Comment,
			"created_at":  f.CreatedAt,
		})
		return nil
	})
}
