package models

// Feedback is one row in the append-only feedback ledger. Anyone signed in
// can submit; only staff and admins read the ledger back.
type Feedback struct {
	FeedbackID string `json:"feedback_id"`
	UserID     string `json:"user_id"`
	Name       string `json:"name"`
	Rating     int    `json:"rating"` // 1-5
	Type       string `json:"type"`   // General, Compliment, Complaint, Suggestion, ...
	Comment    string `json:"comment"`
	CreatedAt  string `json:"created_at"`
}

// SubmitFeedbackRequest represents the request body for submitting feedback
type SubmitFeedbackRequest struct {
	Name    string `json:"name"`
	Rating  int    `json:"rating"`
	Type    string `json:"type"`
	Comment string `json:"comment"`
}

// FeedbackStats summarizes the feedback ledger for the staff view.
type FeedbackStats struct {
	Count         int     `json:"count"`
	AverageRating float64 `json:"average_rating"`
}
