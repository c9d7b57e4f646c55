package model

// Topic represents a curriculum topic or subject area.
type Topic struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateTopicRequest is the payload for creating a topic.
type CreateTopicRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=150"`
	Category    string `json:"category" binding:"required,min=2,max=100"`
	Description string `json:"description" binding:"max=1000"`
}
