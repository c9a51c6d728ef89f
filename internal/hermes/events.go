package hermes

import "time"

type ProfileImportedEvent struct {
	UserID       string    `json:"user_id"`
	Source       string    `json:"source"`
	ComputerName string    `json:"computer_name,omitempty"`
	Processor    string    `json:"processor,omitempty"`
	Applications int       `json:"applications"`
	ImportedAt   time.Time `json:"imported_at"`
}

type ProfileDeletedEvent struct {
	UserID    string    `json:"user_id"`
	DeletedBy string    `json:"deleted_by"`
	Timestamp time.Time `json:"timestamp"`
}

type RecommendationComputedEvent struct {
	RecommendationID string    `json:"recommendation_id"`
	UserID           string    `json:"user_id"`
	Persona          string    `json:"persona"`
	Model            string    `json:"model"`
	Signature        string    `json:"signature"`
	Similarity       float64   `json:"similarity"`
	SavingsAED       float64   `json:"savings_aed"`
	Years            int       `json:"years"`
	Timestamp        time.Time `json:"timestamp"`
}

type RecommendationUnmatchedEvent struct {
	RecommendationID string    `json:"recommendation_id"`
	UserID           string    `json:"user_id"`
	Reason           string    `json:"reason"`
	CatalogSize      int       `json:"catalog_size"`
	Timestamp        time.Time `json:"timestamp"`
}
