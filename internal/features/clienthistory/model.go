package clienthistory

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Valid enquiry statuses for a history entry.
const (
	StatusPending    = "Pending"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
	StatusCancelled  = "Cancelled"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ClientHistory records one enquiry status change for a client.
type ClientHistory struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ClientID      primitive.ObjectID `json:"clientId" bson:"clientId"`
	EnquiryStatus string             `json:"enquiryStatus" bson:"enquiryStatus"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}

type ClientRef struct {
	ID    primitive.ObjectID `json:"_id" bson:"_id"`
	Name  string             `json:"name" bson:"name"`
	Email string             `json:"email" bson:"email"`
}

// HistoryPopulated is a history entry with the client's name and email joined.
type HistoryPopulated struct {
	ID            primitive.ObjectID `json:"_id" bson:"_id"`
	Client        *ClientRef         `json:"clientId" bson:"client,omitempty"`
	EnquiryStatus string             `json:"enquiryStatus" bson:"enquiryStatus"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt" bson:"updatedAt"`
}
