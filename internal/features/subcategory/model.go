package subcategory

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubCategory belongs to exactly one category; the (name, categoryId) pair is
// unique so concurrent creates collapse onto one document.
type SubCategory struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	CategoryID  primitive.ObjectID `json:"categoryId" bson:"categoryId"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
