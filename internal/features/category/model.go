package category

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category groups products; names are unique case-insensitively.
type Category struct {
	ID                primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name              string               `json:"name" bson:"name"`
	Description       string               `json:"description,omitempty" bson:"description,omitempty"`
	CategoryImagePath *string              `json:"categoryImagePath" bson:"categoryImagePath"`
	SubCategoryIds    []primitive.ObjectID `json:"subCategoryId,omitempty" bson:"subCategoryId,omitempty"`
	CreatedAt         time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// CategorySlim is the id+name projection for picker endpoints.
type CategorySlim struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}
