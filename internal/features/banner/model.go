package banner

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Banner is a homepage carousel entry, optionally tied to a category or
// supplier.
type Banner struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	BannerImage string              `json:"bannerImage" bson:"bannerImage"`
	Description string              `json:"description,omitempty" bson:"description,omitempty"`
	CategoryID  *primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty"`
	SupplierID  *primitive.ObjectID `json:"supplierId,omitempty" bson:"supplierId,omitempty"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}
