package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "Admin"
	RoleSales = "Sales"
)

func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSales
}

// User is a backoffice account. The password hash never serializes to JSON.
type User struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Username    string             `json:"username" bson:"username"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"-" bson:"password"`
	Role        string             `json:"role" bson:"role"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
