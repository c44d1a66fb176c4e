package client

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Client is an enquiry contact, optionally linked to the product, subcategory
// and supplier the enquiry was about.
type Client struct {
	ID          primitive.ObjectID  `json:"_id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	CompanyName string              `json:"companyName" bson:"companyName"`
	PhoneNo     string              `json:"phoneNo" bson:"phoneNo"`
	Email       string              `json:"email" bson:"email"`
	Product     *primitive.ObjectID `json:"product" bson:"product"`
	SubCategory *primitive.ObjectID `json:"subCategory" bson:"subCategory"`
	Supplier    *primitive.ObjectID `json:"supplier" bson:"supplier"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type ProductRef struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	ItemCode    string             `json:"ItemCode" bson:"ItemCode"`
	ProductName string             `json:"ProductName" bson:"ProductName"`
}

type SubCategoryRef struct {
	ID   primitive.ObjectID `json:"_id" bson:"_id"`
	Name string             `json:"name" bson:"name"`
}

type SupplierRef struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	CompanyName string             `json:"companyName" bson:"companyName"`
}

// ClientPopulated is a client with its references resolved to display names.
type ClientPopulated struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	CompanyName string             `json:"companyName" bson:"companyName"`
	PhoneNo     string             `json:"phoneNo" bson:"phoneNo"`
	Email       string             `json:"email" bson:"email"`
	Product     *ProductRef        `json:"product" bson:"product,omitempty"`
	SubCategory *SubCategoryRef    `json:"subCategory" bson:"subCategory,omitempty"`
	Supplier    *SupplierRef       `json:"supplier" bson:"supplier,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
