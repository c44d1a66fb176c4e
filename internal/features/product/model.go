package product

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CategoryRef embeds the category name next to its id at product-creation
// time. The name is not kept in sync with later category renames.
type CategoryRef struct {
	CategoryID   primitive.ObjectID `json:"CategoryID" bson:"CategoryID"`
	CategoryName string             `json:"CategoryName" bson:"CategoryName"`
}

type SubCategoryRef struct {
	SubCategoryID   primitive.ObjectID `json:"SubCategoryID" bson:"SubCategoryID"`
	SubCategoryName string             `json:"SubCategoryName" bson:"SubCategoryName"`
	CategoryID      primitive.ObjectID `json:"CategoryID" bson:"CategoryID"`
}

// Product field names follow the spreadsheet headers the catalog is fed from.
type Product struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	ProductName string             `json:"ProductName" bson:"ProductName"`
	ItemCode    string             `json:"ItemCode" bson:"ItemCode"`
	Category    CategoryRef        `json:"Category" bson:"Category"`
	SubCategory SubCategoryRef     `json:"SubCategory" bson:"SubCategory"`
	Unit        string             `json:"Unit" bson:"Unit"`
	Description string             `json:"Description,omitempty" bson:"Description,omitempty"`
	SupplierID  primitive.ObjectID `json:"supplierId" bson:"supplierId"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// SupplierRef is the populated supplier projection on product reads.
type SupplierRef struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	CompanyName string             `json:"companyName" bson:"companyName"`
}

// ProductWithSupplier is a product joined with its supplier's company name.
type ProductWithSupplier struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	ProductName string             `json:"ProductName" bson:"ProductName"`
	ItemCode    string             `json:"ItemCode" bson:"ItemCode"`
	Category    CategoryRef        `json:"Category" bson:"Category"`
	SubCategory SubCategoryRef     `json:"SubCategory" bson:"SubCategory"`
	Unit        string             `json:"Unit" bson:"Unit"`
	Supplier    *SupplierRef       `json:"supplierId" bson:"supplier,omitempty"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}
