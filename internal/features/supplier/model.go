package supplier

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Supplier is a vendor company in the catalog.
type Supplier struct {
	ID                   primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	FirstName            string               `json:"firstName" bson:"firstName"`
	LastName             string               `json:"lastName,omitempty" bson:"lastName,omitempty"`
	Email                string               `json:"email" bson:"email"`
	CompanyName          string               `json:"companyName" bson:"companyName"`
	CompanyType          string               `json:"companyType,omitempty" bson:"companyType,omitempty"`
	CompanyLogo          *string              `json:"companyLogo" bson:"companyLogo"`
	OfficeAddress        string               `json:"officeAddress,omitempty" bson:"officeAddress,omitempty"`
	ContactNumber        string               `json:"contactNumber" bson:"contactNumber"`
	ProductCategories    []primitive.ObjectID `json:"productCategories,omitempty" bson:"productCategories,omitempty"`
	ProductSubCategories []primitive.ObjectID `json:"productSubCategories,omitempty" bson:"productSubCategories,omitempty"`
	Products             []primitive.ObjectID `json:"products,omitempty" bson:"products,omitempty"`
	CreatedAt            time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt            time.Time            `json:"updatedAt" bson:"updatedAt"`
}

// SupplierSlim is the projection used by the dropdown endpoints.
type SupplierSlim struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	CompanyName string             `json:"companyName" bson:"companyName"`
	CompanyType string             `json:"companyType,omitempty" bson:"companyType,omitempty"`
	CompanyLogo *string            `json:"companyLogo" bson:"companyLogo"`
}

// SupplierWithRefs carries the populated names used by the name search.
type SupplierWithRefs struct {
	Supplier         `bson:",inline"`
	CategoryDocs     []refName        `bson:"categoryDocs"`
	SubCategoryDocs  []refName        `bson:"subCategoryDocs"`
	ProductDocs      []refProductName `bson:"productDocs"`
}

type refName struct {
	Name string `bson:"name"`
}

type refProductName struct {
	ProductName string `bson:"ProductName"`
}
