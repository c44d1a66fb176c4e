package search

// SearchRow is the flattened product row every search endpoint returns:
// product fields plus the embedded names and the joined supplier contact
// details. Absent references flatten to empty strings.
type SearchRow struct {
	ProductID             string `json:"productId"`
	SupplierID            string `json:"supplierId"`
	ProductName           string `json:"productName"`
	ItemCode              string `json:"itemCode"`
	CategoryName          string `json:"categoryName"`
	SubCategoryName       string `json:"subCategoryName"`
	SupplierName          string `json:"supplierName"`
	SupplierContactNumber string `json:"supplierContactNumber"`
	SupplierEmailID       string `json:"supplierEmailId"`
}
