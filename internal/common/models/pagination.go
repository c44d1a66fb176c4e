package models

// Pagination is the list envelope block shared by the admin endpoints.
type Pagination struct {
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int64 `json:"totalPages"`
	Size             int64 `json:"size"`
	PageNo           int64 `json:"pageNo"`
	NumberOfElements int   `json:"numberOfElements"`
}

func NewPagination(total, page, limit int64, count int) Pagination {
	totalPages := int64(0)
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		TotalElements:    total,
		TotalPages:       totalPages,
		Size:             limit,
		PageNo:           page,
		NumberOfElements: count,
	}
}

// Envelope is the {code, error, message, pagination, data} response wrapper.
type Envelope struct {
	Code       int         `json:"code"`
	Error      bool        `json:"error"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination"`
	Data       interface{} `json:"data"`
}
