package models

// PaginatedResponse wraps one page of a listing. TotalPages is 0 for an empty listing.
type PaginatedResponse struct {
	Data       any  `json:"data"`
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
	HasNext    bool `json:"hasNext"`
}

func NewPage(data any, total, page, size int) PaginatedResponse {
	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}

	return PaginatedResponse{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   size,
		TotalPages: pages,
		HasNext:    page < pages,
	}
}
