package models

// CreateRecordRequest carries a manual data-entry submission.
type CreateRecordRequest struct {
	ProductName string  `json:"productName" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Quantity    int     `json:"quantity" binding:"min=0"`
	Price       float64 `json:"price" binding:"min=0"`
	DateAdded   string  `json:"dateAdded"`
	Status      string  `json:"status"`
	Notes       string  `json:"notes"`
}

// ExtractRequest carries free-form text for AI extraction.
type ExtractRequest struct {
	Text string `json:"text" binding:"required"`
}

// RecordListResponse is the payload of the list endpoint.
type RecordListResponse struct {
	Records []DataRecord `json:"records"`
	Count   int          `json:"count"`
}

// ExtractResponse reports the records created from an extraction run.
type ExtractResponse struct {
	Records []DataRecord `json:"records"`
	Count   int          `json:"count"`
}
