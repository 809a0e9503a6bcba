package dto

// ErrorResponse represents a generic error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PendingBatchResponse is returned when batch creation is refused because an
// earlier batch still awaits feedback.
type PendingBatchResponse struct {
	Error        string               `json:"error"`
	PendingBatch *BatchStatusResponse `json:"pending_batch"`
}
