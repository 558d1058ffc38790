package order

// Requests

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof='Not Processed' Processing Shipped Delivered Cancelled"`
}
