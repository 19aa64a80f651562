package request

type TicketRequest struct {
	Subject     string `json:"subject" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"required,max=5000"`
}

type TicketStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open closed"`
}

type TicketListRequest struct {
	PaginatedRequest
	Status string `validate:"omitempty,oneof=open closed"`
}
