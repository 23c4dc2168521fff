package catalog

type ServiceRequestBody struct {
	ServiceID string         `json:"service_id,omitempty"`
	Payload   map[string]any `json:"payload" validate:"required"`
}
