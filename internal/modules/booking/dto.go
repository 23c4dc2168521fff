package booking

import "time"

type ListFilter struct {
	Status string
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

type CancelRequest struct {
	Reason string `json:"reason,omitempty"`
}
