package branch

type CreateBranchRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone,omitempty"`
}

type UpdateBranchRequest struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}
