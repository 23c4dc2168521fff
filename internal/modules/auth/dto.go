package auth

import "merchantdesk/internal/domain"

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SessionResponse struct {
	UserID     string `json:"user_id"`
	UserType   string `json:"user_type"`
	MerchantID string `json:"merchant_id,omitempty"`
	StoreID    string `json:"store_id,omitempty"`
	StoreName  string `json:"store_name,omitempty"`
}

func ToSessionResponse(identity domain.Identity) *SessionResponse {
	return &SessionResponse{
		UserID:     identity.UserID,
		UserType:   string(identity.UserType),
		MerchantID: identity.MerchantID,
		StoreID:    identity.StoreID,
		StoreName:  identity.StoreName,
	}
}
