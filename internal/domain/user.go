package domain

type UserType string

const (
	UserMerchant UserType = "merchant"
	UserCustomer UserType = "customer"
)

func (t UserType) Valid() bool {
	return t == UserMerchant || t == UserCustomer
}

// Identity describes the acting user for the realtime handshake and
// upstream calls. MerchantID/StoreID are empty for customers.
type Identity struct {
	UserID     string   `json:"user_id"`
	UserType   UserType `json:"user_type"`
	MerchantID string   `json:"merchant_id,omitempty"`
	StoreID    string   `json:"store_id,omitempty"`
	StoreName  string   `json:"store_name,omitempty"`
}
