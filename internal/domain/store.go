package domain

import "time"

// Store is the merchant's storefront as the upstream API reports it.
type Store struct {
	ID         string   `json:"id"`
	MerchantID string   `json:"merchant_id"`
	Name       string   `json:"name"`
	Address    string   `json:"address,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Branch is a physical location belonging to a store. The store's own
// address acts as an implicit main branch that cannot be removed.
type Branch struct {
	ID        string    `json:"id"`
	StoreID   string    `json:"store_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	IsMain    bool      `json:"is_main"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SocialLink is one entry of the store's social-media profile.
type SocialLink struct {
	ID       string `json:"id"`
	StoreID  string `json:"store_id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
}
