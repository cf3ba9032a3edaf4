package structs

// CartItem is one entry of an incoming cart. Price and Quantity are left
// loosely typed because storefront clients send them as either strings or
// numbers; the checkout service coerces them.
type CartItem struct {
	Name     string `json:"name" validate:"required"`
	Price    any    `json:"price"`
	Quantity any    `json:"quantity"`
}

type CreatePreferenceRequest struct {
	Items []CartItem `json:"items"`
}

type CreatePreferenceResponse struct {
	InitPoint string `json:"init_point"`
}
