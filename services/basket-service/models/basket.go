package models

// BasketItem is a single line item in a user's basket. The same shape is
// carried through the checkout event onto the order record.
type BasketItem struct {
	ProductID   string  `json:"productId" dynamodbav:"productId" binding:"required"`
	ProductName string  `json:"productName" dynamodbav:"productName"`
	Price       float64 `json:"price" dynamodbav:"price" binding:"min=0"`
	Quantity    int     `json:"quantity" dynamodbav:"quantity" binding:"required,min=1"`
	Color       string  `json:"color" dynamodbav:"color"`
}

// Basket is keyed by userName, one basket per user.
type Basket struct {
	UserName string       `json:"userName" dynamodbav:"userName" binding:"required"`
	Items    []BasketItem `json:"items" dynamodbav:"items" binding:"dive"`
}

// CheckoutRequest is the body of POST /basket/checkout. Everything besides
// userName is shipping/payment metadata carried through to the order.
type CheckoutRequest struct {
	UserName      string  `json:"userName"`
	TotalPrice    float64 `json:"totalPrice,omitempty"`
	FirstName     string  `json:"firstName,omitempty"`
	LastName      string  `json:"lastName,omitempty"`
	Email         string  `json:"email,omitempty"`
	Address       string  `json:"address,omitempty"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	CardInfo      string  `json:"cardInfo,omitempty"`
}

// OrderPayload is the checkout event detail handed to the ordering side.
// CheckoutID lets the consumer deduplicate redeliveries of the same event.
type OrderPayload struct {
	CheckoutID    string       `json:"checkoutId"`
	UserName      string       `json:"userName"`
	FirstName     string       `json:"firstName,omitempty"`
	LastName      string       `json:"lastName,omitempty"`
	Email         string       `json:"email,omitempty"`
	Address       string       `json:"address,omitempty"`
	PaymentMethod string       `json:"paymentMethod,omitempty"`
	CardInfo      string       `json:"cardInfo,omitempty"`
	Items         []BasketItem `json:"items"`
	TotalPrice    float64      `json:"totalPrice"`
}
