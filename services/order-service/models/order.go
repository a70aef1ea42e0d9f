package models

// OrderItem mirrors the basket line item carried in the checkout event.
type OrderItem struct {
	ProductID   string  `json:"productId" dynamodbav:"productId"`
	ProductName string  `json:"productName" dynamodbav:"productName"`
	Price       float64 `json:"price" dynamodbav:"price"`
	Quantity    int     `json:"quantity" dynamodbav:"quantity"`
	Color       string  `json:"color" dynamodbav:"color"`
}

// OrderPayload is the decoded detail of a CheckoutBasket event.
type OrderPayload struct {
	CheckoutID    string      `json:"checkoutId"`
	UserName      string      `json:"userName"`
	FirstName     string      `json:"firstName,omitempty"`
	LastName      string      `json:"lastName,omitempty"`
	Email         string      `json:"email,omitempty"`
	Address       string      `json:"address,omitempty"`
	PaymentMethod string      `json:"paymentMethod,omitempty"`
	CardInfo      string      `json:"cardInfo,omitempty"`
	Items         []OrderItem `json:"items"`
	TotalPrice    float64     `json:"totalPrice"`
}

// Order is the durable record, keyed by (userName, orderDate). OrderDate
// is assigned at ingestion and the record is never mutated afterwards.
type Order struct {
	UserName      string      `json:"userName" dynamodbav:"userName"`
	OrderDate     string      `json:"orderDate" dynamodbav:"orderDate"`
	CheckoutID    string      `json:"checkoutId" dynamodbav:"checkoutId"`
	FirstName     string      `json:"firstName,omitempty" dynamodbav:"firstName,omitempty"`
	LastName      string      `json:"lastName,omitempty" dynamodbav:"lastName,omitempty"`
	Email         string      `json:"email,omitempty" dynamodbav:"email,omitempty"`
	Address       string      `json:"address,omitempty" dynamodbav:"address,omitempty"`
	PaymentMethod string      `json:"paymentMethod,omitempty" dynamodbav:"paymentMethod,omitempty"`
	CardInfo      string      `json:"cardInfo,omitempty" dynamodbav:"cardInfo,omitempty"`
	Items         []OrderItem `json:"items" dynamodbav:"items"`
	TotalPrice    float64     `json:"totalPrice" dynamodbav:"totalPrice"`
}
