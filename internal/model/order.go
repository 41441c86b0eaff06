package model

// OrderStatus is the closed set of states the ordering backend reports.
// Unknown values coming off the wire are kept as-is and rendered with a
// neutral fallback, never rejected.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

type DeliveryFee struct {
	Fee      float64 `json:"fee"`
	AreaName string  `json:"areaName,omitempty"`
}

type ItemOption struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

type Product struct {
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
}

// OrderItem carries both a live product reference and point-in-time
// snapshots taken when the order was placed. TotalPrice already reflects
// quantity and selected options.
type OrderItem struct {
	Quantity        *int         `json:"quantity"`
	Product         *Product     `json:"product,omitempty"`
	NameSnapshot    *string      `json:"nameSnapshot,omitempty"`
	PriceSnapshot   *float64     `json:"priceSnapshot,omitempty"`
	TotalPrice      *float64     `json:"totalPrice"`
	SelectedOptions []ItemOption `json:"selectedOptions,omitempty"`
}

type Location struct {
	PhoneNumber string  `json:"phoneNumber"`
	StreetName  string  `json:"streetName,omitempty"`
	City        *string `json:"city,omitempty"`
}

// OrderRecord is the read-only order snapshot served by the ordering
// backend. Monetary fields are pointers so an absent value stays
// distinguishable from an explicit zero.
type OrderRecord struct {
	ID               string       `json:"id"`
	OrderNumber      string       `json:"orderNumber"`
	UserID           string       `json:"userId"`
	Status           OrderStatus  `json:"status"`
	DeliveryFee      *DeliveryFee `json:"deliveryFee,omitempty"`
	TotalWithFee     *float64     `json:"totalWithFee"`
	TotalWithoutFee  *float64     `json:"totalWithoutFee"`
	TotalDiscount    *float64     `json:"totalDiscount"`
	DeliveryCost     *float64     `json:"deliveryCost"`
	Items            []OrderItem  `json:"items,omitempty"`
	Location         *Location    `json:"location,omitempty"`
	Notes            *string      `json:"notes,omitempty"`
	CreatedAtDisplay string       `json:"createdAt,omitempty"`
}

// IsDelivery classifies the order. The rule is derived from the fee every
// time it is asked for; it is never stored alongside the record.
func (o *OrderRecord) IsDelivery() bool {
	return o.DeliveryFee != nil && o.DeliveryFee.Fee > 0
}

// TotalWithFeeValue returns the final total, defaulting an absent field to
// zero for arithmetic.
func (o *OrderRecord) TotalWithFeeValue() float64 {
	if o.TotalWithFee == nil {
		return 0
	}
	return *o.TotalWithFee
}

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Branch struct {
	ID      string  `json:"id,omitempty"`
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Active  bool    `json:"active"`
}

type DeliveryArea struct {
	ID   string  `json:"id,omitempty"`
	Name string  `json:"name"`
	Fee  float64 `json:"fee"`
}

// Shift times are HH:mm strings in the backend's local clock; display
// formatting happens in the locale package.
type Shift struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	OpensAt   string `json:"opensAt"`
	ClosesAt  string `json:"closesAt"`
	IsEnabled bool   `json:"isEnabled"`
}
