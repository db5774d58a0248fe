package domain

// Cart belongs to exactly one user and carries a server-computed total.
// The client never recomputes TotalPrice locally; it replaces the whole
// struct with the server response after every mutation.
type Cart struct {
	ID         string     `json:"_id"`
	UserID     string     `json:"userId"`
	Items      []CartItem `json:"items"`
	TotalPrice float64    `json:"totalPrice"`
}

// CartItem references a problem by id with a denormalized service label.
// The server populates Problem; it is nil when the referenced problem was
// deleted server-side, in which case the item is rendered as unavailable
// rather than dropped.
type CartItem struct {
	ID          string   `json:"_id"`
	Problem     *Problem `json:"problemId"`
	ServiceName string   `json:"serviceName"`
}

// Available reports whether the referenced problem still exists.
func (i CartItem) Available() bool {
	return i.Problem != nil
}

// Title returns the display title, with a placeholder for dead references.
func (i CartItem) Title() string {
	if i.Problem == nil {
		return "Service Unavailable"
	}
	return i.Problem.Title
}

// Price returns the referenced problem's price, zero when unavailable.
func (i CartItem) Price() float64 {
	if i.Problem == nil {
		return 0
	}
	return i.Problem.Price
}

// IsEmpty reports whether the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Items) == 0
}
