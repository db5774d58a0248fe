package domain

// Service is a category of repair work (e.g. Plumbing) grouping problems.
type Service struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Problem is a specific priced repair issue under a service category.
// Price is non-negative; orphaned problems are a server-side concern.
type Problem struct {
	ID          string  `json:"_id"`
	ServiceID   string  `json:"serviceId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}
