package models

// Course is one row from the course catalog as stored: duration in integer
// seconds, price nullable (a missing price means the course is not purchasable
// and is treated as very expensive by price filters).
type Course struct {
	Title           string   `json:"title"`
	Category        string   `json:"category"`
	Price           *float64 `json:"price"`
	DurationSeconds int64    `json:"duration"`
	Description     string   `json:"description"`
	Instructor      string   `json:"instructor"`
}

// CategoryCount pairs a category name with its course count.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
