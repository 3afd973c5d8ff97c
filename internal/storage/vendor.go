package storage

type Vendor struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// Максимум единиц на одну линию в день
	DailyCapacity int `json:"daily_capacity"`
	// Количество параллельных линий, минимум 1
	LineCount int  `json:"line_count"`
	Active    bool `json:"active"`
}
