package core

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount float64
}

// Summary holds base-currency totals as of a given day.
type Summary struct {
	AsOf       Date
	Month      float64 // calendar month containing AsOf
	Week       float64 // Sunday..Saturday week containing AsOf
	AllTime    float64
	Count      int
	ByCategory []CategoryAmount // current month, largest first
}

// WeekRange returns the Sunday and Saturday bounding d's week.
func WeekRange(d Date) (Date, Date) {
	start := d.AddDays(-int(d.Weekday()))
	return start, start.AddDays(6)
}
