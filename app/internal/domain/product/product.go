package product

// Product is an immutable catalog record.
type Product struct {
	ID    int64
	Name  string
	Price float64
	Image string
}
