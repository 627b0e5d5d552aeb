package restaurant

type Restaurant struct {
	ID            int64
	Name          string
	Description   string
	Category      string
	HasDelivery   bool
	ContactEmail  string
	ContactNumber string
	CreatedByID   *int64
	Address       Address
	Dishes        []Dish
}

// CreatorID implements authz.Resource.
func (r *Restaurant) CreatorID() (int64, bool) {
	if r == nil || r.CreatedByID == nil {
		return 0, false
	}
	return *r.CreatedByID, true
}

type Address struct {
	City       string
	Street     string
	PostalCode string
}

type Dish struct {
	ID           int64
	Name         string
	Description  string
	Price        float64
	RestaurantID int64
}

// Update carries the fields a restaurant owner may change.
type Update struct {
	Name        string
	Description string
	HasDelivery bool
}
