package handler

import (
	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
)

type CreateRestaurantRequest struct {
	Name          string `json:"name" validate:"required,max=25"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	HasDelivery   bool   `json:"hasDelivery"`
	ContactEmail  string `json:"contactEmail" validate:"omitempty,email"`
	ContactNumber string `json:"contactNumber"`
	City          string `json:"city" validate:"required,max=50"`
	Street        string `json:"street" validate:"required,max=50"`
	PostalCode    string `json:"postalCode"`
}

func (r CreateRestaurantRequest) toDomain() *restaurant.Restaurant {
	return &restaurant.Restaurant{
		Name:          r.Name,
		Description:   r.Description,
		Category:      r.Category,
		HasDelivery:   r.HasDelivery,
		ContactEmail:  r.ContactEmail,
		ContactNumber: r.ContactNumber,
		Address: restaurant.Address{
			City:       r.City,
			Street:     r.Street,
			PostalCode: r.PostalCode,
		},
	}
}

type UpdateRestaurantRequest struct {
	Name        string `json:"name" validate:"required,max=25"`
	Description string `json:"description"`
	HasDelivery bool   `json:"hasDelivery"`
}

type RestaurantQuery struct {
	SearchPhrase  string `form:"searchPhrase"`
	PageNumber    int    `form:"pageNumber" validate:"min=1"`
	PageSize      int    `form:"pageSize" validate:"oneof=5 10 15"`
	SortBy        string `form:"sortBy" validate:"omitempty,oneof=Name Description Category"`
	SortDirection string `form:"sortDirection" validate:"omitempty,oneof=ASC DESC"`
}

func (q RestaurantQuery) toDomain() restaurant.Query {
	dir := restaurant.SortAscending
	if q.SortDirection == string(restaurant.SortDescending) {
		dir = restaurant.SortDescending
	}
	return restaurant.Query{
		SearchPhrase:  q.SearchPhrase,
		SortBy:        restaurant.SortBy(q.SortBy),
		SortDirection: dir,
		PageSize:      q.PageSize,
		PageNumber:    q.PageNumber,
	}
}

type RestaurantResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	HasDelivery bool           `json:"hasDelivery"`
	City        string         `json:"city"`
	Street      string         `json:"street"`
	PostalCode  string         `json:"postalCode"`
	Dishes      []DishResponse `json:"dishes"`
}

func newRestaurantResponse(r *restaurant.Restaurant) RestaurantResponse {
	dishes := make([]DishResponse, 0, len(r.Dishes))
	for _, d := range r.Dishes {
		dishes = append(dishes, newDishResponse(d))
	}
	return RestaurantResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		HasDelivery: r.HasDelivery,
		City:        r.Address.City,
		Street:      r.Address.Street,
		PostalCode:  r.Address.PostalCode,
		Dishes:      dishes,
	}
}

type PageResponse struct {
	Items           []RestaurantResponse `json:"items"`
	TotalPages      int                  `json:"totalPages"`
	ItemsFrom       int                  `json:"itemsFrom"`
	ItemsTo         int                  `json:"itemsTo"`
	TotalItemsCount int                  `json:"totalItemsCount"`
}

func newPageResponse(p *restaurant.Page) PageResponse {
	items := make([]RestaurantResponse, 0, len(p.Items))
	for _, r := range p.Items {
		items = append(items, newRestaurantResponse(r))
	}
	return PageResponse{
		Items:           items,
		TotalPages:      p.TotalPages,
		ItemsFrom:       p.ItemsFrom,
		ItemsTo:         p.ItemsTo,
		TotalItemsCount: p.TotalItemsCount,
	}
}

type CreateDishRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"gte=0"`
}

type DishResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func newDishResponse(d restaurant.Dish) DishResponse {
	return DishResponse{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
	}
}

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	DateOfBirth     string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Nationality     string `json:"nationality"`
	RoleID          int64  `json:"roleId" validate:"omitempty,min=1"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
