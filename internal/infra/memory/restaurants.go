package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
)

func (s *Store) Create(_ context.Context, r *restaurant.Restaurant) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextRestaurant++
	stored := cloneRestaurant(r)
	stored.ID = s.nextRestaurant
	stored.Dishes = nil
	s.restaurants[stored.ID] = stored

	for _, d := range r.Dishes {
		s.nextDish++
		d.ID = s.nextDish
		d.RestaurantID = stored.ID
		s.dishes[d.ID] = &d
	}
	return stored.ID, nil
}

func (s *Store) Update(_ context.Context, id int64, u restaurant.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.restaurants[id]
	if !ok {
		return restaurant.ErrRestaurantNotFound
	}
	r.Name = u.Name
	r.Description = u.Description
	r.HasDelivery = u.HasDelivery
	return nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.restaurants[id]; !ok {
		return restaurant.ErrRestaurantNotFound
	}
	delete(s.restaurants, id)
	for dishID, d := range s.dishes {
		if d.RestaurantID == id {
			delete(s.dishes, dishID)
		}
	}
	return nil
}

func (s *Store) CreateDish(_ context.Context, d *restaurant.Dish) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.restaurants[d.RestaurantID]; !ok {
		return 0, restaurant.ErrRestaurantNotFound
	}
	s.nextDish++
	stored := *d
	stored.ID = s.nextDish
	s.dishes[stored.ID] = &stored
	return stored.ID, nil
}

func (s *Store) DeleteDish(_ context.Context, restaurantID, dishID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dishes[dishID]
	if !ok || d.RestaurantID != restaurantID {
		return restaurant.ErrDishNotFound
	}
	delete(s.dishes, dishID)
	return nil
}

func (s *Store) GetByID(_ context.Context, id int64) (*restaurant.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.restaurants[id]
	if !ok {
		return nil, restaurant.ErrRestaurantNotFound
	}
	return s.withDishes(r), nil
}

func (s *Store) List(_ context.Context, q restaurant.Query) ([]*restaurant.Restaurant, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	phrase := strings.ToLower(q.SearchPhrase)
	matched := make([]*restaurant.Restaurant, 0, len(s.restaurants))
	for _, r := range s.restaurants {
		if phrase == "" ||
			strings.Contains(strings.ToLower(r.Name), phrase) ||
			strings.Contains(strings.ToLower(r.Description), phrase) {
			matched = append(matched, r)
		}
	}

	slices.SortStableFunc(matched, func(a, b *restaurant.Restaurant) int {
		return cmp.Compare(a.ID, b.ID)
	})
	if q.SortBy != "" {
		key := sortKey(q.SortBy)
		slices.SortStableFunc(matched, func(a, b *restaurant.Restaurant) int {
			c := cmp.Compare(key(a), key(b))
			if q.SortDirection == restaurant.SortDescending {
				return -c
			}
			return c
		})
	}

	total := len(matched)
	start := min(max(q.Offset(), 0), total)
	end := total
	if q.PageSize > 0 {
		end = min(start+q.PageSize, total)
	}

	page := make([]*restaurant.Restaurant, 0, end-start)
	for _, r := range matched[start:end] {
		page = append(page, s.withDishes(r))
	}
	return page, total, nil
}

func (s *Store) CountCreatedBy(_ context.Context, subjectID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.restaurants {
		if r.CreatedByID != nil && *r.CreatedByID == subjectID {
			n++
		}
	}
	return n, nil
}

func (s *Store) GetDish(_ context.Context, restaurantID, dishID int64) (*restaurant.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.dishes[dishID]
	if !ok || d.RestaurantID != restaurantID {
		return nil, restaurant.ErrDishNotFound
	}
	out := *d
	return &out, nil
}

func (s *Store) ListDishes(_ context.Context, restaurantID int64) ([]restaurant.Dish, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.restaurants[restaurantID]; !ok {
		return nil, restaurant.ErrRestaurantNotFound
	}
	return s.dishesOf(restaurantID), nil
}

// withDishes must be called with s.mu held.
func (s *Store) withDishes(r *restaurant.Restaurant) *restaurant.Restaurant {
	out := cloneRestaurant(r)
	out.Dishes = s.dishesOf(r.ID)
	return out
}

func (s *Store) dishesOf(restaurantID int64) []restaurant.Dish {
	out := []restaurant.Dish{}
	for _, d := range s.dishes {
		if d.RestaurantID == restaurantID {
			out = append(out, *d)
		}
	}
	slices.SortFunc(out, func(a, b restaurant.Dish) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func cloneRestaurant(r *restaurant.Restaurant) *restaurant.Restaurant {
	out := *r
	if r.CreatedByID != nil {
		id := *r.CreatedByID
		out.CreatedByID = &id
	}
	out.Dishes = slices.Clone(r.Dishes)
	return &out
}

func sortKey(by restaurant.SortBy) func(*restaurant.Restaurant) string {
	switch by {
	case restaurant.SortByDescription:
		return func(r *restaurant.Restaurant) string { return r.Description }
	case restaurant.SortByCategory:
		return func(r *restaurant.Restaurant) string { return r.Category }
	default:
		return func(r *restaurant.Restaurant) string { return r.Name }
	}
}
