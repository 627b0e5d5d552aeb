package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/astro-web3/restaurant-api/internal/domain/restaurant"
)

type restaurantRow struct {
	ID            int64         `db:"id"`
	Name          string        `db:"name"`
	Description   string        `db:"description"`
	Category      string        `db:"category"`
	HasDelivery   bool          `db:"has_delivery"`
	ContactEmail  string        `db:"contact_email"`
	ContactNumber string        `db:"contact_number"`
	CreatedByID   sql.NullInt64 `db:"created_by_id"`
	City          string        `db:"city"`
	Street        string        `db:"street"`
	PostalCode    string        `db:"postal_code"`
}

func (r restaurantRow) toDomain() *restaurant.Restaurant {
	out := &restaurant.Restaurant{
		ID:            r.ID,
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
		Dishes: []restaurant.Dish{},
	}
	if r.CreatedByID.Valid {
		id := r.CreatedByID.Int64
		out.CreatedByID = &id
	}
	return out
}

type dishRow struct {
	ID           int64   `db:"id"`
	Name         string  `db:"name"`
	Description  string  `db:"description"`
	Price        float64 `db:"price"`
	RestaurantID int64   `db:"restaurant_id"`
}

func (d dishRow) toDomain() restaurant.Dish {
	return restaurant.Dish{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Price:        d.Price,
		RestaurantID: d.RestaurantID,
	}
}

const restaurantColumns = `id, name, description, category, has_delivery, contact_email,
	contact_number, created_by_id, city, street, postal_code`

// sortColumns whitelists the ORDER BY targets.
var sortColumns = map[restaurant.SortBy]string{
	restaurant.SortByName:        "name",
	restaurant.SortByDescription: "description",
	restaurant.SortByCategory:    "category",
}

func (s *Store) Create(ctx context.Context, r *restaurant.Restaurant) (int64, error) {
	var createdBy sql.NullInt64
	if id, ok := r.CreatorID(); ok {
		createdBy = sql.NullInt64{Int64: id, Valid: true}
	}

	var id int64
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &id, `
			INSERT INTO restaurants (name, description, category, has_delivery, contact_email,
				contact_number, created_by_id, city, street, postal_code)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id`,
			r.Name, r.Description, r.Category, r.HasDelivery, r.ContactEmail,
			r.ContactNumber, createdBy, r.Address.City, r.Address.Street, r.Address.PostalCode,
		)
		if err != nil {
			return fmt.Errorf("failed to insert restaurant: %w", err)
		}

		for _, d := range r.Dishes {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO dishes (name, description, price, restaurant_id)
				VALUES ($1, $2, $3, $4)`,
				d.Name, d.Description, d.Price, id,
			); err != nil {
				return fmt.Errorf("failed to insert dish: %w", err)
			}
		}
		return nil
	})
	return id, err
}

func (s *Store) Update(ctx context.Context, id int64, u restaurant.Update) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE restaurants SET name = $2, description = $3, has_delivery = $4
		WHERE id = $1`,
		id, u.Name, u.Description, u.HasDelivery,
	)
	if err != nil {
		return err
	}
	return expectAffected(res, restaurant.ErrRestaurantNotFound)
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectAffected(res, restaurant.ErrRestaurantNotFound)
}

func (s *Store) CreateDish(ctx context.Context, d *restaurant.Dish) (int64, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, `
		INSERT INTO dishes (name, description, price, restaurant_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		d.Name, d.Description, d.Price, d.RestaurantID,
	)
	return id, err
}

func (s *Store) DeleteDish(ctx context.Context, restaurantID, dishID int64) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM dishes WHERE id = $1 AND restaurant_id = $2`, dishID, restaurantID)
	if err != nil {
		return err
	}
	return expectAffected(res, restaurant.ErrDishNotFound)
}

func (s *Store) GetByID(ctx context.Context, id int64) (*restaurant.Restaurant, error) {
	var row restaurantRow
	err := s.db.GetContext(ctx, &row,
		`SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, restaurant.ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}

	r := row.toDomain()
	if err := s.attachDishes(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Store) List(ctx context.Context, q restaurant.Query) ([]*restaurant.Restaurant, int, error) {
	const filter = `WHERE $1 = ''
		OR strpos(lower(name), lower($1)) > 0
		OR strpos(lower(description), lower($1)) > 0`

	var total int
	if err := s.db.GetContext(ctx, &total,
		`SELECT count(*) FROM restaurants `+filter, q.SearchPhrase); err != nil {
		return nil, 0, fmt.Errorf("failed to count restaurants: %w", err)
	}

	order := "id"
	if col, ok := sortColumns[q.SortBy]; ok {
		dir := "ASC"
		if q.SortDirection == restaurant.SortDescending {
			dir = "DESC"
		}
		order = col + " " + dir + ", id"
	}

	var rows []restaurantRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT `+restaurantColumns+` FROM restaurants `+filter+
			` ORDER BY `+order+` LIMIT $2 OFFSET $3`,
		q.SearchPhrase, q.PageSize, q.Offset(),
	); err != nil {
		return nil, 0, fmt.Errorf("failed to select restaurants: %w", err)
	}

	items := make([]*restaurant.Restaurant, 0, len(rows))
	byID := make(map[int64]*restaurant.Restaurant, len(rows))
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		r := row.toDomain()
		items = append(items, r)
		byID[r.ID] = r
		ids = append(ids, r.ID)
	}

	if len(ids) > 0 {
		var dishes []dishRow
		if err := s.db.SelectContext(ctx, &dishes, `
			SELECT id, name, description, price, restaurant_id FROM dishes
			WHERE restaurant_id = ANY($1) ORDER BY id`, pq.Array(ids),
		); err != nil {
			return nil, 0, fmt.Errorf("failed to select dishes: %w", err)
		}
		for _, d := range dishes {
			r := byID[d.RestaurantID]
			r.Dishes = append(r.Dishes, d.toDomain())
		}
	}
	return items, total, nil
}

func (s *Store) CountCreatedBy(ctx context.Context, subjectID int64) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		`SELECT count(*) FROM restaurants WHERE created_by_id = $1`, subjectID)
	return n, err
}

func (s *Store) GetDish(ctx context.Context, restaurantID, dishID int64) (*restaurant.Dish, error) {
	var row dishRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, description, price, restaurant_id FROM dishes
		WHERE id = $1 AND restaurant_id = $2`, dishID, restaurantID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, restaurant.ErrDishNotFound
	}
	if err != nil {
		return nil, err
	}
	d := row.toDomain()
	return &d, nil
}

func (s *Store) ListDishes(ctx context.Context, restaurantID int64) ([]restaurant.Dish, error) {
	var rows []dishRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, description, price, restaurant_id FROM dishes
		WHERE restaurant_id = $1 ORDER BY id`, restaurantID); err != nil {
		return nil, err
	}
	out := make([]restaurant.Dish, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (s *Store) attachDishes(ctx context.Context, r *restaurant.Restaurant) error {
	dishes, err := s.ListDishes(ctx, r.ID)
	if err != nil {
		return fmt.Errorf("failed to load dishes of restaurant %d: %w", r.ID, err)
	}
	r.Dishes = dishes
	return nil
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
