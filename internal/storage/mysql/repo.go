package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"hotel_booking/internal/domain"
)

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Repo is the MySQL catalog: hotels, rooms, guests, administrative holds and reviews that seed
// the in-memory store at start-up. Bookings are never written back.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

var _ domain.CatalogSource = (*Repo)(nil)

func (r *Repo) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	var (
		c   domain.Catalog
		err error
	)
	if c.Hotels, err = r.hotels(ctx); err != nil {
		return domain.Catalog{}, fmt.Errorf("load hotels: %w", err)
	}
	if c.Rooms, err = r.rooms(ctx); err != nil {
		return domain.Catalog{}, fmt.Errorf("load rooms: %w", err)
	}
	if c.People, err = r.guests(ctx); err != nil {
		return domain.Catalog{}, fmt.Errorf("load guests: %w", err)
	}
	if c.Availability, err = r.holds(ctx); err != nil {
		return domain.Catalog{}, fmt.Errorf("load holds: %w", err)
	}
	if c.Reviews, err = r.reviews(ctx); err != nil {
		return domain.Catalog{}, fmt.Errorf("load reviews: %w", err)
	}
	return c, nil
}

func (r *Repo) hotels(ctx context.Context) ([]domain.Hotel, error) {
	rows, err := r.db.QueryContext(ctx, selectHotelsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Hotel
	for rows.Next() {
		var (
			h                                 domain.Hotel
			street, city, state, zip, country sql.NullString
		)
		if err := rows.Scan(&h.ID, &h.Name, &h.Stars, &street, &city, &state, &zip, &country); err != nil {
			return nil, err
		}
		h.Address = domain.Address{Street: street.String, City: city.String, State: state.String, ZipCode: zip.String, Country: country.String}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *Repo) rooms(ctx context.Context) ([]domain.Room, error) {
	rows, err := r.db.QueryContext(ctx, selectRoomsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Room
	for rows.Next() {
		var (
			rm       domain.Room
			roomType string
		)
		if err := rows.Scan(&rm.ID, &rm.HotelID, &rm.Number, &rm.Floor, &rm.Capacity,
			&rm.SeaView, &rm.SmokingAllowed, &roomType, &rm.Price, &rm.InService); err != nil {
			return nil, err
		}
		if rm.Type, err = domain.ParseRoomType(roomType); err != nil {
			return nil, fmt.Errorf("room %d: %w", rm.ID, err)
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

func (r *Repo) guests(ctx context.Context) ([]domain.Person, error) {
	rows, err := r.db.QueryContext(ctx, selectGuestsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Person
	for rows.Next() {
		var (
			p            domain.Person
			email, phone sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &email, &phone, &p.LoyaltyPoints); err != nil {
			return nil, err
		}
		p.Email, p.Phone = email.String, phone.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) holds(ctx context.Context) ([]domain.AvailabilityEntry, error) {
	rows, err := r.db.QueryContext(ctx, selectHoldsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AvailabilityEntry
	for rows.Next() {
		var (
			e      domain.AvailabilityEntry
			status string
			note   sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.RoomID, &e.Start, &e.End, &status, &note); err != nil {
			return nil, err
		}
		if e.Status, err = domain.ParseAvailabilityStatus(status); err != nil {
			return nil, fmt.Errorf("hold %d: %w", e.ID, err)
		}
		e.Start, e.End, e.Note = domain.Day(e.Start), domain.Day(e.End), note.String
		out = append(out, e)
	}
	return out, rows.Err()
}

// reviews carries only hotel and guest ids; the store resolves the snapshots on load.
func (r *Repo) reviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, selectReviewsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var (
			rv      domain.Review
			comment sql.NullString
		)
		if err := rows.Scan(&rv.ID, &rv.Hotel.ID, &rv.Person.ID, &rv.Rating, &comment); err != nil {
			return nil, err
		}
		rv.Comment = comment.String
		out = append(out, rv)
	}
	return out, rows.Err()
}

// ImportCatalog upserts c in one transaction, parents first to satisfy the foreign keys. Entries
// and reviews without an id are numbered after the catalog's highest id.
func (r *Repo) ImportCatalog(ctx context.Context, c domain.Catalog) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, h := range c.Hotels {
		a := h.Address
		if _, err = tx.ExecContext(ctx, upsertHotelSQL,
			h.ID, h.Name, h.Stars, valStr(a.Street), valStr(a.City), valStr(a.State), valStr(a.ZipCode), valStr(a.Country),
		); err != nil {
			return fmt.Errorf("upsert hotel %d: %w", h.ID, err)
		}
	}
	for _, rm := range c.Rooms {
		if _, err = tx.ExecContext(ctx, upsertRoomSQL,
			rm.ID, rm.HotelID, rm.Number, rm.Floor, rm.Capacity, rm.SeaView, rm.SmokingAllowed, string(rm.Type), rm.Price, rm.InService,
		); err != nil {
			return fmt.Errorf("upsert room %d: %w", rm.ID, err)
		}
	}
	for _, p := range c.People {
		if _, err = tx.ExecContext(ctx, upsertGuestSQL,
			p.ID, p.FirstName, p.LastName, valStr(p.Email), valStr(p.Phone), p.LoyaltyPoints,
		); err != nil {
			return fmt.Errorf("upsert guest %s: %w", p.ID, err)
		}
	}
	for _, e := range c.Availability {
		if _, err = tx.ExecContext(ctx, upsertHoldSQL,
			e.RoomID, domain.Day(e.Start), domain.Day(e.End), string(e.Status), valStr(e.Note),
		); err != nil {
			return fmt.Errorf("upsert hold for room %d: %w", e.RoomID, err)
		}
	}
	var top int64
	for _, rv := range c.Reviews {
		if rv.ID > top {
			top = rv.ID
		}
	}
	for _, rv := range c.Reviews {
		id := rv.ID
		if id == 0 {
			top++
			id = top
		}
		if _, err = tx.ExecContext(ctx, upsertReviewSQL, id, rv.Hotel.ID, rv.Person.ID, rv.Rating, valStr(rv.Comment)); err != nil {
			return fmt.Errorf("upsert review %d: %w", id, err)
		}
	}
	return tx.Commit()
}
