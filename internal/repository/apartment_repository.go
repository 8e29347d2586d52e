package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/mendoza-apartments/booking-api/internal/model"
)

// ErrApartmentNotFound is returned when an apartment id does not exist.
var ErrApartmentNotFound = errors.New("apartment not found")

// ApartmentRepo provides CRUD and search access to the `apartments` table.
// Images and characteristics live in JSON columns; the open-ended
// characteristics map deliberately has no relational schema so new amenity
// types can be added without a migration.
type ApartmentRepo struct {
	db *sql.DB
}

// NewApartmentRepo returns a new ApartmentRepo bound to the given database.
func NewApartmentRepo(db *sql.DB) *ApartmentRepo { return &ApartmentRepo{db: db} }

// apartmentColumns is the select list shared by every apartment query.
const apartmentColumns = `id, title, description, address, latitude, longitude, map_url,
	price_per_night, max_guests, is_active, images, principal_image_index,
	characteristics, contact_email, contact_phone, whatsapp, created_at, updated_at`

// scanApartment reads one row into a model.Apartment.  It accepts either a
// *sql.Row or *sql.Rows through the rowScanner interface.
func scanApartment(row rowScanner) (model.Apartment, error) {
	var (
		a         model.Apartment
		lat, lng  sql.NullFloat64
		mapURL    sql.NullString
		phone, wa sql.NullString
	)
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.Address, &lat, &lng, &mapURL,
		&a.PricePerNight, &a.MaxGuests, &a.IsActive, &a.Images, &a.PrincipalImageIndex,
		&a.Characteristics, &a.ContactEmail, &phone, &wa, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return model.Apartment{}, err
	}
	if lat.Valid {
		v := lat.Float64
		a.Latitude = &v
	}
	if lng.Valid {
		v := lng.Float64
		a.Longitude = &v
	}
	if mapURL.Valid {
		v := mapURL.String
		a.MapURL = &v
	}
	if phone.Valid {
		v := phone.String
		a.ContactPhone = &v
	}
	if wa.Valid {
		v := wa.String
		a.WhatsApp = &v
	}
	return a, nil
}

// rowScanner abstracts sql.Row and sql.Rows for shared scanning code.
type rowScanner interface {
	Scan(dest ...any) error
}

// Create inserts a new apartment.  The ID is generated here; timestamps are
// read back from the database so the returned struct reflects the stored row.
func (r *ApartmentRepo) Create(ctx context.Context, a *model.Apartment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	const q = `INSERT INTO apartments
		(id, title, description, address, latitude, longitude, map_url,
		 price_per_night, max_guests, is_active, images, principal_image_index,
		 characteristics, contact_email, contact_phone, whatsapp)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`
	_, err := r.db.ExecContext(ctx, q,
		a.ID, a.Title, a.Description, a.Address, a.Latitude, a.Longitude, a.MapURL,
		a.PricePerNight, a.MaxGuests, a.IsActive, a.Images, a.PrincipalImageIndex,
		a.Characteristics, a.ContactEmail, a.ContactPhone, a.WhatsApp,
	)
	if err != nil {
		return err
	}
	return r.refresh(ctx, a)
}

// refresh re-reads a stored row to populate DB-assigned timestamps.
func (r *ApartmentRepo) refresh(ctx context.Context, a *model.Apartment) error {
	stored, err := r.GetByID(ctx, a.ID)
	if err != nil {
		return err
	}
	*a = *stored
	return nil
}

// GetByID fetches one apartment regardless of its active flag.
func (r *ApartmentRepo) GetByID(ctx context.Context, id string) (*model.Apartment, error) {
	const q = `SELECT ` + apartmentColumns + ` FROM apartments WHERE id = ?`
	a, err := scanApartment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetActiveByID fetches one apartment only when it is published.
func (r *ApartmentRepo) GetActiveByID(ctx context.Context, id string) (*model.Apartment, error) {
	const q = `SELECT ` + apartmentColumns + ` FROM apartments WHERE id = ? AND is_active = 1`
	a, err := scanApartment(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrApartmentNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListActive returns all published apartments, newest first.
func (r *ApartmentRepo) ListActive(ctx context.Context) ([]model.Apartment, error) {
	const q = `SELECT ` + apartmentColumns + ` FROM apartments WHERE is_active = 1 ORDER BY created_at DESC`
	return r.list(ctx, q)
}

// ListAll returns every apartment including unpublished ones, for the admin
// dashboard.
func (r *ApartmentRepo) ListAll(ctx context.Context) ([]model.Apartment, error) {
	const q = `SELECT ` + apartmentColumns + ` FROM apartments ORDER BY created_at DESC`
	return r.list(ctx, q)
}

func (r *ApartmentRepo) list(ctx context.Context, query string, args ...any) ([]model.Apartment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Apartment, 0)
	for rows.Next() {
		a, err := scanApartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the mutable fields of an apartment.
func (r *ApartmentRepo) Update(ctx context.Context, a *model.Apartment) error {
	const q = `UPDATE apartments SET
		title=?, description=?, address=?, latitude=?, longitude=?, map_url=?,
		price_per_night=?, max_guests=?, is_active=?, images=?, principal_image_index=?,
		characteristics=?, contact_email=?, contact_phone=?, whatsapp=?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		a.Title, a.Description, a.Address, a.Latitude, a.Longitude, a.MapURL,
		a.PricePerNight, a.MaxGuests, a.IsActive, a.Images, a.PrincipalImageIndex,
		a.Characteristics, a.ContactEmail, a.ContactPhone, a.WhatsApp, a.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		if _, err := r.GetByID(ctx, a.ID); err != nil {
			return err
		}
	}
	return r.refresh(ctx, a)
}

// SetActive toggles the publish flag (the soft-delete path).
func (r *ApartmentRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE apartments SET is_active=? WHERE id=?`, active, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete hard-removes an apartment row.  Removing stored image objects is
// the caller's responsibility and is not transactional with this delete.
func (r *ApartmentRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM apartments WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrApartmentNotFound
	}
	return nil
}

// AppendImage adds an image URL to the end of the apartment's image list.
func (r *ApartmentRepo) AppendImage(ctx context.Context, id, url string) (*model.Apartment, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Images = append(a.Images, url)
	if err := r.saveImages(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// RemoveImage deletes the image at the given index and clamps the principal
// image index back into range, since the stored index can drift out of
// bounds when images are removed.
func (r *ApartmentRepo) RemoveImage(ctx context.Context, id string, index int) (*model.Apartment, error) {
	a, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(a.Images) {
		return nil, errors.New("image index out of range")
	}
	a.Images = append(a.Images[:index], a.Images[index+1:]...)
	a.PrincipalImageIndex = a.ClampedPrincipalIndex()
	if err := r.saveImages(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// SetPrincipalImage stores the cover image index as supplied.  Readers clamp
// on access, so an index that later drifts out of range stays harmless.
func (r *ApartmentRepo) SetPrincipalImage(ctx context.Context, id string, index int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE apartments SET principal_image_index=? WHERE id=?`, index, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (r *ApartmentRepo) saveImages(ctx context.Context, a *model.Apartment) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE apartments SET images=?, principal_image_index=? WHERE id=?`,
		a.Images, a.PrincipalImageIndex, a.ID)
	return err
}
