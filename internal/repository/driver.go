package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dankdash1/dispatch-service/internal/apperr"
	"github.com/dankdash1/dispatch-service/internal/domain"
)

const driverColumns = `id, name, email, phone, vehicle_type, license_number, status,
       current_lat, current_lon, rating, total_deliveries, created_at`

// DriverRepo represents the delivery partner repository.
type DriverRepo struct{ db *pgxpool.Pool }

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool) *DriverRepo { return &DriverRepo{db: db} }

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDriver(row rowScanner) (*domain.Driver, error) {
	var (
		d        domain.Driver
		lat, lon *float64
	)
	err := row.Scan(&d.ID, &d.Name, &d.Email, &d.Phone, &d.VehicleType, &d.LicenseNumber,
		&d.Status, &lat, &lon, &d.Rating, &d.TotalDeliveries, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	if lat != nil && lon != nil {
		d.Location = &domain.Coordinate{Lat: *lat, Lon: *lon}
	}
	return &d, nil
}

// Get - returns a driver by its ID.
func (r *DriverRepo) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+driverColumns+` FROM delivery_partners WHERE id=$1`, id)
	d, err := scanDriver(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	return d, nil
}

// List returns drivers ordered by id. If limit/offset are nil, returns the full list.
func (r *DriverRepo) List(ctx context.Context, limit, offset *int) ([]domain.Driver, error) {
	q := `SELECT ` + driverColumns + ` FROM delivery_partners ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// ListAvailable returns all drivers currently in available status.
func (r *DriverRepo) ListAvailable(ctx context.Context) ([]domain.Driver, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+driverColumns+` FROM delivery_partners WHERE status=$1 ORDER BY id`,
		string(domain.DriverAvailable))
	if err != nil {
		return nil, fmt.Errorf("list available drivers: %w", err)
	}
	defer rows.Close()

	var out []domain.Driver
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// Create - creates a new driver.
func (r *DriverRepo) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
        INSERT INTO delivery_partners(name, email, phone, vehicle_type, license_number, status, rating)
        VALUES($1,$2,$3,$4,$5,$6,$7)
        RETURNING id
    `, d.Name, d.Email, d.Phone, d.VehicleType, d.LicenseNumber, d.Status, d.Rating).Scan(&id)
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.ErrConflict
		}
		return 0, fmt.Errorf("create driver: %w", err)
	}
	return id, nil
}

// UpdatePartial applies a partial update to a driver and returns true if a row was affected.
func (r *DriverRepo) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE delivery_partners
        SET
            name           = COALESCE($2, name),
            email          = COALESCE($3, email),
            phone          = COALESCE($4, phone),
            vehicle_type   = COALESCE($5, vehicle_type),
            license_number = COALESCE($6, license_number),
            status         = COALESCE($7, status),
            updated_at     = now()
        WHERE id = $1
    `, u.ID, u.Name, u.Email, u.Phone, u.VehicleType, u.LicenseNumber, u.Status)

	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.ErrConflict
		}
		return false, fmt.Errorf("update driver %d: %w", u.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// UpdateLocation records a driver location check-in and returns true if a row was affected.
func (r *DriverRepo) UpdateLocation(ctx context.Context, id int64, c domain.Coordinate) (bool, error) {
	ct, err := r.db.Exec(ctx, `
        UPDATE delivery_partners
        SET current_lat = $2, current_lon = $3, updated_at = now()
        WHERE id = $1
    `, id, c.Lat, c.Lon)
	if err != nil {
		return false, fmt.Errorf("update driver location %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// Counts returns partner counts by availability. Offline partners are
// not part of the fleet for dispatch purposes, so Total is available
// plus busy only.
func (r *DriverRepo) Counts(ctx context.Context) (domain.DriverCounts, error) {
	var c domain.DriverCounts
	err := r.db.QueryRow(ctx, `
        SELECT
            COUNT(*) FILTER (WHERE status = $1),
            COUNT(*) FILTER (WHERE status = $2)
        FROM delivery_partners
    `, string(domain.DriverAvailable), string(domain.DriverBusy)).
		Scan(&c.Available, &c.Busy)
	if err != nil {
		return domain.DriverCounts{}, fmt.Errorf("count drivers: %w", err)
	}
	c.Total = c.Available + c.Busy
	return c, nil
}
