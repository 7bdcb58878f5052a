package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dankdash1/dispatch-service/internal/domain"
	"github.com/dankdash1/dispatch-service/internal/ports/dispatchtx"
)

// DeliveryRepo represents the delivery assignment repository.
type DeliveryRepo struct {
	db *pgxpool.Pool
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool) *DeliveryRepo {
	return &DeliveryRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx dispatchtx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			err = tx.Rollback(ctx)
			if err != nil {
				panic(err)
			}
			panic(p)
		}
	}()

	wrapped := &TxRepo{tx: tx}

	if err := fn(wrapped); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

// GetAssignment - returns a delivery assignment by its ID (outside any transaction).
func (r *DeliveryRepo) GetAssignment(ctx context.Context, id int64) (*domain.Delivery, error) {
	return getAssignment(ctx, r.db, id)
}

// Stats aggregates assignment activity since the given instant (start of
// the local calendar day for the stats endpoint).
func (r *DeliveryRepo) Stats(ctx context.Context, since time.Time) (domain.AssignmentCounts, error) {
	var c domain.AssignmentCounts
	err := r.db.QueryRow(ctx, `
        SELECT
            COUNT(*) FILTER (WHERE delivery_status IN ('assigned','picked_up','in_transit')),
            COUNT(*) FILTER (WHERE created_at >= $1),
            COUNT(*) FILTER (WHERE delivery_status = 'delivered' AND delivery_time >= $1),
            AVG(EXTRACT(EPOCH FROM (delivery_time - created_at)) / 60)
                FILTER (WHERE delivery_status = 'delivered' AND delivery_time >= $1)
        FROM order_deliveries
    `, since).Scan(&c.Active, &c.Today, &c.CompletedToday, &c.AvgDeliveryMinutes)
	if err != nil {
		return domain.AssignmentCounts{}, fmt.Errorf("assignment stats: %w", err)
	}
	return c, nil
}

// TxRepo represents the dispatch transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ dispatchtx.Repository = (*TxRepo)(nil)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const deliveryColumns = `id, order_id, partner_id, delivery_status,
       pickup_lat, pickup_lon, delivery_lat, delivery_lon, current_lat, current_lon,
       pickup_time, delivery_time, delivery_notes, created_at, updated_at`

func scanDelivery(row rowScanner) (*domain.Delivery, error) {
	var (
		d                domain.Delivery
		pickLat, pickLon *float64
		destLat, destLon *float64
		curLat, curLon   *float64
	)
	err := row.Scan(&d.ID, &d.OrderID, &d.DriverID, &d.Status,
		&pickLat, &pickLon, &destLat, &destLon, &curLat, &curLon,
		&d.PickupTime, &d.DeliveryTime, &d.Notes, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.PickupLocation = coordFrom(pickLat, pickLon)
	d.DeliveryLocation = coordFrom(destLat, destLon)
	d.CurrentLocation = coordFrom(curLat, curLon)
	return &d, nil
}

func coordFrom(lat, lon *float64) *domain.Coordinate {
	if lat == nil || lon == nil {
		return nil
	}
	return &domain.Coordinate{Lat: *lat, Lon: *lon}
}

func coordCols(c *domain.Coordinate) (lat, lon *float64) {
	if c == nil {
		return nil, nil
	}
	return &c.Lat, &c.Lon
}

func getAssignment(ctx context.Context, q querier, id int64) (*domain.Delivery, error) {
	row := q.QueryRow(ctx,
		`SELECT `+deliveryColumns+` FROM order_deliveries WHERE id=$1`, id)
	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment %d: %w", id, err)
	}
	return d, nil
}

// GetOrder - loads an order row and locks it for the rest of the
// transaction so concurrent auto-assigns on one order serialize.
func (r *TxRepo) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT id, order_number,
               COALESCE(customer_name, ''), COALESCE(customer_email, ''), COALESCE(customer_phone, ''),
               total, COALESCE(delivery_type, ''), shipping_address,
               fulfillment_status, driver_id, estimated_delivery
        FROM orders
        WHERE id = $1
        FOR UPDATE
    `, id)

	var (
		o       domain.Order
		rawAddr []byte
	)
	err := row.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.Total, &o.DeliveryType, &rawAddr, &o.FulfillmentStatus, &o.DriverID, &o.EstimatedDelivery)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	if len(rawAddr) > 0 {
		if err := json.Unmarshal(rawAddr, &o.ShippingAddress); err != nil {
			return nil, fmt.Errorf("decode shipping address for order %d: %w", id, err)
		}
	}
	return &o, nil
}

// SetOrderDispatch - updates the dispatch-owned order fields. A nil eta
// keeps the existing estimate.
func (r *TxRepo) SetOrderDispatch(ctx context.Context, orderID int64, status domain.FulfillmentStatus, driverID *int64, eta *time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE orders
        SET fulfillment_status = $2,
            driver_id          = $3,
            estimated_delivery = COALESCE($4, estimated_delivery),
            updated_at         = now()
        WHERE id = $1
    `, orderID, string(status), driverID, eta)
	if err != nil {
		return fmt.Errorf("set order dispatch %d: %w", orderID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("order %d not found", orderID)
	}
	return nil
}

// GetAssignment - returns a delivery assignment by its ID.
func (r *TxRepo) GetAssignment(ctx context.Context, id int64) (*domain.Delivery, error) {
	return getAssignment(ctx, r.tx, id)
}

// GetOpenByOrderID - returns the non-terminal assignment for an order, if any.
func (r *TxRepo) GetOpenByOrderID(ctx context.Context, orderID int64) (*domain.Delivery, error) {
	row := r.tx.QueryRow(ctx, `
        SELECT `+deliveryColumns+`
        FROM order_deliveries
        WHERE order_id = $1 AND delivery_status NOT IN ('delivered','failed')
    `, orderID)
	d, err := scanDelivery(row)
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open assignment for order %d: %w", orderID, err)
	}
	return d, nil
}

// UpsertAssignment - inserts the assignment for an order, or retargets the
// existing row (one assignment row per order; re-dispatch after a failed
// run reuses it and clears the old run's timestamps, notes and live
// location).
func (r *TxRepo) UpsertAssignment(ctx context.Context, d *domain.Delivery) error {
	pickLat, pickLon := coordCols(d.PickupLocation)
	destLat, destLon := coordCols(d.DeliveryLocation)

	err := r.tx.QueryRow(ctx, `
        INSERT INTO order_deliveries
            (order_id, partner_id, delivery_status, pickup_lat, pickup_lon, delivery_lat, delivery_lon, delivery_notes)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (order_id) DO UPDATE SET
            partner_id      = EXCLUDED.partner_id,
            delivery_status = EXCLUDED.delivery_status,
            pickup_lat      = EXCLUDED.pickup_lat,
            pickup_lon      = EXCLUDED.pickup_lon,
            delivery_lat    = EXCLUDED.delivery_lat,
            delivery_lon    = EXCLUDED.delivery_lon,
            delivery_notes  = EXCLUDED.delivery_notes,
            current_lat     = NULL,
            current_lon     = NULL,
            pickup_time     = NULL,
            delivery_time   = NULL,
            updated_at      = now()
        RETURNING id, created_at, updated_at
    `, d.OrderID, d.DriverID, string(d.Status), pickLat, pickLon, destLat, destLon, d.Notes).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert assignment for order %d: %w", d.OrderID, err)
	}
	return nil
}

// UpdateAssignment - persists lifecycle fields of an existing assignment.
func (r *TxRepo) UpdateAssignment(ctx context.Context, d *domain.Delivery) error {
	curLat, curLon := coordCols(d.CurrentLocation)
	ct, err := r.tx.Exec(ctx, `
        UPDATE order_deliveries
        SET delivery_status = $2,
            current_lat     = COALESCE($3, current_lat),
            current_lon     = COALESCE($4, current_lon),
            pickup_time     = $5,
            delivery_time   = $6,
            delivery_notes  = $7,
            updated_at      = now()
        WHERE id = $1
    `, d.ID, string(d.Status), curLat, curLon, d.PickupTime, d.DeliveryTime, d.Notes)
	if err != nil {
		return fmt.Errorf("update assignment %d: %w", d.ID, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("assignment %d not found", d.ID)
	}
	return nil
}

// GetDriver - returns a driver by its ID.
func (r *TxRepo) GetDriver(ctx context.Context, id int64) (*domain.Driver, error) {
	row := r.tx.QueryRow(ctx,
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

// ListAvailableDrivers - returns available drivers with their last-known locations.
func (r *TxRepo) ListAvailableDrivers(ctx context.Context) ([]domain.Driver, error) {
	rows, err := r.tx.Query(ctx,
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

// ClaimDriver - compare-and-swap on driver status. Returns false when the
// driver is no longer available, so the caller can move to the next
// candidate; this is what keeps two concurrent assigns off one driver.
func (r *TxRepo) ClaimDriver(ctx context.Context, id int64) (bool, error) {
	ct, err := r.tx.Exec(ctx, `
        UPDATE delivery_partners
        SET status = $2, updated_at = now()
        WHERE id = $1 AND status = $3
    `, id, string(domain.DriverBusy), string(domain.DriverAvailable))
	if err != nil {
		return false, fmt.Errorf("claim driver %d: %w", id, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ReleaseDriver - returns a driver to the available pool.
func (r *TxRepo) ReleaseDriver(ctx context.Context, id int64, completed bool) error {
	inc := 0
	if completed {
		inc = 1
	}
	ct, err := r.tx.Exec(ctx, `
        UPDATE delivery_partners
        SET status = $2, total_deliveries = total_deliveries + $3, updated_at = now()
        WHERE id = $1
    `, id, string(domain.DriverAvailable), inc)
	if err != nil {
		return fmt.Errorf("release driver %d: %w", id, err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("driver %d not found", id)
	}
	return nil
}
