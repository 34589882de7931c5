package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/stationops/fleetwatch/pkg/model"

	_ "modernc.org/sqlite"
)

// SQLite implements the Storage interface using an SQLite database.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens or creates an SQLite database at the given path.
func NewSQLite(dbPath string) (*SQLite, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for concurrent reads
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (s *SQLite) CreateVehicle(ctx context.Context, v *model.Vehicle) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO vehicles (id, name, unit_number, station, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.UnitNumber, v.Station, v.Active, v.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}
	return nil
}

func (s *SQLite) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, unit_number, station, active, created_at FROM vehicles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.UnitNumber, &v.Station, &v.Active, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (s *SQLite) CreateItem(ctx context.Context, item *model.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO inventory_items (id, name, item_code, category, min_quantity, consumable, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.ID, item.Name, item.ItemCode, item.Category, item.MinQuantity, item.Consumable, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

func (s *SQLite) ListItems(ctx context.Context) ([]model.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, item_code, category, min_quantity, consumable, created_at
		 FROM inventory_items ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []model.InventoryItem
	for rows.Next() {
		var item model.InventoryItem
		if err := rows.Scan(&item.ID, &item.Name, &item.ItemCode, &item.Category,
			&item.MinQuantity, &item.Consumable, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item row: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *SQLite) CreateSchedule(ctx context.Context, sched *model.MaintenanceSchedule) error {
	if err := sched.Target.Validate(); err != nil {
		return err
	}
	if sched.ID == "" {
		sched.ID = uuid.New().String()
	}
	if sched.CreatedAt.IsZero() {
		sched.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO maintenance_schedules (id, kind, item_id, vehicle_id, title, description,
		   interval_type, interval_value, cost_estimate, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sched.ID, sched.Kind, nullable(sched.Target.ItemID), nullable(sched.Target.VehicleID),
		sched.Title, sched.Description, sched.Interval.Type, sched.Interval.Value,
		sched.CostEstimate, sched.Active, sched.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert schedule: %w", err)
	}
	return nil
}

func (s *SQLite) SetScheduleActive(ctx context.Context, id string, active bool) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE maintenance_schedules SET active = ? WHERE id = ?`, active, id)
	if err != nil {
		return fmt.Errorf("set schedule active: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("schedule %q not found", id)
	}
	return nil
}

func (s *SQLite) ListActiveSchedules(ctx context.Context) ([]model.MaintenanceSchedule, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT s.id, s.kind, s.item_id, s.vehicle_id, s.title, s.description,
		        s.interval_type, s.interval_value, s.cost_estimate, s.active, s.created_at,
		        COALESCE(i.name, v.name, '')
		 FROM maintenance_schedules s
		 LEFT JOIN inventory_items i ON i.id = s.item_id
		 LEFT JOIN vehicles v ON v.id = s.vehicle_id
		 WHERE s.active = 1
		 ORDER BY s.title`)
	if err != nil {
		return nil, fmt.Errorf("list active schedules: %w", err)
	}
	defer rows.Close()

	var schedules []model.MaintenanceSchedule
	for rows.Next() {
		var sched model.MaintenanceSchedule
		var itemID, vehicleID sql.NullString
		if err := rows.Scan(&sched.ID, &sched.Kind, &itemID, &vehicleID, &sched.Title,
			&sched.Description, &sched.Interval.Type, &sched.Interval.Value,
			&sched.CostEstimate, &sched.Active, &sched.CreatedAt, &sched.TargetLabel); err != nil {
			return nil, fmt.Errorf("scan schedule row: %w", err)
		}
		sched.Target.ItemID = itemID.String
		sched.Target.VehicleID = vehicleID.String
		schedules = append(schedules, sched)
	}
	return schedules, rows.Err()
}

func (s *SQLite) AddRecord(ctx context.Context, r *model.MaintenanceRecord) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	var nextDue any
	if !r.NextDueDate.IsZero() {
		nextDue = r.NextDueDate
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO maintenance_records (id, schedule_id, item_id, vehicle_id, work_type,
		   performed_by, performed_date, next_due_date, completed, cost, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, nullable(r.ScheduleID), nullable(r.Target.ItemID), nullable(r.Target.VehicleID),
		r.WorkType, r.PerformedBy, r.PerformedDate, nextDue, r.Completed, r.Cost, r.Notes, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert maintenance record: %w", err)
	}
	return nil
}

func (s *SQLite) ListRecordsBySchedule(ctx context.Context) (map[string][]model.MaintenanceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, schedule_id, item_id, vehicle_id, work_type, performed_by,
		        performed_date, next_due_date, completed, cost, notes, created_at
		 FROM maintenance_records
		 WHERE schedule_id IS NOT NULL
		 ORDER BY performed_date`)
	if err != nil {
		return nil, fmt.Errorf("list maintenance records: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]model.MaintenanceRecord)
	for rows.Next() {
		var r model.MaintenanceRecord
		var scheduleID, itemID, vehicleID sql.NullString
		var nextDue sql.NullTime
		if err := rows.Scan(&r.ID, &scheduleID, &itemID, &vehicleID, &r.WorkType,
			&r.PerformedBy, &r.PerformedDate, &nextDue, &r.Completed, &r.Cost,
			&r.Notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan record row: %w", err)
		}
		r.ScheduleID = scheduleID.String
		r.Target.ItemID = itemID.String
		r.Target.VehicleID = vehicleID.String
		if nextDue.Valid {
			r.NextDueDate = nextDue.Time
		}
		grouped[r.ScheduleID] = append(grouped[r.ScheduleID], r)
	}
	return grouped, rows.Err()
}

func (s *SQLite) AddCertification(ctx context.Context, c *model.Certification) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO item_certifications (id, item_id, location, certification_type,
		   certification_date, expiration_date, agency, certificate_number, passed, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ItemID, c.Location, c.Type, c.CertificationDate, c.ExpirationDate,
		c.Agency, c.CertificateNumber, c.Passed, c.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert certification: %w", err)
	}
	return nil
}

func (s *SQLite) ListCertifications(ctx context.Context) ([]model.Certification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.item_id, COALESCE(i.name, ''), c.location, c.certification_type,
		        c.certification_date, c.expiration_date, c.agency, c.certificate_number,
		        c.passed, c.notes
		 FROM item_certifications c
		 LEFT JOIN inventory_items i ON i.id = c.item_id
		 ORDER BY c.certification_date`)
	if err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}
	defer rows.Close()

	var certs []model.Certification
	for rows.Next() {
		var c model.Certification
		if err := rows.Scan(&c.ID, &c.ItemID, &c.ItemName, &c.Location, &c.Type,
			&c.CertificationDate, &c.ExpirationDate, &c.Agency, &c.CertificateNumber,
			&c.Passed, &c.Notes); err != nil {
			return nil, fmt.Errorf("scan certification row: %w", err)
		}
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

func (s *SQLite) UpsertStockLevel(ctx context.Context, itemID, location string, quantity int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO stock_levels (item_id, location, quantity, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(item_id, location) DO UPDATE SET
		   quantity = excluded.quantity,
		   updated_at = excluded.updated_at`,
		itemID, location, quantity, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert stock level: %w", err)
	}
	return nil
}

func (s *SQLite) ListStockLevels(ctx context.Context) ([]model.StockLevel, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT l.item_id, COALESCE(i.name, ''), l.location, l.quantity, COALESCE(i.min_quantity, 0)
		 FROM stock_levels l
		 LEFT JOIN inventory_items i ON i.id = l.item_id
		 ORDER BY i.name, l.location`)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()

	var levels []model.StockLevel
	for rows.Next() {
		var l model.StockLevel
		if err := rows.Scan(&l.ItemID, &l.ItemName, &l.Location, &l.Quantity, &l.MinQuantity); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

// nullable maps an empty string to NULL so optional foreign keys stay unset.
func nullable(v string) any {
	if v == "" {
		return nil
	}
	return v
}
