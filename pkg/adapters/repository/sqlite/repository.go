package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"github.com/travelviet/places-admin/pkg/core/domain"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	if err := migrate(db); err != nil {
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS places (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		place_name TEXT NOT NULL,
		place_label TEXT NOT NULL,
		phone_number TEXT NOT NULL,
		visit_time TEXT NOT NULL,
		open_close_hour TEXT NOT NULL,
		address TEXT NOT NULL,
		description TEXT NOT NULL,
		like_number INTEGER DEFAULT 0,
		comment TEXT,
		view_number INTEGER DEFAULT 0,
		latitude REAL NOT NULL,
		longitude REAL NOT NULL,
		place_image_folder TEXT NOT NULL,
		price_from REAL DEFAULT 0,
		price_to REAL DEFAULT 0,
		ticket TEXT,
		images JSON,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS labels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		label_name TEXT NOT NULL,
		is_active BOOLEAN NOT NULL DEFAULT 1,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_labels_label_name ON labels(label_name);
	`
	_, err := db.Exec(query)
	return err
}

// decodeLabels reads the place_label column, which holds either a JSON list
// or a legacy comma-joined string from earlier imports.
func decodeLabels(raw []byte) []string {
	var labels []string
	if err := json.Unmarshal(raw, &labels); err == nil {
		return domain.NormalizeLabels(labels)
	}
	return domain.NormalizeLabels(string(raw))
}

const placeColumns = `id, place_name, place_label, phone_number, visit_time, open_close_hour,
	address, description, like_number, comment, view_number, latitude, longitude,
	place_image_folder, price_from, price_to, ticket, images, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPlace(row rowScanner) (*domain.Place, error) {
	var place domain.Place
	var labelRaw, imagesJSON []byte
	var comment, ticket sql.NullString

	err := row.Scan(
		&place.ID, &place.PlaceName, &labelRaw, &place.PhoneNumber, &place.VisitTime,
		&place.OpenCloseHour, &place.Address, &place.Description, &place.LikeNumber,
		&comment, &place.ViewNumber, &place.Latitude, &place.Longitude,
		&place.PlaceImageFolder, &place.PriceFrom, &place.PriceTo, &ticket,
		&imagesJSON, &place.CreatedAt, &place.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	place.Comment = comment.String
	place.Ticket = ticket.String
	place.PlaceLabel = decodeLabels(labelRaw)
	_ = json.Unmarshal(imagesJSON, &place.Images)
	return &place, nil
}

func (r *SQLiteRepository) CreatePlace(ctx context.Context, place *domain.Place) error {
	query := `INSERT INTO places (place_name, place_label, phone_number, visit_time, open_close_hour,
		address, description, like_number, comment, view_number, latitude, longitude,
		place_image_folder, price_from, price_to, ticket, images, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	labelJSON, err := json.Marshal(place.PlaceLabel)
	if err != nil {
		return err
	}
	imagesJSON, err := json.Marshal(place.Images)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, query,
		place.PlaceName, labelJSON, place.PhoneNumber, place.VisitTime, place.OpenCloseHour,
		place.Address, place.Description, place.LikeNumber, place.Comment, place.ViewNumber,
		place.Latitude, place.Longitude, place.PlaceImageFolder, place.PriceFrom,
		place.PriceTo, place.Ticket, imagesJSON, place.CreatedAt, place.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	place.ID = id
	return nil
}

func (r *SQLiteRepository) GetPlaceByID(ctx context.Context, id int64) (*domain.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places WHERE id = ?`

	place, err := scanPlace(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return place, nil
}

func (r *SQLiteRepository) UpdatePlace(ctx context.Context, place *domain.Place) error {
	query := `UPDATE places SET place_name = ?, place_label = ?, phone_number = ?, visit_time = ?,
		open_close_hour = ?, address = ?, description = ?, like_number = ?, comment = ?,
		view_number = ?, latitude = ?, longitude = ?, place_image_folder = ?, price_from = ?,
		price_to = ?, ticket = ?, images = ?, updated_at = ? WHERE id = ?`

	labelJSON, err := json.Marshal(place.PlaceLabel)
	if err != nil {
		return err
	}
	imagesJSON, err := json.Marshal(place.Images)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query,
		place.PlaceName, labelJSON, place.PhoneNumber, place.VisitTime, place.OpenCloseHour,
		place.Address, place.Description, place.LikeNumber, place.Comment, place.ViewNumber,
		place.Latitude, place.Longitude, place.PlaceImageFolder, place.PriceFrom,
		place.PriceTo, place.Ticket, imagesJSON, place.UpdatedAt, place.ID,
	)
	return err
}

func (r *SQLiteRepository) ListPlaces(ctx context.Context, limit, offset int) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places ORDER BY id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []domain.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, *place)
	}
	return places, rows.Err()
}

func (r *SQLiteRepository) CountPlaces(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM places`).Scan(&count)
	return count, err
}

func (r *SQLiteRepository) DumpPlaces(ctx context.Context) ([]domain.Place, error) {
	query := `SELECT ` + placeColumns + ` FROM places ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []domain.Place{}
	for rows.Next() {
		place, err := scanPlace(rows)
		if err != nil {
			return nil, err
		}
		places = append(places, *place)
	}
	return places, rows.Err()
}

func (r *SQLiteRepository) CreateLabel(ctx context.Context, label *domain.Label) error {
	query := `INSERT INTO labels (label_name, is_active, created_at) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query, label.LabelName, label.IsActive, label.CreatedAt)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	label.ID = id
	return nil
}

func (r *SQLiteRepository) GetLabelByID(ctx context.Context, id int64) (*domain.Label, error) {
	query := `SELECT id, label_name, is_active, created_at FROM labels WHERE id = ?`

	var label domain.Label
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&label.ID, &label.LabelName, &label.IsActive, &label.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &label, nil
}

func (r *SQLiteRepository) UpdateLabelName(ctx context.Context, id int64, name string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE labels SET label_name = ? WHERE id = ?`, name, id)
	return err
}

func (r *SQLiteRepository) SetLabelActive(ctx context.Context, id int64, active bool) error {
	_, err := r.db.ExecContext(ctx, `UPDATE labels SET is_active = ? WHERE id = ?`, active, id)
	return err
}

func (r *SQLiteRepository) ListLabels(ctx context.Context, limit, offset int) ([]domain.Label, error) {
	query := `SELECT id, label_name, is_active, created_at FROM labels ORDER BY id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []domain.Label{}
	for rows.Next() {
		var label domain.Label
		if err := rows.Scan(&label.ID, &label.LabelName, &label.IsActive, &label.CreatedAt); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func (r *SQLiteRepository) CountLabels(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM labels`).Scan(&count)
	return count, err
}

func (r *SQLiteRepository) DumpLabels(ctx context.Context) ([]domain.Label, error) {
	query := `SELECT id, label_name, is_active, created_at FROM labels ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	labels := []domain.Label{}
	for rows.Next() {
		var label domain.Label
		if err := rows.Scan(&label.ID, &label.LabelName, &label.IsActive, &label.CreatedAt); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}
