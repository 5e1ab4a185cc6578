package repo

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// CatalogRow mirrors one catalog table entry. Prefix/Suffix are the
// numeric catalog identifiers; SurfaceGauss and ForceFactorN are the
// rated values at the magnet face.
type CatalogRow struct {
	Prefix       int     `json:"prefix"`
	Suffix       int     `json:"suffix"`
	Frame        string  `json:"frame"`
	WidthMM      float64 `json:"width_mm"`
	Watts        float64 `json:"watts"`
	SurfaceGauss float64 `json:"surface_gauss"`
	ForceFactorN float64 `json:"force_factor_n"`
}

type QuoteItem struct {
	CatalogPrefix int     `json:"catalog_prefix"`
	CatalogSuffix int     `json:"catalog_suffix"`
	Description   string  `json:"description"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
}

type QuoteDraft struct {
	Name     string      `json:"name"`
	Customer string      `json:"customer"`
	Items    []QuoteItem `json:"items"`
}

type Quote struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	Customer  string      `json:"customer"`
	Items     []QuoteItem `json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

type SavedConfig struct {
	ID        int             `json:"id"`
	Name      string          `json:"name"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
}

type Repository interface {
	CreateUser(ctx context.Context, login, email, password string) (int, error)
	GetBylogin(ctx context.Context, login string) (int, string, error)

	ListCatalog(ctx context.Context) ([]CatalogRow, error)
	UpsertCatalogRow(ctx context.Context, row CatalogRow) error

	CreateQuote(ctx context.Context, userID int, draft QuoteDraft) (int, error)
	ListQuotes(ctx context.Context, userID int) ([]Quote, error)
	GetQuote(ctx context.Context, userID, quoteID int) (Quote, error)
	DeleteQuote(ctx context.Context, userID, quoteID int) error

	SaveConfig(ctx context.Context, userID int, name string, payload json.RawMessage) (int, error)
	ListConfigs(ctx context.Context, userID int) ([]SavedConfig, error)
	GetConfig(ctx context.Context, userID, configID int) (SavedConfig, error)
}

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresDB(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, login, email, password string) (int, error) {
	var id int
	query := "INSERT INTO users (login, email, password) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, login, email, password).Scan(&id)
	return id, err
}

func (r *PostgresRepository) GetBylogin(ctx context.Context, login string) (int, string, error) {
	var id int
	var hash string

	query := "SELECT id, password FROM users WHERE login=$1"

	err := r.db.QueryRowContext(ctx, query, login).Scan(&id, &hash)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, "", nil
		}
		return 0, "", err
	}
	return id, hash, nil
}

func (r *PostgresRepository) ListCatalog(ctx context.Context) ([]CatalogRow, error) {
	query := `SELECT prefix, suffix, frame, width, watts, surface_gauss, force_factor
		FROM catalog ORDER BY prefix, suffix`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []CatalogRow
	for rows.Next() {
		var c CatalogRow
		if err := rows.Scan(&c.Prefix, &c.Suffix, &c.Frame, &c.WidthMM, &c.Watts, &c.SurfaceGauss, &c.ForceFactorN); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) UpsertCatalogRow(ctx context.Context, row CatalogRow) error {
	query := `INSERT INTO catalog (prefix, suffix, frame, width, watts, surface_gauss, force_factor)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (prefix, suffix) DO UPDATE SET
			frame = EXCLUDED.frame, width = EXCLUDED.width, watts = EXCLUDED.watts,
			surface_gauss = EXCLUDED.surface_gauss, force_factor = EXCLUDED.force_factor`
	_, err := r.db.ExecContext(ctx, query,
		row.Prefix, row.Suffix, row.Frame, row.WidthMM, row.Watts, row.SurfaceGauss, row.ForceFactorN)
	return err
}

func (r *PostgresRepository) CreateQuote(ctx context.Context, userID int, draft QuoteDraft) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var id int
	query := "INSERT INTO quotes (user_id, name, customer) VALUES ($1, $2, $3) RETURNING id"
	if err := tx.QueryRowContext(ctx, query, userID, draft.Name, draft.Customer).Scan(&id); err != nil {
		return 0, err
	}
	itemQuery := `INSERT INTO quote_items (quote_id, catalog_prefix, catalog_suffix, description, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, item := range draft.Items {
		if _, err := tx.ExecContext(ctx, itemQuery,
			id, item.CatalogPrefix, item.CatalogSuffix, item.Description, item.Quantity, item.UnitPrice); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresRepository) ListQuotes(ctx context.Context, userID int) ([]Quote, error) {
	query := "SELECT id, name, customer, created_at FROM quotes WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.ID, &q.Name, &q.Customer, &q.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetQuote(ctx context.Context, userID, quoteID int) (Quote, error) {
	var q Quote
	query := "SELECT id, name, customer, created_at FROM quotes WHERE id=$1 AND user_id=$2"
	if err := r.db.QueryRowContext(ctx, query, quoteID, userID).Scan(&q.ID, &q.Name, &q.Customer, &q.CreatedAt); err != nil {
		return Quote{}, err
	}

	itemQuery := `SELECT catalog_prefix, catalog_suffix, description, quantity, unit_price
		FROM quote_items WHERE quote_id=$1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, itemQuery, quoteID)
	if err != nil {
		return Quote{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item QuoteItem
		if err := rows.Scan(&item.CatalogPrefix, &item.CatalogSuffix, &item.Description, &item.Quantity, &item.UnitPrice); err != nil {
			return Quote{}, err
		}
		q.Items = append(q.Items, item)
	}
	return q, rows.Err()
}

func (r *PostgresRepository) DeleteQuote(ctx context.Context, userID, quoteID int) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM quotes WHERE id=$1 AND user_id=$2", quoteID, userID)
	return err
}

func (r *PostgresRepository) SaveConfig(ctx context.Context, userID int, name string, payload json.RawMessage) (int, error) {
	var id int
	query := "INSERT INTO saved_configs (user_id, name, payload) VALUES ($1, $2, $3) RETURNING id"
	err := r.db.QueryRowContext(ctx, query, userID, name, []byte(payload)).Scan(&id)
	return id, err
}

func (r *PostgresRepository) ListConfigs(ctx context.Context, userID int) ([]SavedConfig, error) {
	query := "SELECT id, name, payload, created_at FROM saved_configs WHERE user_id=$1 ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SavedConfig
	for rows.Next() {
		var c SavedConfig
		var payload []byte
		if err := rows.Scan(&c.ID, &c.Name, &payload, &c.CreatedAt); err != nil {
			return nil, err
		}
		c.Payload = json.RawMessage(payload)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetConfig(ctx context.Context, userID, configID int) (SavedConfig, error) {
	var c SavedConfig
	var payload []byte
	query := "SELECT id, name, payload, created_at FROM saved_configs WHERE id=$1 AND user_id=$2"
	if err := r.db.QueryRowContext(ctx, query, configID, userID).Scan(&c.ID, &c.Name, &payload, &c.CreatedAt); err != nil {
		return SavedConfig{}, err
	}
	c.Payload = json.RawMessage(payload)
	return c, nil
}
