package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/estately/internal/dbx"
	"github.com/dmitrijs2005/estately/internal/models"
)

const paymentsDomain = "payments"

// SQLiteStore implements Store using a DBTX (either *sql.DB or *sql.Tx)
// over a local SQLite file.
type SQLiteStore struct {
	db dbx.DBTX
}

// NewSQLiteStore returns a new SQLiteStore bound to the given DBTX.
func NewSQLiteStore(db dbx.DBTX) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// InitSchema creates the backing table if it does not exist yet.
func (s *SQLiteStore) InitSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS local_collections (
		key TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create local schema: %w", err)
	}
	return nil
}

// AppendPayment reads the payment list, appends the new row with its
// display placeholders, and re-serializes the whole list.
func (s *SQLiteStore) AppendPayment(ctx context.Context, p models.Payment) error {
	var list []models.Payment
	if err := s.readList(ctx, paymentsDomain, &list); err != nil {
		return err
	}
	p.BuyerEmail = LocalUserDisplay
	p.PropertyTitle = LocalPropertyDisplay
	list = append(list, p)
	return s.writeList(ctx, paymentsDomain, list)
}

// PaymentsByUser filters the client-local ledger by user id.
func (s *SQLiteStore) PaymentsByUser(ctx context.Context, userID string) ([]models.Payment, error) {
	var list []models.Payment
	if err := s.readList(ctx, paymentsDomain, &list); err != nil {
		return nil, err
	}
	result := make([]models.Payment, 0, len(list))
	for _, p := range list {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

// SaveFavorites replaces the per-user favorites list.
func (s *SQLiteStore) SaveFavorites(ctx context.Context, userID string, favs []models.Favorite) error {
	return s.writeList(ctx, favoritesKey(userID), favs)
}

// FavoritesByUser returns the per-user favorites list.
func (s *SQLiteStore) FavoritesByUser(ctx context.Context, userID string) ([]models.Favorite, error) {
	var list []models.Favorite
	if err := s.readList(ctx, favoritesKey(userID), &list); err != nil {
		return nil, err
	}
	return list, nil
}

func favoritesKey(userID string) string {
	return "favorites_" + userID
}

func (s *SQLiteStore) readList(ctx context.Context, key string, out any) error {
	var payload string
	row := s.db.QueryRowContext(ctx, `SELECT payload FROM local_collections WHERE key = ?`, key)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to read local collection %q: %w", key, err)
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("failed to decode local collection %q: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) writeList(ctx context.Context, key string, list any) error {
	payload, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to encode local collection %q: %w", key, err)
	}
	query := `INSERT INTO local_collections (key, payload) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload`
	if _, err := s.db.ExecContext(ctx, query, key, string(payload)); err != nil {
		return fmt.Errorf("failed to write local collection %q: %w", key, err)
	}
	return nil
}
