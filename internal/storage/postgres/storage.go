package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/encryptSIM/backend/internal/domain/errors"
	"github.com/encryptSIM/backend/internal/domain/model"
	"github.com/encryptSIM/backend/internal/domain/repository"
)

// pgxPool is the subset of pgxpool.Pool the storage relies on; pgxmock
// satisfies it in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage is the durable keyed store: hierarchical path-addressed JSON
// documents backed by PostgreSQL, with a conditional-write primitive for
// order status transitions.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

// Document paths mirror the layout of the records they hold.
const (
	orderPathPrefix   = "orders/"
	profilePathPrefix = "payment_profiles/"
	couponPathPrefix  = "coupons/"
	simsPathPrefix    = "sims/"
	errorLogPrefix    = "error_logs/"
)

type profileRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type couponRepository struct {
	storage *Storage
}

type simRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Profiles() repository.ProfileRepository {
	return &profileRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Coupons() repository.CouponRepository {
	return &couponRepository{storage: s}
}

func (s *Storage) Sims() repository.SimRepository {
	return &simRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
            path TEXT PRIMARY KEY,
            doc JSONB NOT NULL,
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_documents_order_status ON documents ((doc->>'status')) WHERE path LIKE 'orders/%'`,
		`CREATE INDEX IF NOT EXISTS idx_documents_order_profile ON documents ((doc->>'ppPublicKey')) WHERE path LIKE 'orders/%'`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- document primitives ---

func (s *Storage) getDoc(ctx context.Context, path string, out any) error {
	const query = `SELECT doc FROM documents WHERE path=$1`
	var raw []byte
	if err := s.pool.QueryRow(ctx, query, path).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Storage) setDoc(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	const query = `INSERT INTO documents (path, doc) VALUES ($1, $2)
                   ON CONFLICT (path) DO UPDATE SET doc = EXCLUDED.doc, updated_at = NOW()`
	_, err = s.pool.Exec(ctx, query, path, raw)
	return err
}

func (s *Storage) insertDoc(ctx context.Context, path string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	const query = `INSERT INTO documents (path, doc) VALUES ($1, $2) ON CONFLICT (path) DO NOTHING`
	tag, err := s.pool.Exec(ctx, query, path, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrAlreadyExists
	}
	return nil
}

// updateDoc merges partial fields into an existing document.
func (s *Storage) updateDoc(ctx context.Context, path string, fields map[string]any) error {
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	const query = `UPDATE documents SET doc = doc || $2, updated_at = NOW() WHERE path=$1`
	tag, err := s.pool.Exec(ctx, query, path, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (s *Storage) existsDoc(ctx context.Context, path string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM documents WHERE path=$1)`
	var exists bool
	if err := s.pool.QueryRow(ctx, query, path).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// SaveErrorLog persists a client-reported error under a timestamp key.
func (s *Storage) SaveErrorLog(ctx context.Context, message string, at time.Time) error {
	key := sanitizeKey(at.UTC().Format(time.RFC3339Nano))
	return s.setDoc(ctx, errorLogPrefix+key, map[string]string{"message": message})
}

func sanitizeKey(key string) string {
	out := []byte(key)
	for i, c := range out {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			out[i] = '_'
		}
	}
	return string(out)
}

// --- ProfileRepository implementation ---

func (r *profileRepository) Create(ctx context.Context, profile *model.PaymentProfile) error {
	return r.storage.insertDoc(ctx, profilePathPrefix+profile.PublicKey, profile)
}

func (r *profileRepository) Get(ctx context.Context, publicKey string) (*model.PaymentProfile, error) {
	var profile model.PaymentProfile
	if err := r.storage.getDoc(ctx, profilePathPrefix+publicKey, &profile); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) Exists(ctx context.Context, publicKey string) (bool, error) {
	return r.storage.existsDoc(ctx, profilePathPrefix+publicKey)
}

// LinkOrder appends the order id to the profile's set. The row is locked for
// the duration of the read-modify-write so concurrent links cannot drop ids.
func (r *profileRepository) LinkOrder(ctx context.Context, publicKey, orderID string) error {
	return r.mutateOrderIDs(ctx, publicKey, func(ids []string) []string {
		for _, id := range ids {
			if id == orderID {
				return ids
			}
		}
		return append(ids, orderID)
	})
}

func (r *profileRepository) UnlinkOrder(ctx context.Context, publicKey, orderID string) error {
	return r.mutateOrderIDs(ctx, publicKey, func(ids []string) []string {
		out := ids[:0]
		for _, id := range ids {
			if id != orderID {
				out = append(out, id)
			}
		}
		return out
	})
}

func (r *profileRepository) mutateOrderIDs(ctx context.Context, publicKey string, mutate func([]string) []string) error {
	path := profilePathPrefix + publicKey
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT doc FROM documents WHERE path=$1 FOR UPDATE`
		var raw []byte
		if err := tx.QueryRow(ctx, selectQuery, path).Scan(&raw); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrProfileNotFound
			}
			return err
		}
		var profile model.PaymentProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return err
		}
		profile.OrderIDs = mutate(profile.OrderIDs)
		profile.UpdatedAt = time.Now().UTC()
		updated, err := json.Marshal(&profile)
		if err != nil {
			return err
		}
		const updateQuery = `UPDATE documents SET doc = $2, updated_at = NOW() WHERE path=$1`
		_, err = tx.Exec(ctx, updateQuery, path, updated)
		return err
	})
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.storage.insertDoc(ctx, orderPathPrefix+order.OrderID, order)
}

func (r *orderRepository) Get(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	if err := r.storage.getDoc(ctx, orderPathPrefix+orderID, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Replace(ctx context.Context, order *model.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return err
	}
	const query = `UPDATE documents SET doc = $2, updated_at = NOW() WHERE path=$1`
	tag, err := r.storage.pool.Exec(ctx, query, orderPathPrefix+order.OrderID, raw)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) UpdatePayment(ctx context.Context, orderID, observed string, updatedAt time.Time) error {
	return r.storage.updateDoc(ctx, orderPathPrefix+orderID, map[string]any{
		"paymentInSol": observed,
		"updatedAt":    updatedAt,
	})
}

// SetStatusIf is the compare-and-swap used between concurrent watchers: the
// status moves only when the persisted value still equals from.
func (r *orderRepository) SetStatusIf(ctx context.Context, orderID string, from, to model.OrderStatus, updatedAt time.Time) (bool, error) {
	if !from.CanTransition(to) {
		return false, domainErrors.ErrInvalidStatusChange
	}
	fields, err := json.Marshal(map[string]any{"status": to, "updatedAt": updatedAt})
	if err != nil {
		return false, err
	}
	const query = `UPDATE documents SET doc = doc || $3, updated_at = NOW()
                   WHERE path=$1 AND doc->>'status' = $2`
	tag, err := r.storage.pool.Exec(ctx, query, orderPathPrefix+orderID, string(from), fields)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *orderRepository) ListByProfile(ctx context.Context, ppPublicKey string, kind model.OrderKind) ([]model.Order, error) {
	const query = `SELECT doc FROM documents
                   WHERE path LIKE 'orders/%' AND doc->>'ppPublicKey' = $1 AND doc->>'kind' = $2
                   ORDER BY (doc->>'createdAt') DESC`
	return r.queryOrders(ctx, query, ppPublicKey, string(kind))
}

func (r *orderRepository) SelectActive(ctx context.Context, cutoff time.Time) ([]model.Order, error) {
	const query = `SELECT doc FROM documents
                   WHERE path LIKE 'orders/%'
                     AND doc->>'status' IN ('pending', 'paid', 'esim_provisioned')
                     AND (doc->>'createdAt')::timestamptz > $1
                   ORDER BY (doc->>'createdAt')`
	return r.queryOrders(ctx, query, cutoff)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, err
		}
		var order model.Order
		if err := json.Unmarshal(raw, &order); err != nil {
			return nil, err
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- CouponRepository implementation ---

func (r *couponRepository) Get(ctx context.Context, code string) (*model.Coupon, error) {
	var coupon model.Coupon
	if err := r.storage.getDoc(ctx, couponPathPrefix+code, &coupon); err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) MarkRedeemed(ctx context.Context, code string) error {
	const query = `UPDATE documents SET doc = doc || '{"redeemed": true}', updated_at = NOW()
                   WHERE path=$1 AND (doc->>'redeemed')::boolean = false`
	tag, err := r.storage.pool.Exec(ctx, query, couponPathPrefix+code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.Get(ctx, code); err != nil {
		return err
	}
	return domainErrors.ErrCouponRedeemed
}

// --- SimRepository implementation ---

func (r *simRepository) SaveSims(ctx context.Context, id string, sims []model.SimArtifact) error {
	byICCID := make(map[string]model.SimArtifact, len(sims))
	for _, sim := range sims {
		byICCID[sim.ICCID] = sim
	}
	raw, err := json.Marshal(byICCID)
	if err != nil {
		return err
	}
	const query = `INSERT INTO documents (path, doc) VALUES ($1, $2)
                   ON CONFLICT (path) DO UPDATE SET doc = documents.doc || EXCLUDED.doc, updated_at = NOW()`
	_, err = r.storage.pool.Exec(ctx, query, simsPathPrefix+id, raw)
	return err
}

func (r *simRepository) ListSims(ctx context.Context, id string) ([]model.SimArtifact, error) {
	byICCID := make(map[string]model.SimArtifact)
	if err := r.storage.getDoc(ctx, simsPathPrefix+id, &byICCID); err != nil {
		return nil, err
	}
	sims := make([]model.SimArtifact, 0, len(byICCID))
	for _, sim := range byICCID {
		sims = append(sims, sim)
	}
	sort.Slice(sims, func(i, j int) bool { return sims[i].ICCID < sims[j].ICCID })
	return sims, nil
}

func (r *simRepository) MarkInstalled(ctx context.Context, id, iccid string, installed bool) error {
	const query = `UPDATE documents SET doc = jsonb_set(doc, ARRAY[$2, 'installed'], to_jsonb($3::boolean)), updated_at = NOW()
                   WHERE path=$1 AND doc ? $2`
	tag, err := r.storage.pool.Exec(ctx, query, simsPathPrefix+id, iccid, installed)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
