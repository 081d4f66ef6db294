package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// MaxNameLength bounds a stored plan name.
const MaxNameLength = 128

// Plan is a stored deck document.
type Plan struct {
	ID        uuid.UUID
	Name      string
	Deck      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ErrPlanNotFound is returned when a plan lookup yields no results.
var ErrPlanNotFound = errors.New("plan not found")

// ErrPlanExists is returned when a generated plan id collides with an existing row.
var ErrPlanExists = errors.New("plan already exists")

// ErrInvalidToken is returned when an edit token does not match the stored hash.
var ErrInvalidToken = errors.New("invalid token")

// ErrInvalidPlan is returned when a plan name or deck is unusable.
var ErrInvalidPlan = errors.New("invalid plan")

// PlanRepository provides plan persistence operations.
type PlanRepository struct {
	db *pgxpool.Pool
}

// NewPlanRepository creates a PlanRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewPlanRepository(db *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{db: db}
}

func validatePlan(name string, deck []byte) error {
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: name longer than %d bytes", ErrInvalidPlan, MaxNameLength)
	}
	if len(deck) == 0 {
		return fmt.Errorf("%w: empty deck", ErrInvalidPlan)
	}
	return nil
}

// Create stores deck under a fresh id and returns the plan with the
// plaintext edit token. Only a bcrypt hash of the token is persisted.
//
// Precondition: deck must be a JSON document.
// Postcondition: Returns the created Plan and its token, or ErrInvalidPlan.
func (r *PlanRepository) Create(ctx context.Context, name string, deck []byte) (Plan, string, error) {
	if err := validatePlan(name, deck); err != nil {
		return Plan{}, "", err
	}
	token := NewToken()
	hash, err := HashToken(token)
	if err != nil {
		return Plan{}, "", fmt.Errorf("hashing token: %w", err)
	}

	p := Plan{ID: uuid.New(), Name: strings.TrimSpace(name), Deck: deck}
	err = r.db.QueryRow(ctx,
		`INSERT INTO plans (id, name, deck, token_hash)
		 VALUES ($1::uuid, $2, $3::jsonb, $4)
		 RETURNING created_at, updated_at`,
		p.ID.String(), p.Name, string(deck), hash,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return Plan{}, "", ErrPlanExists
		}
		return Plan{}, "", fmt.Errorf("inserting plan: %w", err)
	}
	return p, token, nil
}

// Get retrieves a plan by id.
//
// Postcondition: Returns the Plan or ErrPlanNotFound.
func (r *PlanRepository) Get(ctx context.Context, id uuid.UUID) (Plan, error) {
	var (
		p    = Plan{ID: id}
		deck string
	)
	err := r.db.QueryRow(ctx,
		`SELECT name, deck::text, created_at, updated_at
		 FROM plans WHERE id = $1::uuid`,
		id.String(),
	).Scan(&p.Name, &deck, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Plan{}, ErrPlanNotFound
		}
		return Plan{}, fmt.Errorf("querying plan: %w", err)
	}
	p.Deck = []byte(deck)
	return p, nil
}

// List returns plans newest first without their deck bodies.
//
// Precondition: limit > 0; offset >= 0.
func (r *PlanRepository) List(ctx context.Context, limit, offset int) ([]Plan, error) {
	if limit <= 0 || offset < 0 {
		return nil, fmt.Errorf("%w: limit %d offset %d", ErrInvalidPlan, limit, offset)
	}
	rows, err := r.db.Query(ctx,
		`SELECT id::text, name, created_at, updated_at
		 FROM plans ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var out []Plan
	for rows.Next() {
		var (
			p  Plan
			id string
		)
		if err := rows.Scan(&id, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		if p.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parsing plan id %q: %w", id, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Update replaces the name and deck of a plan the caller holds the token for.
//
// Postcondition: Returns ErrPlanNotFound, ErrInvalidToken, ErrInvalidPlan or nil.
func (r *PlanRepository) Update(ctx context.Context, id uuid.UUID, token, name string, deck []byte) error {
	if err := validatePlan(name, deck); err != nil {
		return err
	}
	if err := r.authorize(ctx, id, token); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE plans SET name = $2, deck = $3::jsonb, updated_at = NOW()
		 WHERE id = $1::uuid`,
		id.String(), strings.TrimSpace(name), string(deck),
	)
	if err != nil {
		return fmt.Errorf("updating plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

// Delete removes a plan the caller holds the token for.
//
// Postcondition: Returns ErrPlanNotFound, ErrInvalidToken or nil.
func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID, token string) error {
	if err := r.authorize(ctx, id, token); err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id = $1::uuid`, id.String())
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrPlanNotFound
	}
	return nil
}

func (r *PlanRepository) authorize(ctx context.Context, id uuid.UUID, token string) error {
	var hash string
	err := r.db.QueryRow(ctx,
		`SELECT token_hash FROM plans WHERE id = $1::uuid`, id.String(),
	).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPlanNotFound
		}
		return fmt.Errorf("querying token: %w", err)
	}
	if !CheckToken(token, hash) {
		return ErrInvalidToken
	}
	return nil
}

// NewToken returns a random edit token.
func NewToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// HashToken creates a bcrypt hash of the given token.
//
// Precondition: token must be non-empty and at most 72 bytes.
// Postcondition: Returns a bcrypt hash string.
func HashToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckToken compares a plaintext token against a bcrypt hash.
//
// Postcondition: Returns true if token matches the hash.
func CheckToken(token, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// SQLSTATE 23505 is unique_violation
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
