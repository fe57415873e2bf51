package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"video-recommendation-service/internal/models"
)

// UserRepository handles database operations for users.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user.
func (r *UserRepository) Create(u *models.User) error {
	err := r.db.QueryRow(`
		INSERT INTO users (id, name, interests, mood)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, u.ID, u.Name, pq.Array(u.Interests), u.Mood).Scan(&u.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return models.Conflict("user %q already exists", u.ID)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Get returns a user by ID.
func (r *UserRepository) Get(id string) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(`
		SELECT id, name, interests, mood, created_at FROM users WHERE id = $1
	`, id).Scan(&u.ID, &u.Name, pq.Array(&u.Interests), &u.Mood, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update changes user fields. Nil request fields are left untouched.
func (r *UserRepository) Update(id string, req models.UpdateUserRequest) (*models.User, error) {
	sets := []string{}
	args := []interface{}{}
	argIdx := 1

	if req.Name != nil {
		sets = append(sets, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Interests != nil {
		sets = append(sets, fmt.Sprintf("interests = $%d", argIdx))
		args = append(args, pq.Array(*req.Interests))
		argIdx++
	}
	if req.Mood != nil {
		sets = append(sets, fmt.Sprintf("mood = $%d", argIdx))
		args = append(args, *req.Mood)
		argIdx++
	}
	if len(sets) == 0 {
		return r.Get(id)
	}

	query := fmt.Sprintf(`
		UPDATE users SET %s WHERE id = $%d
		RETURNING id, name, interests, mood, created_at
	`, strings.Join(sets, ", "), argIdx)
	args = append(args, id)

	var u models.User
	err := r.db.QueryRow(query, args...).Scan(
		&u.ID, &u.Name, pq.Array(&u.Interests), &u.Mood, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Count returns the number of users.
func (r *UserRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
