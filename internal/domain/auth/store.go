package auth

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	PasswordHash string    `json:"-"`
}

func (s *Store) UsernameOrEmailTaken(ctx context.Context, email, username string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1) FROM users WHERE email = $1 OR username = $2
  `, email, username).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash, role string) (int64, error) {
	var id int64
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
    RETURNING id
  `, username, email, passwordHash, role).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, email, role, created_at, password_hash
    FROM users
    WHERE email = $1
  `, email).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt, &user.PasswordHash)
	return user, err
}

func (s *Store) GetUser(ctx context.Context, id int64) (User, error) {
	var user User
	err := s.DB.QueryRow(ctx, `
    SELECT id, username, email, role, created_at
    FROM users
    WHERE id = $1
  `, id).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.CreatedAt)
	return user, err
}
