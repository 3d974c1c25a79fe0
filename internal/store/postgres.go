package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgtype"

	"github.com/hushplay/hushplay_server/internal/models"
	"github.com/hushplay/hushplay_server/internal/security"
)

// PostgresStorage is the relational backend. Ids come from BIGSERIAL sequences
// and counter updates run as single SQL increment expressions, so both are
// safe under concurrent writers.
type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(db *sql.DB) *PostgresStorage {
	if db == nil {
		panic("db cannot be nil for PostgresStorage")
	}
	return &PostgresStorage{db: db}
}

func textArray(ss []string) pgtype.TextArray {
	if ss == nil {
		ss = []string{}
	}
	var a pgtype.TextArray
	_ = a.Set(ss)
	return a
}

func stringSlice(a pgtype.TextArray) []string {
	ss := []string{}
	for _, e := range a.Elements {
		if e.Status == pgtype.Present {
			ss = append(ss, e.String)
		}
	}
	return ss
}

const userColumns = `id, username, email, password_hash, display_name, profile_image, bio, is_admin, is_banned, subscriber_count, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.Id,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.DisplayName,
		&u.ProfileImage,
		&u.Bio,
		&u.IsAdmin,
		&u.IsBanned,
		&u.SubscriberCount,
		&u.Created_At,
		&u.Updated_At,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (pg *PostgresStorage) getUserWhere(clause string, arg any) (*models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s`, userColumns, clause)

	user, err := scanUser(pg.db.QueryRow(query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running get user query: %w", err)
	}
	return user, nil
}

func (pg *PostgresStorage) GetUser(id int64) (*models.User, error) {
	return pg.getUserWhere("id = $1", id)
}

func (pg *PostgresStorage) GetUserByUsername(username string) (*models.User, error) {
	return pg.getUserWhere("username = $1", username)
}

func (pg *PostgresStorage) GetUserByEmail(email string) (*models.User, error) {
	return pg.getUserWhere("LOWER(email) = LOWER($1)", email)
}

func (pg *PostgresStorage) GetAllUsers() ([]models.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY id`, userColumns)

	rows, err := pg.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over user rows: %w", err)
	}
	return users, nil
}

func (pg *PostgresStorage) CreateUser(params CreateUserParams) (*models.User, error) {
	hash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	query := `
	INSERT INTO users (username, email, password_hash, display_name, profile_image, bio, is_admin)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + userColumns

	user, err := scanUser(pg.db.QueryRow(query,
		params.Username,
		params.Email,
		hash,
		params.DisplayName,
		params.ProfileImage,
		params.Bio,
		params.IsAdmin,
	))
	if err != nil {
		return nil, fmt.Errorf("error running create user query: %w", err)
	}
	return user, nil
}

func (pg *PostgresStorage) UpdateUser(id int64, params UpdateUserParams) (*models.User, error) {
	query := `
	UPDATE users
	SET display_name = COALESCE($2, display_name),
	    profile_image = COALESCE($3, profile_image),
	    bio = COALESCE($4, bio),
	    is_banned = COALESCE($5, is_banned),
	    updated_at = NOW()
	WHERE id = $1
	RETURNING ` + userColumns

	user, err := scanUser(pg.db.QueryRow(query, id, params.DisplayName, params.ProfileImage, params.Bio, params.IsBanned))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error running update user query: %w", err)
	}
	return user, nil
}

func (pg *PostgresStorage) AuthenticateUser(email, password string) (*models.User, error) {
	user, err := pg.GetUserByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		security.CheckPasswordHash(password, dummyHash)
		return nil, nil
	}
	if !security.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil
	}
	return user, nil
}
