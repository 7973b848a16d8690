package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const userColumns = `user_id, telegram_id, COALESCE(username, ''), COALESCE(full_name, ''),
	phone_number, language, is_active, is_blocked, created_at`

type UserRepository struct {
	db base.DBTX
}

func NewUserRepository(db base.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx возвращает копию репозитория, работающую внутри транзакции
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	return &UserRepository{db: tx}
}

func scanUser(row pgx.Row, extra ...any) (*model.User, error) {
	var user model.User
	dest := []any{
		&user.ID,
		&user.TelegramID,
		&user.Username,
		&user.FullName,
		&user.PhoneNumber,
		&user.Language,
		&user.IsActive,
		&user.IsBlocked,
		&user.CreatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &user, nil
}

// Create создаёт нового пользователя.
// Повторный telegram_id даёт ошибку нарушения уникальности.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (telegram_id, username, full_name, phone_number, language)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
		RETURNING user_id, is_active, is_blocked, created_at
	`

	err := r.db.QueryRow(
		ctx, query,
		user.TelegramID,
		user.Username,
		user.FullName,
		user.PhoneNumber,
		user.Language,
	).Scan(&user.ID, &user.IsActive, &user.IsBlocked, &user.CreatedAt)

	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// EnsureByTelegramID атомарно создаёт пользователя или возвращает существующего.
// created = true, если строка была вставлена этим вызовом.
func (r *UserRepository) EnsureByTelegramID(ctx context.Context, user *model.User) (*model.User, bool, error) {
	// DO UPDATE вместо DO NOTHING, чтобы RETURNING вернул и существующую строку;
	// xmax = 0 только у только что вставленной версии строки
	query := `
		INSERT INTO users (telegram_id, username, full_name, phone_number, language)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5)
		ON CONFLICT (telegram_id) DO UPDATE SET telegram_id = EXCLUDED.telegram_id
		RETURNING ` + userColumns + `, (xmax = 0) AS inserted
	`

	var created bool
	stored, err := scanUser(r.db.QueryRow(
		ctx, query,
		user.TelegramID,
		user.Username,
		user.FullName,
		user.PhoneNumber,
		user.Language,
	), &created)
	if err != nil {
		return nil, false, fmt.Errorf("ensure user: %w", err)
	}

	return stored, created, nil
}

// GetByTelegramID получает пользователя по Telegram ID
func (r *UserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE telegram_id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, telegramID))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil // Пользователь не найден
		}
		return nil, fmt.Errorf("get user by telegram id: %w", err)
	}

	return user, nil
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	return user, nil
}

// List возвращает всех пользователей
func (r *UserRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY user_id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// UpdatePhone обновляет номер телефона
func (r *UserRepository) UpdatePhone(ctx context.Context, userID int64, phone string) error {
	return r.exec(ctx, "update user phone",
		`UPDATE users SET phone_number = $1 WHERE user_id = $2`, phone, userID)
}

// SetActive активирует или деактивирует пользователя; активация снимает отметку о блокировке
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	return r.exec(ctx, "set user active",
		`UPDATE users SET is_active = $1, is_blocked = is_blocked AND NOT $1 WHERE user_id = $2`, active, userID)
}

// MarkBlocked помечает пользователя заблокировавшим бота
func (r *UserRepository) MarkBlocked(ctx context.Context, userID int64) error {
	return r.exec(ctx, "mark user blocked",
		`UPDATE users SET is_blocked = TRUE, is_active = FALSE WHERE user_id = $1`, userID)
}

func (r *UserRepository) exec(ctx context.Context, op, query string, args ...any) error {
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return nil
}
