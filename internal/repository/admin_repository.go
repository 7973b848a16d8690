package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/salon_bot/internal/model"
	"github.com/Freeeeeet/salon_bot/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

type AdminRepository struct {
	db base.DBTX
}

func NewAdminRepository(db base.DBTX) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) WithTx(tx pgx.Tx) *AdminRepository {
	return &AdminRepository{db: tx}
}

// Create назначает пользователя администратором
func (r *AdminRepository) Create(ctx context.Context, admin *model.Admin) error {
	query := `
		INSERT INTO admins (user_id, name, is_super_admin)
		VALUES ($1, $2, $3)
		RETURNING admin_id, created_at
	`

	err := r.db.QueryRow(ctx, query, admin.UserID, admin.Name, admin.IsSuperAdmin).
		Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	return nil
}

// GetByUserID получает администратора по ID пользователя
func (r *AdminRepository) GetByUserID(ctx context.Context, userID int64) (*model.Admin, error) {
	query := `
		SELECT admin_id, user_id, name, is_super_admin, created_at
		FROM admins
		WHERE user_id = $1
	`

	var admin model.Admin
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&admin.ID,
		&admin.UserID,
		&admin.Name,
		&admin.IsSuperAdmin,
		&admin.CreatedAt,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by user id: %w", err)
	}

	return &admin, nil
}

// List возвращает всех администраторов
func (r *AdminRepository) List(ctx context.Context) ([]*model.Admin, error) {
	query := `
		SELECT admin_id, user_id, name, is_super_admin, created_at
		FROM admins
		ORDER BY admin_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var admins []*model.Admin
	for rows.Next() {
		var admin model.Admin
		if err := rows.Scan(&admin.ID, &admin.UserID, &admin.Name, &admin.IsSuperAdmin, &admin.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin: %w", err)
		}
		admins = append(admins, &admin)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate admins: %w", err)
	}

	return admins, nil
}

// Delete удаляет администратора
func (r *AdminRepository) Delete(ctx context.Context, adminID int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM admins WHERE admin_id = $1`, adminID)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete admin: %w", ErrNotFound)
	}

	return nil
}
