package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dosada05/tournament-admin/models"
	"github.com/google/uuid"
)

var (
	ErrUserNotFound = fmt.Errorf("user %w", ErrNotFound)
	ErrRoleNotFound = fmt.Errorf("role %w", ErrNotFound)
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetAll(ctx context.Context) ([]models.User, error)
	// FindByCredentials - простой поиск по логину и паролю, без хеширования.
	FindByCredentials(ctx context.Context, username, password string) (*models.User, error)
}

type RoleRepository interface {
	Create(ctx context.Context, role *models.Role) error
	GetAll(ctx context.Context) ([]models.Role, error)
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

const userSelect = `
	SELECT u.id, u.username, u.password, u.role_id, u.created_at, r.id, r.name
	FROM users u
	LEFT JOIN roles r ON r.id = u.role_id`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	var roleID uuid.NullUUID
	var roleName sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.RoleID, &u.CreatedAt, &roleID, &roleName); err != nil {
		return u, err
	}
	if roleID.Valid {
		u.Role = &models.Role{ID: roleID.UUID, Name: roleName.String}
	}
	return u, nil
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query := `INSERT INTO users (id, username, password, role_id) VALUES ($1, $2, $3, $4) RETURNING created_at`
	return run(ctx, r.db, func(exec SQLExecutor) error {
		err := exec.QueryRowContext(ctx, query, user.ID, user.Username, user.Password, nullableUUID(user.RoleID)).
			Scan(&user.CreatedAt)
		return mapPqError(err)
	})
}

func (r *postgresUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		users, err = queryList(ctx, exec, func(rows *sql.Rows) (models.User, error) { return scanUser(rows) },
			userSelect+` ORDER BY u.username ASC`)
		return err
	})
	return users, err
}

func (r *postgresUserRepository) FindByCredentials(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		u, err := scanUser(exec.QueryRowContext(ctx, userSelect+` WHERE u.username = $1 AND u.password = $2`, username, password))
		if err != nil {
			return notFoundOr(err, ErrUserNotFound)
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

type postgresRoleRepository struct {
	db *sql.DB
}

func NewPostgresRoleRepository(db *sql.DB) RoleRepository {
	return &postgresRoleRepository{db: db}
}

func (r *postgresRoleRepository) Create(ctx context.Context, role *models.Role) error {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	return run(ctx, r.db, func(exec SQLExecutor) error {
		_, err := exec.ExecContext(ctx, `INSERT INTO roles (id, name) VALUES ($1, $2)`, role.ID, role.Name)
		return mapPqError(err)
	})
}

func (r *postgresRoleRepository) GetAll(ctx context.Context) ([]models.Role, error) {
	var roles []models.Role
	err := run(ctx, r.db, func(exec SQLExecutor) error {
		var err error
		roles, err = queryList(ctx, exec, func(rows *sql.Rows) (models.Role, error) {
			var role models.Role
			err := rows.Scan(&role.ID, &role.Name)
			return role, err
		}, `SELECT id, name FROM roles ORDER BY name ASC`)
		return err
	})
	return roles, err
}
