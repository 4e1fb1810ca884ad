package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/attendance-api/internal/domain"
	"github.com/jhoicas/attendance-api/internal/domain/entity"
	"github.com/jhoicas/attendance-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// Columnas sin hash; los ids se leen como texto.
const userColumns = `id::text, full_name, email, code, role, supervisor_id::text, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	db querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(db querier) *UserRepo {
	return &UserRepo{db: db}
}

// Create persiste un nuevo usuario con un UUID generado.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	supervisor, err := parseSupervisor(user.SupervisorID)
	if err != nil {
		return err
	}
	id := uuid.New()
	query := `
		INSERT INTO users (id, full_name, email, password_hash, code, role, supervisor_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.db.Exec(ctx, query,
		id, user.FullName, user.Email, user.PasswordHash, user.Code, user.Role, supervisor,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return translateError("insert user", err)
	}
	user.ID = id.String()
	return nil
}

// FindByID obtiene un usuario por ID (sin hash).
func (r *UserRepo) FindByID(ctx context.Context, id string) (*entity.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uid)
	return scanOne("get user by id", row, false)
}

// FindByEmail obtiene un usuario por email, incluyendo el hash.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+`, password_hash FROM users WHERE email = $1`, email)
	return scanOne("get user by email", row, true)
}

// FindByEmailOrCode busca colisiones de email o código.
func (r *UserRepo) FindByEmailOrCode(ctx context.Context, email, code string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 OR code = $2 LIMIT 1`, email, code)
	return scanOne("get user by email or code", row, false)
}

// List lista todos los usuarios por fecha de creación.
func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Email, &u.Code, &u.Role, &u.SupervisorID, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// Update reemplaza los campos mutables y devuelve la fila resultante.
func (r *UserRepo) Update(ctx context.Context, id string, upd entity.UserUpdate) (*entity.User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	supervisor, err := parseSupervisor(upd.SupervisorID)
	if err != nil {
		return nil, err
	}
	query := `
		UPDATE users SET full_name = $2, email = $3, code = $4, role = $5, supervisor_id = $6, updated_at = $7
		WHERE id = $1
		RETURNING ` + userColumns
	row := r.db.QueryRow(ctx, query, uid, upd.FullName, upd.Email, upd.Code, upd.Role, supervisor, upd.UpdatedAt)
	return scanOne("update user", row, false)
}

// Delete elimina un usuario por ID.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, uid)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanOne(op string, row pgx.Row, withHash bool) (*entity.User, error) {
	var u entity.User
	dest := []any{&u.ID, &u.FullName, &u.Email, &u.Code, &u.Role, &u.SupervisorID, &u.CreatedAt, &u.UpdatedAt}
	if withHash {
		dest = append(dest, &u.PasswordHash)
	}
	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, translateError(op, err)
	}
	return &u, nil
}

// translateError mapea violaciones de constraints a errores de dominio.
func translateError(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return domain.ErrDuplicateAccount
	case isCheckViolation(err):
		return &domain.FieldError{Field: "role", Reason: "is not a valid role"}
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
