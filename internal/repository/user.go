package repository

import (
	"database/sql"
	"errors"

	"campusdir/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUsersByRole(role models.Role) ([]models.User, error)
	GetStudentsByDepartment(department models.Department) ([]models.User, error)
	DeleteUser(id string) error
	HODExists(department models.Department) (bool, error)
}

type userRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewUserRepository(db *sqlx.DB, log *logrus.Logger) UserRepository {
	return &userRepository{db: db, log: log}
}

const uniqueViolation = "23505"

func (r *userRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (id, username, email, password_hash, role, department) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	err := r.db.QueryRowx(query, user.ID, user.Username, user.Email, user.PasswordHash, user.Role, user.Department).Scan(&user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *userRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, role, department, created_at FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT id, username, email, password_hash, role, department, created_at FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUsersByRole(role models.Role) ([]models.User, error) {
	var users []models.User
	query := `SELECT id, username, email, password_hash, role, department, created_at FROM users WHERE role = $1 ORDER BY username`
	err := r.db.Select(&users, query, role)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) GetStudentsByDepartment(department models.Department) ([]models.User, error) {
	var users []models.User
	query := `SELECT id, username, email, password_hash, role, department, created_at FROM users WHERE role = $1 AND department = $2 ORDER BY username`
	err := r.db.Select(&users, query, models.RoleStudent, department)
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) DeleteUser(id string) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) HODExists(department models.Department) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE role = $1 AND department = $2)`
	err := r.db.Get(&exists, query, models.RoleHOD, department)
	if err != nil {
		return false, err
	}
	return exists, nil
}
