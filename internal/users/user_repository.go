package users

import (
	"database/sql"
	"errors"
	"fmt"

	"kjejekaj/internal/repository"
	custom_error "kjejekaj/pkg/errors"
	"kjejekaj/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	PersistUser(name, email string, hashedPassword []byte) (*models.User, error)
	GetUserByName(name string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
}

type userRepositoryImpl struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) UserRepository {
	return &userRepositoryImpl{repository: r}
}

func (r *userRepositoryImpl) PersistUser(name, email string, hashedPassword []byte) (*models.User, error) {
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
	}

	query := r.repository.GoquDBWrapper.Insert("users").
		Rows(goqu.Record{
			"name":          name,
			"email":         email,
			"password_hash": string(hashedPassword),
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&user.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, custom_error.WrapDBError("user name and email must be unique", string(pqErr.Code))
		}
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return &user, nil
}

func (r *userRepositoryImpl) GetUserByName(name string) (*models.User, error) {
	return r.getUserBy(goqu.Ex{"name": name})
}

func (r *userRepositoryImpl) GetUserByEmail(email string) (*models.User, error) {
	return r.getUserBy(goqu.Ex{"email": email})
}

func (r *userRepositoryImpl) getUserBy(condition goqu.Ex) (*models.User, error) {
	var user models.User
	query := r.repository.GoquDBWrapper.
		Select("id", "name", "email", "password_hash").
		From("users").
		Where(condition)

	found, err := query.Executor().ScanStruct(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !found {
		return nil, ErrUserNotFound
	}

	return &user, nil
}
