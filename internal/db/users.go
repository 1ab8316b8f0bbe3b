package db

import (
	"database/sql"

	"github.com/rs/zerolog/log"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

func (s *pgStore) CreateUser(email, hashedPassword string, name *string) (int, error) {
	var id int
	err := s.db.Get(&id, `
		INSERT INTO users (email, hashed_password, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, 'admin', now(), now())
		RETURNING id
	`, email, hashedPassword, name)
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("CreateUser failed")
		return 0, err
	}
	return id, nil
}

func (s *pgStore) GetUserByEmail(email string) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `
		SELECT id, email, hashed_password, name, role, created_at, updated_at
		  FROM users
		 WHERE email = $1
	`, email)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error().Err(err).Msg("GetUserByEmail failed")
		}
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) GetUserByID(id int) (*model.User, error) {
	var u model.User
	err := s.db.Get(&u, `
		SELECT id, email, hashed_password, name, role, created_at, updated_at
		  FROM users
		 WHERE id = $1
	`, id)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Error().Err(err).Int("user_id", id).Msg("GetUserByID failed")
		}
		return nil, err
	}
	return &u, nil
}

func (s *pgStore) UpdateUserProfile(id int, email string, name *string) error {
	_, err := s.db.Exec(`
		UPDATE users
		   SET email = $1,
		       name = COALESCE($2, name),
		       updated_at = now()
		 WHERE id = $3
	`, email, name, id)
	if err != nil {
		log.Error().Err(err).Int("user_id", id).Msg("UpdateUserProfile failed")
	}
	return err
}
