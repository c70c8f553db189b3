package localstore

import (
	"path/filepath"

	"github.com/jhoicas/autocars-api/internal/domain/entity"
)

// FindByEmail busca en la caché local de credenciales por igualdad exacta de email.
func (s *Store) FindByEmail(email string) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readJSONList[entity.User](s.usersPath())
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Append agrega una cuenta a la caché local.
func (s *Store) Append(user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := readJSONList[entity.User](s.usersPath())
	if err != nil {
		return err
	}
	users = append(users, *user)
	return s.writeJSON(s.usersPath(), users)
}

func (s *Store) usersPath() string {
	return filepath.Join(s.dir, usersFile)
}
