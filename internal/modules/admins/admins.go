// Package admins manages the administrator list and login checks.
//
// Credentials are stored and compared in plain text, exactly like the data
// file this service inherits; the login result carries no token or session.
// Protect the deployment at the network layer if that matters.
package admins

import (
	"errors"

	"github.com/wishwall/core/internal/database"
	"github.com/wishwall/core/internal/models"
)

var (
	ErrExists   = errors.New("admin username already exists")
	ErrNotFound = errors.New("admin not found")
)

type Service struct {
	store *database.Store
}

func NewService(store *database.Store) *Service {
	return &Service{store: store}
}

// List returns all admins with passwords stripped.
func (s *Service) List() ([]models.AdminUser, error) {
	doc, err := s.store.Read()
	if err != nil {
		return nil, err
	}
	out := make([]models.AdminUser, 0, len(doc.Admins))
	for _, a := range doc.Admins {
		out = append(out, models.AdminUser{Username: a.Username})
	}
	return out, nil
}

// Authenticate scans for a username/password match.
func (s *Service) Authenticate(username, password string) (bool, error) {
	doc, err := s.store.Read()
	if err != nil {
		return false, err
	}
	for _, a := range doc.Admins {
		if a.Username == username && a.Password == password {
			return true, nil
		}
	}
	return false, nil
}

// Add creates an admin with a unique username.
func (s *Service) Add(username, password string) error {
	return s.store.Update(func(doc *models.Document) error {
		for _, a := range doc.Admins {
			if a.Username == username {
				return ErrExists
			}
		}
		doc.Admins = append(doc.Admins, models.AdminUser{Username: username, Password: password})
		return nil
	})
}

// Delete removes an admin by username.
func (s *Service) Delete(username string) error {
	return s.store.Update(func(doc *models.Document) error {
		kept := doc.Admins[:0]
		for _, a := range doc.Admins {
			if a.Username != username {
				kept = append(kept, a)
			}
		}
		if len(kept) == len(doc.Admins) {
			return ErrNotFound
		}
		doc.Admins = kept
		return nil
	})
}
