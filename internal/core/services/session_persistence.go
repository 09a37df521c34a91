package services

import (
	"context"

	"syndiceasy/internal/adapters/persistence/repositories"
	"syndiceasy/internal/core/session"
)

// statePersistence adapts the key-value state repository to the session
// store's persistence contract. The serialized session and the language
// code each occupy a single key.
type statePersistence struct {
	repo repositories.StateRepository
}

// NewSessionPersistence wires the session store to the state repository.
func NewSessionPersistence(repo repositories.StateRepository) session.Persistence {
	return &statePersistence{repo: repo}
}

func (p *statePersistence) SaveSession(payload []byte) error {
	return p.repo.Put(context.Background(), repositories.StateKeySession, string(payload))
}

func (p *statePersistence) LoadSession() ([]byte, error) {
	value, err := p.repo.Get(context.Background(), repositories.StateKeySession)
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

func (p *statePersistence) EraseSession() error {
	return p.repo.Delete(context.Background(), repositories.StateKeySession)
}

func (p *statePersistence) SaveLanguage(code string) error {
	return p.repo.Put(context.Background(), repositories.StateKeyLanguage, code)
}

func (p *statePersistence) LoadLanguage() (string, error) {
	return p.repo.Get(context.Background(), repositories.StateKeyLanguage)
}
