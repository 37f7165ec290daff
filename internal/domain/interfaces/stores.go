package interfaces

import domaintypes "interactsh/internal/domain/types"

// SessionStore persists a registered session between runs.
type SessionStore interface {
	SaveSession(passphrase string, snapshot domaintypes.SessionSnapshot) error
	LoadSession(passphrase string) (domaintypes.SessionSnapshot, bool, error)
	RemoveSession() error
}
