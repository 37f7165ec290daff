package store

// SetScryptN lowers the KDF cost so tests run quickly.
func (s *SessionFileStore) SetScryptN(n int) { s.n = n }
