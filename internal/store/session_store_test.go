package store_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"interactsh/internal/domain"
	"interactsh/internal/store"
)

func newStore(t *testing.T) *store.SessionFileStore {
	t.Helper()
	s := store.NewSessionFileStore(filepath.Join(t.TempDir(), "nested", "session.enc"))
	s.SetScryptN(1 << 10)
	return s
}

func sampleSnapshot() domain.SessionSnapshot {
	return domain.SessionSnapshot{
		Server:        "oast.pro",
		PrivateKey:    []byte{1, 2, 3, 4},
		SecretKey:     "d9b2d63d-a233-4123-847a-1f7d5f1b2c3e",
		Subdomain:     "abcdefghij",
		CorrelationID: "abcde",
		CreatedAt:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSession_SaveLoad_OK(t *testing.T) {
	var ss domain.SessionStore = newStore(t)
	snap := sampleSnapshot()

	if err := ss.SaveSession("pass", snap); err != nil {
		t.Fatalf("save session: %v", err)
	}
	got, ok, err := ss.LoadSession("pass")
	if err != nil || !ok {
		t.Fatalf("load session: ok=%v err=%v", ok, err)
	}
	if got.Server != snap.Server || got.SecretKey != snap.SecretKey ||
		got.CorrelationID != snap.CorrelationID || !bytes.Equal(got.PrivateKey, snap.PrivateKey) ||
		!got.CreatedAt.Equal(snap.CreatedAt) {
		t.Fatalf("mismatch after load: %+v", got)
	}
}

func TestSession_FileIsPrivateAndOpaque(t *testing.T) {
	s := newStore(t)
	if err := s.SaveSession("pass", sampleSnapshot()); err != nil {
		t.Fatalf("save session: %v", err)
	}
	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("mode = %o, want 600", perm)
	}
	b, _ := os.ReadFile(s.Path())
	if bytes.Contains(b, []byte("abcdefghij")) {
		t.Fatal("subdomain stored in clear")
	}
}

func TestSession_WrongPassphrase_Fails(t *testing.T) {
	s := newStore(t)
	if err := s.SaveSession("correct", sampleSnapshot()); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if _, _, err := s.LoadSession("wrong"); !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("err = %v, want ErrWrongPassphrase", err)
	}
}

func TestSession_MissingAndRemove(t *testing.T) {
	s := newStore(t)
	if _, ok, err := s.LoadSession("pass"); ok || err != nil {
		t.Fatalf("missing file: ok=%v err=%v", ok, err)
	}
	if err := s.RemoveSession(); err != nil {
		t.Fatalf("remove missing: %v", err)
	}
	if err := s.SaveSession("pass", sampleSnapshot()); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := s.RemoveSession(); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.LoadSession("pass"); ok {
		t.Fatal("session still present after remove")
	}
}
