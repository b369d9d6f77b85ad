package dso

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
)

// SessionLock holds the cross-process lock for one instrument address. The
// transport is strictly synchronous, so a second process talking to the same
// scope mid-session would interleave exchanges; the lock fails fast instead.
type SessionLock struct {
	lock *flock.Flock
}

// AcquireSessionLock takes the per-device lockfile, failing immediately when
// another session already holds it.
func AcquireSessionLock(addr string) (*SessionLock, error) {
	path := lockPath(addr)
	lock := flock.New(path)
	held, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire session lock %s: %w", path, err)
	}
	if !held {
		return nil, fmt.Errorf("another ds1054z session is already talking to %s (lock %s)", addr, path)
	}
	return &SessionLock{lock: lock}, nil
}

// Release drops the lock. Safe to call on a nil receiver.
func (l *SessionLock) Release() error {
	if l == nil || l.lock == nil {
		return nil
	}
	return l.lock.Unlock()
}

func lockPath(addr string) string {
	sanitized := strings.Map(func(r rune) rune {
		switch r {
		case ':', '/', '\\':
			return '-'
		}
		return r
	}, addr)
	return filepath.Join(os.TempDir(), fmt.Sprintf("ds1054z-%s.lock", sanitized))
}
