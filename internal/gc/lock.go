package gc

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/ProgramComputer/EmbeddingBridge-sub001/internal/ebterr"
)

// lockState names the position in the GC lock's state machine:
// unlocked -> locking -> locked -> releasing -> unlocked, with stale-lock
// recovery a legal transition from unlocked/locking back to locking when
// the recorded pid no longer exists.
type lockState int

const (
	stateUnlocked lockState = iota
	stateLocking
	stateLocked
	stateReleasing
)

// Lock guards gc.lock, the single mandatory exclusion point in the core:
// at most one GC sweep may run against a repository at a time.
type Lock struct {
	path  string
	state lockState
}

// NewLock returns a Lock for gc.lock under the given .embr directory.
func NewLock(embrDir string) *Lock {
	return &Lock{path: filepath.Join(embrDir, "gc.lock"), state: stateUnlocked}
}

// Acquire creates gc.lock with O_CREAT|O_EXCL and writes the current
// process id. If the file already exists and its recorded pid is no
// longer running, the stale lock is removed and acquisition retried
// once. Any other failure is reported as LockFailed.
func (l *Lock) Acquire() error {
	const op = "gc.Lock.Acquire"
	l.state = stateLocking

	if err := l.tryCreate(); err == nil {
		l.state = stateLocked
		return nil
	}

	if l.isStale() {
		os.Remove(l.path)
		if err := l.tryCreate(); err == nil {
			l.state = stateLocked
			return nil
		}
	}

	l.state = stateUnlocked
	return ebterr.New(op, ebterr.KindLockFailed, "gc.lock is held by another process")
}

func (l *Lock) tryCreate() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	return err
}

// isStale reports whether the pid recorded in an existing gc.lock no
// longer corresponds to a running process.
func (l *Lock) isStale() bool {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return false
	}
	pidStr := strings.TrimSpace(string(data))
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return false
	}
	return !processRunning(pid)
}

func processRunning(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	// EPERM means the process exists but belongs to another user.
	return err == nil || errors.Is(err, syscall.EPERM)
}

// Release unlinks gc.lock.
func (l *Lock) Release() error {
	const op = "gc.Lock.Release"
	l.state = stateReleasing
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return ebterr.Wrap(op, ebterr.KindFileIO, err)
	}
	l.state = stateUnlocked
	return nil
}
