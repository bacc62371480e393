package engine

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Ledger records which triggers have already fired so a logical occurrence is
// never announced twice. Keys are namespaced by trigger kind, so alarms,
// reminders and future trigger kinds cannot collide.
//
// Entries are never evicted for the lifetime of the process: an alarm
// contributes at most one key per day it has fired, so growth stays bounded
// in practice. Snapshot and Restore exist so a host can carry the ledger
// across restarts instead of re-firing old triggers.
type Ledger struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{keys: make(map[string]struct{})}
}

// MarkOnce inserts key and reports whether it was newly recorded. A false
// return means the trigger for this key has already fired.
func (l *Ledger) MarkOnce(key string) bool {
	if l == nil || key == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.keys[key]; ok {
		return false
	}
	l.keys[key] = struct{}{}
	return true
}

// Has reports whether key has been recorded.
func (l *Ledger) Has(key string) bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.keys[key]
	return ok
}

// Len returns the number of recorded keys.
func (l *Ledger) Len() int {
	if l == nil {
		return 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}

// Snapshot returns the recorded keys in sorted order.
func (l *Ledger) Snapshot() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.keys) == 0 {
		return nil
	}
	out := make([]string, 0, len(l.keys))
	for key := range l.keys {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Restore merges previously snapshotted keys into the ledger.
func (l *Ledger) Restore(keys []string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range keys {
		if key == "" {
			continue
		}
		l.keys[key] = struct{}{}
	}
}

// AlarmKey builds the dedupe key for an alarm on a given calendar day. The
// date scope keeps an alarm from re-firing across the sixty ticks of its
// matching minute while still allowing it to fire again on a later day.
func AlarmKey(alarmID string, day time.Time) string {
	return fmt.Sprintf("alarm:%s:%s", alarmID, day.Format("2006-01-02"))
}

// ReminderKey builds the dedupe key for a one-shot reminder. It is not date
// scoped: a reminder fires at most once ever per item for the ledger's
// lifetime.
func ReminderKey(choreID string) string {
	return "reminder:" + choreID
}
