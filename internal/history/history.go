// Package history keeps the in-memory generation and scan ledgers. Nothing
// here survives a process restart; artifacts on disk become unreferenced once
// the process exits.
package history

import (
	"sync"
	"time"
)

// GenerationRecord describes one generated QR artifact pair
type GenerationRecord struct {
	ID        string    `json:"id"`
	Payload   string    `json:"data"`
	CreatedAt time.Time `json:"time"`
}

// ScanRecord describes one decoded or client-submitted payload
type ScanRecord struct {
	Payload   string    `json:"data"`
	Type      string    `json:"type"`
	ScannedAt time.Time `json:"time"`
}

// Ledger is the single owner of generation history (process-wide), scan
// history (keyed by session ID), and the scan counter. All mutation goes
// through the mutex so concurrent requests cannot lose updates.
type Ledger struct {
	mu           sync.Mutex
	generated    []GenerationRecord
	scans        map[string][]ScanRecord
	totalScanned int
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		scans: make(map[string][]ScanRecord),
	}
}

// AddGeneration inserts a generation record at the front (newest first)
func (l *Ledger) AddGeneration(rec GenerationRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.generated = append([]GenerationRecord{rec}, l.generated...)
}

// Generations returns a snapshot of the generation history, newest first
func (l *Ledger) Generations() []GenerationRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]GenerationRecord, len(l.generated))
	copy(out, l.generated)
	return out
}

// TotalGenerated is the number of generation records
func (l *Ledger) TotalGenerated() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.generated)
}

// AddScan inserts a scan record at the front of the session's history and
// bumps the process-wide scan counter
func (l *Ledger) AddScan(sessionID string, rec ScanRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scans[sessionID] = append([]ScanRecord{rec}, l.scans[sessionID]...)
	l.totalScanned++
}

// Scans returns a snapshot of one session's scan history, newest first
func (l *Ledger) Scans(sessionID string) []ScanRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	recs := l.scans[sessionID]
	out := make([]ScanRecord, len(recs))
	copy(out, recs)
	return out
}

// TotalScanned is the process-wide scan counter; it never decreases
func (l *Ledger) TotalScanned() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalScanned
}
