// Copyright © 2025 Texelout contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/transcript/recorder.go
// Summary: SQLite history of every line flushed into a canvas.
//
// The recorder subscribes to a canvas as a texel.Listener. Lines are queued
// on the canvas goroutine and written in batches by a background writer, so
// a slow disk never stalls rendering for longer than a channel send.

package transcript

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/framegrace/texelout/texel"
)

// Entry is one recorded line.
type Entry struct {
	Seq      int64
	PaneID   int
	PaneName string
	Time     time.Time
	Text     string
}

// Config holds tuning for the background writer.
type Config struct {
	DBPath string

	// BatchSize is the number of lines written per transaction.
	BatchSize int

	// BatchTimeout bounds how long a partial batch waits.
	BatchTimeout time.Duration

	// ChannelBuffer is the number of lines that may be queued.
	ChannelBuffer int
}

// DefaultConfig returns the writer defaults for dbPath.
func DefaultConfig(dbPath string) Config {
	return Config{
		DBPath:        dbPath,
		BatchSize:     100,
		BatchTimeout:  time.Second,
		ChannelBuffer: 1024,
	}
}

const schema = `
CREATE TABLE IF NOT EXISTS lines (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    pane INTEGER NOT NULL,
    pane_name TEXT NOT NULL,
    timestamp INTEGER NOT NULL,       -- UnixNano
    content TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_lines_pane ON lines(pane, id);
`

// Recorder stores flushed lines in a SQLite database.
type Recorder struct {
	config Config
	db     *sql.DB

	entries chan Entry
	flushCh chan chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	stopped bool
}

// Open creates or reopens the database at path with DefaultConfig.
func Open(path string) (*Recorder, error) {
	return OpenWithConfig(DefaultConfig(path))
}

// OpenWithConfig creates or reopens a transcript database.
func OpenWithConfig(config Config) (*Recorder, error) {
	if config.BatchSize <= 0 {
		config.BatchSize = 1
	}
	if config.BatchTimeout <= 0 {
		config.BatchTimeout = time.Second
	}

	if err := os.MkdirAll(filepath.Dir(config.DBPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := config.DBPath +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	r := &Recorder{
		config:  config,
		db:      db,
		entries: make(chan Entry, config.ChannelBuffer),
		flushCh: make(chan chan struct{}),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	go r.writer()
	return r, nil
}

// OnEvent records EventPaneFlushed lines and ignores every other event.
func (r *Recorder) OnEvent(event texel.Event) {
	if event.Type != texel.EventPaneFlushed {
		return
	}
	p, ok := event.Payload.(texel.FlushPayload)
	if !ok {
		return
	}
	r.Record(p.PaneID, p.PaneName, p.Line)
}

// Record queues a line. It blocks only while the queue is full and returns
// immediately once the recorder is closed.
func (r *Recorder) Record(paneID int, paneName, text string) {
	e := Entry{PaneID: paneID, PaneName: paneName, Time: time.Now(), Text: text}
	select {
	case r.entries <- e:
	case <-r.doneCh:
	}
}

// Flush blocks until every queued line is written.
func (r *Recorder) Flush() {
	done := make(chan struct{})
	select {
	case r.flushCh <- done:
		<-done
	case <-r.doneCh:
	}
}

// Close writes pending lines and closes the database. Close must not be
// called concurrently with itself.
func (r *Recorder) Close() error {
	if r.stopped {
		return nil
	}
	r.stopped = true
	close(r.stopCh)
	<-r.doneCh
	return r.db.Close()
}

func (r *Recorder) writer() {
	defer close(r.doneCh)

	batch := make([]Entry, 0, r.config.BatchSize)
	timer := time.NewTimer(r.config.BatchTimeout)
	defer timer.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		r.writeBatch(batch)
		batch = batch[:0]
	}
	drain := func() {
		for {
			select {
			case e := <-r.entries:
				batch = append(batch, e)
			default:
				return
			}
		}
	}

	for {
		select {
		case e := <-r.entries:
			batch = append(batch, e)
			if len(batch) >= r.config.BatchSize {
				flush()
				timer.Reset(r.config.BatchTimeout)
			}
		case <-timer.C:
			flush()
			timer.Reset(r.config.BatchTimeout)
		case done := <-r.flushCh:
			drain()
			flush()
			close(done)
		case <-r.stopCh:
			drain()
			flush()
			return
		}
	}
}

func (r *Recorder) writeBatch(batch []Entry) {
	tx, err := r.db.Begin()
	if err != nil {
		log.Printf("Transcript: failed to begin transaction: %v", err)
		return
	}
	stmt, err := tx.Prepare("INSERT INTO lines (pane, pane_name, timestamp, content) VALUES (?, ?, ?, ?)")
	if err != nil {
		log.Printf("Transcript: failed to prepare insert: %v", err)
		tx.Rollback()
		return
	}
	defer stmt.Close()

	for _, e := range batch {
		if _, err := stmt.Exec(e.PaneID, e.PaneName, e.Time.UnixNano(), e.Text); err != nil {
			log.Printf("Transcript: failed to insert line of pane %d: %v", e.PaneID, err)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("Transcript: failed to commit batch: %v", err)
	}
}

// Lines returns the recorded lines of a pane, oldest first.
func (r *Recorder) Lines(paneID int) ([]string, error) {
	rows, err := r.db.Query("SELECT content FROM lines WHERE pane = ? ORDER BY id", paneID)
	if err != nil {
		return nil, fmt.Errorf("query pane %d: %w", paneID, err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// Search returns up to limit lines containing query, newest first.
func (r *Recorder) Search(query string, limit int) ([]Entry, error) {
	if query == "" {
		return nil, nil
	}
	pattern := "%" + strings.ReplaceAll(strings.ReplaceAll(strings.ReplaceAll(query, `\`, `\\`), "%", `\%`), "_", `\_`) + "%"
	rows, err := r.db.Query(`
		SELECT id, pane, pane_name, timestamp, content
		FROM lines
		WHERE content LIKE ? ESCAPE '\'
		ORDER BY id DESC
		LIMIT ?
	`, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	var results []Entry
	for rows.Next() {
		var e Entry
		var ts int64
		if err := rows.Scan(&e.Seq, &e.PaneID, &e.PaneName, &ts, &e.Text); err != nil {
			return nil, err
		}
		e.Time = time.Unix(0, ts)
		results = append(results, e)
	}
	return results, rows.Err()
}
