package auditlog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const DefaultPath = "orders_log.txt"

// Entry is one completed checkout.
type Entry struct {
	OrderID       int64
	PaymentMethod string
}

// Line renders the entry in the audit log's text format, without a newline.
func (e Entry) Line() string {
	return fmt.Sprintf("[LOG] -> Order ID: %d has been successfully checked out and paid using %s.",
		e.OrderID, e.PaymentMethod)
}

// FileWriter appends entries to a text file, opening it for every write so an
// unavailable file on one checkout does not affect the next.
type FileWriter struct {
	mu   sync.Mutex
	path string
}

func NewFileWriter(path string) *FileWriter {
	if path == "" {
		path = DefaultPath
	}
	return &FileWriter{path: path}
}

func (w *FileWriter) Path() string { return w.path }

func (w *FileWriter) Write(ctx context.Context, e Entry) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("auditlog: prepare dir: %w", err)
		}
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("auditlog: open: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	if _, err := f.WriteString(e.Line() + "\n"); err != nil {
		return fmt.Errorf("auditlog: write: %w", err)
	}
	return nil
}
