package report

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"jobdigest/internal/domain"

	"github.com/gofrs/flock"
)

// ErrLocked means another run is writing the same output file.
var ErrLocked = errors.New("csv output is locked by another run")

// csvHeader defines the column order.
var csvHeader = []string{"title", "url", "snippet"}

func WriteCSV(w io.Writer, records []domain.JobRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write([]string{r.Title, r.URL, r.Snippet}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// lockPath names the advisory lock for an output file. It lives in the temp
// dir so the CSV stays the only artifact next to the output.
func lockPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(path))
	return filepath.Join(os.TempDir(), "jobdigest-"+hex.EncodeToString(sum[:8])+".lock")
}

// SaveCSV overwrites path with records and returns the file as read back
// from disk. The write and read happen under an advisory lock (see lockPath).
func SaveCSV(path string, records []domain.JobRecord) ([]byte, error) {
	lock := flock.New(lockPath(path))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrLocked, path)
	}
	defer func() { _ = lock.Unlock() }()

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, records); err != nil {
		_ = f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close csv: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read back csv: %w", err)
	}
	return data, nil
}

// ReadCSV parses the format written by WriteCSV.
func ReadCSV(r io.Reader) ([]domain.JobRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	head, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.New("csv is empty")
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range csvHeader {
		if head[i] != h {
			return nil, fmt.Errorf("unexpected csv header %v", head)
		}
	}

	out := []domain.JobRecord{}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row: %w", err)
		}
		out = append(out, domain.JobRecord{Title: row[0], URL: row[1], Snippet: row[2]})
	}
	return out, nil
}
