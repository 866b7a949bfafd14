package report

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ginjaninja78/hfm-metadata-compare/internal/metadata"
)

// WriteCSV exports the sink as CSV in the given code page, header first.
// Rows keep their own width.
func WriteCSV(s *Sink, path, encodingName string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV export: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	enc, err := metadata.EncodeWriter(file, encodingName)
	if err != nil {
		return err
	}

	w := csv.NewWriter(enc)
	w.UseCRLF = true
	if err := w.Write(s.Header()); err != nil {
		return err
	}
	if err := w.WriteAll(s.Rows()); err != nil {
		return fmt.Errorf("failed to write CSV export: %w", err)
	}
	return enc.Close()
}
