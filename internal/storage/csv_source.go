package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/aifuge/freightquote/internal/refdata"
)

// CSVSource reads reference tables from a directory of CSV files plus the
// optional params JSON, the default way data is supplied at startup.
type CSVSource struct {
	dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{dir: dir}
}

func (s *CSVSource) LoadTables(ctx context.Context) (*refdata.Tables, error) {
	return refdata.LoadTablesFromDir(s.dir)
}

func (s *CSVSource) Ping(ctx context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", s.dir)
	}
	return nil
}

func (s *CSVSource) Close() error { return nil }
