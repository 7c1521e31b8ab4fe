package margin

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// PortfolioDataFile is one named unit of portfolio input, typically a CSV, TSV or XML file.
type PortfolioDataFile struct {
	name string
	data string
}

// NewPortfolioDataFile creates a portfolio data file from a name and its text content.
func NewPortfolioDataFile(name, data string) PortfolioDataFile {
	return PortfolioDataFile{name: name, data: data}
}

// ReadPortfolioDataFile loads a file from disk, naming it after the file's base name.
func ReadPortfolioDataFile(path string) (PortfolioDataFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return PortfolioDataFile{}, fmt.Errorf("failed to read portfolio file %s: %w", path, err)
	}
	return NewPortfolioDataFile(filepath.Base(path), string(content)), nil
}

// CSVPortfolioDataFile writes a slice of csv-tagged structs as a comma separated file.
func CSVPortfolioDataFile(name string, records interface{}) (PortfolioDataFile, error) {
	data, err := gocsv.MarshalString(records)
	if err != nil {
		return PortfolioDataFile{}, fmt.Errorf("failed to write csv portfolio %s: %w", name, err)
	}
	return NewPortfolioDataFile(name, data), nil
}

// TSVPortfolioDataFile writes a slice of csv-tagged structs as a tab separated file.
func TSVPortfolioDataFile(name string, records interface{}) (PortfolioDataFile, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'
	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(w)); err != nil {
		return PortfolioDataFile{}, fmt.Errorf("failed to write tsv portfolio %s: %w", name, err)
	}
	return NewPortfolioDataFile(name, buf.String()), nil
}

// Name returns the file name.
func (f PortfolioDataFile) Name() string {
	return f.name
}

// Data returns the raw file content.
func (f PortfolioDataFile) Data() string {
	return f.data
}

func (f PortfolioDataFile) String() string {
	return fmt.Sprintf("PortfolioDataFile{name=%s, size=%d}", f.name, len(f.data))
}

type portfolioDataFileJSON struct {
	Name string `json:"name"`
	Data string `json:"data"`
}

func (f PortfolioDataFile) MarshalJSON() ([]byte, error) {
	return json.Marshal(portfolioDataFileJSON{Name: f.name, Data: f.data})
}

func (f *PortfolioDataFile) UnmarshalJSON(data []byte) error {
	var in portfolioDataFileJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*f = NewPortfolioDataFile(in.Name, in.Data)
	return nil
}
