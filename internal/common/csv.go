// Package common provides CSV import and export of expense records.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"kharcha/expense-nlp/internal/logging"
	"kharcha/expense-nlp/internal/models"

	"github.com/gocarina/gocsv"
)

// Delimiter is the field separator used for reading and writing CSV files.
var Delimiter rune = ','

// SetDelimiter changes the CSV field separator.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// ReadCSVFile reads CSV data into a slice of structs using gocsv.
// TCSVRow is the struct type that maps to the CSV columns.
func ReadCSVFile[TCSVRow any](filePath string, logger logging.Logger) ([]TCSVRow, error) {
	logger = logging.OrDefault(logger)
	logger.WithField(logging.FieldInputFile, filePath).Info("Reading CSV file")

	file, err := os.Open(filePath) // #nosec G304 -- path comes from the command line
	if err != nil {
		logger.WithError(err).Error("Failed to open CSV file")
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	reader := csv.NewReader(file)
	reader.Comma = Delimiter

	var rows []TCSVRow
	if err := gocsv.UnmarshalCSV(reader, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse CSV file")
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	logger.WithField(logging.FieldCount, len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// ReadRecords reads stored expense records, e.g. for the ask command.
func ReadRecords(filePath string, logger logging.Logger) ([]models.Record, error) {
	return ReadCSVFile[models.Record](filePath, logger)
}

// WriteRecordsToCSV writes records to csvFile, creating its directory when
// needed.
func WriteRecordsToCSV(records []models.Record, csvFile string, logger logging.Logger) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}
	logger = logging.OrDefault(logger)

	logger.WithFields(
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)},
	).Info("Writing records to CSV file")

	if dir := filepath.Dir(csvFile); dir != "" {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			logger.WithError(err).Error("Failed to create directory")
			return fmt.Errorf("error creating directory: %w", err)
		}
	}

	file, err := os.Create(csvFile) // #nosec G304 -- path comes from the command line
	if err != nil {
		logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(records, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to marshal records to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.WithField(logging.FieldOutputFile, csvFile).Info("Successfully wrote records to CSV file")
	return nil
}

// WriteTransactionsToCSV writes freshly parsed transactions, all dated date.
func WriteTransactionsToCSV(txs []models.Transaction, csvFile, date string, logger logging.Logger) error {
	if txs == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	records := make([]models.Record, len(txs))
	for i, tx := range txs {
		records[i] = tx.ToRecord(date)
	}
	return WriteRecordsToCSV(records, csvFile, logger)
}
