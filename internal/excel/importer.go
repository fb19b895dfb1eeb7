package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/narrvoca/internal/database"
	"github.com/example/narrvoca/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath          string // Path to the Excel or CSV file
	LanguageColumn    int    // Column with the language code
	TermColumn        int    // Column with the term
	TranslationColumn int    // Column with the English translation
	ExampleColumn     int    // Column with an example sentence
	DifficultyColumn  int    // Column with the difficulty score
	SheetName         string // Name of the sheet to import
	SkipHeader        bool   // Skip the header row
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		LanguageColumn:    0,
		TermColumn:        1,
		TranslationColumn: 2,
		ExampleColumn:     3,
		DifficultyColumn:  4,
		SheetName:         "Sheet1",
		SkipHeader:        true,
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// ImportVocabulary imports vocabulary terms from an Excel or CSV file
func ImportVocabulary(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel imports vocabulary from an Excel file
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %v", config.SheetName, err)
	}

	return importRows(rows, config)
}

// importFromCSV imports vocabulary from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %v", err)
		}
		rows = append(rows, record)
	}

	return importRows(rows, config)
}

// importRows creates vocabulary entries from tabular data, collecting
// per-row errors instead of aborting the whole import
func importRows(rows [][]string, config ImportConfig) (*ImportResult, error) {
	vocabRepo := database.NewVocabularyRepository()
	result := &ImportResult{Errors: make([]string, 0)}

	start := 0
	if config.SkipHeader && len(rows) > 0 {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		result.TotalProcessed++

		language := cell(row, config.LanguageColumn)
		term := cell(row, config.TermColumn)
		translation := cell(row, config.TranslationColumn)

		if language == "" || term == "" || translation == "" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("row %d: language, term and translation are required", i+1))
			continue
		}

		exists, err := vocabRepo.Exists(language, term)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		if exists {
			result.Skipped++
			continue
		}

		vocab := &models.Vocabulary{
			LanguageCode:  language,
			Term:          term,
			TranslationEN: translation,
		}
		if example := cell(row, config.ExampleColumn); example != "" {
			vocab.ExampleSentence = &example
		}
		if raw := cell(row, config.DifficultyColumn); raw != "" {
			if score, err := strconv.ParseFloat(raw, 64); err == nil {
				vocab.DifficultyScore = &score
			}
		}

		if err := vocabRepo.Create(vocab); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Created++
	}

	return result, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
