package io

import (
	"encoding/csv"
	"errors"
	goio "io"
	"strings"
)

var ErrParse = errors.New("parse error")

// ParseError carries the csv parser message.
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return "parse error: " + e.Message
}

func (e *ParseError) Unwrap() error {
	return ErrParse
}

// Dataset is a parsed csv file: the header line plus one header -> value
// mapping per data line.
type Dataset struct {
	Header  []string
	Records []map[string]string
}

func (d *Dataset) Len() int {
	return len(d.Records)
}

// Preview returns up to n leading records.
func (d *Dataset) Preview(n int) []map[string]string {
	if n > len(d.Records) {
		n = len(d.Records)
	}
	if n < 0 {
		n = 0
	}
	return d.Records[:n]
}

// ParseCSV reads a header line followed by data lines. Quoted values use ""
// for an inner quote, blank lines are skipped and every line must have as many
// fields as the header.
func ParseCSV(text string) (*Dataset, error) {

	text = strings.TrimPrefix(text, "\ufeff")

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = 0

	ds := &Dataset{
		Records: []map[string]string{},
	}

	header, err := reader.Read()
	if err == goio.EOF {
		return ds, nil
	}
	if err != nil {
		return nil, &ParseError{Message: err.Error()}
	}
	ds.Header = header

	for {
		line, readErr := reader.Read()
		if readErr == goio.EOF {
			break
		}
		if readErr != nil {
			return nil, &ParseError{Message: readErr.Error()}
		}

		record := make(map[string]string, len(header))
		for idx, h := range header {
			record[h] = line[idx]
		}
		ds.Records = append(ds.Records, record)
	}

	return ds, nil
}
