package exportService

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"seqlab/api/models/records"

	"github.com/mitchellh/mapstructure"
)

// BuildCSV serializes rows into CSV text : one header row followed by
// one line per row, '\n'-joined. Fields are quoted (and internal
// quotes doubled) only when they contain a comma, a double quote or a
// newline. Column order is the caller's responsibility since Go maps
// do not preserve key order ; see FirstRowColumns.
//
// An empty row set is not an error : it logs a warning and reports
// a no-op through the second return value.
func BuildCSV(rows []map[string]interface{}, columns []string) (string, bool) {
	if len(rows) == 0 {
		log.Println("Warning: nothing to export, skipping CSV generation")
		return "", false
	}

	lines := make([]string, 0, len(rows)+1)

	headerFields := make([]string, len(columns))
	for i, column := range columns {
		headerFields[i] = encodeField(column)
	}
	lines = append(lines, strings.Join(headerFields, ","))

	for _, row := range rows {
		fields := make([]string, len(columns))
		for i, column := range columns {
			fields[i] = encodeField(stringifyValue(row[column]))
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return strings.Join(lines, "\n"), true
}

func stringifyValue(value interface{}) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func encodeField(field string) string {
	if strings.ContainsAny(field, ",\"\n") {
		return "\"" + strings.ReplaceAll(field, "\"", "\"\"") + "\""
	}
	return field
}

// FirstRowColumns recovers the literal key order of a single JSON
// object, something the unmarshalled map has already lost
func FirstRowColumns(rawRow []byte) ([]string, error) {
	decoder := json.NewDecoder(bytes.NewReader(rawRow))

	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := token.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected a JSON object, got %v", token)
	}

	var columns []string
	for {
		token, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		if delim, ok := token.(json.Delim); ok && delim == '}' {
			return columns, nil
		}

		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("expected a JSON object key, got %v", token)
		}
		columns = append(columns, key)

		if err := skipValue(decoder); err != nil {
			return nil, err
		}
	}
}

func skipValue(decoder *json.Decoder) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}
	delim, ok := token.(json.Delim)
	if !ok || (delim != '{' && delim != '[') {
		// scalar, already consumed
		return nil
	}

	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			return err
		}
		if delim, ok := token.(json.Delim); ok {
			switch delim {
			case '{', '[':
				depth++
			case '}', ']':
				depth--
			}
		}
	}
	return nil
}

// VariantRows flattens variants into exportable rows plus their
// canonical column order
func VariantRows(variants []records.Variant) ([]map[string]interface{}, []string) {
	rows := make([]map[string]interface{}, 0, len(variants))
	for _, variant := range variants {
		row := map[string]interface{}{}
		if err := mapstructure.Decode(variant, &row); err != nil {
			log.Println("failed to flatten variant:", err)
			continue
		}
		rows = append(rows, row)
	}
	return rows, []string{"chrom", "pos", "ref", "alt"}
}
