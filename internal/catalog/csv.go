package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ParseCSV reads one domain's catalog from CSV. The first row is a header;
// columns are matched by name so files may carry any subset of the optional
// domain fields in any order. Unknown columns are ignored and missing
// optional columns default to empty.
func ParseCSV(domain Domain, r io.Reader) ([]Item, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	// Rows with fewer fields than the header still parse; short rows pad out.
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	field := func(row []string, names ...string) string {
		for _, name := range names {
			if idx, ok := cols[name]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
		}
		return ""
	}

	var items []Item
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		it := Item{
			Title:       field(row, "title", "name"),
			Genre:       field(row, "genre"),
			Mood:        field(row, "mood"),
			Keywords:    field(row, "keywords"),
			Description: field(row, "description"),

			Artist:          field(row, "artist"),
			Album:           field(row, "album"),
			Year:            field(row, "year"),
			Instrumentation: field(row, "instrumentation"),
			Lyrics:          field(row, "lyrics"),

			Author: field(row, "author"),

			Director: field(row, "director"),
			Cast:     field(row, "cast"),
			Creator:  field(row, "creator"),

			Setting:    field(row, "setting"),
			TimePeriod: field(row, "time_period"),

			Cuisine:     field(row, "cuisine_type", "cuisine"),
			Ingredients: field(row, "ingredients"),
			MealType:    field(row, "meal_type"),
			DishType:    field(row, "dish_type"),
			Tags:        field(row, "tags"),
			Category:    field(row, "category"),
			CookingTime: field(row, "cooking_time"),
			Difficulty:  field(row, "difficulty_level", "difficulty"),
		}

		if raw := field(row, "rating", "average_rating"); raw != "" {
			if rating, err := strconv.ParseFloat(raw, 64); err == nil {
				it.Rating = rating
			}
		}

		if it.Title == "" {
			continue // row without a display identifier cannot be deduped
		}
		items = append(items, it)
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%s catalog contains no items", domain)
	}
	return items, nil
}

// newBytesReader wraps a byte slice for ParseCSV.
func newBytesReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}
