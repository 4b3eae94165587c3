package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var requiredColumns = []string{"id", "retailer", "store_number", "name", "zip_code", "latitude", "longitude"}

// ReadCSV parses a store seed file. The first row names the columns; the order is
// free and unknown columns are ignored. A missing is_active column means active.
func ReadCSV(r io.Reader) ([]Location, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("csv is empty")
		}
		return nil, err
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}

	var locations []Location
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		l, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		locations = append(locations, l)
	}

	return locations, nil
}

func parseRecord(record []string, index map[string]int) (Location, error) {
	get := func(name string) string {
		i, ok := index[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id, err := strconv.Atoi(get("id"))
	if err != nil {
		return Location{}, fmt.Errorf("invalid id %q", get("id"))
	}

	lat, err := strconv.ParseFloat(get("latitude"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return Location{}, fmt.Errorf("invalid latitude %q", get("latitude"))
	}

	lng, err := strconv.ParseFloat(get("longitude"), 64)
	if err != nil || lng < -180 || lng > 180 {
		return Location{}, fmt.Errorf("invalid longitude %q", get("longitude"))
	}

	active := true
	if v := get("is_active"); v != "" {
		if active, err = strconv.ParseBool(v); err != nil {
			return Location{}, fmt.Errorf("invalid is_active %q", v)
		}
	}

	l := Location{
		ID:          id,
		Retailer:    get("retailer"),
		StoreNumber: get("store_number"),
		Name:        get("name"),
		Address:     get("address"),
		City:        get("city"),
		State:       strings.ToUpper(get("state")),
		ZipCode:     get("zip_code"),
		Phone:       get("phone"),
		Latitude:    lat,
		Longitude:   lng,
		StoreHours:  get("store_hours"),
		IsActive:    active,
	}

	if l.Retailer == "" || l.Name == "" {
		return Location{}, errors.New("retailer and name are required")
	}

	if l.State == "" {
		l.State, _ = StateForZip(l.ZipCode)
	}

	return l, nil
}
