package highbond

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ColumnType is a Results table column type.
type ColumnType string

const (
	ColumnCharacter ColumnType = "character"
	ColumnNumeric   ColumnType = "numeric"
	ColumnLogical   ColumnType = "logical"
	ColumnDate      ColumnType = "date"
	ColumnDatetime  ColumnType = "datetime"
	ColumnTime      ColumnType = "time"
)

var columnTypes = []string{
	string(ColumnCharacter), string(ColumnNumeric), string(ColumnLogical),
	string(ColumnDate), string(ColumnDatetime), string(ColumnTime),
}

// RecordUpload is the input of UploadRecords.
type RecordUpload struct {
	Records []map[string]any
	// Columns overrides the inferred type of the named columns.
	Columns   map[string]ColumnType
	Overwrite bool
}

type uploadBody struct {
	Data    uploadData    `json:"data"`
	Options uploadOptions `json:"options"`
}

type uploadData struct {
	Columns map[string]ColumnType `json:"columns"`
	Records []map[string]any      `json:"records"`
}

type uploadOptions struct {
	Purge bool `json:"purge"`
}

// reservedColumn reports columns the server owns.
func reservedColumn(name string) bool {
	return strings.Contains(name, "metadata.") || strings.Contains(name, "extras.")
}

func (u RecordUpload) build() (uploadBody, error) {
	if len(u.Records) == 0 {
		return uploadBody{}, invalid("records", "at least one record is required")
	}
	for name, typ := range u.Columns {
		if err := oneOf("column "+name, string(typ), columnTypes...); err != nil {
			return uploadBody{}, err
		}
	}

	inferred := map[string]ColumnType{}
	records := make([]map[string]any, 0, len(u.Records))
	for _, rec := range u.Records {
		row := make(map[string]any, len(rec))
		for name, v := range rec {
			if reservedColumn(name) {
				continue
			}
			typ, ok := inferColumn(v)
			prev, seen := inferred[name]
			switch {
			case !seen:
				inferred[name] = typ
			case ok:
				inferred[name] = mergeColumn(prev, typ)
			}
			row[name] = v
		}
		records = append(records, row)
	}

	columns := make(map[string]ColumnType, len(inferred))
	for name, typ := range inferred {
		if explicit, ok := u.Columns[name]; ok {
			typ = explicit
		}
		if typ == "" {
			typ = ColumnCharacter
		}
		columns[name] = typ
	}
	for _, row := range records {
		for name, v := range row {
			row[name] = recordValue(v, columns[name])
		}
	}

	return uploadBody{
		Data:    uploadData{Columns: columns, Records: records},
		Options: uploadOptions{Purge: u.Overwrite},
	}, nil
}

// inferColumn maps a Go value to a column type. Nil reports false with an
// empty type.
func inferColumn(v any) (ColumnType, bool) {
	switch v.(type) {
	case nil:
		return "", false
	case string:
		return ColumnCharacter, true
	case bool:
		return ColumnLogical, true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, json.Number:
		return ColumnNumeric, true
	case time.Time:
		return ColumnDatetime, true
	case time.Duration:
		return ColumnTime, true
	default:
		return ColumnCharacter, true
	}
}

// mergeColumn folds the type seen in another row into prev. Disagreeing
// types widen to character; an empty prev means only nils so far.
func mergeColumn(prev, next ColumnType) ColumnType {
	switch {
	case prev == "" || prev == next:
		return next
	default:
		return ColumnCharacter
	}
}

// recordValue renders values JSON cannot carry in the upload format. Times
// in a date column lose their clock part.
func recordValue(v any, typ ColumnType) any {
	switch x := v.(type) {
	case time.Time:
		if typ == ColumnDate {
			return x.Format(dateLayout)
		}
		return x.Format(time.RFC3339)
	case time.Duration:
		return formatClock(x)
	default:
		return v
	}
}

// formatClock renders d as HH:MM:SS. Hours may exceed 24.
func formatClock(d time.Duration) string {
	sign := ""
	if d < 0 {
		sign = "-"
		d = -d
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, secs/3600, (secs/60)%60, secs%60)
}
