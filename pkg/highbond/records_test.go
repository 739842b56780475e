package highbond

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestUploadRecordsInfersColumns(t *testing.T) {
	c, tr := newStubClient(t)
	when := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	in := RecordUpload{
		Records: []map[string]any{
			{"name": "ana", "amount": 10.5, "paid": true, "at": when, "took": 90 * time.Minute, "note": nil, "ref": 7, "metadata.status": "open"},
			{"name": "bo", "amount": json.Number("3"), "paid": false, "at": when, "took": time.Second, "note": nil, "ref": "A-7", "extras.x": 1},
		},
		Columns:   map[string]ColumnType{"amount": ColumnCharacter},
		Overwrite: true,
	}
	if _, err := c.Results.UploadRecords(context.Background(), "tb1", in); err != nil {
		t.Fatalf("UploadRecords: %v", err)
	}
	if tr.last.Method != http.MethodPost || tr.path(t) != "/tables/tb1/upload" {
		t.Fatalf("unexpected request %s %s", tr.last.Method, tr.last.URL)
	}

	body := decodeBody(t, tr)
	if body["options"].(map[string]any)["purge"] != true {
		t.Fatalf("expected purge=true, got %#v", body["options"])
	}
	data := body["data"].(map[string]any)
	columns := data["columns"].(map[string]any)
	want := map[string]string{
		"name":   "character",
		"amount": "character",
		"paid":   "logical",
		"at":     "datetime",
		"took":   "time",
		"note":   "character",
		"ref":    "character",
	}
	if len(columns) != len(want) {
		t.Fatalf("unexpected columns %#v", columns)
	}
	for k, v := range want {
		if columns[k] != v {
			t.Fatalf("column %s: expected %s, got %v", k, v, columns[k])
		}
	}

	records := data["records"].([]any)
	first := records[0].(map[string]any)
	if _, ok := first["metadata.status"]; ok {
		t.Fatalf("metadata column should be dropped: %#v", first)
	}
	if first["at"] != "2026-03-01T12:30:00Z" || first["took"] != "01:30:00" {
		t.Fatalf("unexpected formatting %#v", first)
	}
	if _, ok := records[1].(map[string]any)["extras.x"]; ok {
		t.Fatalf("extras column should be dropped")
	}
}

func TestUploadRecordsNumericColumn(t *testing.T) {
	body, err := RecordUpload{Records: []map[string]any{{"n": 1}, {"n": nil}, {"n": uint8(2)}}}.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if body.Data.Columns["n"] != ColumnNumeric {
		t.Fatalf("expected numeric, got %s", body.Data.Columns["n"])
	}
	if body.Options.Purge {
		t.Fatalf("purge should default to false")
	}
}

func TestUploadRecordsDateColumn(t *testing.T) {
	when := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	body, err := RecordUpload{
		Records: []map[string]any{{"d": when, "at": when}},
		Columns: map[string]ColumnType{"d": ColumnDate},
	}.build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if body.Data.Columns["d"] != ColumnDate || body.Data.Columns["at"] != ColumnDatetime {
		t.Fatalf("unexpected columns %#v", body.Data.Columns)
	}
	row := body.Data.Records[0]
	if row["d"] != "2026-03-01" {
		t.Fatalf("expected date-only value, got %#v", row["d"])
	}
	if row["at"] != "2026-03-01T12:30:00Z" {
		t.Fatalf("expected datetime value, got %#v", row["at"])
	}
}

func TestUploadRecordsValidation(t *testing.T) {
	c, tr := newStubClient(t)
	_, err := c.Results.UploadRecords(context.Background(), "tb1", RecordUpload{})
	expectInvalid(t, err, tr)

	_, err = c.Results.UploadRecords(context.Background(), "tb1", RecordUpload{
		Records: []map[string]any{{"a": 1}},
		Columns: map[string]ColumnType{"a": "blob"},
	})
	expectInvalid(t, err, tr)
}

func TestFormatClock(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{59 * time.Second, "00:00:59"},
		{26*time.Hour + 3*time.Minute, "26:03:00"},
		{-(2*time.Hour + 5*time.Second), "-02:00:05"},
	}
	for _, tc := range cases {
		if got := formatClock(tc.d); got != tc.want {
			t.Fatalf("formatClock(%s) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
