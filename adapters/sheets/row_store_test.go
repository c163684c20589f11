package sheets

import (
	"testing"

	"github.com/gudangkita/serial-validation/server/domain/entities"
)

func TestRecordFromRow(t *testing.T) {
	tests := []struct {
		name  string
		row   int
		cells []interface{}
		want  entities.Record
	}{
		{
			name:  "full row",
			row:   2,
			cells: []interface{}{"SN1", "M1", "D1", "no", ""},
			want:  entities.Record{Row: 2, SerialNumber: "SN1", MaterialCode: "M1", DealerCode: "D1"},
		},
		{
			name:  "validated row with timestamp",
			row:   5,
			cells: []interface{}{"SN2", "M2", "D2", "yes", "2024-01-15 10:30:00"},
			want: entities.Record{
				Row: 5, SerialNumber: "SN2", MaterialCode: "M2", DealerCode: "D2",
				Validated: true, ValidatedAt: "2024-01-15 10:30:00",
			},
		},
		{
			name:  "flag is case insensitive",
			row:   3,
			cells: []interface{}{"SN3", "M3", "D3", "Yes"},
			want:  entities.Record{Row: 3, SerialNumber: "SN3", MaterialCode: "M3", DealerCode: "D3", Validated: true},
		},
		{
			name:  "short row padded with empty cells",
			row:   4,
			cells: []interface{}{"SN4", "M4"},
			want:  entities.Record{Row: 4, SerialNumber: "SN4", MaterialCode: "M4"},
		},
		{
			name:  "whitespace trimmed",
			row:   6,
			cells: []interface{}{" SN5 ", "M5 ", " D5", " no "},
			want:  entities.Record{Row: 6, SerialNumber: "SN5", MaterialCode: "M5", DealerCode: "D5"},
		},
		{
			name:  "numeric cells stringified",
			row:   7,
			cells: []interface{}{"SN6", float64(1001), "D6", "no"},
			want:  entities.Record{Row: 7, SerialNumber: "SN6", MaterialCode: "1001", DealerCode: "D6"},
		},
		{
			name:  "nil cells read as empty",
			row:   8,
			cells: []interface{}{"SN7", nil, "D7", nil},
			want:  entities.Record{Row: 8, SerialNumber: "SN7", DealerCode: "D7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := recordFromRow(tt.row, tt.cells)
			if got != tt.want {
				t.Errorf("recordFromRow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
