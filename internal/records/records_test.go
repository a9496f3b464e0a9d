package records

import (
	"reflect"
	"testing"
)

func TestDropColumn(t *testing.T) {
	tbl := &Table{
		Columns: []string{"a", "b", "c"},
		Rows: []Record{
			{"a": "1", "b": "2", "c": "3"},
			{"a": "4", "b": "5", "c": "6"},
		},
	}

	tbl.DropColumn("b")

	if got, want := tbl.Columns, []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Columns = %v, want %v", got, want)
	}
	for i, r := range tbl.Rows {
		if _, ok := r["b"]; ok {
			t.Errorf("row %d still has dropped column b", i)
		}
	}

	// Absent column is a no-op.
	tbl.DropColumn("zzz")
	if got, want := tbl.Columns, []string{"a", "c"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Columns after no-op drop = %v, want %v", got, want)
	}
}

func TestAddColumn(t *testing.T) {
	tbl := New([]string{"a"})
	tbl.AddColumn("b")
	tbl.AddColumn("a") // duplicate is a no-op

	if got, want := tbl.Columns, []string{"a", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Columns = %v, want %v", got, want)
	}
}

func TestHead(t *testing.T) {
	tests := []struct {
		name string
		rows int
		n    int
		want int
	}{
		{"truncates", 10, 3, 3},
		{"n_beyond_len", 3, 10, 3},
		{"exact", 5, 5, 5},
		{"zero", 5, 0, 0},
		{"negative", 5, -1, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tbl := New([]string{"a"})
			for i := 0; i < tc.rows; i++ {
				tbl.Rows = append(tbl.Rows, Record{"a": "x"})
			}
			tbl.Head(tc.n)
			if tbl.Len() != tc.want {
				t.Fatalf("Len = %d, want %d", tbl.Len(), tc.want)
			}
		})
	}
}

func TestRowValues(t *testing.T) {
	tbl := &Table{
		Columns: []string{"a", "b", "c"},
		Rows:    []Record{{"a": "x", "c": int64(7)}},
	}
	got := tbl.RowValues(0)
	want := []any{"x", nil, int64(7)}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RowValues = %v, want %v", got, want)
	}
}
