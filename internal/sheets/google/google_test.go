package google

import (
	"context"
	"testing"
)

func TestFindRow(t *testing.T) {
	values := [][]any{{"ID"}, {"a"}, {}, {" b "}}
	tests := map[string]int{"a": 2, "b": 4, "ID": 1, "zzz": 0}
	for id, want := range tests {
		if got := findRow(values, id); got != want {
			t.Errorf("findRow(%q) = %d, want %d", id, got, want)
		}
	}
}

func TestNextRow(t *testing.T) {
	tests := []struct {
		name   string
		values [][]any
		want   int
	}{
		{"header only", [][]any{{"ID"}}, 2},
		{"append", [][]any{{"ID"}, {"a"}, {"b"}}, 4},
		{"reuse cleared", [][]any{{"ID"}, {"a"}, {}, {"c"}}, 3},
		{"reuse blank cell", [][]any{{"ID"}, {""}, {"c"}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nextRow(tt.values); got != tt.want {
				t.Errorf("nextRow = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRowRange(t *testing.T) {
	if got := rowRange("Transactions", 7); got != "Transactions!A7:G7" {
		t.Errorf("rowRange = %q", got)
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Error("New without spreadsheet id succeeded")
	}
	if _, err := New(context.Background(), Config{SpreadsheetID: "s"}); err == nil {
		t.Error("New without credentials succeeded")
	}
}
