package task

import (
	"reflect"
	"testing"
)

func TestReorder(t *testing.T) {
	tests := []struct {
		name      string
		order     []string
		active    string
		over      string
		want      []string
		wantMoved bool
	}{
		{"move down", []string{"a", "b", "c"}, "a", "c", []string{"b", "c", "a"}, true},
		{"move up", []string{"a", "b", "c"}, "c", "a", []string{"c", "a", "b"}, true},
		{"adjacent", []string{"a", "b", "c", "d"}, "b", "c", []string{"a", "c", "b", "d"}, true},
		{"unknown active", []string{"a", "b"}, "x", "a", []string{"a", "b"}, false},
		{"unknown over", []string{"a", "b"}, "a", "x", []string{"a", "b"}, false},
		{"same id", []string{"a", "b"}, "a", "a", []string{"a", "b"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, moved := Reorder(tt.order, tt.active, tt.over)
			if moved != tt.wantMoved {
				t.Errorf("moved = %v, want %v", moved, tt.wantMoved)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("order = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMoveTo(t *testing.T) {
	tests := []struct {
		name  string
		order []string
		id    string
		index int
		want  []string
	}{
		{"to front", []string{"a", "b", "c"}, "c", 0, []string{"c", "a", "b"}},
		{"to middle", []string{"a", "b", "c"}, "a", 1, []string{"b", "a", "c"}},
		{"clamped high", []string{"a", "b", "c"}, "a", 10, []string{"b", "c", "a"}},
		{"clamped low", []string{"a", "b", "c"}, "b", -3, []string{"b", "a", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MoveTo(tt.order, tt.id, tt.index); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("MoveTo() = %v, want %v", got, tt.want)
			}
		})
	}
}
