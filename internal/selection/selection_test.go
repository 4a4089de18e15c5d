package selection

import (
	"reflect"
	"testing"
)

func TestParseSet(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		maxID  int
		want   []int
	}{
		{"all", "all", 5, []int{1, 2, 3, 4, 5}},
		{"all is case-insensitive", "ALL", 3, []int{1, 2, 3}},
		{"dedup and sort", "3,1,3,5-7", 10, []int{1, 3, 5, 6, 7}},
		{"bare out-of-range dropped", "50", 5, nil},
		{"range clamped to max", "4-20", 5, []int{4, 5}},
		{"range clamped to one", "0-2", 5, []int{1, 2}},
		{"inverted range contributes nothing", "7-3", 10, nil},
		{"empty answer", "", 5, nil},
		{"whitespace answer", "   ", 5, nil},
		{"all tokens invalid", "x,y,,-", 5, nil},
		{"mixed junk survives", "2, x, 4", 5, []int{2, 4}},
		{"zero maxID", "1", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseSet(tt.answer, tt.maxID)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseSet(%q, %d) = %v, want %v", tt.answer, tt.maxID, got, tt.want)
			}
		})
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		maxIndex int
		want     []int
	}{
		{"order and duplicates preserved", "2,1,2", 3, []int{2, 1, 2}},
		{"invalid token dropped, order kept", "9,1", 3, []int{1}},
		{"all ascending", "all", 4, []int{1, 2, 3, 4}},
		{"ranges are not part of this grammar", "1-3", 5, nil},
		{"empty answer", "", 3, nil},
		{"all invalid", "0,99,x", 3, nil},
		{"spaces tolerated", " 3 , 1 ", 3, []int{3, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOrder(tt.answer, tt.maxIndex)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseOrder(%q, %d) = %v, want %v", tt.answer, tt.maxIndex, got, tt.want)
			}
		})
	}
}

func TestIsSkip(t *testing.T) {
	for _, answer := range []string{"skip", "SKIP", "  Skip  "} {
		if !IsSkip(answer) {
			t.Fatalf("expected %q to be the skip sentinel", answer)
		}
	}
	for _, answer := range []string{"", "skipp", "1,2"} {
		if IsSkip(answer) {
			t.Fatalf("did not expect %q to be the skip sentinel", answer)
		}
	}
}
