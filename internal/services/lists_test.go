package services

import (
	"reflect"
	"testing"
)

func TestMergeLists(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want []string
	}{
		{
			name: "union keeps first-seen order",
			a:    []string{"api design", "testing"},
			b:    []string{"deployment", "testing"},
			want: []string{"api design", "testing", "deployment"},
		},
		{
			name: "case-insensitive dedupe keeps first casing",
			a:    []string{"Go"},
			b:    []string{"go", "GO", "Redis"},
			want: []string{"Go", "Redis"},
		},
		{
			name: "blank entries dropped",
			a:    []string{"", "  ", "x"},
			b:    nil,
			want: []string{"x"},
		},
		{
			name: "both empty",
			a:    nil,
			b:    nil,
			want: []string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mergeLists(tc.a, tc.b); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("mergeLists(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestNormalizeTechSet(t *testing.T) {
	got := normalizeTechSet([]string{"redis", "Go", "REDIS", " Kafka ", ""})
	want := []string{"Go", "Kafka", "redis"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalizeTechSet = %v, want %v", got, want)
	}
}
