package coerce

import (
	"math"
	"testing"
)

func TestInt(t *testing.T) {
	cases := []struct {
		name string
		in   any
		def  int
		want int
	}{
		{"int", 42, 0, 42},
		{"int64", int64(7), 0, 7},
		{"float truncates", 12.9, 0, 12},
		{"numeric string", "128", 0, 128},
		{"float string", "12.0", 0, 12},
		{"nil", nil, 5, 5},
		{"nan", math.NaN(), 3, 3},
		{"garbage", "abc", -1, -1},
		{"bool true", true, 0, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Int(tc.in, tc.def); got != tc.want {
				t.Errorf("Int(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestFloat(t *testing.T) {
	if got := Float("1.5", 0); got != 1.5 {
		t.Errorf("Float(\"1.5\") = %v", got)
	}
	if got := Float(math.NaN(), 2); got != 2 {
		t.Errorf("Float(NaN) = %v, want default", got)
	}
	if got := Float(float32(math.NaN()), 4); got != 4 {
		t.Errorf("Float(float32 NaN) = %v, want default", got)
	}
	if got := Float(nil, 9); got != 9 {
		t.Errorf("Float(nil) = %v, want default", got)
	}
	if got := Float(3, 0); got != 3 {
		t.Errorf("Float(3) = %v", got)
	}
	if got := Float("x", 0); got != 0 {
		t.Errorf("Float(\"x\") = %v, want 0", got)
	}
}

func TestBool(t *testing.T) {
	cases := []struct {
		in   any
		def  bool
		want bool
	}{
		{true, false, true},
		{false, true, false},
		{1, false, true},
		{0, true, false},
		{2.5, false, true},
		{"true", false, false},
		{nil, true, true},
		{math.NaN(), true, true},
		{[]int{1}, false, false},
	}
	for _, tc := range cases {
		if got := Bool(tc.in, tc.def); got != tc.want {
			t.Errorf("Bool(%v, %v) = %v, want %v", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestString(t *testing.T) {
	if got := String(nil, "dflt"); got != "dflt" {
		t.Errorf("String(nil) = %q", got)
	}
	if got := String(uint64(76561198000000001), ""); got != "76561198000000001" {
		t.Errorf("String(uint64) = %q", got)
	}
	if got := String("ak47", ""); got != "ak47" {
		t.Errorf("String(ak47) = %q", got)
	}
}

func TestID(t *testing.T) {
	for _, in := range []any{nil, "", "0", 0, "  "} {
		if id, ok := ID(in); ok {
			t.Errorf("ID(%#v) = %q, want absent", in, id)
		}
	}
	id, ok := ID(uint64(76561198000000001))
	if !ok || id != "76561198000000001" {
		t.Errorf("ID(uint64) = %q, %v", id, ok)
	}
	id, ok = ID(" 123 ")
	if !ok || id != "123" {
		t.Errorf("ID(\" 123 \") = %q, %v", id, ok)
	}
}
