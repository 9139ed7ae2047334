package entity

import (
	"encoding/json"
	"testing"
)

func TestLimitAllows(t *testing.T) {
	if !Unlimited().Allows(1 << 30) {
		t.Fatal("unlimited must always allow")
	}
	if !Limited(3).Allows(2) {
		t.Fatal("expected 2 of 3 to be allowed")
	}
	if Limited(3).Allows(3) {
		t.Fatal("expected 3 of 3 to be denied")
	}
	if Limited(0).Allows(0) {
		t.Fatal("a zero limit allows nothing")
	}
}

func TestLimitScanNullMeansUnlimited(t *testing.T) {
	var l Limit
	if err := l.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if !l.Unlimited {
		t.Fatal("expected unlimited after scanning NULL")
	}

	if err := l.Scan(int64(7)); err != nil {
		t.Fatalf("scan int: %v", err)
	}
	if l.Unlimited || l.N != 7 {
		t.Fatalf("expected limited 7, got %+v", l)
	}
}

func TestLimitValueRoundTrip(t *testing.T) {
	v, err := Unlimited().Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != nil {
		t.Fatalf("expected NULL for unlimited, got %v", v)
	}

	v, err = Limited(12).Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != int64(12) {
		t.Fatalf("expected 12, got %v", v)
	}
}

func TestLimitJSON(t *testing.T) {
	data, err := json.Marshal(Unlimited())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "null" {
		t.Fatalf("expected null, got %s", data)
	}

	var l Limit
	if err := json.Unmarshal([]byte("null"), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !l.Unlimited {
		t.Fatal("expected unlimited from null")
	}
	if err := json.Unmarshal([]byte("5"), &l); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if l.Unlimited || l.N != 5 {
		t.Fatalf("expected limited 5, got %+v", l)
	}
}

func TestLimitString(t *testing.T) {
	if Unlimited().String() != "unlimited" {
		t.Fatalf("got %q", Unlimited().String())
	}
	if Limited(9).String() != "9" {
		t.Fatalf("got %q", Limited(9).String())
	}
}
