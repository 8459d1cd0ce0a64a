package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2024-10-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeInvalid(t *testing.T) {
	if _, ok := ParseTime("not-a-time"); ok {
		t.Fatalf("expected not ok")
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("8123", 7777); got != 8123 {
		t.Fatalf("unexpected value %d", got)
	}
	if got := ParseIntDefault("", 7777); got != 7777 {
		t.Fatalf("expected default for empty, got %d", got)
	}
	if got := ParseIntDefault("not-a-number", 7777); got != 7777 {
		t.Fatalf("expected default for garbage, got %d", got)
	}
}
