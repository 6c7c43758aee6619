package repository

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSanitizeJSONString_StripsControlEscapes(t *testing.T) {
	in := "{\"text\":\"before\\u0000after\\u0007end\"}"
	out := sanitizeJSONString(in)

	if strings.Contains(out, "\\u0000") || strings.Contains(out, "\\u0007") {
		t.Fatalf("expected control escapes removed, got %q", out)
	}
	var verify map[string]string
	if err := json.Unmarshal([]byte(out), &verify); err != nil {
		t.Fatalf("cleaned JSON is invalid: %v", err)
	}
	if verify["text"] != "beforeafterend" {
		t.Fatalf("expected joined text, got %q", verify["text"])
	}
}

func TestSanitizeJSONString_KeepsNormalEscapes(t *testing.T) {
	in := `{"text":"café جزائر"}`
	out := sanitizeJSONString(in)
	if out != in {
		t.Fatalf("normal escapes must be preserved, got %q", out)
	}
}

func TestToJSONBValue_RoundTrips(t *testing.T) {
	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	v := toJSONBValue(payload{Name: "décret", Count: 3}, "{}")
	m, ok := v.(map[string]interface{})
	if !ok {
		t.Fatalf("expected a map, got %T", v)
	}
	if m["name"] != "décret" {
		t.Fatalf("expected name preserved, got %v", m["name"])
	}
}

func TestToJSONBValue_UnmarshalableFallsBack(t *testing.T) {
	v := toJSONBValue(make(chan int), "[]")
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 0 {
		t.Fatalf("expected empty array fallback, got %#v", v)
	}
}

func TestSanitizeText_RemovesNULBytes(t *testing.T) {
	if got := sanitizeText("a\x00b\x00c"); got != "abc" {
		t.Fatalf("expected NUL bytes removed, got %q", got)
	}
}
