package repository

import (
	"encoding/json"
	"regexp"
	"strings"
)

// PostgreSQL rejects \u0000 escapes inside jsonb columns (error 22P05), and
// OCR output routinely carries NUL and other control bytes. Everything
// written to a jsonb column goes through this sanitization first.

var (
	reControlEscapes   = regexp.MustCompile(`\\u00[0-1][0-9a-fA-F]`)
	reSurrogateEscapes = regexp.MustCompile(`\\u[dD][89a-fA-F][0-9a-fA-F]{2}`)
	reAnyEscape        = regexp.MustCompile(`\\u[0-9a-fA-F]{4}`)
)

// sanitizeJSONString strips control-character and surrogate escape sequences
// plus literal NUL bytes from a JSON document, keeping it valid JSON.
func sanitizeJSONString(jsonStr string) string {
	jsonStr = reControlEscapes.ReplaceAllString(jsonStr, "")
	jsonStr = reSurrogateEscapes.ReplaceAllString(jsonStr, "")
	jsonStr = strings.ReplaceAll(jsonStr, "\x00", "")

	var verify interface{}
	if err := json.Unmarshal([]byte(jsonStr), &verify); err != nil {
		// The stripping broke the document; drop every escape sequence and
		// let the caller's fallback handle a still-invalid result.
		jsonStr = reAnyEscape.ReplaceAllString(jsonStr, "")
	}
	return jsonStr
}

// toJSONBValue converts v into a plain interface{} tree safe to hand to the
// Supabase client as a jsonb column value. fallback is the JSON used when v
// cannot be cleaned.
func toJSONBValue(v interface{}, fallback string) interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		raw = []byte(fallback)
	}
	cleaned := sanitizeJSONString(string(raw))

	var out interface{}
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		if err := json.Unmarshal([]byte(fallback), &out); err != nil {
			return nil
		}
	}
	return out
}

// sanitizeText removes the characters from free text that would later poison
// a jsonb write.
func sanitizeText(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 {
			return -1
		}
		return r
	}, s)
}
