package service

import (
	"legal-ocr-server/internal/domain"
)

// ScriptClassification is the result of classifying a text's writing system.
type ScriptClassification struct {
	Dominant    domain.Script `json:"dominant"`
	ArabicRatio float64       `json:"arabic_ratio"`
	ArabicCount int           `json:"arabic_count"`
	LatinCount  int           `json:"latin_count"`
}

// isArabicRune reports whether r belongs to the Arabic Unicode blocks used in
// Algerian documents (main block plus presentation forms).
func isArabicRune(r rune) bool {
	return (r >= 0x0600 && r <= 0x06FF) ||
		(r >= 0x0750 && r <= 0x077F) ||
		(r >= 0xFB50 && r <= 0xFDFF) ||
		(r >= 0xFE70 && r <= 0xFEFF)
}

// isLatinLetter reports whether r is a Latin letter, including the accented
// letters used by French.
func isLatinLetter(r rune) bool {
	if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
		return true
	}
	// Latin-1 supplement and Latin Extended-A letters (À..ÿ, Œ, œ, ...).
	if r >= 0x00C0 && r <= 0x017F && r != 0x00D7 && r != 0x00F7 {
		return true
	}
	return false
}

// countScripts counts Arabic-block and Latin-letter characters in text.
func countScripts(text string) (arabic, latin int) {
	for _, r := range text {
		switch {
		case isArabicRune(r):
			arabic++
		case isLatinLetter(r):
			latin++
		}
	}
	return arabic, latin
}

// ClassifyScript classifies text as Arabic-dominant, French-dominant or
// Mixed. Pure function, never fails. Empty text (no Latin signal at all)
// classifies as Arabic, the Algerian-context default.
//
// Thresholds: ratio > 0.6 Arabic; 0.15 < ratio <= 0.6 Mixed; ratio <= 0.15
// with any Latin present French; otherwise Arabic.
func ClassifyScript(text string) ScriptClassification {
	arabic, latin := countScripts(text)

	ratio := 0.0
	if arabic+latin > 0 {
		ratio = float64(arabic) / float64(arabic+latin)
	}

	c := ScriptClassification{
		ArabicRatio: ratio,
		ArabicCount: arabic,
		LatinCount:  latin,
	}

	switch {
	case ratio > 0.6:
		c.Dominant = domain.ScriptArabic
	case ratio > 0.15:
		c.Dominant = domain.ScriptMixed
	case latin > 0:
		c.Dominant = domain.ScriptFrench
	default:
		c.Dominant = domain.ScriptArabic
	}
	return c
}

// IsMixedRatio reports whether an Arabic ratio falls in the mixed band where
// neither script dominates by roughly 2:1.
func IsMixedRatio(ratio float64) bool {
	return ratio > 0.15 && ratio <= 0.6
}
