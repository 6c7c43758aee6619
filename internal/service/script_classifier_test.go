package service

import (
	"testing"

	"legal-ocr-server/internal/domain"
)

func TestClassifyScript_ArabicDominant(t *testing.T) {
	c := ClassifyScript("الجمهورية الجزائرية الديمقراطية الشعبية")
	if c.Dominant != domain.ScriptArabic {
		t.Fatalf("expected arabic, got %s", c.Dominant)
	}
	if c.ArabicRatio <= 0.6 {
		t.Fatalf("expected ratio above 0.6, got %f", c.ArabicRatio)
	}
	if c.LatinCount != 0 {
		t.Fatalf("expected no latin characters, got %d", c.LatinCount)
	}
}

func TestClassifyScript_FrenchDominant(t *testing.T) {
	c := ClassifyScript("République Algérienne Démocratique et Populaire")
	if c.Dominant != domain.ScriptFrench {
		t.Fatalf("expected french, got %s", c.Dominant)
	}
	if c.ArabicCount != 0 {
		t.Fatalf("expected no arabic characters, got %d", c.ArabicCount)
	}
}

func TestClassifyScript_Mixed(t *testing.T) {
	// Roughly balanced bilingual header.
	c := ClassifyScript("وزارة العدل Ministère de la Justice")
	if c.Dominant != domain.ScriptMixed {
		t.Fatalf("expected mixed, got %s (ratio %f)", c.Dominant, c.ArabicRatio)
	}
	if !IsMixedRatio(c.ArabicRatio) {
		t.Fatalf("expected mixed ratio band, got %f", c.ArabicRatio)
	}
}

func TestClassifyScript_EmptyDefaultsToArabic(t *testing.T) {
	c := ClassifyScript("")
	if c.Dominant != domain.ScriptArabic {
		t.Fatalf("expected arabic default for empty text, got %s", c.Dominant)
	}
	if c.ArabicRatio != 0 {
		t.Fatalf("expected zero ratio, got %f", c.ArabicRatio)
	}
}

func TestClassifyScript_DigitsOnlyDefaultsToArabic(t *testing.T) {
	c := ClassifyScript("15-247 2015")
	if c.Dominant != domain.ScriptArabic {
		t.Fatalf("expected arabic default for script-free text, got %s", c.Dominant)
	}
}

func TestClassifyScript_ThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name           string
		arabic, latin  int
		expectDominant domain.Script
	}{
		{"just above 0.6", 61, 39, domain.ScriptArabic},
		{"exactly 0.6", 60, 40, domain.ScriptMixed},
		{"just above 0.15", 16, 84, domain.ScriptMixed},
		{"exactly 0.15", 15, 85, domain.ScriptFrench},
		{"no arabic at all", 0, 100, domain.ScriptFrench},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := ""
			for i := 0; i < tt.arabic; i++ {
				text += "م"
			}
			for i := 0; i < tt.latin; i++ {
				text += "a"
			}
			c := ClassifyScript(text)
			if c.Dominant != tt.expectDominant {
				t.Fatalf("expected %s, got %s (ratio %f)", tt.expectDominant, c.Dominant, c.ArabicRatio)
			}
		})
	}
}
