package service

import (
	"strings"
	"testing"
)

func TestCorrectText_SkipsLatinText(t *testing.T) {
	in := "Décret  exécutif n°  15-247 du 10 septembre 2015"
	if got := CorrectText(in); got != in {
		t.Fatalf("latin text must pass through untouched, got %q", got)
	}
}

func TestCorrectText_SkipsEmptyText(t *testing.T) {
	if got := CorrectText(""); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestCorrectText_RepairsSplitDefiniteArticle(t *testing.T) {
	got := CorrectText("صدر ا لقانون في الجريدة")
	if !strings.Contains(got, "القانون") {
		t.Fatalf("expected rejoined definite article, got %q", got)
	}
}

func TestCorrectText_RejoinsSeparatedShortWords(t *testing.T) {
	got := CorrectText("نسخة م ن القانون المنشور ف ي الجريدة")
	if !strings.Contains(got, " من ") {
		t.Fatalf("expected rejoined word من, got %q", got)
	}
	if !strings.Contains(got, " في ") {
		t.Fatalf("expected rejoined word في, got %q", got)
	}
}

func TestCorrectText_RemovesParasiteSymbols(t *testing.T) {
	got := CorrectText("المادة # الأولى من @ القانون $")
	if strings.ContainsAny(got, "@#$%") {
		t.Fatalf("expected parasite symbols removed, got %q", got)
	}
}

func TestCorrectText_MapsArtifactGlyphsNextToArabic(t *testing.T) {
	got := CorrectText("ا|قانون المنشور في الجريدة الرسمية")
	if strings.Contains(got, "|") {
		t.Fatalf("expected pipe glyph replaced, got %q", got)
	}
	if !strings.Contains(got, "الق") {
		t.Fatalf("expected ل restored in place of pipe, got %q", got)
	}
}

func TestCorrectText_SeparatesDigitsFromArabic(t *testing.T) {
	got := CorrectText("القانون رقم15 لسنة2015 المنشور في الجريدة")
	if !strings.Contains(got, "رقم 15") {
		t.Fatalf("expected space between word and digits, got %q", got)
	}
	if !strings.Contains(got, "لسنة 2015") {
		t.Fatalf("expected space before year, got %q", got)
	}
}

func TestCorrectText_NormalizesNumeroSign(t *testing.T) {
	// Enough Arabic to cross the correction gate.
	got := CorrectText("القانون المنشور في الجريدة الرسمية N°15")
	if !strings.Contains(got, "N° 15") {
		t.Fatalf("expected normalized numero sign, got %q", got)
	}
}

func TestCorrectText_CollapsesSpaceRuns(t *testing.T) {
	got := CorrectText("المادة    الأولى  من     القانون")
	if strings.Contains(got, "  ") {
		t.Fatalf("expected single-spaced output, got %q", got)
	}
}

func TestCorrectText_ReversesInvertedArabicLine(t *testing.T) {
	// The engine sometimes emits Arabic lines in visual order: the trailing
	// period lands on the first token and the line reads backwards.
	got := CorrectText("الشعبية. الديمقراطية الجزائرية الجمهورية")
	want := "الجمهورية الجزائرية الديمقراطية الشعبية."
	if got != want {
		t.Fatalf("expected reversed line %q, got %q", want, got)
	}
}

func TestCorrectText_Idempotent(t *testing.T) {
	inputs := []string{
		"صدر ا لقانون رقم15 م ن @ الوزارة    المختصة",
		"الشعبية. الديمقراطية الجزائرية الجمهورية",
		"المادة # الأولى N°15 في    الجريدة الرسمية",
		"وزارة العدل\n\n\n\nمديرية الشؤون المدنية",
	}
	for _, in := range inputs {
		once := CorrectText(in)
		twice := CorrectText(once)
		if once != twice {
			t.Fatalf("correction not idempotent for %q:\n once: %q\ntwice: %q", in, once, twice)
		}
	}
}

func TestCorrectText_CollapsesBlankLineRuns(t *testing.T) {
	got := CorrectText("وزارة العدل\n\n\n\n\nمديرية الشؤون")
	if strings.Contains(got, "\n\n\n") {
		t.Fatalf("expected at most one blank line, got %q", got)
	}
}
