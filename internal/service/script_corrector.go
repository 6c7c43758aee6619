package service

import (
	"regexp"
	"strings"
	"unicode"
)

// Script correction is a best-effort heuristic layer for Arabic OCR
// artifacts. Every pass is a deterministic rewrite of fixed patterns: a pass
// that cannot improve a given input is a no-op on it, and running the whole
// pipeline twice yields the same result as running it once.

// Correction is skipped entirely below this Arabic character ratio; Latin
// text passes through untouched.
const correctionSkipRatio = 0.10

// Word-order repair only considers lines whose own Arabic fraction exceeds
// this threshold.
const lineReversalThreshold = 0.8

var (
	reSpaceRun  = regexp.MustCompile(`[ \t]{2,}`)
	reBlankRun  = regexp.MustCompile(`\n{3,}`)
	reSpaceEOL  = regexp.MustCompile(`[ \t]+\n`)
	reSpaceBOL  = regexp.MustCompile(`\n[ \t]+`)
	rePunctRun  = regexp.MustCompile(`([.!?؟،؛:])[ \t]{2,}`)
	reParasites = regexp.MustCompile(`[@#$%]`)

	// Ligature repair: the definite article prefix and the ة suffix are the
	// sequences the engine most frequently splits with a spurious space.
	reSplitArticle = regexp.MustCompile(`ا ل([\p{Arabic}])`)
	reSplitTaa     = regexp.MustCompile(`([\p{Arabic}]) ة([\s.,،؛:!؟)]|\z)`)

	// Script-boundary repair: digits or uppercase Latin runs glued directly
	// to Arabic letters.
	reDigitThenArabic = regexp.MustCompile(`([0-9]+)([\p{Arabic}])`)
	reArabicThenDigit = regexp.MustCompile(`([\p{Arabic}])([0-9]+)`)
	reUpperThenArabic = regexp.MustCompile(`([A-Z]{2,})([\p{Arabic}])`)
	reArabicThenUpper = regexp.MustCompile(`([\p{Arabic}])([A-Z]{2,})`)

	// Algerian-document idioms.
	reHijriMarker  = regexp.MustCompile(`(\d{3,4})\s*هـ?([\s.,،؛)]|\z)`)
	reRaqmSpacing  = regexp.MustCompile(`رقم\s*:?\s*(\d)`)
	reNumeroSign   = regexp.MustCompile(`([Nn])\s*[°º]\s*(\d)`)
	reRepCapsOCR   = regexp.MustCompile(`REPUBLIQUE\s+ALGERIENNE`)
	reRepMixedOCR  = regexp.MustCompile(`R[ée]publique\s+Alg[ée]rienne`)
	reSquashedJaza = regexp.MustCompile(`الجمهورية\s*الجزائرية`)
)

// Frequent short words that the engine splits into separate letters.
var separatedWords = []struct {
	broken, joined string
}{
	{"م ن", "من"},
	{"ع ل ى", "على"},
	{"ف ي", "في"},
	{"إ ل ى", "إلى"},
}

var separatedWordPatterns = compileSeparatedWords()

func compileSeparatedWords() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(separatedWords))
	for i, w := range separatedWords {
		patterns[i] = regexp.MustCompile(`(?m)(^|[\s(])` + w.broken + `($|[\s).,،؛:])`)
	}
	return patterns
}

// Commonly-confused punctuation glyphs and the Arabic letters they stand in
// for. Replacement only fires next to Arabic characters so French passages
// keep their real punctuation.
var artifactGlyphs = []struct {
	glyph, letter string
}{
	{`\|`, "ل"},
	{`\]`, "ي"},
	{`\[`, "ب"},
	{"`", "ء"},
	{`~`, "ن"},
}

var artifactPatterns = compileArtifactPatterns()

func compileArtifactPatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(artifactGlyphs)*2)
	for _, g := range artifactGlyphs {
		patterns = append(patterns,
			regexp.MustCompile(`([\p{Arabic}])`+g.glyph),
			regexp.MustCompile(g.glyph+`([\p{Arabic}])`))
	}
	return patterns
}

// CorrectText applies the deterministic Arabic OCR repair pipeline. Total
// function: worst case it returns the input unchanged.
func CorrectText(text string) string {
	if text == "" {
		return text
	}
	arabic, latin := countScripts(text)
	total := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			total++
		}
	}
	if total == 0 || float64(arabic)/float64(total) < correctionSkipRatio {
		return text
	}

	majority := arabic+latin > 0 && float64(arabic)/float64(arabic+latin) > 0.5

	t := normalizeSpacing(text, majority)
	t = repairLigatures(t)
	t = cleanArtifacts(t)
	t = repairScriptBoundaries(t)
	t = repairWordOrder(t)
	t = normalizeIdioms(t)
	return t
}

// normalizeSpacing collapses space runs. Arabic space-encodes morphology, so
// Arabic-majority text keeps wide runs as a reduced double space here; the
// final cleanup pass settles everything to single spaces.
func normalizeSpacing(text string, arabicMajority bool) string {
	return reSpaceRun.ReplaceAllStringFunc(text, func(run string) string {
		if arabicMajority && len(run) >= 4 {
			return "  "
		}
		return " "
	})
}

// repairLigatures re-joins Arabic letter sequences split by spurious spaces.
func repairLigatures(text string) string {
	t := reSplitArticle.ReplaceAllString(text, "ال${1}")
	for i, p := range separatedWordPatterns {
		t = p.ReplaceAllString(t, "${1}"+separatedWords[i].joined+"${2}")
	}
	t = reSplitTaa.ReplaceAllString(t, "${1}ة${2}")
	return t
}

// cleanArtifacts maps confused symbol glyphs back to Arabic letters, strips
// parasite symbols and re-collapses the whitespace this opens up.
func cleanArtifacts(text string) string {
	t := text
	for i, p := range artifactPatterns {
		letter := artifactGlyphs[i/2].letter
		if i%2 == 0 {
			t = p.ReplaceAllString(t, "${1}"+letter)
		} else {
			t = p.ReplaceAllString(t, letter+"${1}")
		}
	}
	t = reParasites.ReplaceAllString(t, "")
	t = reSpaceRun.ReplaceAllString(t, " ")
	t = reBlankRun.ReplaceAllString(t, "\n\n")
	return t
}

// repairScriptBoundaries inserts the separating space the engine drops where
// digits or uppercase Latin runs sit directly against Arabic letters.
func repairScriptBoundaries(text string) string {
	t := reDigitThenArabic.ReplaceAllString(text, "${1} ${2}")
	t = reArabicThenDigit.ReplaceAllString(t, "${1} ${2}")
	t = reUpperThenArabic.ReplaceAllString(t, "${1} ${2}")
	t = reArabicThenUpper.ReplaceAllString(t, "${1} ${2}")
	return t
}

// repairWordOrder reverses the word order of heavily-Arabic lines that the
// engine emitted in the wrong visual order.
func repairWordOrder(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		arabic, latin := countScripts(line)
		if arabic+latin == 0 || float64(arabic)/float64(arabic+latin) <= lineReversalThreshold {
			continue
		}
		first, last := fields[0], fields[len(fields)-1]

		// A line starting with a digit token and ending in an unterminated
		// Arabic word, or starting with sentence-final punctuation the last
		// token lacks, was emitted backwards.
		inverted := (startsWithDigit(first) && endsWithArabic(last) && !containsSentencePunct(last)) ||
			(containsSentencePunct(first) && !startsWithPunct(last) && !containsSentencePunct(last))
		if !inverted {
			continue
		}
		for l, r := 0, len(fields)-1; l < r; l, r = l+1, r-1 {
			fields[l], fields[r] = fields[r], fields[l]
		}
		lines[i] = strings.Join(fields, " ")
	}
	return strings.Join(lines, "\n")
}

// normalizeIdioms applies fixed textual patterns specific to Algerian
// official documents, then settles whitespace to its final single-spaced
// form.
func normalizeIdioms(text string) string {
	t := reHijriMarker.ReplaceAllString(text, "${1} هـ${2}")
	t = reSquashedJaza.ReplaceAllString(t, "الجمهورية الجزائرية")
	t = reRepCapsOCR.ReplaceAllString(t, "RÉPUBLIQUE ALGÉRIENNE")
	t = reRepMixedOCR.ReplaceAllString(t, "République Algérienne")
	t = reRaqmSpacing.ReplaceAllString(t, "رقم ${1}")
	t = reNumeroSign.ReplaceAllString(t, "${1}° ${2}")
	t = reSpaceEOL.ReplaceAllString(t, "\n")
	t = reSpaceBOL.ReplaceAllString(t, "\n")
	t = rePunctRun.ReplaceAllString(t, "${1} ")
	t = reSpaceRun.ReplaceAllString(t, " ")
	t = reBlankRun.ReplaceAllString(t, "\n\n")
	return t
}

func startsWithDigit(token string) bool {
	for _, r := range token {
		return r >= '0' && r <= '9'
	}
	return false
}

func endsWithArabic(token string) bool {
	last := rune(0)
	for _, r := range token {
		last = r
	}
	return isArabicRune(last)
}

func containsSentencePunct(token string) bool {
	return strings.ContainsAny(token, ".!?؟")
}

func startsWithPunct(token string) bool {
	for _, r := range token {
		return unicode.IsPunct(r)
	}
	return false
}
