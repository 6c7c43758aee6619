package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"legal-ocr-server/internal/domain"
)

// StructureExtractor derives a StructuredPublication from corrected text.
// Pure function of the text plus "today" for the date fallback; absence of a
// signal yields a documented default, never an error.
type StructureExtractor struct {
	logger domain.Logger
	now    func() time.Time
}

// NewStructureExtractor creates a structure extractor.
func NewStructureExtractor(logger domain.Logger) *StructureExtractor {
	return &StructureExtractor{
		logger: logger,
		now:    time.Now,
	}
}

// ---------------------------------------------------------------------------
// Document type rules
// ---------------------------------------------------------------------------

// typeRule binds a document type to its bilingual detection patterns.
// Patterns carrying a capture group also provide the official number.
// The family whose earliest match starts first in the text wins: a
// document's own headline precedes the instruments its preamble cites
// ("Vu la loi n° ..."). Table order only breaks ties. The tables are data:
// Algerian legal terminology grows over time.
type typeRule struct {
	docType  domain.DocumentType
	patterns []*regexp.Regexp
}

const refNumber = `(\d{1,3}[-/]\d{1,3})`

var typeRules = []typeRule{
	{domain.DocumentTypeLaw, compileAll(
		`(?i)loi\s+n[°º]?\s*`+refNumber,
		`قانون\s+رقم\s*`+refNumber,
		`(?i)\bloi\b`,
		`قانون`,
	)},
	{domain.DocumentTypeDecree, compileAll(
		`(?i)décret\s+(?:exécutif\s+|présidentiel\s+|législatif\s+)?n[°º]?\s*`+refNumber,
		`مرسوم\s+(?:تنفيذي\s+|رئاسي\s+|تشريعي\s+)?رقم\s*`+refNumber,
		`(?i)\bdécret\b`,
		`مرسوم`,
	)},
	{domain.DocumentTypeOrder, compileAll(
		`(?i)arrêté\s+(?:interministériel\s+|ministériel\s+)?n[°º]?\s*`+refNumber,
		`قرار\s+(?:وزاري\s+)?(?:مشترك\s+)?رقم\s*`+refNumber,
		`(?i)\barrêté\b`,
		`قرار`,
	)},
	{domain.DocumentTypeOrdinance, compileAll(
		`(?i)ordonnance\s+n[°º]?\s*`+refNumber,
		`أمر\s+رقم\s*`+refNumber,
		`(?i)\bordonnance\b`,
	)},
	{domain.DocumentTypeInstruction, compileAll(
		`(?i)instruction\s+n[°º]?\s*`+refNumber,
		`تعليمة\s+رقم\s*`+refNumber,
		`(?i)\binstruction\b`,
		`تعليمة`,
	)},
	{domain.DocumentTypeCircular, compileAll(
		`(?i)circulaire\s+n[°º]?\s*`+refNumber,
		`منشور\s+رقم\s*`+refNumber,
		`(?i)\bcirculaire\b`,
		`منشور`,
	)},
	{domain.DocumentTypeDecision, compileAll(
		`(?i)décision\s+n[°º]?\s*`+refNumber,
		`مقرر\s+رقم\s*`+refNumber,
		`(?i)\bdécision\b`,
		`مقرر`,
	)},
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// DetectDocumentType classifies text against the ordered type table;
// no match yields DocumentTypeOther.
func DetectDocumentType(text string) domain.DocumentType {
	docType, _, _ := detectTypeAndNumber(text)
	return docType
}

// detectTypeAndNumber returns the winning type, its official number when a
// numbered pattern of the same family fires, and the offset of the captured
// number. The winner is the family with the smallest earliest-match offset;
// on a tie the table order decides.
func detectTypeAndNumber(text string) (domain.DocumentType, string, int) {
	winType := domain.DocumentTypeOther
	winNumber := ""
	winNumberOff := -1
	winOff := -1

	for _, rule := range typeRules {
		familyOff := -1
		number := ""
		numberOff := -1
		for _, p := range rule.patterns {
			loc := p.FindStringSubmatchIndex(text)
			if loc == nil {
				continue
			}
			if familyOff < 0 || loc[0] < familyOff {
				familyOff = loc[0]
			}
			// Numbered patterns precede the bare keywords in each family;
			// the first capture is the headline number.
			if number == "" && len(loc) >= 4 && loc[2] >= 0 {
				number = text[loc[2]:loc[3]]
				numberOff = loc[2]
			}
		}
		if familyOff < 0 {
			continue
		}
		if winOff < 0 || familyOff < winOff {
			winType = rule.docType
			winNumber = number
			winNumberOff = numberOff
			winOff = familyOff
		}
	}
	return winType, winNumber, winNumberOff
}

// ---------------------------------------------------------------------------
// Date rules
// ---------------------------------------------------------------------------

var frenchMonths = map[string]int{
	"janvier": 1, "février": 2, "fevrier": 2, "mars": 3, "avril": 4,
	"mai": 5, "juin": 6, "juillet": 7, "août": 8, "aout": 8,
	"septembre": 9, "octobre": 10, "novembre": 11, "décembre": 12, "decembre": 12,
}

// Algerian French-derived month names plus the standard Arabic set.
var arabicMonths = map[string]int{
	"جانفي": 1, "يناير": 1,
	"فيفري": 2, "فبراير": 2,
	"مارس": 3,
	"أفريل": 4, "أبريل": 4,
	"ماي": 5, "مايو": 5,
	"جوان": 6, "يونيو": 6,
	"جويلية": 7, "يوليو": 7,
	"أوت": 8, "أغسطس": 8,
	"سبتمبر": 9,
	"أكتوبر": 10,
	"نوفمبر": 11,
	"ديسمبر": 12,
}

var hijriMonths = map[string]int{
	"محرم": 1, "صفر": 2,
	"ربيع الأول": 3, "ربيع الثاني": 4,
	"جمادى الأولى": 5, "جمادى الثانية": 6,
	"رجب": 7, "شعبان": 8, "رمضان": 9, "شوال": 10,
	"ذي القعدة": 11, "ذو القعدة": 11,
	"ذي الحجة": 12, "ذو الحجة": 12,
}

func monthAlternation(m map[string]int) string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	// Longer names first so "ربيع الأول" wins over a would-be prefix.
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			if len(names[j]) > len(names[i]) {
				names[i], names[j] = names[j], names[i]
			}
		}
	}
	return strings.Join(names, "|")
}

// dateRule is one entry of the ordered date-pattern list; first match wins.
type dateRule struct {
	re    *regexp.Regexp
	build func(m []string) (string, bool)
}

var dateRules = buildDateRules()

func buildDateRules() []dateRule {
	frAlt := monthAlternation(frenchMonths)
	arAlt := monthAlternation(arabicMonths)
	hijriAlt := monthAlternation(hijriMonths)

	numericDMY := func(m []string) (string, bool) {
		return normalizeDMY(m[1], m[2], m[3])
	}
	spelledFR := func(m []string) (string, bool) {
		month, ok := frenchMonths[strings.ToLower(m[2])]
		if !ok {
			return "", false
		}
		return normalizeDMY(m[1], strconv.Itoa(month), m[3])
	}
	spelledAR := func(m []string) (string, bool) {
		month, ok := arabicMonths[m[2]]
		if !ok {
			return "", false
		}
		return normalizeDMY(m[1], strconv.Itoa(month), m[3])
	}
	spelledHijri := func(m []string) (string, bool) {
		month, ok := hijriMonths[m[2]]
		if !ok {
			return "", false
		}
		return normalizeDMY(m[1], strconv.Itoa(month), m[3])
	}

	return []dateRule{
		// Gregorian numeric, day first then ISO order.
		{regexp.MustCompile(`(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{4})`), numericDMY},
		{regexp.MustCompile(`(\d{4})[/.\-](\d{1,2})[/.\-](\d{1,2})`), func(m []string) (string, bool) {
			return normalizeDMY(m[3], m[2], m[1])
		}},
		// Gregorian spelled-month French.
		{regexp.MustCompile(`(?i)(\d{1,2})(?:er)?\s+(` + frAlt + `)\s+(\d{4})`), spelledFR},
		// Hijri spelled-month Arabic. The year is kept as printed: the
		// source is a pattern table, not a calendar converter.
		{regexp.MustCompile(`(\d{1,2})\s+(` + hijriAlt + `)\s+عام\s+(\d{3,4})`), spelledHijri},
		// Arabic correspondence phrasings carrying the Gregorian equivalent.
		{regexp.MustCompile(`الموافق\s+(?:ل|لـ)?\s*(\d{1,2})\s+(` + arAlt + `)\s+(?:سنة\s+)?(\d{4})`), spelledAR},
		{regexp.MustCompile(`المؤرخ\s+في\s+(\d{1,2})\s+(` + arAlt + `)\s+(?:سنة\s+)?(\d{4})`), spelledAR},
	}
}

func normalizeDMY(day, month, year string) (string, bool) {
	d, err := strconv.Atoi(day)
	if err != nil {
		return "", false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return "", false
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return "", false
	}
	return fmt.Sprintf("%s-%02d-%02d", year, m, d), true
}

// extractDate scans the ordered date rules; the first plausible hit wins.
// No match yields today's date, which the confidence scorer treats as a
// missing signal.
func (s *StructureExtractor) extractDate(text string) (date, raw string, offset int) {
	for _, rule := range dateRules {
		for _, loc := range rule.re.FindAllStringSubmatchIndex(text, -1) {
			m := submatches(text, loc)
			normalized, ok := rule.build(m)
			if !ok {
				continue
			}
			return normalized, text[loc[0]:loc[1]], loc[0]
		}
	}
	return s.now().Format("2006-01-02"), "", -1
}

func submatches(text string, loc []int) []string {
	m := make([]string, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] >= 0 {
			m[i/2] = text[loc[i]:loc[i+1]]
		}
	}
	return m
}

// ---------------------------------------------------------------------------
// Institution, wilaya and sector rules
// ---------------------------------------------------------------------------

var institutionRules = compileAll(
	`(?i)minist[èe]re\s+[^,;.\n]{3,60}`,
	`وزارة\s+[^،؛.\n]{2,60}`,
	`(?i)présidence\s+de\s+la\s+république`,
	`رئاسة\s+الجمهورية`,
	`(?i)premier\s+minist(?:re|ère)`,
	`الوزير\s+الأول`,
	`(?i)wali\s+de\s+la\s+wilaya\s+(?:de\s+|d')?[^,;.\n]{2,40}`,
	`والي\s+ولاية\s+[^،؛.\n]{2,40}`,
	`(?i)direction\s+[^,;.\n]{3,60}`,
	`مديرية\s+[^،؛.\n]{2,60}`,
	`(?i)assemblée\s+populaire\s+communale[^,;.\n]{0,40}`,
	`المجلس\s+الشعبي\s+البلدي[^،؛.\n]{0,40}`,
)

func extractInstitution(text string) (string, int) {
	for _, p := range institutionRules {
		if loc := p.FindStringIndex(text); loc != nil {
			value := strings.TrimRight(strings.TrimSpace(text[loc[0]:loc[1]]), " .,;،؛:")
			return value, loc[0]
		}
	}
	return domain.DefaultInstitution, -1
}

var wilayaRules = []*regexp.Regexp{
	regexp.MustCompile(`[Ww]ilaya\s+(?:de\s+|d')\s*([A-ZÀ-Ý][A-Za-zà-ÿ'-]*(?:\s+[A-ZÀ-Ý][A-Za-zà-ÿ'-]*)*)`),
	regexp.MustCompile(`ولاية\s+([\p{Arabic}]+(?:\s+[\p{Arabic}]+)?)`),
}

func extractWilaya(text string) (string, int) {
	for _, p := range wilayaRules {
		if loc := p.FindStringSubmatchIndex(text); loc != nil {
			value := strings.TrimRight(strings.TrimSpace(text[loc[2]:loc[3]]), " .,;،؛:'-")
			return value, loc[2]
		}
	}
	return "", -1
}

// sectorRule maps bilingual keywords to a canonical sector label.
var sectorRules = []struct {
	keywords []string
	sector   string
}{
	{[]string{"justice", "العدل", "العدالة"}, "Justice"},
	{[]string{"éducation", "education", "التربية", "التعليم"}, "Éducation"},
	{[]string{"santé", "sante", "الصحة"}, "Santé"},
	{[]string{"finances", "المالية"}, "Finances"},
	{[]string{"agriculture", "الفلاحة"}, "Agriculture"},
	{[]string{"commerce", "التجارة"}, "Commerce"},
	{[]string{"transport", "النقل"}, "Transports"},
	{[]string{"énergie", "energie", "الطاقة"}, "Énergie"},
	{[]string{"habitat", "urbanisme", "السكن", "العمران"}, "Habitat"},
	{[]string{"intérieur", "interieur", "الداخلية"}, "Intérieur"},
	{[]string{"travail", "العمل"}, "Travail"},
}

func extractSector(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range sectorRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.sector
			}
		}
	}
	return ""
}

// ---------------------------------------------------------------------------
// Reference rules
// ---------------------------------------------------------------------------

// Unlike type detection, reference extraction collects every hit across the
// whole text.
var referenceRules = compileAll(
	`(?i)loi\s+n[°º]?\s*`+refNumber,
	`(?i)ordonnance\s+n[°º]?\s*`+refNumber,
	`(?i)décret\s+(?:exécutif\s+|présidentiel\s+|législatif\s+)?n[°º]?\s*`+refNumber,
	`(?i)arrêté\s+(?:interministériel\s+|ministériel\s+)?n[°º]?\s*`+refNumber,
	`قانون\s+رقم\s*`+refNumber,
	`أمر\s+رقم\s*`+refNumber,
	`مرسوم\s+(?:تنفيذي\s+|رئاسي\s+)?رقم\s*`+refNumber,
	`قرار\s+(?:وزاري\s+)?(?:مشترك\s+)?رقم\s*`+refNumber,
	`(?i)journal\s+officiel[^,\n]{0,40}?n[°º]?\s*(\d{1,3})`,
	`الجريدة\s+الرسمية\s+(?:عدد|رقم)\s*(\d{1,3})`,
	`(?i)article\s+(\d{1,3})\s+(?:de\s+la\s+loi|du\s+décret|de\s+l'ordonnance)`,
	`المادة\s+(\d{1,3})\s+من\s+(?:القانون|المرسوم|الأمر)`,
)

const referenceConfidence = 0.8
const referenceContextRadius = 100

// refTypeFromText re-derives the reference sub-type from the matched text's
// own content.
func refTypeFromText(match string) domain.DocumentType {
	lower := strings.ToLower(match)
	switch {
	case strings.Contains(lower, "loi") || strings.Contains(match, "قانون") || strings.Contains(match, "القانون"):
		return domain.DocumentTypeLaw
	case strings.Contains(lower, "ordonnance") || strings.Contains(match, "أمر") || strings.Contains(match, "الأمر"):
		return domain.DocumentTypeOrdinance
	case strings.Contains(lower, "décret") || strings.Contains(match, "مرسوم") || strings.Contains(match, "المرسوم"):
		return domain.DocumentTypeDecree
	case strings.Contains(lower, "arrêté") || strings.Contains(match, "قرار"):
		return domain.DocumentTypeOrder
	default:
		return domain.DocumentTypeOther
	}
}

// referenceMatch pairs a reference with the span of its match, so the
// derived entity can point back into the text.
type referenceMatch struct {
	ref   domain.LegalReference
	start int
	end   int
}

func extractReferences(text string) []referenceMatch {
	var refs []referenceMatch
	for _, p := range referenceRules {
		for _, loc := range p.FindAllStringSubmatchIndex(text, -1) {
			match := text[loc[0]:loc[1]]
			number := ""
			if len(loc) >= 4 && loc[2] >= 0 {
				number = text[loc[2]:loc[3]]
			}
			refs = append(refs, referenceMatch{
				ref: domain.LegalReference{
					Type:       refTypeFromText(match),
					Number:     number,
					Context:    contextAround(text, loc[0], loc[1]),
					Confidence: referenceConfidence,
				},
				start: loc[0],
				end:   loc[1],
			})
		}
	}
	return refs
}

// contextAround returns up to referenceContextRadius bytes on each side of a
// match, snapped to rune boundaries.
func contextAround(text string, start, end int) string {
	lo := start - referenceContextRadius
	if lo < 0 {
		lo = 0
	}
	for lo > 0 && !utf8.RuneStart(text[lo]) {
		lo--
	}
	hi := end + referenceContextRadius
	if hi > len(text) {
		hi = len(text)
	}
	for hi < len(text) && !utf8.RuneStart(text[hi]) {
		hi++
	}
	return strings.TrimSpace(text[lo:hi])
}

// ---------------------------------------------------------------------------
// Articles
// ---------------------------------------------------------------------------

var (
	reArticleFR = regexp.MustCompile(`(?i)^\s*(?:article|art\.?)\s+(premier|\d+(?:\s*(?:bis|ter))?)\s*[:.\-–—]?\s*(.*)$`)
	reArticleAR = regexp.MustCompile(`^\s*(?:المادة|م\.)\s*:?\s*(الأولى|\d+(?:\s*مكرر)?)\s*[:.\-–—]?\s*(.*)$`)
)

const inlineTitleMaxRunes = 80

func articleStart(line string) (number, rest string, ok bool) {
	for _, p := range []*regexp.Regexp{reArticleFR, reArticleAR} {
		if m := p.FindStringSubmatch(line); m != nil {
			number = strings.TrimSpace(m[1])
			switch number {
			case "premier", "الأولى":
				number = "1"
			}
			return number, strings.TrimSpace(m[2]), true
		}
	}
	return "", "", false
}

// extractArticles scans line by line for article starts; an article's body is
// every subsequent line up to the next start, joined with single spaces.
func extractArticles(text string) []domain.Article {
	var articles []domain.Article
	var current *domain.Article
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, " "))
		articles = append(articles, *current)
		current = nil
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if number, rest, ok := articleStart(line); ok {
			flush()
			current = &domain.Article{Number: number}
			if rest != "" {
				if utf8.RuneCountInString(rest) <= inlineTitleMaxRunes {
					current.Title = rest
				} else {
					body = append(body, rest)
				}
			}
			continue
		}
		if current != nil {
			trimmed := strings.TrimSpace(line)
			if trimmed != "" {
				body = append(body, trimmed)
			}
		}
	}
	flush()
	return articles
}

// ---------------------------------------------------------------------------
// Entities
// ---------------------------------------------------------------------------

var (
	reAmount = regexp.MustCompile(`(?i)(\d[\d .,]{0,15}\d|\d)\s*(?:da\b|dinars?\b|دج|دينار(?:\s+جزائري)?)`)
	// Two consecutive capitalized Latin words: a weak, noisy person-name
	// signal.
	rePerson = regexp.MustCompile(`(^|[\s,;:(])([A-ZÀ-Ý][a-zà-ÿ]{2,}\s+[A-ZÀ-Ý][a-zà-ÿ]{2,})`)
)

const (
	amountConfidence = 0.9
	personConfidence = 0.6
)

func extractValueEntities(text string) []domain.DetectedEntity {
	var entities []domain.DetectedEntity
	for _, loc := range reAmount.FindAllStringSubmatchIndex(text, -1) {
		entities = append(entities, domain.DetectedEntity{
			Type:       domain.EntityAmount,
			Value:      text[loc[0]:loc[1]],
			Context:    contextAround(text, loc[0], loc[1]),
			Confidence: amountConfidence,
			Start:      loc[0],
			End:        loc[1],
		})
	}
	for _, loc := range rePerson.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[4], loc[5]
		entities = append(entities, domain.DetectedEntity{
			Type:       domain.EntityPerson,
			Value:      text[start:end],
			Context:    contextAround(text, start, end),
			Confidence: personConfidence,
			Start:      start,
			End:        end,
		})
	}
	return entities
}

// ---------------------------------------------------------------------------
// Title
// ---------------------------------------------------------------------------

// Lines carrying these markers describe what the instrument enacts; such a
// line makes a better title than the letterhead.
var titleMarkers = []string{
	"portant", "relatif", "relative", "fixant", "modifiant", "complétant",
	"يتضمن", "المتضمن", "يتعلق", "المتعلق", "يحدد", "المحدد", "يعدل",
}

func extractTitle(text string) string {
	var firstLine string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "---") {
			continue
		}
		if firstLine == "" {
			firstLine = trimmed
		}
		lower := strings.ToLower(trimmed)
		for _, marker := range titleMarkers {
			if strings.Contains(lower, marker) {
				return trimmed
			}
		}
	}
	if firstLine != "" {
		return firstLine
	}
	return domain.DefaultTitle
}

// ---------------------------------------------------------------------------
// Confidence scorer
// ---------------------------------------------------------------------------

// ScorePublication combines presence/absence of the structural elements into
// one scalar in [0,1]. Additive: title+number 0.3, plausible date 0.2,
// institution 0.2, at least one reference 0.15, at least one article 0.15,
// capped at 1.0. A date equal to today is indistinguishable from the
// fallback and counts as absent.
func ScorePublication(title, number, date, institution string, references, articles int, today string) float64 {
	score := 0.0
	if title != "" && title != domain.DefaultTitle && number != "" {
		score += 0.3
	}
	if date != "" && date != today {
		score += 0.2
	}
	if institution != "" && institution != domain.DefaultInstitution {
		score += 0.2
	}
	if references > 0 {
		score += 0.15
	}
	if articles > 0 {
		score += 0.15
	}
	if score > 1.0 {
		score = 1.0
	}
	return score
}

// ---------------------------------------------------------------------------
// Structure
// ---------------------------------------------------------------------------

// Structure derives the legally-structured view of the extracted text.
func (s *StructureExtractor) Structure(text string) *domain.StructuredPublication {
	now := s.now()
	today := now.Format("2006-01-02")

	docType, number, numberOffset := detectTypeAndNumber(text)
	title := extractTitle(text)
	date, rawDate, dateOffset := s.extractDate(text)
	institution, instOffset := extractInstitution(text)
	wilaya, wilayaOffset := extractWilaya(text)
	sector := extractSector(text)
	refMatches := extractReferences(text)
	articles := extractArticles(text)

	var references []domain.LegalReference
	for _, m := range refMatches {
		references = append(references, m.ref)
	}

	entities := extractValueEntities(text)
	if number != "" && numberOffset >= 0 {
		entities = append(entities, domain.DetectedEntity{
			Type:       domain.EntityNumber,
			Value:      number,
			Context:    contextAround(text, numberOffset, numberOffset+len(number)),
			Confidence: 0.9,
			Start:      numberOffset,
			End:        numberOffset + len(number),
		})
	}
	if rawDate != "" && dateOffset >= 0 {
		entities = append(entities, domain.DetectedEntity{
			Type:       domain.EntityDate,
			Value:      rawDate,
			Context:    contextAround(text, dateOffset, dateOffset+len(rawDate)),
			Confidence: 0.85,
			Start:      dateOffset,
			End:        dateOffset + len(rawDate),
		})
	}
	if institution != domain.DefaultInstitution && instOffset >= 0 {
		entities = append(entities, domain.DetectedEntity{
			Type:       domain.EntityInstitution,
			Value:      institution,
			Context:    contextAround(text, instOffset, instOffset+len(institution)),
			Confidence: 0.8,
			Start:      instOffset,
			End:        instOffset + len(institution),
		})
	}
	if wilaya != "" && wilayaOffset >= 0 {
		entities = append(entities, domain.DetectedEntity{
			Type:       domain.EntityPlace,
			Value:      wilaya,
			Context:    contextAround(text, wilayaOffset, wilayaOffset+len(wilaya)),
			Confidence: 0.7,
			Start:      wilayaOffset,
			End:        wilayaOffset + len(wilaya),
		})
	}
	for _, m := range refMatches {
		entities = append(entities, domain.DetectedEntity{
			Type:       domain.EntityReference,
			Value:      m.ref.Number,
			Context:    m.ref.Context,
			Confidence: m.ref.Confidence,
			Start:      m.start,
			End:        m.end,
		})
	}

	confidence := ScorePublication(title, number, date, institution, len(references), len(articles), today)

	return &domain.StructuredPublication{
		Title:       title,
		Number:      number,
		Date:        date,
		Type:        docType,
		Institution: institution,
		Wilaya:      wilaya,
		Sector:      sector,
		References:  references,
		Articles:    articles,
		Metadata: domain.PublicationMetadata{
			Language:    ClassifyScript(text).Dominant,
			WordCount:   len(strings.Fields(text)),
			ProcessedAt: now,
			Confidence:  confidence,
			Entities:    entities,
		},
	}
}
