package usecase

import (
	"encoding/json"
	"regexp"

	"github.com/puntoventa/backend/internal/domain"
)

// Compiled regex patterns for structured extraction
var (
	arrayPattern  = regexp.MustCompile(`(?s)\[.*?\]`)
	objectPattern = regexp.MustCompile(`(?s)\{.*?\}`)
)

// ExtractRecords locates and parses structured records in sanitized model
// output. It first attempts a strict parse of the array-shaped substring;
// when that fails it falls back to scanning for independent object fragments,
// because models sometimes emit top-level objects without an enclosing array.
// It never fails: unparseable input yields ParseResult{Found: false}.
func ExtractRecords(text string) domain.ParseResult {
	if m := arrayPattern.FindString(text); m != "" {
		var records []domain.RawRecord
		if err := json.Unmarshal([]byte(m), &records); err == nil {
			return domain.ParseResult{Records: records, Found: true}
		}
	}

	// Fallback: parse each {...} fragment independently, discarding any
	// that is not a valid object
	var records []domain.RawRecord
	for _, frag := range objectPattern.FindAllString(text, -1) {
		var rec domain.RawRecord
		if err := json.Unmarshal([]byte(frag), &rec); err == nil {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return domain.ParseResult{}
	}
	return domain.ParseResult{Records: records, Found: true}
}
