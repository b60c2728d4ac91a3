package intake

import "strings"

// legalKeywords is the acceptance vocabulary. An item passes the filter when
// its subject plus body contains at least minKeywordHits of these, or the
// sender address carries a law-firm domain fragment.
var legalKeywords = []string{
	"case", "claim", "accident", "injury", "medical records",
	"police report", "demand letter", "settlement", "litigation",
	"plaintiff", "defendant", "attorney", "lawyer", "law firm",
	"insurance", "liability", "damages", "auto accident",
	"slip and fall", "personal injury", "workers comp",
}

// lawFirmFragments mark a sender domain as a likely law practice.
var lawFirmFragments = []string{
	".law", "legal", "attorney", "lawyer", "esq", "lawfirm",
}

const minKeywordHits = 2

// IsLegalCase reports whether an inbound item looks like a legal case
// submission worth processing.
func IsLegalCase(subject, body, sender string) bool {
	content := strings.ToLower(subject + " " + body)

	hits := 0
	for _, kw := range legalKeywords {
		if strings.Contains(content, kw) {
			hits++
			if hits >= minKeywordHits {
				return true
			}
		}
	}

	senderLower := strings.ToLower(sender)
	for _, fragment := range lawFirmFragments {
		if strings.Contains(senderLower, fragment) {
			return true
		}
	}

	return false
}
