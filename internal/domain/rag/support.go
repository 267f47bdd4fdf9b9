// User-support extraction: equipment references, video mentions, spare parts
// and troubleshooting steps pulled from the generated support answer. Same
// contract as the admin rules: pure functions, best-effort, capped.
package rag

import (
	"regexp"
	"strings"
)

const (
	maxEquipmentRefs = 3
	maxVideos        = 3
	maxSpareParts    = 3
	maxSteps         = 4

	// Bullet lines shorter than this are treated as noise, not steps.
	minStepLength = 10
)

var (
	equipmentRefRe = regexp.MustCompile(`\b[A-Za-z]{2,}-?\d{2,}[A-Za-z0-9]*(?:[-/][A-Za-z0-9]+)*\b`)
	videoKeywordRe = regexp.MustCompile(`(?i)\b(?:video|tutorial|guide|watch|demonstration)\b|\.mp4\b|youtube\.com|youtu\.be`)
	partLabelRe    = regexp.MustCompile(`(?i)part\s*(?:number|no\.?|#)\s*[:#]?\s*([A-Za-z0-9][A-Za-z0-9-]*)`)
	bulletRe       = regexp.MustCompile(`^\s*(?:\d+[.)]|\*|-)\s+(.*)$`)
)

// ExtractEquipmentRefs returns up to three distinct model/part identifiers;
// alphanumeric tokens with optional dash or slash separators.
func ExtractEquipmentRefs(text string) []string {
	var refs []string
	seen := make(map[string]bool)
	for _, m := range equipmentRefRe.FindAllString(text, -1) {
		if seen[m] {
			continue
		}
		seen[m] = true
		refs = append(refs, m)
		if len(refs) == maxEquipmentRefs {
			break
		}
	}
	return refs
}

// ExtractVideoMentions returns up to three sentences referring to a video,
// tutorial, guide or demonstration, or containing a media-file/URL fragment.
func ExtractVideoMentions(text string) []string {
	var mentions []string
	for _, sentence := range strings.Split(text, ".") {
		if !videoKeywordRe.MatchString(sentence) {
			continue
		}
		if trimmed := strings.TrimSpace(sentence); trimmed != "" {
			mentions = append(mentions, trimmed)
		}
		if len(mentions) == maxVideos {
			break
		}
	}
	return mentions
}

// ExtractSpareParts returns up to three explicitly labeled part numbers
// ("part number", "part no.", "part #"). A currency amount mentioned between
// the label and the end of the sentence becomes the part's price, normalized
// to the fixed currency.
func ExtractSpareParts(text string, cur Currency) []SparePart {
	var parts []SparePart
	for _, loc := range partLabelRe.FindAllStringSubmatchIndex(text, -1) {
		number := text[loc[2]:loc[3]]
		part := SparePart{PartNumber: number}

		rest := text[loc[1]:]
		if end := strings.IndexByte(rest, '.'); end >= 0 {
			rest = rest[:end]
		}
		if m := currencyRe.FindStringSubmatch(rest); m != nil {
			part.Price = cur.Normalize(m[2], m[1] == "$")
		}

		parts = append(parts, part)
		if len(parts) == maxSpareParts {
			break
		}
	}
	return parts
}

// ExtractTroubleshootingSteps returns up to four instructions from lines
// starting with a numeral-period, asterisk or hyphen bullet, renumbered
// sequentially in source order. Short bullet lines are skipped as noise.
func ExtractTroubleshootingSteps(text string) []TroubleshootingStep {
	var steps []TroubleshootingStep
	for _, line := range strings.Split(text, "\n") {
		m := bulletRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		instruction := strings.TrimSpace(m[1])
		if len(instruction) < minStepLength {
			continue
		}
		steps = append(steps, TroubleshootingStep{Step: len(steps) + 1, Instruction: instruction})
		if len(steps) == maxSteps {
			break
		}
	}
	return steps
}
