package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const maxCaseIDLength = 128

// caseIDRegex allows the characters of UUIDs, file-style names and
// record keys such as "ward-3:bed.12".
var caseIDRegex = regexp.MustCompile(`^[A-Za-z0-9._:\-]+$`)

// ValidateCaseID checks a batch case identifier supplied by the caller.
func ValidateCaseID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("case id cannot be empty")
	}

	if len(id) > maxCaseIDLength {
		return fmt.Errorf("case id too long: maximum %d characters", maxCaseIDLength)
	}

	if !caseIDRegex.MatchString(id) {
		return fmt.Errorf("case id contains invalid characters. Only letters, digits, periods, underscores, colons and hyphens are allowed")
	}

	if hasExcessiveRepetition(id) {
		return fmt.Errorf("case id contains excessive character repetition")
	}

	return nil
}

// hasExcessiveRepetition reports a character repeated more than 10
// times in a row.
func hasExcessiveRepetition(input string) bool {
	run := 1
	for i := 1; i < len(input); i++ {
		if input[i] == input[i-1] {
			run++
			if run > 10 {
				return true
			}
			continue
		}
		run = 1
	}
	return false
}
