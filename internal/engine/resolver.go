package engine

import (
	"regexp"
	"sort"
	"strings"
)

// ResolutionStatus classifies the outcome of resolving a message target.
type ResolutionStatus int

const (
	// StatusResolved means the target matched a saved contact exactly or was
	// itself a phone number.
	StatusResolved ResolutionStatus = iota
	// StatusResolvedFuzzy means exactly one saved contact contained the
	// target as a substring; the caller should confirm before acting.
	StatusResolvedFuzzy
	// StatusAmbiguous means several contacts matched the target.
	StatusAmbiguous
	// StatusNotFound means nothing matched.
	StatusNotFound
)

// Resolution is the outcome of ResolveTarget.
type Resolution struct {
	Status     ResolutionStatus
	Name       string
	Phone      string
	Candidates []string
}

var phoneShapeRegex = regexp.MustCompile(`^\+?\d{10,15}$`)

// nonPhoneChars strips everything that is not a digit or a plus sign.
var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

// ResolveTarget maps a spoken target (a contact name, a fragment of one, or a
// raw phone number) onto a phone number using the saved contacts. It has no
// side effects; the dispatch layer renders the outcome as text.
//
// Resolution order: exact case-insensitive name match, then phone-number
// shape, then substring match over the contact names. A single substring
// match resolves with a confirmation hint; several matches are ambiguous.
func ResolveTarget(target string, contacts map[string]string) Resolution {
	for name, phone := range contacts {
		if strings.EqualFold(name, target) {
			return Resolution{Status: StatusResolved, Name: name, Phone: phone}
		}
	}

	cleaned := nonPhoneChars.ReplaceAllString(target, "")
	if phoneShapeRegex.MatchString(cleaned) {
		return Resolution{Status: StatusResolved, Name: cleaned, Phone: cleaned}
	}

	lowerTarget := strings.ToLower(target)
	var matches []string
	for name := range contacts {
		if strings.Contains(strings.ToLower(name), lowerTarget) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return Resolution{Status: StatusNotFound}
	case 1:
		return Resolution{
			Status: StatusResolvedFuzzy,
			Name:   matches[0],
			Phone:  contacts[matches[0]],
		}
	default:
		return Resolution{Status: StatusAmbiguous, Candidates: matches}
	}
}
