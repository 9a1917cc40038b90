package services

import (
	"regexp"
	"strings"
)

// ValidationError carries field-level detail for malformed input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

var emailPattern = regexp.MustCompile("^[A-Za-z0-9!#$%&'*+/=?^_`{|}~.\\-]+@[A-Za-z0-9.\\-]+\\.[A-Za-z]{2,}$")

// ValidEmail applies the strict local@domain check used for invites: no
// spaces, no leading/trailing/double dots on either side, and a
// top-level domain label of at least two letters.
func ValidEmail(email string) bool {
	if email == "" || len(email) > 254 {
		return false
	}
	if !emailPattern.MatchString(email) {
		return false
	}

	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return false
	}
	for _, part := range []string{local, domain} {
		if strings.HasPrefix(part, ".") || strings.HasSuffix(part, ".") || strings.Contains(part, "..") {
			return false
		}
	}
	return true
}
