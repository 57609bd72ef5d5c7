// Package validation holds the pure per-field checks and the age/date
// cross-field rule applied to every profile submission. Functions that depend
// on the current time take it as an explicit parameter so callers control the
// clock.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"PROFILEHUB_BACK-END/internal/models"
)

const (
	// MinAge and MaxAge bound the accepted age range, inclusive.
	MinAge = 1
	MaxAge = 120

	// PhoneDigits is the exact number of digits a phone number must contain
	// after formatting characters are stripped.
	PhoneDigits = 10

	dateLayout = "2006-01-02"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Result pairs a validity flag with a user-facing message for the failing case.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result {
	return Result{Valid: true}
}

func fail(msg string) Result {
	return Result{Valid: false, Message: msg}
}

// Name requires a non-empty value of at least two characters after trimming.
func Name(value string) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fail("Name is required")
	}
	if len([]rune(trimmed)) < 2 {
		return fail("Name must be at least 2 characters")
	}
	return ok()
}

// Age accepts the raw form value; it must parse as an integer in [1,120].
func Age(value string) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fail("Age is required")
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return fail("Age must be a whole number")
	}
	return AgeValue(n)
}

// AgeValue validates an already-parsed age.
func AgeValue(age int) Result {
	if age < MinAge || age > MaxAge {
		return fail(fmt.Sprintf("Age must be between %d and %d", MinAge, MaxAge))
	}
	return ok()
}

// Email checks address syntax only; deliverability is the mailcheck client's job.
func Email(value string) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fail("Email is required")
	}
	if !emailPattern.MatchString(trimmed) {
		return fail("Email address is not valid")
	}
	return ok()
}

// Phone strips spaces, dashes and parentheses, then requires exactly ten digits.
func Phone(value string) Result {
	if strings.TrimSpace(value) == "" {
		return fail("Phone number is required")
	}
	stripped := stripPhoneFormatting(value)
	if len(stripped) != PhoneDigits {
		return fail(fmt.Sprintf("Phone number must contain exactly %d digits", PhoneDigits))
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return fail(fmt.Sprintf("Phone number must contain exactly %d digits", PhoneDigits))
		}
	}
	return ok()
}

func stripPhoneFormatting(value string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, value)
}

// ParseDate parses a calendar date in "YYYY-MM-DD" or RFC3339 form.
func ParseDate(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if t, err := time.Parse(dateLayout, trimmed); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, trimmed)
}

// DateOfBirth requires a parseable date strictly earlier than now.
func DateOfBirth(value string, now time.Time) Result {
	if strings.TrimSpace(value) == "" {
		return fail("Date of birth is required")
	}
	dob, err := ParseDate(value)
	if err != nil {
		return fail("Date of birth must be a valid date")
	}
	return DateOfBirthValue(dob, now)
}

// DateOfBirthValue validates an already-parsed date of birth.
func DateOfBirthValue(dob time.Time, now time.Time) Result {
	if !dob.Before(now) {
		return fail("Date of birth must be in the past")
	}
	return ok()
}

// Gender requires membership in the fixed enum.
func Gender(value string) Result {
	if strings.TrimSpace(value) == "" {
		return fail("Gender is required")
	}
	for _, g := range models.Genders {
		if value == g {
			return ok()
		}
	}
	return fail("Gender must be Male, Female or Other")
}

// WholeYears returns the number of complete calendar years between dob and now.
// The year count is decremented when the birthday has not yet occurred in the
// current year.
func WholeYears(dob, now time.Time) int {
	years := now.Year() - dob.Year()
	if dob.AddDate(years, 0, 0).After(now) {
		years--
	}
	return years
}

// AgeDateAgreement is the cross-field rule: the declared age must equal the
// whole-year difference between the date of birth and now. It must be
// re-evaluated whenever either input changes, independent of the individual
// field checks.
func AgeDateAgreement(age int, dob, now time.Time) Result {
	computed := WholeYears(dob, now)
	if age != computed {
		return fail(fmt.Sprintf("Age does not match date of birth (expected %d)", computed))
	}
	return ok()
}

// Profile runs every field check plus the cross-field rule against a complete
// profile and returns the first failure.
func Profile(p *models.Profile, now time.Time) Result {
	if res := Name(p.Name); !res.Valid {
		return res
	}
	if res := AgeValue(p.Age); !res.Valid {
		return res
	}
	if res := Email(p.Email); !res.Valid {
		return res
	}
	if res := Phone(p.PhoneNumber); !res.Valid {
		return res
	}
	if res := DateOfBirthValue(p.DateOfBirth, now); !res.Valid {
		return res
	}
	if res := Gender(p.Gender); !res.Valid {
		return res
	}
	if res := AgeDateAgreement(p.Age, p.DateOfBirth, now); !res.Valid {
		return res
	}
	return ok()
}
