// Package params validates request parameters before any store access.
//
// Validation never panics and never returns a Go error: every check yields a
// [Result] tagged OK, Missing or Invalid. Missing maps to HTTP 400 and Invalid
// to HTTP 404.
package params

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Kind tags the outcome of a validation.
type Kind int

const (
	// OK means the parameter passed every check.
	OK Kind = iota
	// Missing means a required parameter was absent from the request.
	Missing
	// Invalid means a parameter was present but failed a length or format check.
	Invalid
)

func (k Kind) String() string {
	switch k {
	case OK:
		return "ok"
	case Missing:
		return "missing"
	case Invalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Result is the outcome of validating one endpoint's parameters.
type Result struct {
	Kind    Kind
	Message string
}

// OK reports whether validation passed.
func (r Result) OK() bool { return r.Kind == OK }

// StatusCode is the HTTP status to answer with. It is 200 for OK results.
func (r Result) StatusCode() int {
	switch r.Kind {
	case Missing:
		return http.StatusBadRequest
	case Invalid:
		return http.StatusNotFound
	default:
		return http.StatusOK
	}
}

func ok() Result                      { return Result{Kind: OK} }
func missing(message string) Result   { return Result{Kind: Missing, Message: message} }
func invalid(message string) Result   { return Result{Kind: Invalid, Message: message} }
func requiredPath(name string) Result { return missing("Path parameter " + name + " is required") }

// Length bounds per field.
const (
	MaxDateLen = 500
	MaxShowLen = 500
	MaxYearLen = 4
)

// DateLayout is the only accepted date format.
const DateLayout = "2006-01-02"

// Path and query parameter names.
const (
	NightParam     = "night"
	YearParam      = "year"
	ShowParam      = "show"
	StartDateParam = "startDate"
	EndDateParam   = "endDate"
)

// Field rules, applied with validator.Var. number admits ASCII digits only,
// unlike numeric which also takes a sign.
var (
	dateRule = "max=" + strconv.Itoa(MaxDateLen) + ",datetime=" + DateLayout
	yearRule = "max=" + strconv.Itoa(MaxYearLen) + ",number"
	showRule = "required,max=" + strconv.Itoa(MaxShowLen) + ",ascii"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseDate parses s in YYYY-MM-DD form. Any other separator, a partial date,
// or an out-of-range month or day fails.
func ParseDate(s string) (time.Time, bool) {
	if validate.Var(s, dateRule) != nil {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsDate reports whether s is a valid YYYY-MM-DD date.
func IsDate(s string) bool {
	_, valid := ParseDate(s)
	return valid
}

// IsYear reports whether s is one to four decimal digits. No range check is made.
func IsYear(s string) bool {
	return validate.Var(s, yearRule) == nil
}

// IsShowName reports whether s is a non-empty ASCII string of at most
// MaxShowLen characters. Punctuation is allowed.
func IsShowName(s string) bool {
	return validate.Var(s, showRule) == nil
}

// Night validates the night path parameter.
func Night(pathParams map[string]string) Result {
	night, found := pathParams[NightParam]
	if !found {
		return requiredPath(NightParam)
	}
	if !IsDate(night) {
		return invalid("Invalid night path parameter, must be in YYYY-MM-DD format")
	}
	return ok()
}

// Year validates the year path parameter and returns its numeric value.
// The year is only meaningful when the Result is OK.
func Year(pathParams map[string]string) (Result, int) {
	raw, found := pathParams[YearParam]
	if !found {
		return requiredPath(YearParam), 0
	}
	if !IsYear(raw) {
		return invalid("Invalid year path parameter, must be numeric"), 0
	}
	year, err := strconv.Atoi(raw)
	if err != nil {
		return invalid("Invalid year path parameter, must be numeric"), 0
	}
	return ok(), year
}

// Show validates the show path parameter.
func Show(pathParams map[string]string) Result {
	show, found := pathParams[ShowParam]
	if !found {
		return requiredPath(ShowParam)
	}
	if !IsShowName(show) {
		return invalid("Invalid show path parameter, must be ascii and at most 500 characters")
	}
	return ok()
}

// Range is a validated, inclusive date range.
type Range struct {
	Start time.Time
	End   time.Time
}

// StartString returns Start as YYYY-MM-DD.
func (r Range) StartString() string { return r.Start.Format(DateLayout) }

// EndString returns End as YYYY-MM-DD.
func (r Range) EndString() string { return r.End.Format(DateLayout) }

// DateRange validates the startDate and endDate query parameters. Both must
// be present, both must be valid dates, and startDate must not be after endDate.
// The returned Range is only meaningful when the Result is OK.
func DateRange(queryParams map[string]string) (Result, Range) {
	rawStart, hasStart := queryParams[StartDateParam]
	rawEnd, hasEnd := queryParams[EndDateParam]
	if !hasStart || !hasEnd {
		return missing("Query parameters startDate and endDate are required"), Range{}
	}

	start, startValid := ParseDate(rawStart)
	end, endValid := ParseDate(rawEnd)
	if !startValid {
		return invalid("startDate parameter not in YYYY-MM-DD format"), Range{}
	}
	if !endValid {
		return invalid("endDate parameter not in YYYY-MM-DD format"), Range{}
	}
	if start.After(end) {
		return invalid("startDate must be less than or equal to endDate"), Range{}
	}

	return ok(), Range{Start: start, End: end}
}
