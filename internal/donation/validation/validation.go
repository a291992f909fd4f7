// Package validation implements the donor form's field rules.
//
// Validation is pure and synchronous: it never touches the network and is cheap enough
// to run on every edit. Every field is evaluated on every call, so a change to idType
// re-checks uniqueId even when uniqueId itself did not change.
package validation

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"

	"mealshare/internal/donation/models"
)

// Class groups failure reasons so clients can style or translate them.
type Class string

const (
	ClassRequired      Class = "required"
	ClassTooShort      Class = "too_short"
	ClassInvalidFormat Class = "invalid_format"
	ClassUnderage      Class = "underage"
	ClassMustAccept    Class = "must_accept"
)

// DateLayout is the calendar-date format of the dob field.
const DateLayout = "2006-01-02"

// MinimumAge is the youngest age allowed to donate.
const MinimumAge = 18

// FieldResult is the outcome for one field.
type FieldResult struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Class   Class  `json:"class,omitempty"`
}

// Result maps field name to its outcome.
type Result map[string]FieldResult

// Valid reports whether every field passed.
func (r Result) Valid() bool {
	for _, fr := range r {
		if !fr.Valid {
			return false
		}
	}
	return true
}

// Errors returns field -> message for failing fields only.
func (r Result) Errors() map[string]string {
	out := make(map[string]string)
	for field, fr := range r {
		if !fr.Valid {
			out[field] = fr.Message
		}
	}
	return out
}

// Field returns the outcome for name; ok is false when name was not evaluated.
func (r Result) Field(name string) (FieldResult, bool) {
	fr, ok := r[name]
	return fr, ok
}

// Merge copies other's entries into r.
func (r Result) Merge(other Result) Result {
	for field, fr := range other {
		r[field] = fr
	}
	return r
}

// idFormat is the document-specific shape of uniqueId.
type idFormat struct {
	pattern *regexp.Regexp
	message string
}

// idFormats selects the uniqueId pattern by document type. Adding a document type is a
// new entry here.
var idFormats = map[models.IDType]idFormat{
	models.IDTypePAN:            {regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`), "Invalid PAN format"},
	models.IDTypeAadhar:         {regexp.MustCompile(`^\d{12}$`), "Invalid Aadhar number"},
	models.IDTypeDrivingLicense: {regexp.MustCompile(`^[A-Z]{2}[0-9]{2}\d{11}$`), "Invalid Driving License format"},
	models.IDTypeVoterID:        {regexp.MustCompile(`^[A-Z]{3}[0-9]{7}$`), "Invalid Voter ID format"},
}

// IDTypes lists the supported document types.
func IDTypes() []models.IDType {
	return []models.IDType{models.IDTypePAN, models.IDTypeAadhar, models.IDTypeDrivingLicense, models.IDTypeVoterID}
}

var (
	mobilePattern  = regexp.MustCompile(`^[6-9]\d{9}$`)
	ifscPattern    = regexp.MustCompile(`^[A-Z]{4}0[A-Z0-9]{6}$`)
	accountPattern = regexp.MustCompile(`^\d{9,18}$`)
)

// check returns a failure class and message, or an empty class on success.
type check func(rec models.DonorRecord, today time.Time) (Class, string)

type fieldRule struct {
	field string
	check check
}

var recordRules = []fieldRule{
	{models.FieldFirstName, checkFirstName},
	{models.FieldLastName, required(func(r models.DonorRecord) string { return r.LastName }, "Last name is required")},
	{models.FieldEmail, checkEmail},
	{models.FieldMobile, matches(func(r models.DonorRecord) string { return r.Mobile }, "Mobile is required", mobilePattern, "Enter valid 10-digit mobile")},
	{models.FieldDOB, checkDOB},
	{models.FieldIDType, checkIDType},
	{models.FieldUniqueID, checkUniqueID},
	{models.FieldIFSC, matches(func(r models.DonorRecord) string { return r.IFSC }, "IFSC is required", ifscPattern, "Invalid IFSC Code")},
	{models.FieldBankName, required(func(r models.DonorRecord) string { return r.BankName }, "Bank name is required")},
	{models.FieldAccountNumber, matches(func(r models.DonorRecord) string { return r.AccountNumber }, "Account number is required", accountPattern, "Account number must be 9-18 digits")},
	{models.FieldAddress, required(func(r models.DonorRecord) string { return r.Address }, "Address is required")},
	{models.FieldPaymentMode, checkPaymentMode},
	{models.FieldDeclaration, checkDeclaration},
}

// Validate evaluates every record rule against rec as of today.
func Validate(rec models.DonorRecord, today time.Time) Result {
	result := make(Result, len(recordRules))
	for _, rule := range recordRules {
		result[rule.field] = run(rule.check, rec, today)
	}
	return result
}

// ValidateField evaluates a single record field. Unknown fields pass.
func ValidateField(rec models.DonorRecord, field string, today time.Time) FieldResult {
	for _, rule := range recordRules {
		if rule.field == field {
			return run(rule.check, rec, today)
		}
	}
	return FieldResult{Valid: true}
}

// ValidateTerms checks the frequency and amount selection.
func ValidateTerms(terms models.DonationTerms) Result {
	result := Result{
		models.FieldFrequency: {Valid: true},
		models.FieldAmount:    {Valid: true},
	}
	if !terms.Frequency.IsValid() {
		result[models.FieldFrequency] = FieldResult{Message: "Select a donation frequency", Class: ClassRequired}
		result[models.FieldAmount] = FieldResult{Message: "Select a donation amount", Class: ClassRequired}
		return result
	}

	switch {
	case terms.Amount == "":
		result[models.FieldAmount] = FieldResult{Message: "Select a donation amount", Class: ClassRequired}
	case terms.Amount == models.AmountOther:
		n, err := strconv.ParseInt(strings.TrimSpace(terms.CustomAmount), 10, 64)
		if err != nil || n <= 0 {
			result[models.FieldAmount] = FieldResult{Message: "Enter a valid amount", Class: ClassInvalidFormat}
		}
	case !models.IsPreset(terms.Frequency, terms.Amount):
		result[models.FieldAmount] = FieldResult{Message: "Select a donation amount", Class: ClassInvalidFormat}
	}
	return result
}

// Is18OrOlder reports whether someone born on dob counts as an adult on today.
//
// The check compares years and months only: a dob later in the current month already
// counts as 18, matching the form's long-standing behaviour.
func Is18OrOlder(dob, today time.Time) bool {
	age := today.Year() - dob.Year()
	m := int(today.Month()) - int(dob.Month())
	return age > MinimumAge || (age == MinimumAge && m >= 0)
}

func run(c check, rec models.DonorRecord, today time.Time) FieldResult {
	class, msg := c(rec, today)
	if class == "" {
		return FieldResult{Valid: true}
	}
	return FieldResult{Valid: false, Message: msg, Class: class}
}

func required(get func(models.DonorRecord) string, msg string) check {
	return func(rec models.DonorRecord, _ time.Time) (Class, string) {
		if isBlank(get(rec)) {
			return ClassRequired, msg
		}
		return "", ""
	}
}

func matches(get func(models.DonorRecord) string, requiredMsg string, pattern *regexp.Regexp, formatMsg string) check {
	return func(rec models.DonorRecord, _ time.Time) (Class, string) {
		v := get(rec)
		if isBlank(v) {
			return ClassRequired, requiredMsg
		}
		if !pattern.MatchString(v) {
			return ClassInvalidFormat, formatMsg
		}
		return "", ""
	}
}

func checkFirstName(rec models.DonorRecord, _ time.Time) (Class, string) {
	name := strings.TrimSpace(rec.FirstName)
	if name == "" {
		return ClassRequired, "First name is required"
	}
	if utf8.RuneCountInString(name) < 2 {
		return ClassTooShort, "Too short"
	}
	return "", ""
}

func checkEmail(rec models.DonorRecord, _ time.Time) (Class, string) {
	email := rec.NormalizedEmail()
	if email == "" {
		return ClassRequired, "Email is required"
	}
	if !govalidator.IsEmail(email) {
		return ClassInvalidFormat, "Invalid email"
	}
	return "", ""
}

func checkDOB(rec models.DonorRecord, today time.Time) (Class, string) {
	if isBlank(rec.DOB) {
		return ClassRequired, "Date of Birth is required"
	}
	dob, err := time.Parse(DateLayout, strings.TrimSpace(rec.DOB))
	if err != nil {
		return ClassInvalidFormat, "Invalid date of birth"
	}
	if !Is18OrOlder(dob, today) {
		return ClassUnderage, "You must be at least 18 years old"
	}
	return "", ""
}

func checkIDType(rec models.DonorRecord, _ time.Time) (Class, string) {
	if _, ok := idFormats[rec.IDType]; !ok {
		return ClassRequired, "Select an ID type"
	}
	return "", ""
}

func checkUniqueID(rec models.DonorRecord, _ time.Time) (Class, string) {
	if isBlank(rec.UniqueID) {
		return ClassRequired, "ID number is required"
	}
	format, ok := idFormats[rec.IDType]
	if !ok {
		return "", ""
	}
	if !format.pattern.MatchString(rec.UniqueID) {
		return ClassInvalidFormat, format.message
	}
	return "", ""
}

func checkPaymentMode(rec models.DonorRecord, _ time.Time) (Class, string) {
	if rec.PaymentMode != "" && !rec.PaymentMode.IsValid() {
		return ClassInvalidFormat, "Select a donation mode"
	}
	return "", ""
}

func checkDeclaration(rec models.DonorRecord, _ time.Time) (Class, string) {
	if !rec.Declaration {
		return ClassMustAccept, "You must accept the declaration"
	}
	return "", ""
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
