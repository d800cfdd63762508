package client

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	phonePattern = regexp.MustCompile(`^\d{10}$`)
	emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

	validate = newValidator()
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	v.RegisterValidation("clientemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// rule checks one field value against validator tags. messages maps the
// failing tag to the text shown to the caller.
type rule struct {
	field    string
	value    interface{}
	tags     string
	messages map[string]string
}

func oneOf(values []string) string {
	return "oneof=" + strings.Join(values, " ")
}

func firstNameRule(v string) rule {
	return rule{"firstName", v, "required", map[string]string{"required": "First name is required"}}
}

func lastNameRule(v string) rule {
	return rule{"lastName", v, "required", map[string]string{"required": "Last name is required"}}
}

func ageRule(v string) rule {
	return rule{"age", v, "required", map[string]string{"required": "Age is required"}}
}

func genderRule(v string) rule {
	return rule{"gender", v, "required," + oneOf(Genders), map[string]string{
		"required": "Gender is required",
		"oneof":    "Gender must be one of: " + strings.Join(Genders, ", "),
	}}
}

func phoneRule(v string) rule {
	return rule{"phoneNumber", v, "required,phone10", map[string]string{
		"required": "Phone number is required",
		"phone10":  "Phone number must be 10 digits",
	}}
}

func emailRule(v string) rule {
	return rule{"email", v, "omitempty,clientemail", map[string]string{"clientemail": "Please enter a valid email"}}
}

func speechIssuesRule(v []string) rule {
	return rule{"speechIssues", v, "dive," + oneOf(SpeechIssues), map[string]string{
		"oneof": "Speech issues must be one of: " + strings.Join(SpeechIssues, ", "),
	}}
}

func problemDescriptionRule(v string) rule {
	return rule{"problemDescription", v, "required,min=20,max=1000", map[string]string{
		"required": "Problem description is required",
		"min":      "Problem description must be at least 20 characters",
		"max":      "Problem description cannot exceed 1000 characters",
	}}
}

func urgencyRule(v string) rule {
	return rule{"urgency", v, oneOf(Urgencies), map[string]string{
		"oneof": "Urgency must be one of: " + strings.Join(Urgencies, ", "),
	}}
}

func therapistRule(v string) rule {
	return rule{"therapistId", v, "required", map[string]string{"required": "Therapist ID cannot be empty"}}
}

func statusRule(v string) rule {
	return rule{"status", v, oneOf(Statuses), map[string]string{
		"oneof": "Status must be one of: " + strings.Join(Statuses, ", "),
	}}
}

func sessionsRule(v int) rule {
	return rule{"sessions", v, "min=0", map[string]string{"min": "Sessions cannot be negative"}}
}

func progressRule(field, label string, v int) rule {
	msg := label + " progress must be between 0 and 100"
	return rule{field, v, "min=0,max=100", map[string]string{"min": msg, "max": msg}}
}

// check runs every rule and collects the failures. missing is true when a
// required rule failed.
func check(rules []rule) (messages []string, missing bool) {
	for _, r := range rules {
		err := validate.Var(r.value, r.tags)
		if err == nil {
			continue
		}
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			messages = append(messages, r.field+" is invalid")
			continue
		}
		tag := fieldErrs[0].Tag()
		if tag == "required" {
			missing = true
		}
		msg, ok := r.messages[tag]
		if !ok {
			msg = r.field + " is invalid"
		}
		messages = append(messages, msg)
	}
	return messages, missing
}

// NormalizeCreate trims text fields, normalizes phone, email and issues and
// applies defaults. The request is returned as a record ready to validate.
func NormalizeCreate(req CreateClientRequest, defaultTherapistID string) Client {
	c := Client{
		FirstName:          strings.TrimSpace(req.FirstName),
		LastName:           strings.TrimSpace(req.LastName),
		Age:                strings.TrimSpace(string(req.Age)),
		Gender:             strings.TrimSpace(req.Gender),
		PhoneNumber:        normalizePhone(req.PhoneNumber),
		Email:              normalizeEmail(req.Email),
		Address:            strings.TrimSpace(req.Address),
		SpeechIssues:       normalizeIssues(req.SpeechIssues),
		ProblemDescription: strings.TrimSpace(req.ProblemDescription),
		ReferredBy:         strings.TrimSpace(req.ReferredBy),
		Urgency:            strings.TrimSpace(req.Urgency),
		TherapistID:        strings.TrimSpace(req.TherapistID),
		Status:             StatusActive,
	}
	if c.Urgency == "" {
		c.Urgency = UrgencyRoutine
	}
	if c.TherapistID == "" {
		c.TherapistID = defaultTherapistID
	}
	return c
}

// ValidateNew checks a normalized record about to be created.
func ValidateNew(c Client) error {
	messages, missing := check([]rule{
		firstNameRule(c.FirstName),
		lastNameRule(c.LastName),
		ageRule(c.Age),
		genderRule(c.Gender),
		phoneRule(c.PhoneNumber),
		emailRule(c.Email),
		speechIssuesRule(c.SpeechIssues),
		problemDescriptionRule(c.ProblemDescription),
		urgencyRule(c.Urgency),
		therapistRule(c.TherapistID),
	})
	return toError(messages, missing)
}

// NormalizeUpdate applies the creation normalization to every supplied field.
func NormalizeUpdate(req UpdateClientRequest) UpdateClientRequest {
	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		s := strings.TrimSpace(*p)
		return &s
	}

	out := req
	out.FirstName = trim(req.FirstName)
	out.LastName = trim(req.LastName)
	out.Gender = trim(req.Gender)
	out.Address = trim(req.Address)
	out.ProblemDescription = trim(req.ProblemDescription)
	out.ReferredBy = trim(req.ReferredBy)
	out.Urgency = trim(req.Urgency)
	out.TherapistID = trim(req.TherapistID)
	out.Status = trim(req.Status)
	if req.Age != nil {
		age := FlexString(strings.TrimSpace(string(*req.Age)))
		out.Age = &age
	}
	if req.PhoneNumber != nil {
		phone := normalizePhone(*req.PhoneNumber)
		out.PhoneNumber = &phone
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		out.Email = &email
	}
	if req.SpeechIssues != nil {
		issues := normalizeIssues(*req.SpeechIssues)
		out.SpeechIssues = &issues
	}
	return out
}

// ValidateUpdate checks only the fields present in a normalized update.
func ValidateUpdate(req UpdateClientRequest) error {
	var rules []rule
	if req.FirstName != nil {
		rules = append(rules, firstNameRule(*req.FirstName))
	}
	if req.LastName != nil {
		rules = append(rules, lastNameRule(*req.LastName))
	}
	if req.Age != nil {
		rules = append(rules, ageRule(string(*req.Age)))
	}
	if req.Gender != nil {
		rules = append(rules, genderRule(*req.Gender))
	}
	if req.PhoneNumber != nil {
		rules = append(rules, phoneRule(*req.PhoneNumber))
	}
	if req.Email != nil {
		rules = append(rules, emailRule(*req.Email))
	}
	if req.SpeechIssues != nil {
		rules = append(rules, speechIssuesRule(*req.SpeechIssues))
	}
	if req.ProblemDescription != nil {
		rules = append(rules, problemDescriptionRule(*req.ProblemDescription))
	}
	if req.Urgency != nil {
		rules = append(rules, urgencyRule(*req.Urgency))
	}
	if req.TherapistID != nil {
		rules = append(rules, therapistRule(*req.TherapistID))
	}
	if req.Status != nil {
		rules = append(rules, statusRule(*req.Status))
	}
	if req.Sessions != nil {
		rules = append(rules, sessionsRule(*req.Sessions))
	}
	if req.Articulation != nil {
		rules = append(rules, progressRule("articulation", "Articulation", *req.Articulation))
	}
	if req.Voice != nil {
		rules = append(rules, progressRule("voice", "Voice", *req.Voice))
	}
	if req.Stuttering != nil {
		rules = append(rules, progressRule("stuttering", "Stuttering", *req.Stuttering))
	}

	messages, _ := check(rules)
	return toError(messages, false)
}

func toError(messages []string, missing bool) error {
	if len(messages) == 0 {
		return nil
	}
	if missing {
		return &ValidationError{Message: MsgMissingFields, Messages: messages, Required: RequiredFields}
	}
	return &ValidationError{Message: MsgValidationError, Messages: messages}
}

// normalizePhone strips every non-digit. Input without any digit is kept
// trimmed so it fails the format rule rather than the presence rule.
func normalizePhone(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return strings.TrimSpace(raw)
	}
	return digits
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// normalizeIssues trims entries, drops blanks and duplicates and keeps the
// order of first appearance.
func normalizeIssues(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for _, issue := range raw {
		issue = strings.TrimSpace(issue)
		if issue == "" || seen[issue] {
			continue
		}
		seen[issue] = true
		out = append(out, issue)
	}
	return out
}
