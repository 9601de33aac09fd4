package usecase

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"borewell-booking/internal/delivery/dto"
	"borewell-booking/internal/domain/entity"
	"borewell-booking/pkg/validator"
)

type IntakeErrorCode string

const (
	IntakeMissingFields       IntakeErrorCode = "MISSING_FIELDS"
	IntakeInvalidMobile       IntakeErrorCode = "INVALID_MOBILE"
	IntakeInvalidEmail        IntakeErrorCode = "INVALID_EMAIL"
	IntakeInvalidDepth        IntakeErrorCode = "INVALID_DEPTH"
	IntakeInvalidOldBoreDepth IntakeErrorCode = "INVALID_OLD_BORE_DEPTH"
)

// IntakeError reports the first intake rule a submission broke.
type IntakeError struct {
	Code    IntakeErrorCode `json:"code"`
	Message string          `json:"-"`
	Fields  []string        `json:"fields"`
}

func (e *IntakeError) Error() string {
	return e.Message
}

// Required intake fields, in the order they are reported.
var requiredIntakeFields = []string{"name", "villageName", "districtName", "mobileNumber", "email", "feet"}

const depthRule = "gte=1,lte=1000"

// ParseBookingIntake checks a raw submission and returns the normalised request.
// Rules run in a fixed order and the first failure is returned:
// presence, mobile, email, depth, old bore depth.
func ParseBookingIntake(v *validator.CustomValidator, raw map[string]interface{}) (*dto.CreateBookingRequest, error) {
	values := make(map[string]string, len(requiredIntakeFields))
	var missing []string
	for _, field := range requiredIntakeFields {
		value := intakeText(raw[field])
		if err := v.Var(value, "required"); err != nil {
			missing = append(missing, field)
			continue
		}
		values[field] = value
	}
	if len(missing) > 0 {
		return nil, &IntakeError{
			Code:    IntakeMissingFields,
			Message: fmt.Sprintf("All fields are required (missing: %s)", strings.Join(missing, ", ")),
			Fields:  missing,
		}
	}

	mobile := values["mobileNumber"]
	if err := v.Var(mobile, "in_mobile"); err != nil {
		return nil, &IntakeError{
			Code:    IntakeInvalidMobile,
			Message: "Please enter a valid 10-digit mobile number",
			Fields:  []string{"mobileNumber"},
		}
	}

	email := values["email"]
	if err := v.Var(email, "basic_email"); err != nil {
		return nil, &IntakeError{
			Code:    IntakeInvalidEmail,
			Message: "Please enter a valid email address",
			Fields:  []string{"email"},
		}
	}

	feet, ok := parseDepth(v, values["feet"])
	if !ok {
		return nil, &IntakeError{
			Code:    IntakeInvalidDepth,
			Message: fmt.Sprintf("Please enter a valid depth between %d and %d feet", entity.MinDepthFeet, entity.MaxDepthFeet),
			Fields:  []string{"feet"},
		}
	}

	req := &dto.CreateBookingRequest{
		Name:         values["name"],
		VillageName:  values["villageName"],
		DistrictName: values["districtName"],
		MobileNumber: mobile,
		Email:        strings.ToLower(email),
		Feet:         feet,
		ServiceType:  string(entity.ParseServiceType(strings.ToLower(intakeText(raw["serviceType"])))),
	}

	if oldBore := intakeText(raw["oldBoreFeet"]); oldBore != "" {
		oldBoreFeet, ok := parseDepth(v, oldBore)
		if !ok {
			return nil, &IntakeError{
				Code:    IntakeInvalidOldBoreDepth,
				Message: fmt.Sprintf("Please enter a valid current bore depth between %d and %d feet", entity.MinDepthFeet, entity.MaxDepthFeet),
				Fields:  []string{"oldBoreFeet"},
			}
		}
		req.OldBoreFeet = &oldBoreFeet
	}

	return req, nil
}

// intakeText renders a decoded JSON scalar as trimmed text. Objects, arrays
// and null count as absent.
func intakeText(value interface{}) string {
	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// parseDepth accepts any integral number (500, "500", 500.0, 5e2). Fractions,
// text, NaN and infinities are rejected.
func parseDepth(v *validator.CustomValidator, s string) (int, bool) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, false
	}
	n := int(f)
	if err := v.Var(n, depthRule); err != nil {
		return 0, false
	}
	return n, true
}
