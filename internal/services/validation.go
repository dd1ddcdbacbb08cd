package services

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"locgm/internal/models"

	"github.com/go-playground/validator/v10"
)

// FormNumber is a numeric field as submitted. It accepts JSON numbers and
// strings alike so that malformed input reaches validation instead of failing
// body decoding.
type FormNumber string

func (n *FormNumber) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = FormNumber(s)
		return nil
	}
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		raw = ""
	}
	*n = FormNumber(raw)
	return nil
}

func (n FormNumber) String() string { return string(n) }

// Float parses n as a decimal number. Hex, digit separators, NaN and
// infinities are rejected.
func (n FormNumber) Float() (float64, bool) {
	s := strings.TrimSpace(string(n))
	if s == "" || strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// newValidator returns a validator that reports fields by their form name and
// knows two extra tags: "numrange=lo:hi" (a decimal number within [lo,hi])
// and "placetype" (one of models.PlaceTypes).
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("numrange", validateNumRange)
	_ = v.RegisterValidation("placetype", func(fl validator.FieldLevel) bool {
		return models.PlaceType(fl.Field().String()).Valid()
	})
	return v
}

func validateNumRange(fl validator.FieldLevel) bool {
	lo, hi, ok := strings.Cut(fl.Param(), ":")
	if !ok {
		return false
	}
	min, errLo := strconv.ParseFloat(lo, 64)
	max, errHi := strconv.ParseFloat(hi, 64)
	if errLo != nil || errHi != nil {
		return false
	}
	f, ok := FormNumber(fl.Field().String()).Float()
	return ok && f >= min && f <= max
}

// parseID converts a submitted id the way a lenient form would: anything that
// is not a positive integer becomes 0.
func parseID(raw string) uint {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}
