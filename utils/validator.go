package utils

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
)

// Minimal internal validator to avoid external dependency. Supports:
// - required
// - email
// - nameok (letters, numbers, space, hyphen, apostrophe, 1-100 chars)
// - pwdmin (min length 6)
// - role (creator or investor)
// - eqfield=OtherField (field equals another field)

var (
	reEmail  = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	reNameOK = regexp.MustCompile(`^[A-Za-z0-9 \-']{1,100}$`)
)

// ValidateStruct inspects struct tags `validate:"..."` and returns the first
// error encountered.
func ValidateStruct(s interface{}) error {
	v := reflect.ValueOf(s)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return errors.New("ValidateStruct expects a struct or pointer to struct")
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("validate")
		if tag == "" {
			continue
		}
		parts := strings.Split(tag, ",")
		fv := v.Field(i)
		var sval string
		if fv.Kind() == reflect.String {
			sval = fv.String()
		}
		for _, rule := range parts {
			rule = strings.TrimSpace(rule)
			switch {
			case rule == "required":
				if fv.Kind() == reflect.String && strings.TrimSpace(sval) == "" {
					return errors.New(field.Name + " is required")
				}
			case rule == "email":
				if sval != "" && !reEmail.MatchString(sval) {
					return errors.New(field.Name + " must be a valid email address")
				}
			case rule == "nameok":
				if sval != "" && !reNameOK.MatchString(sval) {
					return errors.New(field.Name + " contains invalid characters")
				}
			case rule == "pwdmin":
				if len(sval) < 6 {
					return errors.New(field.Name + " must be at least 6 characters")
				}
			case rule == "role":
				if sval != "creator" && sval != "investor" {
					return errors.New(field.Name + " must be creator or investor")
				}
			case strings.HasPrefix(rule, "eqfield="):
				other := strings.TrimPrefix(rule, "eqfield=")
				ov := v.FieldByName(other)
				if ov.Kind() == reflect.String && ov.String() != sval {
					return errors.New(field.Name + " does not match " + other)
				}
			}
		}
	}
	return nil
}
