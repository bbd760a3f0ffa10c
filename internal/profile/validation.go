package profile

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// PNGContentType is the only declared content type accepted for a picture.
const PNGContentType = "image/png"

// Upload is a picture file as received from the form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Candidate is a possibly incomplete form submission.
type Candidate struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,number,min=7"`
	DOB      string `json:"dob" validate:"required,datetime=2006-01-02"`
	City     string `json:"city" validate:"required"`
	District string `json:"district" validate:"required"`
	Province string `json:"province" validate:"required,province"`
	Country  string `json:"country"`

	// Picture is a newly chosen file, nil when none was chosen.
	Picture *Upload `json:"-" validate:"-"`
	// ExistingPicture is the handle of the record being edited.
	ExistingPicture string `json:"-" validate:"-"`
}

// Errors maps a field name to its message. Fields not present are valid.
type Errors map[string]string

// Touched keeps only the errors of the given fields.
func (e Errors) Touched(fields ...string) Errors {
	out := make(Errors, len(fields))
	for _, f := range fields {
		if msg, ok := e[f]; ok {
			out[f] = msg
		}
	}
	return out
}

// Fields returns the failing field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ValidationError is returned when a submission fails validation.
type ValidationError struct {
	Errors Errors
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Errors.Fields(), ", ")
}

var messages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
	},
	"email": {
		"required": "Email is required",
		"email":    "Invalid email format",
	},
	"phone": {
		"required": "Phone number is required",
		"number":   "Phone number must be a number",
		"min":      "Phone number must be at least 7 digits",
	},
	"dob": {
		"required": "Date of Birth is required",
		"datetime": "Date of Birth must be a valid date",
	},
	"city": {
		"required": "City is required",
	},
	"district": {
		"required": "District is required",
	},
	"province": {
		"required": "Province is required",
		"province": "Province must be one of Province 1 to Province 7",
	},
	"profilePicture": {
		"required": "Profile picture is required",
		"png":      "Only png files are allowed",
	},
}

// Validator evaluates the form rules. It holds no per-call state and is safe
// for concurrent use.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("province", func(fl validator.FieldLevel) bool {
		return isProvince(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(validatePicture, Candidate{})
	return &Validator{validate: v}
}

func validatePicture(sl validator.StructLevel) {
	c := sl.Current().Interface().(Candidate)
	switch {
	case c.Picture == nil && c.ExistingPicture == "":
		sl.ReportError(c.Picture, "profilePicture", "Picture", "required", "")
	case c.Picture != nil && c.Picture.ContentType != PNGContentType:
		sl.ReportError(c.Picture, "profilePicture", "Picture", "png", c.Picture.ContentType)
	}
}

// Validate returns the error of every failing field. The candidate is not
// modified.
func (v *Validator) Validate(c Candidate) Errors {
	errs := Errors{}
	err := v.validate.Struct(c)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["form"] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := errs[field]; seen {
			continue
		}
		errs[field] = message(field, fe.Tag())
	}
	return errs
}

func message(field, tag string) string {
	if byTag, ok := messages[field]; ok {
		if msg, ok := byTag[tag]; ok {
			return msg
		}
	}
	return field + " is invalid"
}
