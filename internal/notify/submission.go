// Package notify implements the quote-request notification endpoint: a form submission
// is validated and forwarded to the Brevo transactional email API as an auto-reply.
package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FormName is the only form accepted by the endpoint.
const FormName = "quote-request"

// Defaults substituted into the email template when the form leaves a field blank.
const (
	DefaultCustomerName = "Valued Customer"
	DefaultServiceType  = "Service Inquiry"
)

// RequestError reports a submission the endpoint rejects with 400.
type RequestError struct {
	Field   string
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid submission: %s: %s", e.Field, e.Message)
	}
	return "invalid submission: " + e.Message
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}

// Submission is a normalised quote-request form payload.
type Submission struct {
	FormName    string `json:"form_name" validate:"eq=quote-request"`
	Email       string `json:"email" validate:"required,email"`
	Name        string `json:"name,omitempty"`
	ServiceType string `json:"service-type,omitempty"`
}

type formFields struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	ServiceType string `json:"service-type"`
}

type rawSubmission struct {
	FormName string `json:"form_name"`
	formFields
	Data *formFields `json:"data"`
}

var validate = validator.New()

// ParseSubmission decodes a form submission. Fields are read from the top level first
// and then from the nested data object.
func ParseSubmission(body []byte) (*Submission, error) {
	if len(strings.TrimSpace(string(body))) == 0 {
		body = []byte("{}")
	}
	var raw rawSubmission
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &RequestError{Message: "request body is not valid JSON.", Cause: err}
	}
	data := raw.Data
	if data == nil {
		data = &formFields{}
	}
	return &Submission{
		FormName:    raw.FormName,
		Email:       strings.TrimSpace(firstNonEmpty(raw.Email, data.Email)),
		Name:        strings.TrimSpace(firstNonEmpty(raw.Name, data.Name)),
		ServiceType: strings.TrimSpace(firstNonEmpty(raw.ServiceType, data.ServiceType)),
	}, nil
}

// Validate checks the form name and the recipient address.
func (s *Submission) Validate() error {
	if s.FormName != FormName {
		return &RequestError{Field: "form_name", Message: `Invalid form name. Expected "quote-request".`}
	}
	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Field() != "Email" {
					continue
				}
				if fe.Tag() == "required" {
					return &RequestError{Field: "email", Message: "Email field is required.", Cause: err}
				}
				return &RequestError{Field: "email", Message: "Email field must be a valid email address.", Cause: err}
			}
		}
		return &RequestError{Message: err.Error(), Cause: err}
	}
	return nil
}

// EmailRequest builds the Brevo auto-reply request for the submission.
func (s *Submission) EmailRequest(templateID int) *EmailRequest {
	return &EmailRequest{
		TemplateID: templateID,
		To: []Recipient{{
			Email: s.Email,
			Name:  firstNonEmpty(s.Name, s.Email),
		}},
		Params: map[string]string{
			"name":         firstNonEmpty(s.Name, DefaultCustomerName),
			"email":        s.Email,
			"service-type": firstNonEmpty(s.ServiceType, DefaultServiceType),
		},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
