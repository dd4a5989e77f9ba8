package email

// SendEmailRequest is a plain text message
type SendEmailRequest struct {
	FromAddress string `json:"from_address" validate:"omitempty,email"`
	ToAddress   string `json:"to_address" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Text        string `json:"text" validate:"required"`
}

// SendEmailWithTemplateRequest renders an embedded template. Placeholders
// of the form {{key}} are replaced with Data values.
type SendEmailWithTemplateRequest struct {
	FromAddress string                 `json:"from_address" validate:"omitempty,email"`
	ToAddress   string                 `json:"to_address" validate:"required,email"`
	Subject     string                 `json:"subject" validate:"required"`
	Template    string                 `json:"template" validate:"required"`
	Data        map[string]interface{} `json:"data"`
}

type SendEmailResponse struct {
	Success bool
	Error   string
}

const (
	TemplateCouponAssigned = "coupon-assigned"
)
