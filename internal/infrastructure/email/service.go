package email

import (
	"bytes"
	"fmt"
	"html/template"

	"market-hub.backend/internal/domain/entities"
)

var (
	vendorStatusTmpl = template.Must(template.New("vendorStatus").Parse(`
<h2>Hello {{.Name}},</h2>
<p>The status of your store <strong>{{.StoreName}}</strong> has changed to <strong>{{.Status}}</strong>.</p>
{{if .Notes}}<p>Note from our team: {{.Notes}}</p>{{end}}
{{if .Approved}}<p>You can now sign in and start selling: <a href="{{.DashboardURL}}">{{.DashboardURL}}</a></p>{{end}}
<p>{{.SiteName}} Team</p>
`))

	vendorWelcomeTmpl = template.Must(template.New("vendorWelcome").Parse(`
<h2>Welcome {{.Name}},</h2>
<p>A seller account for <strong>{{.StoreName}}</strong> has been created for you.</p>
<p>Sign in with this email address to manage your store: <a href="{{.DashboardURL}}">{{.DashboardURL}}</a></p>
<p>{{.SiteName}} Team</p>
`))

	orderFailedTmpl = template.Must(template.New("orderFailed").Parse(`
<h2>Hello {{.Name}},</h2>
<p>Unfortunately we could not process the payment for your order <strong>#{{.OrderID}}</strong>.</p>
{{if .Reason}}<p>Reason: {{.Reason}}</p>{{end}}
<p>You can retry the payment or place a new order here: <a href="{{.RetryURL}}">{{.RetryURL}}</a></p>
<p>{{.SiteName}} Team</p>
`))

	reviewRequestTmpl = template.Must(template.New("reviewRequest").Parse(`
<h2>Hello {{.Name}},</h2>
<p>Thanks for your recent purchase of <strong>{{.ProductName}}</strong>.</p>
<p>We would love to hear what you think. Your feedback helps other shoppers and the seller.</p>
<p><a href="{{.ReviewURL}}">Leave a review</a></p>
<p>The link is valid for {{.ValidDays}} days.</p>
<img src="{{.OpenPixelURL}}" width="1" height="1" alt="">
<p>{{.SiteName}} Team</p>
`))
)

// Service renders and sends the marketplace's transactional emails.
// Delivery failures are the caller's to handle; the service never retries.
type Service struct {
	mailer    Mailer
	clientURL string
	siteName  string
	apiURL    string
}

// NewService creates an email service
func NewService(mailer Mailer, clientURL, apiURL, siteName string) *Service {
	return &Service{
		mailer:    mailer,
		clientURL: clientURL,
		apiURL:    apiURL,
		siteName:  siteName,
	}
}

func (s *Service) render(tmpl *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render %s template: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// SendVendorWelcome notifies a freshly onboarded vendor owner
func (s *Service) SendVendorWelcome(to, name, storeName string) error {
	body, err := s.render(vendorWelcomeTmpl, map[string]interface{}{
		"Name":         name,
		"StoreName":    storeName,
		"DashboardURL": s.clientURL + "/vendor/dashboard",
		"SiteName":     s.siteName,
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(to, fmt.Sprintf("Your %s seller account", s.siteName), body)
}

// SendVendorStatusChanged notifies a vendor of a lifecycle transition
func (s *Service) SendVendorStatusChanged(to, name string, vendor *entities.Vendor, notes string) error {
	body, err := s.render(vendorStatusTmpl, map[string]interface{}{
		"Name":         name,
		"StoreName":    vendor.StoreName,
		"Status":       string(vendor.Status),
		"Notes":        notes,
		"Approved":     vendor.Status == entities.VendorStatusApproved,
		"DashboardURL": s.clientURL + "/vendor/dashboard",
		"SiteName":     s.siteName,
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(to, fmt.Sprintf("Your store status: %s", vendor.Status), body)
}

// SendOrderFailed notifies the customer that payment could not be completed
func (s *Service) SendOrderFailed(to, name string, order *entities.Order) error {
	body, err := s.render(orderFailedTmpl, map[string]interface{}{
		"Name":     name,
		"OrderID":  order.ID.Hex(),
		"Reason":   order.FailReason,
		"RetryURL": s.clientURL + "/orders/" + order.ID.Hex(),
		"SiteName": s.siteName,
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(to, "There was a problem with your order", body)
}

// SendReviewRequest invites the customer to review a purchased product. The
// embedded pixel URL lets the API record that the email was opened.
func (s *Service) SendReviewRequest(req *entities.ReviewRequest) error {
	body, err := s.render(reviewRequestTmpl, map[string]interface{}{
		"Name":        req.CustomerName,
		"ProductName": req.ProductName,
		"ReviewURL": s.clientURL + "/review/" + req.ReviewToken +
			"?orderId=" + req.OrderID.Hex() + "&productId=" + req.ProductID.Hex(),
		"OpenPixelURL": s.apiURL + "/api/v1/reviews/track/" + req.ReviewToken,
		"ValidDays":    int(entities.ReviewRequestTTL.Hours() / 24),
		"SiteName":     s.siteName,
	})
	if err != nil {
		return err
	}
	return s.mailer.Send(req.CustomerEmail, fmt.Sprintf("How was your %s?", req.ProductName), body)
}
