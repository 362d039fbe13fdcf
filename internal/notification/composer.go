package notification

import (
	"bytes"
	"errors"
	"fmt"
	"time"
)

// Kind names a notification template.
type Kind string

const (
	KindCustomerWelcome         Kind = "customer_welcome"
	KindVendorWelcome           Kind = "vendor_welcome"
	KindVendorRegisteredToAdmin Kind = "vendor_registered_admin"
	KindVendorApproved          Kind = "vendor_approved"
	KindVendorRejected          Kind = "vendor_rejected"
	KindConnectivityTest        Kind = "connectivity_test"

	// The rejection kind renders one of these two blocks.
	kindVendorRevoked     Kind = "vendor_revoked"
	kindVendorNotApproved Kind = "vendor_not_approved"
)

// ErrUnknownKind is returned by Compose for kinds it has no template for.
var ErrUnknownKind = errors.New("unknown notification kind")

// EventContext carries the values a template may interpolate. It is built
// by whoever triggers the notification.
type EventContext struct {
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	BusinessName string    `json:"business_name,omitempty"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
	// WasApproved distinguishes revoking an approved vendor from declining
	// a pending one.
	WasApproved bool   `json:"was_approved,omitempty"`
	Reason      string `json:"reason,omitempty"`

	// Connectivity test details.
	Host         string `json:"host,omitempty"`
	Port         int    `json:"port,omitempty"`
	SecurityMode string `json:"security_mode,omitempty"`
}

// Content is a rendered message.
type Content struct {
	Subject  string
	HTMLBody string
}

// Brand is the site identity rendered into every message.
type Brand struct {
	AppName string
	SiteURL string
}

// Composer renders EventContext values into branded HTML messages.
type Composer struct {
	brand Brand
}

// NewComposer returns a Composer for brand.
func NewComposer(brand Brand) *Composer {
	if brand.AppName == "" {
		brand.AppName = "Venuebook"
	}
	return &Composer{brand: brand}
}

type templateData struct {
	Brand     Brand
	Subject   string
	Ctx       EventContext
	CreatedAt string
}

// Compose renders kind for ec. The output depends only on its inputs.
func (c *Composer) Compose(kind Kind, ec EventContext) (Content, error) {
	block := kind
	if kind == KindVendorRejected {
		block = kindVendorNotApproved
		if ec.WasApproved {
			block = kindVendorRevoked
		}
	}

	tmpl, ok := bodyTemplates[block]
	if !ok {
		return Content{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}

	data := templateData{
		Brand:   c.brand,
		Subject: c.subject(block),
		Ctx:     ec,
	}
	if !ec.CreatedAt.IsZero() {
		data.CreatedAt = ec.CreatedAt.UTC().Format("2 Jan 2006 15:04 UTC")
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return Content{}, fmt.Errorf("rendering %s: %w", kind, err)
	}
	return Content{Subject: data.Subject, HTMLBody: buf.String()}, nil
}

func (c *Composer) subject(block Kind) string {
	app := c.brand.AppName
	switch block {
	case KindCustomerWelcome:
		return "Welcome to " + app
	case KindVendorWelcome:
		return "Your vendor registration on " + app + " is pending review"
	case KindVendorRegisteredToAdmin:
		return "New vendor registration awaiting approval"
	case KindVendorApproved:
		return "Your vendor account on " + app + " has been approved"
	case kindVendorRevoked:
		return "Your vendor access on " + app + " has been revoked"
	case kindVendorNotApproved:
		return "Your vendor registration on " + app + " was not approved"
	case KindConnectivityTest:
		return app + " mail transport test"
	default:
		return app
	}
}
