package notification

import "html/template"

// layout is the branded HTML document every message is rendered into.
// Each kind supplies its own "content" block.
const layout = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width,initial-scale=1.0">
  <title>{{.Subject}}</title>
</head>
<body style="margin:0;padding:0;background-color:#f5f3ef;
     font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;">
  <table width="100%" cellpadding="0" cellspacing="0" role="presentation"
         style="background-color:#f5f3ef;padding:40px 16px;">
    <tr>
      <td align="center">
        <table width="600" cellpadding="0" cellspacing="0" role="presentation"
               style="max-width:600px;width:100%;">
          <tr>
            <td style="background-color:#1f2a24;padding:28px 40px;border-radius:12px 12px 0 0;">
              <span style="font-size:20px;font-weight:700;color:#ffffff;">{{.Brand.AppName}}</span>
              <span style="display:block;font-size:11px;color:#a3b8ad;margin-top:2px;letter-spacing:0.3px;">
                Venues, menus and bookings
              </span>
            </td>
          </tr>
          <tr>
            <td style="background-color:#2c3a32;padding:16px 40px;border-left:3px solid #c9a227;">
              <p style="margin:0;font-size:15px;font-weight:600;color:#f3f4f6;">{{.Subject}}</p>
            </td>
          </tr>
          <tr>
            <td style="background-color:#ffffff;padding:36px 40px;font-size:14px;line-height:1.7;color:#374151;">
{{template "content" .}}
            </td>
          </tr>
          <tr>
            <td style="background-color:#faf9f7;padding:20px 40px;
                       border-top:1px solid #e5e7eb;border-radius:0 0 12px 12px;">
              <p style="margin:0;font-size:12px;color:#9ca3af;">
                Sent by <a href="{{.Brand.SiteURL}}" style="color:#8a6d12;text-decoration:none;">{{.Brand.AppName}}</a>.
                This is an automated message.
              </p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>
{{end}}`

var contentBlocks = map[Kind]string{
	KindCustomerWelcome: `{{define "content"}}
<p style="margin:0 0 16px;">Hi {{.Ctx.Name}},</p>
<p style="margin:0 0 16px;">Welcome to {{.Brand.AppName}}! Your account is ready. You can now browse venues,
compare menus and request bookings for your next event.</p>
<p style="margin:0;"><a href="{{.Brand.SiteURL}}" style="display:inline-block;padding:10px 20px;background-color:#1f2a24;
color:#ffffff;border-radius:6px;text-decoration:none;">Find a venue</a></p>
{{end}}`,

	KindVendorWelcome: `{{define "content"}}
<p style="margin:0 0 16px;">Hi {{.Ctx.Name}},</p>
<p style="margin:0 0 16px;">Thank you for registering{{with .Ctx.BusinessName}} {{.}}{{end}} as a vendor on {{.Brand.AppName}}.</p>
<p style="margin:0 0 16px;">Your registration is pending review by our team. We will email you as soon as
your vendor account has been approved.</p>
{{end}}`,

	KindVendorRegisteredToAdmin: `{{define "content"}}
<p style="margin:0 0 16px;">A new vendor has registered and is waiting for approval.</p>
<table cellpadding="0" cellspacing="0" role="presentation" style="font-size:14px;color:#374151;">
  <tr><td style="padding:4px 16px 4px 0;font-weight:600;">Name</td><td style="padding:4px 0;">{{.Ctx.Name}}</td></tr>
  {{with .Ctx.BusinessName}}<tr><td style="padding:4px 16px 4px 0;font-weight:600;">Business</td><td style="padding:4px 0;">{{.}}</td></tr>{{end}}
  <tr><td style="padding:4px 16px 4px 0;font-weight:600;">Email</td><td style="padding:4px 0;">{{.Ctx.Email}}</td></tr>
  <tr><td style="padding:4px 16px 4px 0;font-weight:600;">Phone</td><td style="padding:4px 0;">{{if .Ctx.Phone}}{{.Ctx.Phone}}{{else}}Not provided{{end}}</td></tr>
  {{with .CreatedAt}}<tr><td style="padding:4px 16px 4px 0;font-weight:600;">Registered</td><td style="padding:4px 0;">{{.}}</td></tr>{{end}}
</table>
<p style="margin:16px 0 0;">Review the registration in the admin dashboard.</p>
{{end}}`,

	KindVendorApproved: `{{define "content"}}
<p style="margin:0 0 16px;">Hi {{.Ctx.Name}},</p>
<p style="margin:0 0 16px;">Good news! Your vendor account on {{.Brand.AppName}} has been approved.
You can now sign in, publish your venues and menus, and start receiving booking requests.</p>
<p style="margin:0;"><a href="{{.Brand.SiteURL}}" style="display:inline-block;padding:10px 20px;background-color:#1f2a24;
color:#ffffff;border-radius:6px;text-decoration:none;">Go to your dashboard</a></p>
{{end}}`,

	kindVendorRevoked: `{{define "content"}}
<p style="margin:0 0 16px;">Hi {{.Ctx.Name}},</p>
<p style="margin:0 0 16px;">Your vendor access on {{.Brand.AppName}} has been revoked. Your listings are no
longer visible and you can no longer manage venues, menus or bookings.</p>
{{with .Ctx.Reason}}<p style="margin:0 0 16px;"><strong>Reason:</strong> {{.}}</p>{{end}}
<p style="margin:0;">If you believe this is a mistake, reply to this email and our team will review it.</p>
{{end}}`,

	kindVendorNotApproved: `{{define "content"}}
<p style="margin:0 0 16px;">Hi {{.Ctx.Name}},</p>
<p style="margin:0 0 16px;">Thank you for your interest in {{.Brand.AppName}}. After reviewing your
registration, we are unable to approve your vendor account at this time, so your registration has not been approved.</p>
{{with .Ctx.Reason}}<p style="margin:0 0 16px;"><strong>Reason:</strong> {{.}}</p>{{end}}
<p style="margin:0;">You are welcome to register again once the points above have been addressed.</p>
{{end}}`,

	KindConnectivityTest: `{{define "content"}}
<p style="margin:0 0 16px;">This is a test message from {{.Brand.AppName}}.</p>
<p style="margin:0 0 16px;">If you are reading it, the mail transport is configured correctly.</p>
<table cellpadding="0" cellspacing="0" role="presentation" style="font-size:14px;color:#374151;">
  <tr><td style="padding:4px 16px 4px 0;font-weight:600;">Server</td><td style="padding:4px 0;">{{.Ctx.Host}}:{{.Ctx.Port}}</td></tr>
  <tr><td style="padding:4px 16px 4px 0;font-weight:600;">Security</td><td style="padding:4px 0;">{{.Ctx.SecurityMode}}</td></tr>
  {{with .CreatedAt}}<tr><td style="padding:4px 16px 4px 0;font-weight:600;">Sent</td><td style="padding:4px 0;">{{.}}</td></tr>{{end}}
</table>
{{end}}`,
}

// bodyTemplates holds one parsed template per content block.
var bodyTemplates = func() map[Kind]*template.Template {
	base := template.Must(template.New("layout").Parse(layout))
	out := make(map[Kind]*template.Template, len(contentBlocks))
	for kind, block := range contentBlocks {
		out[kind] = template.Must(template.Must(base.Clone()).Parse(block))
	}
	return out
}()
