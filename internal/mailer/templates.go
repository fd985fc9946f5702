package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

var resetCodeTemplate = template.Must(template.New("reset_code").Parse(`
<div style="font-family: Arial, sans-serif; color: #333; max-width: 480px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
  <h2 style="color: #521A95; text-align: center;">Password Reset</h2>
  <p>Use the code below to reset your password. It expires in <strong>10 minutes</strong>.</p>
  <div style="background:#521A95;color:#fff;font-size:24px;font-weight:bold;text-align:center;padding:12px;border-radius:8px;margin:16px 0;">
    {{.Code}}
  </div>
  <p>If you did not request this, you can safely ignore this email.</p>
</div>
`))

var releaseTemplate = template.Must(template.New("release").Parse(`
<div style="font-family: Arial, sans-serif; color: #333; max-width: 480px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 8px;">
  <h2 style="color: #521A95; text-align: center;">{{.Title}} is out!</h2>
  {{if .Tagline}}<p style="text-align: center; font-style: italic;">{{.Tagline}}</p>{{end}}
  {{if .ImagePoster}}<img src="{{.ImagePoster}}" alt="{{.Title}}" style="width:100%;border-radius:8px;margin:16px 0;"/>{{end}}
  {{if .Description}}<p>{{.Description}}</p>{{end}}
  {{if .LinkPreview}}<p style="text-align:center;"><a href="{{.LinkPreview}}" style="color:#521A95;font-weight:bold;">Watch the trailer</a></p>{{end}}
</div>
`))

// ResetCodeEmail renders the password-reset message for the given code.
func ResetCodeEmail(to, code string) (*Email, error) {
	var buf bytes.Buffer
	if err := resetCodeTemplate.Execute(&buf, struct{ Code string }{Code: code}); err != nil {
		return nil, fmt.Errorf("failed to render reset code template: %w", err)
	}

	return &Email{
		To:       []string{to},
		Subject:  "Password Reset Code",
		Body:     "Your password reset code is " + code + ". It expires in 10 minutes.",
		HTMLBody: buf.String(),
	}, nil
}

// ReleaseEmailData feeds the release notification template.
type ReleaseEmailData struct {
	Title       string
	Tagline     string
	Description string
	ImagePoster string
	LinkPreview string
}

// ReleaseEmail renders the movie release notification.
func ReleaseEmail(to string, data ReleaseEmailData) (*Email, error) {
	var buf bytes.Buffer
	if err := releaseTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render release template: %w", err)
	}

	return &Email{
		To:       []string{to},
		Subject:  fmt.Sprintf("%s is now available", data.Title),
		Body:     fmt.Sprintf("%s is now available. %s", data.Title, data.Tagline),
		HTMLBody: buf.String(),
	}, nil
}
