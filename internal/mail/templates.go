package mail

import (
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"gopkg.in/yaml.v3"
)

const TemplateBookingConfirmed = "booking_confirmed"

// DefaultFirstName greets recipients whose first name is unknown.
const DefaultFirstName = "Vizitator"

//go:embed catalog.yaml
var catalogYAML []byte

type bookingCopy struct {
	Subject  string `yaml:"subject"`
	Preview  string `yaml:"preview"`
	Greeting string `yaml:"greeting"`
	Line1    string `yaml:"line1"`
	Line2    string `yaml:"line2"`
	CTA      string `yaml:"cta"`
	Footer   string `yaml:"footer"`
}

type catalog struct {
	BookingConfirmed map[string]bookingCopy `yaml:"booking_confirmed"`
}

var messages = mustLoadCatalog(catalogYAML)

func mustLoadCatalog(data []byte) catalog {
	var c catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		panic(fmt.Sprintf("mail: invalid catalog: %v", err))
	}
	return c
}

var bookingHTML = htmltemplate.Must(htmltemplate.New("booking").Parse(`<!DOCTYPE html>
<html lang="{{.Locale}}">
<head><meta charset="utf-8"><title>{{.Copy.Preview}}</title></head>
<body style="background-color:#f9fafb;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,sans-serif">
<div style="margin:0 auto;padding:40px 20px;max-width:560px">
<h1 style="text-align:center;font-size:24px;font-weight:300;font-style:italic;color:#1a1a1a">Vraja Marii</h1>
<div style="background-color:#ffffff;padding:32px;border:1px solid #e5e7eb">
<p style="font-size:18px;color:#1a1a1a">{{.Greeting}}</p>
<p style="font-size:14px;line-height:24px;color:#4b5563">{{.Copy.Line1}}</p>
<p style="font-size:14px;line-height:24px;color:#4b5563">{{.Copy.Line2}}</p>
<p style="text-align:center;margin-top:24px"><a href="{{.EvaluationURL}}" style="background-color:#1a1a1a;color:#ffffff;padding:12px 24px;text-decoration:none">{{.Copy.CTA}}</a></p>
</div>
<hr style="border-color:#e5e7eb">
<p style="font-size:12px;color:#9ca3af;text-align:center">{{.Copy.Footer}}</p>
</div>
</body>
</html>`))

// BookingConfirmed renders the booking confirmation for locale ("ro" or
// "en"). Unknown locales fall back to Romanian.
func BookingConfirmed(locale, firstName, evaluationURL string) (subject, html, text string, err error) {
	strs, ok := messages.BookingConfirmed[locale]
	if !ok {
		locale = "ro"
		strs = messages.BookingConfirmed[locale]
	}
	if strings.TrimSpace(firstName) == "" {
		firstName = DefaultFirstName
	}

	greeting, err := renderText(strs.Greeting, map[string]string{"FirstName": firstName})
	if err != nil {
		return "", "", "", err
	}

	var b strings.Builder
	err = bookingHTML.Execute(&b, map[string]any{
		"Locale":        locale,
		"Copy":          strs,
		"Greeting":      greeting,
		"EvaluationURL": htmltemplate.URL(evaluationURL),
	})
	if err != nil {
		return "", "", "", fmt.Errorf("failed to render booking email: %w", err)
	}

	text = strings.Join([]string{
		greeting,
		strs.Line1,
		strs.Line2,
		strs.CTA + ": " + evaluationURL,
		strs.Footer,
	}, "\n\n")
	return strs.Subject, b.String(), text, nil
}

func renderText(tmpl string, data any) (string, error) {
	t, err := texttemplate.New("line").Parse(tmpl)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
