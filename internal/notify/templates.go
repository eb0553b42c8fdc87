package notify

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/langpal/langpal-api/internal/models"
)

var contactTemplate = template.Must(template.New("contact").Funcs(templateFuncs).Parse(`
<h2>New Contact Form Submission</h2>
<p><strong>From:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p><strong>Message:</strong></p>
<p>{{range $i, $line := .MessageLines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
<hr>
<p><small>Submitted at: {{.Timestamp}}</small></p>
<p><small>Consent given: {{yesNo .Consent}}</small></p>
`))

var teamApplicationTemplate = template.Must(template.New("team-application").Funcs(templateFuncs).Parse(`
<h2>New Team Application Received</h2>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Phone:</strong> {{.Phone}}</p>
<p><strong>Position:</strong> {{.Position}}</p>
<hr>
<p><small>Submitted at: {{.Timestamp}}</small></p>
<p><small>Marketing consent: {{yesNo .MarketingConsent}}</small></p>
`))

var templateFuncs = template.FuncMap{
	"yesNo": func(b bool) string {
		if b {
			return "Yes"
		}
		return "No"
	},
}

type contactView struct {
	*models.ContactMessage
	MessageLines []string
}

func renderContact(msg *models.ContactMessage) (string, error) {
	view := contactView{
		ContactMessage: msg,
		MessageLines:   strings.Split(strings.ReplaceAll(msg.Message, "\r\n", "\n"), "\n"),
	}

	var buf bytes.Buffer
	if err := contactTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderTeamApplication(app *models.TeamApplication) (string, error) {
	var buf bytes.Buffer
	if err := teamApplicationTemplate.Execute(&buf, app); err != nil {
		return "", err
	}
	return buf.String(), nil
}
