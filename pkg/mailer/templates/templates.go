// Package templates renders the email bodies the worker sends.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeHTML = template.Must(template.New("welcome").Parse(`
<html>
  <body style="font-family: sans-serif; color: #333;">
    <h2>Welcome, {{.FullName}}!</h2>
    <p>Your account <strong>{{.Username}}</strong> is ready.</p>
    <p>Ask a question, share an answer, and vote on the posts that help you.</p>
  </body>
</html>
`))

// Render produces subject, text and HTML bodies for a named template.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case "welcome":
		var buf bytes.Buffer
		if err := welcomeHTML.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = "Welcome aboard"
		text = fmt.Sprintf("Welcome, %v! Your account %v is ready.", data["FullName"], data["Username"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
}
