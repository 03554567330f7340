package notification

import (
	"bytes"
	"html/template"

	"lunchbox/models"
)

var emailSubjects = map[models.NotificationKind]string{
	models.KindOrderReminder:  "Lunch order reminder",
	models.KindOrderConfirmed: "Your lunch order",
	models.KindOrderModified:  "Lunch order update",
	models.KindMenuUpdated:    "Menu update",
}

var emailTemplate = template.Must(template.New("email").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #222;">
    <h2>{{.Subject}}</h2>
    <p>{{.Message}}</p>
    <p style="font-size: 12px; color: #888;">You can change how you receive these notifications in your preferences.</p>
  </body>
</html>`))

func subjectFor(kind models.NotificationKind) string {
	if s, ok := emailSubjects[kind]; ok {
		return s
	}
	return "Notification"
}

// renderEmail builds the subject and HTML body for a notification email.
func renderEmail(kind models.NotificationKind, message string) (string, string, error) {
	subject := subjectFor(kind)
	var buf bytes.Buffer
	err := emailTemplate.Execute(&buf, struct {
		Subject string
		Message string
	}{subject, message})
	if err != nil {
		return "", "", err
	}
	return subject, buf.String(), nil
}
