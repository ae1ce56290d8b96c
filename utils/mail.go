package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"studio-akira-api/config"
)

const approvalMailBody = `
<html>
  <body>
    <p>Hi {{.Name}},</p>
    <p>Your Studio Akira {{.Role}} account has been approved. You can now log
    in to your portal.</p>
    <p>Warm regards,<br>Studio Akira</p>
  </body>
</html>`

var approvalMailTmpl = template.Must(template.New("approval").Parse(approvalMailBody))

// SendApprovalMail notifies a user that their account was approved. Mail is
// best effort: callers log failures and move on.
func SendApprovalMail(to, name, role string) error {
	smtpCfg := config.Cfg.SMTP
	if !smtpCfg.Enabled {
		return nil
	}

	var body bytes.Buffer
	if err := approvalMailTmpl.Execute(&body, map[string]string{
		"Name": name,
		"Role": role,
	}); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your account has been approved\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		smtpCfg.From, to, body.String(),
	)

	auth := smtp.PlainAuth("", smtpCfg.From, smtpCfg.Password, smtpCfg.Host)
	if err := smtp.SendMail(smtpCfg.Addr, auth, smtpCfg.From, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
