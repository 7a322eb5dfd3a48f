package resend

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
)

// EmailSender is the part of the resend client used here.
type EmailSender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type Notifier struct {
	From   string
	Email  string
	Sender EmailSender
}

func New(apiKey, from, email string) *Notifier {
	client := resend.NewClient(apiKey)
	return &Notifier{
		From:   from,
		Email:  email,
		Sender: client.Emails,
	}
}

var htmlTemplate = template.Must(template.New("email").Parse(`
<p>These habits are still short of their weekly target:</p>
<ul>
{{range .}}
  <li>{{.}}</li>
{{end}}
</ul>
`))

func (n *Notifier) SendNudge(habits []string) error {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, habits); err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    n.From,
		To:      []string{n.Email},
		Subject: fmt.Sprintf("%d habits still open this week", len(habits)),
		Html:    buf.String(),
	}

	_, err := n.Sender.Send(params)
	return err
}
