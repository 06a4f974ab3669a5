package mail

import gomail "github.com/wneessen/go-mail"

func (s SMTP) Build(m Message) (*gomail.Msg, string, error) {
	return s.build(m)
}
