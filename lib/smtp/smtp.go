package smtp

import (
	"bytes"
	"io"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

var Instance Provider

type Provider interface {
	// SendEMail отправляет письмо с вложениями. Если smtp не настроен, письмо не отправляется и ошибки нет.
	SendEMail(to, subject, message string, attachments ...Attachment) error
	IsConfigured() bool
}

type Attachment struct {
	FileName    string
	ContentType string
	Body        []byte
}

func Connect(user, password, host, port string, tlsEnabled bool) error {
	Instance = &impl{
		user:       user,
		password:   password,
		host:       host,
		port:       port,
		tlsEnabled: tlsEnabled,
	}
	return nil
}

type impl struct {
	user       string
	password   string
	host       string
	port       string
	tlsEnabled bool
}

func (i impl) IsConfigured() bool {
	return i.user != "" && i.host != "" && i.port != ""
}

func (i impl) SendEMail(to, subject, message string, attachments ...Attachment) (err error) {
	logger := log.WithField("recipient", to)
	if !i.IsConfigured() {
		logger.Warn("письмо не отправлено, тк не настроен smtp клиент")
		return nil
	}
	body, err := buildMessage(i.user, to, subject, message, attachments)
	if err != nil {
		return err
	}
	sendTo := []string{
		to,
	}
	auth := sasl.NewPlainClient("", i.user, i.password)
	if i.tlsEnabled {
		err = smtp.SendMailTLS(i.host+":"+i.port, auth, i.user, sendTo, bytes.NewReader(body))
	} else {
		err = smtp.SendMail(i.host+":"+i.port, auth, i.user, sendTo, bytes.NewReader(body))
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return errors.Wrap(err, "ошибка отправки письма")
	}
	logger.Info("письмо отправлено")
	return nil
}

func buildMessage(from, to, subject, message string, attachments []Attachment) ([]byte, error) {
	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "AI Interviewer - "+subject)
	m.SetBody("text/plain", message)
	for _, item := range attachments {
		data := item.Body
		settings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(data)
				return err
			}),
		}
		if item.ContentType != "" {
			settings = append(settings, gomail.SetHeader(map[string][]string{"Content-Type": {item.ContentType}}))
		}
		m.Attach(item.FileName, settings...)
	}
	buf := new(bytes.Buffer)
	if _, err := m.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования письма")
	}
	return buf.Bytes(), nil
}
