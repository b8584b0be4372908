package notify

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"mime"
	"strings"
	"text/template"
	"time"

	"github.com/MKhiriev/go-rpa-cadastro/models"
)

//go:embed templates/*.txt
var embedded embed.FS

const (
	templateSuccess = "success.txt"
	templateFailure = "failure.txt"
)

var templates = template.Must(
	template.New("notify").Funcs(template.FuncMap{
		"total": func(s models.RunSummary) int { return s.Successes + s.Failures },
		"formatTime": func(t time.Time) string {
			return t.Local().Format(time.DateTime)
		},
	}).ParseFS(embedded, "templates/*.txt"),
)

// Message is a rendered status report.
type Message struct {
	Subject string
	Body    string
}

// Render picks the success or failure template for summary and renders it.
func Render(summary models.RunSummary) (Message, error) {
	name := templateSuccess
	if !summary.Success {
		name = templateFailure
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, summary); err != nil {
		return Message{}, fmt.Errorf("render %s: %w", name, err)
	}
	return parseMessage(buf.String())
}

// parseMessage splits a rendered template into its Subject header and the
// body that follows the first blank line.
func parseMessage(text string) (Message, error) {
	var (
		msg  Message
		body []string
	)

	sc := bufio.NewScanner(strings.NewReader(text))
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			break
		}
		if v, ok := strings.CutPrefix(line, "Subject:"); ok {
			msg.Subject = strings.TrimSpace(v)
		}
	}
	for sc.Scan() {
		body = append(body, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Message{}, err
	}
	if len(body) == 0 {
		return Message{}, errors.New("no body found in message")
	}

	msg.Body = strings.Join(body, "\r\n") + "\r\n"
	return msg, nil
}

// encode renders m as an RFC 5322 plain text message.
func (m Message) encode(from string, to []string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(to, ", ") + "\r\n")
	b.WriteString("Subject: " + mime.QEncoding.Encode("utf-8", m.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
	b.WriteString("Content-Transfer-Encoding: 8bit\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.Body)
	return []byte(b.String())
}
