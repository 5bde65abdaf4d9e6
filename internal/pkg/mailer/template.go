package mailer

import (
	"bytes"
	"html/template"
	"strings"

	"booking-portal/internal/pkg/errors"
)

type Receipt struct {
	Header    string
	Recipient string
	Bold      string
	Detail    string
	Footer    string
}

var receiptTemplate = template.Must(template.New("receipt").Funcs(template.FuncMap{
	"lines": func(s string) []string { return strings.Split(s, "\n") },
}).Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 24px;">
    {{- if .Header}}
    <h2 style="color: #1a1a1a;">{{.Header}}</h2>
    {{- end}}
    <p>เรียน {{with .Recipient}}{{.}}{{else}}ลูกค้าผู้มีอุปการคุณ{{end}},</p>
    {{- if .Bold}}
    <p><strong>{{.Bold}}</strong></p>
    {{- end}}
    {{- if .Detail}}
    <p>{{range $i, $l := lines .Detail}}{{if $i}}<br>{{end}}{{$l}}{{end}}</p>
    {{- end}}
    <hr style="border: none; border-top: 1px solid #eee;">
    <p style="font-size: 12px; color: #888;">{{with .Footer}}{{range $i, $l := lines .}}{{if $i}}<br>{{end}}{{$l}}{{end}}{{else}}Limitless Club Team{{end}}</p>
  </div>
</body>
</html>`))

// RenderReceipt escapes every field, line breaks become <br>. An empty
// recipient or footer falls back to the club defaults.
func RenderReceipt(r Receipt) (string, error) {
	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, r); err != nil {
		return "", errors.Wrap(errors.KindServerError, err, "error render receipt email")
	}
	return buf.String(), nil
}
