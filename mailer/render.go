package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/samber/lo"
)

const cardsPerRow = 3

const digestLayout = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Heading}}</title>
</head>
<body style="margin:0;padding:24px;background:#f4f5f7;font-family:Arial,Helvetica,sans-serif;color:#222;">
<h1 style="text-align:center;font-size:24px;">{{.Heading}}</h1>
<table role="presentation" class="grid" width="100%" cellpadding="0" cellspacing="12" style="table-layout:fixed;">
{{- range .Rows}}
<tr>
{{- range .}}
<td class="card" width="33%" valign="top" style="background:#ffffff;border-radius:8px;padding:16px;">
<h2 style="font-size:18px;margin:0 0 8px;">{{.Title}}</h2>
<div class="description" style="font-size:14px;line-height:1.5;">{{.Description}}</div>
</td>
{{- end}}
</tr>
{{- end}}
</table>
<p style="text-align:center;margin-top:24px;">
<a class="cta" href="{{.CTAURL}}" style="display:inline-block;padding:12px 24px;background:#1a73e8;color:#ffffff;text-decoration:none;border-radius:4px;">{{.CTALabel}}</a>
</p>
</body>
</html>
`

var digestTmpl = template.Must(template.New("digest").Parse(digestLayout))

// Renderer turns digest articles into the email body: a three-column grid of
// cards followed by a single call-to-action button.
type Renderer struct {
	ctaURL string
}

func NewRenderer(ctaURL string) *Renderer {
	return &Renderer{ctaURL: ctaURL}
}

func (r *Renderer) Render(articles []Article) (string, error) {
	data := struct {
		Heading  string
		Rows     [][]Article
		CTAURL   string
		CTALabel string
	}{
		Heading:  "Latest Articles",
		Rows:     lo.Chunk(articles, cardsPerRow),
		CTAURL:   r.ctaURL,
		CTALabel: "See more market news",
	}

	var buf bytes.Buffer
	if err := digestTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}
