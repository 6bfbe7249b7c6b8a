package mailer

import (
	"bytes"
	"html/template"
	"time"

	"github.com/JerryLinyx/MarketDigest/models"
)

// Article is one digest card. Description is markup produced by this package,
// never raw provider text.
type Article struct {
	Title       string
	Description template.HTML
}

var newsDescriptionTmpl = template.Must(template.New("news").Parse(
	`{{if .Photo}}<img src="{{.Photo}}" alt="" width="100%" style="max-width:100%;border-radius:4px;">{{end}}` +
		`<p style="margin:8px 0;color:#555;font-size:13px;">{{.Source}}{{if .Posted}} &middot; {{.Posted}}{{end}}</p>` +
		`{{if .URL}}<a href="{{.URL}}" style="color:#1a73e8;">Read the full story</a>{{end}}`,
))

// NewsArticle turns a stored news projection into a digest card.
func NewsArticle(item models.NewsItem) Article {
	data := struct {
		Photo  string
		Source string
		Posted string
		URL    string
	}{
		Photo:  item.ArticlePhotoURL,
		Source: item.Source,
		URL:    item.ArticleURL,
	}
	if !item.PostTimeUTC.IsZero() {
		data.Posted = item.PostTimeUTC.UTC().Format(time.RFC1123)
	}

	var buf bytes.Buffer
	if err := newsDescriptionTmpl.Execute(&buf, data); err != nil {
		return Article{Title: item.ArticleTitle, Description: template.HTML(template.HTMLEscapeString(item.Source))}
	}
	return Article{Title: item.ArticleTitle, Description: template.HTML(buf.String())}
}

// SampleArticles is the static digest sent when no news has been ingested yet.
func SampleArticles() []Article {
	return []Article{
		{
			Title: "Today's Gainers",
			Description: `<ul>
<li><strong>Starbucks Corporation (SBUX):</strong> Up by 24.50%, driven by strong earnings and positive market sentiment.</li>
<li><strong>The Estée Lauder Companies Inc. (EL):</strong> Increased by 6.64%, benefiting from positive earnings reports.</li>
<li><strong>NVIDIA Corporation (NVDA):</strong> Rose by 6.53%, continuing its strong performance in the tech sector.</li>
<li><strong>Intel Corporation (INTC):</strong> Up by 5.73%, buoyed by new product announcements and market recovery.</li>
<li><strong>Tesla, Inc. (TSLA):</strong> Gained 5.24%, likely due to strong sales figures and market optimism.</li>
</ul>`,
		},
		{
			Title: "Today's Losers",
			Description: `<ul>
<li><strong>Chipotle Mexican Grill, Inc. (CMG):</strong> Dropped by 7.50%, impacted by weaker-than-expected earnings.</li>
<li><strong>Baxter International Inc. (BAX):</strong> Fell by 6.55%, facing challenges in its core markets.</li>
<li><strong>EQT Corporation (EQT):</strong> Down by 3.44%, possibly due to fluctuations in energy prices.</li>
<li><strong>Valero Energy Corporation (VLO):</strong> Decreased by 2.61%, reflecting broader energy sector pressures.</li>
<li><strong>Occidental Petroleum Corporation (OXY):</strong> Dropped by 2.58%, amid lower oil prices and market conditions.</li>
</ul>`,
		},
	}
}
