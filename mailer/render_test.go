package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/JerryLinyx/MarketDigest/models"
	"github.com/go-playground/assert/v2"
)

func TestRender_EmptyListHasNoCards(t *testing.T) {
	html, err := NewRenderer("https://example.com/markets").Render(nil)

	assert.Equal(t, nil, err)
	assert.Equal(t, true, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Equal(t, true, strings.Contains(html, "</html>"))
	assert.Equal(t, 0, strings.Count(html, `class="card"`))
	assert.Equal(t, 0, strings.Count(html, "<tr>"))
	assert.Equal(t, true, strings.Contains(html, `href="https://example.com/markets"`))
}

func TestRender_ThreeCardsPerRow(t *testing.T) {
	articles := []Article{
		{Title: "one"}, {Title: "two"}, {Title: "three"}, {Title: "four"},
	}

	html, err := NewRenderer("https://example.com").Render(articles)

	assert.Equal(t, nil, err)
	assert.Equal(t, 4, strings.Count(html, `class="card"`))
	assert.Equal(t, 2, strings.Count(html, "<tr>"))
	assert.Equal(t, 1, strings.Count(html, `class="cta"`))
	assert.Equal(t, true, strings.Index(html, "three") < strings.Index(html, "four"))
}

func TestRender_Deterministic(t *testing.T) {
	r := NewRenderer("https://example.com")

	first, err := r.Render(SampleArticles())
	assert.Equal(t, nil, err)
	second, err := r.Render(SampleArticles())
	assert.Equal(t, nil, err)

	assert.Equal(t, first, second)
}

func TestRender_EscapesTitlesAndCarriesNoScript(t *testing.T) {
	articles := []Article{{Title: `<script>alert("x")</script>`, Description: "<b>ok</b>"}}

	html, err := NewRenderer("https://example.com").Render(articles)

	assert.Equal(t, nil, err)
	assert.Equal(t, false, strings.Contains(html, "<script"))
	assert.Equal(t, true, strings.Contains(html, "&lt;script&gt;"))
	assert.Equal(t, true, strings.Contains(html, "<b>ok</b>"))
}

func TestNewsArticle(t *testing.T) {
	item := models.NewsItem{
		ArticleTitle:    "Fed holds rates",
		ArticleURL:      "https://example.com/fed",
		ArticlePhotoURL: "https://example.com/fed.jpg",
		Source:          "Bloomberg <Markets>",
		PostTimeUTC:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	article := NewsArticle(item)
	desc := string(article.Description)

	assert.Equal(t, "Fed holds rates", article.Title)
	assert.Equal(t, true, strings.Contains(desc, `href="https://example.com/fed"`))
	assert.Equal(t, true, strings.Contains(desc, `src="https://example.com/fed.jpg"`))
	assert.Equal(t, true, strings.Contains(desc, "Bloomberg &lt;Markets&gt;"))
	assert.Equal(t, true, strings.Contains(desc, "Mon, 01 Jan 2024 00:00:00 UTC"))
}

func TestNewsArticle_NoPhotoOrLink(t *testing.T) {
	article := NewsArticle(models.NewsItem{ArticleTitle: "Brief", Source: "AP"})
	desc := string(article.Description)

	assert.Equal(t, false, strings.Contains(desc, "<img"))
	assert.Equal(t, false, strings.Contains(desc, "<a "))
}
