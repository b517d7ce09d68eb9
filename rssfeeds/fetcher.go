package rssfeeds

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"storyreel/types"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

// FeedFetcher retrieves posts from a feed URL
type FeedFetcher interface {
	FetchFeed(ctx context.Context, feedURL string, maxCount int) ([]types.Post, error)
}

// Fetcher reads RSS/Atom feeds with gofeed
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher creates a fetcher identifying itself with userAgent
func NewFetcher(userAgent string) *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	return &Fetcher{parser: parser}
}

// FetchFeed retrieves and parses a feed, returning at most maxCount posts
func (f *Fetcher) FetchFeed(ctx context.Context, feedURL string, maxCount int) ([]types.Post, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	return postsFromFeed(feed, maxCount), nil
}

func postsFromFeed(feed *gofeed.Feed, maxCount int) []types.Post {
	count := len(feed.Items)
	if maxCount > 0 && maxCount < count {
		count = maxCount
	}
	posts := make([]types.Post, 0, count)

	for _, item := range feed.Items[:count] {
		// Use GUID if available, otherwise generate from URL
		id := item.GUID
		if id == "" && item.Link != "" {
			id = types.GenerateID(item.Link)
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			publishedAt = *item.UpdatedParsed
		}

		author := ""
		if item.Author != nil {
			author = item.Author.Name
		}

		html := item.Content
		if html == "" {
			html = item.Description
		}

		posts = append(posts, types.Post{
			ID:          id,
			Title:       strings.TrimSpace(item.Title),
			Body:        bodyText(html, item.Link),
			URL:         item.Link,
			Author:      author,
			PublishedAt: publishedAt,
		})
	}
	return posts
}

// bodyText pulls the self-text out of an entry's HTML content. Reddit wraps it
// in <div class="md">; anything else goes through readability.
func bodyText(html, link string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err == nil {
		if md := doc.Find("div.md").First(); md.Length() > 0 {
			var paras []string
			md.Find("p").Each(func(_ int, s *goquery.Selection) {
				if t := strings.TrimSpace(s.Text()); t != "" {
					paras = append(paras, t)
				}
			})
			if len(paras) == 0 {
				return strings.TrimSpace(md.Text())
			}
			return strings.Join(paras, "\n\n")
		}
	}

	pageURL, err := url.Parse(link)
	if err != nil {
		pageURL = &url.URL{}
	}
	article, err := readability.FromReader(strings.NewReader(html), pageURL)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(article.TextContent)
}
