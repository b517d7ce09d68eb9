package rssfeeds

import (
	"context"
	"log"
	"strings"

	"storyreel/config"
	"storyreel/types"
)

// Source selects posts to narrate according to the text settings: custom
// text, a single linked post, or the top posts of a subreddit
type Source struct {
	settings config.Settings
	fetcher  FeedFetcher
}

// NewSource creates a post source reading feeds through fetcher
func NewSource(settings config.Settings, fetcher FeedFetcher) *Source {
	return &Source{settings: settings, fetcher: fetcher}
}

// GetPosts returns the posts to turn into videos. Fetch failures are logged
// and yield an empty list so a scheduled run simply produces nothing.
func (s *Source) GetPosts(ctx context.Context) []types.Post {
	switch {
	case s.settings.UseCustomText:
		return s.customText()
	case s.settings.SingleLink:
		return s.singleLink(ctx)
	default:
		return s.topPosts(ctx)
	}
}

func (s *Source) customText() []types.Post {
	title := s.settings.CustomTitle
	return []types.Post{{
		ID:    types.GenerateID("custom:" + title),
		Title: title,
		Body:  s.settings.CustomBody,
	}}
}

func (s *Source) singleLink(ctx context.Context) []types.Post {
	feedURL, err := PostFeedURL(s.settings.PostLink)
	if err != nil {
		log.Printf("❌ Failed to process single link: %v", err)
		return nil
	}

	posts, err := s.fetcher.FetchFeed(ctx, feedURL, 1)
	if err != nil {
		log.Printf("❌ Failed to process single link: %v", err)
		return nil
	}
	if len(posts) == 0 {
		log.Printf("⚠️  No post found at %s", s.settings.PostLink)
		return nil
	}

	return []types.Post{sanitizePost(posts[0])}
}

func (s *Source) topPosts(ctx context.Context) []types.Post {
	limit := s.settings.Limit
	feedURL := TopFeedURL(s.settings.Subreddit, s.settings.TimeFilter, limit)

	posts, err := s.fetcher.FetchFeed(ctx, feedURL, limit)
	if err != nil {
		log.Printf("❌ Failed to process multiple posts: %v", err)
		return nil
	}

	out := make([]types.Post, 0, len(posts))
	for i, p := range posts {
		if len([]rune(p.Body)) >= config.MaxBodyLength {
			log.Printf("⚠️  Post too large, skipping (%d/%d)", i+1, limit)
			continue
		}
		log.Printf("📄 Collecting data for %d/%d", i+1, limit)
		out = append(out, sanitizePost(p))
	}
	return out
}

func sanitizePost(p types.Post) types.Post {
	p.Title = SanitizeText(strings.TrimSpace(p.Title))
	p.Body = SanitizeText(strings.TrimSpace(p.Body))
	return p
}
