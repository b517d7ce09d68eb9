package rssfeeds

import (
	"fmt"
	"net/url"
	"strings"

	"storyreel/config"
)

const redditBaseURL = "https://www.reddit.com"

// TopFeedURL builds the feed of a subreddit's top posts for a period
func TopFeedURL(subreddit string, tf config.TimeFilter, limit int) string {
	sub := strings.Trim(strings.TrimPrefix(strings.TrimSpace(subreddit), "r/"), "/")
	q := url.Values{}
	q.Set("t", string(tf))
	q.Set("limit", fmt.Sprintf("%d", limit))
	return fmt.Sprintf("%s/r/%s/top/.rss?%s", redditBaseURL, url.PathEscape(sub), q.Encode())
}

// PostFeedURL turns a post permalink into the feed holding that post
func PostFeedURL(link string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "", fmt.Errorf("invalid post link %q: %w", link, err)
	}
	if u.Host == "" || !strings.Contains(u.Path, "/comments/") {
		return "", fmt.Errorf("not a post permalink: %q", link)
	}
	u.RawQuery = ""
	u.Fragment = ""
	u.Path = strings.TrimSuffix(u.Path, "/") + "/.rss"
	return u.String(), nil
}
