package topics

import (
	"fmt"
	"log"
	"sync"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/mmcdole/gofeed"
)

const (
	extractWorkers   = 5
	extractorTimeout = 30 * time.Second
)

// FeedPresets maps short names to Spanish-language news feeds used for
// topic suggestions.
var FeedPresets = map[string]string{
	"ciencia":    "https://www.muyinteresante.es/feed/rss",
	"tecnologia": "https://www.xataka.com/feedburner.xml",
	"bbc":        "https://feeds.bbci.co.uk/mundo/rss.xml",
}

// Suggestion is a topic candidate derived from a feed item. Summary holds
// extracted article text the content providers can use as grounding.
type Suggestion struct {
	Topic     string    `json:"topic"`
	SourceURL string    `json:"source_url"`
	Summary   string    `json:"summary,omitempty"`
	Published time.Time `json:"published,omitempty"`
}

// ResolveFeedURL maps a preset name to its URL, passing URLs through.
func ResolveFeedURL(nameOrURL string) string {
	if url, ok := FeedPresets[nameOrURL]; ok {
		return url
	}
	return nameOrURL
}

// SuggestFromFeed fetches a feed and turns its newest items into topic
// suggestions.
func SuggestFromFeed(feedURL string, maxCount int) ([]*Suggestion, error) {
	feed, err := gofeed.NewParser().ParseURL(feedURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	count := len(feed.Items)
	if count > maxCount {
		count = maxCount
	}

	suggestions := make([]*Suggestion, 0, count)
	for i := 0; i < count; i++ {
		item := feed.Items[i]
		if item.Title == "" {
			continue
		}
		s := &Suggestion{
			Topic:     item.Title,
			SourceURL: item.Link,
		}
		if item.PublishedParsed != nil {
			s.Published = *item.PublishedParsed
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}

// EnrichAll extracts readable article text for every suggestion using a
// worker pool. Extraction failures leave the summary empty.
func EnrichAll(suggestions []*Suggestion) {
	var wg sync.WaitGroup
	queue := make(chan *Suggestion, len(suggestions))

	for i := 0; i < extractWorkers; i++ {
		go func(workerID int) {
			for s := range queue {
				if err := enrich(s); err != nil {
					log.Printf("[Worker %d] Failed to extract %s: %v", workerID, s.SourceURL, err)
				}
				wg.Done()
			}
		}(i)
	}

	for _, s := range suggestions {
		wg.Add(1)
		queue <- s
	}
	wg.Wait()
	close(queue)
}

func enrich(s *Suggestion) error {
	if s.SourceURL == "" {
		return fmt.Errorf("suggestion has no source URL")
	}
	article, err := readability.FromURL(s.SourceURL, extractorTimeout)
	if err != nil {
		return fmt.Errorf("readability extraction failed: %w", err)
	}
	text := article.TextContent
	if len(text) > 2000 {
		text = text[:2000]
	}
	s.Summary = text
	return nil
}
