package notifier

import (
	"fmt"
	"os"
	"time"
	"unicode/utf8"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
)

// tweetLimit is Twitter's character cap per tweet.
const tweetLimit = 280

// TwitterNotifier posts events to Twitter
type TwitterNotifier struct {
	client *twitter.Client
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client}, nil
}

// Notify posts one tweet per event
func (n *TwitterNotifier) Notify(events []*event.Event) error {
	for i, evt := range events {
		tweet := formatTweet(evt)

		_, _, err := n.client.Statuses.Update(tweet, nil)
		if err != nil {
			return fmt.Errorf("posting tweet for event %s: %w", evt.ID, err)
		}

		// Rate limiting: wait between tweets
		if i < len(events)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatTweet formats an event as a tweet
func formatTweet(evt *event.Event) string {
	tweet := "🚀 New Hackathon Alert!\n\n"
	tweet += fmt.Sprintf("🏆 %s\n", evt.Title)

	if evt.HasDeadline() {
		tweet += fmt.Sprintf("⏰ Deadline: %s\n", evt.Deadline.Format("2006-01-02"))
	}

	if evt.Link != "" {
		tweet += fmt.Sprintf("\n🔗 %s\n", evt.Link)
	}

	tweet += "\n#hackathon #challenge"

	// Truncation counts runes; titles carry emoji and a byte slice
	// could split one.
	if utf8.RuneCountInString(tweet) > tweetLimit {
		runes := []rune(tweet)
		tweet = string(runes[:tweetLimit-3]) + "..."
	}

	return tweet
}
