package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/jayyyyqwq/hackathon-finder-bot/internal/event"
)

// Digest headings. HeadingLatest titles a full listing of everything
// active; HeadingNew titles a digest of events seen for the first time.
const (
	HeadingLatest = "Latest Hackathons & Challenges"
	HeadingNew    = "New Hackathons & Challenges"
)

// EmptyDigest is the reply when nothing is active or upcoming.
const EmptyDigest = "😴 No active or upcoming hackathons found right now."

// maxPerSource caps how many items one source contributes to a digest.
const maxPerSource = 10

// FormatEvent renders one event as a digest line. Titles and links are
// HTML-escaped; scraped text regularly contains ampersands and angle
// brackets that would otherwise break parse_mode=HTML.
func FormatEvent(evt *event.Event) string {
	var line strings.Builder

	line.WriteString("• ")
	title := html.EscapeString(evt.Title)
	if evt.Link != "" {
		line.WriteString(fmt.Sprintf("<a href=\"%s\">%s</a>", html.EscapeString(evt.Link), title))
	} else {
		line.WriteString(title)
	}
	if evt.HasDeadline() {
		line.WriteString(fmt.Sprintf(" <b>(Deadline: %s)</b>", evt.Deadline.Format("2006-01-02")))
	}

	return line.String()
}

// Digest renders events as one HTML message: a heading, then a section per
// source with up to maxPerSource lines. Events must already be ordered by
// source, which is how the pipeline returns them.
func Digest(heading string, events []*event.Event) string {
	if len(events) == 0 {
		return EmptyDigest
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("🔥 <b>%s</b>\n\n", html.EscapeString(heading)))

	currentSource := ""
	count := 0
	for _, evt := range events {
		if evt.Source != currentSource {
			if currentSource != "" {
				msg.WriteString("\n")
			}
			msg.WriteString(fmt.Sprintf("⭐ <b>%s</b>\n", strings.ToUpper(evt.Source)))
			currentSource = evt.Source
			count = 0
		}

		count++
		if count > maxPerSource {
			continue
		}

		msg.WriteString(FormatEvent(evt))
		msg.WriteString("\n")
	}

	return strings.TrimSpace(msg.String())
}
