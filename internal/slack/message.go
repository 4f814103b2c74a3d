package slack

import (
	"fmt"
	"strings"

	"github.com/amish-gaur/DataPriv/internal/types"
)

// messageTruncateLimit is the maximum length for text fields in Slack messages
const messageTruncateLimit = 2000

// Message represents a Slack webhook message payload
type Message struct {
	// Text is the fallback text for the notification
	Text string `json:"text"`
	// Blocks holds the rich layout blocks for the message
	Blocks []Block `json:"blocks,omitempty"`
}

// Block represents a Slack Block Kit block
type Block struct {
	// Type is the block type (section, divider, header, etc.)
	Type string `json:"type"`
	// Text is the text object for this block
	Text *TextObject `json:"text,omitempty"`
	// Fields holds multiple text objects for section blocks
	Fields []TextObject `json:"fields,omitempty"`
	// Elements holds the text objects of context blocks
	Elements []TextObject `json:"elements,omitempty"`
}

// TextObject represents a Slack text object
type TextObject struct {
	// Type is the text type (plain_text or mrkdwn)
	Type string `json:"type"`
	// Text is the actual text content
	Text string `json:"text"`
}

// NewRiskAlert formats an analysis result into a Block Kit alert
func NewRiskAlert(result *types.AnalysisResult) Message {
	header := fmt.Sprintf("High privacy risk: %s", result.Domain)

	blocks := []Block{
		{
			Type: "header",
			Text: &TextObject{Type: "plain_text", Text: header},
		},
		{
			Type: "section",
			Fields: []TextObject{
				{Type: "mrkdwn", Text: fmt.Sprintf("*Risk score:*\n%.1f", result.RiskScore)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Data source:*\n%s", result.Insights.DataSource)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Sharing:*\n%s", result.Summary.Sharing)},
				{Type: "mrkdwn", Text: fmt.Sprintf("*Retention:*\n%s", result.Summary.Retention)},
			},
		},
	}

	if len(result.Summary.DataCollected) > 0 {
		blocks = append(blocks, Block{
			Type: "section",
			Text: &TextObject{
				Type: "mrkdwn",
				Text: truncateText("*Data collected:*\n"+strings.Join(result.Summary.DataCollected, ", "), messageTruncateLimit),
			},
		})
	}

	if len(result.Insights.KeyConcerns) > 0 {
		blocks = append(blocks, Block{
			Type: "section",
			Text: &TextObject{
				Type: "mrkdwn",
				Text: truncateText("*Key concerns:*\n• "+strings.Join(result.Insights.KeyConcerns, "\n• "), messageTruncateLimit),
			},
		})
	}

	blocks = append(blocks, Block{
		Type: "context",
		Elements: []TextObject{
			{Type: "mrkdwn", Text: fmt.Sprintf("<%s|Source policy> · %s", result.SourceURL, result.Insights.Attribution)},
		},
	})

	return Message{
		Text:   fmt.Sprintf("%s (risk %.1f)", header, result.RiskScore),
		Blocks: blocks,
	}
}

// truncateText truncates text to the specified maximum length, adding an ellipsis if truncated
func truncateText(text string, maxLen int) string {
	if len(text) <= maxLen {
		return text
	}

	return text[:maxLen-3] + "..."
}
