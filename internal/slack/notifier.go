package slack

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/slack-go/slack"

	"github.com/shubh-37/content-commander/internal/agents"
	"github.com/shubh-37/content-commander/internal/models"
)

const captionPreviewLength = 80

// Notifier posts upload outcomes and the schedule to a channel
type Notifier struct {
	client    *Client
	channelID string
}

func NewNotifier(client *Client, channelID string) *Notifier {
	return &Notifier{client: client, channelID: channelID}
}

// NotifyUpload reports a finished upload
func (n *Notifier) NotifyUpload(ctx context.Context, account models.TikTokAccount, result agents.UploadResult) error {
	headline := uploadHeadline(account, result)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, "*Account*\n"+account.Username, false, false),
		slack.NewTextBlockObject(slack.MarkdownType, "*Status*\n"+result.Status, false, false),
	}
	if result.Post != nil {
		fields = append(fields,
			slack.NewTextBlockObject(slack.MarkdownType, "*Scheduled for*\n"+result.Post.ScheduledTime, false, false),
			slack.NewTextBlockObject(slack.MarkdownType, "*Caption*\n"+preview(result.Post.Caption), false, false),
		)
	}

	blocks := []slack.Block{
		slack.NewSectionBlock(slack.NewTextBlockObject(slack.MarkdownType, headline, false, false), nil, nil),
		slack.NewSectionBlock(nil, fields, nil),
	}
	if result.Warning != "" {
		blocks = append(blocks, slack.NewContextBlock("",
			slack.NewTextBlockObject(slack.MarkdownType, "⚠️ "+result.Warning, false, false)))
	}

	if err := n.client.SendMessageWithBlocks(ctx, n.channelID, headline, blocks); err != nil {
		return fmt.Errorf("failed to post upload notification: %w", err)
	}
	return nil
}

// SendScheduleDigest posts the scheduled queue
func (n *Notifier) SendScheduleDigest(ctx context.Context, posts []models.ScheduledPost) error {
	if len(posts) == 0 {
		return n.client.SendMessage(ctx, n.channelID, "📭 No posts scheduled.")
	}

	var sb strings.Builder
	sb.WriteString("📅 *Posting Schedule*\n\n")
	for i, post := range posts {
		fmt.Fprintf(&sb, "*%d. %s* (%s)\n%s\n\n", i+1, post.ScheduledTime, post.AccountUsername, preview(post.Caption))
	}
	fmt.Fprintf(&sb, "_Total: %d scheduled posts_", len(posts))

	log.Printf("📨 Sending schedule digest (%d posts)", len(posts))
	return n.client.SendMessage(ctx, n.channelID, sb.String())
}

func uploadHeadline(account models.TikTokAccount, result agents.UploadResult) string {
	switch result.Outcome {
	case agents.OutcomePublished:
		return fmt.Sprintf("🚀 Video published to %s", account.Username)
	case agents.OutcomeFailed:
		return fmt.Sprintf("❌ Upload for %s failed", account.Username)
	}
	if result.Post != nil {
		return fmt.Sprintf("📅 Post scheduled for %s", account.Username)
	}
	return fmt.Sprintf("⏳ Video for %s is pending approval", account.Username)
}

func preview(caption string) string {
	runes := []rune(caption)
	if len(runes) > captionPreviewLength {
		return string(runes[:captionPreviewLength]) + "..."
	}
	if caption == "" {
		return "_no caption_"
	}
	return caption
}
