package notify

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/younsl/rdsmaint/internal/models"
	"github.com/younsl/rdsmaint/pkg/utils"
)

// Priority icon assets from the Slack Block Kit template gallery.
const (
	highPriorityIconURL   = "https://api.slack.com/img/blocks/bkb_template_images/highpriority.png"
	mediumPriorityIconURL = "https://api.slack.com/img/blocks/bkb_template_images/mediumpriority.png"
)

func priorityIconURL(p models.Priority) string {
	if p == models.PriorityHigh {
		return highPriorityIconURL
	}
	return mediumPriorityIconURL
}

// BuildMessageBlocks renders one maintenance record as Block Kit
// blocks: divider, priority context line, code-styled instance id,
// a four-field detail section, divider.
func BuildMessageBlocks(record models.MaintenanceRecord) []slack.Block {
	priority := record.Priority()

	contextBlock := slack.NewContextBlock("",
		slack.NewImageBlockElement(priorityIconURL(priority), string(priority)),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*%s*", priority), false, false),
	)

	titleBlock := slack.NewSectionBlock(
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("`%s`", record.InstanceID), false, false),
		nil, nil,
	)

	fields := []*slack.TextBlockObject{
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Action:*\n%s", record.Action), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*IsWriter:*\n%t", record.IsWriter), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*ForcedApplyDate:*\n%s", utils.FormatApplyDate(record.ApplyDate)), false, false),
		slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Description:*\n%s", record.Description), false, false),
	}
	detailBlock := slack.NewSectionBlock(nil, fields, nil)

	return []slack.Block{
		slack.NewDividerBlock(),
		contextBlock,
		titleBlock,
		detailBlock,
		slack.NewDividerBlock(),
	}
}
