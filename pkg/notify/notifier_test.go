package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younsl/rdsmaint/internal/models"
)

type fakeSlackAPI struct {
	channels []string
	failOn   map[int]error // call index (1-based) -> error
	calls    int
}

func (f *fakeSlackAPI) PostMessageContext(_ context.Context, channelID string, _ ...slack.MsgOption) (string, string, error) {
	f.calls++
	f.channels = append(f.channels, channelID)
	if err, ok := f.failOn[f.calls]; ok {
		return "", "", err
	}
	return channelID, "1700000000.000100", nil
}

func testRecord(id string, days int) models.MaintenanceRecord {
	return models.MaintenanceRecord{
		InstanceID:     id,
		Action:         "system-update",
		ApplyDate:      time.Date(2025, 4, 15, 3, 0, 0, 0, time.UTC),
		Description:    "Performance improvements and security updates",
		DaysUntilApply: days,
	}
}

func TestNotifyDeliversOneMessagePerRecord(t *testing.T) {
	fake := &fakeSlackAPI{}
	n := NewNotifierFromClient(fake, "#db-alerts", false, zerolog.Nop())

	records := []models.MaintenanceRecord{
		testRecord("db-1", 3),
		testRecord("db-2", 30),
	}

	err := n.Notify(context.Background(), records)
	require.NoError(t, err)
	assert.Equal(t, 2, fake.calls)
	assert.Equal(t, []string{"#db-alerts", "#db-alerts"}, fake.channels)
}

func TestNotifyNoRecordsSendsNothing(t *testing.T) {
	fake := &fakeSlackAPI{}
	n := NewNotifierFromClient(fake, "#db-alerts", false, zerolog.Nop())

	require.NoError(t, n.Notify(context.Background(), nil))
	assert.Equal(t, 0, fake.calls)
}

func TestNotifyFailFastAbortsRemainingSends(t *testing.T) {
	fake := &fakeSlackAPI{failOn: map[int]error{2: errors.New("channel_not_found")}}
	n := NewNotifierFromClient(fake, "#db-alerts", false, zerolog.Nop())

	records := []models.MaintenanceRecord{
		testRecord("db-1", 3),
		testRecord("db-2", 30),
		testRecord("db-3", 10),
	}

	err := n.Notify(context.Background(), records)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db-2")
	// Third message is never attempted.
	assert.Equal(t, 2, fake.calls)
}

func TestNotifyBestEffortContinuesAndAggregates(t *testing.T) {
	fake := &fakeSlackAPI{failOn: map[int]error{
		1: errors.New("rate_limited"),
		3: errors.New("channel_not_found"),
	}}
	n := NewNotifierFromClient(fake, "#db-alerts", true, zerolog.Nop())

	records := []models.MaintenanceRecord{
		testRecord("db-1", 3),
		testRecord("db-2", 30),
		testRecord("db-3", 10),
	}

	err := n.Notify(context.Background(), records)
	require.Error(t, err)
	assert.Equal(t, 3, fake.calls)
	assert.Contains(t, err.Error(), "db-1")
	assert.Contains(t, err.Error(), "db-3")
	assert.NotContains(t, err.Error(), "db-2")
}

func TestBuildMessageBlocksLayout(t *testing.T) {
	record := models.MaintenanceRecord{
		InstanceID:     "db-1",
		Action:         "system-upgrade",
		IsWriter:       true,
		ApplyDate:      time.Date(2025, 4, 15, 3, 0, 0, 0, time.UTC),
		Description:    "New operating system upgrade available",
		DaysUntilApply: 3,
	}

	blocks := BuildMessageBlocks(record)
	require.Len(t, blocks, 5)

	_, ok := blocks[0].(*slack.DividerBlock)
	assert.True(t, ok, "first block should be a divider")
	_, ok = blocks[4].(*slack.DividerBlock)
	assert.True(t, ok, "last block should be a divider")

	contextBlock, ok := blocks[1].(*slack.ContextBlock)
	require.True(t, ok, "second block should be the priority context")
	require.Len(t, contextBlock.ContextElements.Elements, 2)

	icon, ok := contextBlock.ContextElements.Elements[0].(*slack.ImageBlockElement)
	require.True(t, ok)
	assert.Equal(t, highPriorityIconURL, icon.ImageURL)
	assert.Equal(t, "High Priority", icon.AltText)

	label, ok := contextBlock.ContextElements.Elements[1].(*slack.TextBlockObject)
	require.True(t, ok)
	assert.Equal(t, "*High Priority*", label.Text)

	titleBlock, ok := blocks[2].(*slack.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "`db-1`", titleBlock.Text.Text)

	detailBlock, ok := blocks[3].(*slack.SectionBlock)
	require.True(t, ok)
	require.Len(t, detailBlock.Fields, 4)
	assert.Equal(t, "*Action:*\nsystem-upgrade", detailBlock.Fields[0].Text)
	assert.Equal(t, "*IsWriter:*\ntrue", detailBlock.Fields[1].Text)
	assert.Equal(t, "*ForcedApplyDate:*\nApr 15 2025 03:00:00", detailBlock.Fields[2].Text)
	assert.Equal(t, "*Description:*\nNew operating system upgrade available", detailBlock.Fields[3].Text)
}

func TestBuildMessageBlocksMediumPriorityIcon(t *testing.T) {
	blocks := BuildMessageBlocks(testRecord("db-2", 30))

	contextBlock, ok := blocks[1].(*slack.ContextBlock)
	require.True(t, ok)

	icon, ok := contextBlock.ContextElements.Elements[0].(*slack.ImageBlockElement)
	require.True(t, ok)
	assert.Equal(t, mediumPriorityIconURL, icon.ImageURL)
	assert.Equal(t, "Medium Priority", icon.AltText)
}
