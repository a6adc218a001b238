package integrations

import (
	"careerpath-backend/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/jomei/notionapi"
)

// Ensure NotionNotifier implements the Notifier interface.
var _ Notifier = (*NotionNotifier)(nil)

// Property names expected in the target Notion database.
const (
	notionPropName     = "Name"
	notionPropEmail    = "Email"
	notionPropPhone    = "Phone"
	notionPropMode     = "Mode"
	notionPropDate     = "Preferred Date"
	notionPropConcerns = "Concerns"
	notionPropRef      = "Reference"
)

// NotionNotifier adds each booking as a page in a Notion database,
// giving counselors a board to triage requests.
type NotionNotifier struct {
	pages      notionapi.PageService
	users      notionapi.UserService
	databaseID notionapi.DatabaseID
}

// NewNotionNotifier creates a notifier from an internal integration secret.
// The integration must be shared with the database.
func NewNotionNotifier(integrationSecret, databaseID string) (*NotionNotifier, error) {
	if integrationSecret == "" || databaseID == "" {
		return nil, fmt.Errorf("notion notifier needs both an integration secret and a database ID")
	}
	client := notionapi.NewClient(notionapi.Token(integrationSecret))
	return &NotionNotifier{pages: client.Page, users: client.User, databaseID: notionapi.DatabaseID(databaseID)}, nil
}

func (n *NotionNotifier) Name() string { return "notion" }

// TestConnection fetches the bot user the secret belongs to.
func (n *NotionNotifier) TestConnection(ctx context.Context) error {
	if _, err := n.users.Me(ctx); err != nil {
		var notionErr *notionapi.Error
		if errors.As(err, &notionErr) && notionErr.Status == 401 {
			return fmt.Errorf("notion API error: invalid integration secret (unauthorized)")
		}
		return fmt.Errorf("failed during Notion connection test: %w", err)
	}
	return nil
}

func (n *NotionNotifier) NotifyConsultation(ctx context.Context, c models.Consultation) error {
	if _, err := n.pages.Create(ctx, consultationPage(n.databaseID, c)); err != nil {
		return fmt.Errorf("failed to create Notion page: %w", err)
	}
	return nil
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: s}}}
}

// consultationPage maps a booking onto the database's properties.
func consultationPage(db notionapi.DatabaseID, c models.Consultation) *notionapi.PageCreateRequest {
	date := notionapi.Date(c.PreferredDate)
	return &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: db,
		},
		Properties: notionapi.Properties{
			notionPropName:     notionapi.TitleProperty{Title: richText(c.FullName)},
			notionPropEmail:    notionapi.EmailProperty{Email: c.Email},
			notionPropPhone:    notionapi.PhoneNumberProperty{PhoneNumber: c.Phone},
			notionPropMode:     notionapi.SelectProperty{Select: notionapi.Option{Name: c.PreferredMode}},
			notionPropDate:     notionapi.DateProperty{Date: &notionapi.DateObject{Start: &date}},
			notionPropConcerns: notionapi.RichTextProperty{RichText: richText(c.Concerns)},
			notionPropRef:      notionapi.RichTextProperty{RichText: richText(c.ID)},
		},
	}
}
