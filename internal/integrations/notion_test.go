package integrations

import (
	"context"
	"testing"
	"time"

	"github.com/jomei/notionapi"
)

type fakePages struct {
	notionapi.PageService
	got *notionapi.PageCreateRequest
}

func (f *fakePages) Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	f.got = req
	return &notionapi.Page{}, nil
}

func TestNotionNotifierCreatesDatabasePage(t *testing.T) {
	pages := &fakePages{}
	n := &NotionNotifier{pages: pages, databaseID: "db-123"}

	if err := n.NotifyConsultation(context.Background(), sampleConsultation()); err != nil {
		t.Fatalf("NotifyConsultation: %v", err)
	}
	req := pages.got
	if req == nil {
		t.Fatal("expected a page create request")
	}
	if req.Parent.Type != notionapi.ParentTypeDatabaseID || req.Parent.DatabaseID != "db-123" {
		t.Fatalf("unexpected parent %+v", req.Parent)
	}

	title, ok := req.Properties[notionPropName].(notionapi.TitleProperty)
	if !ok || len(title.Title) != 1 || title.Title[0].Text.Content != "Jane Doe" {
		t.Fatalf("unexpected title property %+v", req.Properties[notionPropName])
	}
	mode, ok := req.Properties[notionPropMode].(notionapi.SelectProperty)
	if !ok || mode.Select.Name != "video" {
		t.Fatalf("unexpected mode property %+v", req.Properties[notionPropMode])
	}
	date, ok := req.Properties[notionPropDate].(notionapi.DateProperty)
	if !ok || date.Date == nil || !time.Time(*date.Date.Start).Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date property %+v", req.Properties[notionPropDate])
	}
}

func TestNewNotionNotifierRequiresConfig(t *testing.T) {
	if _, err := NewNotionNotifier("secret_x", ""); err == nil {
		t.Fatal("expected error without database ID")
	}
}
