package assistant

import (
	"context"
	"strings"
	"testing"

	"github.com/skitownrace/racereg/internal/models"
)

// fakeSearcher returns a fixed document list.
type fakeSearcher struct {
	docs []models.Document
}

func (f *fakeSearcher) SearchDocuments(ctx context.Context, query string, limit int) ([]models.Document, error) {
	if limit < len(f.docs) {
		return f.docs[:limit], nil
	}
	return f.docs, nil
}

func TestTriggerResponses(t *testing.T) {
	r := New(&fakeSearcher{})
	ctx := context.Background()

	tests := []struct {
		message      string
		wantContains string
	}{
		{"hello there", "Hello!"},
		{"HELLO", "Hello!"},
		{"hi, quick question", "Hi there!"},
		{"what events are coming up", "Events tab"},
		{"how do I register?", "Register button"},
		{"help me out", "What would you like to know?"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			reply, err := r.Reply(ctx, tt.message)
			if err != nil {
				t.Fatalf("Reply failed: %v", err)
			}
			if !strings.Contains(reply, tt.wantContains) {
				t.Errorf("Reply(%q) = %q, want to contain %q", tt.message, reply, tt.wantContains)
			}
		})
	}
}

func TestTriggerOrderIsDeterministic(t *testing.T) {
	r := New(&fakeSearcher{})

	// "hello" contains both the hello and hi triggers keyword-wise;
	// the first declared trigger must win.
	reply, err := r.Reply(context.Background(), "hello hi")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.HasPrefix(reply, "Hello!") {
		t.Errorf("Reply = %q, want the hello trigger to win", reply)
	}
}

func TestDocumentFallback(t *testing.T) {
	docs := []models.Document{
		{Filename: "rules.txt", Content: "Helmets   are\nrequired on every course."},
		{Filename: "faq.txt", Content: "Refunds are issued up to 48 hours before race day."},
	}
	r := New(&fakeSearcher{docs: docs})

	reply, err := r.Reply(context.Background(), "what about refunds on course closures")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.Contains(reply, "1. Helmets are required on every course.") {
		t.Errorf("Reply = %q, want numbered preview with collapsed whitespace", reply)
	}
	if !strings.Contains(reply, "2. Refunds are issued") {
		t.Errorf("Reply = %q, want second preview", reply)
	}
}

func TestDefaultReply(t *testing.T) {
	r := New(&fakeSearcher{})

	reply, err := r.Reply(context.Background(), "zzz unrelated")
	if err != nil {
		t.Fatalf("Reply failed: %v", err)
	}
	if !strings.Contains(reply, "more specific") {
		t.Errorf("Reply = %q, want the default prompt", reply)
	}
}

func TestPreviewTruncation(t *testing.T) {
	long := strings.Repeat("powder ", 100)
	got := preview(long)
	if len([]rune(got)) > previewLen+3 {
		t.Errorf("preview too long: %d runes", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("preview %q should be truncated with ellipsis", got)
	}
}
