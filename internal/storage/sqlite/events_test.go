package sqlite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/skitownrace/racereg/internal/models"
)

func TestCreateEventValidation(t *testing.T) {
	store := newTestStore(t)
	creator := insertAccount(t, store, "creator@example.com")

	t.Run("reports every missing field at once", func(t *testing.T) {
		_, err := store.CreateEvent(context.Background(), &models.EventParams{}, creator)

		var validationErr *models.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("CreateEvent error = %v, want ValidationError", err)
		}
		for _, field := range []string{"name", "date", "city", "state", "zip", "venue", "discipline", "division"} {
			if !strings.Contains(err.Error(), field) {
				t.Errorf("error %q missing field %q", err.Error(), field)
			}
		}
	})

	t.Run("requires a creator", func(t *testing.T) {
		params := models.EventParams{
			Name:       "Race",
			Date:       mustDate(t, "2026-03-01"),
			City:       "Vail",
			State:      "CO",
			Zip:        "81657",
			Venue:      "Vail Mountain",
			Discipline: "Slalom",
			Division:   "Rocky",
		}
		_, err := store.CreateEvent(context.Background(), &params, 0)

		var validationErr *models.ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("CreateEvent error = %v, want ValidationError", err)
		}
		if !strings.Contains(err.Error(), "creator") {
			t.Errorf("error %q should name creator", err.Error())
		}
	})
}

func TestEventCRUD(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	creator := insertAccount(t, store, "crud@example.com")

	fee := 35.00
	id := insertEvent(t, store, creator, models.EventParams{
		Name:     "Spring Series",
		Location: "north face",
		Fee:      &fee,
		URL:      "https://example.com/spring",
	})

	t.Run("get", func(t *testing.T) {
		event, err := store.GetEvent(ctx, id)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if event == nil {
			t.Fatal("expected event, got nil")
		}
		if event.Name != "Spring Series" {
			t.Errorf("Name = %q", event.Name)
		}
		if event.CompetitorCount != 0 {
			t.Errorf("CompetitorCount = %d, want 0", event.CompetitorCount)
		}
		if event.CreatorID != creator {
			t.Errorf("CreatorID = %d, want %d", event.CreatorID, creator)
		}
		if event.Fee == nil || *event.Fee != 35.00 {
			t.Errorf("Fee = %v, want 35", event.Fee)
		}
		if event.Location == nil || *event.Location != "north face" {
			t.Errorf("Location = %v", event.Location)
		}
	})

	t.Run("get miss is absence", func(t *testing.T) {
		event, err := store.GetEvent(ctx, 99999)
		if err != nil {
			t.Fatalf("GetEvent failed: %v", err)
		}
		if event != nil {
			t.Errorf("expected nil event, got %+v", event)
		}
	})

	t.Run("is creator", func(t *testing.T) {
		other := insertAccount(t, store, "other@example.com")

		ok, err := store.IsEventCreator(ctx, id, creator)
		if err != nil || !ok {
			t.Errorf("IsEventCreator(creator) = (%v, %v), want (true, nil)", ok, err)
		}
		ok, err = store.IsEventCreator(ctx, id, other)
		if err != nil || ok {
			t.Errorf("IsEventCreator(other) = (%v, %v), want (false, nil)", ok, err)
		}
	})

	t.Run("update overwrites all mutable fields", func(t *testing.T) {
		newFee := 50.00
		err := store.UpdateEvent(ctx, id, &models.EventParams{
			Name:       "Spring Finals",
			Date:       mustDate(t, "2026-04-05"),
			City:       "Breckenridge",
			State:      "co", // normalized to upper case
			Zip:        "80424",
			Venue:      "Peak 8",
			Discipline: "Giant Slalom",
			Division:   "Rocky",
			Fee:        &newFee,
			URL:        "https://example.com/finals",
		})
		if err != nil {
			t.Fatalf("UpdateEvent failed: %v", err)
		}

		event, err := store.GetEvent(ctx, id)
		if err != nil || event == nil {
			t.Fatalf("GetEvent after update: %v", err)
		}
		if event.Name != "Spring Finals" || event.City != "Breckenridge" || event.State != "CO" {
			t.Errorf("update not applied: %+v", event)
		}
		if event.Fee == nil || *event.Fee != 50.00 {
			t.Errorf("Fee = %v, want 50", event.Fee)
		}
		if event.Location != nil {
			t.Errorf("Location = %v, want nil after blank update", event.Location)
		}
		if event.CreatorID != creator {
			t.Errorf("CreatorID changed to %d", event.CreatorID)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := store.DeleteEvent(ctx, id); err != nil {
			t.Fatalf("DeleteEvent failed: %v", err)
		}
		event, err := store.GetEvent(ctx, id)
		if err != nil {
			t.Fatalf("GetEvent after delete: %v", err)
		}
		if event != nil {
			t.Errorf("event still present after delete: %+v", event)
		}
	})
}

func TestListEvents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	creator := insertAccount(t, store, "lister@example.com")

	insertEvent(t, store, creator, models.EventParams{
		Name: "Alpine Classic", Date: mustDate(t, "2026-03-10"),
		City: "Stowe", State: "VT", Zip: "05672", Venue: "Mount Mansfield",
		Discipline: "Alpine", Division: "Eastern",
	})
	insertEvent(t, store, creator, models.EventParams{
		Name: "Powder Cup", Date: mustDate(t, "2026-01-20"),
		City: "Alta", State: "UT", Zip: "84092", Venue: "Collins Gulch",
		Discipline: "Downhill", Division: "Intermountain",
	})
	insertEvent(t, store, creator, models.EventParams{
		Name: "City Slalom", Date: mustDate(t, "2026-02-14"),
		City: "Aspen", State: "CO", Zip: "81611", Venue: "Alpine Meadows",
		Discipline: "Slalom", Division: "Rocky",
	})

	t.Run("no filter returns all ordered by date", func(t *testing.T) {
		events, err := store.ListEvents(ctx, models.EventFilter{})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 3 {
			t.Fatalf("got %d events, want 3", len(events))
		}
		if events[0].Name != "Powder Cup" || events[1].Name != "City Slalom" || events[2].Name != "Alpine Classic" {
			t.Errorf("wrong order: %s, %s, %s", events[0].Name, events[1].Name, events[2].Name)
		}
	})

	t.Run("search matches name city and venue case-insensitively", func(t *testing.T) {
		events, err := store.ListEvents(ctx, models.EventFilter{Search: "ALPINE"})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		// "Alpine Classic" by name and "City Slalom" by its venue.
		if len(events) != 2 {
			t.Fatalf("got %d events, want 2: %+v", len(events), events)
		}
	})

	t.Run("state filter is exact", func(t *testing.T) {
		events, err := store.ListEvents(ctx, models.EventFilter{State: "CO"})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 1 || events[0].State != "CO" {
			t.Errorf("got %+v, want the single CO event", events)
		}
	})

	t.Run("filters combine with AND semantics", func(t *testing.T) {
		events, err := store.ListEvents(ctx, models.EventFilter{Search: "alpine", State: "VT"})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 1 || events[0].Name != "Alpine Classic" {
			t.Errorf("got %+v, want only Alpine Classic", events)
		}

		events, err = store.ListEvents(ctx, models.EventFilter{Search: "alpine", Discipline: "Downhill"})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if len(events) != 0 {
			t.Errorf("got %+v, want none", events)
		}
	})

	t.Run("no matches is empty, not an error", func(t *testing.T) {
		events, err := store.ListEvents(ctx, models.EventFilter{Search: "snowboard"})
		if err != nil {
			t.Fatalf("ListEvents failed: %v", err)
		}
		if events == nil || len(events) != 0 {
			t.Errorf("got %v, want empty slice", events)
		}
	})
}
