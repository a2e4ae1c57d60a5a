package models

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func validRegisterParams() RegisterAccountParams {
	return RegisterAccountParams{
		Email:       "racer@example.com",
		Password:    "hunter2hunter2",
		FirstName:   "Jean",
		LastName:    "Vuarnet",
		DOB:         time.Date(1995, time.March, 12, 0, 0, 0, 0, time.UTC),
		Division:    "Rocky",
		Disciplines: []string{"Downhill"},
	}
}

func TestRegisterAccountParamsValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		p := validRegisterParams()
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
	})

	t.Run("all missing reported together", func(t *testing.T) {
		p := RegisterAccountParams{}
		err := p.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Validate = %v, want ValidationError", err)
		}
		want := []string{"email", "password", "first_name", "last_name", "dob", "division", "discipline"}
		if !reflect.DeepEqual(verr.Fields, want) {
			t.Errorf("Fields = %v, want %v", verr.Fields, want)
		}
	})

	t.Run("whitespace is absent", func(t *testing.T) {
		p := validRegisterParams()
		p.FirstName = "   "
		err := p.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Validate = %v, want ValidationError", err)
		}
		if !strings.Contains(verr.Error(), "first_name") {
			t.Errorf("error %q should name first_name", verr.Error())
		}
	})

	t.Run("unknown division rejected", func(t *testing.T) {
		p := validRegisterParams()
		p.Division = "Midwest"
		if err := p.Validate(); err == nil {
			t.Fatal("Validate accepted unknown division")
		}
	})

	t.Run("unknown discipline rejected", func(t *testing.T) {
		p := validRegisterParams()
		p.Disciplines = []string{"Downhill", "Big Air"}
		if err := p.Validate(); err == nil {
			t.Fatal("Validate accepted unknown discipline")
		}
	})

	t.Run("blank disciplines dropped", func(t *testing.T) {
		p := validRegisterParams()
		p.Disciplines = []string{" Downhill ", "", "  "}
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if !reflect.DeepEqual(p.Disciplines, []string{"Downhill"}) {
			t.Errorf("Disciplines = %v, want trimmed single entry", p.Disciplines)
		}
	})
}

func TestRegisterAccountParamsOptionals(t *testing.T) {
	p := validRegisterParams()
	p.USSkiID = "  "
	p.Team = " Powder Hounds "
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if got := p.OptionalUSSkiID(); got != nil {
		t.Errorf("OptionalUSSkiID = %q, want nil", *got)
	}
	if got := p.OptionalTeam(); got == nil || *got != "Powder Hounds" {
		t.Errorf("OptionalTeam = %v, want Powder Hounds", got)
	}
	if got := p.OptionalFISID(); got != nil {
		t.Errorf("OptionalFISID = %v, want nil", got)
	}
}

func validEventParams() EventParams {
	return EventParams{
		Name:       "Town Downhill",
		Date:       time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		City:       "Aspen",
		State:      "co",
		Zip:        "81611",
		Venue:      "Aspen Mountain",
		Discipline: "Downhill",
		Division:   "Rocky",
	}
}

func TestEventParamsValidate(t *testing.T) {
	t.Run("valid upper-cases state", func(t *testing.T) {
		p := validEventParams()
		if err := p.Validate(); err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if p.State != "CO" {
			t.Errorf("State = %q, want CO", p.State)
		}
	})

	t.Run("state must be two letters", func(t *testing.T) {
		p := validEventParams()
		p.State = "Colorado"
		err := p.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Validate = %v, want ValidationError", err)
		}
		if !reflect.DeepEqual(verr.Fields, []string{"state"}) {
			t.Errorf("Fields = %v, want [state]", verr.Fields)
		}
	})

	t.Run("all missing reported together", func(t *testing.T) {
		p := EventParams{}
		err := p.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Validate = %v, want ValidationError", err)
		}
		want := []string{"name", "date", "city", "state", "zip", "venue", "discipline", "division"}
		if !reflect.DeepEqual(verr.Fields, want) {
			t.Errorf("Fields = %v, want %v", verr.Fields, want)
		}
	})
}

func TestDisciplineRoundTrip(t *testing.T) {
	set := []string{"Alpine", "Giant Slalom", "Super G"}
	stored := JoinDisciplines(set)
	if stored != "Alpine, Giant Slalom, Super G" {
		t.Errorf("JoinDisciplines = %q", stored)
	}
	if got := SplitDisciplines(stored); !reflect.DeepEqual(got, set) {
		t.Errorf("SplitDisciplines = %v, want %v", got, set)
	}
	if got := SplitDisciplines(""); got != nil {
		t.Errorf("SplitDisciplines(\"\") = %v, want nil", got)
	}
}

func TestEnumMembership(t *testing.T) {
	if !IsDivision("Pacific Northwest") {
		t.Error("Pacific Northwest should be a division")
	}
	if IsDivision("pacific northwest") {
		t.Error("division matching is case-sensitive")
	}
	if !IsDiscipline("Combined Alpine") {
		t.Error("Combined Alpine should be a discipline")
	}
	if IsDiscipline("Freestyle") {
		t.Error("Freestyle is not a discipline")
	}
}
