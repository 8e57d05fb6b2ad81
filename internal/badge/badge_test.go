package badge

import (
	"strings"
	"testing"
	"time"

	"visitor-kiosk/internal/directory"
)

func TestFormat_ResolvesStaffContact(t *testing.T) {
	staffID := int64(3)
	result := directory.EntryResult{
		Visitor: directory.Visitor{FirstName: "Jean", LastName: "Dupont", Email: "jean@example.fr"},
		Visit: directory.Visit{
			BadgeID:       "B-1",
			Purpose:       directory.PurposeVisit,
			StaffMemberID: &staffID,
			EnteredAt:     time.Now(),
		},
		BadgeID: "B-1",
	}
	staff := []directory.StaffMember{
		{ID: 2, FirstName: "Paul", LastName: "Martin", Room: "C1"},
		{ID: 3, FirstName: "Anne", LastName: "Durand", Room: "B204"},
	}

	data := Format(result, staff, nil)
	if data.Destination != "B204" {
		t.Errorf("destination = %q, want B204", data.Destination)
	}
	if data.Contact != "Durand Anne" {
		t.Errorf("contact = %q, want Durand Anne", data.Contact)
	}
	if data.BadgeID != "B-1" {
		t.Errorf("badge id = %q", data.BadgeID)
	}
}

func TestFormat_UnmatchedTrainingFallsBack(t *testing.T) {
	trainingID := int64(99)
	result := directory.EntryResult{
		Visitor: directory.Visitor{FirstName: "Jean", LastName: "Dupont"},
		Visit:   directory.Visit{BadgeID: "B-2", Purpose: directory.PurposeTraining, TrainingID: &trainingID},
		BadgeID: "B-2",
	}
	trainings := []directory.Training{{ID: 5, Title: "Sécurité incendie", Room: "A101"}}

	data := Format(result, nil, trainings)
	if data.Destination != NotDefined {
		t.Errorf("destination = %q, want %q", data.Destination, NotDefined)
	}
	if data.Contact != NotDefined {
		t.Errorf("contact = %q, want %q", data.Contact, NotDefined)
	}
}

func TestFormat_MissingTargetID(t *testing.T) {
	result := directory.EntryResult{
		Visitor: directory.Visitor{FirstName: "Jean"},
		Visit:   directory.Visit{BadgeID: "B-3", Purpose: directory.PurposeVisit},
		BadgeID: "B-3",
	}
	data := Format(result, []directory.StaffMember{{ID: 1}}, nil)
	if data.Destination != NotDefined || data.Contact != NotDefined {
		t.Errorf("expected placeholders, got %+v", data)
	}
}

func TestFormat_EmptyFieldsGetPlaceholder(t *testing.T) {
	data := Format(directory.EntryResult{BadgeID: "B-4", Visit: directory.Visit{BadgeID: "B-4"}}, nil, nil)
	if data.FirstName != NotDefined || data.Email != NotDefined || data.Purpose != NotDefined {
		t.Errorf("expected placeholders on empty fields, got %+v", data)
	}
}

func TestCard_ContainsBadgeFields(t *testing.T) {
	card := Card(Data{
		BadgeID:     "B-1",
		FirstName:   "Jean",
		LastName:    "Dupont",
		Destination: "B204",
		Contact:     "Durand Anne",
		Purpose:     directory.PurposeVisit,
	})
	for _, want := range []string{"Jean Dupont", "Local: B204", "Voir: Durand Anne", "Badge ID: B-1"} {
		if !strings.Contains(card, want) {
			t.Errorf("card missing %q:\n%s", want, card)
		}
	}
}

func TestEncodePNG_ProducesPNG(t *testing.T) {
	png, err := EncodePNG("B-1", 256)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Fatal("output is not a PNG")
	}
}

func TestSanitize_KeepsFileNamesSafe(t *testing.T) {
	if got := sanitize("../../etc/passwd"); strings.ContainsAny(got, "/.") {
		t.Fatalf("sanitize left path characters: %q", got)
	}
	if got := sanitize("B-42_a"); got != "B-42_a" {
		t.Fatalf("sanitize mangled a safe id: %q", got)
	}
}
