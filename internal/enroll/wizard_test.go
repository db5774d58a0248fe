package enroll

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"go.uber.org/zap"

	"github.com/Amanjarngal/localfix-client/internal/api"
	"github.com/Amanjarngal/localfix-client/internal/apitest"
	"github.com/Amanjarngal/localfix-client/internal/config"
	"github.com/Amanjarngal/localfix-client/internal/notify"
)

func validDraft() *Draft {
	d := NewDraft()
	d.OwnerName = "Ravi Kumar"
	d.Email = "ravi@fixit.in"
	d.BusinessName = "FixIt Services"
	d.Phone = "9876543210"
	d.DOB = "1990-04-12"
	d.PrimaryService = "svc-plumbing"
	d.Experience = "8"
	d.Address = "12 MG Road"
	d.City = "Pune"
	d.Area = "Kothrud"
	d.Pincode = "411038"
	d.WorkingDays = []string{"Monday", "Wednesday"}
	d.AdditionalSkills = "welding, tiling"
	return d
}

func newWizard(t *testing.T, baseURL string) *Wizard {
	t.Helper()
	client := api.NewClient(config.APIConfig{BaseURL: baseURL}, zap.NewNop())
	return New(client, notify.NewNotifier(), zap.NewNop())
}

func TestValidateStepGates(t *testing.T) {
	cases := []struct {
		name   string
		step   Step
		mutate func(*Draft)
		wantOK bool
	}{
		{"personal complete", StepPersonal, func(d *Draft) {}, true},
		{"personal missing owner", StepPersonal, func(d *Draft) { d.OwnerName = "" }, false},
		{"personal missing dob", StepPersonal, func(d *Draft) { d.DOB = "" }, false},
		{"personal bad email", StepPersonal, func(d *Draft) { d.Email = "ravi.fixit.in" }, false},
		{"professional complete", StepProfessional, func(d *Draft) {}, true},
		{"professional other service only", StepProfessional, func(d *Draft) {
			d.PrimaryService = ""
			d.OtherServices = "Piano Tuning"
		}, true},
		{"professional no service", StepProfessional, func(d *Draft) {
			d.PrimaryService = ""
			d.OtherServices = ""
		}, false},
		{"professional no experience", StepProfessional, func(d *Draft) { d.Experience = "" }, false},
		{"operational complete", StepOperational, func(d *Draft) {}, true},
		{"operational missing pincode", StepOperational, func(d *Draft) { d.Pincode = "" }, false},
		{"verification never gated", StepVerification, func(d *Draft) { d.IDNumber = "" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(d)
			err := ValidateStep(tc.step, d)
			if (err == nil) != tc.wantOK {
				t.Errorf("ValidateStep(%v) error = %v, wantOK %v", tc.step, err, tc.wantOK)
			}
		})
	}
}

func TestNextBlockedStepKeepsDataIntact(t *testing.T) {
	w := newWizard(t, "http://127.0.0.1:0")
	d := w.Draft()
	*d = *validDraft()
	d.OwnerName = ""
	d.Address = "somewhere" // later-step data must survive the failed gate

	if w.Next() {
		t.Fatal("Next should fail with an empty required field")
	}
	if w.Step() != StepPersonal {
		t.Errorf("step moved to %v", w.Step())
	}
	if w.Draft().Address != "somewhere" || w.Draft().Experience != "8" {
		t.Error("a failed gate must not mutate other steps' data")
	}
}

func TestPrevIsNeverGated(t *testing.T) {
	w := newWizard(t, "http://127.0.0.1:0")
	*w.Draft() = *validDraft()
	if !w.Next() || !w.Next() {
		t.Fatal("expected forward navigation to pass")
	}
	// Clear a step-one field; going back must still work.
	w.Draft().OwnerName = ""
	w.Prev()
	if w.Step() != StepProfessional {
		t.Errorf("got step %v, want %v", w.Step(), StepProfessional)
	}
	w.Prev()
	w.Prev() // already at the first step; stays put
	if w.Step() != StepPersonal {
		t.Errorf("got step %v, want %v", w.Step(), StepPersonal)
	}
}

func TestBuildFormSerialization(t *testing.T) {
	d := validDraft()
	d.ProfilePhoto = &Attachment{Name: "me.png", MIME: "image/png", Data: []byte{1, 2}}
	d.IDImage = &Attachment{Name: "id.jpg", MIME: "image/jpeg", Data: []byte{3}}

	form, err := BuildForm(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := form.Fields["workingHours"]; got != `{"end":"18:00","start":"09:00"}` {
		t.Errorf("workingHours = %s", got)
	}
	var days []string
	if err := json.Unmarshal([]byte(form.Fields["workingDays"]), &days); err != nil {
		t.Fatalf("workingDays not JSON: %v", err)
	}
	if !reflect.DeepEqual(days, []string{"Monday", "Wednesday"}) {
		t.Errorf("workingDays = %v", days)
	}
	var skills []string
	if err := json.Unmarshal([]byte(form.Fields["additionalSkills"]), &skills); err != nil {
		t.Fatalf("additionalSkills not JSON: %v", err)
	}
	if !reflect.DeepEqual(skills, []string{"welding", "tiling"}) {
		t.Errorf("additionalSkills = %v", skills)
	}
	if form.Fields["emergencyAvailability"] != "false" {
		t.Errorf("emergencyAvailability = %s", form.Fields["emergencyAvailability"])
	}
	if len(form.Files) != 2 {
		t.Fatalf("got %d files, want 2 (certification skipped)", len(form.Files))
	}
}

func TestBuildFormEmptyListsStayLists(t *testing.T) {
	d := validDraft()
	d.WorkingDays = nil
	d.AdditionalSkills = "  "

	form, err := BuildForm(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if form.Fields["workingDays"] != "[]" {
		t.Errorf("workingDays = %s, want []", form.Fields["workingDays"])
	}
	if form.Fields["additionalSkills"] != "[]" {
		t.Errorf("additionalSkills = %s, want []", form.Fields["additionalSkills"])
	}
}

func TestSubmitSingleMultipartPost(t *testing.T) {
	srv, err := apitest.NewServer()
	if err != nil {
		t.Fatalf("failed to start fake api: %v", err)
	}
	defer srv.Close()

	w := newWizard(t, srv.URL)
	*w.Draft() = *validDraft()
	w.Draft().IDNumber = "1234-5678-9012"

	for step := StepPersonal; step < StepVerification; step++ {
		if !w.Next() {
			t.Fatalf("gate failed at step %v", step)
		}
	}
	if err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if w.Step() != StepDone {
		t.Errorf("got step %v, want %v", w.Step(), StepDone)
	}
	if got := srv.EnrollmentCount(); got != 1 {
		t.Fatalf("got %d submissions, want exactly 1", got)
	}

	capture, ok := srv.LastEnrollment()
	if !ok {
		t.Fatal("no enrollment captured")
	}
	if capture.Values["workingHours"] != `{"end":"18:00","start":"09:00"}` {
		t.Errorf("workingHours on the wire = %s", capture.Values["workingHours"])
	}
	var days []string
	if err := json.Unmarshal([]byte(capture.Values["workingDays"]), &days); err != nil {
		t.Fatalf("workingDays on the wire not JSON: %v", err)
	}
	if !reflect.DeepEqual(days, []string{"Monday", "Wednesday"}) {
		t.Errorf("workingDays on the wire = %v", days)
	}
	if capture.Values["idNumber"] != "1234-5678-9012" {
		t.Errorf("idNumber on the wire = %s", capture.Values["idNumber"])
	}
}

func TestSubmitFailureStaysOnVerification(t *testing.T) {
	srv, err := apitest.NewServer()
	if err != nil {
		t.Fatalf("failed to start fake api: %v", err)
	}
	url := srv.URL
	srv.Close() // submissions now fail at the transport

	w := newWizard(t, url)
	*w.Draft() = *validDraft()
	for step := StepPersonal; step < StepVerification; step++ {
		if !w.Next() {
			t.Fatalf("gate failed at step %v", step)
		}
	}
	if err := w.Submit(context.Background()); err == nil {
		t.Fatal("expected submit to fail")
	}
	if w.Step() != StepVerification {
		t.Errorf("got step %v, want to stay at %v", w.Step(), StepVerification)
	}

	// A manual retry resubmits the whole payload from the same step.
	if err := w.Submit(context.Background()); err == nil {
		t.Fatal("expected retry to fail too")
	}
	if w.Step() != StepVerification {
		t.Errorf("retry moved step to %v", w.Step())
	}
}

func TestSubmitOnlyFromVerification(t *testing.T) {
	w := newWizard(t, "http://127.0.0.1:0")
	if err := w.Submit(context.Background()); err == nil {
		t.Fatal("expected submit from step one to be rejected")
	}
	if w.Step() != StepPersonal {
		t.Errorf("step moved to %v", w.Step())
	}
}

func TestAttachmentPreviewDataURL(t *testing.T) {
	att := &Attachment{Name: "x.png", MIME: "image/png", Data: []byte("ab")}
	if got := att.PreviewDataURL(); got != "data:image/png;base64,YWI=" {
		t.Errorf("got %q", got)
	}
	var missing *Attachment
	if missing.PreviewDataURL() != "" {
		t.Error("nil attachment should render no preview")
	}
}
