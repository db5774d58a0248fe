package enroll

import "encoding/base64"

// DaysOfWeek lists the selectable working days in display order.
var DaysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Attachment is one uploaded document kept in wizard memory: the raw
// bytes for the final submission plus enough to build a local preview.
// No type or size enforcement happens client-side.
type Attachment struct {
	Name string
	MIME string
	Data []byte
}

// PreviewDataURL renders the attachment as a data URL for display.
func (a *Attachment) PreviewDataURL() string {
	if a == nil || len(a.Data) == 0 {
		return ""
	}
	mime := a.MIME
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

// Draft holds all four steps' field values. It exists only in wizard
// memory and is never persisted before the final submission.
type Draft struct {
	// Step 1: personal / contact
	OwnerName    string
	Email        string
	BusinessName string
	Phone        string
	DOB          string
	Gender       string
	ProfilePhoto *Attachment

	// Step 2: professional
	PrimaryService   string
	OtherServices    string
	Experience       string
	ServiceCategory  string
	Description      string
	AdditionalSkills string
	Certification    *Attachment

	// Step 3: operational
	Address               string
	City                  string
	Area                  string
	Pincode               string
	WorkingDays           []string
	WorkingHoursStart     string
	WorkingHoursEnd       string
	EmergencyAvailability bool

	// Step 4: verification
	IDType   string
	IDNumber string
	IDImage  *Attachment
}

// NewDraft returns a draft with the form's defaults.
func NewDraft() *Draft {
	return &Draft{
		Gender:            "Male",
		WorkingHoursStart: "09:00",
		WorkingHoursEnd:   "18:00",
		IDType:            "Aadhar",
	}
}

// ToggleWorkingDay checks or unchecks one day.
func (d *Draft) ToggleWorkingDay(day string) {
	for i, existing := range d.WorkingDays {
		if existing == day {
			d.WorkingDays = append(d.WorkingDays[:i], d.WorkingDays[i+1:]...)
			return
		}
	}
	d.WorkingDays = append(d.WorkingDays, day)
}

// HasWorkingDay reports whether a day is checked.
func (d *Draft) HasWorkingDay(day string) bool {
	for _, existing := range d.WorkingDays {
		if existing == day {
			return true
		}
	}
	return false
}
