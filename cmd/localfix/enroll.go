package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Amanjarngal/localfix-client/internal/enroll"
)

// cmdEnroll walks the four-step provider application. Each forward step
// runs the wizard's gate; a failed gate keeps the prompt on the same
// step, exactly like the form.
func (a *app) cmdEnroll(ctx context.Context) {
	wizard := enroll.New(a.client, a.notifier, a.logger)

	for wizard.Step() != enroll.StepDone {
		step := wizard.Step()
		fmt.Printf("\n— Step %d of 4: %s —\n", step, step.Name())
		switch step {
		case enroll.StepPersonal:
			a.fillPersonal(wizard.Draft())
		case enroll.StepProfessional:
			a.fillProfessional(ctx, wizard.Draft())
		case enroll.StepOperational:
			a.fillOperational(wizard.Draft())
		case enroll.StepVerification:
			a.fillVerification(wizard.Draft())
		}

		if step < enroll.StepVerification {
			switch a.readLine("[n]ext, [p]revious, [q]uit: ") {
			case "p":
				wizard.Prev()
			case "q":
				return
			default:
				// A failed gate keeps the step; re-prompt the same
				// section with the values kept.
				wizard.Next()
			}
			continue
		}

		switch a.readLine("[s]ubmit, [p]revious, [q]uit: ") {
		case "p":
			wizard.Prev()
		case "q":
			return
		default:
			// A failed submission leaves the wizard here for retry.
			_ = wizard.Submit(ctx)
		}
	}

	fmt.Println("Application submitted! Our team will review it within 2-3 business days.")
}

func (a *app) fillPersonal(draft *enroll.Draft) {
	draft.OwnerName = a.readDefault("Owner full name", draft.OwnerName)
	draft.Email = a.readDefault("Email", draft.Email)
	draft.BusinessName = a.readDefault("Business name", draft.BusinessName)
	draft.Phone = a.readDefault("Phone", draft.Phone)
	draft.DOB = a.readDefault("Date of birth (YYYY-MM-DD)", draft.DOB)
	draft.Gender = a.readDefault("Gender", draft.Gender)
	draft.ProfilePhoto = a.readAttachment("Profile photo path (blank to skip)")
}

func (a *app) fillProfessional(ctx context.Context, draft *enroll.Draft) {
	if err := a.browser.Load(ctx); err == nil {
		for i, service := range a.browser.Services() {
			fmt.Printf("%2d. %s\n", i+1, service.Name)
		}
	}
	draft.PrimaryService = a.readDefault("Primary service id (blank if other)", draft.PrimaryService)
	if draft.PrimaryService == "" {
		draft.OtherServices = a.readDefault("Specify service", draft.OtherServices)
	}
	draft.Experience = a.readDefault("Years of experience", draft.Experience)
	draft.Description = a.readDefault("Description / bio", draft.Description)
	draft.AdditionalSkills = a.readDefault("Additional skills (comma separated)", draft.AdditionalSkills)
	draft.Certification = a.readAttachment("Certification path (blank to skip)")
}

func (a *app) fillOperational(draft *enroll.Draft) {
	draft.Address = a.readDefault("Full address", draft.Address)
	draft.City = a.readDefault("City", draft.City)
	draft.Area = a.readDefault("Area / locality", draft.Area)
	draft.Pincode = a.readDefault("Pincode", draft.Pincode)
	days := a.readDefault("Working days (comma separated)", strings.Join(draft.WorkingDays, ","))
	draft.WorkingDays = nil
	for _, day := range strings.Split(days, ",") {
		if day = strings.TrimSpace(day); day != "" {
			draft.WorkingDays = append(draft.WorkingDays, day)
		}
	}
	draft.WorkingHoursStart = a.readDefault("Working hours start", draft.WorkingHoursStart)
	draft.WorkingHoursEnd = a.readDefault("Working hours end", draft.WorkingHoursEnd)
	draft.EmergencyAvailability = a.confirm("Available for emergency calls?")
}

func (a *app) fillVerification(draft *enroll.Draft) {
	draft.IDType = a.readDefault("ID proof type (Aadhar/PAN/Driving License/Passport)", draft.IDType)
	draft.IDNumber = a.readDefault("ID number", draft.IDNumber)
	draft.IDImage = a.readAttachment("ID image path (blank to skip)")
}

func (a *app) readDefault(prompt, current string) string {
	suffix := ": "
	if current != "" {
		suffix = " [" + current + "]: "
	}
	if value := a.readLine(prompt + suffix); value != "" {
		return value
	}
	return current
}

// readAttachment loads a local file into wizard memory and echoes the
// preview size, the shell's version of the form's thumbnail.
func (a *app) readAttachment(prompt string) *enroll.Attachment {
	path := a.readLine(prompt + ": ")
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		a.notifier.Error("Could not read file: " + err.Error())
		return nil
	}
	att := &enroll.Attachment{Name: filepath.Base(path), MIME: mimeFromExt(path), Data: data}
	fmt.Printf("attached %s (%d bytes)\n", att.Name, len(att.Data))
	return att
}

func mimeFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
