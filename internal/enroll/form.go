package enroll

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/Amanjarngal/localfix-client/internal/api"
	apperrors "github.com/Amanjarngal/localfix-client/pkg/util"
)

// BuildForm serializes a draft into the single multipart payload the
// enrollment endpoint expects: workingDays and additionalSkills as
// JSON-encoded lists, workingHours as a JSON object synthesized from the
// two time fields, everything else as plain fields.
func BuildForm(d *Draft) (api.EnrollmentForm, error) {
	fields := map[string]string{
		"ownerName":             d.OwnerName,
		"email":                 d.Email,
		"businessName":          d.BusinessName,
		"phone":                 d.Phone,
		"dob":                   d.DOB,
		"gender":                d.Gender,
		"primaryService":        d.PrimaryService,
		"otherServices":         d.OtherServices,
		"experience":            d.Experience,
		"serviceCategory":       d.ServiceCategory,
		"description":           d.Description,
		"address":               d.Address,
		"city":                  d.City,
		"area":                  d.Area,
		"pincode":               d.Pincode,
		"emergencyAvailability": strconv.FormatBool(d.EmergencyAvailability),
		"idType":                d.IDType,
		"idNumber":              d.IDNumber,
	}

	workingDays := d.WorkingDays
	if workingDays == nil {
		workingDays = []string{}
	}
	daysJSON, err := json.Marshal(workingDays)
	if err != nil {
		return api.EnrollmentForm{}, apperrors.NewInternalError(err)
	}
	fields["workingDays"] = string(daysJSON)

	skillsJSON, err := json.Marshal(splitSkills(d.AdditionalSkills))
	if err != nil {
		return api.EnrollmentForm{}, apperrors.NewInternalError(err)
	}
	fields["additionalSkills"] = string(skillsJSON)

	hoursJSON, err := json.Marshal(map[string]string{
		"start": d.WorkingHoursStart,
		"end":   d.WorkingHoursEnd,
	})
	if err != nil {
		return api.EnrollmentForm{}, apperrors.NewInternalError(err)
	}
	fields["workingHours"] = string(hoursJSON)

	form := api.EnrollmentForm{Fields: fields}
	form.Files = appendFile(form.Files, "profilePhoto", d.ProfilePhoto)
	form.Files = appendFile(form.Files, "certification", d.Certification)
	form.Files = appendFile(form.Files, "idImage", d.IDImage)
	return form, nil
}

// splitSkills turns the comma-separated free text into a trimmed list;
// empty input yields an empty list, not a list of one empty string.
func splitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, part := range parts {
		skills = append(skills, strings.TrimSpace(part))
	}
	return skills
}

func appendFile(files []api.FileAttachment, field string, att *Attachment) []api.FileAttachment {
	if att == nil || len(att.Data) == 0 {
		return files
	}
	return append(files, api.FileAttachment{
		Field: field,
		Name:  att.Name,
		MIME:  att.MIME,
		Data:  att.Data,
	})
}
