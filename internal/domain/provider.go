package domain

import "time"

// ApplicationStatus enumerates review states for provider applications.
// Transitions out of pending are terminal and one-way from the client's
// perspective.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// WorkingHours is the daily availability window of a provider.
type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ProviderApplication captures business identity, contact info and
// verification documents of a would-be service professional.
type ProviderApplication struct {
	ID                    string            `json:"_id"`
	OwnerName             string            `json:"ownerName"`
	Email                 string            `json:"email"`
	BusinessName          string            `json:"businessName"`
	Phone                 string            `json:"phone"`
	DOB                   string            `json:"dob"`
	Gender                string            `json:"gender"`
	PrimaryService        string            `json:"primaryService"`
	OtherServices         string            `json:"otherServices"`
	Experience            string            `json:"experience"`
	ServiceCategory       string            `json:"serviceCategory"`
	Description           string            `json:"description"`
	AdditionalSkills      []string          `json:"additionalSkills"`
	Address               string            `json:"address"`
	City                  string            `json:"city"`
	Area                  string            `json:"area"`
	Pincode               string            `json:"pincode"`
	WorkingDays           []string          `json:"workingDays"`
	WorkingHours          WorkingHours      `json:"workingHours"`
	EmergencyAvailability bool              `json:"emergencyAvailability"`
	IDType                string            `json:"idType"`
	IDNumber              string            `json:"idNumber"`
	Status                ApplicationStatus `json:"status"`
	CreatedAt             time.Time         `json:"createdAt"`
}
