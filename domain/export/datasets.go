package export

import (
	"github.com/langpal/langpal-api/internal/models"
)

// Dataset describes one CSV export: which records it reads and how columns map to fields.
type Dataset struct {
	Name           string
	Category       models.Category
	Filename       string
	Header         []string
	Fields         []string
	FailureMessage string
}

var (
	WaitlistDataset = Dataset{
		Name:           "waitlist",
		Category:       models.CategoryWaitlist,
		Filename:       "langpal-waitlist.csv",
		Header:         []string{"Name", "Email", "Phone", "Consent", "Timestamp"},
		Fields:         []string{"name", "email", "phone", "consent", "timestamp"},
		FailureMessage: "Failed to export waitlist",
	}

	ContactDataset = Dataset{
		Name:           "contact",
		Category:       models.CategoryContact,
		Filename:       "langpal-contacts.csv",
		Header:         []string{"Name", "Email", "Subject", "Message", "Consent", "Timestamp"},
		Fields:         []string{"name", "email", "subject", "message", "consent", "timestamp"},
		FailureMessage: "Failed to export contacts",
	}

	TeamApplicationsDataset = Dataset{
		Name:           "team-applications",
		Category:       models.CategoryTeamApplication,
		Filename:       "langpal-team-applications.csv",
		Header:         []string{"Name", "Email", "Phone", "Position", "Marketing Consent", "Timestamp"},
		Fields:         []string{"name", "email", "phone", "position", "marketingConsent", "timestamp"},
		FailureMessage: "Failed to export team applications",
	}
)

// Datasets lists every export in route order.
var Datasets = []Dataset{WaitlistDataset, ContactDataset, TeamApplicationsDataset}

func LookupDataset(name string) (Dataset, bool) {
	for _, d := range Datasets {
		if d.Name == name {
			return d, true
		}
	}
	return Dataset{}, false
}
