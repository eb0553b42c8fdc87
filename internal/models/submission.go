package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/langpal/langpal-api/pkg/constants"
)

// Category names the kind of submission and is the first segment of every store key.
type Category string

const (
	CategoryWaitlist        Category = "waitlist"
	CategoryContact         Category = "contact"
	CategoryTeamApplication Category = "team-application"
)

// Prefix is the key prefix shared by every record of the category.
func (c Category) Prefix() string {
	return string(c) + ":"
}

func (c Category) Valid() bool {
	switch c {
	case CategoryWaitlist, CategoryContact, CategoryTeamApplication:
		return true
	default:
		return false
	}
}

// TeamPositions lists the roles the team application form offers.
var TeamPositions = []string{
	"Business",
	"Marketing/Content Creation",
	"Mobile App Developer",
	"Web Developer",
	"Graphic Designer",
	"UI/UX Engineer",
	"Other",
}

func IsTeamPosition(position string) bool {
	for _, p := range TeamPositions {
		if p == position {
			return true
		}
	}
	return false
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(constants.SubmissionTimestampFormat)
}

// BuildKey returns "{category}:{email}:{timestamp}". The email is used verbatim, so two
// submissions from the same address in the same millisecond share a key.
func BuildKey(category Category, email, timestamp string) string {
	return fmt.Sprintf("%s%s:%s", category.Prefix(), email, timestamp)
}

// SplitKey undoes BuildKey. Emails may contain ':' so the timestamp is taken from the right.
func SplitKey(key string) (category Category, email, timestamp string, ok bool) {
	first := strings.Index(key, ":")
	if first < 0 {
		return "", "", "", false
	}
	last := strings.LastIndex(key, ":")
	// The timestamp itself contains two ':' (HH:MM:SS).
	for i := 0; i < 2 && last > first; i++ {
		last = strings.LastIndex(key[:last], ":")
	}
	if last <= first {
		return "", "", "", false
	}

	category = Category(key[:first])
	if !category.Valid() {
		return "", "", "", false
	}

	return category, key[first+1 : last], key[last+1:], true
}

// Submission is a record that can be persisted under a composite key.
type Submission interface {
	Category() Category
	Key() string
	Fields() map[string]any
}

type WaitlistEntry struct {
	Name      string
	Email     string
	Phone     string
	Consent   bool
	Timestamp string
}

func (w *WaitlistEntry) Category() Category { return CategoryWaitlist }

func (w *WaitlistEntry) Key() string { return BuildKey(CategoryWaitlist, w.Email, w.Timestamp) }

func (w *WaitlistEntry) Fields() map[string]any {
	return map[string]any{
		"name":      w.Name,
		"email":     w.Email,
		"phone":     w.Phone,
		"consent":   w.Consent,
		"timestamp": w.Timestamp,
	}
}

type ContactMessage struct {
	Name      string
	Email     string
	Subject   string
	Message   string
	Consent   bool
	Timestamp string
}

func (c *ContactMessage) Category() Category { return CategoryContact }

func (c *ContactMessage) Key() string { return BuildKey(CategoryContact, c.Email, c.Timestamp) }

func (c *ContactMessage) Fields() map[string]any {
	return map[string]any{
		"name":      c.Name,
		"email":     c.Email,
		"subject":   c.Subject,
		"message":   c.Message,
		"consent":   c.Consent,
		"timestamp": c.Timestamp,
	}
}

type TeamApplication struct {
	Name             string
	Email            string
	Phone            string
	Position         string
	MarketingConsent bool
	Timestamp        string
}

func (t *TeamApplication) Category() Category { return CategoryTeamApplication }

func (t *TeamApplication) Key() string {
	return BuildKey(CategoryTeamApplication, t.Email, t.Timestamp)
}

func (t *TeamApplication) Fields() map[string]any {
	return map[string]any{
		"name":             t.Name,
		"email":            t.Email,
		"phone":            t.Phone,
		"position":         t.Position,
		"marketingConsent": t.MarketingConsent,
		"timestamp":        t.Timestamp,
	}
}
