package student

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Payment status values. The transition is one-way: UNPAID -> PAID.
const (
	PaymentUnpaid = "UNPAID"
	PaymentPaid   = "PAID"
)

// Photo status values. Settable in any order by the admin.
const (
	PhotoPending    = "Pending"
	PhotoProcessing = "Processing"
	PhotoReady      = "Ready"
)

var (
	ErrNotFound           = errors.New("student not found")
	ErrAlreadyRegistered  = errors.New("reference already registered")
	ErrAlreadyPaid        = errors.New("student already paid")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidInput wraps all caller-fixable validation failures so handlers
	// can map them to 400 instead of 500.
	ErrInvalidInput = errors.New("invalid input")
)

// Student is an attendee record. PasswordHash never leaves the server;
// the plaintext credential is returned once at generation time and not stored.
type Student struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Reference        string    `json:"reference"`
	PasswordHash     string    `json:"-"`
	PaymentStatus    string    `json:"payment_status"`
	PhotoStatus      string    `json:"photo_status"`
	PolaroidQuantity int       `json:"polaroid_quantity"`
	AlbumQuantity    int       `json:"album_quantity"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ReferenceRule validates and normalizes the external identifier used to look
// students up and to name their storage folder.
type ReferenceRule struct {
	Kind       string // "phone" or "roll"
	RollLength int
}

// Normalize validates a raw reference and returns its canonical form.
func (r ReferenceRule) Normalize(raw string) (string, error) {
	switch r.Kind {
	case "roll":
		ref := strings.TrimSpace(raw)
		if len(ref) != r.RollLength || !allDigits(ref) {
			return "", fmt.Errorf("%w: roll number must be %d digits", ErrInvalidInput, r.RollLength)
		}
		return ref, nil
	default: // phone
		ref := strings.Map(func(c rune) rune {
			if c == '+' || c == '-' || unicode.IsSpace(c) {
				return -1
			}
			return c
		}, raw)
		if len(ref) < 10 || len(ref) > 15 || !allDigits(ref) {
			return "", fmt.Errorf("%w: phone number must be 10-15 digits", ErrInvalidInput)
		}
		return ref, nil
	}
}

// ValidPhotoStatus reports whether s is one of the known photo statuses.
func ValidPhotoStatus(s string) bool {
	return s == PhotoPending || s == PhotoProcessing || s == PhotoReady
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}
