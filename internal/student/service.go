package student

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Store is the persistence surface the service needs.
type Store interface {
	Insert(ctx context.Context, s Student) (Student, error)
	GetByReference(ctx context.Context, reference string) (*Student, error)
	GetByID(ctx context.Context, id string) (*Student, error)
	List(ctx context.Context) ([]Student, error)
	MarkPaid(ctx context.Context, reference, passwordHash string, polaroid, album *int) (bool, error)
	SetPhotoStatus(ctx context.Context, reference, status string) (bool, error)
}

// Service coordinates registration, the payment transition and status updates.
type Service struct {
	store Store
	rule  ReferenceRule
}

// NewService creates a service backed by a store.
func NewService(store Store, rule ReferenceRule) *Service {
	return &Service{store: store, rule: rule}
}

// NormalizeReference exposes the configured reference rule.
func (s *Service) NormalizeReference(raw string) (string, error) {
	return s.rule.Normalize(raw)
}

// Register creates an UNPAID/Pending student and returns the record together
// with the plaintext credential. The plaintext is not retrievable afterwards.
func (s *Service) Register(ctx context.Context, name, reference string) (Student, string, error) {
	if name == "" {
		return Student{}, "", fmt.Errorf("%w: name required", ErrInvalidInput)
	}
	ref, err := s.rule.Normalize(reference)
	if err != nil {
		return Student{}, "", err
	}
	if existing, err := s.store.GetByReference(ctx, ref); err != nil {
		return Student{}, "", err
	} else if existing != nil {
		return Student{}, "", ErrAlreadyRegistered
	}

	password := GeneratePassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return Student{}, "", fmt.Errorf("hash password: %w", err)
	}

	created, err := s.store.Insert(ctx, Student{
		Name:         name,
		Reference:    ref,
		PasswordHash: string(hash),
	})
	if err != nil {
		return Student{}, "", err
	}
	return created, password, nil
}

// Check reports whether a reference is already registered.
func (s *Service) Check(ctx context.Context, reference string) (bool, error) {
	ref, err := s.rule.Normalize(reference)
	if err != nil {
		return false, err
	}
	existing, err := s.store.GetByReference(ctx, ref)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// Pay transitions a student to PAID, replaces the credential and returns the
// new plaintext. It fails with ErrAlreadyPaid when the transition already
// happened, including when a concurrent request won the conditional update.
func (s *Service) Pay(ctx context.Context, reference string, polaroid, album *int) (string, error) {
	ref, err := s.rule.Normalize(reference)
	if err != nil {
		return "", err
	}
	existing, err := s.store.GetByReference(ctx, ref)
	if err != nil {
		return "", err
	}
	if existing == nil {
		return "", ErrNotFound
	}
	if existing.PaymentStatus == PaymentPaid {
		return "", ErrAlreadyPaid
	}

	password := GeneratePassword()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	ok, err := s.store.MarkPaid(ctx, ref, string(hash), polaroid, album)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrAlreadyPaid
	}
	return password, nil
}

// SetPhotoStatus updates the photo-processing status field.
func (s *Service) SetPhotoStatus(ctx context.Context, reference, status string) error {
	ref, err := s.rule.Normalize(reference)
	if err != nil {
		return err
	}
	if !ValidPhotoStatus(status) {
		return fmt.Errorf("%w: unknown photo status %q", ErrInvalidInput, status)
	}
	ok, err := s.store.SetPhotoStatus(ctx, ref, status)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

// Get returns a student by id.
func (s *Service) Get(ctx context.Context, id string) (*Student, error) {
	return s.store.GetByID(ctx, id)
}

// GetByReference returns a student by its canonical reference.
func (s *Service) GetByReference(ctx context.Context, reference string) (*Student, error) {
	ref, err := s.rule.Normalize(reference)
	if err != nil {
		return nil, err
	}
	return s.store.GetByReference(ctx, ref)
}

// List returns all students.
func (s *Service) List(ctx context.Context) ([]Student, error) {
	return s.store.List(ctx)
}

// Authenticate verifies a reference/password pair. Every failure mode — unknown
// reference, unpaid student, wrong password — returns the same error so the
// response cannot be used to enumerate registered references.
func (s *Service) Authenticate(ctx context.Context, reference, password string) (*Student, error) {
	ref, err := s.rule.Normalize(reference)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	existing, err := s.store.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.PaymentStatus != PaymentPaid {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return existing, nil
}
