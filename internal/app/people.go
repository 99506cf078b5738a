package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel_booking/internal/domain"
)

type PersonService struct {
	store domain.Store
}

func NewPersonService(s domain.Store) *PersonService {
	return &PersonService{store: s}
}

func (s *PersonService) List(ctx context.Context) ([]domain.Person, error) {
	return s.store.People(ctx)
}

func (s *PersonService) FindByID(ctx context.Context, id string) (domain.Person, error) {
	return s.store.Person(ctx, id)
}

// FindByEmail returns the first person whose email matches, ignoring case.
func (s *PersonService) FindByEmail(ctx context.Context, email string) (domain.Person, error) {
	email = strings.TrimSpace(email)
	return s.first(ctx, func(p domain.Person) bool { return email != "" && strings.EqualFold(p.Email, email) })
}

func (s *PersonService) FindByPhone(ctx context.Context, phone string) (domain.Person, error) {
	phone = strings.TrimSpace(phone)
	return s.first(ctx, func(p domain.Person) bool { return phone != "" && p.Phone == phone })
}

func (s *PersonService) Create(ctx context.Context, g domain.Guest) (domain.Person, error) {
	if strings.TrimSpace(g.FirstName) == "" || strings.TrimSpace(g.LastName) == "" {
		return domain.Person{}, fmt.Errorf("first and last name required: %w", domain.ErrInvalidInput)
	}
	return s.store.InsertPerson(ctx, domain.Person{
		FirstName: strings.TrimSpace(g.FirstName),
		LastName:  strings.TrimSpace(g.LastName),
		Email:     strings.TrimSpace(g.Email),
		Phone:     strings.TrimSpace(g.Phone),
	})
}

// AddLoyaltyPoints credits points to the person. An unknown id is silently ignored.
func (s *PersonService) AddLoyaltyPoints(ctx context.Context, id string, points int) error {
	if points < 0 {
		return fmt.Errorf("loyalty points must not be negative: %w", domain.ErrInvalidInput)
	}
	_, err := s.store.AddLoyaltyPoints(ctx, id, points)
	if errors.Is(err, domain.ErrPersonNotFound) {
		return nil
	}
	return err
}

func (s *PersonService) first(ctx context.Context, match func(domain.Person) bool) (domain.Person, error) {
	all, err := s.store.People(ctx)
	if err != nil {
		return domain.Person{}, err
	}
	for _, p := range all {
		if match(p) {
			return p, nil
		}
	}
	return domain.Person{}, domain.ErrPersonNotFound
}
