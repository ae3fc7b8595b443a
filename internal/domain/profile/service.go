package profile

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Service handles profile business logic for both marketplace roles.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateForAccount creates the role profile for a freshly registered user.
// Customers get a referral code derived from their user id.
func (s *Service) CreateForAccount(ctx context.Context, userID string, accountType AccountType, fullName string) error {
	now := time.Now()
	switch accountType {
	case AccountTypeCustomer:
		return s.repo.CreateCustomer(ctx, &CustomerProfile{
			ID:           uuid.New().String(),
			UserID:       userID,
			FullName:     fullName,
			ReferralCode: ReferralCode(userID),
			CreatedAt:    now,
		})
	default:
		return s.repo.CreateProfessional(ctx, &ProfessionalProfile{
			ID:        uuid.New().String(),
			UserID:    userID,
			FullName:  fullName,
			Skills:    []string{},
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
}

// encodeSkills matches the json serializer used on the skills column, since
// map-based updates bypass gorm's field serializers.
func encodeSkills(skills []string) string {
	b, _ := json.Marshal(skills)
	return string(b)
}

// ReferralCode derives the shareable code from a user id.
func ReferralCode(userID string) string {
	trimmed := strings.ReplaceAll(userID, "-", "")
	if len(trimmed) > 4 {
		trimmed = trimmed[:4]
	}
	return "HANDY" + strings.ToUpper(trimmed)
}

// GetOwnProfessional returns the owner view: public row merged with the
// private contact record. Only the profile owner reaches this path.
func (s *Service) GetOwnProfessional(ctx context.Context, userID string) (*OwnerProfile, error) {
	p, err := s.repo.GetProfessionalByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := &OwnerProfile{ProfessionalProfile: *p}

	priv, err := s.repo.GetPrivate(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	if priv != nil {
		merged.PhoneNumber = priv.PhoneNumber
		merged.WhatsappNumber = priv.WhatsappNumber
	}
	return merged, nil
}

// GetPublicProfessional returns public fields only. The private record is
// never consulted here.
func (s *Service) GetPublicProfessional(ctx context.Context, profileID string) (*ProfessionalProfile, error) {
	return s.repo.GetProfessionalByID(ctx, profileID)
}

// UpdateProfessional splits the request into public-row updates and private
// contact upserts.
func (s *Service) UpdateProfessional(ctx context.Context, userID string, req UpdateRequest) (*OwnerProfile, error) {
	p, err := s.repo.GetProfessionalByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	public := map[string]any{}
	if req.FullName != nil {
		public["full_name"] = *req.FullName
	}
	if req.Profession != nil {
		public["profession"] = *req.Profession
	}
	if req.Bio != nil {
		public["bio"] = *req.Bio
	}
	if req.Location != nil {
		public["location"] = *req.Location
	}
	if req.Skills != nil {
		public["skills"] = encodeSkills(*req.Skills)
	}
	if req.DailyRate != nil {
		public["daily_rate"] = *req.DailyRate
	}
	if req.ContractRate != nil {
		public["contract_rate"] = *req.ContractRate
	}
	if req.AvatarURL != nil {
		public["avatar_url"] = *req.AvatarURL
	}

	if len(public) > 0 {
		public["updated_at"] = time.Now()
		if err := s.repo.UpdateProfessional(ctx, p.ID, public); err != nil {
			return nil, err
		}
	}

	if req.PhoneNumber != nil || req.WhatsappNumber != nil {
		priv, err := s.repo.GetPrivate(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if priv == nil {
			priv = &ProfessionalPrivate{ProfileID: p.ID}
		}
		if req.PhoneNumber != nil {
			priv.PhoneNumber = *req.PhoneNumber
		}
		if req.WhatsappNumber != nil {
			priv.WhatsappNumber = *req.WhatsappNumber
		}
		priv.UpdatedAt = time.Now()
		if err := s.repo.UpsertPrivate(ctx, priv); err != nil {
			return nil, err
		}
	}

	return s.GetOwnProfessional(ctx, userID)
}

// ListProfessionals is the public directory; private fields are untouched.
func (s *Service) ListProfessionals(ctx context.Context, profession, location string) ([]*ProfessionalProfile, error) {
	return s.repo.ListProfessionals(ctx, profession, location)
}

func (s *Service) GetCustomer(ctx context.Context, userID string) (*CustomerProfile, error) {
	return s.repo.GetCustomerByUserID(ctx, userID)
}

func (s *Service) UpdateCustomer(ctx context.Context, userID string, req UpdateCustomerRequest) (*CustomerProfile, error) {
	c, err := s.repo.GetCustomerByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if len(updates) > 0 {
		if err := s.repo.UpdateCustomer(ctx, c.ID, updates); err != nil {
			return nil, err
		}
	}
	return s.repo.GetCustomerByUserID(ctx, userID)
}

// ProfessionalIDByUser returns the professional profile id for a user, or ""
// when the user holds no professional role. Roles are not exclusive; callers
// checking relationships must consult both lookups.
func (s *Service) ProfessionalIDByUser(ctx context.Context, userID string) (string, error) {
	p, err := s.repo.GetProfessionalByUserID(ctx, userID)
	if errors.Is(err, ErrProfileNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

// CustomerIDByUser returns the customer profile id for a user, or "" when
// the user holds no customer role.
func (s *Service) CustomerIDByUser(ctx context.Context, userID string) (string, error) {
	c, err := s.repo.GetCustomerByUserID(ctx, userID)
	if errors.Is(err, ErrCustomerNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return c.ID, nil
}

// UserIDByProfessional resolves a professional profile id back to the owning
// user id.
func (s *Service) UserIDByProfessional(ctx context.Context, professionalID string) (string, error) {
	p, err := s.repo.GetProfessionalByID(ctx, professionalID)
	if err != nil {
		return "", err
	}
	return p.UserID, nil
}

// UserIDByCustomer resolves a customer profile id back to the owning user id.
func (s *Service) UserIDByCustomer(ctx context.Context, customerID string) (string, error) {
	c, err := s.repo.GetCustomerByID(ctx, customerID)
	if err != nil {
		return "", err
	}
	return c.UserID, nil
}

// MarkDocumentsUploaded flips the verification flag after a successful
// document upload.
func (s *Service) MarkDocumentsUploaded(ctx context.Context, userID string) error {
	p, err := s.repo.GetProfessionalByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.SetDocumentsUploaded(ctx, p.ID)
}
