package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles persistence for both profile roles and the private
// contact table.
type Repository interface {
	CreateProfessional(ctx context.Context, p *ProfessionalProfile) error
	GetProfessionalByUserID(ctx context.Context, userID string) (*ProfessionalProfile, error)
	GetProfessionalByID(ctx context.Context, id string) (*ProfessionalProfile, error)
	UpdateProfessional(ctx context.Context, profileID string, updates map[string]any) error
	ListProfessionals(ctx context.Context, profession, location string) ([]*ProfessionalProfile, error)
	SetDocumentsUploaded(ctx context.Context, profileID string) error

	GetPrivate(ctx context.Context, profileID string) (*ProfessionalPrivate, error)
	UpsertPrivate(ctx context.Context, p *ProfessionalPrivate) error

	CreateCustomer(ctx context.Context, c *CustomerProfile) error
	GetCustomerByUserID(ctx context.Context, userID string) (*CustomerProfile, error)
	GetCustomerByID(ctx context.Context, id string) (*CustomerProfile, error)
	UpdateCustomer(ctx context.Context, profileID string, updates map[string]any) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateProfessional(ctx context.Context, p *ProfessionalProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetProfessionalByUserID(ctx context.Context, userID string) (*ProfessionalProfile, error) {
	var p ProfessionalProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetProfessionalByID(ctx context.Context, id string) (*ProfessionalProfile, error) {
	var p ProfessionalProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) UpdateProfessional(ctx context.Context, profileID string, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&ProfessionalProfile{}).
		Where("id = ?", profileID).
		Updates(updates).Error
}

func (r *repository) ListProfessionals(ctx context.Context, profession, location string) ([]*ProfessionalProfile, error) {
	q := r.db.WithContext(ctx).Model(&ProfessionalProfile{})
	if profession != "" {
		q = q.Where("profession = ?", profession)
	}
	if location != "" {
		q = q.Where("location LIKE ?", "%"+location+"%")
	}

	var profiles []*ProfessionalProfile
	err := q.Order("created_at DESC").Find(&profiles).Error
	return profiles, err
}

func (r *repository) SetDocumentsUploaded(ctx context.Context, profileID string) error {
	return r.db.WithContext(ctx).
		Model(&ProfessionalProfile{}).
		Where("id = ?", profileID).
		Update("documents_uploaded", true).Error
}

func (r *repository) GetPrivate(ctx context.Context, profileID string) (*ProfessionalPrivate, error) {
	var p ProfessionalPrivate
	err := r.db.WithContext(ctx).Where("profile_id = ?", profileID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) UpsertPrivate(ctx context.Context, p *ProfessionalPrivate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "profile_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"phone_number", "whatsapp_number", "updated_at"}),
		}).
		Create(p).Error
}

func (r *repository) CreateCustomer(ctx context.Context, c *CustomerProfile) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) GetCustomerByUserID(ctx context.Context, userID string) (*CustomerProfile, error) {
	var c CustomerProfile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetCustomerByID(ctx context.Context, id string) (*CustomerProfile, error) {
	var c CustomerProfile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) UpdateCustomer(ctx context.Context, profileID string, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&CustomerProfile{}).
		Where("id = ?", profileID).
		Updates(updates).Error
}
