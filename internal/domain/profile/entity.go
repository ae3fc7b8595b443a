package profile

import "time"

type AccountType string

const (
	AccountTypeProfessional AccountType = "professional"
	AccountTypeCustomer     AccountType = "customer"
)

// ProfessionalProfile holds the public fields of a professional.
// Contact details live in ProfessionalPrivate and are merged only on the
// owner read path.
type ProfessionalProfile struct {
	ID                string    `gorm:"column:id;primaryKey" json:"id"`
	UserID            string    `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	FullName          string    `gorm:"column:full_name" json:"full_name"`
	Profession        string    `gorm:"column:profession" json:"profession,omitempty"`
	Bio               string    `gorm:"column:bio" json:"bio,omitempty"`
	Location          string    `gorm:"column:location" json:"location,omitempty"`
	Skills            []string  `gorm:"column:skills;serializer:json" json:"skills"`
	DailyRate         string    `gorm:"column:daily_rate" json:"daily_rate,omitempty"`
	ContractRate      string    `gorm:"column:contract_rate" json:"contract_rate,omitempty"`
	DocumentsUploaded bool      `gorm:"column:documents_uploaded" json:"documents_uploaded"`
	AvatarURL         string    `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (ProfessionalProfile) TableName() string { return "professional_profiles" }

// ProfessionalPrivate is the private contact record, keyed by profile id.
// It must never be exposed through the public profile read path.
type ProfessionalPrivate struct {
	ProfileID      string    `gorm:"column:profile_id;primaryKey" json:"-"`
	PhoneNumber    string    `gorm:"column:phone_number" json:"phone_number,omitempty"`
	WhatsappNumber string    `gorm:"column:whatsapp_number" json:"whatsapp_number,omitempty"`
	UpdatedAt      time.Time `gorm:"column:updated_at" json:"-"`
}

func (ProfessionalPrivate) TableName() string { return "professional_private" }

type CustomerProfile struct {
	ID           string    `gorm:"column:id;primaryKey" json:"id"`
	UserID       string    `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	FullName     string    `gorm:"column:full_name" json:"full_name"`
	AvatarURL    string    `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	Phone        string    `gorm:"column:phone" json:"phone,omitempty"`
	ReferralCode string    `gorm:"column:referral_code" json:"referral_code"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (CustomerProfile) TableName() string { return "customer_profiles" }

// OwnerProfile is the merged view returned to the profile owner: public
// fields plus the private contact record.
type OwnerProfile struct {
	ProfessionalProfile
	PhoneNumber    string `json:"phone_number,omitempty"`
	WhatsappNumber string `json:"whatsapp_number,omitempty"`
}
