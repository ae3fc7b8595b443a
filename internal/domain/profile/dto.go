package profile

// UpdateRequest carries a partial profile update. Pointer fields distinguish
// "not supplied" from "set to empty". PhoneNumber and WhatsappNumber are
// routed to the private contact record, everything else to the public row.
type UpdateRequest struct {
	FullName     *string   `json:"full_name,omitempty"`
	Profession   *string   `json:"profession,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Skills       *[]string `json:"skills,omitempty"`
	DailyRate    *string   `json:"daily_rate,omitempty"`
	ContractRate *string   `json:"contract_rate,omitempty"`
	AvatarURL    *string   `json:"avatar_url,omitempty"`

	PhoneNumber    *string `json:"phone_number,omitempty"`
	WhatsappNumber *string `json:"whatsapp_number,omitempty"`
}

type UpdateCustomerRequest struct {
	FullName  *string `json:"full_name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Phone     *string `json:"phone,omitempty"`
}
