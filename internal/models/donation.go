package models

import "time"

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
	DonationRefunded  DonationStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMobileMoney PaymentMethod = "mobile-money"
	PaymentCard        PaymentMethod = "card"
	PaymentBank        PaymentMethod = "bank"
)

// TransactionID is immutable once assigned; uniqueness is enforced by the
// database index so concurrent creates with the same id cannot both succeed.
type Donation struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	DonorName     string            `gorm:"size:100;not null" json:"donor_name"`
	DonorEmail    string            `gorm:"size:100;not null" json:"donor_email"`
	DonorPhone    string            `gorm:"size:50" json:"donor_phone,omitempty"`
	Amount        float64           `gorm:"not null" json:"amount"`
	Currency      string            `gorm:"size:10;not null;default:'UGX'" json:"currency"`
	PaymentMethod PaymentMethod     `gorm:"size:20;not null" json:"payment_method"`
	TransactionID string            `gorm:"size:100;uniqueIndex;not null" json:"transaction_id"`
	Status        DonationStatus    `gorm:"size:20;not null;default:'pending';index" json:"status"`
	CategoryID    *uint             `gorm:"index" json:"category_id,omitempty"`
	Category      *DonationCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Notes         string            `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type DonationCategory struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Description string    `gorm:"size:500" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
