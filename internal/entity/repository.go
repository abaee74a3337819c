package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Supply struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"_id"`
	Title    string    `gorm:"not null;column:title" json:"title"`
	Category string    `gorm:"not null;column:category" json:"category"`
	Amount   float64   `gorm:"not null;column:amount" json:"amount"`
}

func (s *Supply) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Donation struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;column:id"`
	SupplyCategory string    `gorm:"not null;column:supply_category"`
	SupplyAmount   float64   `gorm:"not null;column:supply_amount"`
	Details        Details   `gorm:"type:jsonb;not null;column:details"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (d *Donation) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Details holds free-form donor fields in a jsonb column.
type Details map[string]interface{}

func (d Details) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (d *Details) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = Details{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("details: unsupported type %T", src)
	}
	return json.Unmarshal(raw, d)
}

type SupplyStat struct {
	Category string `gorm:"column:category" json:"category"`
	Count    int64  `gorm:"column:count" json:"count"`
}

type DonationStat struct {
	Name  string  `gorm:"column:name" json:"name"`
	Count int64   `gorm:"column:count" json:"count"`
	Total float64 `gorm:"column:total" json:"total"`
}
