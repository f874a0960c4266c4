package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// ImageList stores an ordered set of image URLs as a JSON column.
type ImageList []string

// Value implements the driver.Valuer interface
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	jsonData, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (l *ImageList) Scan(value interface{}) error {
	if value == nil {
		*l = ImageList{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal ImageList: unsupported type %T", value)
	}

	return json.Unmarshal(data, l)
}

// Work is a single portfolio entry shown on the provider page.
type Work struct {
	gorm.Model
	ProviderEmail string    `json:"provider_email" gorm:"index;not null"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Images        ImageList `json:"images" gorm:"type:jsonb"`
}
