package pickups

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

// Pickup is an append-only ledger entry. Datetime is the client-supplied
// string and is stored verbatim; ordering compares it as text.
type Pickup struct {
	ID        string    `gorm:"size:26;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;index" json:"name"`
	Items     string    `gorm:"type:text" json:"items"`
	Datetime  string    `gorm:"size:64;index" json:"datetime"`
	Signature string    `gorm:"type:text" json:"signature"`
	CreatedAt time.Time `json:"-"`
}

// BeforeCreate assigns a ULID so rows sharing a datetime still sort by
// insertion order.
func (p *Pickup) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = ulid.Make().String()
	}
	return nil
}

func (Pickup) TableName() string {
	return "pickups"
}

type AddPickupRequest struct {
	Name      string   `json:"name"`
	Items     TextBlob `json:"items"`
	Datetime  string   `json:"datetime"`
	Signature TextBlob `json:"signature"`
}

// TextBlob accepts either a JSON string or any other JSON value. Strings are
// kept as-is; anything else is kept as its compact JSON text.
type TextBlob string

func (b *TextBlob) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*b = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*b = TextBlob(s)
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*b = TextBlob(buf.String())
	return nil
}
