package models

import (
	"gorm.io/datatypes"

	"github.com/sismaterial/helpdesk/internal/shared/constants"
)

// TicketModel stores labels as shown to users ("Aberto", "Alta", ...).
// Number is the sequential ticket number, unique per store.
type TicketModel struct {
	ID             uint           `gorm:"primaryKey"`
	Number         int            `gorm:"uniqueIndex;not null"`
	SubmitterName  string         `gorm:"size:100;not null"`
	SubmitterEmail string         `gorm:"size:255;not null;index"`
	Title          string         `gorm:"size:200;not null"`
	Category       string         `gorm:"size:50;not null;index"`
	Priority       string         `gorm:"size:20;not null"`
	Description    string         `gorm:"type:text;not null"`
	Attachments    datatypes.JSON `gorm:"type:json"`
	Status         string         `gorm:"size:30;not null;index"`
	CreatedAt      int64          `gorm:"not null;index"`
	UpdatedAt      int64          `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// Messages are loaded by ticket_id in a second query.
}

func (TicketModel) TableName() string {
	return constants.TableTickets
}

// MessageModel is one chat entry. Position 0 is the oldest message.
type MessageModel struct {
	ID        uint   `gorm:"primaryKey"`
	TicketID  uint   `gorm:"not null;uniqueIndex:idx_ticket_message_position"`
	Position  int    `gorm:"not null;uniqueIndex:idx_ticket_message_position"`
	Author    string `gorm:"size:100;not null"`
	Text      string `gorm:"type:text;not null"`
	CreatedAt int64  `gorm:"not null"`
}

func (MessageModel) TableName() string {
	return constants.TableTicketMessages
}
