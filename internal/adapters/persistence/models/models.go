package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Role      string         `gorm:"size:20;default:'RESIDENT'" json:"role"`
	Gender    string         `gorm:"size:10" json:"gender"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Gender    string    `json:"gender,omitempty"`
	IsActive  bool      `json:"is_active"`
	Apartment string    `json:"apartment,omitempty"`
	Building  string    `json:"building,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		Gender:    u.Gender,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// PasswordReset represents password_resets table
type PasswordReset struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (PasswordReset) TableName() string {
	return "password_resets"
}

// AppState is a generic key-value table. The session snapshot and the
// preferred language code each live under a single key here.
type AppState struct {
	Key       string    `gorm:"primaryKey;size:50" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppState) TableName() string {
	return "app_states"
}

// ============================================================
// Residence Tables
// ============================================================

// Building represents buildings table
type Building struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Address   string         `gorm:"size:255" json:"address"`
	SyndicID  *uint          `json:"syndic_id"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Syndic     *User       `gorm:"foreignKey:SyndicID" json:"syndic,omitempty"`
	Apartments []Apartment `gorm:"foreignKey:BuildingID" json:"apartments,omitempty"`
}

func (Building) TableName() string {
	return "buildings"
}

// Apartment represents apartments (rooms) table
type Apartment struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Number     string         `gorm:"size:20;not null" json:"number"`
	Floor      int            `json:"floor"`
	BuildingID uint           `gorm:"not null;index" json:"building_id"`
	ResidentID *uint          `gorm:"index" json:"resident_id"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	Resident *User     `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`
}

func (Apartment) TableName() string {
	return "apartments"
}

// Reclamation represents reclamations (complaints) table
type Reclamation struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ResidentID  uint           `gorm:"not null;index" json:"resident_id"`
	BuildingID  *uint          `gorm:"index" json:"building_id"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"size:20;not null;default:'OPEN';index" json:"status"`
	HandledBy   *uint          `json:"handled_by"`
	ResolvedAt  *time.Time     `json:"resolved_at"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Resident *User     `gorm:"foreignKey:ResidentID" json:"resident,omitempty"`
	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	Handler  *User     `gorm:"foreignKey:HandledBy" json:"handler,omitempty"`
}

func (Reclamation) TableName() string {
	return "reclamations"
}

// ReclamationResponse DTO
type ReclamationResponse struct {
	ID           uint       `json:"id"`
	ResidentID   uint       `json:"resident_id"`
	ResidentName string     `json:"resident_name,omitempty"`
	BuildingID   *uint      `json:"building_id"`
	BuildingName string     `json:"building_name,omitempty"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Status       string     `json:"status"`
	HandledBy    *uint      `json:"handled_by"`
	ResolvedAt   *time.Time `json:"resolved_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (r *Reclamation) ToResponse() *ReclamationResponse {
	resp := &ReclamationResponse{
		ID:          r.ID,
		ResidentID:  r.ResidentID,
		BuildingID:  r.BuildingID,
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		HandledBy:   r.HandledBy,
		ResolvedAt:  r.ResolvedAt,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.Resident != nil {
		resp.ResidentName = r.Resident.Username
	}
	if r.Building != nil {
		resp.BuildingName = r.Building.Name
	}
	return resp
}

// ============================================================
// Caisse Tables
// ============================================================

// Caisse represents caisses (cash registers) table
type Caisse struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"size:100;not null" json:"name"`
	BuildingID uint           `gorm:"not null;index" json:"building_id"`
	Balance    float64        `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
}

func (Caisse) TableName() string {
	return "caisses"
}

// CaisseTransaction represents caisse_transactions table
type CaisseTransaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CaisseID    uint      `gorm:"not null;index" json:"caisse_id"`
	Kind        string    `gorm:"size:10;not null" json:"kind"` // CREDIT or DEBIT
	Amount      float64   `gorm:"type:decimal(15,2);not null" json:"amount"`
	Label       string    `gorm:"size:200" json:"label"`
	PerformedBy uint      `gorm:"not null" json:"performed_by"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Caisse    *Caisse `gorm:"foreignKey:CaisseID" json:"caisse,omitempty"`
	Performer *User   `gorm:"foreignKey:PerformedBy" json:"performer,omitempty"`
}

func (CaisseTransaction) TableName() string {
	return "caisse_transactions"
}

// ============================================================
// Calendar & Notifications
// ============================================================

// Event represents events (calendar) table
type Event struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:150;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	BuildingID  *uint          `gorm:"index" json:"building_id"`
	StartsAt    time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt      *time.Time     `json:"ends_at"`
	CreatedBy   uint           `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Building *Building `gorm:"foreignKey:BuildingID" json:"building,omitempty"`
	Creator  *User     `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// Notification represents notifications table
type Notification struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Title     string    `gorm:"size:150;not null" json:"title"`
	Detail    string    `gorm:"type:text" json:"detail"`
	Kind      string    `gorm:"size:50;not null" json:"kind"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// Notification kinds
const (
	NotifKindReclamation = "reclamation"
	NotifKindEvent       = "event"
	NotifKindCaisse      = "caisse"
	NotifKindSystem      = "system"
)

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&PasswordReset{},
		&AppState{},
		&Building{},
		&Apartment{},
		&Reclamation{},
		&Caisse{},
		&CaisseTransaction{},
		&Event{},
		&Notification{},
	)
}
