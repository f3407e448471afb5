package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/portal/backend/internal/domain/store"
)

// StoreModel is the persistence model for the Store domain entity.
type StoreModel struct {
	BaseModel
	Name                 string           `gorm:"type:varchar(200);not null"`
	Domain               string           `gorm:"type:varchar(255);not null;uniqueIndex:idx_stores_domain"`
	AccessToken          string           `gorm:"type:varchar(255)"`
	FulfillmentServiceID string           `gorm:"type:varchar(64)"`
	LocationID           string           `gorm:"type:varchar(64)"`
	Users                []StoreUserModel `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (StoreModel) TableName() string {
	return "stores"
}

// ToDomain converts the persistence model to a domain Store entity.
func (m *StoreModel) ToDomain() *store.Store {
	s := &store.Store{
		BaseEntity:           m.BaseModel.ToDomain(),
		Name:                 m.Name,
		Domain:               m.Domain,
		AccessToken:          m.AccessToken,
		FulfillmentServiceID: m.FulfillmentServiceID,
		LocationID:           m.LocationID,
	}
	s.Users = make([]store.StoreUser, 0, len(m.Users))
	for _, um := range m.Users {
		s.Users = append(s.Users, store.StoreUser{
			BaseEntity: um.BaseModel.ToDomain(),
			StoreID:    um.StoreID.String(),
			TenantID:   um.TenantID,
			Role:       store.StoreRole(um.Role),
		})
	}
	return s
}

// FromDomain populates the persistence model from a domain Store entity.
func (m *StoreModel) FromDomain(s *store.Store) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Name = s.Name
	m.Domain = s.Domain
	m.AccessToken = s.AccessToken
	m.FulfillmentServiceID = s.FulfillmentServiceID
	m.LocationID = s.LocationID
	m.Users = make([]StoreUserModel, 0, len(s.Users))
	for _, u := range s.Users {
		var um StoreUserModel
		um.FromDomainBaseEntity(u.BaseEntity)
		um.StoreID = s.ID
		um.TenantID = u.TenantID
		um.Role = u.Role.String()
		m.Users = append(m.Users, um)
	}
}

// StoreUserModel links a tenant to a store with a role.
type StoreUserModel struct {
	BaseModel
	StoreID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_store_users_member,priority:1"`
	TenantID string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_store_users_member,priority:2;index"`
	Role     string    `gorm:"type:varchar(20);not null"`
}

// TableName returns the table name for GORM
func (StoreUserModel) TableName() string {
	return "store_users"
}

// SessionModel is the persistence model for a pending installation session.
type SessionModel struct {
	BaseModel
	Domain      string     `gorm:"type:varchar(255);not null;index"`
	AccessToken string     `gorm:"type:varchar(255);not null"`
	Scope       string     `gorm:"type:text"`
	ExpiresAt   *time.Time
}

// TableName returns the table name for GORM
func (SessionModel) TableName() string {
	return "sessions"
}

// ToDomain converts the persistence model to a domain Session entity.
func (m *SessionModel) ToDomain() *store.Session {
	return &store.Session{
		BaseEntity:  m.BaseModel.ToDomain(),
		Domain:      m.Domain,
		AccessToken: m.AccessToken,
		Scope:       m.Scope,
		ExpiresAt:   m.ExpiresAt,
	}
}

// FromDomain populates the persistence model from a domain Session entity.
func (m *SessionModel) FromDomain(s *store.Session) {
	m.FromDomainBaseEntity(s.BaseEntity)
	m.Domain = s.Domain
	m.AccessToken = s.AccessToken
	m.Scope = s.Scope
	m.ExpiresAt = s.ExpiresAt
}

// StoreVariantModel is the persistence model for external variant linkage.
type StoreVariantModel struct {
	BaseModel
	StoreID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	ExternalProductID string          `gorm:"type:varchar(64);not null;index"`
	ExternalVariantID string          `gorm:"type:varchar(64);not null;uniqueIndex:idx_store_variants_external_id"`
	Available         bool            `gorm:"not null;default:true"`
	Price             decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StoreVariantModel) TableName() string {
	return "store_variants"
}

// ToDomain converts the persistence model to a domain StoreVariant.
func (m *StoreVariantModel) ToDomain() *store.StoreVariant {
	return &store.StoreVariant{
		BaseEntity:        m.BaseModel.ToDomain(),
		StoreID:           m.StoreID,
		ProductID:         m.ProductID,
		VariantID:         m.VariantID,
		ExternalProductID: m.ExternalProductID,
		ExternalVariantID: m.ExternalVariantID,
		Available:         m.Available,
		Price:             m.Price,
	}
}

// FromDomain populates the persistence model from a domain StoreVariant.
func (m *StoreVariantModel) FromDomain(sv *store.StoreVariant) {
	m.FromDomainBaseEntity(sv.BaseEntity)
	m.StoreID = sv.StoreID
	m.ProductID = sv.ProductID
	m.VariantID = sv.VariantID
	m.ExternalProductID = sv.ExternalProductID
	m.ExternalVariantID = sv.ExternalVariantID
	m.Available = sv.Available
	m.Price = sv.Price
}
