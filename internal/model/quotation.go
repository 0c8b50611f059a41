package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceCategory enum constants
const (
	ServiceCategoryWeb    = "web"
	ServiceCategoryMobile = "mobile"
	ServiceCategoryCloud  = "cloud"
	ServiceCategoryAIML   = "ai_ml"
)

// DiscountType enum constants
const (
	DiscountNone    = "none"
	DiscountFlat    = "flat"
	DiscountPercent = "percent"
)

// QuotationStatus enum constants
const (
	QuotationDraft    = "DRAFT"
	QuotationSent     = "SENT"
	QuotationAccepted = "ACCEPTED"
	QuotationRejected = "REJECTED"
)

// AddonCharge is one of the four fixed infrastructure charges attached to a
// quotation (domain, server, SSL, email). Included-but-zero-price and
// excluded-but-nonzero-price are both valid; only included charges count
// toward totals.
type AddonCharge struct {
	Included  bool            `gorm:"default:false" json:"included"`
	Duration  string          `gorm:"type:varchar(50)" json:"duration"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);default:0" json:"unit_price"`
}

// QuotationService is one billable service row in a quotation.
// A quotation always holds at least one row.
type QuotationService struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Category    string          `gorm:"type:varchar(20);not null" json:"category"` // web, mobile, cloud, ai_ml
	Description string          `gorm:"type:text" json:"description"`
	Quantity    int             `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"unit_price"`
	Position    int             `gorm:"not null;default:0" json:"-"`
}

// Quotation is the aggregate root for a client price quotation. The derived
// total columns are never written directly by request payloads; they are
// recomputed from the line items, addon charges and discount/tax inputs on
// every mutation.
type Quotation struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	QuotationNo string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"quotation_no"`
	Revision    int        `gorm:"not null;default:1" json:"revision"`
	Status      string     `gorm:"type:varchar(20);not null;default:'DRAFT';index" json:"status"`
	QuotationDate time.Time  `gorm:"type:date;not null" json:"quotation_date"`
	ValidUntil    *time.Time `gorm:"type:date" json:"valid_until"`

	// Company identity block (static, printed on the document header)
	CompanyName    string `gorm:"type:varchar(255);not null" json:"company_name"`
	CompanyAddress string `gorm:"type:text" json:"company_address"`
	CompanyEmail   string `gorm:"type:varchar(255)" json:"company_email"`
	CompanyPhone   string `gorm:"type:varchar(50)" json:"company_phone"`
	CompanyWebsite string `gorm:"type:varchar(255)" json:"company_website"`

	// Client block
	ClientName    string `gorm:"type:varchar(255);not null" json:"client_name"`
	ClientCompany string `gorm:"type:varchar(255)" json:"client_company"`
	ClientAddress string `gorm:"type:text" json:"client_address"`
	ClientEmail   string `gorm:"type:varchar(255)" json:"client_email"`
	ClientPhone   string `gorm:"type:varchar(50)" json:"client_phone"`

	Services []QuotationService `gorm:"foreignKey:QuotationID;constraint:OnDelete:CASCADE" json:"services"`

	DomainRegistration AddonCharge `gorm:"embedded;embeddedPrefix:domain_registration_" json:"domain_registration"`
	ServerHosting      AddonCharge `gorm:"embedded;embeddedPrefix:server_hosting_" json:"server_hosting"`
	SSLCertificate     AddonCharge `gorm:"embedded;embeddedPrefix:ssl_certificate_" json:"ssl_certificate"`
	EmailHosting       AddonCharge `gorm:"embedded;embeddedPrefix:email_hosting_" json:"email_hosting"`

	DiscountType  string          `gorm:"type:varchar(10);not null;default:'none'" json:"discount_type"` // none, flat, percent
	DiscountValue decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"discount_value"`
	TaxRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"tax_rate"`

	// Derived totals, recomputed on every mutation. See internal/pricing.
	TotalServiceCharge      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_service_charge"`
	TotalServerDomainCharge decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"total_server_domain_charge"`
	DiscountAmount          decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"discount_amount"`
	AfterDiscountTotal      decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"after_discount_total"`
	TaxAmount               decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"tax_amount"`
	GrandTotal              decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"grand_total"`

	PaymentTerms    string `gorm:"type:text" json:"payment_terms"`
	AdditionalNotes string `gorm:"type:text" json:"additional_notes"`

	SignatoryName        string `gorm:"type:varchar(255)" json:"signatory_name"`
	SignatoryDesignation string `gorm:"type:varchar(255)" json:"signatory_designation"`
	Signature            string `gorm:"type:text" json:"signature"` // stored image path or URL

	CreatedBy *uuid.UUID     `gorm:"type:uuid;index" json:"created_by"`
	Creator   *User          `gorm:"foreignKey:CreatedBy" json:"creator,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// Addons returns the four fixed charges in their canonical order.
func (q *Quotation) Addons() []AddonCharge {
	return []AddonCharge{q.DomainRegistration, q.ServerHosting, q.SSLCertificate, q.EmailHosting}
}
