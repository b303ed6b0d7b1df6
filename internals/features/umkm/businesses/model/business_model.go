package model

import (
	"time"

	"github.com/google/uuid"
)

// BusinessProfileModel: profil UMKM milik user, dengan lima sub-record 1:1.
type BusinessProfileModel struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	BusinessName        string    `gorm:"size:150;not null" json:"business_name"`
	BusinessType        *string   `gorm:"size:100" json:"business_type"`
	AddressSameAsHome   bool      `gorm:"not null;default:false" json:"address_same_as_home"`
	AddressProvince     *string   `gorm:"size:100" json:"address_province"`
	AddressCity         *string   `gorm:"size:100" json:"address_city"`
	AddressDistrict     *string   `gorm:"size:100" json:"address_district"`
	AddressVillage      *string   `gorm:"size:100" json:"address_village"`
	AddressRT           *string   `gorm:"column:address_rt;size:5" json:"address_rt"`
	AddressRW           *string   `gorm:"column:address_rw;size:5" json:"address_rw"`
	AddressPostalCode   *string   `gorm:"size:10" json:"address_postal_code"`
	AddressDetail       *string   `gorm:"type:text" json:"address_detail"`
	PremiseStatus       *string   `gorm:"size:50" json:"premise_status"`
	HasLicense          bool      `gorm:"not null;default:false" json:"has_license"`
	LegalEntity         *string   `gorm:"size:50" json:"legal_entity"`
	HasNPWP             bool      `gorm:"column:has_npwp;not null;default:false" json:"has_npwp"`
	FinancialReportType string    `gorm:"size:50;not null;default:'Manual'" json:"financial_report_type"`
	FinancialReportApp  *string   `gorm:"size:100" json:"financial_report_app"`
	ReportLabaRugi      bool      `gorm:"not null;default:false" json:"report_laba_rugi"`
	ReportNeraca        bool      `gorm:"not null;default:false" json:"report_neraca"`
	ReportArusKas       bool      `gorm:"not null;default:false" json:"report_arus_kas"`
	HasFunding          bool      `gorm:"not null;default:false" json:"has_funding"`
	BusinessPhone       *string   `gorm:"size:20" json:"business_phone"`
	BusinessEmail       *string   `gorm:"size:120" json:"business_email"`
	OperatingSince      *string   `gorm:"size:20" json:"operating_since"`
	CreatedAt           time.Time `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`

	Marketplace *BusinessMarketplaceModel `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`
	License     *BusinessLicenseModel     `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`
	Finance     *BusinessFinanceModel     `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`
	NPWP        *BusinessNPWPModel        `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`
	Funding     *BusinessFundingModel     `gorm:"foreignKey:BusinessID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BusinessProfileModel) TableName() string { return "business_profiles" }

type BusinessMarketplaceModel struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	BusinessID      uint    `gorm:"not null;uniqueIndex" json:"business_id"`
	MarketplaceType *string `gorm:"size:100" json:"marketplace_type"`
	URL             *string `gorm:"column:url;size:500" json:"url"`
}

func (BusinessMarketplaceModel) TableName() string { return "business_marketplaces" }

type BusinessLicenseModel struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	BusinessID    uint    `gorm:"not null;uniqueIndex" json:"business_id"`
	LicenseType   *string `gorm:"size:100" json:"license_type"`
	LicenseNumber *string `gorm:"size:100" json:"license_number"`
}

func (BusinessLicenseModel) TableName() string { return "business_licenses" }

type BusinessFinanceModel struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	BusinessID    uint    `gorm:"not null;uniqueIndex" json:"business_id"`
	Year          *string `gorm:"size:4" json:"year"`
	OmzetRange    *string `gorm:"size:100" json:"omzet_range"`
	Profit        *int64  `json:"profit"`
	AssetValue    *int64  `json:"asset_value"`
	EmployeeCount *string `gorm:"size:50" json:"employee_count"`
}

func (BusinessFinanceModel) TableName() string { return "business_finances" }

type BusinessNPWPModel struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	BusinessID          uint    `gorm:"not null;uniqueIndex" json:"business_id"`
	NPWPNumber          *string `gorm:"column:npwp_number;size:30" json:"npwp_number"`
	ReportReceiptNumber *string `gorm:"size:100" json:"report_receipt_number"`
	Year                *string `gorm:"size:4" json:"year"`
	SubmissionDate      *string `gorm:"size:20" json:"submission_date"`
}

func (BusinessNPWPModel) TableName() string { return "business_npwps" }

type BusinessFundingModel struct {
	ID                   uint    `gorm:"primaryKey" json:"id"`
	BusinessID           uint    `gorm:"not null;uniqueIndex" json:"business_id"`
	FunderType           *string `gorm:"size:100" json:"funder_type"`
	FunderName           *string `gorm:"size:150" json:"funder_name"`
	Amount               *int64  `json:"amount"`
	ReceivedDate         *string `gorm:"size:20" json:"received_date"`
	InstallmentStartDate *string `gorm:"size:20" json:"installment_start_date"`
	DurationMonths       *int    `json:"duration_months"`
}

func (BusinessFundingModel) TableName() string { return "business_fundings" }
