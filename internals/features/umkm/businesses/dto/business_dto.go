package dto

import (
	"strings"

	"okoce_backend/internals/features/umkm/businesses/model"
)

/* ===================== RESPONSE ===================== */

type BusinessListItem struct {
	ID           uint    `json:"id"`
	BusinessName string  `json:"business_name"`
	BusinessType *string `json:"business_type"`
}

// BusinessDetail: tampilan datar profil + sub-record. Sub-record yang tidak ada
// tetap dikirim sebagai null (tidak di-omit).
type BusinessDetail struct {
	ID                  uint    `json:"id"`
	BusinessName        string  `json:"business_name"`
	BusinessType        *string `json:"business_type"`
	AddressSameAsHome   bool    `json:"address_same_as_home"`
	AddressProvince     *string `json:"address_province"`
	AddressCity         *string `json:"address_city"`
	AddressDistrict     *string `json:"address_district"`
	AddressVillage      *string `json:"address_village"`
	AddressRT           *string `json:"address_rt"`
	AddressRW           *string `json:"address_rw"`
	AddressPostalCode   *string `json:"address_postal_code"`
	AddressDetail       *string `json:"address_detail"`
	PremiseStatus       *string `json:"premise_status"`
	BusinessPhone       *string `json:"business_phone"`
	BusinessEmail       *string `json:"business_email"`
	OperatingSince      *string `json:"operating_since"`
	HasLicense          bool    `json:"has_license"`
	LegalEntity         *string `json:"legal_entity"`
	HasNPWP             bool    `json:"has_npwp"`
	FinancialReportType string  `json:"financial_report_type"`
	FinancialReportApp  *string `json:"financial_report_app"`
	ReportLabaRugi      bool    `json:"report_laba_rugi"`
	ReportNeraca        bool    `json:"report_neraca"`
	ReportArusKas       bool    `json:"report_arus_kas"`
	HasFunding          bool    `json:"has_funding"`

	MarketplaceType *string `json:"marketplace_type"`
	URL             *string `json:"url"`

	LicenseType   *string `json:"license_type"`
	LicenseNumber *string `json:"license_number"`

	FinanceYear   *string `json:"finance_year"`
	OmzetRange    *string `json:"omzet_range"`
	Profit        *int64  `json:"profit"`
	AssetValue    *int64  `json:"asset_value"`
	EmployeeCount *string `json:"employee_count"`

	NPWPNumber          *string `json:"npwp_number"`
	ReportReceiptNumber *string `json:"report_receipt_number"`
	NPWPYear            *string `json:"npwp_year"`
	SubmissionDate      *string `json:"submission_date"`

	FunderType           *string `json:"funder_type"`
	FunderName           *string `json:"funder_name"`
	Amount               *int64  `json:"amount"`
	ReceivedDate         *string `json:"received_date"`
	InstallmentStartDate *string `json:"installment_start_date"`
	DurationMonths       *int    `json:"duration_months"`
}

func ToListItem(b *model.BusinessProfileModel) BusinessListItem {
	return BusinessListItem{ID: b.ID, BusinessName: b.BusinessName, BusinessType: b.BusinessType}
}

// FromModel butuh sub-record sudah di-preload.
func FromModel(b *model.BusinessProfileModel) BusinessDetail {
	d := BusinessDetail{
		ID:                  b.ID,
		BusinessName:        b.BusinessName,
		BusinessType:        b.BusinessType,
		AddressSameAsHome:   b.AddressSameAsHome,
		AddressProvince:     b.AddressProvince,
		AddressCity:         b.AddressCity,
		AddressDistrict:     b.AddressDistrict,
		AddressVillage:      b.AddressVillage,
		AddressRT:           b.AddressRT,
		AddressRW:           b.AddressRW,
		AddressPostalCode:   b.AddressPostalCode,
		AddressDetail:       b.AddressDetail,
		PremiseStatus:       b.PremiseStatus,
		BusinessPhone:       b.BusinessPhone,
		BusinessEmail:       b.BusinessEmail,
		OperatingSince:      b.OperatingSince,
		HasLicense:          b.HasLicense,
		LegalEntity:         b.LegalEntity,
		HasNPWP:             b.HasNPWP,
		FinancialReportType: b.FinancialReportType,
		FinancialReportApp:  b.FinancialReportApp,
		ReportLabaRugi:      b.ReportLabaRugi,
		ReportNeraca:        b.ReportNeraca,
		ReportArusKas:       b.ReportArusKas,
		HasFunding:          b.HasFunding,
	}
	if m := b.Marketplace; m != nil {
		d.MarketplaceType, d.URL = m.MarketplaceType, m.URL
	}
	if l := b.License; l != nil {
		d.LicenseType, d.LicenseNumber = l.LicenseType, l.LicenseNumber
	}
	if f := b.Finance; f != nil {
		d.FinanceYear, d.OmzetRange, d.Profit = f.Year, f.OmzetRange, f.Profit
		d.AssetValue, d.EmployeeCount = f.AssetValue, f.EmployeeCount
	}
	if n := b.NPWP; n != nil {
		d.NPWPNumber, d.ReportReceiptNumber = n.NPWPNumber, n.ReportReceiptNumber
		d.NPWPYear, d.SubmissionDate = n.Year, n.SubmissionDate
	}
	if f := b.Funding; f != nil {
		d.FunderType, d.FunderName, d.Amount = f.FunderType, f.FunderName, f.Amount
		d.ReceivedDate, d.InstallmentStartDate, d.DurationMonths = f.ReceivedDate, f.InstallmentStartDate, f.DurationMonths
	}
	return d
}

/* ===================== SUBMIT ===================== */

// SubmitRequest: business_id kosong = buat baru, terisi = update milik sendiri.
type SubmitRequest struct {
	BusinessID *uint `json:"business_id"`

	BusinessName        string  `json:"business_name"`
	BusinessType        *string `json:"business_type"`
	AddressSameAsHome   bool    `json:"address_same_as_home"`
	AddressProvince     *string `json:"address_province"`
	AddressCity         *string `json:"address_city"`
	AddressDistrict     *string `json:"address_district"`
	AddressVillage      *string `json:"address_village"`
	AddressRT           *string `json:"address_rt" validate:"omitempty,max=5"`
	AddressRW           *string `json:"address_rw" validate:"omitempty,max=5"`
	AddressPostalCode   *string `json:"address_postal_code" validate:"omitempty,max=10"`
	AddressDetail       *string `json:"address_detail"`
	PremiseStatus       *string `json:"premise_status"`
	BusinessPhone       *string `json:"business_phone" validate:"omitempty,max=20"`
	BusinessEmail       *string `json:"business_email" validate:"omitempty,max=120"`
	OperatingSince      *string `json:"operating_since"`
	HasLicense          bool    `json:"has_license"`
	LegalEntity         *string `json:"legal_entity"`
	HasNPWP             bool    `json:"has_npwp"`
	FinancialReportType *string `json:"financial_report_type"`
	FinancialReportApp  *string `json:"financial_report_app"`
	ReportLabaRugi      bool    `json:"report_laba_rugi"`
	ReportNeraca        bool    `json:"report_neraca"`
	ReportArusKas       bool    `json:"report_arus_kas"`
	HasFunding          bool    `json:"has_funding"`

	MarketplaceType *string `json:"marketplace_type"`
	URL             *string `json:"url"`

	LicenseType   *string `json:"license_type"`
	LicenseNumber *string `json:"license_number"`

	FinanceYear   *string `json:"finance_year"`
	OmzetRange    *string `json:"omzet_range"`
	Profit        *int64  `json:"profit"`
	AssetValue    *int64  `json:"asset_value"`
	EmployeeCount *string `json:"employee_count"`

	NPWPNumber          *string `json:"npwp_number"`
	ReportReceiptNumber *string `json:"report_receipt_number"`
	NPWPYear            *string `json:"npwp_year"`
	SubmissionDate      *string `json:"submission_date"`

	FunderType           *string `json:"funder_type"`
	FunderName           *string `json:"funder_name"`
	Amount               *int64  `json:"amount"`
	ReceivedDate         *string `json:"received_date"`
	InstallmentStartDate *string `json:"installment_start_date"`
	DurationMonths       *int    `json:"duration_months"`
}

func filled(p *string) bool { return p != nil && strings.TrimSpace(*p) != "" }

// Apply menyalin field profil. Alamat hanya disentuh kalau tidak sama dengan alamat rumah.
func (r *SubmitRequest) Apply(b *model.BusinessProfileModel) {
	b.BusinessName = strings.TrimSpace(r.BusinessName)
	b.BusinessType = r.BusinessType
	b.AddressSameAsHome = r.AddressSameAsHome
	if !r.AddressSameAsHome {
		b.AddressProvince = r.AddressProvince
		b.AddressCity = r.AddressCity
		b.AddressDistrict = r.AddressDistrict
		b.AddressVillage = r.AddressVillage
		b.AddressRT = r.AddressRT
		b.AddressRW = r.AddressRW
		b.AddressPostalCode = r.AddressPostalCode
		b.AddressDetail = r.AddressDetail
	}
	b.PremiseStatus = r.PremiseStatus
	b.BusinessPhone = r.BusinessPhone
	b.BusinessEmail = r.BusinessEmail
	b.OperatingSince = r.OperatingSince
	b.HasLicense = r.HasLicense
	b.LegalEntity = r.LegalEntity
	b.HasNPWP = r.HasNPWP
	b.FinancialReportType = "Manual"
	if filled(r.FinancialReportType) {
		b.FinancialReportType = strings.TrimSpace(*r.FinancialReportType)
	}
	b.FinancialReportApp = r.FinancialReportApp
	b.ReportLabaRugi = r.ReportLabaRugi
	b.ReportNeraca = r.ReportNeraca
	b.ReportArusKas = r.ReportArusKas
	b.HasFunding = r.HasFunding
}

// Sub-record dibuat/diupdate hanya kalau datanya ada dan flag terkait aktif.
// Yang tidak memenuhi syarat dibiarkan (tidak dihapus).

func (r *SubmitRequest) Marketplace(businessID uint) *model.BusinessMarketplaceModel {
	if !filled(r.MarketplaceType) && !filled(r.URL) {
		return nil
	}
	return &model.BusinessMarketplaceModel{BusinessID: businessID, MarketplaceType: r.MarketplaceType, URL: r.URL}
}

func (r *SubmitRequest) License(businessID uint) *model.BusinessLicenseModel {
	if !r.HasLicense || (!filled(r.LicenseType) && !filled(r.LicenseNumber)) {
		return nil
	}
	return &model.BusinessLicenseModel{BusinessID: businessID, LicenseType: r.LicenseType, LicenseNumber: r.LicenseNumber}
}

func (r *SubmitRequest) Finance(businessID uint) *model.BusinessFinanceModel {
	if !filled(r.FinanceYear) && !filled(r.OmzetRange) && !filled(r.EmployeeCount) {
		return nil
	}
	return &model.BusinessFinanceModel{
		BusinessID:    businessID,
		Year:          r.FinanceYear,
		OmzetRange:    r.OmzetRange,
		Profit:        r.Profit,
		AssetValue:    r.AssetValue,
		EmployeeCount: r.EmployeeCount,
	}
}

func (r *SubmitRequest) NPWP(businessID uint) *model.BusinessNPWPModel {
	if !r.HasNPWP || (!filled(r.NPWPNumber) && !filled(r.ReportReceiptNumber)) {
		return nil
	}
	return &model.BusinessNPWPModel{
		BusinessID:          businessID,
		NPWPNumber:          r.NPWPNumber,
		ReportReceiptNumber: r.ReportReceiptNumber,
		Year:                r.NPWPYear,
		SubmissionDate:      r.SubmissionDate,
	}
}

func (r *SubmitRequest) Funding(businessID uint) *model.BusinessFundingModel {
	if !r.HasFunding || (!filled(r.FunderType) && !filled(r.FunderName)) {
		return nil
	}
	return &model.BusinessFundingModel{
		BusinessID:           businessID,
		FunderType:           r.FunderType,
		FunderName:           r.FunderName,
		Amount:               r.Amount,
		ReceivedDate:         r.ReceivedDate,
		InstallmentStartDate: r.InstallmentStartDate,
		DurationMonths:       r.DurationMonths,
	}
}
