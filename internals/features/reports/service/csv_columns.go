package service

import (
	"strconv"

	"okoce_backend/internals/features/reports/dto"
	"okoce_backend/internals/helpers/dbtime"
)

const missing = "-"

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func num(p *int64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatInt(*p, 10)
}

type column struct {
	name  string
	value func(r *dto.ParticipantRecord) string
}

// bisnis: nilai kolom UMKM, "-" kalau peserta tidak punya profil usaha.
func bisnis(f func(r *dto.ParticipantRecord) string) func(r *dto.ParticipantRecord) string {
	return func(r *dto.ParticipantRecord) string {
		if r.Business == nil {
			return missing
		}
		return f(r)
	}
}

var participantColumns = []column{
	{"Nama Peserta", func(r *dto.ParticipantRecord) string { return r.Name }},
	{"OK OCE ID", func(r *dto.ParticipantRecord) string { return r.OkoceID }},
	{"No. HP", func(r *dto.ParticipantRecord) string { return r.PhoneNumber }},
	{"Email", func(r *dto.ParticipantRecord) string { return r.Email }},
	{"Provinsi", func(r *dto.ParticipantRecord) string { return r.Province }},
	{"Kota", func(r *dto.ParticipantRecord) string { return r.City }},
	{"Instansi", func(r *dto.ParticipantRecord) string { return str(r.Institution) }},
	{"Status Hadir", func(r *dto.ParticipantRecord) string {
		if r.IsCheckedIn {
			return "Hadir"
		}
		return "Belum Hadir"
	}},
	{"Waktu Check-in", func(r *dto.ParticipantRecord) string {
		if r.CheckedInAt == nil {
			return missing
		}
		return dbtime.ToWIB(*r.CheckedInAt).Format("2006-01-02 15:04:05")
	}},
	{"Nilai Pre-Test", func(r *dto.ParticipantRecord) string {
		if r.PreScore == nil {
			return missing
		}
		return strconv.Itoa(*r.PreScore)
	}},
	{"Nilai Post-Test", func(r *dto.ParticipantRecord) string {
		if r.PostScore == nil {
			return missing
		}
		return strconv.Itoa(*r.PostScore)
	}},
	{"Nama Bisnis", bisnis(func(r *dto.ParticipantRecord) string { return r.Business.BusinessName })},
	{"Jenis Bisnis", bisnis(func(r *dto.ParticipantRecord) string { return str(r.Business.BusinessType) })},
	{"Provinsi Bisnis", bisnis(func(r *dto.ParticipantRecord) string { return str(r.Business.AddressProvince) })},
	{"Kota Bisnis", bisnis(func(r *dto.ParticipantRecord) string { return str(r.Business.AddressCity) })},
	{"Kecamatan Bisnis", bisnis(func(r *dto.ParticipantRecord) string { return str(r.Business.AddressDistrict) })},
	{"Kelurahan Bisnis", bisnis(func(r *dto.ParticipantRecord) string { return str(r.Business.AddressVillage) })},
	{"Status Tempat", bisnis(func(r *dto.ParticipantRecord) string { return str(r.Business.PremiseStatus) })},
	{"Badan Usaha", bisnis(func(r *dto.ParticipantRecord) string { return str(r.Business.LegalEntity) })},
	{"No. HP Bisnis", bisnis(func(r *dto.ParticipantRecord) string { return str(r.Business.BusinessPhone) })},
	{"Email Bisnis", bisnis(func(r *dto.ParticipantRecord) string { return str(r.Business.BusinessEmail) })},
	{"Mulai Beroperasi", bisnis(func(r *dto.ParticipantRecord) string { return str(r.Business.OperatingSince) })},
	{"Marketplace", marketplace(func(r *dto.ParticipantRecord) string { return str(r.Business.Marketplace.MarketplaceType) })},
	{"URL Marketplace", marketplace(func(r *dto.ParticipantRecord) string { return str(r.Business.Marketplace.URL) })},
	{"Jenis Izin", license(func(r *dto.ParticipantRecord) string { return str(r.Business.License.LicenseType) })},
	{"Nomor Izin", license(func(r *dto.ParticipantRecord) string { return str(r.Business.License.LicenseNumber) })},
	{"Tahun Data Keuangan", finance(func(r *dto.ParticipantRecord) string { return str(r.Business.Finance.Year) })},
	{"Omzet Tahunan", finance(func(r *dto.ParticipantRecord) string { return str(r.Business.Finance.OmzetRange) })},
	{"Profit", finance(func(r *dto.ParticipantRecord) string { return num(r.Business.Finance.Profit) })},
	{"Aset", finance(func(r *dto.ParticipantRecord) string { return num(r.Business.Finance.AssetValue) })},
	{"Jumlah Karyawan", finance(func(r *dto.ParticipantRecord) string { return str(r.Business.Finance.EmployeeCount) })},
	{"Nomor NPWP", npwp(func(r *dto.ParticipantRecord) string { return str(r.Business.NPWP.NPWPNumber) })},
	{"Jenis Pemodal", funding(func(r *dto.ParticipantRecord) string { return str(r.Business.Funding.FunderType) })},
	{"Nama Pemodal", funding(func(r *dto.ParticipantRecord) string { return str(r.Business.Funding.FunderName) })},
	{"Jumlah Modal", funding(func(r *dto.ParticipantRecord) string { return num(r.Business.Funding.Amount) })},
}

func marketplace(f func(r *dto.ParticipantRecord) string) func(r *dto.ParticipantRecord) string {
	return bisnis(func(r *dto.ParticipantRecord) string {
		if r.Business.Marketplace == nil {
			return missing
		}
		return f(r)
	})
}

func license(f func(r *dto.ParticipantRecord) string) func(r *dto.ParticipantRecord) string {
	return bisnis(func(r *dto.ParticipantRecord) string {
		if r.Business.License == nil {
			return missing
		}
		return f(r)
	})
}

func finance(f func(r *dto.ParticipantRecord) string) func(r *dto.ParticipantRecord) string {
	return bisnis(func(r *dto.ParticipantRecord) string {
		if r.Business.Finance == nil {
			return missing
		}
		return f(r)
	})
}

func npwp(f func(r *dto.ParticipantRecord) string) func(r *dto.ParticipantRecord) string {
	return bisnis(func(r *dto.ParticipantRecord) string {
		if r.Business.NPWP == nil {
			return missing
		}
		return f(r)
	})
}

func funding(f func(r *dto.ParticipantRecord) string) func(r *dto.ParticipantRecord) string {
	return bisnis(func(r *dto.ParticipantRecord) string {
		if r.Business.Funding == nil {
			return missing
		}
		return f(r)
	})
}

var columnIndex = func() map[string]func(r *dto.ParticipantRecord) string {
	m := make(map[string]func(r *dto.ParticipantRecord) string, len(participantColumns))
	for _, c := range participantColumns {
		m[c.name] = c.value
	}
	return m
}()

// ParticipantColumns: nama kolom yang dikenali ekspor CSV peserta (urutan form admin).
func ParticipantColumns() []string {
	out := make([]string, 0, len(participantColumns))
	for _, c := range participantColumns {
		out = append(out, c.name)
	}
	return out
}

// ParticipantRow: kolom yang tidak dikenal diisi "-".
func ParticipantRow(r *dto.ParticipantRecord, columns []string) []string {
	row := make([]string, 0, len(columns))
	for _, name := range columns {
		if f, ok := columnIndex[name]; ok {
			row = append(row, f(r))
			continue
		}
		row = append(row, missing)
	}
	return row
}
