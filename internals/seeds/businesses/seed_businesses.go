package businesses

import (
	"log"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"okoce_backend/internals/features/umkm/businesses/model"
	userModel "okoce_backend/internals/features/users/user/model"
)

type BusinessSeed struct {
	OwnerEmail  string                          `json:"owner_email"`
	Profile     model.BusinessProfileModel      `json:"profile"`
	Marketplace *model.BusinessMarketplaceModel `json:"marketplace"`
	License     *model.BusinessLicenseModel     `json:"license"`
	Finance     *model.BusinessFinanceModel     `json:"finance"`
	NPWP        *model.BusinessNPWPModel        `json:"npwp"`
	Funding     *model.BusinessFundingModel     `json:"funding"`
}

func SeedBusinessesFromJSON(db *gorm.DB, filePath string, owners map[string]userModel.UserModel) {
	log.Println("📥 Membaca file UMKM:", filePath)

	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Fatalf("❌ Gagal membaca file JSON: %v", err)
	}

	var inputs []BusinessSeed
	if err := sonic.Unmarshal(file, &inputs); err != nil {
		log.Fatalf("❌ Gagal decode JSON: %v", err)
	}

	for _, data := range inputs {
		owner, ok := owners[strings.ToLower(data.OwnerEmail)]
		if !ok {
			log.Printf("⚠️ Pemilik '%s' tidak ditemukan, UMKM dilewati.", data.OwnerEmail)
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			b := data.Profile
			b.UserID = owner.ID
			if err := tx.Omit(clause.Associations).Create(&b).Error; err != nil {
				return err
			}
			subs := []any{}
			if m := data.Marketplace; m != nil {
				m.BusinessID = b.ID
				subs = append(subs, m)
			}
			if l := data.License; l != nil {
				l.BusinessID = b.ID
				subs = append(subs, l)
			}
			if f := data.Finance; f != nil {
				f.BusinessID = b.ID
				subs = append(subs, f)
			}
			if n := data.NPWP; n != nil {
				n.BusinessID = b.ID
				subs = append(subs, n)
			}
			if f := data.Funding; f != nil {
				f.BusinessID = b.ID
				subs = append(subs, f)
			}
			for _, s := range subs {
				if err := tx.Create(s).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("❌ Gagal insert UMKM '%s': %v", data.Profile.BusinessName, err)
			continue
		}
		log.Printf("✅ Berhasil insert UMKM '%s'", data.Profile.BusinessName)
	}
}
