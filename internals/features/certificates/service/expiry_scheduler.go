package service

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"lentera_backend/internals/features/certificates/model"
)

// StartCredentialExpirySweep menandai credential yang sudah lewat masa
// berlakunya sebagai stale (sekali sehari). Status tetap "completed" —
// halaman verifikasi tetap resolve, hanya flag-nya yang berubah.
func StartCredentialExpirySweep(db *gorm.DB) *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("0 2 * * *", func() {
		res := db.Model(&model.CredentialModel{}).
			Where("credential_expires_at < ? AND credential_is_stale = ?", time.Now(), false).
			Update("credential_is_stale", true)
		if res.Error != nil {
			log.Printf("[ERROR] Sweep credential kadaluarsa gagal: %v", res.Error)
			return
		}
		if res.RowsAffected > 0 {
			log.Printf("[INFO] %d credential ditandai stale", res.RowsAffected)
		}
	})
	if err != nil {
		log.Printf("[ERROR] Gagal daftarkan cron expiry sweep: %v", err)
	}

	c.Start()
	log.Println("⏱ Credential expiry sweep aktif (harian 02:00)")
	return c
}
