package model

import (
	"time"

	"github.com/google/uuid"
)

// CertificateModel: artefak publik bernomor, 1:1 dengan credential.
// Nomor dicetak SEKALI — penerbitan ulang mempertahankan nomor lama supaya
// link verifikasi yang sudah dibagikan tetap hidup.
type CertificateModel struct {
	CertificateID           uuid.UUID `gorm:"column:certificate_id;type:uuid;primaryKey" json:"certificate_id"`
	CertificateCredentialID uuid.UUID `gorm:"column:certificate_credential_id;type:uuid;not null;uniqueIndex" json:"certificate_credential_id"`
	CertificateNumber       string    `gorm:"column:certificate_number;type:varchar(64);not null;uniqueIndex" json:"certificate_number"`

	CertificateIssuedAt  time.Time `gorm:"column:certificate_issued_at;not null" json:"certificate_issued_at"`
	CertificateExpiresAt time.Time `gorm:"column:certificate_expires_at;not null" json:"certificate_expires_at"`

	CertificateCreatedAt time.Time `gorm:"column:certificate_created_at;autoCreateTime" json:"certificate_created_at"`
	CertificateUpdatedAt time.Time `gorm:"column:certificate_updated_at;autoUpdateTime" json:"certificate_updated_at"`
}

func (CertificateModel) TableName() string {
	return "certificates"
}
