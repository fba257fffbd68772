package service

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRDataURL menghasilkan PNG QR (data URL) yang meng-encode verification URL.
// Deterministik untuk URL yang sama; quiet zone bawaan library ≥ 1 modul.
func GenerateQRDataURL(url string) (string, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
