package badge

import (
	qrcode "github.com/skip2/go-qrcode"
)

// EncodePNG renders the badge identifier as a scannable QR PNG. The code is
// read back by the exit screen's scanner, so medium recovery is enough.
func EncodePNG(badgeID string, size int) ([]byte, error) {
	return qrcode.Encode(badgeID, qrcode.Medium, size)
}

// EncodeTerminal renders a small ASCII QR for terminal kiosk sessions.
func EncodeTerminal(badgeID string) (string, error) {
	code, err := qrcode.New(badgeID, qrcode.Medium)
	if err != nil {
		return "", err
	}
	return code.ToSmallString(false), nil
}
