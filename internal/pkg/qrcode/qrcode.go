package qrcode

import (
	"encoding/base64"

	qr "github.com/skip2/go-qrcode"
)

// Size is the generated QR image width/height in pixels
const Size = 300

// DataURL renders content as a PNG QR code and returns it as a
// base64 data URL suitable for direct embedding in an <img> tag.
func DataURL(content string) (string, error) {
	png, err := qr.Encode(content, qr.High, Size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
