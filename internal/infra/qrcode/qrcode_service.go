// Package qrcode renders saved locations as scannable share codes.
package qrcode

import (
	"fmt"
	"net/url"

	"spotalert/internal/domain/entity"
	"spotalert/internal/domain/service"

	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewQRCodeService creates a new QR code service instance
func NewQRCodeService(size int, errorCorrectionLevel string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
	}
}

// GenerateLocationQR encodes a saved location as a geo URI QR code PNG.
// The geo URI scheme (RFC 5870) is understood by phone map applications.
func (s *qrcodeService) GenerateLocationQR(location *entity.AlertLocation) ([]byte, error) {
	uri := fmt.Sprintf("geo:%f,%f?q=%f,%f(%s)",
		location.Latitude, location.Longitude,
		location.Latitude, location.Longitude,
		url.QueryEscape(location.Name),
	)

	qrCode, err := qrcode.New(uri, s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}
