package service

import "spotalert/internal/domain/entity"

// QRCodeService renders a saved location as a scannable share code.
type QRCodeService interface {
	GenerateLocationQR(location *entity.AlertLocation) ([]byte, error)
}
