package usecase

// ProximityUsecase exposes the engine's presentation-facing alert status.
type ProximityUsecase interface {
	// CurrentAlert returns the human-readable "near X" message, or false
	// when the user is not near any saved location.
	CurrentAlert() (string, bool)
}
