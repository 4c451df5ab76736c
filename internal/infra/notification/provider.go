package notification

import (
	"context"
	"log/slog"

	"spotalert/config"
	"spotalert/internal/domain/service"

	"go.uber.org/fx"
)

// logNotifier is the fallback when Firebase is not configured: notifications
// surface in the process log only.
type logNotifier struct {
	logger *slog.Logger
}

func (n *logNotifier) Notify(ctx context.Context, title, body string, data map[string]string) error {
	n.logger.Info("[Notification]",
		slog.String("title", title),
		slog.String("body", body),
	)

	return nil
}

// Params holds dependencies for the Notifier, injected by Fx.
type Params struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewNotifier creates a Notifier based on configuration.
func NewNotifier(params Params) (service.Notifier, error) {
	cfg := params.Config.Firebase
	if cfg == nil || cfg.CredentialsPath == "" {
		params.Logger.Info("Firebase not configured, using log notifier")

		return &logNotifier{logger: params.Logger}, nil
	}

	return NewFirebaseNotifier(params.Ctx, cfg.CredentialsPath, cfg.DeviceTokens)
}
