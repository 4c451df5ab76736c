package main

import (
	"context"
	"log/slog"
	"os"

	"spotalert/config"
	"spotalert/internal/delivery"
	"spotalert/internal/delivery/http"
	"spotalert/internal/delivery/http/router/handler"
	"spotalert/internal/domain/repository"
	"spotalert/internal/domain/service"
	"spotalert/internal/infra/geocode"
	"spotalert/internal/infra/geofence"
	logs "spotalert/internal/infra/log"
	"spotalert/internal/infra/notification"
	"spotalert/internal/infra/persistence/blob"
	"spotalert/internal/infra/persistence/postgres"
	"spotalert/internal/infra/pubsub"
	"spotalert/internal/infra/qrcode"
	"spotalert/internal/usecase/impl"

	"go.uber.org/fx"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newLocationRepository,
		),
	)
}

// newLocationRepository selects the persistence gateway: PostgreSQL when a
// database connection is configured, the blob bucket otherwise.
func newLocationRepository(lc fx.Lifecycle, ctx context.Context, cfg *config.Config, logger *slog.Logger) (repository.LocationRepository, error) {
	if cfg.Postgres != nil {
		db, err := postgres.New(postgres.Params{
			Lifecycle: lc,
			Config:    cfg,
			Logger:    logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewLocationRepository(db), nil
	}

	return blob.New(blob.Params{
		Lifecycle: lc,
		Ctx:       ctx,
		Config:    cfg,
		Logger:    logger,
	})
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			geofence.NewMonitor,
			geofence.NewProvider,
			notification.NewNotifier,
			pubsub.NewEventPublisher,
			geocode.New,
			newQRCodeService,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewEngine,
			impl.NewRegistryUsecase,
			impl.NewProximityUsecase,
			impl.NewSearchService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewLocationHandler,
			handler.NewPositionHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
