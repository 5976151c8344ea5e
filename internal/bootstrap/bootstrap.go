package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	sheetsclient "github.com/GregMSThompson/leads-dashboard/internal/client/sheets"
	"github.com/GregMSThompson/leads-dashboard/internal/config"
	"github.com/GregMSThompson/leads-dashboard/internal/store"
	"github.com/GregMSThompson/leads-dashboard/pkg/logger"
)

var errNoSheet = errors.New("one of SHEETURL, SHEETID or SHEETIDSECRET must be set")

type Bootstrap struct {
	Log      *slog.Logger
	HTTP     *http.Client
	SheetURL string
	Secrets  *secretmanager.Client
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	bs.HTTP = &http.Client{Timeout: cfg.FetchTimeout}

	switch {
	case cfg.SheetURL != "":
		bs.SheetURL = cfg.SheetURL
	case cfg.SheetID != "":
		bs.SheetURL = sheetsclient.SheetURL(cfg.SheetID)
	case cfg.SheetIDSecret != "":
		bs.Secrets, err = InitSecretManager(applicationCtx)
		if err != nil {
			return bs, err
		}
		ctx := logger.ToContext(applicationCtx, bs.Log)
		sheetID, err := store.NewSheetSecretsStore(bs.Secrets, cfg.ProjectID).GetSheetID(ctx, cfg.SheetIDSecret)
		if err != nil {
			return bs, err
		}
		bs.SheetURL = sheetsclient.SheetURL(sheetID)
	default:
		return bs, errNoSheet
	}

	return bs, nil
}

func (b *Bootstrap) Close() {
	if b.Secrets != nil {
		b.Secrets.Close()
	}
}
