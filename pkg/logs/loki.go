package logs

import (
	"fmt"
	"log/slog"

	"github.com/grafana/loki-client-go/loki"
	slogloki "github.com/samber/slog-loki/v3"

	"github.com/melbooking/melbooking_backend/config"
)

func newLokiHandler(cfg config.LokiConfig, level slog.Level) (slog.Handler, func(), error) {
	lc, err := loki.NewDefaultConfig(cfg.Endpoint)
	if err != nil {
		return nil, nil, fmt.Errorf("loki config: %w", err)
	}
	lc.TenantID = cfg.TenantID

	client, err := loki.New(lc)
	if err != nil {
		return nil, nil, fmt.Errorf("loki client: %w", err)
	}

	h := slogloki.Option{Level: level, Client: client}.NewLokiHandler()
	return h, client.Stop, nil
}
