// Package notify implementa los sinks de alertas de stock. El sink por defecto
// escribe al log estructurado; un despliegue puede reemplazarlo por correo,
// webhook, etc. implementando stock.NotificationSink.
package notify

import (
	"context"

	"github.com/jhoicas/Restaurante-api/internal/application/stock"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

var _ stock.NotificationSink = (*LoggerSink)(nil)

// LoggerSink emite las alertas de stock bajo como eventos de log en nivel warn.
type LoggerSink struct {
	log *logger.Logger
}

// NewLoggerSink construye el sink.
func NewLoggerSink(log *logger.Logger) *LoggerSink {
	return &LoggerSink{log: log}
}

// NotifyLowStock escribe un evento por ingrediente bajo mínimo.
func (s *LoggerSink) NotifyLowStock(_ context.Context, companyID string, ingredients []stock.LowStockIngredient) error {
	for _, ing := range ingredients {
		s.log.Warn().
			Str("company_id", companyID).
			Str("ingredient", ing.Name).
			Str("current_stock", ing.CurrentStock.String()).
			Str("minimum_stock", ing.MinimumStock.String()).
			Msg("ingrediente en o bajo su stock mínimo")
	}
	return nil
}
