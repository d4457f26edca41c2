package delivery

import (
	"net/http"

	"github.com/tadeasf/reddit-media-dl/internal/app"
	"github.com/tadeasf/reddit-media-dl/internal/utils/logger"
	"github.com/tadeasf/reddit-media-dl/internal/utils/responses"
	"go.uber.org/zap"
)

// StatusDelivery exposes the run's progress counters to a remote poller.
type StatusDelivery struct {
	progress app.ProgressSink
}

func CreateStatusDelivery(progress app.ProgressSink) *StatusDelivery {
	return &StatusDelivery{
		progress: progress,
	}
}

func (d *StatusDelivery) GetProgress(w http.ResponseWriter, r *http.Request) {
	const funcName = "StatusDelivery.GetProgress"
	logger.Debug("serving progress snapshot",
		zap.String("function", funcName),
	)

	responses.DoJSONResponse(w, d.progress.Snapshot(), http.StatusOK)
}

func (d *StatusDelivery) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
