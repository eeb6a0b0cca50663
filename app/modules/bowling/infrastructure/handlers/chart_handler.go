package bowlinghandlers

import (
	"log/slog"
	"net/http"
	"strconv"

	bowlingservice "github.com/Black-And-White-Club/tenpin/app/modules/bowling/application"
	"github.com/Black-And-White-Club/tenpin/app/modules/bowling/infrastructure/charts"
)

func (h *BowlingHandlers) HandleChart(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HandleChart")
	defer span.End()

	query := r.URL.Query()
	notation := query.Get("notation")
	strategy := bowlingservice.Strategy{
		Validation: query.Get("validation"),
		Calculator: query.Get("calculator"),
	}

	card, err := h.scoreCard(ctx, strategy, notation)
	if err != nil {
		status, kind, message := classify(err)
		h.logger.WarnContext(ctx, "Chart request rejected",
			slog.String("kind", kind),
			slog.Any("error", err),
		)
		writeError(w, status, kind, message)
		return
	}

	png, err := charts.RenderScoreCard(card, charts.DefaultPalette)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to render chart", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "internal", "failed to render chart")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
