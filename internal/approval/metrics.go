package approval

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/frahmantamala/stock-management/internal"
)

var (
	resolutionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_approval_resolutions_total",
			Help: "Approval attempts by record kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	resolutionDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stock_approval_resolution_duration_seconds",
			Help:    "Time spent resolving an approval, transaction included",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	unitsCheckedOut = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "stock_units_checked_out_total",
			Help: "Stock units removed by approved checkouts",
		},
	)
)

func init() {
	prometheus.MustRegister(resolutionsTotal)
	prometheus.MustRegister(resolutionDuration)
	prometheus.MustRegister(unitsCheckedOut)
}

const (
	kindItem     = "item"
	kindCheckout = "checkout"
)

// outcomeLabel folds an error into a small, fixed label set.
func outcomeLabel(err error) string {
	var appErr *internal.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Code)
	}
	return "error"
}
