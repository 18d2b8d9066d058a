// Package metrics счетчики prometheus, отдаваемые через /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// JoinDenied отказы во вступлении в тур по причине.
	JoinDenied = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meetoutdoors_join_denied_total",
		Help: "Join attempts rejected by the capacity guard.",
	}, []string{"reason"})

	// EntitlementDenied запросы, отклоненные из-за истекшего пробного периода.
	EntitlementDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meetoutdoors_entitlement_denied_total",
		Help: "Requests rejected because the trial expired without premium.",
	})

	// TrialExpiryPersisted сколько раз флаг trial_expired был записан в профиль.
	TrialExpiryPersisted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meetoutdoors_trial_expiry_persisted_total",
		Help: "Trial expiry write-backs by source.",
	}, []string{"source"})

	// ChangeEvents события изменений, обработанные ретранслятором.
	ChangeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "meetoutdoors_change_events_total",
		Help: "Row change events processed by the relay.",
	}, []string{"table", "type"})

	// PublishFailures неудачные публикации событий в брокер.
	PublishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "meetoutdoors_change_publish_failures_total",
		Help: "Change events that could not be published.",
	})
)
