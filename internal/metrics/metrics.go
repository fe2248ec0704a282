package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// UpdatesTotal counts incoming Telegram updates by kind
	UpdatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Telegram updates received, by kind.",
	}, []string{"kind"})

	// AIRequestsTotal counts model calls by operation and result
	AIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_ai_requests_total",
		Help: "Gemini requests, by operation and result.",
	}, []string{"op", "result"})

	// TTSRequestsTotal counts speech synthesis calls by result
	TTSRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_tts_requests_total",
		Help: "Text-to-speech requests, by result.",
	}, []string{"result"})

	// BroadcastMessagesTotal counts broadcast deliveries by result
	BroadcastMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_broadcast_messages_total",
		Help: "Broadcast messages delivered, by result.",
	}, []string{"result"})

	// RegisteredUsers tracks the registry size
	RegisteredUsers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "bot_registered_users",
		Help: "Number of known user profiles.",
	})
)

// Result label values
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Result maps an error to a result label
func Result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

func botCollectors() []prometheus.Collector {
	return []prometheus.Collector{
		UpdatesTotal,
		AIRequestsTotal,
		TTSRequestsTotal,
		BroadcastMessagesTotal,
		RegisteredUsers,
	}
}
