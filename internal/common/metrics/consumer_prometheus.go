package metrics

import (
	"strconv"
	"time"

	"github.com/Shopify/sarama"
	prometheusmetrics "github.com/deathowl/go-metrics-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	goMetrics "github.com/rcrowley/go-metrics"
)

var latencyBuckets = []float64{0, 0.0001, 0.001, 0.010, 0.100, 0.200, 0.500, 1, 2, 5, 10, 100, 1000}

// ConsumerMetrics tracks per-message latency for one consumer group.
type ConsumerMetrics struct {
	group         string
	subsystem     string
	flushInterval time.Duration
	registerer    prometheus.Registerer
	registry      goMetrics.Registry

	// lag between produce and handler completion
	endToEnd *prometheus.HistogramVec
	// handler execution only
	processing *prometheus.HistogramVec
	// lag between produce and handler start
	pickup *prometheus.HistogramVec
}

func NewConsumerMetrics(group, subsystem string, flushInterval time.Duration, reg prometheus.Registerer) *ConsumerMetrics {
	m := &ConsumerMetrics{
		group:         group,
		subsystem:     subsystem,
		flushInterval: flushInterval,
		registerer:    reg,
		registry:      goMetrics.NewPrefixedRegistry(FlattenName(group) + "_"),
		endToEnd: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kafka_consumer_consume_time",
			Help:    "time from message production until its handler finished",
			Buckets: latencyBuckets,
		}, []string{"topic", "consumer_group"}),
		processing: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kafka_consumer_processing_time",
			Help:    "processing time of kafka consumer handler",
			Buckets: latencyBuckets,
		}, []string{"topic", "success", "consumer_group"}),
		pickup: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kafka_consumer_get_message_time",
			Help:    "time from message production until its handler started",
			Buckets: latencyBuckets,
		}, []string{"topic", "consumer_group"}),
	}

	reg.MustRegister(m.endToEnd, m.processing, m.pickup)

	return m
}

// Run starts flushing the go-metrics registry into prometheus.
func (m *ConsumerMetrics) Run() {
	provider := prometheusmetrics.NewPrometheusProvider(
		m.registry, FlattenName(m.group), FlattenName(m.subsystem), m.registerer, m.flushInterval,
	)
	go provider.UpdatePrometheusMetrics()
}

func (m *ConsumerMetrics) GenerateMetrics(startTime time.Time, message *sarama.ConsumerMessage, processErr error) {
	if m == nil || message == nil {
		return
	}

	finishedAt := time.Now()
	success := strconv.FormatBool(processErr == nil)

	m.endToEnd.WithLabelValues(message.Topic, m.group).Observe(finishedAt.Sub(message.Timestamp).Seconds())
	m.processing.WithLabelValues(message.Topic, success, m.group).Observe(finishedAt.Sub(startTime).Seconds())
	m.pickup.WithLabelValues(message.Topic, m.group).Observe(startTime.Sub(message.Timestamp).Seconds())
}
