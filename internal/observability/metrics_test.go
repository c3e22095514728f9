package observability_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/davidbz/howl/internal/observability"
)

func TestChatMetrics(t *testing.T) {
	t.Run("should record requests, fragments and usage", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		metrics := observability.NewChatMetrics(reg)

		metrics.ObserveRequest("stream", "completed", 0.2)
		metrics.ObserveRequest("stream", "failed", 0.1)
		metrics.ObserveFragments("stream", 4)
		metrics.ObserveFragments("stream", 0)
		metrics.ObserveUsage(3, 7)

		count, err := testutil.GatherAndCount(reg, "howl_chat_requests_total")
		require.NoError(t, err)
		require.Equal(t, 2, count)

		families, err := reg.Gather()
		require.NoError(t, err)

		values := map[string]float64{}
		for _, family := range families {
			for _, metric := range family.GetMetric() {
				if metric.GetCounter() != nil {
					key := family.GetName()
					for _, label := range metric.GetLabel() {
						key += "/" + label.GetValue()
					}
					values[key] = metric.GetCounter().GetValue()
				}
			}
		}

		require.InDelta(t, 4, values["howl_chat_fragments_total/stream"], 0)
		require.InDelta(t, 3, values["howl_chat_usage_words_total/prompt"], 0)
		require.InDelta(t, 7, values["howl_chat_usage_words_total/completion"], 0)
	})

	t.Run("should ignore calls on nil metrics", func(t *testing.T) {
		var metrics *observability.ChatMetrics

		require.NotPanics(t, func() {
			metrics.ObserveRequest("aggregate", "completed", 1)
			metrics.ObserveFragments("aggregate", 1)
			metrics.ObserveUsage(1, 1)
		})
	})
}
