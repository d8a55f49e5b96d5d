package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestRecordArticleApproved(t *testing.T) {
	before := counterValue(t, ArticlesApprovedTotal)
	RecordArticleApproved()
	after := counterValue(t, ArticlesApprovedTotal)
	assert.Equal(t, before+1, after)
}

func TestRecordSubscription(t *testing.T) {
	tests := []struct {
		name string
		kind string
	}{
		{name: "journalist subscription", kind: "journalist"},
		{name: "newsletter subscription", kind: "newsletter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SubscriptionsTotal.WithLabelValues(tt.kind)
			before := counterValue(t, c)
			RecordSubscription(tt.kind)
			assert.Equal(t, before+1, counterValue(t, c))
		})
	}
}

func TestRecordUserRegistered(t *testing.T) {
	c := UsersRegisteredTotal.WithLabelValues("reader")
	before := counterValue(t, c)
	RecordUserRegistered("reader")
	assert.Equal(t, before+1, counterValue(t, c))
}

func TestRecordHTTPRequest(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordHTTPRequest("GET", "/articles", "200", 42*time.Millisecond, 0, 512)
	})
}

func TestRecordDBQuery(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordDBQuery("select_articles", 3*time.Millisecond)
	})
}
