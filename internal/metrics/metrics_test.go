package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJoinDenied_ByReason(t *testing.T) {
	before := testutil.ToFloat64(JoinDenied.WithLabelValues("FULL"))
	JoinDenied.WithLabelValues("FULL").Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(JoinDenied.WithLabelValues("FULL")), 0.0001)
}

func TestChangeEvents_Labels(t *testing.T) {
	ChangeEvents.WithLabelValues("tours", "UPDATE").Inc()
	assert.GreaterOrEqual(t, testutil.CollectAndCount(ChangeEvents), 1)
}
