package observability

import "testing"

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordPacket("ttyACM0")
	RecordDropped("ttyACM0", 3)
	RecordRetry("ttyACM0")
	RecordTimeout("ttyACM0")
}
