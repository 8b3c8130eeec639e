package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "busadmin:seats:lock:trip:7:date:2024-05-01:seat:12", BuildSeatLockKey(7, "2024-05-01", 12))
	assert.Equal(t, "busadmin:trips:search:1:2:2024-05-01", BuildTripSearchKey(1, 2, "2024-05-01"))
	assert.Equal(t, "busadmin:trips:list:page:0:limit:10", BuildTripListKey(0, 10))
	assert.Equal(t, "busadmin:reports:revenue:MONTH:2024-05-01", BuildReportKey(CACHE_KEY_REPORT_REVENUE, "MONTH", "2024-05-01"))
	assert.Equal(t, "busadmin:reports:weekly:2024-05-01", BuildReportKey(CACHE_KEY_REPORT_WEEKLY, "", "2024-05-01"))
	assert.Equal(t, "busadmin:session:sid:abc", BuildSessionKey("abc"))
}
