package constants

import (
	"fmt"
	"time"
)

// Redis key layout for the back office.
// Pattern: busadmin:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG   = 24 * time.Hour // provinces
	TTL_STATIC_MEDIUM = 12 * time.Hour // coach catalogue
	TTL_STATIC_SHORT  = 6 * time.Hour  // permission maps
)

// Semi-Static Data (Medium TTL: changes occasionally)
const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // trip listings
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // available discounts
)

// Dynamic Data (Short TTL: changes frequently)
const (
	TTL_DYNAMIC_MEDIUM = 10 * time.Minute // reports
	TTL_DYNAMIC_SHORT  = 5 * time.Minute  // dashboard counters
	TTL_DYNAMIC_QUICK  = 2 * time.Minute  // trip search results
)

// Highly Dynamic (Micro TTL: real-time sensitive)
const (
	TTL_REALTIME_SHORT = 15 * time.Second // seat locks
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "busadmin"
)

// ================== SESSION MODULE ==================

const (
	KEY_SESSION      = CACHE_PREFIX + ":session:sid:"  // + session-id
	KEY_USER_SESSION = CACHE_PREFIX + ":session:user:" // + username -> session-id
)

// ================== WIZARD MODULE ==================

const (
	KEY_WIZARD_DRAFT = CACHE_PREFIX + ":wizard:draft:" // + wizard-id
	KEY_WIZARD_LOCK  = CACHE_PREFIX + ":wizard:lock:"  // + wizard-id
)

// ================== TRIPS MODULE ==================

const (
	CACHE_KEY_TRIPS_LIST   = CACHE_PREFIX + ":trips:list"    // + :page:X:limit:Y
	CACHE_KEY_TRIP_DETAIL  = CACHE_PREFIX + ":trips:detail:" // + trip-id
	CACHE_KEY_TRIPS_SEARCH = CACHE_PREFIX + ":trips:search:" // + from:to:date
)

const (
	TTL_TRIPS_LIST   = TTL_SEMI_STATIC_SHORT
	TTL_TRIP_DETAIL  = TTL_SEMI_STATIC_SHORT
	TTL_TRIPS_SEARCH = TTL_DYNAMIC_QUICK
)

// ================== CATALOGUE MODULES ==================

const (
	CACHE_KEY_PROVINCES_ALL       = CACHE_PREFIX + ":provinces:all"
	CACHE_KEY_DISCOUNTS_AVAILABLE = CACHE_PREFIX + ":discounts:available"
	CACHE_KEY_USER_PERMISSION     = CACHE_PREFIX + ":users:permission:" // + username
)

const (
	TTL_PROVINCES_ALL       = TTL_STATIC_LONG
	TTL_DISCOUNTS_AVAILABLE = TTL_SEMI_STATIC_QUICK
	TTL_USER_PERMISSION     = TTL_STATIC_SHORT
)

// ================== SEATS MODULE ==================

const (
	KEY_SEAT_LOCK = CACHE_PREFIX + ":seats:lock:trip:" // + trip-id:date:yyyy-mm-dd:seat:N
)

const (
	TTL_SEAT_LOCK = TTL_REALTIME_SHORT
)

// ================== REPORTS MODULE ==================

const (
	CACHE_KEY_REPORT_REVENUE   = CACHE_PREFIX + ":reports:revenue:"   // + option:date
	CACHE_KEY_REPORT_WEEKLY    = CACHE_PREFIX + ":reports:weekly:"    // + date
	CACHE_KEY_REPORT_USAGE     = CACHE_PREFIX + ":reports:usage:"     // + option:date
	CACHE_KEY_REPORT_TOP_ROUTE = CACHE_PREFIX + ":reports:toproute:"  // + option:date
	CACHE_KEY_DASHBOARD        = CACHE_PREFIX + ":reports:dashboard:" // + date
)

const (
	TTL_REPORTS   = TTL_DYNAMIC_MEDIUM
	TTL_DASHBOARD = TTL_DYNAMIC_SHORT
)

// ================== RATE LIMIT ==================

const (
	KEY_RATE_LIMIT = CACHE_PREFIX + ":ratelimit:" // + class:ip
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_TRIPS_ALL     = CACHE_PREFIX + ":trips:*"
	PATTERN_INVALIDATE_DISCOUNTS_ALL = CACHE_PREFIX + ":discounts:*"
	PATTERN_INVALIDATE_PROVINCES_ALL = CACHE_PREFIX + ":provinces:*"
	PATTERN_INVALIDATE_REPORTS       = CACHE_PREFIX + ":reports:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildSessionKey(sessionID string) string {
	return KEY_SESSION + sessionID
}

func BuildUserSessionKey(username string) string {
	return KEY_USER_SESSION + username
}

func BuildWizardDraftKey(wizardID string) string {
	return KEY_WIZARD_DRAFT + wizardID
}

func BuildWizardLockKey(wizardID string) string {
	return KEY_WIZARD_LOCK + wizardID
}

func BuildTripListKey(page, limit int) string {
	return fmt.Sprintf("%s:page:%d:limit:%d", CACHE_KEY_TRIPS_LIST, page, limit)
}

func BuildTripDetailKey(tripID int64) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_TRIP_DETAIL, tripID)
}

// BuildTripSearchKey -> "busadmin:trips:search:1:2:2024-05-01"
func BuildTripSearchKey(fromID, toID int64, date string) string {
	return fmt.Sprintf("%s%d:%d:%s", CACHE_KEY_TRIPS_SEARCH, fromID, toID, date)
}

func BuildUserPermissionKey(username string) string {
	return CACHE_KEY_USER_PERMISSION + username
}

// BuildSeatLockKey -> "busadmin:seats:lock:trip:7:date:2024-05-01:seat:12"
func BuildSeatLockKey(tripID int64, date string, seat int) string {
	return fmt.Sprintf("%s%d:date:%s:seat:%d", KEY_SEAT_LOCK, tripID, date, seat)
}

func BuildReportKey(prefix, option, date string) string {
	if option == "" {
		return prefix + date
	}
	return prefix + option + ":" + date
}

func BuildRateLimitKey(class, ip string) string {
	return KEY_RATE_LIMIT + class + ":" + ip
}
