package reports

import (
	"strings"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/apperror"
)

// TimeOption is the bucket size of a report.
type TimeOption string

const (
	TimeOptionWeek  TimeOption = "WEEK"
	TimeOptionMonth TimeOption = "MONTH"
	TimeOptionYear  TimeOption = "YEAR"
)

// ParseRangeOption accepts MONTH or YEAR in any case. WEEK has its own
// endpoint.
func ParseRangeOption(raw string) (TimeOption, error) {
	switch o := TimeOption(strings.ToUpper(raw)); o {
	case TimeOptionMonth, TimeOptionYear:
		return o, nil
	}
	return "", apperror.Invalid("timeOption", "must be MONTH or YEAR")
}

// Report is what the report screen charts. ReportData maps label to value;
// Entries carries the same data in display order.
type Report struct {
	Title      string             `json:"title"`
	TimeOption TimeOption         `json:"timeOption"`
	Start      string             `json:"start"`
	End        string             `json:"end"`
	ReportData map[string]float64 `json:"reportData"`
	Entries    []Entry            `json:"entries"`
	Coaches    []CoachUsage       `json:"coaches,omitempty"`
	Routes     []RouteStat        `json:"routes,omitempty"`
}

type Entry struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Count int64   `json:"count"`
}

func newReport(title string, option TimeOption, start, end string, entries []Entry) *Report {
	data := make(map[string]float64, len(entries))
	for _, e := range entries {
		data[e.Label] = e.Value
	}
	return &Report{
		Title:      title,
		TimeOption: option,
		Start:      start,
		End:        end,
		ReportData: data,
		Entries:    entries,
	}
}

// PeriodRevenue is one row of the revenue query. Tickets counts bookings.
type PeriodRevenue struct {
	Period  string `json:"period"`
	Revenue int64  `json:"revenue"`
	Tickets int64  `json:"tickets"`
}

// CoachUsage is how full a coach ran over a period. Usage is a percentage
// of the seats offered by its trips.
type CoachUsage struct {
	CoachID      int64   `json:"coachId"`
	CoachName    string  `json:"coachName"`
	LicensePlate string  `json:"licensePlate"`
	Capacity     int64   `json:"capacity"`
	Trips        int64   `json:"trips"`
	SeatsSold    int64   `json:"seatsSold"`
	Usage        float64 `json:"usage" gorm:"-"`
}

type RouteStat struct {
	SourceName      string `json:"sourceName"`
	DestinationName string `json:"destinationName"`
	Tickets         int64  `json:"tickets"`
	Revenue         int64  `json:"revenue"`
}

func (r RouteStat) Label() string {
	return r.SourceName + " - " + r.DestinationName
}

// DashboardSummary backs the stat boxes of the dashboard.
type DashboardSummary struct {
	AvailableDrivers int64  `json:"availableDrivers"`
	Staff            int64  `json:"staff"`
	Customers        int64  `json:"customers"`
	Coaches          int64  `json:"coaches"`
	WeekRevenue      int64  `json:"weekRevenue"`
	WeekTickets      int64  `json:"weekTickets"`
	WeekStart        string `json:"weekStart"`
}
