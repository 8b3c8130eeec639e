package reports

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/permission"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/constants"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/internal/shared/utils/dates"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/cache"
	"github.com/nguyentuanphung270301/BusTicketBookingAdmin/pkg/logger"
)

const topRouteLimit = 5

type Service interface {
	Revenue(ctx context.Context, start, end, option string) (*Report, error)
	// WeekRevenue reports Monday to Sunday of the week containing date.
	// Days without sales are reported as 0.
	WeekRevenue(ctx context.Context, date string) (*Report, error)
	Usage(ctx context.Context, start, end, option string) (*Report, error)
	TopRoutes(ctx context.Context, start, end, option string) (*Report, error)
	Dashboard(ctx context.Context) (*DashboardSummary, error)
}

type DriverCounter interface {
	CountAvailable(ctx context.Context) (int64, error)
}

type UserCounter interface {
	CountByRole(ctx context.Context, role string) (int64, error)
}

type CoachCounter interface {
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo    Repository
	drivers DriverCounter
	users   UserCounter
	coaches CoachCounter
	cache   cache.Service
	now     func() time.Time
}

// NewService creates the report service. c may be nil.
func NewService(repo Repository, drivers DriverCounter, users UserCounter, coaches CoachCounter, c cache.Service) Service {
	return &service{
		repo:    repo,
		drivers: drivers,
		users:   users,
		coaches: coaches,
		cache:   c,
		now:     time.Now,
	}
}

// period is a parsed [from, to) window aligned to its option.
type period struct {
	option     TimeOption
	start, end string
	from, to   time.Time
}

// parsePeriod widens [start, end] to whole months or years.
func parsePeriod(start, end, option string) (*period, error) {
	o, err := ParseRangeOption(option)
	if err != nil {
		return nil, err
	}
	s, e, err := dates.ParseRange(start, end)
	if err != nil {
		return nil, err
	}

	p := &period{option: o, start: start, end: end}
	switch o {
	case TimeOptionMonth:
		p.from = time.Date(s.Year(), s.Month(), 1, 0, 0, 0, 0, s.Location())
		p.to = time.Date(e.Year(), e.Month(), 1, 0, 0, 0, 0, e.Location()).AddDate(0, 1, 0)
	case TimeOptionYear:
		p.from = time.Date(s.Year(), 1, 1, 0, 0, 0, 0, s.Location())
		p.to = time.Date(e.Year()+1, 1, 1, 0, 0, 0, 0, e.Location())
	}
	return p, nil
}

// buckets lists the labels of every month or year in the window.
func (p *period) buckets() []string {
	var labels []string
	for t := p.from; t.Before(p.to); {
		if p.option == TimeOptionYear {
			labels = append(labels, t.Format("2006"))
			t = t.AddDate(1, 0, 0)
		} else {
			labels = append(labels, t.Format("2006-01"))
			t = t.AddDate(0, 1, 0)
		}
	}
	return labels
}

func (p *period) sqlBucket() string {
	if p.option == TimeOptionYear {
		return bucketYear
	}
	return bucketMonth
}

func (s *service) cached(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	return s.cache.Get(ctx, key, dest) == nil
}

func (s *service) store(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, ttl); err != nil {
		logger.GetDefault().Warn("Failed to cache report", "key", key, "error", err)
	}
}

func (s *service) Revenue(ctx context.Context, start, end, option string) (*Report, error) {
	p, err := parsePeriod(start, end, option)
	if err != nil {
		return nil, err
	}

	key := constants.BuildReportKey(constants.CACHE_KEY_REPORT_REVENUE, string(p.option), start+":"+end)
	var cached Report
	if s.cached(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := s.repo.Revenues(ctx, p.from, p.to, p.sqlBucket())
	if err != nil {
		return nil, err
	}

	report := newReport("Revenue", p.option, start, end, zeroFill(p.buckets(), rows))
	s.store(ctx, key, report, constants.TTL_REPORTS)
	return report, nil
}

func (s *service) WeekRevenue(ctx context.Context, date string) (*Report, error) {
	day, err := dates.Parse("date", date)
	if err != nil {
		return nil, err
	}
	monday, next := dates.WeekBounds(day)

	key := constants.BuildReportKey(constants.CACHE_KEY_REPORT_WEEKLY, "", dates.Format(monday))
	var cached Report
	if s.cached(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := s.repo.Revenues(ctx, monday, next, bucketDay)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 7)
	for i := range labels {
		labels[i] = dates.Format(monday.AddDate(0, 0, i))
	}
	sunday := monday.AddDate(0, 0, 6)
	report := newReport("Revenue", TimeOptionWeek, dates.Format(monday), dates.Format(sunday), zeroFill(labels, rows))
	s.store(ctx, key, report, constants.TTL_REPORTS)
	return report, nil
}

// zeroFill returns one entry per label, 0 where rows has no match.
func zeroFill(labels []string, rows []PeriodRevenue) []Entry {
	byPeriod := make(map[string]PeriodRevenue, len(rows))
	for _, r := range rows {
		byPeriod[r.Period] = r
	}
	entries := make([]Entry, len(labels))
	for i, l := range labels {
		r := byPeriod[l]
		entries[i] = Entry{Label: l, Value: float64(r.Revenue), Count: r.Tickets}
	}
	return entries
}

func (s *service) Usage(ctx context.Context, start, end, option string) (*Report, error) {
	p, err := parsePeriod(start, end, option)
	if err != nil {
		return nil, err
	}

	key := constants.BuildReportKey(constants.CACHE_KEY_REPORT_USAGE, string(p.option), start+":"+end)
	var cached Report
	if s.cached(ctx, key, &cached) {
		return &cached, nil
	}

	usages, err := s.repo.CoachUsages(ctx, p.from, p.to)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(usages))
	for i := range usages {
		u := &usages[i]
		if offered := u.Trips * u.Capacity; offered > 0 {
			u.Usage = math.Round(float64(u.SeatsSold)*1000/float64(offered)) / 10
		}
		entries = append(entries, Entry{
			Label: fmt.Sprintf("%s (%s)", u.CoachName, u.LicensePlate),
			Value: u.Usage,
			Count: u.SeatsSold,
		})
	}

	report := newReport("Coach Usage", p.option, start, end, entries)
	report.Coaches = usages
	s.store(ctx, key, report, constants.TTL_REPORTS)
	return report, nil
}

func (s *service) TopRoutes(ctx context.Context, start, end, option string) (*Report, error) {
	p, err := parsePeriod(start, end, option)
	if err != nil {
		return nil, err
	}

	key := constants.BuildReportKey(constants.CACHE_KEY_REPORT_TOP_ROUTE, string(p.option), start+":"+end)
	var cached Report
	if s.cached(ctx, key, &cached) {
		return &cached, nil
	}

	routes, err := s.repo.TopRoutes(ctx, p.from, p.to, topRouteLimit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(routes))
	for i, r := range routes {
		entries[i] = Entry{Label: r.Label(), Value: float64(r.Tickets), Count: r.Tickets}
	}

	report := newReport("Top 5 Route", p.option, start, end, entries)
	report.Routes = routes
	s.store(ctx, key, report, constants.TTL_REPORTS)
	return report, nil
}

func (s *service) Dashboard(ctx context.Context) (*DashboardSummary, error) {
	monday, next := dates.WeekBounds(s.now())
	key := constants.CACHE_KEY_DASHBOARD + dates.Format(monday)

	var cached DashboardSummary
	if s.cached(ctx, key, &cached) {
		return &cached, nil
	}

	summary := &DashboardSummary{WeekStart: dates.Format(monday)}
	var err error
	if summary.AvailableDrivers, err = s.drivers.CountAvailable(ctx); err != nil {
		return nil, fmt.Errorf("failed to count drivers: %w", err)
	}
	if summary.Staff, err = s.users.CountByRole(ctx, permission.RoleStaff); err != nil {
		return nil, fmt.Errorf("failed to count staff: %w", err)
	}
	if summary.Customers, err = s.users.CountByRole(ctx, permission.RoleCustomer); err != nil {
		return nil, fmt.Errorf("failed to count customers: %w", err)
	}
	if summary.Coaches, err = s.coaches.Count(ctx); err != nil {
		return nil, fmt.Errorf("failed to count coaches: %w", err)
	}

	rows, err := s.repo.Revenues(ctx, monday, next, bucketDay)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		summary.WeekRevenue += r.Revenue
		summary.WeekTickets += r.Tickets
	}

	s.store(ctx, key, summary, constants.TTL_DASHBOARD)
	return summary, nil
}
