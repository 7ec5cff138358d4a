package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hr-portal/internal/domain/timeoff"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// callerFrom returns the AuthContext stored by middleware.AuthRequired.
func callerFrom(r *http.Request) (auth.AuthContext, error) {
	caller, ok := auth.FromContext(r.Context())
	if !ok {
		return auth.AuthContext{}, auth.ErrUnauthenticated
	}
	return caller, nil
}

// pathID parses the positive integer URL parameter name.
func pathID(r *http.Request, name string) (int64, error) {
	id, ok := validator.ParsePositiveID(chi.URLParam(r, name))
	if !ok {
		var errs validator.ValidationErrors
		errs.Add(name, name+" must be a positive integer")
		return 0, errs
	}
	return id, nil
}

// queryYear parses the optional year query parameter. Zero means unset.
func queryYear(r *http.Request) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("year"))
	if raw == "" {
		return 0, nil
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2100 {
		var errs validator.ValidationErrors
		errs.Add("year", "year must be between 2000 and 2100")
		return 0, errs
	}
	return year, nil
}

func optionalString(r *http.Request, key string) *string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return &v
	}
	return nil
}

func queryInt(r *http.Request, key string, errs *validator.ValidationErrors) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		errs.Add(key, key+" must be a positive integer")
		return 0
	}
	return n
}

func queryDate(r *http.Request, key string, errs *validator.ValidationErrors) *time.Time {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	d, ok := validator.IsValidDate(raw)
	if !ok {
		errs.Add(key, key+" must be a date in YYYY-MM-DD format")
		return nil
	}
	return &d
}

// parseRequestFilter reads the time off listing query parameters. Malformed
// values are reported as validation errors rather than ignored.
func parseRequestFilter(r *http.Request) (timeoff.RequestFilter, error) {
	var (
		filter timeoff.RequestFilter
		errs   validator.ValidationErrors
	)

	if status := optionalString(r, "status"); status != nil {
		s := timeoff.Status(strings.ToLower(*status))
		filter.Status = &s
	}
	if leaveType := optionalString(r, "leave_type"); leaveType != nil {
		lt := timeoff.LeaveType(strings.ToLower(*leaveType))
		filter.LeaveType = &lt
	}
	filter.Department = optionalString(r, "department")
	filter.Search = optionalString(r, "search")

	if raw := optionalString(r, "employee_id"); raw != nil {
		id, ok := validator.ParsePositiveID(*raw)
		if !ok {
			errs.Add("employee_id", "employee_id must be a positive integer")
		} else {
			filter.EmployeeID = &id
		}
	}

	filter.StartDate = queryDate(r, "start_date", &errs)
	filter.EndDate = queryDate(r, "end_date", &errs)
	filter.OrderBy = timeoff.ParseOrderBy(r.URL.Query().Get("order_by"))
	filter.Page = queryInt(r, "page", &errs)
	filter.Limit = queryInt(r, "limit", &errs)

	if err := errs.Err(); err != nil {
		return timeoff.RequestFilter{}, err
	}
	return filter, nil
}
