package depot

import (
	"encoding/json"
	"fmt"
	"iter"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

const readDateFormat = "2006-1-2" // Permissive read date format (allows single-digit month/day).

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02" // write date format

// Date represents a date with day-level granularity.
//
// Provider timestamps of any timezone are normalized to a Date (midnight UTC)
// at the decode boundary, so two quotes on the same calendar day always
// compare equal.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// DateOf returns the Date of a point in time, interpreted in UTC.
func DateOf(t time.Time) Date { return NewDate(t.UTC().Date()) }

// Year returns the year of the date.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns the day of the month.
func (d Date) Day() int { return d.d }

// String format the date in date RFC3339.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// Weekday returns the day of the week for the date.
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted
// according to the layout defined by the argument. See [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// AddMonth returns a new Date with the given number of months added.
func (d Date) AddMonth(i int) Date { return NewDate(d.y, d.m+time.Month(i), d.d) }

// StartOf returns the date of the beginning of a given period.
func (d Date) StartOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		weekday := d.Weekday() // time.Sunday = 0, ..., time.Saturday = 6
		offset := int(weekday - time.Monday)
		for offset < 0 {
			offset += 7
		}
		return d.Add(-offset)
	case Monthly:
		return NewDate(d.Year(), d.Month(), 1)
	case Yearly:
		return NewDate(d.Year(), time.January, 1)
	default:
		panic("unknown period")
	}
}

// EndOf returns the date of the end of a given period.
func (d Date) EndOf(period Period) Date {
	switch period {
	case Daily:
		return d
	case Weekly:
		weekday := d.Weekday()
		offset := int(7 - weekday)
		for offset >= 7 {
			offset -= 7
		}
		return d.Add(offset)
	case Monthly:
		return NewDate(d.Year(), d.Month()+1, 0)
	case Yearly:
		return NewDate(d.Year()+1, time.January, 0)
	default:
		panic("unknown period")
	}
}

var relativeDateRE = regexp.MustCompile(`^([+-])(\d+)([dwmy])$`)

// ParseDate parses a Date from a string. It is lenient and accepts formats
// like "2025-7-1", as well as relative forms like "-3m" (three months ago).
func ParseDate(str string) (Date, error) {
	str = strings.TrimSpace(str)

	// Handle "0d" as a special case for today
	if str == "0d" {
		return Today(), nil
	}

	// Relative Duration Format (e.g., -1d, +2w) - sign is mandatory for non-zero
	if match := relativeDateRE.FindStringSubmatch(str); match != nil {
		num, err := strconv.Atoi(match[2])
		if err != nil {
			// This should not happen given the regex
			return Date{}, fmt.Errorf("invalid number in relative date %q: %w", str, err)
		}
		if match[1] == "-" {
			num = -num
		}

		today := Today()
		switch match[3] {
		case "d":
			return today.Add(num), nil
		case "w":
			return today.Add(num * 7), nil
		case "m":
			return today.AddMonth(num), nil
		case "y":
			return NewDate(today.Year()+num, today.Month(), today.Day()), nil
		}
	}

	// Standard ISO Format (Fallback)
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		// try the long format
		on, err = time.Parse(time.RFC3339, str)
	}
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", str, readDateFormat, err)
	}
	return NewDate(on.Date()), nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(str string) Date {
	d, err := ParseDate(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (j *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	// Keep this parsing strict, as it's for data files.
	// But not too strict, also supports 2025-7-1
	on, err := time.Parse(readDateFormat, str)
	if err != nil {
		return fmt.Errorf("invalid date %q in data file, want format %q: %w", str, DateFormat, err)
	}
	*j = NewDate(on.Date())
	return nil
}

func (j Date) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)

// iterate returns an iterator over all unique, sorted dates from multiple series of dates.
func iterate(series ...[]Date) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		indexes := make([]int, len(series))
		times := make([]Date, 0, len(series))
		for {
			// collect the next unconsumed date of every series
			times = times[:0]
			for i, index := range indexes {
				if index < len(series[i]) {
					times = append(times, series[i][index])
				}
			}
			if len(times) == 0 {
				// All series have been consumed, exit.
				return
			}
			m := times[0]
			for _, t := range times {
				if t.Before(m) {
					m = t
				}
			}
			// consume the min wherever it appears
			for i, index := range indexes {
				if index < len(series[i]) && series[i][index] == m {
					indexes[i]++
				}
			}
			if !yield(m) {
				return
			}
		}
	}
}

type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Yearly:
		return "yearly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}

// History stores a chronological series of values, each associated with a
// specific date. It ensures that dates are unique and the series is always
// sorted, which is what makes forward-fill lookups cheap.
type History[T float32 | float64 | string] struct {
	days   []Date
	values []T
}

// Latest returns the latest date and value in the history.
// If the history is empty, it returns zero values.
func (h *History[T]) Latest() (day Date, value T) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, *new(T)
	}
	return h.days[last], h.values[last]
}

// Len returns the number of items in the history.
func (h *History[T]) Len() int { return len(h.days) }

// Days returns the sorted dates of the history.
func (h *History[T]) Days() []Date { return h.days }

// chronological is a private implementation to make this history chronologically sorted.
type chronological[T float32 | float64 | string] struct{ *History[T] }

func (s chronological[T]) Less(i, j int) bool { return s.days[i].Before(s.days[j]) }
func (s chronological[T]) Swap(i, j int) {
	s.days[i], s.days[j] = s.days[j], s.days[i]
	s.values[i], s.values[j] = s.values[j], s.values[i]
}

// sort sorts the history in chronological order.
func (h *History[T]) sort() { sort.Sort(chronological[T]{h}) }

// Append adds a point to the history.
//
// An existing value at that date is overwritten: duplicate timestamps from a
// provider resolve to the last one seen.
func (h *History[T]) Append(on Date, q T) *History[T] {
	if i := slices.Index(h.days, on); i >= 0 {
		h.values[i] = q
		return h
	}
	h.days, h.values = append(h.days, on), append(h.values, q)
	h.sort()
	return h
}

// Values returns an iterator over all date/value pairs in the history, in chronological order.
func (h *History[T]) Values() iter.Seq2[Date, T] {
	return func(yield func(Date, T) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Get returns the value at 'day' and true, or zero value and false.
func (h *History[T]) Get(day Date) (T, bool) {
	i := slices.Index(h.days, day)
	if i >= 0 {
		return h.values[i], true
	}
	var zero T
	return zero, false
}

// ValueAsOf returns the value on a given day, or the most recent value before
// it (forward-fill). It returns the value and true if found, otherwise the
// zero value and false.
func (h *History[T]) ValueAsOf(day Date) (T, bool) {
	_, v, ok := h.AsOf(day)
	return v, ok
}

// AsOf returns the latest entry at or before the given day, together with its
// effective date. It returns false when no entry exists on or before the day.
func (h *History[T]) AsOf(day Date) (Date, T, bool) {
	// The days slice is sorted, so we can use binary search.
	i, found := slices.BinarySearchFunc(h.days, day, func(d, t Date) int {
		if d.After(t) {
			return 1
		}
		if d.Before(t) {
			return -1
		}
		return 0
	})

	if found {
		return h.days[i], h.values[i], true
	}

	// Not found. `i` is the index where `day` would be inserted, so the last
	// entry before the target date is at `i-1`.
	if i == 0 {
		var zero T
		return Date{}, zero, false // No date on or before the given day.
	}
	return h.days[i-1], h.values[i-1], true
}
