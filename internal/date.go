package internal

import "time"

const DateFormat = "2006-01-02"

// Date is a calendar day in a given location.
type Date struct {
	time.Time
}

func Today(loc *time.Location) Date {
	return NewDateFromTime(time.Now().In(loc))
}

func NewDateFromTime(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day(), t.Location())
}

// LocalDate returns the day t falls on when observed from loc.
func LocalDate(t time.Time, loc *time.Location) Date {
	return NewDateFromTime(t.In(loc))
}

func NewDate(year int, month time.Month, day int, loc *time.Location) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, loc)}
}

func (d Date) AddDate(years, months, days int) Date {
	t := d.Time.AddDate(years, months, days)
	return NewDate(t.Year(), t.Month(), t.Day(), t.Location())
}

func (d Date) Equal(o Date) bool {
	return d.Year() == o.Year() && d.Month() == o.Month() && d.Day() == o.Day()
}

func Parse(layout, value string) (Date, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, err
	}
	return NewDateFromTime(t), nil
}

func (d Date) String() string {
	return d.Format(DateFormat)
}
