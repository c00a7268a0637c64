package timezone

import "time"

const DefaultTimezone = "America/Sao_Paulo"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(DefaultTimezone)
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate interpreta "2006-01-02" no fuso do salão.
func ParseDate(tz string, dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, Location(tz))
}

// ParseDateTime interpreta data + hora "15:04" no fuso do salão.
func ParseDateTime(tz string, dateStr string, timeStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, Location(tz))
}

// Weekday devolve o dia da semana numérico (0=domingo..6=sábado) de
// uma data "2006-01-02", independente de locale.
func Weekday(dateStr string) (int, error) {
	d, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return 0, err
	}
	return int(d.Weekday()), nil
}
