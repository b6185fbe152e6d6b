package counselordirectory

import (
	"github.com/manmitra25/MM-BookingService/internal/domain"
	"github.com/manmitra25/MM-BookingService/pkg/types"
)

// Counselor профиль консультанта из каталога
type Counselor struct {
	ID           string              `json:"id"`
	FullName     string              `json:"full_name"`
	IsActive     bool                `json:"is_active"`
	IsAvailable  bool                `json:"is_available"`
	Availability map[string][]string `json:"availability"` // день недели -> список "HH:MM"
}

// ErrorResponse модель ошибки от каталога консультантов
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ToDomainAvailability преобразует недельный шаблон каталога в доменный.
// Некорректные записи "HH:MM" отбрасываются молча: расписание из
// каталога принимается как есть, битая строка не должна ронять выдачу
// слотов целиком.
func (c *Counselor) ToDomainAvailability() domain.WeeklyAvailability {
	parse := func(day string) []types.TimeString {
		raw := c.Availability[day]
		parsed := make([]types.TimeString, 0, len(raw))
		for _, s := range raw {
			ts, err := types.NewTimeStringFromString(s)
			if err != nil {
				continue
			}
			parsed = append(parsed, ts)
		}
		return parsed
	}

	return domain.WeeklyAvailability{
		Monday:    parse("monday"),
		Tuesday:   parse("tuesday"),
		Wednesday: parse("wednesday"),
		Thursday:  parse("thursday"),
		Friday:    parse("friday"),
		Saturday:  parse("saturday"),
		Sunday:    parse("sunday"),
	}
}
