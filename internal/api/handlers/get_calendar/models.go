package get_calendar

import (
	getCalendar "github.com/m04kA/SMC-MarketplaceBooking/internal/usecase/get_calendar"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	ServiceID int64         `json:"serviceId"`
	From      string        `json:"from"`
	To        string        `json:"to"`
	Days      []DayResponse `json:"days"`
}

// DayResponse статус одной даты
type DayResponse struct {
	Date     string `json:"date"`
	Weekday  string `json:"weekday"`
	Status   string `json:"status"` // available, reserved, exception, pending, disabled
	Bookable bool   `json:"bookable"`
}

// ToUseCaseRequest собирает запрос use case из query параметров from/to (опциональны)
func ToUseCaseRequest(serviceID, viewerID int64, fromStr, toStr string) (*getCalendar.Request, error) {
	req := &getCalendar.Request{ServiceID: serviceID, ViewerID: viewerID}

	if fromStr != "" {
		from, err := types.ParseDate(fromStr)
		if err != nil {
			return nil, err
		}
		req.From = from
	}
	if toStr != "" {
		to, err := types.ParseDate(toStr)
		if err != nil {
			return nil, err
		}
		req.To = to
	}
	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DayResponse{
			Date:     d.Date.String(),
			Weekday:  d.Weekday,
			Status:   string(d.Status),
			Bookable: d.Bookable,
		})
	}
	return &CalendarResponse{
		ServiceID: resp.ServiceID,
		From:      resp.From.String(),
		To:        resp.To.String(),
		Days:      days,
	}
}
