package get_calendar

import (
	"github.com/m04kA/SMC-MarketplaceBooking/internal/domain"
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/types"
)

// Request модель запроса календаря услуги
type Request struct {
	ServiceID int64
	ViewerID  int64      // 0 для анонимного просмотра: свои pending заявки не подсвечиваются
	From      types.Date // нулевая дата означает "сегодня"
	To        types.Date // нулевая дата означает From + DefaultSpanDays
}

// Response календарь услуги на диапазон дат
type Response struct {
	ServiceID int64
	From      types.Date
	To        types.Date
	Days      []Day // по возрастанию даты
}

// Day статус одной даты
type Day struct {
	Date     types.Date
	Weekday  string
	Status   domain.DateStatus
	Bookable bool
}
