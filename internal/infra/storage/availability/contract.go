package availability

import (
	"github.com/m04kA/SMC-MarketplaceBooking/pkg/dbmetrics"
)

// Переиспользуем интерфейс из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
