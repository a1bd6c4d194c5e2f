package health

import (
	"context"
	"time"

	"dailyshop-backend/internal/store"
)

type HealthChecker struct {
	store store.TableStore
}

type HealthStatus struct {
	Status  string        `json:"status"`
	Storage StorageHealth `json:"storage"`
}

type StorageHealth struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(s store.TableStore) *HealthChecker {
	return &HealthChecker{store: s}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	storageHealth := h.checkStorage()

	status := "healthy"
	if storageHealth.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:  status,
		Storage: storageHealth,
	}
}

// checkStorage proves the backing store is readable by loading the smallest
// table end to end.
func (h *HealthChecker) checkStorage() StorageHealth {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	_, err := h.store.Load(ctx, store.EntityUsers)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return StorageHealth{
			Status:       "unhealthy",
			ResponseTime: responseTime,
		}
	}

	return StorageHealth{
		Status:       "healthy",
		ResponseTime: responseTime,
	}
}
