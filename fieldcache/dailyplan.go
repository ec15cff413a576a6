package fieldcache

import (
	"context"
	"time"

	"github.com/unkn0wn-root/expcache"
	"github.com/unkn0wn-root/expcache/codec"
)

const (
	DailyPlansKey = "dailyPlans"
	DailyPlansTTL = 10 * time.Minute
)

// DailyPlan pairs a representative's planned day with one doctor visit.
type DailyPlan struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	DoctorID   string    `json:"doctorId"`
	DoctorName string    `json:"doctorName"`
	Area       string    `json:"area,omitempty"`
	Status     string    `json:"status,omitempty"`
}

// DailyPlans caches the plan list for ten minutes.
type DailyPlans struct {
	expcache.Cache[[]DailyPlan]
}

func NewDailyPlans(d Deps) (*DailyPlans, error) {
	opts := options[[]DailyPlan](d, DailyPlansKey, DailyPlansTTL)
	opts.Codec = codec.JSON[[]DailyPlan]{}
	c, err := expcache.New(opts)
	if err != nil {
		return nil, err
	}
	return &DailyPlans{Cache: c}, nil
}

// RemoveVisit drops a completed or expired plan/doctor pairing without
// invalidating the rest of the list.
func (p *DailyPlans) RemoveVisit(ctx context.Context, planID, doctorID string) {
	expcache.RemoveMatching(ctx, p.Cache, func(dp DailyPlan) bool {
		return dp.ID == planID && dp.DoctorID == doctorID
	})
}
