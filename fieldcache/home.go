package fieldcache

import (
	"context"
	"time"

	"github.com/unkn0wn-root/expcache"
	"github.com/unkn0wn-root/expcache/codec"
)

const HomePageKey = "homePage"

type Reminder struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	DoctorID string    `json:"doctorId,omitempty"`
	DueAt    time.Time `json:"dueAt"`
}

type CallSummary struct {
	Planned   int `json:"planned"`
	Completed int `json:"completed"`
}

type ExpenseSummary struct {
	Quarter string  `json:"quarter"`
	Claimed float64 `json:"claimed"`
	Pending float64 `json:"pending"`
}

// HomePage is the landing screen payload.
type HomePage struct {
	Calls     CallSummary    `json:"calls"`
	Expenses  ExpenseSummary `json:"expenses"`
	Reminders []Reminder     `json:"reminders"`
}

// Home caches the landing payload with no expiry; it is replaced on refresh.
type Home struct {
	expcache.Cache[HomePage]
}

func NewHome(d Deps) (*Home, error) {
	opts := options[HomePage](d, HomePageKey, expcache.NoExpiry)
	opts.Codec = codec.JSON[HomePage]{}
	c, err := expcache.New(opts)
	if err != nil {
		return nil, err
	}
	return &Home{Cache: c}, nil
}

// RemoveReminder drops one dismissed reminder from the cached payload.
func (h *Home) RemoveReminder(ctx context.Context, id string) {
	expcache.RemoveMatchingIn(ctx, h.Cache,
		func(p *HomePage) *[]Reminder { return &p.Reminders },
		func(r Reminder) bool { return r.ID == id })
}
