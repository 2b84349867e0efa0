package models

import (
	"fmt"
	"strings"
)

type ListingType string

const (
	ListingNew           ListingType = "new"
	ListingHot           ListingType = "hot"
	ListingRising        ListingType = "rising"
	ListingTop           ListingType = "top"
	ListingControversial ListingType = "controversial"
)

var ListingTypes = []ListingType{ListingNew, ListingHot, ListingRising, ListingTop, ListingControversial}

// TakesTimeWindow reports whether Reddit honours the t= parameter for this listing.
func (l ListingType) TakesTimeWindow() bool {
	return l == ListingTop || l == ListingControversial
}

func ParseListingType(s string) (ListingType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range ListingTypes {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown listing type %q", s)
}

// TimeWindow is the t= filter. The zero value means no window.
type TimeWindow string

const (
	WindowHour  TimeWindow = "hour"
	WindowDay   TimeWindow = "day"
	WindowWeek  TimeWindow = "week"
	WindowMonth TimeWindow = "month"
	WindowYear  TimeWindow = "year"
	WindowAll   TimeWindow = "all"
)

var TimeWindows = []TimeWindow{WindowHour, WindowDay, WindowWeek, WindowMonth, WindowYear, WindowAll}

func (w TimeWindow) IsSet() bool {
	return w != ""
}

func ParseTimeWindow(s string) (TimeWindow, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, w := range TimeWindows {
		if string(w) == s {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown time window %q", s)
}
