package models

import "fmt"

// Tab is one of the bottom-navigation destinations.
type Tab string

const (
	TabHome    Tab = "home"
	TabSearch  Tab = "search"
	TabBooking Tab = "booking"
	TabMessage Tab = "message"
	TabProfile Tab = "profile"
)

// Tabs lists the destinations in bar order.
var Tabs = []Tab{TabHome, TabSearch, TabBooking, TabMessage, TabProfile}

func ParseTab(raw string) (Tab, error) {
	for _, t := range Tabs {
		if string(t) == raw {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tab %q", raw)
}
