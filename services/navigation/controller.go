package navigation

import "medibook/models"

// Controller holds the active tab separately from the router location.
type Controller struct {
	Active   models.Tab `json:"active"`
	Location string     `json:"location"`
}

// NewController starts on the home tab.
func NewController() *Controller {
	return &Controller{Active: models.TabHome, Location: "/"}
}

// Select handles an explicit tap: the tab becomes active, then the route is
// looked up and the location follows it.
func (c *Controller) Select(tab models.Tab, actor Actor) Route {
	c.Active = tab
	route := Resolve(tab, actor)
	c.Location = route.Path
	return route
}

// Sync re-derives the active tab after the location changed.
func (c *Controller) Sync(location string) models.Tab {
	c.Location = location
	c.Active = TabFromPath(location)
	return c.Active
}

// Indicator is one item of the bottom bar.
type Indicator struct {
	Tab    models.Tab `json:"tab"`
	Active bool       `json:"active"`
	Locked bool       `json:"locked"`
}

// Indicators lists the bar items with the active one highlighted. Locked
// marks guarded tabs for anonymous actors.
func (c *Controller) Indicators(actor Actor) []Indicator {
	out := make([]Indicator, 0, len(models.Tabs))
	for _, t := range models.Tabs {
		out = append(out, Indicator{
			Tab:    t,
			Active: t == c.Active,
			Locked: !actor.Authenticated && RequiresAuth(t),
		})
	}
	return out
}
