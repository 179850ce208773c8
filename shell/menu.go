package shell

import (
	"fmt"

	"github.com/samber/lo"
)

const (
	clearScreen  = "\033[H\033[2J"
	menuTitle    = "--- Intelligent Traffic Control System ---"
	choicePrompt = "Enter choice (1-6): "

	invalidChoice = "Invalid choice. Please select 1-6."
)

// MenuItem is one numbered entry of the main menu
type MenuItem struct {
	Choice int
	Label  string
	// Event is sent to the menu machine when the entry is picked
	Event string
	// State is the machine state running the entry's action
	State string
}

var menuItems = []MenuItem{
	{Choice: 1, Label: "Display Signal States", Event: EventDisplay, State: StateDisplayAll},
	{Choice: 2, Label: "Simulate Traffic Input", Event: EventManualInput, State: StateManualInput},
	{Choice: 3, Label: "Manual Signal Change", Event: EventManualChange, State: StateManualChange},
	{Choice: 4, Label: "Simulate Emergency Vehicle", Event: EventEmergency, State: StateEmergency},
	{Choice: 5, Label: "Simulate Sensor Input (Random)", Event: EventSensorSim, State: StateSensorSim},
	{Choice: 6, Label: "Exit", Event: EventExit, State: StateExit},
}

var menuByChoice = lo.KeyBy(menuItems, func(item MenuItem) int { return item.Choice })

// Menu returns the main menu entries in display order
func Menu() []MenuItem {
	return append([]MenuItem(nil), menuItems...)
}

func eventFor(choice int) (string, bool) {
	item, ok := menuByChoice[choice]
	return item.Event, ok
}

// redraw clears the screen and shows the last status above the menu
func (s *Session) redraw() {
	fmt.Fprint(s.out, clearScreen)
	fmt.Fprintln(s.out, s.status)
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, menuTitle)
	for _, item := range menuItems {
		fmt.Fprintf(s.out, "%d. %s\n", item.Choice, item.Label)
	}
}
