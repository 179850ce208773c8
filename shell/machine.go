package shell

import (
	"github.com/anggasct/signalctl/fsm"
)

// Menu machine states
const (
	StateMainMenu     = "main_menu"
	StateDisplayAll   = "display_all"
	StateManualInput  = "manual_input"
	StateManualChange = "manual_change"
	StateEmergency    = "emergency"
	StateSensorSim    = "sensor_sim"
	StateExit         = "exit"
)

// Menu machine events
const (
	EventDisplay      = "display"
	EventManualInput  = "manual_input"
	EventManualChange = "manual_change"
	EventEmergency    = "emergency"
	EventSensorSim    = "sensor_sim"
	EventExit         = "exit"
	// EventAck returns from an action screen to the main menu
	EventAck = "ack"
)

// BuildMenuMachine lays out the menu: every choice leaves the main menu for a
// state whose entry action runs the session operation, and an acknowledgment
// leads back. Exit is final.
func BuildMenuMachine(s *Session) fsm.MachineDefinition {
	actions := map[string]func() error{
		StateDisplayAll:   s.DisplayAll,
		StateManualInput:  s.ManualInput,
		StateManualChange: s.ManualChange,
		StateEmergency:    s.Emergency,
		StateSensorSim:    s.SensorSim,
	}

	mb := fsm.NewMachine()
	menu := mb.State(StateMainMenu).Initial()
	for _, item := range menuItems {
		menu.To(item.State).On(item.Event)
	}

	for _, item := range menuItems {
		if item.State == StateExit {
			continue
		}
		mb.State(item.State).
			OnEntry(run(actions[item.State])).
			To(StateMainMenu).On(EventAck)
	}

	mb.State(StateExit).Final().OnEntry(run(s.Exit))
	return mb.Build()
}

func run(action func() error) fsm.ActionFunc {
	return func(ctx fsm.Context) error {
		return action()
	}
}
