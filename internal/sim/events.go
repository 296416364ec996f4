package sim

// EventKind identifies something notable that happened during a tick.
type EventKind int

const (
	EventJump EventKind = iota
	EventLanded
	EventSpawn
	EventCollision
	EventSpeedUp
	EventSpawnIntervalChanged
	EventLevelUp
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventJump:
		return "jump"
	case EventLanded:
		return "landed"
	case EventSpawn:
		return "spawn"
	case EventCollision:
		return "collision"
	case EventSpeedUp:
		return "speed_up"
	case EventSpawnIntervalChanged:
		return "spawn_interval_changed"
	case EventLevelUp:
		return "level_up"
	default:
		return "unknown"
	}
}

// Event is a notification for logging and presentation collaborators.
// Value carries the new speed, interval, level or obstacle kind.
type Event struct {
	Kind  EventKind
	Tick  int
	Value float64
}
