package elkm1

import (
	"github.com/gwww/elkm1/conn"
	"github.com/gwww/elkm1/message"
)

// Zone is a single sensor input such as a door contact, motion detector or
// temperature probe (§3).
type Zone struct {
	entity

	Definition     message.ZoneType
	LogicalStatus  message.ZoneLogicalStatus
	PhysicalStatus message.ZonePhysicalStatus
	Area           int
	Bypassed       bool
	Voltage        int // tenths of a volt
	Temperature    int // degrees, sentinel -60 = unknown
	TriggeredAlarm bool

	conn *conn.Connection
}

// InAlarm reports whether the zone currently has an active alarm trigger,
// per the AZ report (§4.1).
func (z *Zone) InAlarm() bool { return z.TriggeredAlarm }

// Trigger simulates the zone's physical trigger.
func (z *Zone) Trigger() {
	z.conn.Send(message.TriggerZone(z.index), false)
}

// Bypass bypasses this single zone using code in area.
func (z *Zone) Bypass(area int, code int) {
	z.conn.Send(message.Bypass(z.index, area, code), false)
}

// Zones holds all 208 Zone elements and their handlers (§4.5).
type Zones struct {
	zones [208]*Zone
	conn  *conn.Connection
	desc  *descFetch
}

func newZones(c *conn.Connection, n *Notifier) *Zones {
	zs := &Zones{conn: c}
	for i := range zs.zones {
		zs.zones[i] = &Zone{entity: newEntity(i, "Zone"), Temperature: -60, conn: c}
	}
	zs.desc = newDescFetch(c, descZone, len(zs.zones), zs.applyName)

	n.Attach(string(message.CodeAZ), zs.onAZ)
	n.Attach(string(message.CodeLW), zs.onLW)
	n.Attach(string(message.CodeST), zs.onST)
	n.Attach(string(message.CodeZB), zs.onZB)
	n.Attach(string(message.CodeZC), zs.onZC)
	n.Attach(string(message.CodeZD), zs.onZD)
	n.Attach(string(message.CodeZP), zs.onZP)
	n.Attach(string(message.CodeZS), zs.onZS)
	n.Attach(string(message.CodeZV), zs.onZV)
	n.Attach(string(message.CodeSD), zs.onSD)
	return zs
}

// Get returns the zone at base-0 index, or nil if out of range.
func (zs *Zones) Get(index int) *Zone {
	if index < 0 || index >= len(zs.zones) {
		return nil
	}
	return zs.zones[index]
}

// All returns every zone, in index order.
func (zs *Zones) All() []*Zone { return zs.zones[:] }

// sync requests zone definitions, area assignments and statuses, then
// launches the zone description walk (§4.5).
func (zs *Zones) sync() {
	zs.conn.Send(message.RequestZoneDefinitions(), false)
	zs.conn.Send(message.RequestZonePartitions(), false)
	zs.conn.Send(message.RequestZoneStatuses(), false)
	zs.desc.start()
}

func (zs *Zones) applyName(unit int, name string) {
	zs.zones[unit].setName(zs.zones[unit], name, true)
}

func (zs *Zones) onSD(_ string, data any) {
	if msg, ok := data.(message.Description); ok {
		zs.desc.handle(msg)
	}
}

func (zs *Zones) onAZ(_ string, data any) {
	msg, ok := data.(message.AlarmByZone)
	if !ok {
		return
	}
	for _, zone := range zs.zones {
		setField(&zone.entity, zone, &zone.TriggeredAlarm, msg.Zone[zone.index] != '0', "triggered_alarm", true)
	}
}

func (zs *Zones) onLW(_ string, data any) {
	msg, ok := data.(message.Temperatures)
	if !ok {
		return
	}
	for i := 0; i < 16; i++ {
		if msg.Zone[i] > -60 {
			zone := zs.zones[i]
			setField(&zone.entity, zone, &zone.Temperature, msg.Zone[i], "temperature", true)
		}
	}
}

func (zs *Zones) onST(_ string, data any) {
	msg, ok := data.(message.SingleTemp)
	if !ok || msg.Group != message.TempGroupZone {
		return
	}
	zone := zs.Get(msg.Index)
	if zone == nil {
		return
	}
	setField(&zone.entity, zone, &zone.Temperature, msg.Temp, "temperature", true)
}

// onZB applies a bypass state change; a bypass-all/clear-all sentinel (no
// individual zone named) requests a zs refresh instead, since no per-zone
// ZC will follow (§4.5, §8 ex. 5, §9 Open Question ii).
func (zs *Zones) onZB(_ string, data any) {
	msg, ok := data.(message.ZoneBypass)
	if !ok {
		return
	}
	if msg.All {
		zs.conn.Send(message.RequestZoneStatuses(), false)
		return
	}
	zone := zs.Get(msg.Zone)
	if zone == nil {
		return
	}
	setField(&zone.entity, zone, &zone.Bypassed, msg.Bypassed, "bypassed", true)
}

func (zs *Zones) onZC(_ string, data any) {
	msg, ok := data.(message.ZoneChange)
	if !ok {
		return
	}
	zone := zs.Get(msg.Zone)
	if zone == nil {
		return
	}
	setField(&zone.entity, zone, &zone.LogicalStatus, msg.Logical, "logical_status", false)
	setField(&zone.entity, zone, &zone.PhysicalStatus, msg.Physical, "physical_status", true)
}

func (zs *Zones) onZD(_ string, data any) {
	msg, ok := data.(message.ZoneDefinitions)
	if !ok {
		return
	}
	for _, zone := range zs.zones {
		setField(&zone.entity, zone, &zone.Definition, msg.Definition[zone.index], "definition", true)
	}
}

func (zs *Zones) onZP(_ string, data any) {
	msg, ok := data.(message.ZonePartitions)
	if !ok {
		return
	}
	for _, zone := range zs.zones {
		setField(&zone.entity, zone, &zone.Area, msg.Area[zone.index], "area", true)
	}
}

func (zs *Zones) onZS(_ string, data any) {
	msg, ok := data.(message.ZoneStatuses)
	if !ok {
		return
	}
	for _, zone := range zs.zones {
		setField(&zone.entity, zone, &zone.LogicalStatus, msg.Logical[zone.index], "logical_status", false)
		setField(&zone.entity, zone, &zone.PhysicalStatus, msg.Physical[zone.index], "physical_status", true)
	}
}

func (zs *Zones) onZV(_ string, data any) {
	msg, ok := data.(message.ZoneVoltage)
	if !ok {
		return
	}
	zone := zs.Get(msg.Zone)
	if zone == nil {
		return
	}
	setField(&zone.entity, zone, &zone.Voltage, msg.Voltage, "voltage", true)
}
