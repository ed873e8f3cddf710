package message

import "testing"

func TestDecodeArmingStatus(t *testing.T) {
	body := "1DAS1000000040000000300000000"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	as, ok := msg.(ArmingStatus)
	if !ok {
		t.Fatalf("got %T, want ArmingStatus", msg)
	}
	if as.Armed[0] != ArmedAway {
		t.Errorf("Armed[0] = %v, want ArmedAway", as.Armed[0])
	}
	if as.ArmUp[0] != ArmUpFullyArmed {
		t.Errorf("ArmUp[0] = %v, want ArmUpFullyArmed", as.ArmUp[0])
	}
	if as.Alarm[0] != AlarmStateFireAlarm {
		t.Errorf("Alarm[0] = %v, want AlarmStateFireAlarm", as.Alarm[0])
	}
	if !as.Alarm[0].InRealAlarm() {
		t.Errorf("expected area 0 alarm state to be a real alarm")
	}
}

func TestDecodeZoneChange(t *testing.T) {
	body := "08ZC001B"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	zc, ok := msg.(ZoneChange)
	if !ok {
		t.Fatalf("got %T, want ZoneChange", msg)
	}
	if zc.Zone != 0 {
		t.Errorf("Zone = %d, want 0", zc.Zone)
	}
	if zc.Logical != ZoneLogicalViolated {
		t.Errorf("Logical = %v, want ZoneLogicalViolated", zc.Logical)
	}
	if zc.Physical != ZonePhysicalShort {
		t.Errorf("Physical = %v, want ZonePhysicalShort", zc.Physical)
	}
}

func TestDecodeZoneVoltage(t *testing.T) {
	body := "0AZV123072"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	zv, ok := msg.(ZoneVoltage)
	if !ok {
		t.Fatalf("got %T, want ZoneVoltage", msg)
	}
	if zv.Zone != 122 {
		t.Errorf("Zone = %d, want 122", zv.Zone)
	}
	if zv.Voltage != 72 {
		t.Errorf("Voltage = %d, want 72", zv.Voltage)
	}
}

func TestDecodeZoneBypassAll(t *testing.T) {
	for _, wire := range []string{"000", "999"} {
		body := "08ZB" + wire + "1"
		line := body + ChecksumHex(body)
		msg, err := Decode(line)
		if err != nil {
			t.Fatalf("Decode(%s): %v", wire, err)
		}
		zb := msg.(ZoneBypass)
		if !zb.All {
			t.Errorf("wire zone %s: expected All bypass sentinel", wire)
		}
	}

	body := "08ZB0051"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	zb := msg.(ZoneBypass)
	if zb.All {
		t.Errorf("specific zone bypass should not set All")
	}
	if zb.Zone != 4 {
		t.Errorf("Zone = %d, want 4", zb.Zone)
	}
}

func TestDecodeUnknownCode(t *testing.T) {
	body := "09ZZhello"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	u, ok := msg.(Unknown)
	if !ok {
		t.Fatalf("got %T, want Unknown", msg)
	}
	if u.MsgCode != "ZZ" {
		t.Errorf("MsgCode = %q, want ZZ", u.MsgCode)
	}
}

func TestDecodeSystemTrouble(t *testing.T) {
	payload := "1700100000000000000000000000000000"
	body := "26SS" + payload
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ss := msg.(SystemTrouble)
	want := "AC Fail, Box Tamper zone 7, Low Battery Control"
	if got := ss.Summary(); got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}
}

func TestDecodeInjective(t *testing.T) {
	body := "08ZC001B"
	line := body + ChecksumHex(body)
	m1, err1 := Decode(line)
	m2, err2 := Decode(line)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v %v", err1, err2)
	}
	if m1 != m2 {
		t.Errorf("Decode not injective on identical input: %+v != %+v", m1, m2)
	}
}

func TestDecodeOutputStatus(t *testing.T) {
	body := "0ACC001100"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	cc := msg.(OutputStatus)
	if cc.Output != 0 || !cc.On {
		t.Errorf("got %+v, want Output=0 On=true", cc)
	}
}

func TestDecodeTaskChange(t *testing.T) {
	body := "09TC00500"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tc := msg.(TaskChange)
	if tc.Task != 4 {
		t.Errorf("Task = %d, want 4", tc.Task)
	}
}

func TestDecodeEntryExitExit(t *testing.T) {
	// area=1, is_exit digit '0' means exit per the original decoder.
	body := "0FEE10123045601"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ee := msg.(EntryExitTimer)
	if ee.Area != 0 {
		t.Errorf("Area = %d, want 0", ee.Area)
	}
	if !ee.IsExit {
		t.Errorf("IsExit = false, want true for digit '0'")
	}
}

func TestDecodeSingleTempGroupOrder(t *testing.T) {
	// group 0 is Zone (offset -60), group 1 is Keypad (offset -40).
	body := "0AST000110"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	st := msg.(SingleTemp)
	if st.Group != TempGroupZone {
		t.Errorf("Group = %v, want TempGroupZone", st.Group)
	}
	if st.Temp != 110-60 {
		t.Errorf("Temp = %d, want %d", st.Temp, 110-60)
	}
}

func TestDecodeUserAreasSentinel(t *testing.T) {
	// The ua(0) sentinel echo: user_code 000000, valid_areas FF (all 8
	// areas), diagnostic all zero, code_length 4, code_type 0, temp_units 0.
	body := "19UA000000FF0000000040000"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	ua, ok := msg.(UserAreas)
	if !ok {
		t.Fatalf("got %T, want UserAreas", msg)
	}
	if ua.User != 0 {
		t.Errorf("User = %d, want 0", ua.User)
	}
	for i, got := range ua.Areas {
		if !got {
			t.Errorf("Areas[%d] = false, want true", i)
		}
	}
	if ua.CodeLength != 4 {
		t.Errorf("CodeLength = %d, want 4", ua.CodeLength)
	}
	if ua.TempUnits != TempUnitsFahrenheit {
		t.Errorf("TempUnits = %v, want TempUnitsFahrenheit", ua.TempUnits)
	}
}

func TestDecodeDescriptionTrimsTrailingReservedField(t *testing.T) {
	// Name is exactly 16 characters; the trailing "00" reserved field
	// must never leak into it even though it isn't whitespace.
	body := "1BSD02001Front Door      00"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	sd, ok := msg.(Description)
	if !ok {
		t.Fatalf("got %T, want Description", msg)
	}
	if sd.Name != "Front Door" {
		t.Errorf("Name = %q, want %q", sd.Name, "Front Door")
	}
	if sd.Unit != 0 {
		t.Errorf("Unit = %d, want 0", sd.Unit)
	}
}

func TestDecodeRealTimeClockPreservesWireCode(t *testing.T) {
	body := "10XK010203040506"
	line := body + ChecksumHex(body)
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if msg.Code() != CodeXK {
		t.Errorf("Code() = %v, want CodeXK", msg.Code())
	}

	body = "10RR010203040506"
	line = body + ChecksumHex(body)
	msg, err = Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if msg.Code() != CodeRR {
		t.Errorf("Code() = %v, want CodeRR", msg.Code())
	}
}
