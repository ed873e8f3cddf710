package message

import (
	"strconv"
	"testing"
)

func TestEncodersRoundTrip(t *testing.T) {
	encoded := []Encoded{
		Arm(ArmLevelAway, 0, 1234),
		PollLightBank(0),
		PollCounter(3),
		RequestZoneDefinitions(),
		RequestZonePartitions(),
		RequestZoneStatuses(),
		RequestAlarmByZone(),
		RequestArmingStatus(),
		RequestDescription(0, 0),
		UserAreasSentinel(),
		RequestVersion(),
		RequestKeypadAreas(),
		RequestSystemTrouble(),
		RequestTemperatures(),
		ActivateTask(0),
		TurnOnOutput(0, 30),
		TurnOffOutput(0),
		ToggleOutput(0),
		RequestOutputStatus(),
		RequestAllCustomValues(),
		RequestCustomValue(0),
		WriteCounter(3, 100),
		SpeakPhrase(1),
		SpeakWord(1),
		SetTime(0, 30, 12, 3, 15, 7, 26),
		RequestThermostat(0),
		ThermostatSet(0, ThermostatFieldHeatSetpoint, 70),
		ThermostatHold(0, true),
		TriggerZone(0),
		RequestZoneVoltage(0),
	}

	for _, e := range encoded {
		declared, err := strconv.ParseInt(e.Body[0:2], 16, 64)
		if err != nil {
			t.Fatalf("bad length field in %q: %v", e.Body, err)
		}
		if int(declared) != len(e.Body) {
			t.Errorf("declared length %d != actual %d for %q", declared, len(e.Body), e.Body)
		}

		line := e.Frame()
		if _, err := ValidateFrame(line); err != nil {
			t.Errorf("ValidateFrame(%q) after self-encode: %v", line, err)
		}
	}
}

func TestZoneBypassEncode(t *testing.T) {
	all := Bypass(BypassAllZone, 0, 1234)
	if _, err := ValidateFrame(all.Frame()); err != nil {
		t.Errorf("bypass-all frame invalid: %v", err)
	}

	single := Bypass(4, 0, 1234)
	if _, err := ValidateFrame(single.Frame()); err != nil {
		t.Errorf("single-zone bypass frame invalid: %v", err)
	}
}

func TestSetLightBadHousecode(t *testing.T) {
	if _, err := SetLight(-1, 99, 0, 0); err == nil {
		t.Errorf("expected error for out-of-range light index")
	}
	if _, err := SetLight(300, 99, 0, 0); err == nil {
		t.Errorf("expected error for out-of-range light index")
	}
}

func TestWriteSettingTimeOfDayPacking(t *testing.T) {
	enc, err := WriteSettingTimeOfDay(0, 13, 45)
	if err != nil {
		t.Fatalf("WriteSettingTimeOfDay: %v", err)
	}
	if _, err := ValidateFrame(enc.Frame()); err != nil {
		t.Errorf("invalid frame: %v", err)
	}
	// hour*256+minute packing per the resolved §9 ambiguity
	want := 13*256 + 45
	if got, err := strconv.Atoi(enc.Body[6:11]); err != nil || got != want {
		t.Fatalf("packed value field = %q, want %05d", enc.Body[6:11], want)
	}

	if _, err := WriteSettingTimeOfDay(0, 24, 0); err == nil {
		t.Errorf("expected error for invalid hour")
	}
}
