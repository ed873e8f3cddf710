package message

import (
	"fmt"
	"strings"
)

// Encoded is the result of an encode-side helper: the full frame body
// (length, code, payload and reserved field, but not the checksum) ready
// for Frame/ChecksumHex, plus the response code the sender should await,
// if any.
type Encoded struct {
	Body      string
	Expect    Code
	HasExpect bool
}

// Frame appends the checksum to e.Body, producing the complete line to
// send (without the CRLF terminator, which the transport adds).
func (e Encoded) Frame() string {
	return e.Body + ChecksumHex(e.Body)
}

// build assembles a frame body: the LL length prefix (which counts itself,
// the code, the payload and the trailing reserved field), the code, the
// payload, and the reserved "00" field; an empty payload still yields
// declared length 6, as in the "as" body "06as00".
func build(code Code, payload string) Encoded {
	body := fmt.Sprintf("%02X", len(payload)+6) + string(code) + payload + "00"
	return Encoded{Body: body}
}

func (e Encoded) withExpect(c Code) Encoded {
	e.Expect = c
	e.HasExpect = true
	return e
}

// ArmLevel is the "al" command's arming-level digit, 0 for disarm.
type ArmLevel int

const (
	ArmLevelDisarm ArmLevel = iota
	ArmLevelAway
	ArmLevelStay
	ArmLevelStayInstant
	ArmLevelNight
	ArmLevelNightInstant
	ArmLevelVacation
)

// Arm encodes "al": arm (or disarm, with ArmLevelDisarm) area to the
// given level with the user code. The level selects the wire code itself
// ("a0".."a6"), e.g. "0Da{L}{A+1}{C:06}00" (§4.1). Expects an AS response.
func Arm(level ArmLevel, area int, code int) Encoded {
	cmd := Code("a" + fmt.Sprintf("%d", int(level)))
	return build(cmd, fmt.Sprintf("%d%06d", area+1, code)).withExpect(CodeAS)
}

// RequestArmingStatus encodes "as", expecting AS.
func RequestArmingStatus() Encoded { return build("as", "").withExpect(CodeAS) }

// RequestAlarmByZone encodes "az", expecting AZ.
func RequestAlarmByZone() Encoded { return build("az", "").withExpect(CodeAZ) }

// TurnOffOutput encodes "cf": turn off an output. No response is expected
// beyond the panel's asynchronous CC notification.
func TurnOffOutput(output int) Encoded {
	return build("cf", fmt.Sprintf("%03d", output+1))
}

// ToggleOutput encodes "ct": toggle an output. No response is expected
// beyond the panel's asynchronous CC notification.
func ToggleOutput(output int) Encoded {
	return build("ct", fmt.Sprintf("%03d", output+1))
}

// TurnOnOutput encodes "cn": turn on an output for the given number of
// seconds (0 = indefinitely). No response is expected beyond the panel's
// asynchronous CC notification.
func TurnOnOutput(output int, seconds int) Encoded {
	return build("cn", fmt.Sprintf("%03d%05d", output+1, seconds))
}

// RequestOutputStatus encodes "cs": request the on/off state of every
// output, expecting CS.
func RequestOutputStatus() Encoded { return build("cs", "").withExpect(CodeCS) }

// RequestAllCustomValues encodes "cp": request every custom (setting)
// value at once, expecting CR.
func RequestAllCustomValues() Encoded { return build("cp", "").withExpect(CodeCR) }

// RequestCustomValue encodes "cr": request a single custom value,
// expecting CR.
func RequestCustomValue(index int) Encoded {
	return build("cr", fmt.Sprintf("%02d", index+1)).withExpect(CodeCR)
}

// WriteSettingNumber encodes "cw": a number/timer-formatted custom
// setting write. No response is expected beyond the panel's asynchronous
// CR notification.
func WriteSettingNumber(index int, value int) Encoded {
	return build("cw", fmt.Sprintf("%02d%05d", index+1, value))
}

// WriteSettingTimeOfDay encodes "cw" for a TIME_OF_DAY-formatted custom
// setting; per §9's resolved ambiguity the packed value is hour*256+minute.
func WriteSettingTimeOfDay(index int, hour, minute int) (Encoded, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Encoded{}, ErrBadTimeOfDay
	}
	packed := hour*256 + minute
	return build("cw", fmt.Sprintf("%02d%05d", index+1, packed)), nil
}

// PollCounter encodes "cv": request a counter's value, expecting CV.
func PollCounter(counter int) Encoded {
	return build("cv", fmt.Sprintf("%02d", counter+1)).withExpect(CodeCV)
}

// WriteCounter encodes "cx": write a counter's value, expecting CV.
func WriteCounter(counter int, value int) Encoded {
	return build("cx", fmt.Sprintf("%02d%05d", counter+1, value)).withExpect(CodeCV)
}

// DisplayMessage encodes "dm": show a two-line message on a keypad area's
// display. Line1 and Line2 are each formatted to 16 characters by padField.
func DisplayMessage(area int, clear int, beep bool, timeout int, line1, line2 string) Encoded {
	return build("dm", fmt.Sprintf("%d%d%c%05d%s%s",
		area+1, clear, boolDigit(beep), timeout, padField(line1), padField(line2)))
}

// padField centers s in a 16-character field, padding with '<' and
// truncating to 16 characters, matching the panel's display-message
// field formatting (§9).
func padField(s string) string {
	if len(s) > 16 {
		return s[:16]
	}
	pad := 16 - len(s)
	left := pad / 2
	right := pad - left
	return strings.Repeat("<", left) + s + strings.Repeat("<", right)
}

// RequestKeypadAreas encodes "ka", expecting KA.
func RequestKeypadAreas() Encoded { return build("ka", "").withExpect(CodeKA) }

// RequestTemperatures encodes "lw", expecting LW.
func RequestTemperatures() Encoded { return build("lw", "").withExpect(CodeLW) }

// SetLight encodes "pc": control any PLC (X10) device by housecode index.
// No response is expected beyond the panel's asynchronous PC notification.
func SetLight(index int, functionCode int, extendedCode int, seconds int) (Encoded, error) {
	hc, err := IndexToHousecode(index)
	if err != nil {
		return Encoded{}, err
	}
	return build("pc", fmt.Sprintf("%s%02d%02d%04d", hc, functionCode, extendedCode, seconds)), nil
}

// TurnOffLight encodes "pf": turn off a light by housecode index.
func TurnOffLight(index int) (Encoded, error) {
	hc, err := IndexToHousecode(index)
	if err != nil {
		return Encoded{}, err
	}
	return build("pf", hc), nil
}

// TurnOnLight encodes "pn": turn on a light by housecode index.
func TurnOnLight(index int) (Encoded, error) {
	hc, err := IndexToHousecode(index)
	if err != nil {
		return Encoded{}, err
	}
	return build("pn", hc), nil
}

// ToggleLight encodes "pt": toggle a light by housecode index.
func ToggleLight(index int) (Encoded, error) {
	hc, err := IndexToHousecode(index)
	if err != nil {
		return Encoded{}, err
	}
	return build("pt", hc), nil
}

// PollLightBank encodes "ps": request a bank of 64 light statuses,
// expecting PS.
func PollLightBank(bank int) Encoded {
	return build("ps", fmt.Sprintf("%d", bank)).withExpect(CodePS)
}

// RequestDescription encodes "sd": request the description for unit
// (base-0) of descType, expecting SD.
func RequestDescription(descType int, unit int) Encoded {
	return build("sd", fmt.Sprintf("%02d%03d", descType, unit+1)).withExpect(CodeSD)
}

// SpeakPhrase encodes "sp": have the panel speak a phrase.
func SpeakPhrase(phrase int) Encoded {
	return build("sp", fmt.Sprintf("%03d", phrase))
}

// SpeakWord encodes "sw": have the panel speak a word.
func SpeakWord(word int) Encoded {
	return build("sw", fmt.Sprintf("%03d", word))
}

// RequestSystemTrouble encodes "ss", expecting SS.
func RequestSystemTrouble() Encoded { return build("ss", "").withExpect(CodeSS) }

// SetTime encodes "rw": write the panel's time and date. Weekday follows
// the panel's Sunday=1..Saturday=7 convention.
func SetTime(second, minute, hour, weekday, day, month, year int) Encoded {
	return build("rw", fmt.Sprintf("%02d%02d%02d%d%02d%02d%02d", second, minute, hour, weekday, day, month, year))
}

// ActivateTask encodes "tn": activate a task by index. No response is
// expected beyond the panel's asynchronous TC notification.
func ActivateTask(index int) Encoded {
	return build("tn", fmt.Sprintf("%03d", index+1))
}

// RequestThermostat encodes "tr": poll a single thermostat. No direct
// response code is declared; the panel answers asynchronously with TR.
func RequestThermostat(index int) Encoded {
	return build("tr", fmt.Sprintf("%02d", index+1))
}

// ThermostatField selects which "ts" sub-command element is being set.
type ThermostatField int

const (
	ThermostatFieldMode ThermostatField = iota
	ThermostatFieldHold
	ThermostatFieldFan
	ThermostatFieldGetTemperature
	ThermostatFieldCoolSetpoint
	ThermostatFieldHeatSetpoint
)

// ThermostatSet encodes "ts": write a thermostat setpoint/mode/hold/fan
// field. No direct response code is declared; the panel answers
// asynchronously with TR.
func ThermostatSet(index int, field ThermostatField, value int) Encoded {
	return build("ts", fmt.Sprintf("%02d%02d%d", index+1, value, field))
}

func boolDigit(b bool) byte {
	if b {
		return '1'
	}
	return '0'
}

// ThermostatHold encodes the hold sub-command using the "1"/"0" digit
// mapping called out in §4.1.
func ThermostatHold(index int, hold bool) Encoded {
	v := 0
	if hold {
		v = 1
	}
	return ThermostatSet(index, ThermostatFieldHold, v)
}

// UserAreasSentinel encodes "ua" with the dummy user code 0, used as the
// end-of-sync sentinel (§4.6, §8 ex. 6), expecting UA.
func UserAreasSentinel() Encoded {
	return build("ua", "000000").withExpect(CodeUA)
}

// RequestVersion encodes "vn", expecting VN.
func RequestVersion() Encoded { return build("vn", "").withExpect(CodeVN) }

// BypassAllZone is the sentinel passed to Bypass to bypass every zone.
// A negative zone other than this sentinel means unbypass-all.
const BypassAllZone = -2

// Bypass encodes "zb": bypass (or unbypass) a single zone, or the
// bypass-all/unbypass-all sentinels (§4.1), expecting ZB.
func Bypass(zone int, area int, code int) Encoded {
	var wire int
	switch {
	case zone == BypassAllZone:
		wire = 999
	case zone < 0:
		wire = 0
	default:
		wire = zone + 1
	}
	return build("zb", fmt.Sprintf("%03d%d%06d", wire, area+1, code)).withExpect(CodeZB)
}

// RequestZoneDefinitions encodes "zd", expecting ZD.
func RequestZoneDefinitions() Encoded { return build("zd", "").withExpect(CodeZD) }

// RequestZonePartitions encodes "zp", expecting ZP.
func RequestZonePartitions() Encoded { return build("zp", "").withExpect(CodeZP) }

// RequestZoneStatuses encodes "zs", expecting ZS.
func RequestZoneStatuses() Encoded { return build("zs", "").withExpect(CodeZS) }

// TriggerZone encodes "zt": simulate a zone's physical trigger. No
// response is declared beyond the panel's asynchronous ZC notification.
func TriggerZone(zone int) Encoded {
	return build("zt", fmt.Sprintf("%03d", zone+1))
}

// RequestZoneVoltage encodes "zv", expecting ZV.
func RequestZoneVoltage(zone int) Encoded {
	return build("zv", fmt.Sprintf("%03d", zone+1)).withExpect(CodeZV)
}
